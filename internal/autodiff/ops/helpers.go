package ops

import (
	"fmt"

	"github.com/contrast-ml/contrast/internal/tensor"
)

// reduceBroadcast sums a gradient back down to the shape of an input that
// was broadcast in the forward pass.
func reduceBroadcast(grad *tensor.RawTensor, targetShape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	if grad.Shape().Equal(targetShape) {
		return grad
	}

	g := grad
	for len(g.Shape()) > len(targetShape) {
		g = backend.SumDim(g, 0, false)
	}
	for d := 0; d < len(targetShape); d++ {
		if targetShape[d] == 1 && g.Shape()[d] != 1 {
			g = backend.SumDim(g, d, true)
		}
	}
	if !g.Shape().Equal(targetShape) {
		g = backend.Reshape(g, targetShape)
	}
	return g
}

// broadcastGrad expands a gradient to a larger shape by adding it to zeros.
// The gradient's shape must be broadcast-compatible with targetShape.
func broadcastGrad(grad *tensor.RawTensor, targetShape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	if grad.Shape().Equal(targetShape) {
		return grad
	}
	zeros, err := tensor.NewRaw(targetShape, grad.DType(), grad.Device())
	if err != nil {
		panic(fmt.Sprintf("autodiff: %v", err))
	}
	return backend.Add(zeros, grad)
}

// negate returns -t.
func negate(t *tensor.RawTensor, backend tensor.Backend) *tensor.RawTensor {
	switch t.DType() {
	case tensor.Float32:
		return backend.MulScalar(t, float32(-1))
	case tensor.Float64:
		return backend.MulScalar(t, float64(-1))
	default:
		panic(fmt.Sprintf("autodiff: cannot negate %s tensor", t.DType()))
	}
}
