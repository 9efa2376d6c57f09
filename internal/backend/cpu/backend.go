// Package cpu implements a pure-Go CPU compute backend.
package cpu

import (
	"fmt"

	"github.com/contrast-ml/contrast/internal/tensor"
)

// Backend is a pure-Go CPU implementation of tensor.Backend. All operations
// allocate fresh output tensors; inputs are never modified.
type Backend struct{}

// New creates a new CPU backend.
func New() *Backend {
	return &Backend{}
}

// Name returns the backend identifier.
func (b *Backend) Name() string { return "cpu" }

// Device returns the CPU device.
func (b *Backend) Device() tensor.Device { return tensor.CPU }

// Add returns a + b element-wise with broadcasting.
func (b *Backend) Add(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.binaryOp("add", x, y,
		func(a, b float32) float32 { return a + b },
		func(a, b float64) float64 { return a + b })
}

// Sub returns a - b element-wise with broadcasting.
func (b *Backend) Sub(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.binaryOp("sub", x, y,
		func(a, b float32) float32 { return a - b },
		func(a, b float64) float64 { return a - b })
}

// Mul returns a * b element-wise with broadcasting.
func (b *Backend) Mul(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.binaryOp("mul", x, y,
		func(a, b float32) float32 { return a * b },
		func(a, b float64) float64 { return a * b })
}

// Div returns a / b element-wise with broadcasting. Division by zero follows
// IEEE semantics (Inf/NaN).
func (b *Backend) Div(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.binaryOp("div", x, y,
		func(a, b float32) float32 { return a / b },
		func(a, b float64) float64 { return a / b })
}

func (b *Backend) binaryOp(name string, x, y *tensor.RawTensor,
	f32 func(float32, float32) float32, f64 func(float64, float64) float64) *tensor.RawTensor {

	if x.DType() != y.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch: %s vs %s", name, x.DType(), y.DType()))
	}

	outShape, _, err := tensor.BroadcastShapes(x.Shape(), y.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	out, err := tensor.NewRaw(outShape, x.DType(), x.Device())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	switch x.DType() {
	case tensor.Float32:
		broadcastApply(x.AsFloat32(), y.AsFloat32(), out.AsFloat32(),
			x.Shape(), y.Shape(), outShape, f32)
	case tensor.Float64:
		broadcastApply(x.AsFloat64(), y.AsFloat64(), out.AsFloat64(),
			x.Shape(), y.Shape(), outShape, f64)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, x.DType()))
	}
	return out
}

// Reshape returns a copy of a with a new shape. Element count must match.
func (b *Backend) Reshape(a *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	if err := shape.Validate(); err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	if shape.NumElements() != a.NumElements() {
		panic(fmt.Sprintf("reshape: cannot reshape %v (%d elements) to %v (%d elements)",
			a.Shape(), a.NumElements(), shape, shape.NumElements()))
	}
	out, err := tensor.NewRaw(shape, a.DType(), a.Device())
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	copy(out.Data(), a.Data())
	return out
}

// Transpose swaps two dimensions of a.
func (b *Backend) Transpose(a *tensor.RawTensor, dim0, dim1 int) *tensor.RawTensor {
	shape := a.Shape()
	if dim0 < 0 || dim0 >= len(shape) || dim1 < 0 || dim1 >= len(shape) {
		panic(fmt.Sprintf("transpose: dims (%d, %d) out of range for shape %v", dim0, dim1, shape))
	}

	outShape := shape.Clone()
	outShape[dim0], outShape[dim1] = outShape[dim1], outShape[dim0]

	out, err := tensor.NewRaw(outShape, a.DType(), a.Device())
	if err != nil {
		panic(fmt.Sprintf("transpose: %v", err))
	}

	switch a.DType() {
	case tensor.Float32:
		transposeData(a.AsFloat32(), out.AsFloat32(), shape, outShape, dim0, dim1)
	case tensor.Float64:
		transposeData(a.AsFloat64(), out.AsFloat64(), shape, outShape, dim0, dim1)
	case tensor.Int32:
		transposeData(a.AsInt32(), out.AsInt32(), shape, outShape, dim0, dim1)
	default:
		panic(fmt.Sprintf("transpose: unsupported dtype %s", a.DType()))
	}
	return out
}

func transposeData[T tensor.DType](in, out []T, inShape, outShape tensor.Shape, dim0, dim1 int) {
	inStrides := inShape.ComputeStrides()
	outStrides := outShape.ComputeStrides()

	for i := range out {
		// Decompose the output index, swap the two dims back, recompose.
		rem := i
		inIdx := 0
		for d := 0; d < len(outShape); d++ {
			idx := rem / outStrides[d]
			rem %= outStrides[d]

			srcDim := d
			if d == dim0 {
				srcDim = dim1
			} else if d == dim1 {
				srcDim = dim0
			}
			inIdx += idx * inStrides[srcDim]
		}
		out[i] = in[inIdx]
	}
}
