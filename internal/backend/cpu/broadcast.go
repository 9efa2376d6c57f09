package cpu

import "github.com/contrast-ml/contrast/internal/tensor"

// broadcastStrides maps each output dimension to the input's stride, using
// stride 0 for dimensions the input broadcasts over (size 1 or missing).
func broadcastStrides(in, out tensor.Shape) []int {
	inStrides := in.ComputeStrides()
	strides := make([]int, len(out))
	offset := len(out) - len(in)

	for d := range out {
		inDim := d - offset
		if inDim < 0 || in[inDim] == 1 {
			strides[d] = 0
		} else {
			strides[d] = inStrides[inDim]
		}
	}
	return strides
}

// broadcastApply evaluates op element-wise over broadcast inputs into out.
func broadcastApply[T tensor.DType](a, b, out []T, aShape, bShape, outShape tensor.Shape, op func(T, T) T) {
	if aShape.Equal(bShape) {
		for i := range out {
			out[i] = op(a[i], b[i])
		}
		return
	}

	aStrides := broadcastStrides(aShape, outShape)
	bStrides := broadcastStrides(bShape, outShape)
	outStrides := outShape.ComputeStrides()

	for i := range out {
		rem := i
		ai, bi := 0, 0
		for d := 0; d < len(outShape); d++ {
			idx := rem / outStrides[d]
			rem %= outStrides[d]
			ai += idx * aStrides[d]
			bi += idx * bStrides[d]
		}
		out[i] = op(a[ai], b[bi])
	}
}
