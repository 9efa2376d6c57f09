package cpu

import (
	"fmt"

	"github.com/contrast-ml/contrast/internal/tensor"
)

// Sum reduces all elements to a scalar tensor of shape {}.
func (b *Backend) Sum(a *tensor.RawTensor) *tensor.RawTensor {
	out, err := tensor.NewRaw(tensor.Shape{}, a.DType(), a.Device())
	if err != nil {
		panic(fmt.Sprintf("sum: %v", err))
	}

	switch a.DType() {
	case tensor.Float32:
		var total float32
		for _, v := range a.AsFloat32() {
			total += v
		}
		out.AsFloat32()[0] = total
	case tensor.Float64:
		var total float64
		for _, v := range a.AsFloat64() {
			total += v
		}
		out.AsFloat64()[0] = total
	default:
		panic(fmt.Sprintf("sum: unsupported dtype %s", a.DType()))
	}
	return out
}

// SumDim reduces one dimension. With keepDim the reduced dimension stays
// with size 1, otherwise it is dropped.
func (b *Backend) SumDim(a *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	shape := a.Shape()
	if dim < 0 || dim >= len(shape) {
		panic(fmt.Sprintf("sum_dim: dim %d out of range for shape %v", dim, shape))
	}

	outShape := make(tensor.Shape, 0, len(shape))
	for d, size := range shape {
		if d == dim {
			if keepDim {
				outShape = append(outShape, 1)
			}
			continue
		}
		outShape = append(outShape, size)
	}

	out, err := tensor.NewRaw(outShape, a.DType(), a.Device())
	if err != nil {
		panic(fmt.Sprintf("sum_dim: %v", err))
	}

	switch a.DType() {
	case tensor.Float32:
		sumDimData(a.AsFloat32(), out.AsFloat32(), shape, dim)
	case tensor.Float64:
		sumDimData(a.AsFloat64(), out.AsFloat64(), shape, dim)
	default:
		panic(fmt.Sprintf("sum_dim: unsupported dtype %s", a.DType()))
	}
	return out
}

func sumDimData[T tensor.DType](in, out []T, shape tensor.Shape, dim int) {
	strides := shape.ComputeStrides()

	// outer iterates dims before dim, inner iterates dims after it.
	outer, inner := 1, 1
	for d := 0; d < dim; d++ {
		outer *= shape[d]
	}
	for d := dim + 1; d < len(shape); d++ {
		inner *= shape[d]
	}

	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			var total T
			base := o*strides[dim]*shape[dim] + i
			for r := 0; r < shape[dim]; r++ {
				total += in[base+r*strides[dim]]
			}
			out[o*inner+i] = total
		}
	}
}
