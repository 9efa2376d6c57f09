package cpu

import (
	"fmt"

	"github.com/contrast-ml/contrast/internal/tensor"
)

// Gather selects elements along dim using an index tensor of the same rank
// as the input (torch-style). The output has the index tensor's shape:
//
//	out[i0, ..., id, ...] = a[i0, ..., index[i0, ..., id, ...], ...]
func (b *Backend) Gather(a *tensor.RawTensor, dim int, index *tensor.RawTensor) *tensor.RawTensor {
	shape := a.Shape()
	idxShape := index.Shape()
	if len(idxShape) != len(shape) {
		panic(fmt.Sprintf("gather: index rank %d does not match input rank %d",
			len(idxShape), len(shape)))
	}
	if dim < 0 || dim >= len(shape) {
		panic(fmt.Sprintf("gather: dim %d out of range for shape %v", dim, shape))
	}
	if index.DType() != tensor.Int32 {
		panic(fmt.Sprintf("gather: index dtype must be int32, got %s", index.DType()))
	}
	for d := range shape {
		if d != dim && idxShape[d] > shape[d] {
			panic(fmt.Sprintf("gather: index shape %v too large for input shape %v at dim %d",
				idxShape, shape, d))
		}
	}

	out, err := tensor.NewRaw(idxShape, a.DType(), a.Device())
	if err != nil {
		panic(fmt.Sprintf("gather: %v", err))
	}

	switch a.DType() {
	case tensor.Float32:
		gatherData(a.AsFloat32(), out.AsFloat32(), index.AsInt32(), shape, idxShape, dim)
	case tensor.Float64:
		gatherData(a.AsFloat64(), out.AsFloat64(), index.AsInt32(), shape, idxShape, dim)
	default:
		panic(fmt.Sprintf("gather: unsupported dtype %s", a.DType()))
	}
	return out
}

func gatherData[T tensor.DType](in, out []T, index []int32, inShape, idxShape tensor.Shape, dim int) {
	inStrides := inShape.ComputeStrides()
	idxStrides := idxShape.ComputeStrides()

	for i := range out {
		idx := index[i]
		if idx < 0 || int(idx) >= inShape[dim] {
			panic(fmt.Sprintf("gather: index %d out of range [0, %d)", idx, inShape[dim]))
		}

		rem := i
		src := 0
		for d := 0; d < len(idxShape); d++ {
			pos := rem / idxStrides[d]
			rem %= idxStrides[d]
			if d == dim {
				pos = int(idx)
			}
			src += pos * inStrides[d]
		}
		out[i] = in[src]
	}
}

// Embedding looks up rows of a [V, E] weight table. The output has shape
// indices.Shape() + [E].
func (b *Backend) Embedding(weight *tensor.RawTensor, indices *tensor.RawTensor) *tensor.RawTensor {
	wShape := weight.Shape()
	if len(wShape) != 2 {
		panic(fmt.Sprintf("embedding: weight must be 2-D [vocab, dim], got %v", wShape))
	}
	if indices.DType() != tensor.Int32 {
		panic(fmt.Sprintf("embedding: indices dtype must be int32, got %s", indices.DType()))
	}

	vocab, dim := wShape[0], wShape[1]
	outShape := append(indices.Shape().Clone(), dim)

	out, err := tensor.NewRaw(outShape, weight.DType(), weight.Device())
	if err != nil {
		panic(fmt.Sprintf("embedding: %v", err))
	}

	switch weight.DType() {
	case tensor.Float32:
		embeddingData(weight.AsFloat32(), out.AsFloat32(), indices.AsInt32(), vocab, dim)
	case tensor.Float64:
		embeddingData(weight.AsFloat64(), out.AsFloat64(), indices.AsInt32(), vocab, dim)
	default:
		panic(fmt.Sprintf("embedding: unsupported dtype %s", weight.DType()))
	}
	return out
}

func embeddingData[T tensor.DType](weight, out []T, indices []int32, vocab, dim int) {
	for i, idx := range indices {
		if idx < 0 || int(idx) >= vocab {
			panic(fmt.Sprintf("embedding: index %d out of range [0, %d)", idx, vocab))
		}
		copy(out[i*dim:(i+1)*dim], weight[int(idx)*dim:(int(idx)+1)*dim])
	}
}
