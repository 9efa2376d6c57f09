package ops

import (
	"fmt"

	"github.com/contrast-ml/contrast/internal/tensor"
)

// EmbeddingOp records a row lookup into a [V, E] weight table. Indices carry
// no gradient; Inputs() lists only the weight.
type EmbeddingOp struct {
	weight, output *tensor.RawTensor
	indices        *tensor.RawTensor
}

// NewEmbeddingOp creates an embedding lookup record.
func NewEmbeddingOp(weight, output, indices *tensor.RawTensor) *EmbeddingOp {
	return &EmbeddingOp{weight: weight, output: output, indices: indices}
}

// Backward scatter-adds each output row's gradient into the weight row it
// was read from. Rows looked up more than once accumulate.
func (op *EmbeddingOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grad, err := tensor.NewRaw(op.weight.Shape(), op.weight.DType(), op.weight.Device())
	if err != nil {
		panic(fmt.Sprintf("embedding backward: %v", err))
	}

	dim := op.weight.Shape()[1]
	indices := op.indices.AsInt32()

	switch op.weight.DType() {
	case tensor.Float32:
		scatterAddRows(grad.AsFloat32(), outputGrad.AsFloat32(), indices, dim)
	case tensor.Float64:
		scatterAddRows(grad.AsFloat64(), outputGrad.AsFloat64(), indices, dim)
	default:
		panic(fmt.Sprintf("embedding backward: unsupported dtype %s", op.weight.DType()))
	}
	return []*tensor.RawTensor{grad}
}

func scatterAddRows[T tensor.DType](dst, grad []T, indices []int32, dim int) {
	for i, idx := range indices {
		dstRow := dst[int(idx)*dim : (int(idx)+1)*dim]
		gradRow := grad[i*dim : (i+1)*dim]
		for j := range dstRow {
			dstRow[j] += gradRow[j]
		}
	}
}

func (op *EmbeddingOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.weight} }
func (op *EmbeddingOp) Output() *tensor.RawTensor  { return op.output }
func (op *EmbeddingOp) Name() string               { return "embedding" }
