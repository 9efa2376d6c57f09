package ops

import (
	"fmt"

	"github.com/contrast-ml/contrast/internal/tensor"
)

// GatherOp records y = gather(x, dim, index). The index tensor is integer
// data, so no gradient flows to it; Inputs() lists only x.
type GatherOp struct {
	input, output *tensor.RawTensor
	index         *tensor.RawTensor
	dim           int
}

// NewGatherOp creates a gather operation record.
func NewGatherOp(input, output, index *tensor.RawTensor, dim int) *GatherOp {
	return &GatherOp{input: input, output: output, index: index, dim: dim}
}

// Backward scatter-adds the gradient back into the gathered positions.
// Repeated indices accumulate, which is what makes repeated noise samples
// contribute independently.
func (op *GatherOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grad, err := tensor.NewRaw(op.input.Shape(), op.input.DType(), op.input.Device())
	if err != nil {
		panic(fmt.Sprintf("gather backward: %v", err))
	}

	switch op.input.DType() {
	case tensor.Float32:
		scatterAdd(grad.AsFloat32(), outputGrad.AsFloat32(), op.index.AsInt32(),
			op.input.Shape(), op.index.Shape(), op.dim)
	case tensor.Float64:
		scatterAdd(grad.AsFloat64(), outputGrad.AsFloat64(), op.index.AsInt32(),
			op.input.Shape(), op.index.Shape(), op.dim)
	default:
		panic(fmt.Sprintf("gather backward: unsupported dtype %s", op.input.DType()))
	}
	return []*tensor.RawTensor{grad}
}

// scatterAdd is the adjoint of the gather loop: for every gathered element
// it adds the incoming gradient at the position it was read from.
func scatterAdd[T tensor.DType](dst, grad []T, index []int32, dstShape, idxShape tensor.Shape, dim int) {
	dstStrides := dstShape.ComputeStrides()
	idxStrides := idxShape.ComputeStrides()

	for i := range grad {
		rem := i
		target := 0
		for d := 0; d < len(idxShape); d++ {
			pos := rem / idxStrides[d]
			rem %= idxStrides[d]
			if d == dim {
				pos = int(index[i])
			}
			target += pos * dstStrides[d]
		}
		dst[target] += grad[i]
	}
}

func (op *GatherOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *GatherOp) Output() *tensor.RawTensor  { return op.output }
func (op *GatherOp) Name() string               { return "gather" }
