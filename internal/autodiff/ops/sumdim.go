package ops

import "github.com/contrast-ml/contrast/internal/tensor"

// SumDimOp records y = sum(x, dim).
type SumDimOp struct {
	input, output *tensor.RawTensor
	dim           int
	keepDim       bool
}

// NewSumDimOp creates a dimension-reduction sum operation record.
func NewSumDimOp(input, output *tensor.RawTensor, dim int, keepDim bool) *SumDimOp {
	return &SumDimOp{input: input, output: output, dim: dim, keepDim: keepDim}
}

// Backward re-inserts the reduced dimension with size 1, then broadcasts the
// gradient back to the input's shape.
func (op *SumDimOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	g := outputGrad
	if !op.keepDim {
		inShape := op.input.Shape()
		unsqueezed := inShape.Clone()
		unsqueezed[op.dim] = 1
		g = backend.Reshape(g, unsqueezed)
	}
	return []*tensor.RawTensor{broadcastGrad(g, op.input.Shape(), backend)}
}

func (op *SumDimOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *SumDimOp) Output() *tensor.RawTensor  { return op.output }
func (op *SumDimOp) Name() string               { return "sum_dim" }
