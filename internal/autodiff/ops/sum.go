package ops

import "github.com/contrast-ml/contrast/internal/tensor"

// SumOp records y = sum(x) over all elements.
type SumOp struct {
	input, output *tensor.RawTensor
}

// NewSumOp creates a full-reduction sum operation record.
func NewSumOp(input, output *tensor.RawTensor) *SumOp {
	return &SumOp{input: input, output: output}
}

// Backward fans the scalar gradient out to every input element.
func (op *SumOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{broadcastGrad(outputGrad, op.input.Shape(), backend)}
}

func (op *SumOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *SumOp) Output() *tensor.RawTensor  { return op.output }
func (op *SumOp) Name() string               { return "sum" }
