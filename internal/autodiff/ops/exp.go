package ops

import "github.com/contrast-ml/contrast/internal/tensor"

// ExpOp records y = e^x.
type ExpOp struct {
	input, output *tensor.RawTensor
}

// NewExpOp creates an exp operation record.
func NewExpOp(input, output *tensor.RawTensor) *ExpOp {
	return &ExpOp{input: input, output: output}
}

// Backward uses d(e^x)/dx = e^x, which is the saved forward output.
func (op *ExpOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Mul(outputGrad, op.output)}
}

func (op *ExpOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *ExpOp) Output() *tensor.RawTensor  { return op.output }
func (op *ExpOp) Name() string               { return "exp" }
