package ops

import "github.com/contrast-ml/contrast/internal/tensor"

// ReshapeOp records y = reshape(x, shape).
type ReshapeOp struct {
	input, output *tensor.RawTensor
}

// NewReshapeOp creates a reshape operation record.
func NewReshapeOp(input, output *tensor.RawTensor) *ReshapeOp {
	return &ReshapeOp{input: input, output: output}
}

// Backward reshapes the gradient back to the input's shape.
func (op *ReshapeOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Reshape(outputGrad, op.input.Shape())}
}

func (op *ReshapeOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *ReshapeOp) Output() *tensor.RawTensor  { return op.output }
func (op *ReshapeOp) Name() string               { return "reshape" }
