package ops

import "github.com/contrast-ml/contrast/internal/tensor"

// AddOp records c = a + b.
type AddOp struct {
	a, b, output *tensor.RawTensor
}

// NewAddOp creates an add operation record.
func NewAddOp(a, b, output *tensor.RawTensor) *AddOp {
	return &AddOp{a: a, b: b, output: output}
}

// Backward distributes the gradient to both operands, reducing over any
// broadcast dimensions.
func (op *AddOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{
		reduceBroadcast(outputGrad, op.a.Shape(), backend),
		reduceBroadcast(outputGrad, op.b.Shape(), backend),
	}
}

func (op *AddOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.a, op.b} }
func (op *AddOp) Output() *tensor.RawTensor  { return op.output }
func (op *AddOp) Name() string               { return "add" }
