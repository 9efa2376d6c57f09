package ops

import "github.com/contrast-ml/contrast/internal/tensor"

// SubOp records c = a - b.
type SubOp struct {
	a, b, output *tensor.RawTensor
}

// NewSubOp creates a subtract operation record.
func NewSubOp(a, b, output *tensor.RawTensor) *SubOp {
	return &SubOp{a: a, b: b, output: output}
}

// Backward passes the gradient to a and its negation to b, reducing over any
// broadcast dimensions.
func (op *SubOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{
		reduceBroadcast(outputGrad, op.a.Shape(), backend),
		reduceBroadcast(negate(outputGrad, backend), op.b.Shape(), backend),
	}
}

func (op *SubOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.a, op.b} }
func (op *SubOp) Output() *tensor.RawTensor  { return op.output }
func (op *SubOp) Name() string               { return "sub" }
