package ops

import "github.com/contrast-ml/contrast/internal/tensor"

// DivOp records c = a / b (element-wise).
type DivOp struct {
	a, b, output *tensor.RawTensor
}

// NewDivOp creates a divide operation record.
func NewDivOp(a, b, output *tensor.RawTensor) *DivOp {
	return &DivOp{a: a, b: b, output: output}
}

// Backward applies the quotient rule: dL/da = dL/dc / b,
// dL/db = -dL/dc * a / b^2, each reduced over broadcast dimensions.
func (op *DivOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	gradA := reduceBroadcast(backend.Div(outputGrad, op.b), op.a.Shape(), backend)

	bSquared := backend.Mul(op.b, op.b)
	gradB := backend.Div(backend.Mul(outputGrad, op.a), bSquared)
	gradB = reduceBroadcast(negate(gradB, backend), op.b.Shape(), backend)

	return []*tensor.RawTensor{gradA, gradB}
}

func (op *DivOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.a, op.b} }
func (op *DivOp) Output() *tensor.RawTensor  { return op.output }
func (op *DivOp) Name() string               { return "div" }
