package ops

import "github.com/contrast-ml/contrast/internal/tensor"

// MulOp records c = a * b (element-wise).
type MulOp struct {
	a, b, output *tensor.RawTensor
}

// NewMulOp creates a multiply operation record.
func NewMulOp(a, b, output *tensor.RawTensor) *MulOp {
	return &MulOp{a: a, b: b, output: output}
}

// Backward applies the product rule: dL/da = dL/dc * b, dL/db = dL/dc * a,
// each reduced over broadcast dimensions.
func (op *MulOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{
		reduceBroadcast(backend.Mul(outputGrad, op.b), op.a.Shape(), backend),
		reduceBroadcast(backend.Mul(outputGrad, op.a), op.b.Shape(), backend),
	}
}

func (op *MulOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.a, op.b} }
func (op *MulOp) Output() *tensor.RawTensor  { return op.output }
func (op *MulOp) Name() string               { return "mul" }
