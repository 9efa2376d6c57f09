package ops

import "github.com/contrast-ml/contrast/internal/tensor"

// MatMulOp records C = A @ B for 2-D tensors.
type MatMulOp struct {
	a, b, output *tensor.RawTensor
}

// NewMatMulOp creates a matmul operation record.
func NewMatMulOp(a, b, output *tensor.RawTensor) *MatMulOp {
	return &MatMulOp{a: a, b: b, output: output}
}

// Backward: dL/dA = dL/dC @ B^T, dL/dB = A^T @ dL/dC.
func (op *MatMulOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	gradA := backend.MatMul(outputGrad, backend.Transpose(op.b, 0, 1))
	gradB := backend.MatMul(backend.Transpose(op.a, 0, 1), outputGrad)
	return []*tensor.RawTensor{gradA, gradB}
}

func (op *MatMulOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.a, op.b} }
func (op *MatMulOp) Output() *tensor.RawTensor  { return op.output }
func (op *MatMulOp) Name() string               { return "matmul" }
