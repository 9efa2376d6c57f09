package ops

import "github.com/contrast-ml/contrast/internal/tensor"

// TransposeOp records y = transpose(x, dim0, dim1).
type TransposeOp struct {
	input, output *tensor.RawTensor
	dim0, dim1    int
}

// NewTransposeOp creates a transpose operation record.
func NewTransposeOp(input, output *tensor.RawTensor, dim0, dim1 int) *TransposeOp {
	return &TransposeOp{input: input, output: output, dim0: dim0, dim1: dim1}
}

// Backward transposes the gradient back. Swapping the same pair of dims is
// its own inverse.
func (op *TransposeOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Transpose(outputGrad, op.dim0, op.dim1)}
}

func (op *TransposeOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *TransposeOp) Output() *tensor.RawTensor  { return op.output }
func (op *TransposeOp) Name() string               { return "transpose" }
