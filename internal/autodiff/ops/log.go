package ops

import "github.com/contrast-ml/contrast/internal/tensor"

// LogOp records y = ln(x).
type LogOp struct {
	input, output *tensor.RawTensor
}

// NewLogOp creates a log operation record.
func NewLogOp(input, output *tensor.RawTensor) *LogOp {
	return &LogOp{input: input, output: output}
}

// Backward uses d(ln x)/dx = 1/x.
func (op *LogOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Div(outputGrad, op.input)}
}

func (op *LogOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *LogOp) Output() *tensor.RawTensor  { return op.output }
func (op *LogOp) Name() string               { return "log" }
