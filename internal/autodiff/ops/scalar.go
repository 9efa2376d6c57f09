package ops

import "github.com/contrast-ml/contrast/internal/tensor"

// ScalarOp records an element-wise operation between a tensor and a scalar.
// The kind determines the backward rule; the scalar keeps the concrete type
// it had in the forward pass.
type ScalarOp struct {
	input, output *tensor.RawTensor
	scalar        any
	kind          scalarKind
}

type scalarKind int

const (
	scalarAdd scalarKind = iota
	scalarSub
	scalarMul
	scalarDiv
)

// NewAddScalarOp records y = x + s.
func NewAddScalarOp(input, output *tensor.RawTensor, scalar any) *ScalarOp {
	return &ScalarOp{input: input, output: output, scalar: scalar, kind: scalarAdd}
}

// NewSubScalarOp records y = x - s.
func NewSubScalarOp(input, output *tensor.RawTensor, scalar any) *ScalarOp {
	return &ScalarOp{input: input, output: output, scalar: scalar, kind: scalarSub}
}

// NewMulScalarOp records y = x * s.
func NewMulScalarOp(input, output *tensor.RawTensor, scalar any) *ScalarOp {
	return &ScalarOp{input: input, output: output, scalar: scalar, kind: scalarMul}
}

// NewDivScalarOp records y = x / s.
func NewDivScalarOp(input, output *tensor.RawTensor, scalar any) *ScalarOp {
	return &ScalarOp{input: input, output: output, scalar: scalar, kind: scalarDiv}
}

// Backward: add/sub pass the gradient through unchanged; mul scales it by
// the scalar; div scales it by 1/scalar.
func (op *ScalarOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	switch op.kind {
	case scalarAdd, scalarSub:
		return []*tensor.RawTensor{outputGrad}
	case scalarMul:
		return []*tensor.RawTensor{backend.MulScalar(outputGrad, op.scalar)}
	case scalarDiv:
		return []*tensor.RawTensor{backend.DivScalar(outputGrad, op.scalar)}
	default:
		panic("scalar op: unknown kind")
	}
}

func (op *ScalarOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *ScalarOp) Output() *tensor.RawTensor  { return op.output }

func (op *ScalarOp) Name() string {
	switch op.kind {
	case scalarAdd:
		return "add_scalar"
	case scalarSub:
		return "sub_scalar"
	case scalarMul:
		return "mul_scalar"
	default:
		return "div_scalar"
	}
}
