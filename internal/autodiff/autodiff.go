// Package autodiff provides reverse-mode automatic differentiation as a
// decorator over any compute backend.
package autodiff

import (
	"github.com/contrast-ml/contrast/internal/autodiff/ops"
	"github.com/contrast-ml/contrast/internal/tensor"
)

// AutodiffBackend wraps an inner backend and records every operation on a
// gradient tape while recording is enabled. It satisfies tensor.Backend, so
// any code written against the interface becomes differentiable by swapping
// the backend.
type AutodiffBackend[B tensor.Backend] struct {
	inner B
	tape  *GradientTape
}

// New wraps a backend with gradient recording. The tape starts recording
// immediately.
func New[B tensor.Backend](inner B) *AutodiffBackend[B] {
	tape := NewGradientTape()
	tape.StartRecording()
	return &AutodiffBackend[B]{inner: inner, tape: tape}
}

// GetTape returns the backend's gradient tape.
func (a *AutodiffBackend[B]) GetTape() *GradientTape { return a.tape }

// Inner returns the wrapped backend.
func (a *AutodiffBackend[B]) Inner() B { return a.inner }

// Name returns the decorated backend name.
func (a *AutodiffBackend[B]) Name() string { return "autodiff(" + a.inner.Name() + ")" }

// Device returns the inner backend's device.
func (a *AutodiffBackend[B]) Device() tensor.Device { return a.inner.Device() }

func (a *AutodiffBackend[B]) record(op ops.Operation) {
	if a.tape.IsRecording() {
		a.tape.Record(op)
	}
}

// Add computes a + b and records the operation.
func (a *AutodiffBackend[B]) Add(x, y *tensor.RawTensor) *tensor.RawTensor {
	out := a.inner.Add(x, y)
	a.record(ops.NewAddOp(x, y, out))
	return out
}

// Sub computes a - b and records the operation.
func (a *AutodiffBackend[B]) Sub(x, y *tensor.RawTensor) *tensor.RawTensor {
	out := a.inner.Sub(x, y)
	a.record(ops.NewSubOp(x, y, out))
	return out
}

// Mul computes a * b and records the operation.
func (a *AutodiffBackend[B]) Mul(x, y *tensor.RawTensor) *tensor.RawTensor {
	out := a.inner.Mul(x, y)
	a.record(ops.NewMulOp(x, y, out))
	return out
}

// Div computes a / b and records the operation.
func (a *AutodiffBackend[B]) Div(x, y *tensor.RawTensor) *tensor.RawTensor {
	out := a.inner.Div(x, y)
	a.record(ops.NewDivOp(x, y, out))
	return out
}

// AddScalar computes a + s and records the operation.
func (a *AutodiffBackend[B]) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	out := a.inner.AddScalar(x, scalar)
	a.record(ops.NewAddScalarOp(x, out, scalar))
	return out
}

// SubScalar computes a - s and records the operation.
func (a *AutodiffBackend[B]) SubScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	out := a.inner.SubScalar(x, scalar)
	a.record(ops.NewSubScalarOp(x, out, scalar))
	return out
}

// MulScalar computes a * s and records the operation.
func (a *AutodiffBackend[B]) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	out := a.inner.MulScalar(x, scalar)
	a.record(ops.NewMulScalarOp(x, out, scalar))
	return out
}

// DivScalar computes a / s and records the operation.
func (a *AutodiffBackend[B]) DivScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	out := a.inner.DivScalar(x, scalar)
	a.record(ops.NewDivScalarOp(x, out, scalar))
	return out
}

// Exp computes e^a and records the operation.
func (a *AutodiffBackend[B]) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	out := a.inner.Exp(x)
	a.record(ops.NewExpOp(x, out))
	return out
}

// Log computes ln(a) and records the operation.
func (a *AutodiffBackend[B]) Log(x *tensor.RawTensor) *tensor.RawTensor {
	out := a.inner.Log(x)
	a.record(ops.NewLogOp(x, out))
	return out
}

// MatMul computes the matrix product and records the operation.
func (a *AutodiffBackend[B]) MatMul(x, y *tensor.RawTensor) *tensor.RawTensor {
	out := a.inner.MatMul(x, y)
	a.record(ops.NewMatMulOp(x, y, out))
	return out
}

// Transpose swaps two dims and records the operation.
func (a *AutodiffBackend[B]) Transpose(x *tensor.RawTensor, dim0, dim1 int) *tensor.RawTensor {
	out := a.inner.Transpose(x, dim0, dim1)
	a.record(ops.NewTransposeOp(x, out, dim0, dim1))
	return out
}

// Reshape changes the shape and records the operation.
func (a *AutodiffBackend[B]) Reshape(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	out := a.inner.Reshape(x, shape)
	a.record(ops.NewReshapeOp(x, out))
	return out
}

// Sum reduces to a scalar and records the operation.
func (a *AutodiffBackend[B]) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	out := a.inner.Sum(x)
	a.record(ops.NewSumOp(x, out))
	return out
}

// SumDim reduces one dimension and records the operation.
func (a *AutodiffBackend[B]) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	out := a.inner.SumDim(x, dim, keepDim)
	a.record(ops.NewSumDimOp(x, out, dim, keepDim))
	return out
}

// Gather selects along a dim and records the operation.
func (a *AutodiffBackend[B]) Gather(x *tensor.RawTensor, dim int, index *tensor.RawTensor) *tensor.RawTensor {
	out := a.inner.Gather(x, dim, index)
	a.record(ops.NewGatherOp(x, out, index, dim))
	return out
}

// Embedding looks up rows and records the operation.
func (a *AutodiffBackend[B]) Embedding(weight *tensor.RawTensor, indices *tensor.RawTensor) *tensor.RawTensor {
	out := a.inner.Embedding(weight, indices)
	a.record(ops.NewEmbeddingOp(weight, out, indices))
	return out
}
