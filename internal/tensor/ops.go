package tensor

// Method wrappers delegating to the backend. Each returns a new tensor;
// operands are never modified.

// Add returns t + other element-wise, with broadcasting.
func (t *Tensor[T, B]) Add(other *Tensor[T, B]) *Tensor[T, B] {
	return New[T](t.backend.Add(t.raw, other.raw), t.backend)
}

// Sub returns t - other element-wise, with broadcasting.
func (t *Tensor[T, B]) Sub(other *Tensor[T, B]) *Tensor[T, B] {
	return New[T](t.backend.Sub(t.raw, other.raw), t.backend)
}

// Mul returns t * other element-wise, with broadcasting.
func (t *Tensor[T, B]) Mul(other *Tensor[T, B]) *Tensor[T, B] {
	return New[T](t.backend.Mul(t.raw, other.raw), t.backend)
}

// Div returns t / other element-wise, with broadcasting.
func (t *Tensor[T, B]) Div(other *Tensor[T, B]) *Tensor[T, B] {
	return New[T](t.backend.Div(t.raw, other.raw), t.backend)
}

// AddScalar returns t + scalar element-wise.
func (t *Tensor[T, B]) AddScalar(scalar T) *Tensor[T, B] {
	return New[T](t.backend.AddScalar(t.raw, scalar), t.backend)
}

// SubScalar returns t - scalar element-wise.
func (t *Tensor[T, B]) SubScalar(scalar T) *Tensor[T, B] {
	return New[T](t.backend.SubScalar(t.raw, scalar), t.backend)
}

// MulScalar returns t * scalar element-wise.
func (t *Tensor[T, B]) MulScalar(scalar T) *Tensor[T, B] {
	return New[T](t.backend.MulScalar(t.raw, scalar), t.backend)
}

// DivScalar returns t / scalar element-wise.
func (t *Tensor[T, B]) DivScalar(scalar T) *Tensor[T, B] {
	return New[T](t.backend.DivScalar(t.raw, scalar), t.backend)
}

// Exp returns e^t element-wise.
func (t *Tensor[T, B]) Exp() *Tensor[T, B] {
	return New[T](t.backend.Exp(t.raw), t.backend)
}

// Log returns the natural logarithm element-wise. Panics on non-positive
// elements.
func (t *Tensor[T, B]) Log() *Tensor[T, B] {
	return New[T](t.backend.Log(t.raw), t.backend)
}

// MatMul returns the matrix product of two 2-D tensors.
func (t *Tensor[T, B]) MatMul(other *Tensor[T, B]) *Tensor[T, B] {
	return New[T](t.backend.MatMul(t.raw, other.raw), t.backend)
}

// Transpose swaps two dimensions.
func (t *Tensor[T, B]) Transpose(dim0, dim1 int) *Tensor[T, B] {
	return New[T](t.backend.Transpose(t.raw, dim0, dim1), t.backend)
}

// Reshape returns a tensor with the same data and a new shape. The number of
// elements must match.
func (t *Tensor[T, B]) Reshape(shape ...int) *Tensor[T, B] {
	return New[T](t.backend.Reshape(t.raw, Shape(shape)), t.backend)
}

// Sum reduces all elements to a scalar tensor (shape {}).
func (t *Tensor[T, B]) Sum() *Tensor[T, B] {
	return New[T](t.backend.Sum(t.raw), t.backend)
}

// SumDim reduces one dimension, optionally keeping it with size 1.
func (t *Tensor[T, B]) SumDim(dim int, keepDim bool) *Tensor[T, B] {
	return New[T](t.backend.SumDim(t.raw, dim, keepDim), t.backend)
}

// Gather selects elements along dim using an index tensor of the same rank.
func (t *Tensor[T, B]) Gather(dim int, index *Tensor[int32, B]) *Tensor[T, B] {
	return New[T](t.backend.Gather(t.raw, dim, index.raw), t.backend)
}

// Embedding treats t as a [V, E] table and looks up rows by index, producing
// an output of shape indices.Shape() + [E].
func (t *Tensor[T, B]) Embedding(indices *Tensor[int32, B]) *Tensor[T, B] {
	return New[T](t.backend.Embedding(t.raw, indices.raw), t.backend)
}
