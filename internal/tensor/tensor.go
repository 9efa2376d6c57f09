package tensor

import "fmt"

// Tensor is a typed, backend-bound view over a RawTensor. The type parameter
// T fixes the element type at compile time; B fixes the backend, so tensors
// from different backends cannot be mixed accidentally.
type Tensor[T DType, B Backend] struct {
	raw     *RawTensor
	backend B
}

// New wraps a RawTensor in a typed tensor. Panics if the raw dtype does not
// match T.
func New[T DType, B Backend](raw *RawTensor, backend B) *Tensor[T, B] {
	var dummy T
	if raw.DType() != inferDataType(dummy) {
		panic(fmt.Sprintf("tensor: dtype mismatch: raw is %s, want %s",
			raw.DType(), inferDataType(dummy)))
	}
	return &Tensor[T, B]{raw: raw, backend: backend}
}

// Raw returns the underlying raw tensor.
func (t *Tensor[T, B]) Raw() *RawTensor { return t.raw }

// Backend returns the backend this tensor is bound to.
func (t *Tensor[T, B]) Backend() B { return t.backend }

// Shape returns the tensor's shape.
func (t *Tensor[T, B]) Shape() Shape { return t.raw.Shape() }

// DType returns the tensor's data type.
func (t *Tensor[T, B]) DType() DataType { return t.raw.DType() }

// NumElements returns the number of elements.
func (t *Tensor[T, B]) NumElements() int { return t.raw.NumElements() }

// Data returns the tensor's elements as a typed slice sharing the tensor's
// storage.
func (t *Tensor[T, B]) Data() []T {
	switch t.raw.DType() {
	case Float32:
		return any(t.raw.AsFloat32()).([]T)
	case Float64:
		return any(t.raw.AsFloat64()).([]T)
	case Int32:
		return any(t.raw.AsInt32()).([]T)
	default:
		panic("tensor: unsupported dtype")
	}
}

// Item returns the single element of a scalar tensor. Panics if the tensor
// has more than one element.
func (t *Tensor[T, B]) Item() T {
	if t.raw.NumElements() != 1 {
		panic(fmt.Sprintf("tensor: Item on tensor with %d elements", t.raw.NumElements()))
	}
	return t.Data()[0]
}

// At returns the element at the given multi-dimensional index.
func (t *Tensor[T, B]) At(indices ...int) T {
	return t.Data()[t.flatIndex(indices)]
}

// Set writes the element at the given multi-dimensional index.
func (t *Tensor[T, B]) Set(value T, indices ...int) {
	t.Data()[t.flatIndex(indices)] = value
}

func (t *Tensor[T, B]) flatIndex(indices []int) int {
	shape := t.raw.Shape()
	if len(indices) != len(shape) {
		panic(fmt.Sprintf("tensor: expected %d indices, got %d", len(shape), len(indices)))
	}
	strides := t.raw.Strides()
	flat := 0
	for i, idx := range indices {
		if idx < 0 || idx >= shape[i] {
			panic(fmt.Sprintf("tensor: index %d out of range for dimension %d (size %d)",
				idx, i, shape[i]))
		}
		flat += idx * strides[i]
	}
	return flat
}

// Clone returns a deep copy with its own storage.
func (t *Tensor[T, B]) Clone() *Tensor[T, B] {
	return &Tensor[T, B]{raw: t.raw.Clone(), backend: t.backend}
}

// String returns a short description for debugging.
func (t *Tensor[T, B]) String() string {
	return fmt.Sprintf("Tensor[%s]%v on %s", t.raw.DType(), t.raw.Shape(), t.backend.Name())
}
