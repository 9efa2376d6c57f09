package tensor

import (
	"fmt"
	"math"
	"math/rand"
)

// FromSlice creates a tensor from a flat slice of data in row-major order.
func FromSlice[T DType, B Backend](data []T, shape Shape, backend B) (*Tensor[T, B], error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}

	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy), backend.Device())
	if err != nil {
		return nil, err
	}

	t := New[T](raw, backend)
	copy(t.Data(), data)
	return t, nil
}

// Zeros creates a tensor filled with zeros.
func Zeros[T DType, B Backend](shape Shape, backend B) *Tensor[T, B] {
	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy), backend.Device())
	if err != nil {
		panic(fmt.Sprintf("tensor: Zeros: %v", err))
	}
	return New[T](raw, backend)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, backend B) *Tensor[T, B] {
	return Full[T](shape, T(1), backend)
}

// Full creates a tensor filled with the given value.
func Full[T DType, B Backend](shape Shape, value T, backend B) *Tensor[T, B] {
	t := Zeros[T](shape, backend)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Randn creates a tensor with standard normal random values, using the
// Box-Muller transform for float dtypes.
func Randn[T DType, B Backend](shape Shape, backend B) *Tensor[T, B] {
	t := Zeros[T](shape, backend)
	data := t.Data()
	for i := 0; i < len(data); i += 2 {
		u1, u2 := rand.Float64(), rand.Float64()
		if u1 < 1e-12 {
			u1 = 1e-12
		}
		r := math.Sqrt(-2 * math.Log(u1))
		data[i] = T(r * math.Cos(2*math.Pi*u2))
		if i+1 < len(data) {
			data[i+1] = T(r * math.Sin(2*math.Pi*u2))
		}
	}
	return t
}

// Eye creates an n×n identity matrix.
func Eye[T DType, B Backend](n int, backend B) *Tensor[T, B] {
	t := Zeros[T](Shape{n, n}, backend)
	data := t.Data()
	for i := 0; i < n; i++ {
		data[i*n+i] = T(1)
	}
	return t
}
