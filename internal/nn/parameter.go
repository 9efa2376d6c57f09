package nn

import "github.com/contrast-ml/contrast/internal/tensor"

// Parameter is a named trainable tensor with an optional gradient slot.
// Layers may share one Parameter (weight tying); updates through either
// owner are visible to both because the tensor storage is shared.
type Parameter[B tensor.Backend] struct {
	name   string
	tensor *tensor.Tensor[float32, B]
	grad   *tensor.Tensor[float32, B]
}

// NewParameter creates a named parameter wrapping the given tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return &Parameter[B]{name: name, tensor: t}
}

// Name returns the parameter's name.
func (p *Parameter[B]) Name() string { return p.name }

// Tensor returns the parameter's data tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float32, B] { return p.tensor }

// Grad returns the stored gradient, or nil if none has been set.
func (p *Parameter[B]) Grad() *tensor.Tensor[float32, B] { return p.grad }

// SetGrad stores a gradient for this parameter.
func (p *Parameter[B]) SetGrad(g *tensor.Tensor[float32, B]) { p.grad = g }

// ZeroGrad clears the stored gradient.
func (p *Parameter[B]) ZeroGrad() { p.grad = nil }
