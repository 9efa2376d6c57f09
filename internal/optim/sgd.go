package optim

import (
	"fmt"

	"github.com/contrast-ml/contrast/internal/nn"
	"github.com/contrast-ml/contrast/internal/tensor"
)

// SGD implements stochastic gradient descent with optional momentum.
// Updates are applied in place to the parameter storage, so layers sharing
// a tied parameter all observe the update.
type SGD[B tensor.Backend] struct {
	params   []*nn.Parameter[B]
	lr       float32
	momentum float32
	velocity map[*tensor.RawTensor][]float32
}

// NewSGD creates an SGD optimizer over the given parameters. Panics on a
// non-positive learning rate or negative momentum.
func NewSGD[B tensor.Backend](params []*nn.Parameter[B], lr, momentum float32) *SGD[B] {
	if lr <= 0 {
		panic(fmt.Sprintf("sgd: learning rate must be positive, got %g", lr))
	}
	if momentum < 0 {
		panic(fmt.Sprintf("sgd: momentum must be non-negative, got %g", momentum))
	}
	return &SGD[B]{
		params:   params,
		lr:       lr,
		momentum: momentum,
		velocity: make(map[*tensor.RawTensor][]float32),
	}
}

// Step applies one SGD update: w -= lr * v, with v = momentum*v + g.
// A parameter listed twice (tied weights registered through two owners) is
// updated once.
func (s *SGD[B]) Step(grads map[*tensor.RawTensor]*tensor.RawTensor) {
	seen := make(map[*tensor.RawTensor]bool, len(s.params))

	for _, p := range s.params {
		raw := p.Tensor().Raw()
		if seen[raw] {
			continue
		}
		seen[raw] = true

		g, ok := grads[raw]
		if !ok {
			continue
		}
		if !g.Shape().Equal(raw.Shape()) {
			panic(fmt.Sprintf("sgd: gradient shape %v does not match parameter %q shape %v",
				g.Shape(), p.Name(), raw.Shape()))
		}

		w := raw.AsFloat32()
		gd := g.AsFloat32()

		if s.momentum > 0 {
			v, ok := s.velocity[raw]
			if !ok {
				v = make([]float32, len(w))
				s.velocity[raw] = v
			}
			for i := range w {
				v[i] = s.momentum*v[i] + gd[i]
				w[i] -= s.lr * v[i]
			}
		} else {
			for i := range w {
				w[i] -= s.lr * gd[i]
			}
		}
	}
}

// ZeroGrad clears the gradients stored on the parameters.
func (s *SGD[B]) ZeroGrad() {
	for _, p := range s.params {
		p.ZeroGrad()
	}
}

// LearningRate returns the configured learning rate.
func (s *SGD[B]) LearningRate() float32 { return s.lr }
