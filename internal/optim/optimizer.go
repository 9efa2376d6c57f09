// Package optim provides parameter optimizers consuming gradient maps
// produced by the autodiff tape.
package optim

import "github.com/contrast-ml/contrast/internal/tensor"

// Optimizer updates parameters from a gradient map keyed by the parameters'
// raw tensors, as returned by autodiff.Backward.
type Optimizer interface {
	// Step applies one update. Parameters without an entry in grads are
	// left unchanged.
	Step(grads map[*tensor.RawTensor]*tensor.RawTensor)

	// ZeroGrad clears gradients stored on the parameters.
	ZeroGrad()
}
