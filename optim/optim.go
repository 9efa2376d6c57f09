// Copyright 2026 Contrast ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the public optimizer API.
package optim

import (
	"github.com/contrast-ml/contrast/internal/nn"
	"github.com/contrast-ml/contrast/internal/optim"
	"github.com/contrast-ml/contrast/internal/tensor"
)

// Optimizer updates parameters from a gradient map produced by
// autodiff.Backward.
type Optimizer = optim.Optimizer

// SGD implements stochastic gradient descent with optional momentum.
type SGD[B tensor.Backend] = optim.SGD[B]

// NewSGD creates an SGD optimizer over the given parameters.
//
// Example:
//
//	opt := optim.NewSGD(model.Parameters(), 0.01, 0.9)
//	grads := autodiff.Backward(loss)
//	opt.Step(grads)
func NewSGD[B tensor.Backend](params []*nn.Parameter[B], lr, momentum float32) *SGD[B] {
	return optim.NewSGD(params, lr, momentum)
}
