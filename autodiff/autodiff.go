// Copyright 2026 Contrast ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides the public automatic differentiation API.
//
// Wrap any backend to record operations on a gradient tape:
//
//	backend := autodiff.New(cpu.New())
//	loss := criterion.Forward(input, target)
//	grads := autodiff.Backward(loss)
package autodiff

import (
	"github.com/contrast-ml/contrast/internal/autodiff"
	"github.com/contrast-ml/contrast/internal/tensor"
)

// AutodiffBackend wraps an inner backend and records operations on a
// gradient tape.
type AutodiffBackend[B tensor.Backend] = autodiff.AutodiffBackend[B]

// GradientTape records operations for reverse-mode differentiation.
type GradientTape = autodiff.GradientTape

// BackwardCapable is a backend that can compute gradients.
type BackwardCapable = autodiff.BackwardCapable

// New wraps a backend with gradient recording. The tape starts recording
// immediately.
func New[B tensor.Backend](inner B) *AutodiffBackend[B] {
	return autodiff.New(inner)
}

// Backward computes gradients of a scalar loss w.r.t. every tensor recorded
// on the backend's tape. The returned map is keyed by raw tensors; look up
// a parameter's gradient with grads[param.Tensor().Raw()].
func Backward[T tensor.DType, B BackwardCapable](loss *tensor.Tensor[T, B]) map[*tensor.RawTensor]*tensor.RawTensor {
	return autodiff.Backward(loss)
}
