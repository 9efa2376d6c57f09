// Copyright 2026 Contrast ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the public API for the pure-Go CPU backend.
package cpu

import (
	"github.com/contrast-ml/contrast/internal/backend/cpu"
)

// Backend is the pure-Go CPU implementation of tensor.Backend.
type Backend = cpu.Backend

// New creates a new CPU backend.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
func New() *Backend {
	return cpu.New()
}
