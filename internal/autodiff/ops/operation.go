// Package ops defines the differentiable operations recorded on the
// gradient tape, one type per backend op, each carrying its backward rule.
package ops

import "github.com/contrast-ml/contrast/internal/tensor"

// Operation is a single recorded computation. Backward receives the gradient
// of the loss w.r.t. the operation's output and returns gradients w.r.t.
// each tensor in Inputs(), in order. A nil entry means no gradient flows to
// that input.
type Operation interface {
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor
	Inputs() []*tensor.RawTensor
	Output() *tensor.RawTensor
	Name() string
}
