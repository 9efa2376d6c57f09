package autodiff

import (
	"fmt"

	"github.com/contrast-ml/contrast/internal/autodiff/ops"
	"github.com/contrast-ml/contrast/internal/tensor"
)

// GradientTape records operations during the forward pass and replays them
// in reverse to compute gradients. A tape is not safe for concurrent use;
// the caller serializes forward, backward, and parameter updates.
type GradientTape struct {
	operations []ops.Operation
	recording  bool
}

// NewGradientTape creates an empty tape. Recording starts off.
func NewGradientTape() *GradientTape {
	return &GradientTape{}
}

// StartRecording turns on operation recording.
func (t *GradientTape) StartRecording() { t.recording = true }

// StopRecording turns off operation recording.
func (t *GradientTape) StopRecording() { t.recording = false }

// IsRecording reports whether operations are currently recorded.
func (t *GradientTape) IsRecording() bool { return t.recording }

// Record appends an operation to the tape.
func (t *GradientTape) Record(op ops.Operation) {
	t.operations = append(t.operations, op)
}

// NumOperations returns how many operations the tape holds.
func (t *GradientTape) NumOperations() int { return len(t.operations) }

// Reset discards all recorded operations. Call between training steps.
func (t *GradientTape) Reset() {
	t.operations = t.operations[:0]
}

// Backward computes gradients of loss w.r.t. every tensor on the tape by
// walking the recorded operations in reverse, accumulating per-RawTensor
// gradients. The returned map is keyed by the raw tensors that appeared as
// operation inputs.
func (t *GradientTape) Backward(loss *tensor.RawTensor, backend tensor.Backend) map[*tensor.RawTensor]*tensor.RawTensor {
	grads := make(map[*tensor.RawTensor]*tensor.RawTensor)
	grads[loss] = onesLike(loss)

	for i := len(t.operations) - 1; i >= 0; i-- {
		op := t.operations[i]
		outputGrad, ok := grads[op.Output()]
		if !ok {
			continue // branch not connected to the loss
		}

		inputGrads := op.Backward(outputGrad, backend)
		inputs := op.Inputs()
		if len(inputGrads) != len(inputs) {
			panic(fmt.Sprintf("autodiff: op %s returned %d gradients for %d inputs",
				op.Name(), len(inputGrads), len(inputs)))
		}

		for j, input := range inputs {
			g := inputGrads[j]
			if g == nil {
				continue
			}
			if existing, ok := grads[input]; ok {
				grads[input] = backend.Add(existing, g)
			} else {
				grads[input] = g
			}
		}
	}
	return grads
}

func onesLike(t *tensor.RawTensor) *tensor.RawTensor {
	out, err := tensor.NewRaw(t.Shape(), t.DType(), t.Device())
	if err != nil {
		panic(fmt.Sprintf("autodiff: %v", err))
	}
	switch t.DType() {
	case tensor.Float32:
		data := out.AsFloat32()
		for i := range data {
			data[i] = 1
		}
	case tensor.Float64:
		data := out.AsFloat64()
		for i := range data {
			data[i] = 1
		}
	default:
		panic(fmt.Sprintf("autodiff: cannot seed gradient for %s tensor", t.DType()))
	}
	return out
}
