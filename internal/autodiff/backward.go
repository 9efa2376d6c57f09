package autodiff

import "github.com/contrast-ml/contrast/internal/tensor"

// BackwardCapable is a backend that can compute gradients: a tensor.Backend
// that also exposes its gradient tape.
type BackwardCapable interface {
	tensor.Backend
	GetTape() *GradientTape
}

// Backward computes gradients of a scalar loss w.r.t. every tensor recorded
// on the backend's tape. Recording is paused while the tape is walked so the
// backward ops themselves are not recorded.
func Backward[T tensor.DType, B BackwardCapable](loss *tensor.Tensor[T, B]) map[*tensor.RawTensor]*tensor.RawTensor {
	backend := loss.Backend()
	tape := backend.GetTape()

	wasRecording := tape.IsRecording()
	tape.StopRecording()
	defer func() {
		if wasRecording {
			tape.StartRecording()
		}
	}()

	return tape.Backward(loss.Raw(), backend)
}
