package tensor

import (
	"fmt"
	"unsafe"
)

// Device represents where tensor data lives.
type Device int

// Supported devices.
const (
	CPU Device = iota
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "cpu"
	default:
		return "unknown"
	}
}

// RawTensor is the untyped storage behind a Tensor: a flat byte buffer plus
// shape, row-major strides, dtype, and device. Multiple RawTensors may share
// one buffer (views, tied parameters); writes through one are visible through
// all of them.
type RawTensor struct {
	data    []byte
	shape   Shape
	strides []int
	dtype   DataType
	device  Device
}

// NewRaw creates a new raw tensor with freshly allocated zeroed storage.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	byteSize := shape.NumElements() * dtype.Size()
	return &RawTensor{
		data:    make([]byte, byteSize),
		shape:   shape.Clone(),
		strides: shape.ComputeStrides(),
		dtype:   dtype,
		device:  device,
	}, nil
}

// Shape returns the tensor's shape. Callers must not mutate it.
func (rt *RawTensor) Shape() Shape { return rt.shape }

// Strides returns the tensor's row-major strides.
func (rt *RawTensor) Strides() []int { return rt.strides }

// DType returns the tensor's data type.
func (rt *RawTensor) DType() DataType { return rt.dtype }

// Device returns where the tensor's data lives.
func (rt *RawTensor) Device() Device { return rt.device }

// NumElements returns the number of elements in the tensor.
func (rt *RawTensor) NumElements() int { return rt.shape.NumElements() }

// ByteSize returns the size of the underlying buffer in bytes.
func (rt *RawTensor) ByteSize() int { return len(rt.data) }

// Data returns the raw byte buffer.
func (rt *RawTensor) Data() []byte { return rt.data }

// AsFloat32 reinterprets the buffer as []float32. Panics if the dtype does
// not match.
func (rt *RawTensor) AsFloat32() []float32 {
	if rt.dtype != Float32 {
		panic(fmt.Sprintf("tensor: AsFloat32 called on %s tensor", rt.dtype))
	}
	n := rt.NumElements()
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&rt.data[0])), n)
}

// AsFloat64 reinterprets the buffer as []float64. Panics if the dtype does
// not match.
func (rt *RawTensor) AsFloat64() []float64 {
	if rt.dtype != Float64 {
		panic(fmt.Sprintf("tensor: AsFloat64 called on %s tensor", rt.dtype))
	}
	n := rt.NumElements()
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*float64)(unsafe.Pointer(&rt.data[0])), n)
}

// AsInt32 reinterprets the buffer as []int32. Panics if the dtype does not
// match.
func (rt *RawTensor) AsInt32() []int32 {
	if rt.dtype != Int32 {
		panic(fmt.Sprintf("tensor: AsInt32 called on %s tensor", rt.dtype))
	}
	n := rt.NumElements()
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*int32)(unsafe.Pointer(&rt.data[0])), n)
}

// View returns a new RawTensor sharing this tensor's buffer. Shape and
// strides are copied, so the view can be reshaped without affecting the
// original; the data is shared.
func (rt *RawTensor) View() *RawTensor {
	return &RawTensor{
		data:    rt.data,
		shape:   rt.shape.Clone(),
		strides: append([]int(nil), rt.strides...),
		dtype:   rt.dtype,
		device:  rt.device,
	}
}

// Clone returns a deep copy with its own storage.
func (rt *RawTensor) Clone() *RawTensor {
	data := make([]byte, len(rt.data))
	copy(data, rt.data)
	return &RawTensor{
		data:    data,
		shape:   rt.shape.Clone(),
		strides: append([]int(nil), rt.strides...),
		dtype:   rt.dtype,
		device:  rt.device,
	}
}

// SharesStorage reports whether two raw tensors are backed by the same
// buffer. Used by tests and by optimizers to detect tied parameters.
func (rt *RawTensor) SharesStorage(other *RawTensor) bool {
	if len(rt.data) == 0 || len(other.data) == 0 {
		return false
	}
	return &rt.data[0] == &other.data[0]
}
