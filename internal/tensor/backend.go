package tensor

// Backend defines the compute operations a device must provide. All
// operations allocate and return a new RawTensor; inputs are never written
// in place, which is what makes the autodiff decorator safe to layer on top.
//
// Shape or dtype violations are programmer errors and panic with an
// "op: detail" message.
type Backend interface {
	// Element-wise binary operations with NumPy-style broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Element-wise operations with a scalar. The scalar's concrete type
	// must match the tensor's dtype.
	AddScalar(a *RawTensor, scalar any) *RawTensor
	SubScalar(a *RawTensor, scalar any) *RawTensor
	MulScalar(a *RawTensor, scalar any) *RawTensor
	DivScalar(a *RawTensor, scalar any) *RawTensor

	// Element-wise math. Log panics on non-positive input.
	Exp(a *RawTensor) *RawTensor
	Log(a *RawTensor) *RawTensor

	// Linear algebra and layout.
	MatMul(a, b *RawTensor) *RawTensor
	Transpose(a *RawTensor, dim0, dim1 int) *RawTensor
	Reshape(a *RawTensor, shape Shape) *RawTensor

	// Reductions. Sum reduces to a scalar (shape {}); SumDim reduces one
	// dimension, optionally keeping it with size 1.
	Sum(a *RawTensor) *RawTensor
	SumDim(a *RawTensor, dim int, keepDim bool) *RawTensor

	// Indexing. Gather selects along dim with an index tensor of the same
	// rank; Embedding looks up rows of a [V, E] table.
	Gather(a *RawTensor, dim int, index *RawTensor) *RawTensor
	Embedding(weight *RawTensor, indices *RawTensor) *RawTensor

	// Name returns the backend's identifier (e.g. "cpu").
	Name() string

	// Device returns the device this backend computes on.
	Device() Device
}
