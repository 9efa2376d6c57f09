package cpu

import (
	"fmt"

	"github.com/contrast-ml/contrast/internal/tensor"
)

// AddScalar returns a + scalar element-wise.
func (b *Backend) AddScalar(a *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return b.scalarOp("add_scalar", a, scalar,
		func(v, s float32) float32 { return v + s },
		func(v, s float64) float64 { return v + s })
}

// SubScalar returns a - scalar element-wise.
func (b *Backend) SubScalar(a *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return b.scalarOp("sub_scalar", a, scalar,
		func(v, s float32) float32 { return v - s },
		func(v, s float64) float64 { return v - s })
}

// MulScalar returns a * scalar element-wise.
func (b *Backend) MulScalar(a *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return b.scalarOp("mul_scalar", a, scalar,
		func(v, s float32) float32 { return v * s },
		func(v, s float64) float64 { return v * s })
}

// DivScalar returns a / scalar element-wise.
func (b *Backend) DivScalar(a *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return b.scalarOp("div_scalar", a, scalar,
		func(v, s float32) float32 { return v / s },
		func(v, s float64) float64 { return v / s })
}

func (b *Backend) scalarOp(name string, a *tensor.RawTensor, scalar any,
	f32 func(float32, float32) float32, f64 func(float64, float64) float64) *tensor.RawTensor {

	out, err := tensor.NewRaw(a.Shape(), a.DType(), a.Device())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	switch a.DType() {
	case tensor.Float32:
		s, ok := scalar.(float32)
		if !ok {
			panic(fmt.Sprintf("%s: scalar type %T does not match tensor dtype float32", name, scalar))
		}
		in, dst := a.AsFloat32(), out.AsFloat32()
		for i, v := range in {
			dst[i] = f32(v, s)
		}
	case tensor.Float64:
		s, ok := scalar.(float64)
		if !ok {
			panic(fmt.Sprintf("%s: scalar type %T does not match tensor dtype float64", name, scalar))
		}
		in, dst := a.AsFloat64(), out.AsFloat64()
		for i, v := range in {
			dst[i] = f64(v, s)
		}
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, a.DType()))
	}
	return out
}
