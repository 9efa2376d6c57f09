package cpu

import (
	"fmt"
	"math"

	"github.com/contrast-ml/contrast/internal/tensor"
)

// Exp returns e^a element-wise.
func (b *Backend) Exp(a *tensor.RawTensor) *tensor.RawTensor {
	return b.unaryOp("exp", a,
		func(v float32) float32 { return float32(math.Exp(float64(v))) },
		func(v float64) float64 { return math.Exp(v) })
}

// Log returns the natural logarithm element-wise. Panics on non-positive
// input so a numeric underflow upstream fails loudly instead of producing
// NaN losses.
func (b *Backend) Log(a *tensor.RawTensor) *tensor.RawTensor {
	return b.unaryOp("log", a,
		func(v float32) float32 {
			if v <= 0 {
				panic(fmt.Sprintf("log: non-positive input %g", v))
			}
			return float32(math.Log(float64(v)))
		},
		func(v float64) float64 {
			if v <= 0 {
				panic(fmt.Sprintf("log: non-positive input %g", v))
			}
			return math.Log(v)
		})
}

func (b *Backend) unaryOp(name string, a *tensor.RawTensor,
	f32 func(float32) float32, f64 func(float64) float64) *tensor.RawTensor {

	out, err := tensor.NewRaw(a.Shape(), a.DType(), a.Device())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	switch a.DType() {
	case tensor.Float32:
		in, dst := a.AsFloat32(), out.AsFloat32()
		for i, v := range in {
			dst[i] = f32(v)
		}
	case tensor.Float64:
		in, dst := a.AsFloat64(), out.AsFloat64()
		for i, v := range in {
			dst[i] = f64(v)
		}
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, a.DType()))
	}
	return out
}
