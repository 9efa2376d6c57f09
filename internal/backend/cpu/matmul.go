package cpu

import (
	"fmt"

	"github.com/contrast-ml/contrast/internal/tensor"
)

// MatMul returns the matrix product of two 2-D tensors [m,k] x [k,n] -> [m,n].
func (b *Backend) MatMul(x, y *tensor.RawTensor) *tensor.RawTensor {
	xShape, yShape := x.Shape(), y.Shape()
	if len(xShape) != 2 || len(yShape) != 2 {
		panic(fmt.Sprintf("matmul: expected 2-D tensors, got %v and %v", xShape, yShape))
	}
	if xShape[1] != yShape[0] {
		panic(fmt.Sprintf("matmul: inner dimensions do not match: %v x %v", xShape, yShape))
	}
	if x.DType() != y.DType() {
		panic(fmt.Sprintf("matmul: dtype mismatch: %s vs %s", x.DType(), y.DType()))
	}

	m, k, n := xShape[0], xShape[1], yShape[1]
	out, err := tensor.NewRaw(tensor.Shape{m, n}, x.DType(), x.Device())
	if err != nil {
		panic(fmt.Sprintf("matmul: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		matmulData(x.AsFloat32(), y.AsFloat32(), out.AsFloat32(), m, k, n)
	case tensor.Float64:
		matmulData(x.AsFloat64(), y.AsFloat64(), out.AsFloat64(), m, k, n)
	default:
		panic(fmt.Sprintf("matmul: unsupported dtype %s", x.DType()))
	}
	return out
}

// matmulData uses i-k-j loop order so the inner loop walks both b and c
// contiguously.
func matmulData[T tensor.DType](a, b, c []T, m, k, n int) {
	for i := 0; i < m; i++ {
		for p := 0; p < k; p++ {
			av := a[i*k+p]
			if av == 0 {
				continue
			}
			bRow := b[p*n : (p+1)*n]
			cRow := c[i*n : (i+1)*n]
			for j := range bRow {
				cRow[j] += av * bRow[j]
			}
		}
	}
}
