package tensor_test

import (
	"testing"

	"github.com/contrast-ml/contrast/internal/backend/cpu"
	"github.com/contrast-ml/contrast/internal/tensor"
)

func TestFromSlice(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	if !x.Shape().Equal(tensor.Shape{2, 3}) {
		t.Errorf("shape = %v, want [2 3]", x.Shape())
	}
	if got := x.At(1, 2); got != 6 {
		t.Errorf("At(1, 2) = %v, want 6", got)
	}
}

func TestFromSliceLengthMismatch(t *testing.T) {
	backend := cpu.New()

	_, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{2, 2}, backend)
	if err == nil {
		t.Fatal("expected error for mismatched data length")
	}
}

func TestFromSliceInvalidShape(t *testing.T) {
	backend := cpu.New()

	_, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2, -1}, backend)
	if err == nil {
		t.Fatal("expected error for invalid shape")
	}
}

func TestZerosOnesFull(t *testing.T) {
	backend := cpu.New()

	z := tensor.Zeros[float32](tensor.Shape{3}, backend)
	for i, v := range z.Data() {
		if v != 0 {
			t.Errorf("Zeros[%d] = %v, want 0", i, v)
		}
	}

	o := tensor.Ones[float32](tensor.Shape{3}, backend)
	for i, v := range o.Data() {
		if v != 1 {
			t.Errorf("Ones[%d] = %v, want 1", i, v)
		}
	}

	f := tensor.Full[float64](tensor.Shape{2, 2}, 3.5, backend)
	for i, v := range f.Data() {
		if v != 3.5 {
			t.Errorf("Full[%d] = %v, want 3.5", i, v)
		}
	}
}

func TestEye(t *testing.T) {
	backend := cpu.New()

	eye := tensor.Eye[float32](3, backend)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := float32(0)
			if i == j {
				want = 1
			}
			if got := eye.At(i, j); got != want {
				t.Errorf("Eye(%d, %d) = %v, want %v", i, j, got, want)
			}
		}
	}
}

func TestItem(t *testing.T) {
	backend := cpu.New()

	s, err := tensor.FromSlice([]float32{42}, tensor.Shape{1}, backend)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Item(); got != 42 {
		t.Errorf("Item() = %v, want 42", got)
	}
}

func TestItemPanicsOnNonScalar(t *testing.T) {
	backend := cpu.New()
	x := tensor.Zeros[float32](tensor.Shape{2, 2}, backend)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	x.Item()
}

func TestSetAt(t *testing.T) {
	backend := cpu.New()

	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
	x.Set(7, 1, 1)
	if got := x.At(1, 1); got != 7 {
		t.Errorf("At(1, 1) = %v, want 7", got)
	}
}

func TestCloneIndependence(t *testing.T) {
	backend := cpu.New()

	x, _ := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, backend)
	y := x.Clone()
	y.Set(9, 0)

	if x.At(0) != 1 {
		t.Errorf("clone mutation leaked into original: %v", x.At(0))
	}
}

func TestRawSharesStorage(t *testing.T) {
	backend := cpu.New()

	x := tensor.Zeros[float32](tensor.Shape{4}, backend)
	view := x.Raw().View()
	if !x.Raw().SharesStorage(view) {
		t.Error("view should share storage with its origin")
	}
	if x.Raw().SharesStorage(x.Raw().Clone()) {
		t.Error("clone should not share storage")
	}
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		a, b, want tensor.Shape
		wantErr    bool
	}{
		{tensor.Shape{2, 3}, tensor.Shape{2, 3}, tensor.Shape{2, 3}, false},
		{tensor.Shape{2, 1}, tensor.Shape{2, 3}, tensor.Shape{2, 3}, false},
		{tensor.Shape{3}, tensor.Shape{2, 3}, tensor.Shape{2, 3}, false},
		{tensor.Shape{}, tensor.Shape{4, 5}, tensor.Shape{4, 5}, false},
		{tensor.Shape{2, 1, 4}, tensor.Shape{3, 1}, tensor.Shape{2, 3, 4}, false},
		{tensor.Shape{2, 3}, tensor.Shape{2, 4}, nil, true},
	}

	for _, tc := range tests {
		got, _, err := tensor.BroadcastShapes(tc.a, tc.b)
		if tc.wantErr {
			if err == nil {
				t.Errorf("BroadcastShapes(%v, %v): expected error", tc.a, tc.b)
			}
			continue
		}
		if err != nil {
			t.Errorf("BroadcastShapes(%v, %v): %v", tc.a, tc.b, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("BroadcastShapes(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestComputeStrides(t *testing.T) {
	s := tensor.Shape{2, 3, 4}
	strides := s.ComputeStrides()
	want := []int{12, 4, 1}
	for i := range want {
		if strides[i] != want[i] {
			t.Errorf("strides = %v, want %v", strides, want)
			break
		}
	}
}
