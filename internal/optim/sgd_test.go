package optim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contrast-ml/contrast/internal/backend/cpu"
	"github.com/contrast-ml/contrast/internal/nn"
	"github.com/contrast-ml/contrast/internal/optim"
	"github.com/contrast-ml/contrast/internal/tensor"
)

func newParam(t *testing.T, backend *cpu.Backend, name string, data []float32) *nn.Parameter[*cpu.Backend] {
	t.Helper()
	w, err := tensor.FromSlice(data, tensor.Shape{len(data)}, backend)
	require.NoError(t, err)
	return nn.NewParameter(name, w)
}

func gradFor(t *testing.T, p *nn.Parameter[*cpu.Backend], data []float32) map[*tensor.RawTensor]*tensor.RawTensor {
	t.Helper()
	g, err := tensor.FromSlice(data, p.Tensor().Shape(), cpu.New())
	require.NoError(t, err)
	return map[*tensor.RawTensor]*tensor.RawTensor{p.Tensor().Raw(): g.Raw()}
}

func TestSGDStep(t *testing.T) {
	backend := cpu.New()
	p := newParam(t, backend, "w", []float32{1, 2, 3})

	sgd := optim.NewSGD([]*nn.Parameter[*cpu.Backend]{p}, 0.1, 0)
	sgd.Step(gradFor(t, p, []float32{1, 1, 2}))

	got := p.Tensor().Data()
	assert.InDelta(t, 0.9, got[0], 1e-6)
	assert.InDelta(t, 1.9, got[1], 1e-6)
	assert.InDelta(t, 2.8, got[2], 1e-6)
}

func TestSGDMomentum(t *testing.T) {
	backend := cpu.New()
	p := newParam(t, backend, "w", []float32{0})

	sgd := optim.NewSGD([]*nn.Parameter[*cpu.Backend]{p}, 1, 0.5)

	// Step 1: v = 1, w = -1. Step 2: v = 0.5*1 + 1 = 1.5, w = -2.5.
	sgd.Step(gradFor(t, p, []float32{1}))
	assert.InDelta(t, -1.0, p.Tensor().Data()[0], 1e-6)

	sgd.Step(gradFor(t, p, []float32{1}))
	assert.InDelta(t, -2.5, p.Tensor().Data()[0], 1e-6)
}

func TestSGDSkipsParamsWithoutGradient(t *testing.T) {
	backend := cpu.New()
	p := newParam(t, backend, "w", []float32{5})
	other := newParam(t, backend, "v", []float32{7})

	sgd := optim.NewSGD([]*nn.Parameter[*cpu.Backend]{p, other}, 0.1, 0)
	sgd.Step(gradFor(t, p, []float32{1}))

	assert.InDelta(t, 4.9, p.Tensor().Data()[0], 1e-6)
	assert.Equal(t, float32(7), other.Tensor().Data()[0])
}

func TestSGDTiedParameterUpdatedOnce(t *testing.T) {
	backend := cpu.New()
	p := newParam(t, backend, "tied", []float32{1})

	// The same parameter registered through two owners must not receive
	// a double update.
	sgd := optim.NewSGD([]*nn.Parameter[*cpu.Backend]{p, p}, 0.1, 0)
	sgd.Step(gradFor(t, p, []float32{1}))

	assert.InDelta(t, 0.9, p.Tensor().Data()[0], 1e-6)
}

func TestSGDGradientShapeMismatchPanics(t *testing.T) {
	backend := cpu.New()
	p := newParam(t, backend, "w", []float32{1, 2})

	bad, err := tensor.FromSlice([]float32{1}, tensor.Shape{1}, backend)
	require.NoError(t, err)
	grads := map[*tensor.RawTensor]*tensor.RawTensor{p.Tensor().Raw(): bad.Raw()}

	sgd := optim.NewSGD([]*nn.Parameter[*cpu.Backend]{p}, 0.1, 0)
	require.Panics(t, func() { sgd.Step(grads) })
}

func TestSGDConfigValidation(t *testing.T) {
	backend := cpu.New()
	p := newParam(t, backend, "w", []float32{1})
	params := []*nn.Parameter[*cpu.Backend]{p}

	require.Panics(t, func() { optim.NewSGD(params, 0, 0) })
	require.Panics(t, func() { optim.NewSGD(params, -0.1, 0) })
	require.Panics(t, func() { optim.NewSGD(params, 0.1, -0.5) })
}

func TestZeroGrad(t *testing.T) {
	backend := cpu.New()
	p := newParam(t, backend, "w", []float32{1})
	p.SetGrad(tensor.Ones[float32](tensor.Shape{1}, backend))

	sgd := optim.NewSGD([]*nn.Parameter[*cpu.Backend]{p}, 0.1, 0)
	sgd.ZeroGrad()

	assert.Nil(t, p.Grad())
}
