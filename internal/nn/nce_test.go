package nn_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contrast-ml/contrast/internal/autodiff"
	"github.com/contrast-ml/contrast/internal/backend/cpu"
	"github.com/contrast-ml/contrast/internal/nn"
	"github.com/contrast-ml/contrast/internal/optim"
	"github.com/contrast-ml/contrast/internal/tensor"
)

// fixedNoise is a deterministic sampler: every example receives the same
// noise indices, and every index reports the same probability. It makes the
// loss an exact, reproducible function of the inputs.
type fixedNoise struct {
	seq  []int32
	prob float32
}

func (f fixedNoise) SampleN(n, k int) []int32 {
	out := make([]int32, n*k)
	for i := range out {
		out[i] = f.seq[i%len(f.seq)]
	}
	return out
}

func (f fixedNoise) Prob(i int32) float32 { return f.prob }

// identityPaddedWeight fills the decoder with rows e0, e1, e2, 0, 0 and a
// zero bias, so logits read directly off the input vector.
func identityPaddedWeight[B tensor.Backend](criterion *nn.NCELoss[B]) {
	w := criterion.Decoder().Weight().Tensor().Data()
	for i := range w {
		w[i] = 0
	}
	w[0*3+0] = 1
	w[1*3+1] = 1
	w[2*3+2] = 1
}

func newUniformNCE(t *testing.T, backend *cpu.Backend, sizeAverage bool) *nn.NCELoss[*cpu.Backend] {
	t.Helper()
	cfg := nn.DefaultNCEConfig[*cpu.Backend]()
	cfg.NoiseRatio = 2
	cfg.NormTerm = 0
	cfg.SizeAverage = sizeAverage

	criterion, err := nn.NewNCELoss(5, 3, fixedNoise{seq: []int32{0, 1}, prob: 0.2}, cfg, backend)
	require.NoError(t, err)
	identityPaddedWeight(criterion)
	return criterion
}

func TestNCELossHandComputed(t *testing.T) {
	backend := cpu.New()
	criterion := newUniformNCE(t, backend, true)

	input, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{1, 3}, backend)
	require.NoError(t, err)
	target, err := tensor.FromSlice([]int32{2}, tensor.Shape{1}, backend)
	require.NoError(t, err)

	loss := criterion.Forward(input, target)
	require.True(t, loss.Shape().Equal(tensor.Shape{}))

	// Target logit is input[2] = 3; noise logits are input[0] = 1 and
	// input[1] = 2. K*Pn = 2 * 0.2 = 0.4 everywhere.
	kp := 0.4
	pTarget := math.Exp(3)
	dataTerm := math.Log(pTarget / (pTarget + kp))
	noiseTerm := math.Log(kp/(math.Exp(1)+kp)) + math.Log(kp/(math.Exp(2)+kp))
	want := -(dataTerm + noiseTerm)

	assert.InDelta(t, want, float64(loss.Item()), 1e-4)
	// Sanity anchor for the hand computation above.
	assert.InDelta(t, 5.0424, float64(loss.Item()), 1e-3)
}

func TestNCELossSizeAverage(t *testing.T) {
	backend := cpu.New()
	mean := newUniformNCE(t, backend, true)
	sum := newUniformNCE(t, backend, false)

	input, err := tensor.FromSlice([]float32{
		1, 2, 3,
		-1, 0.5, 2,
	}, tensor.Shape{2, 3}, backend)
	require.NoError(t, err)
	target, err := tensor.FromSlice([]int32{2, 0}, tensor.Shape{2}, backend)
	require.NoError(t, err)

	lossMean := mean.Forward(input, target).Item()
	lossSum := sum.Forward(input, target).Item()

	assert.InDelta(t, float64(lossSum)/2, float64(lossMean), 1e-5)
}

func TestNCELossTargetColumnComesFirst(t *testing.T) {
	backend := cpu.New()

	// Noise rows 3 and 4 are zero in the padded weight, so the noise part
	// of the loss is a constant; only the target column responds to the
	// input. If the target were not in column 0 the loss would not react
	// to the target logit this way.
	cfg := nn.DefaultNCEConfig[*cpu.Backend]()
	cfg.NoiseRatio = 2
	cfg.NormTerm = 0
	criterion, err := nn.NewNCELoss(5, 3, fixedNoise{seq: []int32{3, 4}, prob: 0.2}, cfg, backend)
	require.NoError(t, err)
	identityPaddedWeight(criterion)

	target, err := tensor.FromSlice([]int32{2}, tensor.Shape{1}, backend)
	require.NoError(t, err)

	var prev float32 = math.MaxFloat32
	for _, z := range []float32{0, 1, 2, 3} {
		input, err := tensor.FromSlice([]float32{0, 0, z}, tensor.Shape{1, 3}, backend)
		require.NoError(t, err)

		loss := criterion.Forward(input, target).Item()
		assert.Less(t, loss, prev, "loss should fall as the target logit rises (z=%g)", z)
		prev = loss
	}
}

func TestNCELossShapeViolationsPanic(t *testing.T) {
	backend := cpu.New()
	criterion := newUniformNCE(t, backend, true)

	input, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{1, 3}, backend)
	require.NoError(t, err)
	badTarget, err := tensor.FromSlice([]int32{1, 2}, tensor.Shape{2}, backend)
	require.NoError(t, err)

	require.Panics(t, func() { criterion.Forward(input, badTarget) })

	badInput, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3}, backend)
	require.NoError(t, err)
	target, err := tensor.FromSlice([]int32{1}, tensor.Shape{1}, backend)
	require.NoError(t, err)

	require.Panics(t, func() { criterion.Forward(badInput, target) })

	outOfRange, err := tensor.FromSlice([]int32{9}, tensor.Shape{1}, backend)
	require.NoError(t, err)
	require.Panics(t, func() { criterion.Forward(input, outOfRange) })
}

func TestNCELossConfigValidation(t *testing.T) {
	backend := cpu.New()
	noise := fixedNoise{seq: []int32{0}, prob: 0.2}

	cfg := nn.DefaultNCEConfig[*cpu.Backend]()
	_, err := nn.NewNCELoss(0, 3, noise, cfg, backend)
	assert.Error(t, err)

	_, err = nn.NewNCELoss(5, 3, nil, cfg, backend)
	assert.Error(t, err)

	bad := cfg
	bad.NoiseRatio = 0
	_, err = nn.NewNCELoss(5, 3, noise, bad, backend)
	assert.Error(t, err)

	bad = cfg
	bad.Eps = -1
	_, err = nn.NewNCELoss(5, 3, noise, bad, backend)
	assert.Error(t, err)

	bad = cfg
	bad.TiedWeight = nn.NewParameter("w", tensor.Zeros[float32](tensor.Shape{4, 4}, backend))
	_, err = nn.NewNCELoss(5, 3, noise, bad, backend)
	assert.Error(t, err)
}

func TestNCELossEpsClampPreventsUnderflow(t *testing.T) {
	backend := cpu.New()

	cfg := nn.DefaultNCEConfig[*cpu.Backend]()
	cfg.NoiseRatio = 2
	cfg.NormTerm = 120 // far above the true log partition: exp underflows
	criterion, err := nn.NewNCELoss(5, 3, fixedNoise{seq: []int32{0, 1}, prob: 0.2}, cfg, backend)
	require.NoError(t, err)
	identityPaddedWeight(criterion)

	input, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{1, 3}, backend)
	require.NoError(t, err)
	target, err := tensor.FromSlice([]int32{2}, tensor.Shape{1}, backend)
	require.NoError(t, err)

	// Without the clamp the pseudo-probability is exactly zero and the
	// log fails loudly.
	require.Panics(t, func() { criterion.Forward(input, target) })

	cfg.Eps = 1e-6
	clamped, err := nn.NewNCELoss(5, 3, fixedNoise{seq: []int32{0, 1}, prob: 0.2}, cfg, backend)
	require.NoError(t, err)
	identityPaddedWeight(clamped)

	loss := clamped.Forward(input, target).Item()
	assert.False(t, math.IsNaN(float64(loss)))
	assert.False(t, math.IsInf(float64(loss), 0))
}

func TestNCELossGradientsFlow(t *testing.T) {
	backend := autodiff.New(cpu.New())

	cfg := nn.DefaultNCEConfig[*autodiff.AutodiffBackend[*cpu.Backend]]()
	cfg.NoiseRatio = 3
	cfg.NormTerm = 0
	criterion, err := nn.NewNCELoss(6, 4, fixedNoise{seq: []int32{0, 1, 5}, prob: 0.15}, cfg, backend)
	require.NoError(t, err)

	input, err := tensor.FromSlice([]float32{
		0.1, -0.2, 0.3, 0.4,
		-0.5, 0.6, -0.7, 0.8,
	}, tensor.Shape{2, 4}, backend)
	require.NoError(t, err)
	target, err := tensor.FromSlice([]int32{2, 4}, tensor.Shape{2}, backend)
	require.NoError(t, err)

	loss := criterion.Forward(input, target)
	grads := autodiff.Backward(loss)

	weight := criterion.Decoder().Weight().Tensor()
	bias := criterion.Decoder().Bias().Tensor()

	wGrad, ok := grads[weight.Raw()]
	require.True(t, ok, "no gradient for decoder weight")
	assert.True(t, wGrad.Shape().Equal(tensor.Shape{6, 4}))

	bGrad, ok := grads[bias.Raw()]
	require.True(t, ok, "no gradient for decoder bias")
	assert.True(t, bGrad.Shape().Equal(tensor.Shape{6}))

	iGrad, ok := grads[input.Raw()]
	require.True(t, ok, "no gradient for input")
	assert.True(t, iGrad.Shape().Equal(tensor.Shape{2, 4}))

	// Only touched rows (targets 2, 4 and noise 0, 1, 5) may have nonzero
	// weight gradients; row 3 was never scored.
	wg := wGrad.AsFloat32()
	for j := 0; j < 4; j++ {
		assert.Zero(t, wg[3*4+j], "untouched row 3 should have zero gradient")
	}
}

func TestNCELossWeightTying(t *testing.T) {
	type adB = *autodiff.AutodiffBackend[*cpu.Backend]
	backend := autodiff.New(cpu.New())

	embed := nn.NewEmbedding(5, 3, backend)

	cfg := nn.DefaultNCEConfig[adB]()
	cfg.NoiseRatio = 2
	cfg.NormTerm = 0
	cfg.TiedWeight = embed.Weight()
	criterion, err := nn.NewNCELoss(5, 3, fixedNoise{seq: []int32{0, 1}, prob: 0.2}, cfg, backend)
	require.NoError(t, err)

	// One parameter object, one storage.
	assert.Same(t, embed.Weight(), criterion.Decoder().Weight())
	require.True(t, embed.Weight().Tensor().Raw().SharesStorage(criterion.Decoder().Weight().Tensor().Raw()))

	tokens, err := tensor.FromSlice([]int32{1, 3}, tensor.Shape{2}, backend)
	require.NoError(t, err)
	target, err := tensor.FromSlice([]int32{2, 4}, tensor.Shape{2}, backend)
	require.NoError(t, err)

	input := embed.Forward(tokens)
	loss := criterion.Forward(input, target)
	grads := autodiff.Backward(loss)

	// Gradients from the embedding path and the decoder path land on the
	// same raw tensor.
	_, ok := grads[embed.Weight().Tensor().Raw()]
	require.True(t, ok)

	before := append([]float32(nil), embed.Weight().Tensor().Data()...)

	params := []*nn.Parameter[adB]{embed.Weight(), criterion.Decoder().Bias()}
	sgd := optim.NewSGD(params, 0.1, 0)
	sgd.Step(grads)

	after := embed.Weight().Tensor().Data()
	changed := false
	for i := range after {
		if after[i] != before[i] {
			changed = true
			break
		}
	}
	assert.True(t, changed, "SGD step did not update the tied weight")

	// The decoder sees the exact same values without any copy.
	assert.Equal(t, after, criterion.Decoder().Weight().Tensor().Data())
}

func TestNCELossTrainingReducesLoss(t *testing.T) {
	type adB = *autodiff.AutodiffBackend[*cpu.Backend]
	backend := autodiff.New(cpu.New())

	embed := nn.NewEmbedding(5, 3, backend)

	cfg := nn.DefaultNCEConfig[adB]()
	cfg.NoiseRatio = 2
	cfg.NormTerm = 0
	cfg.TiedWeight = embed.Weight()
	criterion, err := nn.NewNCELoss(5, 3, fixedNoise{seq: []int32{0, 1}, prob: 0.2}, cfg, backend)
	require.NoError(t, err)

	params := []*nn.Parameter[adB]{embed.Weight(), criterion.Decoder().Bias()}
	sgd := optim.NewSGD(params, 0.05, 0)

	tokens, err := tensor.FromSlice([]int32{1, 3}, tensor.Shape{2}, backend)
	require.NoError(t, err)
	target, err := tensor.FromSlice([]int32{2, 4}, tensor.Shape{2}, backend)
	require.NoError(t, err)

	var first, last float32
	for step := 0; step < 30; step++ {
		backend.GetTape().Reset()

		loss := criterion.Forward(embed.Forward(tokens), target)
		if step == 0 {
			first = loss.Item()
		}
		last = loss.Item()

		grads := autodiff.Backward(loss)
		sgd.Step(grads)
	}

	assert.Less(t, last, first, "training should reduce the deterministic NCE loss")
}
