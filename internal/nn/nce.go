package nn

import (
	"errors"
	"fmt"

	"github.com/contrast-ml/contrast/internal/tensor"
)

// NCEConfig configures an NCELoss. The zero value is not usable; start from
// DefaultNCEConfig and override fields. NormTerm zero is meaningful (no
// shift), so defaults are not inferred from zero values.
type NCEConfig[B tensor.Backend] struct {
	// NoiseRatio is K, the number of noise samples per target.
	NoiseRatio int

	// NormTerm approximates the log partition function: pseudo-probability
	// = exp(logit - NormTerm). It is a fixed hyperparameter, never learned
	// or recomputed. If it is far from the true log partition the
	// pseudo-probabilities can under- or overflow; the loss then fails
	// loudly (Log panics on non-positive input) rather than training on
	// NaNs.
	NormTerm float32

	// SizeAverage divides the summed loss by the batch size.
	SizeAverage bool

	// Eps, when positive, is added to each pseudo-probability before the
	// log-odds as a defensive clamp against underflow. Zero disables it.
	Eps float32

	// TiedWeight, when set, makes the decoder share this weight parameter
	// (typically the input embedding's table) instead of allocating its
	// own. Gradients from both uses accumulate into the same storage.
	TiedWeight *Parameter[B]
}

// DefaultNCEConfig returns the standard configuration: 10 noise samples per
// target, norm term 9, mean reduction.
func DefaultNCEConfig[B tensor.Backend]() NCEConfig[B] {
	return NCEConfig[B]{
		NoiseRatio:  10,
		NormTerm:    9,
		SizeAverage: true,
	}
}

// NCELoss trains a large-vocabulary output layer by noise contrastive
// estimation: instead of normalizing over the whole vocabulary, each target
// is discriminated against K noise samples, so a forward/backward step
// touches only K+1 output rows per example.
//
// The loss per example is
//
//	-( log(p0/(p0 + K*Pn(target))) + sum_j log(K*Pn(s_j)/(p_j + K*Pn(s_j))) )
//
// where p = exp(logit - NormTerm) are unnormalized model pseudo-
// probabilities and Pn is the noise distribution. The batch loss is the sum
// over examples, divided by the batch size when SizeAverage is set.
type NCELoss[B tensor.Backend] struct {
	decoder     *IndexLinear[B]
	noise       NoiseSampler
	noiseRatio  int
	normTerm    float32
	sizeAverage bool
	eps         float32
	vocabSize   int
	backend     B
}

// NewNCELoss creates an NCE loss over a vocabSize x embedDim decoder. The
// noise sampler supplies noise indices and their probabilities; it is
// consulted once per forward call with one independent sample set per
// example.
func NewNCELoss[B tensor.Backend](vocabSize, embedDim int, noise NoiseSampler, config NCEConfig[B], backend B) (*NCELoss[B], error) {
	if vocabSize <= 0 || embedDim <= 0 {
		return nil, fmt.Errorf("nce: invalid dimensions vocab=%d dim=%d", vocabSize, embedDim)
	}
	if noise == nil {
		return nil, errors.New("nce: noise sampler is required")
	}
	if config.NoiseRatio <= 0 {
		return nil, fmt.Errorf("nce: noise ratio must be positive, got %d", config.NoiseRatio)
	}
	if config.Eps < 0 {
		return nil, fmt.Errorf("nce: eps must be non-negative, got %g", config.Eps)
	}

	var decoder *IndexLinear[B]
	if config.TiedWeight != nil {
		want := tensor.Shape{vocabSize, embedDim}
		if got := config.TiedWeight.Tensor().Shape(); !got.Equal(want) {
			return nil, fmt.Errorf("nce: tied weight shape %v, want %v", got, want)
		}
		var err error
		decoder, err = NewIndexLinearWithWeight(config.TiedWeight, backend)
		if err != nil {
			return nil, err
		}
	} else {
		decoder = NewIndexLinear[B](vocabSize, embedDim, backend)
	}

	return &NCELoss[B]{
		decoder:     decoder,
		noise:       noise,
		noiseRatio:  config.NoiseRatio,
		normTerm:    config.NormTerm,
		sizeAverage: config.SizeAverage,
		eps:         config.Eps,
		vocabSize:   vocabSize,
		backend:     backend,
	}, nil
}

// Forward computes the scalar NCE loss for a batch. input is [batch, dim]
// (e.g. embedded context), target is the [batch] int32 vector of correct
// token indices. Shape mismatches and out-of-range targets panic.
func (l *NCELoss[B]) Forward(input *tensor.Tensor[float32, B], target *tensor.Tensor[int32, B]) *tensor.Tensor[float32, B] {
	inShape := input.Shape()
	if len(inShape) != 2 {
		panic(fmt.Sprintf("nce: input must be 2-D [batch, dim], got %v", inShape))
	}
	tShape := target.Shape()
	if len(tShape) != 1 {
		panic(fmt.Sprintf("nce: target must be 1-D [batch], got %v", tShape))
	}
	n := inShape[0]
	if tShape[0] != n {
		panic(fmt.Sprintf("nce: input batch %d does not match target batch %d", n, tShape[0]))
	}

	targets := target.Data()
	for _, t := range targets {
		if t < 0 || int(t) >= l.vocabSize {
			panic(fmt.Sprintf("nce: target %d out of range [0, %d)", t, l.vocabSize))
		}
	}

	k := l.noiseRatio
	samples := l.noise.SampleN(n, k)
	if len(samples) != n*k {
		panic(fmt.Sprintf("nce: sampler returned %d indices, want %d", len(samples), n*k))
	}

	// Per example: column 0 is the target, columns 1..K its noise samples.
	combined := make([]int32, n*(k+1))
	for i := 0; i < n; i++ {
		row := combined[i*(k+1) : (i+1)*(k+1)]
		row[0] = targets[i]
		copy(row[1:], samples[i*k:(i+1)*k])
	}
	indices := l.constIndex(combined, tensor.Shape{n, k + 1})

	logits := l.decoder.Project(input, indices)       // [n, k+1]
	probs := logits.SubScalar(l.normTerm).Exp()       // pseudo-probabilities
	if l.eps > 0 {
		probs = probs.AddScalar(l.eps)
	}

	// Split the target column from the noise columns with differentiable
	// gathers so gradients scatter back into probs.
	dataProb := probs.Gather(1, l.constIndex(make([]int32, n), tensor.Shape{n, 1}))
	noiseCols := make([]int32, n*k)
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			noiseCols[i*k+j] = int32(j + 1)
		}
	}
	modelNoise := probs.Gather(1, l.constIndex(noiseCols, tensor.Shape{n, k}))

	// K*Pn(...) for the target and for each noise sample; constants w.r.t.
	// the model.
	kTarget := make([]float32, n)
	for i, t := range targets {
		kTarget[i] = float32(k) * l.noise.Prob(t)
	}
	kNoise := make([]float32, n*k)
	for i, s := range samples {
		kNoise[i] = float32(k) * l.noise.Prob(s)
	}
	kTargetT := l.constFloat(kTarget, tensor.Shape{n, 1})
	kNoiseT := l.constFloat(kNoise, tensor.Shape{n, k})

	dataTerm := dataProb.Div(dataProb.Add(kTargetT)).Log()    // [n, 1]
	noiseTerm := kNoiseT.Div(modelNoise.Add(kNoiseT)).Log()   // [n, k]

	loss := dataTerm.Sum().Add(noiseTerm.Sum()).MulScalar(-1)
	if l.sizeAverage {
		loss = loss.DivScalar(float32(n))
	}
	return loss
}

// FullLogits computes dense [batch, vocab] logits through the same decoder,
// for full-softmax evaluation.
func (l *NCELoss[B]) FullLogits(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return l.decoder.ProjectAll(input)
}

// Decoder returns the underlying indexed projection.
func (l *NCELoss[B]) Decoder() *IndexLinear[B] { return l.decoder }

// Parameters returns the decoder's parameters. With a tied weight the
// shared parameter appears here as well as in its other owner; pass it to
// the optimizer once.
func (l *NCELoss[B]) Parameters() []*Parameter[B] {
	return l.decoder.Parameters()
}

func (l *NCELoss[B]) constIndex(data []int32, shape tensor.Shape) *tensor.Tensor[int32, B] {
	t, err := tensor.FromSlice(data, shape, l.backend)
	if err != nil {
		panic(fmt.Sprintf("nce: %v", err))
	}
	return t
}

func (l *NCELoss[B]) constFloat(data []float32, shape tensor.Shape) *tensor.Tensor[float32, B] {
	t, err := tensor.FromSlice(data, shape, l.backend)
	if err != nil {
		panic(fmt.Sprintf("nce: %v", err))
	}
	return t
}
