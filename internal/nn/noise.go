package nn

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// NoiseSampler supplies the noise samples and noise probabilities NCE
// discriminates against. SampleN draws n independent sets of k indices
// (i.i.d. with replacement); Prob returns the probability of one index
// under the noise distribution.
type NoiseSampler interface {
	SampleN(n, k int) []int32
	Prob(i int32) float32
}

// NoiseDistribution is a fixed categorical distribution over token indices,
// typically built from smoothed unigram frequencies. Weights are normalized
// once at construction and never change afterwards.
type NoiseDistribution struct {
	weights []float32
	cdf     []float64
	rng     *rand.Rand
}

// NewNoiseDistribution builds a distribution from unnormalized weights.
// Weights must be finite and non-negative, with at least one positive entry.
func NewNoiseDistribution(weights []float32) (*NoiseDistribution, error) {
	if len(weights) == 0 {
		return nil, errors.New("noise: need at least one weight")
	}

	var total float64
	for i, w := range weights {
		if w < 0 || math.IsNaN(float64(w)) || math.IsInf(float64(w), 0) {
			return nil, fmt.Errorf("noise: weight %d is %g, must be finite and non-negative", i, w)
		}
		total += float64(w)
	}
	if total == 0 {
		return nil, errors.New("noise: all weights are zero")
	}

	normalized := make([]float32, len(weights))
	cdf := make([]float64, len(weights))
	var running float64
	for i, w := range weights {
		p := float64(w) / total
		normalized[i] = float32(p)
		running += p
		cdf[i] = running
	}
	cdf[len(cdf)-1] = 1 // absorb rounding drift

	return &NoiseDistribution{
		weights: normalized,
		cdf:     cdf,
		rng:     rand.New(rand.NewSource(rand.Int63())),
	}, nil
}

// NewUnigramNoise builds a distribution from token counts with word2vec
// style power smoothing: weight_i = count_i^power. Power 0.75 flattens the
// head of the distribution so rare tokens are sampled more often.
func NewUnigramNoise(counts []int64, power float64) (*NoiseDistribution, error) {
	if power < 0 {
		return nil, fmt.Errorf("noise: smoothing power must be non-negative, got %g", power)
	}
	weights := make([]float32, len(counts))
	for i, c := range counts {
		if c < 0 {
			return nil, fmt.Errorf("noise: count %d is negative", i)
		}
		if c > 0 {
			weights[i] = float32(math.Pow(float64(c), power))
		}
	}
	return NewNoiseDistribution(weights)
}

// Seed resets the sampler's random source for reproducible draws.
func (d *NoiseDistribution) Seed(seed int64) {
	d.rng = rand.New(rand.NewSource(seed))
}

// VocabSize returns the number of token indices the distribution covers.
func (d *NoiseDistribution) VocabSize() int { return len(d.weights) }

// Prob returns the normalized probability of index i.
func (d *NoiseDistribution) Prob(i int32) float32 {
	if i < 0 || int(i) >= len(d.weights) {
		panic(fmt.Sprintf("noise: index %d out of range [0, %d)", i, len(d.weights)))
	}
	return d.weights[i]
}

// Sample draws k indices i.i.d. with replacement.
func (d *NoiseDistribution) Sample(k int) []int32 {
	return d.SampleN(1, k)
}

// SampleN draws n independent sets of k indices as one flat slice of length
// n*k (set i occupies [i*k, (i+1)*k)). Zero-weight indices are never drawn.
func (d *NoiseDistribution) SampleN(n, k int) []int32 {
	if n < 0 || k < 0 {
		panic(fmt.Sprintf("noise: invalid sample request n=%d k=%d", n, k))
	}
	out := make([]int32, n*k)
	for i := range out {
		out[i] = d.draw()
	}
	return out
}

// draw inverts the CDF with a binary search. The strict comparison keeps
// zero-weight indices (flat CDF segments) from ever being selected.
func (d *NoiseDistribution) draw() int32 {
	u := d.rng.Float64()
	return int32(sort.Search(len(d.cdf), func(i int) bool { return d.cdf[i] > u }))
}
