// Copyright 2026 Contrast ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the public neural network API: parameters, embedding
// layers, and the noise contrastive estimation loss with its indexed
// output projection.
package nn

import (
	"github.com/contrast-ml/contrast/internal/nn"
	"github.com/contrast-ml/contrast/internal/tensor"
)

// Parameter represents a named trainable parameter.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// Embedding represents a lookup table for embeddings.
type Embedding[B tensor.Backend] = nn.Embedding[B]

// NewEmbedding creates a new embedding layer.
//
// Example:
//
//	backend := cpu.New()
//	embed := nn.NewEmbedding[B](50000, 256, backend)
func NewEmbedding[B tensor.Backend](vocabSize, embedDim int, backend B) *Embedding[B] {
	return nn.NewEmbedding(vocabSize, embedDim, backend)
}

// NewEmbeddingWithWeight creates an embedding layer sharing an existing
// weight parameter.
func NewEmbeddingWithWeight[B tensor.Backend](weight *Parameter[B]) (*Embedding[B], error) {
	return nn.NewEmbeddingWithWeight(weight)
}

// IndexLinear is an output projection that can score a requested subset of
// vocabulary rows per example.
type IndexLinear[B tensor.Backend] = nn.IndexLinear[B]

// NewIndexLinear creates an indexed projection layer.
func NewIndexLinear[B tensor.Backend](vocabSize, embedDim int, backend B) *IndexLinear[B] {
	return nn.NewIndexLinear(vocabSize, embedDim, backend)
}

// NewIndexLinearWithWeight creates an indexed projection sharing an
// existing weight parameter (weight tying).
func NewIndexLinearWithWeight[B tensor.Backend](weight *Parameter[B], backend B) (*IndexLinear[B], error) {
	return nn.NewIndexLinearWithWeight(weight, backend)
}

// Noise sampling

// NoiseSampler supplies noise indices and probabilities to the NCE loss.
type NoiseSampler = nn.NoiseSampler

// NoiseDistribution is a fixed categorical distribution over token indices.
type NoiseDistribution = nn.NoiseDistribution

// NewNoiseDistribution builds a noise distribution from unnormalized
// weights.
func NewNoiseDistribution(weights []float32) (*NoiseDistribution, error) {
	return nn.NewNoiseDistribution(weights)
}

// NewUnigramNoise builds a noise distribution from token counts with
// power smoothing (word2vec-style count^0.75).
func NewUnigramNoise(counts []int64, power float64) (*NoiseDistribution, error) {
	return nn.NewUnigramNoise(counts, power)
}

// Loss

// NCEConfig configures an NCELoss.
type NCEConfig[B tensor.Backend] = nn.NCEConfig[B]

// DefaultNCEConfig returns the standard configuration: 10 noise samples
// per target, norm term 9, mean reduction.
func DefaultNCEConfig[B tensor.Backend]() NCEConfig[B] {
	return nn.DefaultNCEConfig[B]()
}

// NCELoss trains a large-vocabulary output layer by noise contrastive
// estimation.
type NCELoss[B tensor.Backend] = nn.NCELoss[B]

// NewNCELoss creates an NCE loss over a vocabSize x embedDim decoder.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	noise, _ := nn.NewUnigramNoise(counts, 0.75)
//	criterion, _ := nn.NewNCELoss(vocab, dim, noise, nn.DefaultNCEConfig[B](), backend)
//	loss := criterion.Forward(embedded, targets)
func NewNCELoss[B tensor.Backend](vocabSize, embedDim int, noise NoiseSampler, config NCEConfig[B], backend B) (*NCELoss[B], error) {
	return nn.NewNCELoss(vocabSize, embedDim, noise, config, backend)
}
