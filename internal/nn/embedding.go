package nn

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/contrast-ml/contrast/internal/tensor"
)

// Embedding maps token indices to dense vectors via a [vocab, dim] weight
// table.
type Embedding[B tensor.Backend] struct {
	weight    *Parameter[B]
	vocabSize int
	embedDim  int
}

// NewEmbedding creates an embedding layer with weights drawn from
// N(0, 1/dim).
func NewEmbedding[B tensor.Backend](vocabSize, embedDim int, backend B) *Embedding[B] {
	scale := 1.0 / math.Sqrt(float64(embedDim))
	data := make([]float32, vocabSize*embedDim)
	for i := range data {
		data[i] = float32(rand.NormFloat64() * scale)
	}

	w, err := tensor.FromSlice(data, tensor.Shape{vocabSize, embedDim}, backend)
	if err != nil {
		panic(fmt.Sprintf("embedding: %v", err))
	}
	return &Embedding[B]{
		weight:    NewParameter("embedding.weight", w),
		vocabSize: vocabSize,
		embedDim:  embedDim,
	}
}

// NewEmbeddingWithWeight creates an embedding layer around an existing
// weight parameter. The parameter is shared, not copied, so the layer can
// be tied to another layer's weights.
func NewEmbeddingWithWeight[B tensor.Backend](weight *Parameter[B]) (*Embedding[B], error) {
	shape := weight.Tensor().Shape()
	if len(shape) != 2 {
		return nil, fmt.Errorf("embedding: weight must be 2-D [vocab, dim], got %v", shape)
	}
	return &Embedding[B]{
		weight:    weight,
		vocabSize: shape[0],
		embedDim:  shape[1],
	}, nil
}

// Forward looks up the embedding rows for the given indices. The output has
// shape indices.Shape() + [dim].
func (e *Embedding[B]) Forward(indices *tensor.Tensor[int32, B]) *tensor.Tensor[float32, B] {
	return e.weight.Tensor().Embedding(indices)
}

// Weight returns the embedding table parameter.
func (e *Embedding[B]) Weight() *Parameter[B] { return e.weight }

// VocabSize returns the number of rows in the table.
func (e *Embedding[B]) VocabSize() int { return e.vocabSize }

// EmbedDim returns the embedding dimension.
func (e *Embedding[B]) EmbedDim() int { return e.embedDim }

// Parameters returns the layer's trainable parameters.
func (e *Embedding[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{e.weight}
}
