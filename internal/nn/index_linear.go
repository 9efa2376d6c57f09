package nn

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/contrast-ml/contrast/internal/tensor"
)

// IndexLinear is a [vocab, dim] output projection that can score a small
// set of requested rows per example instead of the full vocabulary. It
// holds the same weight and bias a dense output layer would, so the indexed
// and dense paths compute identical logits for the same rows.
type IndexLinear[B tensor.Backend] struct {
	weight    *Parameter[B] // [vocab, dim]
	bias      *Parameter[B] // [vocab]
	vocabSize int
	embedDim  int
	backend   B
}

// NewIndexLinear creates a projection with weights drawn from N(0, 1/dim)
// and zero bias.
func NewIndexLinear[B tensor.Backend](vocabSize, embedDim int, backend B) *IndexLinear[B] {
	scale := 1.0 / math.Sqrt(float64(embedDim))
	data := make([]float32, vocabSize*embedDim)
	for i := range data {
		data[i] = float32(rand.NormFloat64() * scale)
	}

	w, err := tensor.FromSlice(data, tensor.Shape{vocabSize, embedDim}, backend)
	if err != nil {
		panic(fmt.Sprintf("index_linear: %v", err))
	}
	return &IndexLinear[B]{
		weight:    NewParameter("index_linear.weight", w),
		bias:      NewParameter("index_linear.bias", tensor.Zeros[float32](tensor.Shape{vocabSize}, backend)),
		vocabSize: vocabSize,
		embedDim:  embedDim,
		backend:   backend,
	}
}

// NewIndexLinearWithWeight creates a projection sharing an existing weight
// parameter (weight tying with an input embedding). The bias is fresh and
// zero; only the weight is shared.
func NewIndexLinearWithWeight[B tensor.Backend](weight *Parameter[B], backend B) (*IndexLinear[B], error) {
	shape := weight.Tensor().Shape()
	if len(shape) != 2 {
		return nil, fmt.Errorf("index_linear: tied weight must be 2-D [vocab, dim], got %v", shape)
	}
	return &IndexLinear[B]{
		weight:    weight,
		bias:      NewParameter("index_linear.bias", tensor.Zeros[float32](tensor.Shape{shape[0]}, backend)),
		vocabSize: shape[0],
		embedDim:  shape[1],
		backend:   backend,
	}, nil
}

// Project computes logits for the requested rows only:
//
//	out[i, j] = input[i] . weight[indices[i, j]] + bias[indices[i, j]]
//
// input is [batch, dim], indices is [batch, m], and the result is
// [batch, m]. Repeated indices within a row are scored independently. The
// whole computation runs through backend ops, so gradients flow to input,
// weight, and bias (repeated rows accumulate via scatter-add).
func (l *IndexLinear[B]) Project(input *tensor.Tensor[float32, B], indices *tensor.Tensor[int32, B]) *tensor.Tensor[float32, B] {
	inShape := input.Shape()
	if len(inShape) != 2 || inShape[1] != l.embedDim {
		panic(fmt.Sprintf("index_linear: input must be [batch, %d], got %v", l.embedDim, inShape))
	}
	idxShape := indices.Shape()
	if len(idxShape) != 2 {
		panic(fmt.Sprintf("index_linear: indices must be 2-D [batch, m], got %v", idxShape))
	}
	if idxShape[0] != inShape[0] {
		panic(fmt.Sprintf("index_linear: input batch %d does not match indices batch %d",
			inShape[0], idxShape[0]))
	}
	n, m := idxShape[0], idxShape[1]

	rows := l.weight.Tensor().Embedding(indices)     // [n, m, dim]
	lifted := input.Reshape(n, 1, l.embedDim)        // align for broadcast over m
	scores := rows.Mul(lifted).SumDim(2, false)      // [n, m]

	flat := indices.Reshape(n * m)
	bias := l.bias.Tensor().Gather(0, flat)          // [n*m]
	return scores.Add(bias.Reshape(n, m))
}

// ProjectAll computes logits for every vocabulary row: the dense
// input @ weight^T + bias path, [batch, dim] -> [batch, vocab]. Used for
// full-softmax evaluation and as the reference the indexed path must agree
// with.
func (l *IndexLinear[B]) ProjectAll(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	inShape := input.Shape()
	if len(inShape) != 2 || inShape[1] != l.embedDim {
		panic(fmt.Sprintf("index_linear: input must be [batch, %d], got %v", l.embedDim, inShape))
	}
	logits := input.MatMul(l.weight.Tensor().Transpose(0, 1)) // [batch, vocab]
	return logits.Add(l.bias.Tensor())
}

// Weight returns the projection's weight parameter.
func (l *IndexLinear[B]) Weight() *Parameter[B] { return l.weight }

// Bias returns the projection's bias parameter.
func (l *IndexLinear[B]) Bias() *Parameter[B] { return l.bias }

// VocabSize returns the number of output rows.
func (l *IndexLinear[B]) VocabSize() int { return l.vocabSize }

// EmbedDim returns the input dimension.
func (l *IndexLinear[B]) EmbedDim() int { return l.embedDim }

// Parameters returns the projection's trainable parameters.
func (l *IndexLinear[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{l.weight, l.bias}
}
