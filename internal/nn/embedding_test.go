package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contrast-ml/contrast/internal/backend/cpu"
	"github.com/contrast-ml/contrast/internal/nn"
	"github.com/contrast-ml/contrast/internal/tensor"
)

func TestEmbeddingForward(t *testing.T) {
	backend := cpu.New()
	weight, err := tensor.FromSlice([]float32{
		1, 2,
		3, 4,
		5, 6,
	}, tensor.Shape{3, 2}, backend)
	require.NoError(t, err)

	embed, err := nn.NewEmbeddingWithWeight(nn.NewParameter("w", weight))
	require.NoError(t, err)

	idx, err := tensor.FromSlice([]int32{2, 0}, tensor.Shape{2}, backend)
	require.NoError(t, err)

	out := embed.Forward(idx)
	assert.True(t, out.Shape().Equal(tensor.Shape{2, 2}))
	assert.Equal(t, []float32{5, 6, 1, 2}, out.Data())
}

func TestEmbeddingRandomInit(t *testing.T) {
	backend := cpu.New()
	embed := nn.NewEmbedding(10, 4, backend)

	assert.Equal(t, 10, embed.VocabSize())
	assert.Equal(t, 4, embed.EmbedDim())
	assert.True(t, embed.Weight().Tensor().Shape().Equal(tensor.Shape{10, 4}))
	assert.Len(t, embed.Parameters(), 1)

	nonZero := false
	for _, v := range embed.Weight().Tensor().Data() {
		if v != 0 {
			nonZero = true
			break
		}
	}
	assert.True(t, nonZero, "random init produced all zeros")
}

func TestEmbeddingWithWeightShares(t *testing.T) {
	backend := cpu.New()
	weight := tensor.Zeros[float32](tensor.Shape{4, 2}, backend)
	param := nn.NewParameter("shared", weight)

	embed, err := nn.NewEmbeddingWithWeight(param)
	require.NoError(t, err)
	assert.Same(t, param, embed.Weight())

	_, err = nn.NewEmbeddingWithWeight(nn.NewParameter("bad", tensor.Zeros[float32](tensor.Shape{4}, backend)))
	assert.Error(t, err)
}
