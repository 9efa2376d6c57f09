package vocab_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contrast-ml/contrast/internal/tokenizer"
	"github.com/contrast-ml/contrast/internal/vocab"
)

func TestUnigramTableCounts(t *testing.T) {
	table, err := vocab.NewUnigramTable(4)
	require.NoError(t, err)

	require.NoError(t, table.AddTokens([]int32{0, 1, 1, 3, 1}))

	assert.Equal(t, int64(1), table.Count(0))
	assert.Equal(t, int64(3), table.Count(1))
	assert.Equal(t, int64(0), table.Count(2))
	assert.Equal(t, int64(1), table.Count(3))
	assert.Equal(t, int64(5), table.Total())
	assert.Equal(t, 4, table.VocabSize())
}

func TestUnigramTableRejectsBadIds(t *testing.T) {
	table, err := vocab.NewUnigramTable(2)
	require.NoError(t, err)

	assert.Error(t, table.Add(2))
	assert.Error(t, table.Add(-1))
	assert.Error(t, table.AddTokens([]int32{0, 1, 5}))
}

func TestUnigramTableValidation(t *testing.T) {
	_, err := vocab.NewUnigramTable(0)
	assert.Error(t, err)

	_, err = vocab.NewUnigramTable(-3)
	assert.Error(t, err)
}

func TestCountsReturnsCopy(t *testing.T) {
	table, err := vocab.NewUnigramTable(2)
	require.NoError(t, err)
	require.NoError(t, table.Add(0))

	counts := table.Counts()
	counts[0] = 99
	assert.Equal(t, int64(1), table.Count(0))
}

func TestNoiseDistributionFromTable(t *testing.T) {
	table, err := vocab.NewUnigramTable(3)
	require.NoError(t, err)
	require.NoError(t, table.AddTokens([]int32{0, 0, 0, 0, 1}))

	noise, err := table.NoiseDistribution(vocab.SmoothingPower)
	require.NoError(t, err)

	// Smoothing shrinks the frequent token's share below its raw 4/5.
	assert.Less(t, float64(noise.Prob(0)), 0.8)
	assert.Greater(t, float64(noise.Prob(0)), float64(noise.Prob(1)))
	assert.Zero(t, noise.Prob(2))
}

func TestNoiseDistributionFromEmptyTableFails(t *testing.T) {
	table, err := vocab.NewUnigramTable(3)
	require.NoError(t, err)

	_, err = table.NoiseDistribution(vocab.SmoothingPower)
	assert.Error(t, err)
}

func TestCountCorpus(t *testing.T) {
	tok, err := tokenizer.NewTikToken("cl100k_base")
	if err != nil {
		t.Skipf("tiktoken encoding unavailable: %v", err)
	}

	table, err := vocab.CountCorpus(tok, "the quick brown fox", "the lazy dog")
	require.NoError(t, err)

	assert.Greater(t, table.Total(), int64(0))

	// "the" appears in both texts, so its token dominates.
	ids := tok.Encode("the")
	require.NotEmpty(t, ids)
	assert.GreaterOrEqual(t, table.Count(ids[0]), int64(2))
}
