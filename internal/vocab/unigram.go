// Package vocab accumulates unigram token statistics over a corpus and
// turns them into noise distributions for contrastive training.
package vocab

import (
	"fmt"

	"github.com/contrast-ml/contrast/internal/nn"
	"github.com/contrast-ml/contrast/internal/tokenizer"
)

// SmoothingPower is the word2vec unigram smoothing exponent.
const SmoothingPower = 0.75

// UnigramTable counts token occurrences over a fixed vocabulary.
type UnigramTable struct {
	counts []int64
	total  int64
}

// NewUnigramTable creates an empty table over vocabSize token ids.
func NewUnigramTable(vocabSize int) (*UnigramTable, error) {
	if vocabSize <= 0 {
		return nil, fmt.Errorf("vocab: vocab size must be positive, got %d", vocabSize)
	}
	return &UnigramTable{counts: make([]int64, vocabSize)}, nil
}

// Add records one occurrence of a token id.
func (t *UnigramTable) Add(id int32) error {
	if id < 0 || int(id) >= len(t.counts) {
		return fmt.Errorf("vocab: token id %d out of range [0, %d)", id, len(t.counts))
	}
	t.counts[id]++
	t.total++
	return nil
}

// AddTokens records a sequence of token ids.
func (t *UnigramTable) AddTokens(ids []int32) error {
	for _, id := range ids {
		if err := t.Add(id); err != nil {
			return err
		}
	}
	return nil
}

// Count returns how many times a token id was seen.
func (t *UnigramTable) Count(id int32) int64 {
	if id < 0 || int(id) >= len(t.counts) {
		return 0
	}
	return t.counts[id]
}

// Total returns the total number of recorded tokens.
func (t *UnigramTable) Total() int64 { return t.total }

// VocabSize returns the number of token ids the table covers.
func (t *UnigramTable) VocabSize() int { return len(t.counts) }

// Counts returns a copy of the per-token counts.
func (t *UnigramTable) Counts() []int64 {
	out := make([]int64, len(t.counts))
	copy(out, t.counts)
	return out
}

// NoiseDistribution builds a power-smoothed noise distribution from the
// counts: weight_i = count_i^power. Fails if the table is empty.
func (t *UnigramTable) NoiseDistribution(power float64) (*nn.NoiseDistribution, error) {
	if t.total == 0 {
		return nil, fmt.Errorf("vocab: cannot build a noise distribution from an empty table")
	}
	return nn.NewUnigramNoise(t.counts, power)
}

// CountCorpus tokenizes the given texts and returns their unigram table,
// sized to the tokenizer's vocabulary.
func CountCorpus(tok *tokenizer.TikToken, texts ...string) (*UnigramTable, error) {
	table, err := NewUnigramTable(tok.VocabSize())
	if err != nil {
		return nil, err
	}
	for _, text := range texts {
		if err := table.AddTokens(tok.Encode(text)); err != nil {
			return nil, err
		}
	}
	return table, nil
}
