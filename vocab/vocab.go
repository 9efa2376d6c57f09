// Copyright 2026 Contrast ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package vocab provides the public API for unigram corpus statistics and
// the noise distributions built from them.
//
// Example:
//
//	tok, _ := tokenizer.NewTikToken("cl100k_base")
//	table, _ := vocab.CountCorpus(tok, corpus...)
//	noise, _ := table.NoiseDistribution(vocab.SmoothingPower)
package vocab

import (
	"github.com/contrast-ml/contrast/internal/tokenizer"
	"github.com/contrast-ml/contrast/internal/vocab"
)

// SmoothingPower is the word2vec unigram smoothing exponent.
const SmoothingPower = vocab.SmoothingPower

// UnigramTable counts token occurrences over a fixed vocabulary.
type UnigramTable = vocab.UnigramTable

// NewUnigramTable creates an empty table over vocabSize token ids.
func NewUnigramTable(vocabSize int) (*UnigramTable, error) {
	return vocab.NewUnigramTable(vocabSize)
}

// CountCorpus tokenizes the given texts and returns their unigram table.
func CountCorpus(tok *tokenizer.TikToken, texts ...string) (*UnigramTable, error) {
	return vocab.CountCorpus(tok, texts...)
}
