// Package tokenizer wraps tiktoken BPE encodings behind a small interface
// producing int32 token ids.
package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// TikToken is a tokenizer backed by a tiktoken encoding.
type TikToken struct {
	encoding *tiktoken.Tiktoken
	name     string
}

// NewTikToken loads a tiktoken encoding by name (e.g. "cl100k_base",
// "r50k_base"). Loading may fetch the BPE ranks on first use.
func NewTikToken(encodingName string) (*TikToken, error) {
	encoding, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("tokenizer: load encoding %q: %w", encodingName, err)
	}
	return &TikToken{encoding: encoding, name: encodingName}, nil
}

// Encode converts text to token ids.
func (t *TikToken) Encode(text string) []int32 {
	ids := t.encoding.Encode(text, nil, nil)
	out := make([]int32, len(ids))
	for i, id := range ids {
		out[i] = int32(id)
	}
	return out
}

// Decode converts token ids back to text.
func (t *TikToken) Decode(ids []int32) string {
	ints := make([]int, len(ids))
	for i, id := range ids {
		ints[i] = int(id)
	}
	return t.encoding.Decode(ints)
}

// VocabSize returns the vocabulary size for the encoding, including special
// tokens.
func (t *TikToken) VocabSize() int {
	switch t.name {
	case "o200k_base":
		return 200019
	case "cl100k_base":
		return 100277
	case "p50k_base", "p50k_edit":
		return 50281
	case "r50k_base", "gpt2":
		return 50257
	default:
		// Unknown encodings still tokenize; size queries are best-effort.
		return 100277
	}
}

// Name returns the encoding name.
func (t *TikToken) Name() string { return t.name }
