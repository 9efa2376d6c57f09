// Copyright 2026 Contrast ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tokenizer provides the public tokenization API.
//
// Example:
//
//	tok, err := tokenizer.NewTikToken("cl100k_base")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ids := tok.Encode("Hello, world!")
package tokenizer

import (
	"github.com/contrast-ml/contrast/internal/tokenizer"
)

// TikToken is a tokenizer backed by a tiktoken BPE encoding.
type TikToken = tokenizer.TikToken

// NewTikToken loads a tiktoken encoding by name (e.g. "cl100k_base").
func NewTikToken(encodingName string) (*TikToken, error) {
	return tokenizer.NewTikToken(encodingName)
}
