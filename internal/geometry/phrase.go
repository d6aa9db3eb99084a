// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package geometry

import "github.com/phlfinance/ledger-etl/internal/token"

// MergePhrases scans a row right-to-left, merging token i-1 with token i
// whenever the horizontal gap between them is smaller than textToleranceX.
// The merged token inherits the right token's x1 and concatenates text
// with a single space (§4.1).
//
// Tokens must already be sorted left-to-right (ascending x).
func MergePhrases(row []token.Token, textToleranceX float64) []token.Token {
	if len(row) == 0 {
		return nil
	}

	merged := make([]token.Token, len(row))
	copy(merged, row)

	for i := len(merged) - 1; i >= 1; i-- {
		this := merged[i]
		prev := merged[i-1]
		if this.X0-prev.X1 < textToleranceX {
			merged[i-1] = prev.MergeRight(this)
			merged = append(merged[:i], merged[i+1:]...)
		}
	}

	return merged
}

// FootnoteCutoff returns the bottom coordinate of the first token whose
// text begins with "*", or (0, false) if none exists. All tokens at or
// below that coordinate are discarded by the caller (§4.1).
func FootnoteCutoff(tokens []token.Token) (float64, bool) {
	cutoff := 0.0
	found := false
	for _, t := range tokens {
		if len(t.Text) > 0 && t.Text[0] == '*' {
			if !found || t.Bottom < cutoff {
				cutoff = t.Bottom
				found = true
			}
		}
	}
	return cutoff, found
}

// ApplyFootnoteCutoff drops every token at or below the first footnote
// marker's bottom coordinate.
func ApplyFootnoteCutoff(tokens []token.Token) []token.Token {
	cutoff, found := FootnoteCutoff(tokens)
	if !found {
		return tokens
	}
	out := make([]token.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Bottom < cutoff {
			out = append(out, t)
		}
	}
	return out
}
