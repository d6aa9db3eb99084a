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
// Package token defines the immutable positioned-text value object that
// every downstream reconstruction pass (geometry clustering, table
// assembly, cleaning) operates on.
package token

import "strings"

// nbsp is the Unicode non-breaking space that PDF extractors frequently
// emit in place of a regular space; ingestion normalizes it away.
const nbsp = " "

// Token is a single piece of positioned text recovered from a PDF page.
// The coordinate space is PDF-native: origin top-left, top < bottom.
//
// Tokens are owned exclusively by the page-extract buffer that produced
// them. Clustering passes may hold references for the duration of a
// single table-reconstruction call but must never retain them beyond it.
type Token struct {
	X0, X1       float64
	Top, Bottom  float64
	Text         string
}

// New builds a Token, normalizing text per the ingestion invariant: no
// leading/trailing whitespace, no non-breaking space.
func New(x0, x1, top, bottom float64, text string) Token {
	text = strings.ReplaceAll(text, nbsp, " ")
	text = strings.TrimSpace(text)
	return Token{X0: x0, X1: x1, Top: top, Bottom: bottom, Text: text}
}

// Valid reports whether the token satisfies the invariants of §3:
// x0 <= x1, top <= bottom, and non-empty trimmed text.
func (t Token) Valid() bool {
	return t.X0 <= t.X1 && t.Top <= t.Bottom && t.Text != ""
}

// X is an alias for X0.
func (t Token) X() float64 { return t.X0 }

// Y is an alias for Top.
func (t Token) Y() float64 { return t.Top }

// Width returns x1 - x0.
func (t Token) Width() float64 { return t.X1 - t.X0 }

// Height returns bottom - top.
func (t Token) Height() float64 { return t.Bottom - t.Top }

// MergeRight merges other into t as the phrase-merging pass does:
// the result keeps t's left edge and text, takes other's right edge,
// and concatenates text with a single space. Used for right-to-left
// horizontal adjacency merging within a row (§4.1).
func (t Token) MergeRight(other Token) Token {
	t.Text = t.Text + " " + other.Text
	t.X1 = other.X1
	return t
}
