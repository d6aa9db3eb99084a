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

import (
	"testing"

	"github.com/phlfinance/ledger-etl/internal/token"
)

func mkTok(x0, x1, top, bottom float64, text string) token.Token {
	return token.New(x0, x1, top, bottom, text)
}

func TestFuzzyGroupIdempotent(t *testing.T) {
	toks := []token.Token{
		mkTok(0, 40, 100, 112, "Wage"),
		mkTok(200, 260, 101, 113, "$1,234.00"),
		mkTok(0, 40, 300, 312, "Salary"),
	}

	g1 := FuzzyGroup(toks, AxisBottom, 5, 5, func(t token.Token) float64 { return t.X() })
	g2 := FuzzyGroup(toks, AxisBottom, 5, 5, func(t token.Token) float64 { return t.X() })

	if len(g1) != len(g2) {
		t.Fatalf("non-idempotent grouping: %d vs %d groups", len(g1), len(g2))
	}
	for i := range g1 {
		if len(g1[i].Tokens) != len(g2[i].Tokens) {
			t.Fatalf("group %d size differs between invocations", i)
		}
	}
}

func TestFuzzyGroupSeparatesDistantRows(t *testing.T) {
	toks := []token.Token{
		mkTok(0, 40, 100, 112, "Wage"),
		mkTok(0, 40, 300, 312, "Salary"),
	}
	groups := FuzzyGroup(toks, AxisBottom, 5, 5, func(t token.Token) float64 { return t.X() })
	if len(groups) != 2 {
		t.Fatalf("expected 2 distinct row groups, got %d", len(groups))
	}
}

func TestMergePhrasesBasic(t *testing.T) {
	row := []token.Token{
		mkTok(0, 20, 100, 112, "Real"),
		mkTok(22, 50, 100, 112, "Estate"),
	}
	merged := MergePhrases(row, 3)
	if len(merged) != 1 {
		t.Fatalf("expected merge to 1 token, got %d", len(merged))
	}
	if merged[0].Text != "Real Estate" {
		t.Errorf("Text = %q", merged[0].Text)
	}
}

func TestMergePhrasesAssociative(t *testing.T) {
	row := []token.Token{
		mkTok(0, 20, 100, 112, "A"),
		mkTok(22, 40, 100, 112, "B"),
		mkTok(42, 60, 100, 112, "C"),
	}
	// Merging all at once...
	whole := MergePhrases(row, 3)

	// ...should equal merging first adjacent pair then re-running.
	partial := MergePhrases(row[:2], 3)
	partial = append(partial, row[2])
	rerun := MergePhrases(partial, 3)

	if len(whole) != len(rerun) {
		t.Fatalf("associativity violated: %d vs %d final tokens", len(whole), len(rerun))
	}
	if whole[0].Text != rerun[0].Text {
		t.Errorf("associativity violated: %q vs %q", whole[0].Text, rerun[0].Text)
	}
}

func TestFootnoteCutoff(t *testing.T) {
	toks := []token.Token{
		mkTok(0, 40, 700, 712, "Revenue"),
		mkTok(0, 80, 800, 812, "* Preliminary"),
		mkTok(0, 40, 805, 817, "Footnote detail"),
	}
	out := ApplyFootnoteCutoff(toks)
	if len(out) != 1 {
		t.Fatalf("expected 1 surviving token, got %d: %+v", len(out), out)
	}
	if out[0].Text != "Revenue" {
		t.Errorf("unexpected survivor: %q", out[0].Text)
	}
}

func TestRemoveOrphanColumns(t *testing.T) {
	a := mkTok(0, 10, 1, 2, "a")
	b := mkTok(0, 10, 3, 4, "b")
	cols := []Column{
		{Centroid: 10, Tokens: []token.Token{a}},
		{Centroid: 20, Tokens: []token.Token{a, b}},
	}
	out := RemoveOrphanColumns(cols)
	if len(out) != 1 {
		t.Fatalf("expected orphan column dropped, got %d columns", len(out))
	}
	if out[0].Centroid != 20 {
		t.Errorf("expected surviving column centroid 20, got %v", out[0].Centroid)
	}
}

func TestMergeCloseColumns(t *testing.T) {
	cols := []Column{
		{Centroid: 200, Tokens: make([]token.Token, 2)},
		{Centroid: 218, Tokens: make([]token.Token, 5)},
	}
	out := MergeCloseColumns(cols, 24)
	if len(out) != 1 {
		t.Fatalf("expected merge into 1 column, got %d", len(out))
	}
	if out[0].Centroid != 218 {
		t.Errorf("expected merged centroid 218 (larger column), got %v", out[0].Centroid)
	}
	if len(out[0].Tokens) != 7 {
		t.Errorf("expected 7 merged tokens, got %d", len(out[0].Tokens))
	}
}

func TestRemoveAlphaOnlyColumns(t *testing.T) {
	cols := []Column{
		{Centroid: 1, Tokens: []token.Token{mkTok(0, 10, 1, 2, "Total"), mkTok(0, 10, 3, 4, "Subtotal")}},
		{Centroid: 2, Tokens: []token.Token{mkTok(0, 10, 1, 2, "1,234")}},
	}
	out := RemoveAlphaOnlyColumns(cols)
	if len(out) != 1 {
		t.Fatalf("expected alpha-only column dropped, got %d", len(out))
	}
	if out[0].Centroid != 2 {
		t.Errorf("wrong column survived: %v", out[0].Centroid)
	}
}
