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
package table

import (
	"testing"

	"github.com/phlfinance/ledger-etl/internal/token"
)

func mkTok(x0, x1, top, bottom float64, text string) token.Token {
	return token.New(x0, x1, top, bottom, text)
}

func TestReconstructSingleRowTwoColumns(t *testing.T) {
	toks := []token.Token{
		mkTok(0, 60, 100, 112, "Wage Tax"),
		mkTok(200, 260, 101, 113, "1,234,567"),
	}
	g := Reconstruct(toks, DefaultParams)

	if g.NumRows() != 1 {
		t.Fatalf("expected 1 row, got %d", g.NumRows())
	}
	if g.Headers[0] != "Wage Tax" {
		t.Errorf("unexpected header: %q", g.Headers[0])
	}
	if g.NumCols() != 2 {
		t.Fatalf("expected 2 columns, got %d", g.NumCols())
	}
	if g.Cell(0, 1) != "1,234,567" {
		t.Errorf("unexpected cell value: %q", g.Cell(0, 1))
	}
}

func TestReconstructAccountingNegative(t *testing.T) {
	toks := []token.Token{
		mkTok(0, 60, 100, 112, "Refunds"),
		mkTok(200, 260, 101, 113, "(4,500)"),
	}
	g := Reconstruct(toks, DefaultParams)
	if g.Cell(0, 1) != "(4,500)" {
		t.Errorf("expected parenthesized negative preserved for downstream coercion, got %q", g.Cell(0, 1))
	}
}

func TestReconstructDashBecomesEmpty(t *testing.T) {
	// A second row with a real value keeps the column from being dropped
	// entirely by the empty-column pass, isolating the dash -> "" rule.
	toks := []token.Token{
		mkTok(0, 60, 100, 112, "Interest"),
		mkTok(200, 260, 101, 113, "-"),
		mkTok(0, 60, 200, 212, "Other Income"),
		mkTok(200, 260, 199, 211, "500"),
	}
	g := Reconstruct(toks, DefaultParams)
	if g.Cell(0, 1) != "" {
		t.Errorf("expected dash normalized to empty, got %q", g.Cell(0, 1))
	}
	if g.Cell(1, 1) != "500" {
		t.Errorf("expected second row preserved, got %q", g.Cell(1, 1))
	}
}

func TestReconstructMultiRowAssignsNearestHeader(t *testing.T) {
	toks := []token.Token{
		mkTok(0, 40, 100, 112, "Real Estate"),
		mkTok(200, 260, 101, 113, "10,000"),
		mkTok(0, 40, 200, 212, "Wage"),
		mkTok(200, 260, 199, 211, "20,000"),
	}
	g := Reconstruct(toks, DefaultParams)
	if g.NumRows() != 2 {
		t.Fatalf("expected 2 rows, got %d", g.NumRows())
	}
	if g.Headers[0] != "Real Estate" || g.Cell(0, 1) != "10,000" {
		t.Errorf("row 0 mismatch: header=%q cell=%q", g.Headers[0], g.Cell(0, 1))
	}
	if g.Headers[1] != "Wage" || g.Cell(1, 1) != "20,000" {
		t.Errorf("row 1 mismatch: header=%q cell=%q", g.Headers[1], g.Cell(1, 1))
	}
}

func TestReconstructDropsFootnoteRows(t *testing.T) {
	toks := []token.Token{
		mkTok(0, 40, 100, 112, "Revenue"),
		mkTok(200, 260, 101, 113, "5,000"),
		mkTok(0, 120, 200, 212, "* Preliminary, subject to revision"),
	}
	g := Reconstruct(toks, DefaultParams)
	if g.NumRows() != 1 {
		t.Fatalf("expected footnote row excluded, got %d rows", g.NumRows())
	}
}

func TestReconstructDropsAlphaOnlyColumn(t *testing.T) {
	// Row 1 is a header row ("Real Estate"); its numeric token enters the
	// data pool. Row 2 starts with a non-alpha token, so the whole row
	// (including the alpha "Total" label) is added to the pool
	// unconditionally, the same way a data-only row would be in the
	// original pipeline. The "Total" column is alpha-only and must be
	// dropped before the grid is built.
	toks := []token.Token{
		mkTok(0, 40, 100, 112, "Real Estate"),
		mkTok(100, 160, 101, 113, "10,000"),
		mkTok(100, 160, 199, 211, "5,000"),
		mkTok(300, 340, 199, 211, "Total"),
	}
	g := Reconstruct(toks, DefaultParams)
	if g.NumCols() != 2 {
		t.Fatalf("expected the alpha-only 'Total' column dropped, got %d cols", g.NumCols())
	}
	if g.Cell(0, 1) != "10,000" {
		t.Errorf("unexpected cell value: %q", g.Cell(0, 1))
	}
}

func TestReconstructEmptyInput(t *testing.T) {
	g := Reconstruct(nil, DefaultParams)
	if !g.Empty() {
		t.Errorf("expected empty grid for no tokens")
	}
}

func TestReconstructNoHeaderRowsYieldsEmptyGrid(t *testing.T) {
	toks := []token.Token{
		mkTok(200, 260, 101, 113, "10,000"),
		mkTok(300, 360, 101, 113, "20,000"),
	}
	g := Reconstruct(toks, DefaultParams)
	if !g.Empty() {
		t.Errorf("expected empty grid when no row has an alpha-leading header")
	}
}
