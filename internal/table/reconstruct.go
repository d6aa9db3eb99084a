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
	"regexp"
	"strings"
	"unicode"

	"github.com/phlfinance/ledger-etl/internal/geometry"
	"github.com/phlfinance/ledger-etl/internal/token"
)

// numericLike mirrors the original implementation's prefix-match regex:
// a token "looks numeric" if it starts with an optional open paren
// followed by a percentage, a thousands-grouped integer, a bare hyphen,
// or "N/A". It deliberately does not anchor the end, so "1,234.50"
// still qualifies on its "1,234" prefix — matching original_source's
// re.match semantics, which only anchors at position zero.
var numericLike = regexp.MustCompile(`^\(?(\d+(\.\d+)?%|\d{1,3}(,\d{3})*|-|N/A)\)?`)

// Params tunes the reconstruction thresholds; see SPEC_FULL.md §4.2.
type Params struct {
	TextToleranceX     float64
	TextToleranceY     float64
	ColumnTolerance    float64
	MinColSep          float64
	RowHeaderTolerance float64
}

// DefaultParams matches the tolerances used throughout the original
// collections reports.
var DefaultParams = Params{
	TextToleranceX:     2,
	TextToleranceY:     5,
	ColumnTolerance:    5,
	MinColSep:          24,
	RowHeaderTolerance: 5,
}

// Reconstruct turns a flat token stream from one page region into a
// dense Grid, following §4.2: footnote cutoff, row clustering, phrase
// merging, header/data split, column clustering and cleanup, and
// mutual-nearest-header cell assignment.
func Reconstruct(tokens []token.Token, p Params) Grid {
	tokens = geometry.ApplyFootnoteCutoff(tokens)
	if len(tokens) == 0 {
		return Grid{}
	}

	rowGroups := geometry.FuzzyGroup(tokens, geometry.AxisBottom, p.TextToleranceY, p.TextToleranceY,
		func(t token.Token) float64 { return t.X() })

	var headers []token.Token
	var dataPool []token.Token

	for _, rg := range rowGroups {
		row := geometry.MergePhrases(rg.Tokens, p.TextToleranceX)
		if len(row) == 0 {
			continue
		}
		if strings.HasPrefix(row[0].Text, "*") {
			continue
		}

		if startsAlpha(row[0].Text) {
			headers = append(headers, row[0])
			for _, w := range row {
				if numericLike.MatchString(strings.ReplaceAll(w.Text, " ", "")) {
					dataPool = append(dataPool, w)
				}
			}
		} else {
			dataPool = append(dataPool, row...)
		}
	}

	if len(headers) == 0 {
		return Grid{}
	}

	columns := geometry.GroupIntoColumns(dataPool, p.ColumnTolerance)
	columns = geometry.CleanColumns(columns, p.MinColSep)

	grid := buildGrid(headers, columns, p.RowHeaderTolerance)
	return dropEmptyColumns(replaceDashes(grid))
}

func startsAlpha(s string) bool {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return false
	}
	r := []rune(trimmed)
	return unicode.IsLetter(r[0])
}

// buildGrid assigns each column's tokens to the header row they are
// closest to, keeping an assignment only when it is mutual: the token's
// single nearest header (by |top-top| distance, ties favoring the
// topmost header) must be the header under consideration, and the
// distance must fall within rowHeaderTolerance. This reproduces
// create_data_table's behavior without its incremental-removal loop,
// since a token can be the unique nearest match for at most one header.
func buildGrid(headers []token.Token, columns []geometry.Column, rowHeaderTolerance float64) Grid {
	g := Grid{
		Headers: make([]string, len(headers)),
		Rows:    make([][]string, len(headers)),
	}
	for i, h := range headers {
		g.Headers[i] = h.Text
		g.Rows[i] = make([]string, len(columns))
	}

	for colIdx, col := range columns {
		type claim struct {
			headerIdx int
			diff      float64
			text      string
		}
		best := make(map[int]claim)

		for _, t := range col.Tokens {
			nearest := -1
			nearestDiff := 0.0
			for hi, h := range headers {
				d := absDiff(t.Top, h.Top)
				if nearest == -1 || d < nearestDiff {
					nearest = hi
					nearestDiff = d
				}
			}
			if nearest == -1 || nearestDiff > rowHeaderTolerance {
				continue
			}
			if c, ok := best[nearest]; !ok || nearestDiff < c.diff {
				best[nearest] = claim{headerIdx: nearest, diff: nearestDiff, text: t.Text}
			}
		}

		for hi, c := range best {
			g.Rows[hi][colIdx] = c.text
		}
	}

	return g
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}

// replaceDashes turns a literal "-" cell (accounting notation for zero
// or not-applicable) into an empty cell, per §4.1's closing pass.
func replaceDashes(g Grid) Grid {
	for r := range g.Rows {
		for c := range g.Rows[r] {
			if strings.TrimSpace(g.Rows[r][c]) == "-" {
				g.Rows[r][c] = ""
			}
		}
	}
	return g
}

// dropEmptyColumns removes any data column that is empty across every
// row, matching remove_empty_columns in the original pipeline.
func dropEmptyColumns(g Grid) Grid {
	if len(g.Rows) == 0 {
		return g
	}
	numCols := len(g.Rows[0])
	keep := make([]bool, numCols)
	for c := 0; c < numCols; c++ {
		for r := range g.Rows {
			if strings.TrimSpace(g.Rows[r][c]) != "" {
				keep[c] = true
				break
			}
		}
	}

	var keptIdx []int
	for c, k := range keep {
		if k {
			keptIdx = append(keptIdx, c)
		}
	}
	if len(keptIdx) == numCols {
		return g
	}

	out := Grid{Headers: g.Headers, Rows: make([][]string, len(g.Rows))}
	for r := range g.Rows {
		row := make([]string, len(keptIdx))
		for i, c := range keptIdx {
			row[i] = g.Rows[r][c]
		}
		out.Rows[r] = row
	}
	return out
}
