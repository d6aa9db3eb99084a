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
	"sort"
	"strings"
	"unicode"

	"github.com/phlfinance/ledger-etl/internal/token"
)

// Column is a vertically clustered set of tokens sharing an x1 centroid,
// keyed by that centroid. Grounded on
// original_source/.../etl/utils/pdf.py's `columns` dict keyed by fuzzy x1.
type Column struct {
	Centroid float64
	Tokens   []token.Token
}

// GroupIntoColumns clusters tokens into columns keyed by x1, sorting each
// column's tokens top-to-bottom (§4.2 step 4).
func GroupIntoColumns(tokens []token.Token, columnTolerance float64) []Column {
	groups := FuzzyGroup(tokens, AxisX1, columnTolerance, columnTolerance, func(t token.Token) float64 { return t.Top })

	cols := make([]Column, len(groups))
	for i, g := range groups {
		cols[i] = Column{Centroid: g.Pivot, Tokens: g.Tokens}
	}
	return cols
}

// isSubset reports whether every token in a appears (by text+position)
// in b.
func isSubset(a, b []token.Token) bool {
	contains := func(set []token.Token, t token.Token) bool {
		for _, o := range set {
			if o == t {
				return true
			}
		}
		return false
	}
	for _, t := range a {
		if !contains(b, t) {
			return false
		}
	}
	return true
}

// RemoveOrphanColumns drops any column whose token set is a full subset
// of another column's token set (§4.1 rule 1).
func RemoveOrphanColumns(columns []Column) []Column {
	drop := make([]bool, len(columns))
	for i := range columns {
		for j := range columns {
			if i == j {
				continue
			}
			if isSubset(columns[i].Tokens, columns[j].Tokens) {
				drop[i] = true
				break
			}
		}
	}
	out := make([]Column, 0, len(columns))
	for i, c := range columns {
		if !drop[i] {
			out = append(out, c)
		}
	}
	return out
}

// MergeCloseColumns merges adjacent column centroids within minColSep of
// one another, folding the smaller (by token count) into the larger and
// retaining the larger's centroid; a tie keeps the left (lower-centroid)
// column, mirroring the single left-to-right pass of the original
// remove_close_columns (§4.1 rule 2).
func MergeCloseColumns(columns []Column, minColSep float64) []Column {
	cols := make([]Column, len(columns))
	copy(cols, columns)
	sort.Slice(cols, func(i, j int) bool { return cols[i].Centroid < cols[j].Centroid })

	deleted := make([]bool, len(cols))
	locations := make([]float64, len(cols))
	for i, c := range cols {
		locations[i] = c.Centroid
	}

	for i := 0; i < len(locations)-1; i++ {
		if deleted[i] {
			continue
		}
		if locations[i+1]-locations[i] < minColSep {
			if len(cols[i+1].Tokens) > len(cols[i].Tokens) {
				cols[i+1].Tokens = append(cols[i+1].Tokens, cols[i].Tokens...)
				deleted[i] = true
			} else {
				cols[i].Tokens = append(cols[i].Tokens, cols[i+1].Tokens...)
				deleted[i+1] = true
				locations[i+1] = locations[i]
			}
		}
	}

	out := make([]Column, 0, len(cols))
	for i, c := range cols {
		if !deleted[i] {
			out = append(out, c)
		}
	}
	return out
}

// RemoveAlphaOnlyColumns drops any column in which every token, after
// removing spaces, is purely alphabetic (§4.1 rule 3).
func RemoveAlphaOnlyColumns(columns []Column) []Column {
	out := make([]Column, 0, len(columns))
	for _, c := range columns {
		allAlpha := true
		for _, t := range c.Tokens {
			stripped := strings.ReplaceAll(t.Text, " ", "")
			if !isAlpha(stripped) {
				allAlpha = false
				break
			}
		}
		if !allAlpha {
			out = append(out, c)
		}
	}
	return out
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// CleanColumns applies the three column-cleanup rules in the order
// mandated by §4.1: orphan subsumption, close-column merge, alpha-only
// drop.
func CleanColumns(columns []Column, minColSep float64) []Column {
	columns = RemoveOrphanColumns(columns)
	columns = MergeCloseColumns(columns, minColSep)
	columns = RemoveAlphaOnlyColumns(columns)
	return columns
}
