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
// Package clean applies the ordered, text-level cleaning passes that
// turn a freshly reconstructed table.Grid into cell strings ready for
// numeric coercion. Each pass is a pure function of a Grid, grounded on
// original_source/.../etl/utils/transformations.py; the default
// pipeline order mirrors MonthlyCollectionsReport.transform's pipe
// chain (original_source/.../etl/collections/monthly/core.py).
package clean

import (
	"regexp"
	"strings"

	"github.com/phlfinance/ledger-etl/internal/table"
)

// Transform is a single cleaning pass over a Grid, returning a new Grid.
type Transform func(table.Grid) table.Grid

// Pipeline runs an ordered list of Transforms.
type Pipeline []Transform

// Run applies every transform in order.
func (p Pipeline) Run(g table.Grid) table.Grid {
	for _, t := range p {
		g = t(g)
	}
	return g
}

// Default is the pass order every monthly collections report applies:
// footnote rows are dropped first (the PDF-level cutoff in
// internal/table already removes most, this is a second defense for
// tables assembled without page-geometry input, e.g. from cached CSVs),
// then character/space/parenthesis/percent cleanup, then missing
// cell normalization, then first-data-column letter stripping, then
// blank-row removal. Numeric coercion (internal/coerce) runs after this
// pipeline.
var Default = Pipeline{
	RemoveFootnoteRows,
	FixDuplicatedChars,
	RemoveSpaces,
	FixDuplicateParens,
	FixPercentages,
	ReplaceMissingCells,
	RemoveExtraLettersFirstColumn,
	RemoveMissingRows,
}

func mapDataCells(g table.Grid, f func(string) string) table.Grid {
	out := table.Grid{Headers: g.Headers, Rows: make([][]string, len(g.Rows))}
	for r, row := range g.Rows {
		newRow := make([]string, len(row))
		for c, cell := range row {
			newRow[c] = f(cell)
		}
		out.Rows[r] = newRow
	}
	return out
}

// RemoveFootnoteRows drops any row whose header label begins with "*".
func RemoveFootnoteRows(g table.Grid) table.Grid {
	out := table.Grid{}
	for i, h := range g.Headers {
		if strings.HasPrefix(strings.TrimSpace(h), "*") {
			continue
		}
		out.Headers = append(out.Headers, h)
		out.Rows = append(out.Rows, g.Rows[i])
	}
	return out
}

var runClass = regexp.MustCompile(`[a-zA-Z0-9%,.]`)

// collapseRuns rewrites each run of two or more identical runClass
// characters: drop removes the run, otherwise every three (or fewer)
// repeats become one character.
func collapseRuns(s string, drop bool) string {
	var b strings.Builder
	for i, j := 0, 0; i < len(s); i = j {
		for j = i + 1; j < len(s) && s[j] == s[i]; j++ {
		}
		if n := j - i; n < 2 || !runClass.MatchString(s[i:i+1]) {
			b.WriteString(s[i:j])
		} else if !drop {
			b.WriteString(strings.Repeat(s[i:i+1], (n+2)/3))
		}
	}
	return b.String()
}

// FixDuplicatedChars detects rows whose first data column is nothing
// but runs of a repeated character and punctuation (an OCR artifact,
// e.g. "1111,,,,"), and for those rows only, collapses every cell's
// 2-or-3-character repeats down to a single character rather than
// stripping them entirely.
func FixDuplicatedChars(g table.Grid) table.Grid {
	out := table.Grid{Headers: make([]string, len(g.Headers)), Rows: make([][]string, len(g.Rows))}
	copy(out.Headers, g.Headers)
	for r, row := range g.Rows {
		newRow := make([]string, len(row))
		copy(newRow, row)

		if len(row) > 0 && len(row[0]) > 0 {
			collapsed := collapseRuns(row[0], true)
			collapsed = strings.ReplaceAll(collapsed, ",", "")
			if len(collapsed) == 0 {
				out.Headers[r] = collapseRuns(out.Headers[r], false)
				for c, cell := range row {
					newRow[c] = collapseRuns(cell, false)
				}
			}
		}
		out.Rows[r] = newRow
	}
	return out
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// RemoveSpaces strips all whitespace from data cells.
func RemoveSpaces(g table.Grid) table.Grid {
	return mapDataCells(g, func(s string) string { return whitespaceRun.ReplaceAllString(s, "") })
}

// FixDuplicateParens collapses doubled parentheses down to one.
func FixDuplicateParens(g table.Grid) table.Grid {
	return mapDataCells(g, func(s string) string {
		s = strings.ReplaceAll(s, "((", "(")
		s = strings.ReplaceAll(s, "))", ")")
		return s
	})
}

// FixPercentages strips a trailing "%" from data cells. The underlying
// numeric value is left untouched; percentage columns are a unit
// convention carried by the report descriptor, not a distinct cell
// type, matching the original's treatment.
func FixPercentages(g table.Grid) table.Grid {
	return mapDataCells(g, func(s string) string {
		return strings.TrimRight(strings.TrimSpace(s), "%")
	})
}

// StripDollarSigns strips a leading "$" from data cells. Not part of
// Default; report descriptors that need it append it explicitly.
func StripDollarSigns(g table.Grid) table.Grid {
	return mapDataCells(g, func(s string) string {
		return strings.TrimLeft(strings.TrimSpace(s), "$")
	})
}

// ReplaceMissingCells normalizes "N/A" and "-" data cells to the empty
// string, the uniform missing-value representation downstream passes
// and internal/coerce expect.
func ReplaceMissingCells(g table.Grid) table.Grid {
	return mapDataCells(g, func(s string) string {
		switch s {
		case "N/A", "-":
			return ""
		default:
			return s
		}
	})
}

var upperLetter = regexp.MustCompile(`[A-Z]`)

// RemoveExtraLettersFirstColumn strips stray uppercase letters (OCR
// footnote-marker leakage) from the first data column only.
func RemoveExtraLettersFirstColumn(g table.Grid) table.Grid {
	out := table.Grid{Headers: g.Headers, Rows: make([][]string, len(g.Rows))}
	for r, row := range g.Rows {
		newRow := make([]string, len(row))
		copy(newRow, row)
		if len(newRow) > 0 {
			newRow[0] = upperLetter.ReplaceAllString(newRow[0], "")
		}
		out.Rows[r] = newRow
	}
	return out
}

// ReplaceCommas, FixDecimals, DecimalToComma, and FixZeros are the four
// QCMR-specific numeric-cleaning passes the original pipes in front of
// convert_to_floats for the Cash Flow Forecast, Departmental
// Obligations, Full-Time Positions, and Personal Services reports
// (original_source/.../etl/qcmr/{cash,obligations,positions,
// personal_services}/core.py all import them from
// etl/utils/transformations.py). Their bodies are not present in this
// retrieval pack's snapshot of transformations.py — only the call sites
// are — so each is reconstructed from its name and its position in the
// pipe chain (immediately before convert_to_floats, alongside the
// duplicate-character collapsing transformations.py does perform, e.g.
// fix_duplicate_parens) rather than ported line-for-line; see DESIGN.md.

var duplicateCommaRun = regexp.MustCompile(`,{2,}`)

// ReplaceCommas collapses runs of repeated commas (an OCR artifact) down
// to one, before thousands-separator commas are stripped by
// internal/coerce.
func ReplaceCommas(g table.Grid) table.Grid {
	return mapDataCells(g, func(s string) string {
		return duplicateCommaRun.ReplaceAllString(s, ",")
	})
}

var duplicateDecimalRun = regexp.MustCompile(`\.{2,}`)

// FixDecimals collapses runs of repeated decimal points down to one, and
// drops a trailing decimal point left with no fractional digits after
// it.
func FixDecimals(g table.Grid) table.Grid {
	return mapDataCells(g, func(s string) string {
		s = duplicateDecimalRun.ReplaceAllString(s, ".")
		return strings.TrimSuffix(s, ".")
	})
}

var misreadThousandsSeparator = regexp.MustCompile(`^(-?\d+)\.(\d{3})$`)

// DecimalToComma rewrites a cell's single decimal point into a comma
// when it is positioned exactly where a thousands separator would fall
// (one or more digits, a dot, then exactly three digits, nothing else)
// and the cell has no comma already — an OCR misread of "," as "." in
// the QCMR tables' count/obligation columns, not a genuine fractional
// value.
func DecimalToComma(g table.Grid) table.Grid {
	return mapDataCells(g, func(s string) string {
		if strings.Contains(s, ",") {
			return s
		}
		return misreadThousandsSeparator.ReplaceAllString(s, "$1,$2")
	})
}

var repeatedZeroRun = regexp.MustCompile(`^0{2,}$`)

// FixZeros collapses a cell consisting of nothing but repeated "0"
// characters down to a single "0", an OCR artifact in the QCMR
// position-count columns; zeros embedded within a larger number are
// left untouched.
func FixZeros(g table.Grid) table.Grid {
	return mapDataCells(g, func(s string) string {
		if repeatedZeroRun.MatchString(s) {
			return "0"
		}
		return s
	})
}

// RemoveMissingRows drops any row whose data cells are all empty.
func RemoveMissingRows(g table.Grid) table.Grid {
	out := table.Grid{}
	for i, row := range g.Rows {
		allEmpty := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				allEmpty = false
				break
			}
		}
		if allEmpty {
			continue
		}
		out.Headers = append(out.Headers, g.Headers[i])
		out.Rows = append(out.Rows, row)
	}
	return out
}
