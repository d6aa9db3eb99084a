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
package clean

import (
	"testing"

	"github.com/phlfinance/ledger-etl/internal/table"
)

func grid(headers []string, rows [][]string) table.Grid {
	return table.Grid{Headers: headers, Rows: rows}
}

func TestRemoveFootnoteRows(t *testing.T) {
	g := grid([]string{"Revenue", "* Preliminary"}, [][]string{{"100"}, {""}})
	out := RemoveFootnoteRows(g)
	if len(out.Headers) != 1 || out.Headers[0] != "Revenue" {
		t.Fatalf("unexpected headers: %v", out.Headers)
	}
}

func TestRemoveSpaces(t *testing.T) {
	g := grid([]string{"Wage"}, [][]string{{"1 234 567"}})
	out := RemoveSpaces(g)
	if out.Rows[0][0] != "1234567" {
		t.Errorf("got %q", out.Rows[0][0])
	}
}

func TestFixDuplicateParens(t *testing.T) {
	g := grid([]string{"Refunds"}, [][]string{{"((500))"}})
	out := FixDuplicateParens(g)
	if out.Rows[0][0] != "(500)" {
		t.Errorf("got %q", out.Rows[0][0])
	}
}

func TestFixPercentages(t *testing.T) {
	g := grid([]string{"Growth"}, [][]string{{"4.2%"}})
	out := FixPercentages(g)
	if out.Rows[0][0] != "4.2" {
		t.Errorf("got %q", out.Rows[0][0])
	}
}

func TestStripDollarSigns(t *testing.T) {
	g := grid([]string{"Revenue"}, [][]string{{"$5,000"}})
	out := StripDollarSigns(g)
	if out.Rows[0][0] != "5,000" {
		t.Errorf("got %q", out.Rows[0][0])
	}
}

func TestReplaceMissingCells(t *testing.T) {
	g := grid([]string{"A", "B"}, [][]string{{"N/A", "5"}, {"-", "10"}})
	out := ReplaceMissingCells(g)
	if out.Rows[0][0] != "" || out.Rows[1][0] != "" {
		t.Errorf("expected N/A and - normalized to empty: %v", out.Rows)
	}
	if out.Rows[0][1] != "5" {
		t.Errorf("unrelated cell mutated: %q", out.Rows[0][1])
	}
}

func TestRemoveExtraLettersFirstColumn(t *testing.T) {
	g := grid([]string{"A", "B"}, [][]string{{"5,000A", "text stays"}})
	out := RemoveExtraLettersFirstColumn(g)
	if out.Rows[0][0] != "5,000" {
		t.Errorf("got %q", out.Rows[0][0])
	}
	if out.Rows[0][1] != "text stays" {
		t.Errorf("second column should be untouched, got %q", out.Rows[0][1])
	}
}

func TestRemoveMissingRows(t *testing.T) {
	g := grid([]string{"A", "B"}, [][]string{{"1", "2"}, {"", ""}})
	out := RemoveMissingRows(g)
	if len(out.Headers) != 1 || out.Headers[0] != "A" {
		t.Fatalf("expected only non-empty row retained, got %v", out.Headers)
	}
}

func TestFixDuplicatedCharsCollapsesArtifactRow(t *testing.T) {
	// A first-data-column value that's entirely repeated characters and
	// commas collapses to nothing under the detector, triggering the
	// short-run collapse across the whole row.
	g := grid([]string{"Garbled"}, [][]string{{"11,,11", "aa bb"}})
	out := FixDuplicatedChars(g)
	if out.Rows[0][0] == "11,,11" {
		t.Errorf("expected duplicated-char row to be collapsed, got unchanged %q", out.Rows[0][0])
	}
}

func TestFixDuplicatedCharsLeavesNormalRows(t *testing.T) {
	g := grid([]string{"Wage Tax"}, [][]string{{"1,234,567"}})
	out := FixDuplicatedChars(g)
	if out.Rows[0][0] != "1,234,567" {
		t.Errorf("expected normal numeric row untouched, got %q", out.Rows[0][0])
	}
}

func TestDefaultPipelineRuns(t *testing.T) {
	g := grid(
		[]string{"Wage Tax", "* Preliminary"},
		[][]string{{"$1 234.00A"}, {""}},
	)
	out := Default.Run(g)
	if len(out.Headers) != 1 {
		t.Fatalf("expected footnote row dropped, got %v", out.Headers)
	}
}
