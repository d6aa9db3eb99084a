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
package coerce

import (
	"testing"

	"github.com/phlfinance/ledger-etl/internal/table"
)

func TestParseNumberPlain(t *testing.T) {
	f, ok := ParseNumber("1234.5")
	if !ok || f != 1234.5 {
		t.Fatalf("got %v, %v", f, ok)
	}
}

func TestParseNumberThousands(t *testing.T) {
	f, ok := ParseNumber("1,234,567")
	if !ok || f != 1234567 {
		t.Fatalf("got %v, %v", f, ok)
	}
}

func TestParseNumberDollarSign(t *testing.T) {
	f, ok := ParseNumber("$5,000")
	if !ok || f != 5000 {
		t.Fatalf("got %v, %v", f, ok)
	}
}

func TestParseNumberAccountingNegative(t *testing.T) {
	f, ok := ParseNumber("(4,500)")
	if !ok || f != -4500 {
		t.Fatalf("got %v, %v", f, ok)
	}
}

func TestParseNumberEmptyNotOK(t *testing.T) {
	_, ok := ParseNumber("   ")
	if ok {
		t.Fatalf("expected empty string to not parse")
	}
}

func TestParseNumberGarbageNotOK(t *testing.T) {
	_, ok := ParseNumber("see note 2")
	if ok {
		t.Fatalf("expected non-numeric text to not parse")
	}
}

func TestCellFromStringLenientMissingOnFailure(t *testing.T) {
	c, err := CellFromString("n/a text", Lenient)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Kind != Missing {
		t.Errorf("expected Missing, got %v", c.Kind)
	}
}

func TestCellFromStringStrictErrorsOnFailure(t *testing.T) {
	_, err := CellFromString("n/a text", Strict)
	if err == nil {
		t.Fatalf("expected error in strict mode")
	}
}

func TestCellFromStringEmptyIsMissingInBothModes(t *testing.T) {
	for _, m := range []Mode{Lenient, Strict} {
		c, err := CellFromString("", m)
		if err != nil {
			t.Fatalf("unexpected error for mode %v: %v", m, err)
		}
		if !c.IsMissing() {
			t.Errorf("expected Missing for mode %v", m)
		}
	}
}

func TestCoerceGrid(t *testing.T) {
	g := table.Grid{
		Headers: []string{"Wage Tax", "Refunds"},
		Rows: [][]string{
			{"1,234,567"},
			{"(500)"},
		},
	}
	out, err := CoerceGrid(g, Lenient, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Rows[0][0].Float() != 1234567 {
		t.Errorf("row 0: got %v", out.Rows[0][0].Float())
	}
	if out.Rows[1][0].Float() != -500 {
		t.Errorf("row 1: got %v", out.Rows[1][0].Float())
	}
}

func TestCoerceGridTagsPercentColumns(t *testing.T) {
	g := table.Grid{
		Headers: []string{"Wage Tax"},
		Rows:    [][]string{{"4.2", "1,000"}},
	}
	out, err := CoerceGrid(g, Lenient, map[int]bool{0: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Rows[0][0].Kind != Percent {
		t.Errorf("expected column 0 tagged Percent, got %v", out.Rows[0][0].Kind)
	}
	if out.Rows[0][0].Float() != 4.2 {
		t.Errorf("percent magnitude not preserved: %v", out.Rows[0][0].Float())
	}
	if out.Rows[0][1].Kind != Number {
		t.Errorf("expected column 1 to remain Number, got %v", out.Rows[0][1].Kind)
	}
}
