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
package reports

import (
	"errors"
	"strings"
	"testing"

	"github.com/phlfinance/ledger-etl/internal/ledgererr"
	"github.com/phlfinance/ledger-etl/internal/table"
)

func TestCityTaxRowNamesLengths(t *testing.T) {
	for _, n := range []int{39, 40, 42} {
		names, err := cityTaxRowNames(n)
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		if len(names) != n {
			t.Errorf("n=%d: got %d names", n, len(names))
		}
	}
	if names, err := cityTaxRowNames(41); err == nil {
		t.Errorf("expected error for unsupported row count, got %v", names)
	}
}

func TestCityTaxRowNamesEndWithAllTaxesTotal(t *testing.T) {
	names, err := cityTaxRowNames(42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if last := names[len(names)-1]; last != "all_taxes_total" {
		t.Errorf("expected final row to be all_taxes_total, got %q", last)
	}
	if names[0] != "real_estate_current" {
		t.Errorf("expected first row to be real_estate_current, got %q", names[0])
	}
}

// buildMinimalGrid constructs a 41-row grid (a "DATA WAREHOUSE" row to
// be dropped, 38 pre-named rows, the "TOTAL TAX REVENUE" stop row, and
// a blank row after the stop), so that 39 rows survive trimming; each
// row has 9 raw columns so column-slicing to the last 7 can be
// exercised.
func buildMinimalGrid(t *testing.T) table.Grid {
	t.Helper()
	names, err := cityTaxRowNames(39)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	nineCols := func(val string) []string {
		row := make([]string, 9)
		for i := range row {
			row[i] = val
		}
		return row
	}

	// Row 0 is a "DATA WAREHOUSE" row to be dropped. Rows 1..38 stand in
	// for the first 38 named rows; row 39 carries the literal
	// "TOTAL TAX REVENUE" stop text (the PDF's own label for what
	// becomes the "all_taxes_total" row). Row 40, after the stop, is
	// blank and must not survive truncation.
	g := table.Grid{
		Headers: append([]string{"DATA WAREHOUSE SUMMARY"}, names[:len(names)-1]...),
		Rows:    nil,
	}
	g.Headers = append(g.Headers, "TOTAL TAX REVENUE", "")
	for range g.Headers {
		g.Rows = append(g.Rows, nineCols("1,000"))
	}
	g.Rows[len(g.Rows)-1] = nineCols("")

	return g
}

func TestCityTaxTrimProducesExpectedShape(t *testing.T) {
	g := buildMinimalGrid(t)
	out, err := cityTaxTrim(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.NumRows() != 39 {
		t.Fatalf("expected 39 rows after trim, got %d", out.NumRows())
	}
	if out.NumCols() != 8 {
		t.Fatalf("expected 8 columns (name + 7 value columns), got %d", out.NumCols())
	}
	if out.Headers[0] != "real_estate_current" {
		t.Errorf("expected first row renamed to real_estate_current, got %q", out.Headers[0])
	}
}

func TestCityTaxTrimMissingStopRow(t *testing.T) {
	g := table.Grid{Headers: []string{"Real Estate"}, Rows: [][]string{{"100"}}}
	_, err := cityTaxTrim(g)
	if !errors.Is(err, ledgererr.ParseError) {
		t.Fatalf("expected ParseError for missing stop row, got %v", err)
	}
}

// TestCityTaxValidatePlanChecksOnlyMonthPrefixedColumns asserts the
// sum-to-total check is restricted to the two columns literally
// prefixed by the month abbreviation (t.filter(regex=f"^{month_name}")
// in CityTaxCollections.validate), not every non-percent column.
func TestCityTaxValidatePlanChecksOnlyMonthPrefixedColumns(t *testing.T) {
	columns := lastN(monthlyColumnNames(7, 2023), 7)
	rows := map[string][]float64{
		"real_estate_total":          {10, 10, 10, 10, 10, 10, 50},
		"wage_city_total":            {10, 10, 10, 10, 10, 10, 50},
		"earnings_city_total":        {10, 10, 10, 10, 10, 10, 50},
		"net_profits_city_total":     {10, 10, 10, 10, 10, 10, 50},
		"birt_total":                 {10, 10, 10, 10, 10, 10, 50},
		"sales_total":                {10, 10, 10, 10, 10, 10, 50},
		"amusement_total":            {10, 10, 10, 10, 10, 10, 50},
		"tobacco_total":              {10, 10, 10, 10, 10, 10, 50},
		"parking_total":              {10, 10, 10, 10, 10, 10, 50},
		"valet_total":                {10, 10, 10, 10, 10, 10, 50},
		"real_estate_transfer_total": {10, 10, 10, 10, 10, 10, 50},
		"outdoor_ads_total":          {10, 10, 10, 10, 10, 10, 50},
		"all_taxes_total":            {120, 120, 120, 120, 120, 120, 1},
	}
	plan := cityTaxValidate(rows, columns)
	if len(plan.SumToTotals) != 1 {
		t.Fatalf("expected one sum-to-total declaration, got %d", len(plan.SumToTotals))
	}
	decl := plan.SumToTotals[0]
	if len(decl.Columns) != 2 {
		t.Fatalf("expected exactly 2 checked columns, got %d: %v", len(decl.Columns), decl.Columns)
	}
	for _, c := range decl.Columns {
		if !strings.HasPrefix(columns[c], "jul_") {
			t.Errorf("expected column %q to be month-prefixed", columns[c])
		}
	}
}
