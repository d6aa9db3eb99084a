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
	"fmt"
	"strings"

	"github.com/phlfinance/ledger-etl/internal/ledgererr"
	"github.com/phlfinance/ledger-etl/internal/registry"
	"github.com/phlfinance/ledger-etl/internal/table"
)

func init() {
	registry.Register(cityTaxDescriptor())
}

// cityTaxDescriptor describes the monthly City Tax Collections report,
// grounded on CityTaxCollections in
// original_source/.../etl/collections/monthly/city_tax.py. It is the
// fully-worked example the rest of the monthly/quarterly family follows.
func cityTaxDescriptor() registry.Descriptor {
	return registry.Descriptor{
		Name:    "city-tax",
		Summary: "Monthly City Tax Collections report",
		Params: []registry.Param{
			{Name: "month", Required: true},
			{Name: "year", Required: true},
		},
		RawPath: func(p registry.Params) (string, error) {
			month, err := p.Int("month")
			if err != nil {
				return "", err
			}
			year, err := p.Int("year")
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("city/%04d-%02d-city.pdf", year, month), nil
		},
		OutputPath: func(p registry.Params) (string, error) {
			return monthlyOutputName(p, "tax")
		},
		ColumnLabels: func(p registry.Params) []string {
			month, _ := p.Int("month")
			year, _ := p.Int("year")
			return lastN(monthlyColumnNames(month, year), 7)
		},
		// pct_budgeted is the last of the seven selected columns.
		PercentColumns: map[int]bool{6: true},
		Crop:           registry.CropStrategy{GridIndex: -1},
		Trim:           cityTaxTrim,
		Validate:       cityTaxValidate,
	}
}

// cityTaxTrim implements city_tax.py's transform(): stop at the "TOTAL
// TAX REVENUE" row, drop interleaved "DATA WAREHOUSE" rows, select the
// name column plus the last seven value columns, drop wholly-empty
// rows, and rename every row according to the fixed tax-category
// sequence the report always prints in.
func cityTaxTrim(g table.Grid) (table.Grid, error) {
	stop := -1
	for i, h := range g.Headers {
		if strings.Contains(h, "TOTAL TAX REVENUE") {
			stop = i
			break
		}
	}
	if stop == -1 {
		return table.Grid{}, ledgererr.New(ledgererr.ParseError, "city-tax: no TOTAL TAX REVENUE row found")
	}

	var headers []string
	var rows [][]string
	for i := 0; i <= stop; i++ {
		if strings.Contains(g.Headers[i], "DATA WAREHOUSE") {
			continue
		}
		headers = append(headers, g.Headers[i])
		rows = append(rows, g.Rows[i])
	}

	numCols := 0
	if len(rows) > 0 {
		numCols = len(rows[0])
	}
	keepFrom := 0
	if numCols > 7 {
		keepFrom = numCols - 7
	}
	for r := range rows {
		rows[r] = rows[r][keepFrom:]
	}

	headers, rows = removeEmptyRows(headers, rows)

	if n := len(headers); n != 39 && n != 40 && n != 42 {
		return table.Grid{}, ledgererr.New(ledgererr.SchemaError,
			fmt.Sprintf("city-tax: expected 39, 40, or 42 rows after trimming, got %d", n))
	}

	names, err := cityTaxRowNames(len(headers))
	if err != nil {
		return table.Grid{}, err
	}

	return table.Grid{Headers: names, Rows: rows}, nil
}

// removeEmptyRows drops rows whose data cells are all blank, mirroring
// remove_missing_rows(usecols=data columns).
func removeEmptyRows(headers []string, rows [][]string) ([]string, [][]string) {
	var outHeaders []string
	var outRows [][]string
	for i, row := range rows {
		empty := true
		for _, c := range row {
			if strings.TrimSpace(c) != "" {
				empty = false
				break
			}
		}
		if empty {
			continue
		}
		outHeaders = append(outHeaders, headers[i])
		outRows = append(outRows, row)
	}
	return outHeaders, outRows
}

// cityTaxRowNames builds the fixed row-name sequence the City Tax
// Collections report always prints, a direct port of the renaming logic
// in CityTaxCollections.transform. Every entry already carries its
// "_current"/"_prior"/"_total" suffix inline (the original splits these
// into a separate "kind" column after renaming; keeping them combined
// here lets row names stay the sole row-identity key downstream).
func cityTaxRowNames(n int) ([]string, error) {
	var names []string
	appendTriplet := func(base string) {
		names = append(names, base+"_current", base+"_prior", base+"_total")
	}

	appendTriplet("real_estate")
	appendTriplet("wage_city")
	appendTriplet("wage_pica")
	names = append(names, "wage_total")

	appendTriplet("earnings_city")
	appendTriplet("earnings_pica")
	names = append(names, "earnings_total")

	appendTriplet("net_profits_city")
	appendTriplet("net_profits_pica")
	names = append(names, "net_profits_total")

	names = append(names,
		"wage_earnings_net_profits_total",
		"wage_earnings_net_profits_pica_total",
		"wage_earnings_net_profits_city_total",
	)

	appendTriplet("birt")

	for _, tax := range []string{"sales", "amusement", "tobacco", "parking", "valet", "real_estate_transfer", "outdoor_ads"} {
		names = append(names, tax+"_total")
	}

	var remaining []string
	switch n {
	case 42:
		remaining = []string{"soda_current", "soda_prior", "soda_total", "other_taxes_total", "all_taxes_total"}
	case 40:
		remaining = []string{"soda_total", "other_taxes_total", "all_taxes_total"}
	case 39:
		remaining = []string{"other_taxes_total", "all_taxes_total"}
	default:
		return nil, ledgererr.New(ledgererr.SchemaError, fmt.Sprintf("city-tax: unsupported row count %d", n))
	}
	names = append(names, remaining...)

	if len(names) != n {
		return nil, ledgererr.New(ledgererr.SchemaError,
			fmt.Sprintf("city-tax: row-name sequence produced %d names for %d rows", len(names), n))
	}
	return names, nil
}

// cityTaxValidate asserts that the sum of each category's total row
// equals the "all_taxes_total" row, in the two month-prefixed value
// columns (0 and 1) only, grounded on CityTaxCollections.validate.
func cityTaxValidate(rows map[string][]float64, columns []string) registry.ValidationPlan {
	taxes := []string{
		"real_estate_total",
		"wage_city_total",
		"earnings_city_total",
		"net_profits_city_total",
		"birt_total",
		"sales_total",
		"amusement_total",
		"tobacco_total",
		"parking_total",
		"valet_total",
		"real_estate_transfer_total",
		"outdoor_ads_total",
	}
	if _, ok := rows["soda_total"]; ok {
		taxes = append(taxes, "soda_total")
	}
	if _, ok := rows["other_taxes_total"]; ok {
		taxes = append(taxes, "other_taxes_total")
	}

	var present []string
	for _, name := range taxes {
		if _, ok := rows[name]; ok {
			present = append(present, name)
		}
	}

	// The original restricts the sum-to-total check to the two columns
	// literally prefixed by the month abbreviation
	// (t.filter(regex=f"^{self.month_name}")), not every non-percent
	// column; in the 7-column slice kept by cityTaxTrim those are always
	// the first two (monthName_thisYear, monthName_lastYear).
	checkCols := []int{0, 1}

	return registry.ValidationPlan{
		ExpectedRows: len(rows),
		ExpectedCols: len(columns) + 1,
		SumToTotals: []registry.SumToTotalDecl{
			{
				Name:         "all_taxes",
				CategoryRows: present,
				TotalRow:     "all_taxes_total",
				Tolerance:    5,
				Columns:      checkCols,
			},
		},
	}
}
