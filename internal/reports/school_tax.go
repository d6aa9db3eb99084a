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
	registry.Register(schoolTaxDescriptor())
}

// schoolTaxDescriptor describes the monthly School District Collections
// report, grounded on SchoolTaxCollections in
// original_source/.../etl/collections/monthly/school.py: a short fixed
// row sequence starting at "REAL ESTATE", with an optional interleaved
// PILOTS (payments in lieu of taxes) row in the 15-row variant.
func schoolTaxDescriptor() registry.Descriptor {
	return registry.Descriptor{
		Name:    "school-tax",
		Summary: "Monthly School District Tax Collections report",
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
			return fmt.Sprintf("school/%04d-%02d-school.pdf", year, month), nil
		},
		// SchoolTaxCollections.load reuses the "tax" suffix verbatim (its
		// own report_type directory keeps it from colliding with city-tax's
		// output).
		OutputPath: func(p registry.Params) (string, error) {
			return monthlyOutputName(p, "tax")
		},
		ColumnLabels: func(p registry.Params) []string {
			month, _ := p.Int("month")
			year, _ := p.Int("year")
			return lastN(monthlyColumnNames(month, year), 7)
		},
		Crop:     registry.CropStrategy{GridIndex: -1},
		Trim:     schoolTaxTrim,
		Validate: schoolTaxValidate,
	}
}

func schoolTaxTrim(g table.Grid) (table.Grid, error) {
	start := -1
	for i, h := range g.Headers {
		if strings.Contains(h, "REAL ESTATE") {
			start = i
			break
		}
	}
	if start == -1 {
		return table.Grid{}, ledgererr.New(ledgererr.ParseError, "school-tax: no REAL ESTATE row found")
	}

	headers := append([]string(nil), g.Headers[start:]...)
	rows := append([][]string(nil), g.Rows[start:]...)
	if n := len(headers); n != 14 && n != 15 {
		return table.Grid{}, ledgererr.New(ledgererr.SchemaError,
			fmt.Sprintf("school-tax: expected 14 or 15 rows, got %d", n))
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

	names, err := schoolTaxRowNames(headers)
	if err != nil {
		return table.Grid{}, err
	}

	return table.Grid{Headers: names, Rows: rows}, nil
}

// schoolTaxRowNames ports the rename_tax_rows sequence in
// SchoolTaxCollections.transform: four triplets (real_estate,
// school_income, use_and_occupancy, liquor) when there is no PILOTS row
// (14 total rows), or a PILOTS total interleaved after the first triplet
// when the original text contains "PAYMENT" (15 total rows).
func schoolTaxRowNames(rawHeaders []string) ([]string, error) {
	var names []string
	appendTriplet := func(base string) {
		names = append(names, base+"_current", base+"_prior", base+"_total")
	}

	switch len(rawHeaders) {
	case 14:
		appendTriplet("real_estate")
		appendTriplet("school_income")
		appendTriplet("use_and_occupancy")
		appendTriplet("liquor")
	case 15:
		appendTriplet("real_estate")
		if strings.Contains(strings.ToUpper(rawHeaders[3]), "PAYMENT") {
			names = append(names, "pilots_total")
		}
		appendTriplet("school_income")
		appendTriplet("use_and_occupancy")
		appendTriplet("liquor")
		if len(names) < len(rawHeaders)-2 && strings.Contains(strings.ToUpper(rawHeaders[len(names)]), "PAYMENT") {
			names = append(names, "pilots_total")
		}
	default:
		return nil, ledgererr.New(ledgererr.SchemaError, fmt.Sprintf("school-tax: unsupported row count %d", len(rawHeaders)))
	}

	names = append(names, "other_nontax_total", "total_revenue_total")

	if len(names) != len(rawHeaders) {
		return nil, ledgererr.New(ledgererr.SchemaError,
			fmt.Sprintf("school-tax: row-name sequence produced %d names for %d rows", len(names), len(rawHeaders)))
	}
	return names, nil
}

func schoolTaxValidate(rows map[string][]float64, columns []string) registry.ValidationPlan {
	const total = "total_revenue_total"
	var categories []string
	for name := range rows {
		if name != total && strings.HasSuffix(name, "_total") {
			categories = append(categories, name)
		}
	}
	return registry.ValidationPlan{
		SumToTotals: []registry.SumToTotalDecl{
			{
				Name:         "school_total_revenue",
				CategoryRows: categories,
				TotalRow:     total,
				Tolerance:    5,
				Columns:      []int{0, 1},
			},
		},
	}
}
