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

	"github.com/phlfinance/ledger-etl/internal/registry"
	"github.com/phlfinance/ledger-etl/internal/table"
)

func init() {
	registry.Register(cityOtherGovtsDescriptor())
}

// cityOtherGovtsDescriptor describes the monthly City Other Governments
// Collections report, grounded on CityOtherGovtsCollections in
// original_source/.../etl/collections/monthly/city_other_govts.py: the
// rows from "U.S. GOV" (inclusive) through the "TOTAL...REVENUE...GOV"
// row.
func cityOtherGovtsDescriptor() registry.Descriptor {
	return registry.Descriptor{
		Name:    "city-other-govts",
		Summary: "Monthly City Other Governments Collections report",
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
			return monthlyOutputName(p, "other-govts")
		},
		ColumnLabels: func(p registry.Params) []string {
			month, _ := p.Int("month")
			year, _ := p.Int("year")
			return lastN(monthlyColumnNames(month, year), 7)
		},
		Crop:     registry.CropStrategy{GridIndex: -1},
		Trim:     cityOtherGovtsTrim,
		Validate: cityOtherGovtsValidate,
	}
}

func cityOtherGovtsTrim(g table.Grid) (table.Grid, error) {
	out, err := boundedTrimExclusivity(g, "U.S. GOV", "TOTAL", []int{5, 7}, 0, true)
	if err != nil {
		return table.Grid{}, err
	}
	for i, h := range out.Headers {
		switch {
		case strings.HasPrefix(h, "total_revenue_from"):
			out.Headers[i] = "total_revenue_other_govts"
		case strings.HasPrefix(h, "other_authorized"):
			out.Headers[i] = "other_authorized_adjustment"
		}
	}
	return out, nil
}

// cityOtherGovtsValidate asserts every subcategory row (every row other
// than the total itself) sums to the total row, for the two month
// columns only, grounded on CityOtherGovtsCollections.validate.
func cityOtherGovtsValidate(rows map[string][]float64, columns []string) registry.ValidationPlan {
	const total = "total_revenue_other_govts"
	var categories []string
	for name := range rows {
		if name != total {
			categories = append(categories, name)
		}
	}
	return registry.ValidationPlan{
		SumToTotals: []registry.SumToTotalDecl{
			{
				Name:         "other_govts_total",
				CategoryRows: categories,
				TotalRow:     total,
				Tolerance:    5,
				Columns:      []int{0, 1},
			},
		},
	}
}
