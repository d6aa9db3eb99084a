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
	registry.Register(cityNonTaxDescriptor())
}

// cityNonTaxDescriptor describes the monthly City Non-Tax Collections
// report, grounded on CityNonTaxCollections in
// original_source/.../etl/collections/monthly/city_nontax.py: the rows
// after "TOTAL TAX REVENUE" up to and including "TOTAL LOCAL NON...TAX",
// with a couple of renames applied after slugifying.
func cityNonTaxDescriptor() registry.Descriptor {
	return registry.Descriptor{
		Name:    "city-nontax",
		Summary: "Monthly City Non-Tax Collections report",
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
			return monthlyOutputName(p, "nontax")
		},
		ColumnLabels: func(p registry.Params) []string {
			month, _ := p.Int("month")
			year, _ := p.Int("year")
			return lastN(monthlyColumnNames(month, year), 7)
		},
		Crop: registry.CropStrategy{GridIndex: -1},
		Trim: cityNonTaxTrim,
	}
}

func cityNonTaxTrim(g table.Grid) (table.Grid, error) {
	out, err := boundedTrim(g, "TOTAL TAX REVENUE", "TOTAL LOCAL NON", []int{10, 11, 17}, 11)
	if err != nil {
		return table.Grid{}, err
	}

	renames := map[string]string{
		"interest_income":          "interest_earnings",
		"sale_of_assets":           "asset_sales",
		"court_related":            "court_related_costs",
		"nonprofit_contribution":   "payments_in_lieu_of_taxes",
		"licenses_and_inspections": "licenses_and_inspection_fees",
	}
	for i, h := range out.Headers {
		if strings.HasPrefix(h, "total_local_non") {
			out.Headers[i] = "total_local_nontax_revenue"
			continue
		}
		if strings.HasPrefix(h, "emergency_medical") {
			out.Headers[i] = "emergency_medical_services"
			continue
		}
		if renamed, ok := renames[h]; ok {
			out.Headers[i] = renamed
		}
	}
	return out, nil
}
