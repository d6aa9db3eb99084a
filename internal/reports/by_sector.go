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

	"github.com/phlfinance/ledger-etl/internal/ledgererr"
	"github.com/phlfinance/ledger-etl/internal/registry"
	"github.com/phlfinance/ledger-etl/internal/table"
)

// bySectorDescriptor builds a Descriptor shared by the "by sector"
// collections family (RTT, sales, wage, BIRT): each prints a fixed,
// ordered list of category rows followed by value columns that vary in
// count by era, a shape common to
// original_source/.../etl/collections/by_sector/*.py. trimCols selects
// which of the raw value columns to keep, in order.
func bySectorDescriptor(name, summary, rawPathFmt string, categories []string, valueColumns []string, trimCols func(numRawCols int) []int) registry.Descriptor {
	return registry.Descriptor{
		Name:    name,
		Summary: summary,
		Params: []registry.Param{
			{Name: "fiscal_year", Required: true},
		},
		RawPath: func(p registry.Params) (string, error) {
			fy, err := p.Int("fiscal_year")
			if err != nil {
				return "", err
			}
			return fmt.Sprintf(rawPathFmt, fy%100), nil
		},
		ColumnLabels: func(p registry.Params) []string {
			return valueColumns
		},
		Crop: registry.CropStrategy{GridIndex: -1},
		Trim: func(g table.Grid) (table.Grid, error) {
			return bySectorTrim(g, categories, len(valueColumns), trimCols)
		},
	}
}

// bySectorTrim keeps the first len(categories) rows (the fixed category
// block always precedes any footnote/summary rows in these reports),
// selects the requested raw columns, and relabels every row with its
// canonical category name.
func bySectorTrim(g table.Grid, categories []string, wantCols int, trimCols func(int) []int) (table.Grid, error) {
	if len(g.Headers) < len(categories) {
		return table.Grid{}, ledgererr.New(ledgererr.SchemaError,
			fmt.Sprintf("by-sector: expected at least %d category rows, got %d", len(categories), len(g.Headers)))
	}
	rows := make([][]string, len(categories))
	numRawCols := 0
	if len(g.Rows) > 0 {
		numRawCols = len(g.Rows[0])
	}

	var idx []int
	if trimCols != nil {
		idx = trimCols(numRawCols)
	} else {
		idx = make([]int, wantCols)
		for i := range idx {
			idx[i] = i
		}
	}

	for r := 0; r < len(categories); r++ {
		row := make([]string, len(idx))
		for i, c := range idx {
			if c < len(g.Rows[r]) {
				row[i] = g.Rows[r][c]
			}
		}
		rows[r] = row
	}

	return table.Grid{Headers: append([]string(nil), categories...), Rows: rows}, nil
}
