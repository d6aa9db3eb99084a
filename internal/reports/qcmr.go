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

	"github.com/phlfinance/ledger-etl/internal/clean"
	"github.com/phlfinance/ledger-etl/internal/dept"
	"github.com/phlfinance/ledger-etl/internal/ledgererr"
	"github.com/phlfinance/ledger-etl/internal/registry"
	"github.com/phlfinance/ledger-etl/internal/table"
)

func init() {
	registry.Register(qcmrDepartmentDescriptor(
		"qcmr-obligations",
		"QCMR departmental obligations by class",
		"qcmr/obligations/FY%02d_Q%d.pdf",
		[]string{"total"},
		clean.Pipeline{clean.DecimalToComma, clean.ReplaceCommas},
	))
	registry.Register(qcmrDepartmentDescriptor(
		"qcmr-positions",
		"QCMR full-time position counts by department",
		"qcmr/positions/FY%02d_Q%d.pdf",
		[]string{"civilian", "uniformed", "total"},
		clean.Pipeline{clean.DecimalToComma, clean.FixZeros},
	))
	registry.Register(qcmrDepartmentDescriptor(
		"qcmr-personal-services",
		"QCMR personal-services spending by department",
		"qcmr/personal_services/FY%02d_Q%d.pdf",
		[]string{"total"},
		clean.Pipeline{clean.DecimalToComma, clean.FixZeros},
	))
	registry.Register(qcmrCashDescriptor())
}

// qcmrDepartmentDescriptor shares the row shape common to the
// Departmental Obligations, Full-Time Positions, and Personal Services
// QCMR reports: one row per department, with its raw label canonicalized
// against internal/dept before becoming the row's identity, grounded on
// add_department_info/merge_department_info in
// original_source/.../etl/utils/depts.py. precoerce names the
// report-specific numeric-cleaning passes its own core.py pipes in
// front of convert_to_floats.
func qcmrDepartmentDescriptor(name, summary, rawPathFmt string, valueColumns []string, precoerce clean.Pipeline) registry.Descriptor {
	return registry.Descriptor{
		Name:    name,
		Summary: summary,
		Params: []registry.Param{
			{Name: "fiscal_year", Required: true},
			{Name: "quarter", Required: true},
		},
		RawPath: func(p registry.Params) (string, error) {
			fy, err := p.Int("fiscal_year")
			if err != nil {
				return "", err
			}
			q, err := p.Int("quarter")
			if err != nil {
				return "", err
			}
			return fmt.Sprintf(rawPathFmt, fy%100, q), nil
		},
		ColumnLabels: func(p registry.Params) []string {
			return valueColumns
		},
		Crop: registry.CropStrategy{GridIndex: -1},
		Trim: func(g table.Grid) (table.Grid, error) {
			return canonicalizeDepartmentRows(g, len(valueColumns))
		},
		PreCoerce: precoerce,
	}
}

// canonicalizeDepartmentRows resolves every row's raw printed label
// against the shared department table, keeping unresolved departments
// under their raw (space-normalized) name rather than failing the run —
// the original pipeline's interactive disambiguation prompt has no
// interactive equivalent here, so unmatched names simply pass through
// for a later reconciliation pass.
func canonicalizeDepartmentRows(g table.Grid, wantCols int) (table.Grid, error) {
	out := table.Grid{Headers: make([]string, len(g.Headers)), Rows: make([][]string, len(g.Rows))}
	for i, raw := range g.Headers {
		if canon, ok := globalDeptTable.Resolve(raw); ok {
			out.Headers[i] = canon.Abbreviation
		} else {
			out.Headers[i] = raw
		}
		row := g.Rows[i]
		if len(row) > wantCols {
			row = row[len(row)-wantCols:]
		}
		out.Rows[i] = row
	}
	return out, nil
}

// globalDeptTable is the process-wide department alias table consulted
// by every QCMR descriptor; internal/ledgerctx populates it from the
// canonical department list at startup.
var globalDeptTable = dept.NewTable(nil)

// SetDepartmentTable replaces the shared department table used by QCMR
// descriptors. Called once during process startup.
func SetDepartmentTable(t *dept.Table) {
	if t != nil {
		globalDeptTable = t
	}
}

// qcmrCashDescriptor describes the QCMR Cash Flow Forecast, grounded on
// CashFlowForecast and its revenue/spending/fund_balances/net_cash_flow
// subclasses: one row per cash flow line item, one column per month of
// the fiscal year plus a full-year total.
func qcmrCashDescriptor() registry.Descriptor {
	months := []string{
		"jul", "aug", "sep", "oct", "nov", "dec",
		"jan", "feb", "mar", "apr", "may", "jun", "full_year",
	}
	return registry.Descriptor{
		Name:    "qcmr-cash",
		Summary: "QCMR cash flow forecast (revenue, spending, net cash flow, fund balances)",
		Params: []registry.Param{
			{Name: "fiscal_year", Required: true},
			{Name: "quarter", Required: true},
		},
		RawPath: func(p registry.Params) (string, error) {
			fy, err := p.Int("fiscal_year")
			if err != nil {
				return "", err
			}
			q, err := p.Int("quarter")
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("qcmr/cash/FY%02d_Q%d.pdf", fy%100, q), nil
		},
		ColumnLabels: func(p registry.Params) []string {
			return months
		},
		Crop: registry.CropStrategy{GridIndex: -1},
		Trim: func(g table.Grid) (table.Grid, error) {
			if len(g.Rows) == 0 {
				return table.Grid{}, ledgererr.New(ledgererr.ParseError, "qcmr-cash: no rows extracted")
			}
			out := g
			for r := range out.Rows {
				if len(out.Rows[r]) > len(months) {
					out.Rows[r] = out.Rows[r][:len(months)]
				}
			}
			return out, nil
		},
		PreCoerce: clean.Pipeline{clean.ReplaceCommas, clean.FixDecimals},
	}
}
