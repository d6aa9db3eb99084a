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
	registry.Register(budgetSummaryDescriptor("budget-summary-budgeted", "budget", 1))
	registry.Register(budgetSummaryDescriptor("budget-summary-actual", "actual", 0))
}

// budgetClassColumns are the annual budget-in-brief's department major
// spending classes, grounded on CLASS_COLUMNS in
// original_source/.../etl/spending/summary.py.
var budgetClassColumns = []string{
	"class_100", "class_200", "class_300_400",
	"class_500", "class_700", "class_800", "class_900",
}

// budgetMajorClassNames maps a printed major-class label to its
// canonical class column, ported from MAJOR_CLASS_NAMES in
// original_source/.../etl/spending/summary.py.
var budgetMajorClassNames = map[string]string{
	"Total":                               "total",
	"Purchase of Services":                "class_200",
	"Personal Services":                   "class_100",
	"Materials, Supplies & Equip.":        "class_300_400",
	"Contrib., Indemnities & Taxes":       "class_500",
	"Contrib. indemnities & Taxes":        "class_500",
	"Payments to Other Funds":             "class_800",
	"Advances and Other Misc. Payments":   "class_900",
	"Advances & Miscellaneous Payments":   "class_900",
	"Pers. Svcs.-Emp.Benefits":            "class_100",
	"Pers. Svcs.-Emp.Benefit":             "class_100",
	"Debt Service":                        "class_700",
}

// budgetSummaryDescriptor describes one flavor (budgeted or actual) of
// the Annual Budget-in-Brief department spending summary, grounded on
// BudgetSummaryBase and its BudgetedDepartmentSpending/
// ActualDepartmentSpending subclasses in
// original_source/.../etl/spending/summary.py. valueCol selects which
// of the two raw value columns (FY-2 Actual at 0, FY Budgeted at 1) a
// flavor pivots on.
func budgetSummaryDescriptor(name, flavor string, valueCol int) registry.Descriptor {
	columns := append(append([]string(nil), budgetClassColumns...), "total")
	return registry.Descriptor{
		Name:    name,
		Summary: fmt.Sprintf("Annual budget-in-brief department spending by major class (%s)", flavor),
		Params: []registry.Param{
			{Name: "fiscal_year", Required: true},
			{Name: "kind", Required: true},
		},
		RawPath: func(p registry.Params) (string, error) {
			fy, err := p.Int("fiscal_year")
			if err != nil {
				return "", err
			}
			kind := p.String("kind")
			if kind != "adopted" && kind != "proposed" {
				return "", ledgererr.New(ledgererr.SchemaError, fmt.Sprintf("%s: kind must be adopted or proposed, got %q", name, kind))
			}
			return fmt.Sprintf("budget-in-brief/%s/FY%02d.pdf", kind, fy%100), nil
		},
		// Adopted and proposed raw files share the FYyy stem, so the
		// output keeps the kind as a directory to keep them apart.
		OutputPath: func(p registry.Params) (string, error) {
			fy, err := p.Int("fiscal_year")
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%s/FY%02d.csv", p.String("kind"), fy%100), nil
		},
		ColumnLabels: func(p registry.Params) []string {
			return columns
		},
		Crop: registry.CropStrategy{GridIndex: -1},
		Trim: func(g table.Grid) (table.Grid, error) {
			return budgetSummaryTrim(g, valueCol)
		},
		Validate: budgetSummaryValidate,
	}
}

// budgetSummaryTrim pivots the raw (dept, major_class) row blocks the
// reconstructed grid prints into one output row per department, with
// one value column per spending class plus a total column. A blank-
// valued row starts a new department block (its own label is the
// department name); a row whose label is "Total" ends the block and
// contributes that department's total. Grounded on the starts/stops
// grouping and pivot_table call in BudgetSummaryBase.extract/transform.
func budgetSummaryTrim(g table.Grid, valueCol int) (table.Grid, error) {
	var deptNames []string
	var deptRows [][]string

	var curDept string
	classes := make(map[string]float64)
	haveBlock := false

	flush := func() {
		if !haveBlock {
			return
		}
		row := make([]string, len(budgetClassColumns)+1)
		var total float64
		for i, c := range budgetClassColumns {
			v := classes[c]
			row[i] = fmt.Sprintf("%v", v)
			total += v
		}
		if t, ok := classes["total"]; ok && t != 0 {
			total = t
		}
		row[len(row)-1] = fmt.Sprintf("%v", total)
		deptNames = append(deptNames, curDept)
		deptRows = append(deptRows, row)
		classes = make(map[string]float64)
		haveBlock = false
	}

	for i, label := range g.Headers {
		row := g.Rows[i]
		blank := true
		for _, v := range row {
			if strings.TrimSpace(v) != "" {
				blank = false
				break
			}
		}
		trimmed := strings.TrimSpace(label)

		if blank {
			flush()
			curDept = stripFootnoteMarker(trimmed)
			haveBlock = true
			continue
		}

		class, ok := budgetMajorClassNames[trimmed]
		if !ok {
			class = trimmed
		}
		if valueCol < len(row) {
			if f, err := parseBudgetFloat(row[valueCol]); err == nil {
				classes[class] += f
			}
		}
		if trimmed == "Total" {
			flush()
		}
	}
	flush()

	if len(deptNames) == 0 {
		return table.Grid{}, ledgererr.New(ledgererr.ParseError, "budget-summary: no department blocks found")
	}

	return table.Grid{Headers: deptNames, Rows: deptRows}, nil
}

// stripFootnoteMarker removes a trailing "(n)" footnote marker from a
// department name, grounded on the str.replace("\(\d\)", "") call in
// BudgetSummaryBase.extract.
func stripFootnoteMarker(s string) string {
	if i := strings.LastIndex(s, "("); i != -1 && strings.HasSuffix(s, ")") {
		inner := s[i+1 : len(s)-1]
		if len(inner) == 1 && inner[0] >= '0' && inner[0] <= '9' {
			return strings.TrimSpace(s[:i])
		}
	}
	return s
}

func parseBudgetFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "$", "")
	if s == "" || s == "-" {
		return 0, nil
	}
	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	var f float64
	if _, err := fmt.Sscanf(s, "%g", &f); err != nil {
		return 0, err
	}
	if neg {
		f = -f
	}
	return f, nil
}

// budgetSummaryValidate asserts each department's class columns sum to
// its total column, grounded on the depts[CLASS_COLUMNS].sum(axis=1) ==
// depts["total"] check in BudgetSummaryBase.validate.
func budgetSummaryValidate(rows map[string][]float64, columns []string) registry.ValidationPlan {
	return registry.ValidationPlan{
		ClassSumToTotals: []registry.ClassSumToTotalDecl{
			{
				Name:         "budget_class_totals",
				CategoryCols: budgetClassColumns,
				TotalCol:     "total",
				Tolerance:    5,
			},
		},
	}
}
