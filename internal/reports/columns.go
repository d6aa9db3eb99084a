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

// Package reports registers the concrete report Descriptors (C8): data
// describing each report family's crop, row naming, column naming and
// validation, rather than a subclass hierarchy. Every file's init()
// calls registry.Register.
package reports

import (
	"fmt"
	"strings"
	"time"

	"github.com/phlfinance/ledger-etl/internal/fiscal"
	"github.com/phlfinance/ledger-etl/internal/registry"
)

// monthlyColumnNames builds the nine standard monthly-collections
// column labels, grounded on get_column_names in
// original_source/.../etl/collections/monthly/core.py.
func monthlyColumnNames(month, calendarYear int) []string {
	fy := fiscal.FromCalendarYear(month, calendarYear)
	thisYear := fmt.Sprintf("fy%02d", fy%100)
	lastYear := fmt.Sprintf("fy%02d", (fy-1)%100)
	monthName := strings.ToLower(time.Month(month).String()[:3])

	return []string{
		lastYear + "_actual",
		thisYear + "_budgeted",
		monthName + "_" + thisYear,
		monthName + "_" + lastYear,
		thisYear + "_ytd",
		lastYear + "_ytd",
		"net_change",
		"budget_requirement",
		"pct_budgeted",
	}
}

// monthlyOutputName builds a monthly collections report's output
// filename, grounded on the f"{self.year}-{self.month:02d}-{variant}.csv"
// pattern shared by CityTaxCollections.load, CityNonTaxCollections.load,
// CityOtherGovtsCollections.load, and SchoolTaxCollections.load in
// original_source/.../etl/collections/monthly/*.py.
func monthlyOutputName(p registry.Params, variant string) (string, error) {
	month, err := p.Int("month")
	if err != nil {
		return "", err
	}
	year, err := p.Int("year")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d-%02d-%s.csv", year, month, variant), nil
}

// lastN returns the final n elements of s, or the whole slice if it has
// fewer than n elements.
func lastN[T any](s []T, n int) []T {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
