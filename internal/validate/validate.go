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
// Package validate implements the subtotal/consistency validation
// algebra each report declares, grounded on §4.7 and the concrete
// validate() method in
// original_source/.../etl/collections/monthly/city_tax.py. Validation
// never mutates data; the first failing assertion aborts with a
// ValidationError.
package validate

import (
	"fmt"
	"math"

	"github.com/phlfinance/ledger-etl/internal/ledgererr"
)

// SumToTotal asserts that the sum of a set of category values
// approximately equals a declared total, within Tolerance. Category and
// Total are resolved by the caller (typically by summing coerce.Cell
// values for named rows within one period column) and passed in as
// plain floats so this package stays free of any report-specific
// row-naming knowledge.
type SumToTotal struct {
	// Name identifies the assertion in error messages (e.g.
	// "fy24_ytd: current + prior == total").
	Name      string
	Sum       float64
	Total     float64
	Tolerance float64
}

// Check reports whether the assertion holds within tolerance.
func (s SumToTotal) Check() (diff float64, ok bool) {
	diff = s.Sum - s.Total
	return diff, math.Abs(diff) <= s.Tolerance
}

// Spec is a report's full set of validation declarations.
type Spec struct {
	SumToTotals  []SumToTotal
	ExpectedRows int
	ExpectedCols int
}

// Run evaluates row count, column count, and every sum-to-total
// assertion in order, returning on the first failure.
func Run(spec Spec, actualRows, actualCols int) error {
	if spec.ExpectedRows > 0 && actualRows != spec.ExpectedRows {
		return ledgererr.New(ledgererr.SchemaError,
			fmt.Sprintf("expected %d rows, got %d", spec.ExpectedRows, actualRows))
	}
	if spec.ExpectedCols > 0 && actualCols != spec.ExpectedCols {
		return ledgererr.New(ledgererr.SchemaError,
			fmt.Sprintf("expected %d columns, got %d", spec.ExpectedCols, actualCols))
	}

	for _, assertion := range spec.SumToTotals {
		diff, ok := assertion.Check()
		if !ok {
			return ledgererr.New(ledgererr.ValidationError,
				fmt.Sprintf("%s: difference %.4f exceeds tolerance %.4f (sum=%.4f, total=%.4f)",
					assertion.Name, diff, assertion.Tolerance, assertion.Sum, assertion.Total))
		}
	}

	return nil
}
