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
// Package fiscal converts between calendar and City-of-Philadelphia
// fiscal calendars, grounded on
// original_source/.../etl/utils/misc.py's fiscal_from_calendar_year and
// fiscal_year_quarter_from_path.
package fiscal

import (
	"fmt"
	"regexp"
	"strconv"
)

// FromCalendarYear returns the fiscal year for a given calendar month
// (1-12) and calendar year. The city's fiscal year runs July-June, so a
// calendar month before July belongs to the fiscal year matching the
// calendar year; July onward belongs to the following fiscal year.
func FromCalendarYear(month, calendarYear int) int {
	if month < 7 {
		return calendarYear
	}
	return calendarYear + 1
}

// Month returns the fiscal month number (1-12, July = 1) for a given
// calendar month.
func Month(calendarMonth int) int {
	return ((calendarMonth-7)%12+12)%12 + 1
}

var stemPattern = regexp.MustCompile(`^FY(?P<fy>[0-9]{2})[_-]Q(?P<q>[1234])`)

// YearQuarterFromStem extracts the fiscal year and quarter from a
// filename stem of the form "FY24_Q1" or "FY24-Q1".
func YearQuarterFromStem(stem string) (year, quarter int, err error) {
	m := stemPattern.FindStringSubmatch(stem)
	if m == nil {
		return 0, 0, fmt.Errorf("fiscal: %q does not match FY{yy}_Q{n}", stem)
	}
	yy, _ := strconv.Atoi(m[1])
	q, _ := strconv.Atoi(m[2])
	return 2000 + yy, q, nil
}
