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
// Package registry holds the process-wide, read-only map of report
// Descriptors. Report packages call Register from an init() function;
// internal/pipeline and the CLI only ever call Lookup/All — never the
// reverse — resolving the cyclic-import concern the original's
// __init_subclass__-based REGISTRY sidesteps via metaclass magic
// (original_source/.../etl/core.py).
package registry

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"sync"

	"github.com/phlfinance/ledger-etl/internal/clean"
	"github.com/phlfinance/ledger-etl/internal/table"
)

// Params is the parsed set of CLI-supplied parameter values for one
// report invocation, keyed by parameter name.
type Params map[string]string

// Int parses a named parameter as an integer.
func (p Params) Int(name string) (int, error) {
	v, ok := p[name]
	if !ok {
		return 0, fmt.Errorf("registry: missing required parameter %q", name)
	}
	return strconv.Atoi(v)
}

// String returns a named parameter's raw value.
func (p Params) String(name string) string { return p[name] }

// Param declares one input parameter a Descriptor accepts.
type Param struct {
	Name     string
	Required bool
}

// Descriptor is a report family's declarative pipeline specialization:
// data, not a subclass, per the Design Note resolution.
type Descriptor struct {
	// Name is the registry key and CLI subcommand argument, e.g.
	// "city-tax".
	Name string
	// Summary is a one-line human description, shown by `report-types`.
	Summary string
	// Params lists the accepted input parameters.
	Params []Param
	// RawPath resolves the source file path relative to the raw data
	// root, given the invocation's parameters.
	RawPath func(p Params) (string, error)
	// OutputPath names the CSV file a run writes, relative to the
	// descriptor's own directory under the processed data root (the
	// caller still joins processedRoot/Name/<OutputPath result>).
	// Grounded on each report family's own load() method, e.g.
	// CityTaxCollections.load's f"{self.year}-{self.month:02d}-tax.csv":
	// the filename carries the period plus a report-specific variant
	// suffix, not a copy of the raw input file's stem (two reports
	// sharing one raw source file, such as city-tax and city-nontax both
	// reading "city/YYYY-MM-city.pdf", would otherwise produce
	// identically-stemmed output names). A nil OutputPath falls back to
	// the raw path's stem plus ".csv".
	OutputPath func(p Params) (string, error)
	// ColumnLabels builds the output column names for the value columns,
	// given the invocation's parameters (e.g. fiscal-year-aware labels
	// for monthly collections).
	ColumnLabels func(p Params) []string
	// RowLabels lists canonical row names that replace the grid's row
	// headers one-for-one after cleaning and Trim, when the counts match
	// (a count mismatch leaves the headers unchanged). Any "_current"/
	// "_prior"/"_total" suffix is written into the names themselves.
	RowLabels []string
	// PercentColumns names zero-based data columns (post-crop) that
	// are percentages, not currency or counts.
	PercentColumns map[int]bool
	// Crop selects how the descriptor's table is located on the page.
	Crop CropStrategy
	// Trim applies report-specific row/column selection to the cleaned
	// grid before row labels are applied: stopping at a named total row,
	// dropping interleaved rows such as "DATA WAREHOUSE", and selecting
	// which raw columns become the output's value columns. Grounded on
	// CityTaxCollections.transform's stop-row/column-slice logic. A nil
	// Trim leaves the cleaned grid untouched.
	Trim func(g table.Grid) (table.Grid, error)
	// PreCoerce runs report-specific, cell-string-level cleaning passes
	// after Trim/row-relabeling and before numeric coercion, for reports
	// whose source tables need more than the default clean.Default
	// pipeline (e.g. the QCMR family's comma/decimal OCR-artifact
	// fixes). A nil PreCoerce runs no additional passes.
	PreCoerce clean.Pipeline
	// Validate builds this descriptor's validation declarations from a
	// coerced, row-labeled table. Returns the expected row/column counts
	// and sum-to-total assertions; the caller (internal/pipeline) runs
	// them through internal/validate.
	Validate func(rows map[string][]float64, columns []string) ValidationPlan
}

// CropStrategy selects how a descriptor locates its table's tokens
// within a page, per §4.8's "geometric or grid-based" crop.
type CropStrategy struct {
	// GridIndex selects the k-th table returned by a remote OCR/tables
	// provider instead of reconstructing from raw tokens; -1 means
	// reconstruct geometrically from the page's positioned tokens.
	GridIndex int
}

// ValidationPlan is what a Descriptor's Validate hook returns: the
// schema expectations plus named sum-to-total assertions, expressed as
// plain row-name references the pipeline resolves against the coerced,
// row-labeled output (internal/validate stays free of row-naming
// knowledge; this is the adapter layer between the two).
type ValidationPlan struct {
	ExpectedRows     int
	ExpectedCols     int
	SumToTotals      []SumToTotalDecl
	ClassSumToTotals []ClassSumToTotalDecl
}

// ClassSumToTotalDecl names a within-row assertion: the sum of a set of
// named value columns on every row equals another named column on that
// same row, e.g. a department's spending-class columns summing to its
// own total column. This is the column-axis counterpart of
// SumToTotalDecl, which sums across named rows within one column;
// budget-summary's department-by-class pivot needs the column axis
// instead, grounded on the
// depts[CLASS_COLUMNS].sum(axis=1) == depts["total"] check in
// original_source/.../etl/spending/summary.py.
type ClassSumToTotalDecl struct {
	Name         string
	CategoryCols []string
	TotalCol     string
	Tolerance    float64
}

// SumToTotalDecl names a sum-to-total assertion in terms of row labels
// rather than resolved floats; internal/pipeline resolves the floats
// from the coerced table before calling internal/validate.
type SumToTotalDecl struct {
	Name         string
	CategoryRows []string
	TotalRow     string
	Tolerance    float64
	// Columns restricts the assertion to specific zero-based value-column
	// indices; nil means check every column. Descriptors with a percent
	// column (whose values don't sum meaningfully across categories) use
	// this to exclude it.
	Columns []int
}

var (
	mu          sync.RWMutex
	descriptors = map[string]Descriptor{}
)

// Register adds a Descriptor to the process-wide registry. Intended to
// be called from a report package's init(); panics on a duplicate name
// since that indicates a programming error, not a runtime condition.
func Register(d Descriptor) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := descriptors[d.Name]; exists {
		panic(fmt.Sprintf("registry: duplicate report name %q", d.Name))
	}
	descriptors[d.Name] = d
}

// Lookup returns the Descriptor registered under name.
func Lookup(name string) (Descriptor, bool) {
	mu.RLock()
	defer mu.RUnlock()
	d, ok := descriptors[name]
	return d, ok
}

// All returns every registered Descriptor, sorted by name.
func All() []Descriptor {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Descriptor, 0, len(descriptors))
	for _, d := range descriptors {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

var (
	quarterlyStem = regexp.MustCompile(`^FY(?P<fy>[0-9]{2})[_-]Q(?P<q>[1234])$`)
	annualStem    = regexp.MustCompile(`^FY(?P<fy>[0-9]{2})$`)
	monthlyStem   = regexp.MustCompile(`^(?P<year>[0-9]{4})_(?P<month>[0-9]{2})$`)
)

// StemKind identifies which of the three raw-file naming conventions
// (§6) a file stem matches.
type StemKind int

const (
	StemUnknown StemKind = iota
	StemQuarterly
	StemAnnual
	StemMonthly
)

// ParseStem classifies a file stem and extracts its parameters.
func ParseStem(stem string) (StemKind, Params, error) {
	if m := quarterlyStem.FindStringSubmatch(stem); m != nil {
		return StemQuarterly, Params{"fiscal_year": "20" + m[1], "quarter": m[2]}, nil
	}
	if m := annualStem.FindStringSubmatch(stem); m != nil {
		return StemAnnual, Params{"fiscal_year": "20" + m[1]}, nil
	}
	if m := monthlyStem.FindStringSubmatch(stem); m != nil {
		return StemMonthly, Params{"year": m[1], "month": m[2]}, nil
	}
	return StemUnknown, nil, fmt.Errorf("registry: %q matches no known naming convention", stem)
}
