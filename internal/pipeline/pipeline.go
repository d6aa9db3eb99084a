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

// Package pipeline runs the Extract -> Transform -> Validate -> Load
// state machine (C7) over one registry.Descriptor invocation, grounded
// on original_source/.../etl/core.py's ETLPipeline and
// etl/collections/monthly/core.py's concrete transform/load/validate.
// The state machine itself never imports a concrete report package —
// it only knows the Descriptor interface.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/phlfinance/ledger-etl/internal/clean"
	"github.com/phlfinance/ledger-etl/internal/coerce"
	"github.com/phlfinance/ledger-etl/internal/ledgererr"
	"github.com/phlfinance/ledger-etl/internal/provider"
	"github.com/phlfinance/ledger-etl/internal/registry"
	"github.com/phlfinance/ledger-etl/internal/table"
	"github.com/phlfinance/ledger-etl/internal/validate"
)

// State names one stage of the pipeline's progress, per §4.6.
type State int

const (
	Created State = iota
	Extracted
	Transformed
	Validated
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Created:
		return "Created"
	case Extracted:
		return "Extracted"
	case Transformed:
		return "Transformed"
	case Validated:
		return "Validated"
	case Loaded:
		return "Loaded"
	default:
		return "Failed"
	}
}

// Options toggles the optional steps of an invocation, mirroring the
// `etl` CLI command's `--dry-run`, `--no-validate`, `--extract-only`
// flags.
type Options struct {
	ExtractOnly  bool
	SkipValidate bool
	DryRun       bool
}

// Record is one long-form output row: an entity/variable/period triple
// with its numeric value and provenance, per spec.md §3's Report
// record.
type Record struct {
	RowLabel   string  `csv:"row"`
	Column     string  `csv:"column"`
	Value      float64 `csv:"value"`
	SourceFile string  `csv:"source_file"`
	RunID      string  `csv:"run_id"`
}

// Result is what one invocation produces: the final state reached, the
// reconstructed/cleaned grid, the coerced numeric grid, and — once
// Transformed — the long-format records ready to load.
type Result struct {
	State   State
	Raw     table.Grid
	Coerced coerce.NumericGrid
	Records []Record
	Err     error
}

// Run drives one report invocation through the full state machine.
func Run(ctx context.Context, d registry.Descriptor, params registry.Params, src provider.TokenSource, rawRoot, processedRoot, runID string, opts Options) Result {
	rawPath, err := resolvePath(d, params, rawRoot)
	if err != nil {
		return Result{State: Failed, Err: err}
	}
	if _, statErr := os.Stat(rawPath); statErr != nil {
		return Result{State: Failed, Err: ledgererr.Wrap(ledgererr.FileNotFound, rawPath, statErr)}
	}

	grid, err := extract(ctx, d, src, rawPath)
	if err != nil {
		return Result{State: Failed, Err: err}
	}
	result := Result{State: Extracted, Raw: grid}
	if opts.ExtractOnly {
		return result
	}

	cleaned := clean.Default.Run(grid)

	if d.Trim != nil {
		trimmed, err := d.Trim(cleaned)
		if err != nil {
			return Result{State: Failed, Raw: cleaned, Err: err}
		}
		cleaned = trimmed
	}
	cleaned = relabelRows(cleaned, d.RowLabels)

	if len(d.PreCoerce) > 0 {
		cleaned = d.PreCoerce.Run(cleaned)
	}

	coerced, err := coerce.CoerceGrid(cleaned, coerce.Lenient, d.PercentColumns)
	if err != nil {
		return Result{State: Failed, Raw: cleaned, Err: err}
	}

	columns := columnLabels(d, params)
	records := toRecords(cleaned, coerced, columns, rawPath, runID)

	result = Result{State: Transformed, Raw: cleaned, Coerced: coerced, Records: records}

	if !opts.SkipValidate && d.Validate != nil {
		rows := rowsByLabel(cleaned, coerced)
		plan := d.Validate(rows, columns)
		if err := runValidationPlan(plan, cleaned, rows, columns); err != nil {
			result.State = Failed
			result.Err = err
			return result
		}
		result.State = Validated
	}

	if opts.DryRun {
		return result
	}

	outPath, err := loadPath(d, params, processedRoot)
	if err != nil {
		result.State = Failed
		result.Err = err
		return result
	}
	if err := writeCSV(outPath, records); err != nil {
		result.State = Failed
		result.Err = err
		return result
	}
	result.State = Loaded

	return result
}

func resolvePath(d registry.Descriptor, params registry.Params, root string) (string, error) {
	if d.RawPath == nil {
		return "", ledgererr.New(ledgererr.SchemaError, fmt.Sprintf("descriptor %q has no RawPath resolver", d.Name))
	}
	rel, err := d.RawPath(params)
	if err != nil {
		return "", ledgererr.Wrap(ledgererr.SchemaError, "resolving raw path", err)
	}
	return filepath.Join(root, rel), nil
}

func loadPath(d registry.Descriptor, params registry.Params, root string) (string, error) {
	if d.OutputPath != nil {
		name, err := d.OutputPath(params)
		if err != nil {
			return "", ledgererr.Wrap(ledgererr.SchemaError, "resolving output path", err)
		}
		return filepath.Join(root, d.Name, name), nil
	}

	rel, err := d.RawPath(params)
	if err != nil {
		return "", ledgererr.Wrap(ledgererr.SchemaError, "resolving output path", err)
	}
	name := fmt.Sprintf("%s.csv", filepathStem(rel))
	return filepath.Join(root, d.Name, name), nil
}

func filepathStem(p string) string {
	base := filepath.Base(p)
	ext := filepath.Ext(base)
	return base[:len(base)-len(ext)]
}

func extract(ctx context.Context, d registry.Descriptor, src provider.TokenSource, path string) (table.Grid, error) {
	if d.Crop.GridIndex >= 0 {
		tableSrc, ok := src.(provider.TableSource)
		if !ok {
			return table.Grid{}, ledgererr.New(ledgererr.ProviderError, "descriptor requires a grid-producing token source")
		}
		grids, err := tableSrc.TablesOfPage(ctx, path, 0)
		if err != nil {
			return table.Grid{}, err
		}
		if d.Crop.GridIndex >= len(grids) {
			return table.Grid{}, ledgererr.New(ledgererr.ParseError, fmt.Sprintf("grid index %d out of range (%d tables found)", d.Crop.GridIndex, len(grids)))
		}
		return grids[d.Crop.GridIndex], nil
	}

	toks, err := src.TokensOfPage(ctx, path, 0)
	if err != nil {
		return table.Grid{}, err
	}
	return table.Reconstruct(toks, table.DefaultParams), nil
}

func columnLabels(d registry.Descriptor, params registry.Params) []string {
	if d.ColumnLabels == nil {
		return nil
	}
	return d.ColumnLabels(params)
}

func relabelRows(g table.Grid, labels []string) table.Grid {
	if len(labels) == 0 || len(labels) != len(g.Headers) {
		return g
	}
	out := g
	out.Headers = append([]string(nil), labels...)
	return out
}

func toRecords(g table.Grid, cg coerce.NumericGrid, columns []string, sourceFile, runID string) []Record {
	var records []Record
	for r := range g.Headers {
		for c := range cg.Rows[r] {
			cell := cg.Rows[r][c]
			if cell.IsMissing() {
				continue
			}
			col := fmt.Sprintf("col%d", c)
			if c < len(columns) {
				col = columns[c]
			}
			records = append(records, Record{
				RowLabel:   g.Headers[r],
				Column:     col,
				Value:      cell.Float(),
				SourceFile: sourceFile,
				RunID:      runID,
			})
		}
	}
	return records
}

func rowsByLabel(g table.Grid, cg coerce.NumericGrid) map[string][]float64 {
	out := make(map[string][]float64, len(g.Headers))
	for r, label := range g.Headers {
		vals := make([]float64, len(cg.Rows[r]))
		for c, cell := range cg.Rows[r] {
			vals[c] = cell.Float()
		}
		out[label] = vals
	}
	return out
}

// runValidationPlan resolves a registry.ValidationPlan's row-name
// references against the coerced table's rows and runs the resulting
// floats through internal/validate, keeping that package free of any
// report-specific row-naming knowledge.
func runValidationPlan(plan registry.ValidationPlan, g table.Grid, rows map[string][]float64, columns []string) error {
	spec := validate.Spec{
		ExpectedRows: plan.ExpectedRows,
		ExpectedCols: plan.ExpectedCols,
	}
	for _, decl := range plan.SumToTotals {
		totalRow, ok := rows[decl.TotalRow]
		if !ok {
			return ledgererr.New(ledgererr.SchemaError, fmt.Sprintf("%s: total row %q not found", decl.Name, decl.TotalRow))
		}
		categoryRows := make([][]float64, len(decl.CategoryRows))
		for i, name := range decl.CategoryRows {
			v, ok := rows[name]
			if !ok {
				return ledgererr.New(ledgererr.SchemaError, fmt.Sprintf("%s: category row %q not found", decl.Name, name))
			}
			categoryRows[i] = v
		}

		cols := decl.Columns
		if cols == nil {
			cols = make([]int, len(totalRow))
			for i := range totalRow {
				cols[i] = i
			}
		}

		// Every assertion is checked once per selected period column,
		// matching how city_tax.py's all_taxes check runs across every
		// month column rather than once for the whole table.
		for _, col := range cols {
			if col >= len(totalRow) {
				continue
			}
			var sum float64
			for _, cr := range categoryRows {
				if col < len(cr) {
					sum += cr[col]
				}
			}
			spec.SumToTotals = append(spec.SumToTotals, validate.SumToTotal{
				Name:      fmt.Sprintf("%s[col %d]", decl.Name, col),
				Sum:       sum,
				Total:     totalRow[col],
				Tolerance: decl.Tolerance,
			})
		}
	}

	colIndex := make(map[string]int, len(columns))
	for i, c := range columns {
		colIndex[c] = i
	}

	// ClassSumToTotals checks the column axis: a row's named category
	// columns sum to another named column on that same row, e.g. a
	// department's spending-class columns summing to its total column.
	for _, decl := range plan.ClassSumToTotals {
		totalIdx, ok := colIndex[decl.TotalCol]
		if !ok {
			return ledgererr.New(ledgererr.SchemaError, fmt.Sprintf("%s: total column %q not found", decl.Name, decl.TotalCol))
		}
		catIdx := make([]int, len(decl.CategoryCols))
		for i, name := range decl.CategoryCols {
			idx, ok := colIndex[name]
			if !ok {
				return ledgererr.New(ledgererr.SchemaError, fmt.Sprintf("%s: category column %q not found", decl.Name, name))
			}
			catIdx[i] = idx
		}
		for rowLabel, vals := range rows {
			if totalIdx >= len(vals) {
				continue
			}
			var sum float64
			for _, idx := range catIdx {
				if idx < len(vals) {
					sum += vals[idx]
				}
			}
			spec.SumToTotals = append(spec.SumToTotals, validate.SumToTotal{
				Name:      fmt.Sprintf("%s[%s]", decl.Name, rowLabel),
				Sum:       sum,
				Total:     vals[totalIdx],
				Tolerance: decl.Tolerance,
			})
		}
	}

	return validate.Run(spec, len(g.Headers), g.NumCols())
}

func writeCSV(path string, records []Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return ledgererr.Wrap(ledgererr.ProviderError, "creating output directory", err)
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return ledgererr.Wrap(ledgererr.ProviderError, "creating output file", err)
	}
	if err := gocsv.MarshalFile(&records, f); err != nil {
		f.Close()
		return ledgererr.Wrap(ledgererr.ProviderError, "marshaling CSV", err)
	}
	if err := f.Close(); err != nil {
		return ledgererr.Wrap(ledgererr.ProviderError, "closing output file", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return ledgererr.Wrap(ledgererr.ProviderError, "renaming output file", err)
	}
	return nil
}
