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
	"strings"

	"github.com/gosimple/slug"

	"github.com/phlfinance/ledger-etl/internal/ledgererr"
	"github.com/phlfinance/ledger-etl/internal/table"
)

// slugifyRowName turns a raw printed row label into a snake_case
// identifier, grounded on the chained str.lower/str.replace calls
// CityNonTaxCollections.transform applies to its first column: lower
// case, "&" becomes "and", runs of whitespace (and the slug library's
// own separator normalization) become underscores.
func slugifyRowName(raw string) string {
	s := strings.ReplaceAll(raw, "&", " and ")
	slugged := slug.Make(s)
	return strings.ReplaceAll(slugged, "-", "_")
}

// boundedTrim isolates the rows after the start marker row up to and
// including the stop marker row, the shared shape of
// CityNonTaxCollections.transform's start/stop windowing. When the
// window holds exactly extraFirstRowAt rows, its spurious leading row is
// dropped as well (the original's "extra first row" case).
func boundedTrim(g table.Grid, startPhrase, stopPhrase string, validCounts []int, extraFirstRowAt int) (table.Grid, error) {
	return boundedTrimExclusivity(g, startPhrase, stopPhrase, validCounts, extraFirstRowAt, false)
}

// boundedTrimExclusivity is boundedTrim with control over whether the
// start marker row itself is included in the window (inclusiveStart),
// matching CityOtherGovtsCollections.transform's df.loc[start:stop]
// (inclusive) versus CityNonTaxCollections.transform's
// df.loc[start:stop].iloc[1:] (exclusive).
func boundedTrimExclusivity(g table.Grid, startPhrase, stopPhrase string, validCounts []int, extraFirstRowAt int, inclusiveStart bool) (table.Grid, error) {
	start, stop := -1, -1
	for i, h := range g.Headers {
		if start == -1 && strings.Contains(h, startPhrase) {
			start = i
			continue
		}
		if start != -1 && strings.Contains(h, stopPhrase) {
			stop = i
			break
		}
	}
	if start == -1 || stop == -1 {
		return table.Grid{}, ledgererr.New(ledgererr.ParseError, "reports: start/stop marker rows not both found")
	}

	from := start + 1
	if inclusiveStart {
		from = start
	}
	headers := append([]string(nil), g.Headers[from:stop+1]...)
	rows := append([][]string(nil), g.Rows[from:stop+1]...)

	if len(headers) == extraFirstRowAt {
		headers = headers[1:]
		rows = rows[1:]
	}

	ok := false
	for _, n := range validCounts {
		if len(headers) == n {
			ok = true
			break
		}
	}
	if !ok {
		return table.Grid{}, ledgererr.New(ledgererr.SchemaError, "reports: unexpected row count after bounded trim")
	}

	numCols := 0
	if len(rows) > 0 {
		numCols = len(rows[0])
	}
	keepFrom := 0
	if numCols > 7 {
		keepFrom = numCols - 7
	}
	for r := range rows {
		rows[r] = rows[r][keepFrom:]
	}

	for i, h := range headers {
		headers[i] = slugifyRowName(h)
	}

	return table.Grid{Headers: headers, Rows: rows}, nil
}
