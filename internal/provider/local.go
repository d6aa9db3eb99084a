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
package provider

import (
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/phlfinance/ledger-etl/internal/ledgererr"
	"github.com/phlfinance/ledger-etl/internal/token"
)

// LocalTokens reads a vector PDF directly with github.com/ledongthuc/pdf
// and recovers positioned word boxes from its per-run content stream.
// The teacher's own PDF reader
// (bobmcallan-vire/internal/services/market/filings.go) only calls
// page.GetPlainText, which discards position; this driver goes one
// level deeper through page.Content() to keep the X/Y/width geometry
// the table reconstructor needs.
type LocalTokens struct{}

// PageCount opens path and returns its page count.
func (LocalTokens) PageCount(_ context.Context, path string) (n int, err error) {
	defer recoverAsErr(&err)

	f, r, openErr := pdf.Open(path)
	if openErr != nil {
		return 0, ledgererr.Wrap(ledgererr.ProviderError, "opening PDF", openErr)
	}
	defer f.Close()

	return r.NumPage(), nil
}

// TokensOfPage extracts every positioned text run on the given
// zero-based page index. A panic during extraction (corrupt PDF
// streams raise panics in this library, per the teacher's own
// recover-wrapped usage) is converted into a ParseError.
func (LocalTokens) TokensOfPage(_ context.Context, path string, pageIndex int) (toks []token.Token, err error) {
	defer recoverAsErr(&err)

	f, r, openErr := pdf.Open(path)
	if openErr != nil {
		return nil, ledgererr.Wrap(ledgererr.ProviderError, "opening PDF", openErr)
	}
	defer f.Close()

	pageNum := pageIndex + 1
	if pageNum < 1 || pageNum > r.NumPage() {
		return nil, ledgererr.New(ledgererr.ParseError,
			fmt.Sprintf("page %d out of range (document has %d pages)", pageIndex, r.NumPage()))
	}

	page := r.Page(pageNum)
	if page.V.IsNull() {
		return nil, ledgererr.New(ledgererr.ParseError, fmt.Sprintf("page %d is null", pageIndex))
	}

	content := page.Content()
	toks = make([]token.Token, 0, len(content.Text))
	for _, run := range content.Text {
		if run.S == "" {
			continue
		}
		top := run.Y
		bottom := run.Y + run.FontSize
		toks = append(toks, token.New(run.X, run.X+run.W, top, bottom, run.S))
	}

	return toks, nil
}

func recoverAsErr(err *error) {
	if r := recover(); r != nil {
		*err = ledgererr.New(ledgererr.ParseError, fmt.Sprintf("panic during PDF extraction: %v", r))
	}
}
