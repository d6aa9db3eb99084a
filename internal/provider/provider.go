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
// Package provider implements the two pluggable token sources (C6):
// LocalTokens, reading a vector PDF directly, and RemoteTokens, calling
// an OCR/tables HTTP backend. Both satisfy the same TokenSource
// contract so internal/pipeline never branches on which one is in use.
package provider

import (
	"context"

	"github.com/phlfinance/ledger-etl/internal/table"
	"github.com/phlfinance/ledger-etl/internal/token"
)

// TokenSource returns positioned tokens for one page of a source
// document.
type TokenSource interface {
	// PageCount returns the number of pages in the document at path.
	PageCount(ctx context.Context, path string) (int, error)
	// TokensOfPage returns every positioned token on the given
	// zero-based page index.
	TokensOfPage(ctx context.Context, path string, pageIndex int) ([]token.Token, error)
}

// TableSource is the optional richer contract a remote OCR/tables
// backend can satisfy: it returns already-segmented tables instead of
// raw tokens, for descriptors that select a table by Crop.GridIndex
// (§4.8).
type TableSource interface {
	TablesOfPage(ctx context.Context, path string, pageIndex int) ([]table.Grid, error)
}
