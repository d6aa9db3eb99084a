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
// Package ledgererr defines the typed error kinds shared across the
// ingestion pipeline, wrapped with errors.Is-compatible sentinels in the
// style of the corpus's own error handling
// (library/subscription.go's errors.Is(err, pgx.ErrTxClosed)).
package ledgererr

import "errors"

// Sentinel kinds. Wrap one of these with fmt.Errorf("...: %w", Kind)
// or use New/Wrap below; callers check the kind with errors.Is.
var (
	// FileNotFound means the raw source file for a report's resolved
	// path does not exist.
	FileNotFound = errors.New("file not found")
	// ParseError means the PDF token stream could not be reconstructed
	// into a table matching the descriptor's expectations.
	ParseError = errors.New("parse error")
	// CoercionError means a cell could not be coerced to a number under
	// strict mode.
	CoercionError = errors.New("coercion error")
	// SchemaError means the reconstructed table's shape (row or column
	// count) doesn't match the descriptor's declared schema.
	SchemaError = errors.New("schema error")
	// ValidationError means a validation assertion (e.g. sum-to-total)
	// failed outside its declared tolerance.
	ValidationError = errors.New("validation error")
	// ProviderError means the token provider (local or remote) failed
	// independent of the content of the document itself.
	ProviderError = errors.New("provider error")
)

// Error wraps a sentinel Kind with a descriptive message and an
// optional underlying cause, supporting both errors.Is(err, Kind) and
// errors.Unwrap to the cause.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Kind.Error() + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Kind.Error() + ": " + e.Message
}

// Unwrap exposes both the sentinel Kind and the underlying Cause, so
// errors.Is(err, ledgererr.ParseError) and errors.Is(err, causeErr) both
// work through the standard multi-error Unwrap convention.
func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// Wrap builds an *Error of the given kind with a message and cause.
func Wrap(kind error, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// New builds an *Error of the given kind with a message and no cause.
func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}
