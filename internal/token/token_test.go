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
package token

import "testing"

func TestNewNormalizesWhitespace(t *testing.T) {
	tok := New(0, 10, 100, 112, "  Wage  ")
	if tok.Text != "Wage" {
		t.Fatalf("expected trimmed text %q, got %q", "Wage", tok.Text)
	}
}

func TestValid(t *testing.T) {
	cases := []struct {
		name string
		tok  Token
		want bool
	}{
		{"ok", Token{X0: 0, X1: 10, Top: 1, Bottom: 2, Text: "a"}, true},
		{"empty text", Token{X0: 0, X1: 10, Top: 1, Bottom: 2, Text: ""}, false},
		{"inverted x", Token{X0: 10, X1: 0, Top: 1, Bottom: 2, Text: "a"}, false},
		{"inverted y", Token{X0: 0, X1: 10, Top: 2, Bottom: 1, Text: "a"}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.tok.Valid(); got != c.want {
				t.Errorf("Valid() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestMergeRight(t *testing.T) {
	left := New(0, 40, 100, 112, "Wage")
	right := New(44, 80, 101, 113, "Tax")
	merged := left.MergeRight(right)

	if merged.Text != "Wage Tax" {
		t.Errorf("Text = %q, want %q", merged.Text, "Wage Tax")
	}
	if merged.X1 != right.X1 {
		t.Errorf("X1 = %v, want %v", merged.X1, right.X1)
	}
	if merged.X0 != left.X0 {
		t.Errorf("X0 = %v, want %v", merged.X0, left.X0)
	}
}

func TestAccessors(t *testing.T) {
	tok := New(1, 5, 10, 14, "x")
	if tok.X() != 1 || tok.Y() != 10 {
		t.Fatalf("accessor mismatch: %+v", tok)
	}
	if tok.Width() != 4 || tok.Height() != 4 {
		t.Fatalf("dimension mismatch: %+v", tok)
	}
}
