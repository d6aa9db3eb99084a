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
// Package dept canonicalizes raw department name strings pulled from
// report tables against a static alias table, falling back to a
// JSON side-cache of previously resolved aliases, grounded on
// original_source/.../etl/utils/depts.py's merge_department_info /
// match_missing_departments. The original's interactive textual-TUI
// disambiguation for genuinely unmatched names is out of scope (CLI
// glue, per SPEC_FULL.md's Design Notes); Resolve simply reports a
// miss and lets the caller decide how to surface it.
package dept

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/gosimple/slug"
)

// Canonical is one resolved department identity.
type Canonical struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	FundCode     string `json:"fund_code"`
}

// Table holds the static alias table plus the mutable side-cache of
// previously disambiguated aliases.
type Table struct {
	byAlias   map[string]Canonical
	cache     map[string]Canonical
	cachePath string
}

// NewTable builds a Table from a static alias set. aliases maps a raw
// name or alias (matched case/space/punctuation-insensitively via
// gosimple/slug) to its Canonical department.
func NewTable(aliases map[string]Canonical) *Table {
	t := &Table{
		byAlias: make(map[string]Canonical, len(aliases)),
		cache:   make(map[string]Canonical),
	}
	for alias, canonical := range aliases {
		t.byAlias[slug.Make(alias)] = canonical
	}
	return t
}

// LoadCache reads the JSON side-cache of previously matched department
// aliases from path. A missing file is not an error — it just means
// no aliases have been cached yet.
func (t *Table) LoadCache(path string) error {
	t.cachePath = path
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("dept: reading cache %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &t.cache); err != nil {
		return fmt.Errorf("dept: parsing cache %s: %w", path, err)
	}
	return nil
}

// SaveCache persists the current side-cache to its loaded path.
func (t *Table) SaveCache() error {
	if t.cachePath == "" {
		return nil
	}
	data, err := json.Marshal(t.cache)
	if err != nil {
		return fmt.Errorf("dept: marshaling cache: %w", err)
	}
	if err := os.WriteFile(t.cachePath, data, 0o644); err != nil {
		return fmt.Errorf("dept: writing cache %s: %w", t.cachePath, err)
	}
	return nil
}

// Resolve canonicalizes a raw department name. It checks the static
// alias table first, then the side-cache, looking both up by the slug
// of the trimmed raw name.
func (t *Table) Resolve(rawName string) (Canonical, bool) {
	key := slug.Make(strings.TrimSpace(rawName))
	if c, ok := t.byAlias[key]; ok {
		return c, true
	}
	if c, ok := t.cache[key]; ok {
		return c, true
	}
	return Canonical{}, false
}

// Remember records a manually resolved alias into the side-cache (not
// the static table), to be persisted by a later SaveCache call.
func (t *Table) Remember(rawName string, c Canonical) {
	t.cache[slug.Make(strings.TrimSpace(rawName))] = c
}
