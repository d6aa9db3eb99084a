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
package dept

import (
	"path/filepath"
	"testing"
)

func TestResolveStaticAlias(t *testing.T) {
	table := NewTable(map[string]Canonical{
		"Streets Dept.": {Name: "Streets Department", Abbreviation: "STR", FundCode: "001"},
	})
	c, ok := table.Resolve("streets dept")
	if !ok {
		t.Fatalf("expected alias to resolve")
	}
	if c.Name != "Streets Department" {
		t.Errorf("got %q", c.Name)
	}
}

func TestResolveMiss(t *testing.T) {
	table := NewTable(nil)
	_, ok := table.Resolve("Some Unknown Office")
	if ok {
		t.Errorf("expected miss for unregistered alias")
	}
}

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dept-matches.json")

	table := NewTable(nil)
	if err := table.LoadCache(path); err != nil {
		t.Fatalf("unexpected error loading missing cache: %v", err)
	}

	table.Remember("Wtr Rev Bureau", Canonical{Name: "Water Revenue Bureau"})
	if err := table.SaveCache(); err != nil {
		t.Fatalf("unexpected error saving cache: %v", err)
	}

	reloaded := NewTable(nil)
	if err := reloaded.LoadCache(path); err != nil {
		t.Fatalf("unexpected error reloading cache: %v", err)
	}
	c, ok := reloaded.Resolve("Wtr Rev Bureau")
	if !ok {
		t.Fatalf("expected cached alias to resolve after reload")
	}
	if c.Name != "Water Revenue Bureau" {
		t.Errorf("got %q", c.Name)
	}
}
