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
package ledgerctx

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/phlfinance/ledger-etl/internal/config"
)

func TestInitializeWithoutDeptAliasFile(t *testing.T) {
	rc, err := Initialize(config.Config{RawRoot: "/tmp/raw", ProcessedRoot: "/tmp/processed"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rc.Config.RawRoot != "/tmp/raw" {
		t.Errorf("expected raw root carried through, got %q", rc.Config.RawRoot)
	}
	if rc.Local == nil || rc.Remote == nil {
		t.Fatal("expected both token sources to be constructed")
	}
	if _, ok := rc.Depts.Resolve("nonexistent department"); ok {
		t.Error("expected no match against an empty alias table")
	}
}

func TestInitializeLoadsDeptAliasFile(t *testing.T) {
	dir := t.TempDir()
	aliasPath := filepath.Join(dir, "depts.json")
	entries := []map[string]any{
		{
			"aliases":      []string{"Dept of Finance", "Finance Dept"},
			"name":         "Office of the Director of Finance",
			"abbreviation": "FIN",
			"fund_code":    "35",
		},
	}
	data, err := json.Marshal(entries)
	if err != nil {
		t.Fatalf("marshaling fixture: %v", err)
	}
	if err := os.WriteFile(aliasPath, data, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	rc, err := Initialize(config.Config{DeptAliasFile: aliasPath})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	canon, ok := rc.Depts.Resolve("Finance Dept")
	if !ok {
		t.Fatal("expected alias to resolve")
	}
	if canon.Abbreviation != "FIN" {
		t.Errorf("expected abbreviation FIN, got %q", canon.Abbreviation)
	}
}
