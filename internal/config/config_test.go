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
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RawRoot != "data/raw" {
		t.Errorf("expected default raw_root, got %q", cfg.RawRoot)
	}
	if cfg.OCRMaxPollAttempts != 30 {
		t.Errorf("expected default max poll attempts 30, got %d", cfg.OCRMaxPollAttempts)
	}
}

func TestLoadFromExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	contents := "raw_root = \"/mnt/raw\"\nocr_base_url = \"https://ocr.example.com\"\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RawRoot != "/mnt/raw" {
		t.Errorf("expected raw_root from file, got %q", cfg.RawRoot)
	}
	if cfg.OCRBaseURL != "https://ocr.example.com" {
		t.Errorf("expected ocr_base_url from file, got %q", cfg.OCRBaseURL)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("LEDGER_ETL_RAW_ROOT", "/env/raw")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RawRoot != "/env/raw" {
		t.Errorf("expected env override, got %q", cfg.RawRoot)
	}
}
