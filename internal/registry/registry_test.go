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
package registry

import "testing"

func TestRegisterAndLookup(t *testing.T) {
	defer resetForTest()
	Register(Descriptor{Name: "test-report-registry-lookup", Summary: "unit test fixture"})

	d, ok := Lookup("test-report-registry-lookup")
	if !ok {
		t.Fatalf("expected descriptor to be found")
	}
	if d.Summary != "unit test fixture" {
		t.Errorf("got %q", d.Summary)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer resetForTest()
	Register(Descriptor{Name: "test-report-registry-dup"})

	defer func() {
		if recover() == nil {
			t.Errorf("expected panic on duplicate registration")
		}
	}()
	Register(Descriptor{Name: "test-report-registry-dup"})
}

func TestAllSortedByName(t *testing.T) {
	defer resetForTest()
	Register(Descriptor{Name: "zzz-report"})
	Register(Descriptor{Name: "aaa-report"})

	all := All()
	if len(all) != 2 || all[0].Name != "aaa-report" || all[1].Name != "zzz-report" {
		t.Fatalf("unexpected order: %+v", all)
	}
}

func TestParseStemQuarterly(t *testing.T) {
	kind, p, err := ParseStem("FY24_Q1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kind != StemQuarterly || p["fiscal_year"] != "2024" || p["quarter"] != "1" {
		t.Errorf("got kind=%v params=%v", kind, p)
	}
}

func TestParseStemAnnual(t *testing.T) {
	kind, p, err := ParseStem("FY24")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kind != StemAnnual || p["fiscal_year"] != "2024" {
		t.Errorf("got kind=%v params=%v", kind, p)
	}
}

func TestParseStemMonthly(t *testing.T) {
	kind, p, err := ParseStem("2024_03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kind != StemMonthly || p["year"] != "2024" || p["month"] != "03" {
		t.Errorf("got kind=%v params=%v", kind, p)
	}
}

func TestParseStemUnknown(t *testing.T) {
	_, _, err := ParseStem("not-a-stem")
	if err == nil {
		t.Fatalf("expected error for unrecognized stem")
	}
}

func resetForTest() {
	mu.Lock()
	defer mu.Unlock()
	descriptors = map[string]Descriptor{}
}
