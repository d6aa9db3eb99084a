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
// Package ledgerctx builds the one RunContext a process needs from a
// loaded Config, replacing the teacher's package-level
// log.Logger/viper globals (penny-vault-pv-data/cmd/root.go) with an
// explicit value threaded through the CLI layer. internal/registry's
// descriptor map remains the sole process-wide global, matching
// SPEC_FULL.md's Design Note carve-out for it.
package ledgerctx

import (
	"encoding/json"
	"os"

	"github.com/rs/zerolog"

	"github.com/phlfinance/ledger-etl/internal/config"
	"github.com/phlfinance/ledger-etl/internal/dept"
	"github.com/phlfinance/ledger-etl/internal/provider"
	"github.com/phlfinance/ledger-etl/internal/reports"
)

// RunContext holds everything one report invocation needs beyond its
// own parameters: data roots, a logger, and the token sources the
// pipeline extracts from.
type RunContext struct {
	Config Config

	Logger zerolog.Logger

	Local  provider.TokenSource
	Remote provider.TokenSource

	Depts *dept.Table
}

// Config is the subset of the loaded configuration RunContext consults
// directly; kept distinct from internal/config.Config so callers don't
// need that package's mapstructure tags in scope.
type Config struct {
	RawRoot       string
	ProcessedRoot string
	InterimRoot   string
	BatchSchedule string
}

// Initialize wires a Config into a RunContext: a console logger (the
// teacher's own zerolog.ConsoleWriter setup), a local vector-PDF token
// source, a rate-limited remote token source, and the department alias
// table loaded from cfg.DeptAliasFile if set. It also registers the
// department table with internal/reports so QCMR descriptors resolve
// against it instead of the empty default.
func Initialize(cfg config.Config) (*RunContext, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	depts, err := loadDeptTable(cfg)
	if err != nil {
		return nil, err
	}
	reports.SetDepartmentTable(depts)

	remote := provider.NewRemoteTokens(provider.RemoteConfig{
		BaseURL:           cfg.OCRBaseURL,
		AccessKey:         cfg.AWSAccessKey,
		SecretKey:         cfg.AWSSecretKey,
		Region:            cfg.AWSRegion,
		CacheDir:          cfg.OCRCacheDir,
		RequestsPerSecond: cfg.OCRRequestsPerSec,
		MaxPollAttempts:   cfg.OCRMaxPollAttempts,
		PollInterval:      cfg.OCRPollInterval,
	})

	return &RunContext{
		Config: Config{
			RawRoot:       cfg.RawRoot,
			ProcessedRoot: cfg.ProcessedRoot,
			InterimRoot:   cfg.InterimRoot,
			BatchSchedule: cfg.BatchSchedule,
		},
		Logger: logger,
		Local:  provider.LocalTokens{},
		Remote: remote,
		Depts:  depts,
	}, nil
}

// loadDeptTable reads the canonical department alias list from
// cfg.DeptAliasFile (a JSON array of dept.Canonical entries keyed by
// every alias they're known by) and primes the on-disk disambiguation
// cache from cfg.DeptCacheFile. A missing alias file yields an empty,
// functional table rather than an error — QCMR descriptors fall back
// to raw department labels when nothing resolves.
func loadDeptTable(cfg config.Config) (*dept.Table, error) {
	aliases := map[string]dept.Canonical{}
	if cfg.DeptAliasFile != "" {
		data, err := os.ReadFile(cfg.DeptAliasFile)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
		} else {
			var entries []struct {
				Aliases []string `json:"aliases"`
				dept.Canonical
			}
			if err := json.Unmarshal(data, &entries); err != nil {
				return nil, err
			}
			for _, e := range entries {
				for _, a := range e.Aliases {
					aliases[a] = e.Canonical
				}
			}
		}
	}

	table := dept.NewTable(aliases)
	if cfg.DeptCacheFile != "" {
		if err := table.LoadCache(cfg.DeptCacheFile); err != nil && !os.IsNotExist(err) {
			return nil, err
		}
	}
	return table, nil
}
