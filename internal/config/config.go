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
// Package config loads ledger-etl's process configuration from a TOML
// file and environment, grounded on initConfig in
// penny-vault-pv-data/cmd/root.go: the same ".pvdata.toml"-in-$HOME
// convention (renamed ".ledger-etl.toml"), overridden by
// viper.AutomaticEnv.
package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config is the full set of process-wide settings a RunContext needs
// to construct its dependencies: data roots, the remote OCR/tables
// backend, and the batch scheduler.
type Config struct {
	RawRoot       string `mapstructure:"raw_root"`
	ProcessedRoot string `mapstructure:"processed_root"`
	InterimRoot   string `mapstructure:"interim_root"`

	OCRBaseURL         string        `mapstructure:"ocr_base_url"`
	AWSAccessKey       string        `mapstructure:"aws_access_key"`
	AWSSecretKey       string        `mapstructure:"aws_secret_key"`
	AWSRegion          string        `mapstructure:"aws_region"`
	OCRCacheDir        string        `mapstructure:"ocr_cache_dir"`
	OCRRequestsPerSec  float64       `mapstructure:"ocr_requests_per_second"`
	OCRMaxPollAttempts int           `mapstructure:"ocr_max_poll_attempts"`
	OCRPollInterval    time.Duration `mapstructure:"ocr_poll_interval"`

	DeptAliasFile string `mapstructure:"dept_alias_file"`
	DeptCacheFile string `mapstructure:"dept_cache_file"`

	BatchSchedule string `mapstructure:"batch_schedule"`
}

// defaults mirrors NewRemoteTokens' own zero-value fallbacks so a
// freshly generated config file and an empty one behave the same way.
func defaults() Config {
	return Config{
		RawRoot:            "data/raw",
		ProcessedRoot:      "data/processed",
		InterimRoot:        "data/interim",
		OCRRequestsPerSec:  2,
		OCRMaxPollAttempts: 30,
		OCRPollInterval:    2 * time.Second,
		BatchSchedule:      "0 6 * * *",
	}
}

// Load reads configuration from cfgFile if non-empty, else from
// "$HOME/.ledger-etl.toml", then applies LEDGER_ETL_-prefixed
// environment variable overrides via viper.AutomaticEnv, matching the
// teacher's own config/env precedence.
func Load(cfgFile string) (Config, error) {
	v := viper.New()
	for key, val := range structToMap(defaults()) {
		v.SetDefault(key, val)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, err
		}
		v.AddConfigPath(home)
		v.SetConfigType("toml")
		v.SetConfigName(".ledger-etl")
	}

	v.SetEnvPrefix("LEDGER_ETL")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// structToMap flattens defaults() into viper's dotted-key default
// form, keyed by the same mapstructure tags Unmarshal reads back.
func structToMap(d Config) map[string]any {
	return map[string]any{
		"raw_root":                d.RawRoot,
		"processed_root":          d.ProcessedRoot,
		"interim_root":            d.InterimRoot,
		"ocr_requests_per_second": d.OCRRequestsPerSec,
		"ocr_max_poll_attempts":   d.OCRMaxPollAttempts,
		"ocr_poll_interval":       d.OCRPollInterval,
		"batch_schedule":          d.BatchSchedule,
	}
}
