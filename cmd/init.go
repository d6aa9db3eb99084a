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
package cmd

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// initWizardConfig mirrors internal/config.Config's TOML field names so
// the wizard's output is readable straight back in by config.Load.
type initWizardConfig struct {
	RawRoot       string `toml:"raw_root"`
	ProcessedRoot string `toml:"processed_root"`
	InterimRoot   string `toml:"interim_root"`
	OCRBaseURL    string `toml:"ocr_base_url"`
	AWSAccessKey  string `toml:"aws_access_key"`
	AWSSecretKey  string `toml:"aws_secret_key"`
	AWSRegion     string `toml:"aws_region"`
	BatchSchedule string `toml:"batch_schedule"`
}

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Gather data roots and OCR provider settings and write a config file",
	Run: func(cmd *cobra.Command, args []string) {
		wc := initWizardConfig{
			RawRoot:       "data/raw",
			ProcessedRoot: "data/processed",
			InterimRoot:   "data/interim",
			BatchSchedule: "0 6 * * *",
		}

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Raw PDF data root:").
					Value(&wc.RawRoot),
				huh.NewInput().
					Title("Processed CSV output root:").
					Value(&wc.ProcessedRoot),
				huh.NewInput().
					Title("Interim (legacy-format) data root:").
					Value(&wc.InterimRoot),
			),
			huh.NewGroup(
				huh.NewInput().
					Title("Remote OCR/tables provider base URL (leave blank to use only the local PDF reader):").
					Value(&wc.OCRBaseURL),
				huh.NewInput().
					Title("AWS access key (if the OCR provider needs one):").
					Value(&wc.AWSAccessKey),
				huh.NewInput().
					Title("AWS secret key:").
					Value(&wc.AWSSecretKey),
				huh.NewInput().
					Title("AWS region:").
					Value(&wc.AWSRegion),
			),
			huh.NewGroup(
				huh.NewInput().
					Title("Cron schedule for `batch` sweeps:").
					Value(&wc.BatchSchedule),
			),
		)

		if err := form.Run(); err != nil {
			log.Fatal().Err(err).Msg("error gathering configuration")
		}

		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatal().Err(err).Msg("could not determine user home directory")
		}

		configFN := filepath.Join(home, ".ledger-etl.toml")
		log.Info().Str("ConfigFile", configFN).Msg("Saving configuration")

		configData, err := toml.Marshal(wc)
		if err != nil {
			log.Fatal().Err(err).Msg("could not marshal configuration data")
		}

		if err := os.WriteFile(configFN, configData, 0o644); err != nil {
			log.Fatal().Err(err).Str("FileName", configFN).Msg("could not save configuration to file")
		}

		log.Info().Msg("ledger-etl is configured")
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
