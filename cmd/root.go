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

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/phlfinance/ledger-etl/internal/config"
	"github.com/phlfinance/ledger-etl/internal/ledgerctx"

	// Importing the report families registers every descriptor via its
	// own init(), matching Descriptor is data, not a subclass (§4.8/4.9)
	// and internal/pipeline never importing a concrete report package.
	_ "github.com/phlfinance/ledger-etl/internal/reports"
)

var cfgFile string

// runCtx is built once in PersistentPreRunE and consulted by every
// subcommand; internal/registry's descriptor map is the only other
// process-wide global, per SPEC_FULL.md's Design Note carve-out.
var runCtx *ledgerctx.RunContext

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ledger-etl",
	Short: "ledger-etl extracts structured tables from Philadelphia's municipal finance PDF reports",
	Long: `ledger-etl reconstructs tables from the City of Philadelphia's published
finance PDFs (monthly tax collections, quarterly QCMR reports, annual
budget-in-brief summaries) and converts them into tidy CSVs suitable for
loading into a ledger or data warehouse.

Each report family is registered as a Descriptor: a raw path template, a
page-cropping strategy, a row-naming scheme, and an optional validation
plan of sum-to-total assertions. Run "ledger-etl report-types" to see
every registered report and its parameters.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		rc, err := ledgerctx.Initialize(cfg)
		if err != nil {
			return err
		}
		runCtx = rc
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ledger-etl.toml)")
}
