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
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/phlfinance/ledger-etl/internal/pipeline"
	"github.com/phlfinance/ledger-etl/internal/provider"
	"github.com/phlfinance/ledger-etl/internal/registry"
)

var (
	etlParams      []string
	etlDryRun      bool
	etlNoValidate  bool
	etlExtractOnly bool
	etlRemote      bool
)

// etlCmd represents the etl command
var etlCmd = &cobra.Command{
	Use:   "etl <report-name> --param=<key>=<value>...",
	Short: "Run a single report's extract/transform/validate/load pipeline",
	Long: `etl runs one registered report's pipeline end to end: it resolves the
raw PDF for the given parameters, reconstructs its table, cleans and
coerces it, runs the report's validation plan, and writes a CSV to the
processed data root.

Report parameters are passed as repeated --param=<key>=<value> flags
(e.g. --param=fiscal_year=2024); a bare --<key>=<value> flag is not
accepted.

Use --extract-only to stop after reconstructing the raw table,
--no-validate to skip the validation plan, and --dry-run to run
everything except the final CSV write.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		d, ok := registry.Lookup(name)
		if !ok {
			return fmt.Errorf("ledger-etl: unknown report %q (see \"ledger-etl report-types\")", name)
		}

		params, err := parseParams(etlParams)
		if err != nil {
			return err
		}

		var src provider.TokenSource = runCtx.Local
		if etlRemote {
			src = runCtx.Remote
		}

		runID := uuid.NewString()
		result := pipeline.Run(context.Background(), d, params, src,
			runCtx.Config.RawRoot, runCtx.Config.ProcessedRoot, runID,
			pipeline.Options{
				ExtractOnly:  etlExtractOnly,
				SkipValidate: etlNoValidate,
				DryRun:       etlDryRun,
			})

		logEvent := log.Info()
		if result.Err != nil {
			logEvent = log.Error().Err(result.Err)
		}
		logEvent.Str("report", name).Str("state", result.State.String()).Str("runID", runID).
			Int("records", len(result.Records)).Msg("etl run finished")

		if result.Err != nil {
			return result.Err
		}
		return nil
	},
}

// parseParams splits "key=value" flag values into a registry.Params
// map, the CLI-side counterpart of the Params type internal/registry
// declares.
func parseParams(raw []string) (registry.Params, error) {
	out := make(registry.Params, len(raw))
	for _, kv := range raw {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("ledger-etl: malformed --param %q, expected key=value", kv)
		}
		out[k] = v
	}
	return out, nil
}

func init() {
	rootCmd.AddCommand(etlCmd)

	etlCmd.Flags().StringArrayVar(&etlParams, "param", nil, "report parameter as key=value, repeatable (e.g. --param=fiscal_year=2024)")
	etlCmd.Flags().BoolVar(&etlDryRun, "dry-run", false, "run the full pipeline but skip writing the output CSV")
	etlCmd.Flags().BoolVar(&etlNoValidate, "no-validate", false, "skip the report's validation plan")
	etlCmd.Flags().BoolVar(&etlExtractOnly, "extract-only", false, "stop after reconstructing the raw table")
	etlCmd.Flags().BoolVar(&etlRemote, "remote", false, "use the remote OCR/tables provider instead of the local PDF reader")
}
