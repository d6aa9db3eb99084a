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
	"os"
	"os/signal"
	"strconv"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/phlfinance/ledger-etl/internal/pipeline"
	"github.com/phlfinance/ledger-etl/internal/provider"
	"github.com/phlfinance/ledger-etl/internal/registry"
)

var (
	batchSchedule  string
	batchYearFrom  int
	batchYearTo    int
	batchReports   []string
	batchRunOnce   bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run a sweep of report invocations on a cron schedule",
	Long: `batch resolves the teacher's own dangling "not a daemon yet" TODO
(penny-vault-pv-data/cmd/run.go): given a set of report names and a
fiscal year range, it sweeps every (report, year) combination through
the pipeline on every cron tick, one sweep per tick, sequentially
(matching spec.md §5's single-threaded invocation model).

Use --run-once to execute one sweep immediately and exit, instead of
starting the scheduler.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		schedule := batchSchedule
		if schedule == "" {
			schedule = runCtx.Config.BatchSchedule
		}
		if schedule == "" {
			schedule = "0 6 * * *"
		}

		sweep := func() {
			runBatchSweep(batchReports, batchYearFrom, batchYearTo)
		}

		if batchRunOnce {
			sweep()
			return nil
		}

		c := cron.New()
		if _, err := c.AddFunc(schedule, sweep); err != nil {
			return err
		}
		c.Start()
		defer c.Stop()

		log.Info().Str("schedule", schedule).Msg("batch scheduler started")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		<-ctx.Done()

		log.Info().Msg("batch scheduler shutting down")
		return nil
	},
}

// runBatchSweep runs every report in names across every fiscal_year in
// [from, to], sequentially. A report missing a "fiscal_year" parameter
// (e.g. the monthly collections family, keyed by month/year instead) is
// skipped with a warning rather than failing the whole sweep.
func runBatchSweep(names []string, from, to int) {
	var src provider.TokenSource = runCtx.Local
	for _, name := range names {
		d, ok := registry.Lookup(name)
		if !ok {
			log.Warn().Str("report", name).Msg("batch: unknown report, skipping")
			continue
		}
		if !hasParam(d, "fiscal_year") {
			log.Warn().Str("report", name).Msg("batch: report has no fiscal_year parameter, skipping sweep")
			continue
		}

		for fy := from; fy <= to; fy++ {
			params := registry.Params{"fiscal_year": strconv.Itoa(fy)}
			if hasParam(d, "kind") {
				params["kind"] = "adopted"
			}
			if hasParam(d, "quarter") {
				for q := 1; q <= 4; q++ {
					params["quarter"] = strconv.Itoa(q)
					runOne(d, params, src)
				}
				continue
			}
			runOne(d, params, src)
		}
	}
}

func runOne(d registry.Descriptor, params registry.Params, src provider.TokenSource) {
	runID := uuid.NewString()
	result := pipeline.Run(context.Background(), d, params, src,
		runCtx.Config.RawRoot, runCtx.Config.ProcessedRoot, runID, pipeline.Options{})

	logEvent := log.Info()
	if result.Err != nil {
		logEvent = log.Warn().Err(result.Err)
	}
	logEvent.Str("report", d.Name).Str("state", result.State.String()).Msg("batch: invocation finished")
}

func hasParam(d registry.Descriptor, name string) bool {
	for _, p := range d.Params {
		if p.Name == name {
			return true
		}
	}
	return false
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchSchedule, "schedule", "", "cron schedule for the sweep (default from config's batch_schedule)")
	batchCmd.Flags().IntVar(&batchYearFrom, "fiscal-year-from", 0, "first fiscal year to sweep")
	batchCmd.Flags().IntVar(&batchYearTo, "fiscal-year-to", 0, "last fiscal year to sweep")
	batchCmd.Flags().StringArrayVar(&batchReports, "report", nil, "report name to include in the sweep, repeatable")
	batchCmd.Flags().BoolVar(&batchRunOnce, "run-once", false, "run a single sweep immediately and exit")
}
