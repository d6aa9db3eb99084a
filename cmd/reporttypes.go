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
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/phlfinance/ledger-etl/internal/registry"
)

// reportTypesCmd represents the report-types command
var reportTypesCmd = &cobra.Command{
	Use:   "report-types [name]",
	Short: "List every registered report, or show details about one",
	Run: func(cmd *cobra.Command, args []string) {
		r, _ := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)

		if len(args) > 0 {
			d, ok := registry.Lookup(args[0])
			if !ok {
				log.Fatal().Str("report", args[0]).Msg("no such report")
			}
			printReportDetail(r, d)
			return
		}

		var buf strings.Builder
		buf.WriteString("# Registered Reports\n\n")
		table := tablewriter.NewWriter(&buf)
		table.SetHeader([]string{"Name", "Summary", "Parameters"})
		for _, d := range registry.All() {
			table.Append([]string{d.Name, d.Summary, paramNames(d)})
		}
		table.Render()

		out, err := r.Render(buf.String())
		if err != nil {
			log.Fatal().Err(err).Msg("could not render report list")
		}
		fmt.Print(out)
	},
}

func printReportDetail(r *glamour.TermRenderer, d registry.Descriptor) {
	var buf strings.Builder
	buf.WriteString(fmt.Sprintf("# %s\n\n%s\n\n## Parameters\n", d.Name, d.Summary))
	for _, p := range d.Params {
		req := "optional"
		if p.Required {
			req = "required"
		}
		buf.WriteString(fmt.Sprintf("- `%s` (%s)\n", p.Name, req))
	}
	if d.Validate != nil {
		buf.WriteString("\nThis report declares a validation plan checked before load.\n")
	}
	out, err := r.Render(buf.String())
	if err != nil {
		log.Fatal().Err(err).Msg("could not render report detail")
	}
	fmt.Print(out)
}

func paramNames(d registry.Descriptor) string {
	names := make([]string, len(d.Params))
	for i, p := range d.Params {
		if p.Required {
			names[i] = p.Name
		} else {
			names[i] = p.Name + "?"
		}
	}
	return strings.Join(names, ", ")
}

func init() {
	rootCmd.AddCommand(reportTypesCmd)
}
