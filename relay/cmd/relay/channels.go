// Copyright 2025 CrossRelay Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/crossrelay/crossrelay/relay/filter"
)

func newChannels() *cobra.Command {
	var flags struct {
		config string
		chain  string
	}
	cmd := &cobra.Command{
		Use:   "channels",
		Short: "List the configured channel filters",
		Long: `'channels' prints the packet filter of every configured chain: the
policy and the port/channel pattern pairs it applies.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, err := loadConfig(flags.config)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, chain := range cfg.Chains {
				if flags.chain != "" && flags.chain != chain.ID {
					continue
				}
				f, err := chain.PacketFilter()
				if err != nil {
					return err
				}
				printChainFilter(out, chain.ID, f)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.config, "config", "", "relay config file (required)")
	cmd.Flags().StringVar(&flags.chain, "chain", "", "only show the given chain")
	if err := cmd.MarkFlagRequired("config"); err != nil {
		panic(err)
	}
	return cmd
}

func printChainFilter(w io.Writer, chain string, f filter.PacketFilter) {
	fmt.Fprintf(w, "%s: policy %s\n", chain, f.Policy())
	if f.Policy() == filter.AllowAll {
		fmt.Fprintln(w, "  all traffic relayed")
		return
	}
	var rows [][]string
	for _, pair := range f.List() {
		match := "pattern"
		if pair.IsExact() {
			match = "exact"
		}
		rows = append(rows, []string{
			pair.Port.String(), pair.Channel.String(), match,
		})
	}
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"PORT", "CHANNEL", "MATCH"})
	table.AppendBulk(rows)
	table.Render()

	var exact []string
	for port, channel := range f.List().ExactPairs() {
		exact = append(exact, fmt.Sprintf("%s/%s", port, channel))
	}
	if len(exact) > 0 {
		fmt.Fprintf(w, "  exact pairs: %s\n", strings.Join(exact, ", "))
	}
}
