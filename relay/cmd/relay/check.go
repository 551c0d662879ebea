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
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/crossrelay/crossrelay/pkg/ident"
	"github.com/crossrelay/crossrelay/pkg/private/serrors"
)

func newCheck() *cobra.Command {
	var flags struct {
		config  string
		noColor bool
	}
	cmd := &cobra.Command{
		Use:   "check <chain> <port> <channel>",
		Short: "Check whether a channel is relayed for a chain",
		Long: `'check' evaluates the packet filter of the given chain against a
port and channel and reports the verdict. The command exits with code 1
if the channel is not relayed.`,
		Example: `  relay check cosmoshub-4 transfer channel-0 --config relay.toml`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			port, err := ident.ParsePortID(args[1])
			if err != nil {
				return serrors.Wrap("invalid port identifier", err)
			}
			channel, err := ident.ParseChannelID(args[2])
			if err != nil {
				return serrors.Wrap("invalid channel identifier", err)
			}
			cmd.SilenceUsage = true

			cfg, err := loadConfig(flags.config)
			if err != nil {
				return err
			}
			filters, err := cfg.ChainFilters()
			if err != nil {
				return err
			}
			// An unconfigured chain behaves like a chain without a filter
			// section, the zero value filter relays everything.
			f := filters[args[0]]

			allowed, denied := color.New(color.FgGreen), color.New(color.FgRed)
			if flags.noColor || !isatty.IsTerminal(os.Stdout.Fd()) {
				allowed, denied = color.New(), color.New()
			}

			fmt.Printf("chain: %s\npolicy: %s\n", args[0], f.Policy())
			if f.IsAllowed(port, channel) {
				fmt.Printf("%s/%s: %s\n", port, channel, allowed.Sprint("relayed"))
				return nil
			}
			fmt.Printf("%s/%s: %s\n", port, channel, denied.Sprint("not relayed"))
			os.Exit(1)
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.config, "config", "", "relay config file (required)")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "disable colored output")
	if err := cmd.MarkFlagRequired("config"); err != nil {
		panic(err)
	}
	return cmd
}
