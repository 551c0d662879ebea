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

// Package config contains the configuration of the relay.
package config

import (
	"io"
	"net"

	"github.com/crossrelay/crossrelay/pkg/log"
	"github.com/crossrelay/crossrelay/pkg/private/serrors"
	"github.com/crossrelay/crossrelay/private/config"
	"github.com/crossrelay/crossrelay/relay/filter"
)

var _ config.Config = (*Config)(nil)

// Config is the relay configuration.
type Config struct {
	General General    `toml:"general,omitempty"`
	Logging log.Config `toml:"log,omitempty"`
	Metrics Metrics    `toml:"metrics,omitempty"`
	Chains  []Chain    `toml:"chains,omitempty"`
}

// InitDefaults initializes the default values of all sections.
func (cfg *Config) InitDefaults() {
	config.InitAll(
		&cfg.General,
		&cfg.Logging,
		&cfg.Metrics,
	)
}

// Validate validates all sections.
func (cfg *Config) Validate() error {
	if err := config.ValidateAll(
		&cfg.General,
		&cfg.Logging,
		&cfg.Metrics,
	); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(cfg.Chains))
	for _, chain := range cfg.Chains {
		if err := chain.Validate(); err != nil {
			return serrors.Wrap("validating chain", err, "chain", chain.ID)
		}
		if _, ok := seen[chain.ID]; ok {
			return serrors.New("duplicate chain id", "chain", chain.ID)
		}
		seen[chain.ID] = struct{}{}
	}
	return nil
}

// Sample writes a commented sample config to dst.
func (cfg *Config) Sample(dst io.Writer, path config.Path, _ config.CtxMap) {
	config.WriteSample(dst, path, config.CtxMap{config.ID: idSample},
		&cfg.General,
		&cfg.Logging,
		&cfg.Metrics,
	)
	config.WriteString(dst, chainsSample)
}

// ConfigName returns the name this config should have in a config file.
func (cfg *Config) ConfigName() string {
	return "relay_config"
}

// ChainFilters compiles the packet filter of every configured chain.
// Chains without a filter section map to the allow-all filter. Any
// malformed filter fails the whole configuration.
func (cfg *Config) ChainFilters() (map[string]filter.PacketFilter, error) {
	filters := make(map[string]filter.PacketFilter, len(cfg.Chains))
	for _, chain := range cfg.Chains {
		f, err := chain.PacketFilter()
		if err != nil {
			return nil, serrors.Wrap("compiling packet filter", err, "chain", chain.ID)
		}
		filters[chain.ID] = f
	}
	return filters, nil
}

// UnfilteredChains returns the ids of chains that run without a filter
// section and thus relay all traffic. Callers should surface this to
// operators at startup.
func (cfg *Config) UnfilteredChains() []string {
	var unfiltered []string
	for _, chain := range cfg.Chains {
		if chain.Filter.Policy == "" && len(chain.Filter.List) == 0 {
			unfiltered = append(unfiltered, chain.ID)
		}
	}
	return unfiltered
}

// General contains the general relay configuration.
type General struct {
	config.NoDefaulter
	// ID is the element ID of the relay instance.
	ID string `toml:"id,omitempty"`
}

// Validate validates that the ID is set.
func (cfg *General) Validate() error {
	if cfg.ID == "" {
		return serrors.New("id must be set")
	}
	return nil
}

// Sample writes the general sample config to dst.
func (cfg *General) Sample(dst io.Writer, path config.Path, ctx config.CtxMap) {
	config.WriteString(dst, generalSample(ctx))
}

// ConfigName returns the name this section should have in a config file.
func (cfg *General) ConfigName() string {
	return "general"
}

// Metrics contains the metrics configuration.
type Metrics struct {
	config.NoDefaulter
	// Prometheus is the address to expose prometheus metrics on. If not
	// set, metrics are not exposed.
	Prometheus string `toml:"prometheus,omitempty"`
}

// Validate validates the prometheus address, if set.
func (cfg *Metrics) Validate() error {
	if cfg.Prometheus == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(cfg.Prometheus); err != nil {
		return serrors.Wrap("parsing prometheus address", err, "addr", cfg.Prometheus)
	}
	return nil
}

// Sample writes the metrics sample config to dst.
func (cfg *Metrics) Sample(dst io.Writer, path config.Path, ctx config.CtxMap) {
	config.WriteString(dst, metricsSample)
}

// ConfigName returns the name this section should have in a config file.
func (cfg *Metrics) ConfigName() string {
	return "metrics"
}

// Chain is the configuration of one connected chain.
type Chain struct {
	// ID is the identifier of the chain.
	ID string `toml:"id,omitempty"`
	// Filter is the packet admission policy for the chain. If the section
	// is omitted, all packets are relayed.
	Filter RawFilter `toml:"filter,omitempty"`
}

// Validate validates the chain entry, including that its filter compiles.
func (cfg *Chain) Validate() error {
	if cfg.ID == "" {
		return serrors.New("id must be set")
	}
	if _, err := cfg.PacketFilter(); err != nil {
		return err
	}
	return nil
}

// PacketFilter compiles the filter section of the chain.
func (cfg *Chain) PacketFilter() (filter.PacketFilter, error) {
	return filter.New(cfg.Filter.Policy, cfg.Filter.List)
}

// RawFilter is the on-disk form of a packet filter: the policy and the
// list of pattern pairs. An omitted section yields the allow-all filter.
type RawFilter struct {
	Policy string     `toml:"policy,omitempty"`
	List   [][]string `toml:"list,omitempty"`
}
