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

// Package admission connects the packet filter policy engine to the relay
// loop. It holds the active filter of every configured chain behind an
// atomic pointer, so a configuration reload replaces a policy as a whole
// and a reader never observes a partially updated one.
package admission

import (
	"sync/atomic"

	"github.com/crossrelay/crossrelay/pkg/ident"
	"github.com/crossrelay/crossrelay/pkg/log"
	"github.com/crossrelay/crossrelay/pkg/metrics"
	"github.com/crossrelay/crossrelay/pkg/private/serrors"
	"github.com/crossrelay/crossrelay/relay/filter"
)

// Metrics used by the admitter. A nil counter disables the metric.
type Metrics struct {
	// AcceptedPackets counts admission checks that permitted relaying.
	AcceptedPackets metrics.Counter
	// RejectedPackets counts admission checks that rejected relaying.
	RejectedPackets metrics.Counter
}

// Admitter answers admission checks for a fixed set of chains. The chain
// set is established at construction; the filter of each chain can be
// swapped atomically at any time.
type Admitter struct {
	filters map[string]*atomic.Pointer[filter.PacketFilter]
	metrics Metrics
	logger  log.Logger
}

// NewAdmitter creates an admitter for the given chain filters. Chains
// without a configured filter should be passed with the zero value filter,
// which permits everything.
func NewAdmitter(chainFilters map[string]filter.PacketFilter, m Metrics,
	logger log.Logger) *Admitter {

	if logger == nil {
		logger = log.Root()
	}
	filters := make(map[string]*atomic.Pointer[filter.PacketFilter], len(chainFilters))
	for chain, f := range chainFilters {
		p := &atomic.Pointer[filter.PacketFilter]{}
		p.Store(&f)
		filters[chain] = p
	}
	return &Admitter{
		filters: filters,
		metrics: m,
		logger:  logger,
	}
}

// Allowed reports whether packets on the given channel of the given chain
// are in scope for relaying. Chains unknown to the admitter are treated
// like chains without a filter section: everything is permitted.
func (a *Admitter) Allowed(chain string, port ident.PortID, channel ident.ChannelID) bool {
	f := a.Filter(chain)
	allowed := f.IsAllowed(port, channel)
	if allowed {
		metrics.CounterInc(a.metrics.AcceptedPackets)
	} else {
		metrics.CounterInc(a.metrics.RejectedPackets)
		if a.logger.Enabled(log.DebugLevel) {
			a.logger.Debug("Packet rejected by filter",
				"chain", chain, "port", port, "channel", channel, "policy", f.Policy())
		}
	}
	return allowed
}

// Filter returns the active filter of the given chain, or the allow-all
// filter for unknown chains.
func (a *Admitter) Filter(chain string) filter.PacketFilter {
	p, ok := a.filters[chain]
	if !ok {
		return filter.PacketFilter{}
	}
	return *p.Load()
}

// Update atomically replaces the filter of the given chain. The chain must
// have been part of the admitter's construction; the chain set itself is
// immutable.
func (a *Admitter) Update(chain string, f filter.PacketFilter) error {
	p, ok := a.filters[chain]
	if !ok {
		return serrors.New("chain not configured", "chain", chain)
	}
	p.Store(&f)
	a.logger.Info("Packet filter updated", "chain", chain, "policy", f.Policy())
	return nil
}

// UpdateAll replaces the filters of all configured chains. The incoming
// set must name exactly the chains the admitter was constructed with;
// additions and removals are rejected before any filter is swapped, so a
// failed update leaves every previous policy active. The swap itself is
// atomic per chain, not across chains; every individual check still sees
// one complete policy.
func (a *Admitter) UpdateAll(chainFilters map[string]filter.PacketFilter) error {
	var errs serrors.List
	for chain := range chainFilters {
		if _, ok := a.filters[chain]; !ok {
			errs = append(errs, serrors.New("chain not configured", "chain", chain))
		}
	}
	for chain := range a.filters {
		if _, ok := chainFilters[chain]; !ok {
			errs = append(errs, serrors.New("chain missing from update", "chain", chain))
		}
	}
	if err := errs.ToError(); err != nil {
		return err
	}
	for chain, f := range chainFilters {
		a.filters[chain].Store(&f)
	}
	a.logger.Info("Packet filters updated", "chains", len(chainFilters))
	return nil
}
