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

package filter

import (
	"encoding/json"
	"fmt"
	"iter"
	"strings"

	"github.com/crossrelay/crossrelay/pkg/ident"
	"github.com/crossrelay/crossrelay/pkg/private/serrors"
)

// Pair is one entry of a filter list: a port pattern and a channel pattern
// that must both match for the pair to match.
type Pair struct {
	Port    PortPattern
	Channel ChannelPattern
}

// ParsePair parses a two-element string pair into a filter pair.
func ParsePair(port, channel string) (Pair, error) {
	pp, err := ParsePortPattern(port)
	if err != nil {
		return Pair{}, serrors.Wrap("parsing port pattern", err)
	}
	cp, err := ParseChannelPattern(channel)
	if err != nil {
		return Pair{}, serrors.Wrap("parsing channel pattern", err)
	}
	return Pair{Port: pp, Channel: cp}, nil
}

// Matches reports whether both components of the pair match.
func (p Pair) Matches(port ident.PortID, channel ident.ChannelID) bool {
	return p.Port.Matches(port) && p.Channel.Matches(channel)
}

// IsExact reports whether both components are exact identifiers.
func (p Pair) IsExact() bool {
	return p.Port.IsExact() && p.Channel.IsExact()
}

func (p Pair) String() string {
	return fmt.Sprintf("%s/%s", p.Port, p.Channel)
}

// MarshalJSON renders the pair as a two-element array of pattern strings.
func (p Pair) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string{p.Port.String(), p.Channel.String()})
}

// UnmarshalJSON parses a two-element array of pattern strings.
func (p *Pair) UnmarshalJSON(b []byte) error {
	var raw []string
	if err := json.Unmarshal(b, &raw); err != nil {
		return serrors.Join(ErrInvalidPair, err)
	}
	if len(raw) != 2 {
		return serrors.Join(ErrInvalidPair, nil, "expected", 2, "actual", len(raw))
	}
	parsed, err := ParsePair(raw[0], raw[1])
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ChannelFilters is an ordered list of filter pairs forming one policy
// list. Order is preserved for stable serialization; it has no effect on
// matching, which is a logical OR across pairs.
type ChannelFilters []Pair

// ParseChannelFilters parses a serialized filter list, a sequence of
// two-element string pairs. Any malformed entry fails the whole list.
func ParseChannelFilters(raw [][]string) (ChannelFilters, error) {
	filters := make(ChannelFilters, 0, len(raw))
	for i, entry := range raw {
		if len(entry) != 2 {
			return nil, serrors.Join(ErrInvalidPair, nil, "index", i, "len", len(entry))
		}
		pair, err := ParsePair(entry[0], entry[1])
		if err != nil {
			return nil, serrors.Wrap("parsing filter list", err, "index", i)
		}
		filters = append(filters, pair)
	}
	return filters, nil
}

// Matches reports whether some pair in the list matches both the port and
// the channel. The empty list matches nothing.
func (f ChannelFilters) Matches(port ident.PortID, channel ident.ChannelID) bool {
	for _, pair := range f {
		if pair.Matches(port, channel) {
			return true
		}
	}
	return false
}

// IsExact reports whether every pair in the list consists of exact
// identifiers only.
func (f ChannelFilters) IsExact() bool {
	for _, pair := range f {
		if !pair.IsExact() {
			return false
		}
	}
	return true
}

// ExactPairs returns an iterator over the (port, channel) pairs without
// wildcards. The iterator re-scans the list on every range, no cursor
// state persists. It lets callers subscribe to the finite explicit channel
// set instead of scanning all channel activity.
func (f ChannelFilters) ExactPairs() iter.Seq2[ident.PortID, ident.ChannelID] {
	return func(yield func(ident.PortID, ident.ChannelID) bool) {
		for _, pair := range f {
			port, ok := pair.Port.Exact()
			if !ok {
				continue
			}
			channel, ok := pair.Channel.Exact()
			if !ok {
				continue
			}
			if !yield(port, channel) {
				return
			}
		}
	}
}

// Raw returns the serialized form of the list, a sequence of two-element
// string pairs in insertion order.
func (f ChannelFilters) Raw() [][]string {
	raw := make([][]string, 0, len(f))
	for _, pair := range f {
		raw = append(raw, []string{pair.Port.String(), pair.Channel.String()})
	}
	return raw
}

func (f ChannelFilters) String() string {
	parts := make([]string, 0, len(f))
	for _, pair := range f {
		parts = append(parts, pair.String())
	}
	return strings.Join(parts, ", ")
}
