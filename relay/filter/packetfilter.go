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
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/crossrelay/crossrelay/pkg/ident"
	"github.com/crossrelay/crossrelay/pkg/private/serrors"
)

// Policy selects how a filter list is interpreted.
type Policy int

// The available policies. AllowAll is the zero value: a PacketFilter built
// without configuration permits all traffic. This fail-open default is
// kept for backward compatibility and must not change; operators are
// warned at startup when a chain runs without a filter section.
const (
	AllowAll Policy = iota
	Allow
	Deny
)

// ParsePolicy parses the configuration representation of a policy. Only
// allow and deny have one; AllowAll is expressed by omitting the filter
// record entirely.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "allow":
		return Allow, nil
	case "deny":
		return Deny, nil
	default:
		return AllowAll, serrors.Join(ErrInvalidPolicy, nil, "policy", s)
	}
}

func (p Policy) String() string {
	switch p {
	case AllowAll:
		return "allow-all"
	case Allow:
		return "allow"
	case Deny:
		return "deny"
	default:
		return fmt.Sprintf("UNKNOWN (%d)", int(p))
	}
}

// PacketFilter is the admission policy for one chain: an allow list, a
// deny list, or allow-all. The zero value is allow-all. A value is fixed
// at construction and never mutated; it is safe for concurrent use
// without synchronization.
type PacketFilter struct {
	policy Policy
	list   ChannelFilters
}

// NewAllowFilter creates a filter permitting only channels matched by list.
func NewAllowFilter(list ChannelFilters) PacketFilter {
	return PacketFilter{policy: Allow, list: list}
}

// NewDenyFilter creates a filter permitting all channels except those
// matched by list.
func NewDenyFilter(list ChannelFilters) PacketFilter {
	return PacketFilter{policy: Deny, list: list}
}

// New builds a PacketFilter from the serialized policy and list form. An
// empty policy with an empty list yields the allow-all filter. A policy
// and a list only mean something together: a list without a policy is an
// error, and so is a policy without a list, since an empty allow list
// would silently deny everything.
func New(policy string, list [][]string) (PacketFilter, error) {
	if policy == "" {
		if len(list) != 0 {
			return PacketFilter{}, serrors.Join(ErrInvalidPolicy, nil,
				"reason", "list without policy")
		}
		return PacketFilter{}, nil
	}
	p, err := ParsePolicy(policy)
	if err != nil {
		return PacketFilter{}, err
	}
	if len(list) == 0 {
		return PacketFilter{}, serrors.Join(ErrInvalidPolicy, nil,
			"reason", "policy without list", "policy", policy)
	}
	filters, err := ParseChannelFilters(list)
	if err != nil {
		return PacketFilter{}, err
	}
	return PacketFilter{policy: p, list: filters}, nil
}

// IsAllowed reports whether packets on the channel with the given port and
// channel identifier are in scope for relaying. It is total: once a
// filter value exists there is no failure mode.
func (f PacketFilter) IsAllowed(port ident.PortID, channel ident.ChannelID) bool {
	switch f.policy {
	case Allow:
		return f.list.Matches(port, channel)
	case Deny:
		return !f.list.Matches(port, channel)
	default:
		return true
	}
}

// Policy returns the policy variant of the filter.
func (f PacketFilter) Policy() Policy {
	return f.policy
}

// List returns the filter list. It is empty for the allow-all filter.
func (f PacketFilter) List() ChannelFilters {
	return f.list
}

func (f PacketFilter) String() string {
	if f.policy == AllowAll {
		return f.policy.String()
	}
	return fmt.Sprintf("%s: %s", f.policy, f.list)
}

// rawFilter is the serialized shape shared by the JSON and TOML codecs.
type rawFilter struct {
	Policy string     `json:"policy,omitempty" toml:"policy,omitempty"`
	List   [][]string `json:"list,omitempty" toml:"list,omitempty"`
}

// MarshalJSON renders the filter in its configuration shape. The allow-all
// filter renders as the empty object.
func (f PacketFilter) MarshalJSON() ([]byte, error) {
	if f.policy == AllowAll {
		return []byte("{}"), nil
	}
	return json.Marshal(rawFilter{Policy: f.policy.String(), List: f.list.Raw()})
}

// UnmarshalJSON parses the configuration shape. Unknown keys are a hard
// error; any malformed pattern fails the whole filter.
func (f *PacketFilter) UnmarshalJSON(b []byte) error {
	var raw rawFilter
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return serrors.Wrap("decoding packet filter", err)
	}
	parsed, err := New(raw.Policy, raw.List)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
