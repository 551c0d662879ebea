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
	"github.com/crossrelay/crossrelay/pkg/ident"
	"github.com/crossrelay/crossrelay/pkg/private/serrors"
)

// Pattern matches identifiers of type T either by exact equality or by
// wildcard. The two variants are disjoint: an identifier can never contain
// '*', so no string describes both an exact value and a wildcard.
type Pattern[T ~string] struct {
	exact    *T
	wildcard Wildcard
}

// parsePattern parses s with the exact identifier parser first and falls
// back to wildcard compilation. The ordering is a contract, not an
// optimization: if an input could ever satisfy both grammars, it must
// deterministically become an exact match.
func parsePattern[T ~string](s string, parse func(string) (T, error)) (Pattern[T], error) {
	if v, err := parse(s); err == nil {
		return Pattern[T]{exact: &v}, nil
	}
	w, err := ParseWildcard(s)
	if err != nil {
		return Pattern[T]{}, serrors.Join(ErrInvalidPattern, err, "input", s)
	}
	return Pattern[T]{wildcard: w}, nil
}

// Matches reports whether v satisfies the pattern: strict equality for an
// exact pattern, anchored wildcard matching otherwise. The zero value
// matches nothing.
func (p Pattern[T]) Matches(v T) bool {
	if p.exact != nil {
		return *p.exact == v
	}
	return p.wildcard.IsMatch(string(v))
}

// IsExact reports whether the pattern is an exact identifier.
func (p Pattern[T]) IsExact() bool {
	return p.exact != nil
}

// IsWildcard reports whether the pattern is a wildcard.
func (p Pattern[T]) IsWildcard() bool {
	return p.exact == nil && p.wildcard.re != nil
}

// Exact returns the contained identifier if the pattern is exact.
func (p Pattern[T]) Exact() (T, bool) {
	if p.exact == nil {
		var zero T
		return zero, false
	}
	return *p.exact, true
}

func (p Pattern[T]) String() string {
	if p.exact != nil {
		return string(*p.exact)
	}
	return p.wildcard.String()
}

// PortPattern matches port identifiers.
type PortPattern struct {
	Pattern[ident.PortID]
}

// ParsePortPattern parses s as an exact port identifier or a wildcard.
func ParsePortPattern(s string) (PortPattern, error) {
	p, err := parsePattern(s, ident.ParsePortID)
	if err != nil {
		return PortPattern{}, err
	}
	return PortPattern{p}, nil
}

// ExactPortPattern returns a pattern matching exactly id.
func ExactPortPattern(id ident.PortID) PortPattern {
	return PortPattern{Pattern[ident.PortID]{exact: &id}}
}

// MarshalText implements encoding.TextMarshaler.
func (p PortPattern) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *PortPattern) UnmarshalText(b []byte) error {
	parsed, err := ParsePortPattern(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ChannelPattern matches channel identifiers.
type ChannelPattern struct {
	Pattern[ident.ChannelID]
}

// ParseChannelPattern parses s as an exact channel identifier or a wildcard.
func ParseChannelPattern(s string) (ChannelPattern, error) {
	p, err := parsePattern(s, ident.ParseChannelID)
	if err != nil {
		return ChannelPattern{}, err
	}
	return ChannelPattern{p}, nil
}

// ExactChannelPattern returns a pattern matching exactly id.
func ExactChannelPattern(id ident.ChannelID) ChannelPattern {
	return ChannelPattern{Pattern[ident.ChannelID]{exact: &id}}
}

// MarshalText implements encoding.TextMarshaler.
func (p ChannelPattern) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *ChannelPattern) UnmarshalText(b []byte) error {
	parsed, err := ParseChannelPattern(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
