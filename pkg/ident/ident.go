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

// Package ident contains the identifiers that name the two ends of a packet
// transport channel between connected networks: the port identifier and the
// channel identifier.
//
// Both identifiers share the same character set, which notably excludes the
// '*' character. Filter patterns rely on this: a string that parses as an
// identifier can never be confused with a wildcard pattern.
package ident

import (
	"github.com/crossrelay/crossrelay/pkg/private/serrors"
)

// Identifier length bounds, as defined by the host protocol.
const (
	MinPortIDLength    = 2
	MaxPortIDLength    = 128
	MinChannelIDLength = 8
	MaxChannelIDLength = 64
)

// PortID identifies the port an endpoint binds a channel to.
type PortID string

// ParsePortID parses s as a port identifier. It fails if s is empty, too
// short, too long, or contains characters outside the identifier character
// set.
func ParsePortID(s string) (PortID, error) {
	if err := validate(s, MinPortIDLength, MaxPortIDLength); err != nil {
		return "", serrors.Wrap("parsing port identifier", err, "input", s)
	}
	return PortID(s), nil
}

// MustParsePortID calls ParsePortID and panics on error. It is intended for
// tests and constants.
func MustParsePortID(s string) PortID {
	id, err := ParsePortID(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id PortID) String() string {
	return string(id)
}

// MarshalText implements encoding.TextMarshaler.
func (id PortID) MarshalText() ([]byte, error) {
	return []byte(id), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *PortID) UnmarshalText(b []byte) error {
	parsed, err := ParsePortID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ChannelID identifies a channel on a given network.
type ChannelID string

// ParseChannelID parses s as a channel identifier. It fails if s is empty,
// too short, too long, or contains characters outside the identifier
// character set.
func ParseChannelID(s string) (ChannelID, error) {
	if err := validate(s, MinChannelIDLength, MaxChannelIDLength); err != nil {
		return "", serrors.Wrap("parsing channel identifier", err, "input", s)
	}
	return ChannelID(s), nil
}

// MustParseChannelID calls ParseChannelID and panics on error. It is intended
// for tests and constants.
func MustParseChannelID(s string) ChannelID {
	id, err := ParseChannelID(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id ChannelID) String() string {
	return string(id)
}

// MarshalText implements encoding.TextMarshaler.
func (id ChannelID) MarshalText() ([]byte, error) {
	return []byte(id), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ChannelID) UnmarshalText(b []byte) error {
	parsed, err := ParseChannelID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func validate(s string, minLen, maxLen int) error {
	if len(s) < minLen || len(s) > maxLen {
		return serrors.New("length out of range", "len", len(s), "min", minLen, "max", maxLen)
	}
	for i := 0; i < len(s); i++ {
		if !validByte(s[i]) {
			return serrors.New("invalid character", "char", string(s[i]), "pos", i)
		}
	}
	return nil
}

func validByte(b byte) bool {
	switch {
	case 'a' <= b && b <= 'z':
		return true
	case 'A' <= b && b <= 'Z':
		return true
	case '0' <= b && b <= '9':
		return true
	}
	switch b {
	case '.', '_', '+', '-', '#', '[', ']', '<', '>':
		return true
	}
	return false
}
