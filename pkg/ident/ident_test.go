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

package ident_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crossrelay/crossrelay/pkg/ident"
)

func TestParsePortID(t *testing.T) {
	testCases := map[string]struct {
		input     string
		assertErr assert.ErrorAssertionFunc
	}{
		"valid":             {input: "transfer", assertErr: assert.NoError},
		"valid minimal":     {input: "ft", assertErr: assert.NoError},
		"valid punctuation": {input: "icahost.v1_x+y", assertErr: assert.NoError},
		"valid brackets":    {input: "wasm[contract]<v2>#9", assertErr: assert.NoError},
		"valid max length":  {input: strings.Repeat("p", 128), assertErr: assert.NoError},
		"empty":             {input: "", assertErr: assert.Error},
		"too short":         {input: "p", assertErr: assert.Error},
		"too long":          {input: strings.Repeat("p", 129), assertErr: assert.Error},
		"wildcard":          {input: "ica*", assertErr: assert.Error},
		"slash":             {input: "transfer/v1", assertErr: assert.Error},
		"space":             {input: "trans fer", assertErr: assert.Error},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			id, err := ident.ParsePortID(tc.input)
			tc.assertErr(t, err)
			if err == nil {
				assert.Equal(t, tc.input, id.String())
			}
		})
	}
}

func TestParseChannelID(t *testing.T) {
	testCases := map[string]struct {
		input     string
		assertErr assert.ErrorAssertionFunc
	}{
		"valid":            {input: "channel-0", assertErr: assert.NoError},
		"valid high":       {input: "channel-1499", assertErr: assert.NoError},
		"valid max length": {input: strings.Repeat("c", 64), assertErr: assert.NoError},
		"empty":            {input: "", assertErr: assert.Error},
		"too short":        {input: "chan-0", assertErr: assert.Error},
		"too long":         {input: strings.Repeat("c", 65), assertErr: assert.Error},
		"wildcard":         {input: "channel-*", assertErr: assert.Error},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			id, err := ident.ParseChannelID(tc.input)
			tc.assertErr(t, err)
			if err == nil {
				assert.Equal(t, tc.input, id.String())
			}
		})
	}
}

func TestTextRoundTrip(t *testing.T) {
	port := ident.MustParsePortID("transfer")
	raw, err := port.MarshalText()
	assert.NoError(t, err)
	var parsed ident.PortID
	assert.NoError(t, parsed.UnmarshalText(raw))
	assert.Equal(t, port, parsed)

	var channel ident.ChannelID
	assert.Error(t, channel.UnmarshalText([]byte("bogus*id")))
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { ident.MustParsePortID("*") })
	assert.Panics(t, func() { ident.MustParseChannelID("x") })
}
