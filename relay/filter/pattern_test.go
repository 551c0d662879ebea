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

package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crossrelay/crossrelay/pkg/ident"
	"github.com/crossrelay/crossrelay/relay/filter"
)

func TestParsePortPattern(t *testing.T) {
	testCases := map[string]struct {
		input    string
		exact    bool
		wildcard bool
	}{
		"exact identifier":    {input: "transfer", exact: true},
		"wildcard":            {input: "ica*", wildcard: true},
		"catch all":           {input: "*", wildcard: true},
		"invalid char falls back to wildcard": {input: "trans fer", wildcard: true},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			p, err := filter.ParsePortPattern(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.exact, p.IsExact())
			assert.Equal(t, tc.wildcard, p.IsWildcard())
			assert.Equal(t, tc.input, p.String())
		})
	}
}

func TestPatternExactFirst(t *testing.T) {
	// A string that satisfies the identifier grammar must become an exact
	// pattern, never a wildcard, so matching is strict equality.
	p, err := filter.ParsePortPattern("transfer")
	require.NoError(t, err)
	assert.True(t, p.IsExact())
	exact, ok := p.Exact()
	require.True(t, ok)
	assert.Equal(t, ident.MustParsePortID("transfer"), exact)
	assert.True(t, p.Matches(ident.MustParsePortID("transfer")))
	assert.False(t, p.Matches(ident.MustParsePortID("transfers")))
}

func TestPatternWildcardMatches(t *testing.T) {
	p, err := filter.ParseChannelPattern("channel-1*")
	require.NoError(t, err)
	assert.True(t, p.IsWildcard())
	_, ok := p.Exact()
	assert.False(t, ok)
	assert.True(t, p.Matches(ident.MustParseChannelID("channel-1")))
	assert.True(t, p.Matches(ident.MustParseChannelID("channel-10")))
	assert.False(t, p.Matches(ident.MustParseChannelID("channel-2")))
}

func TestPatternTextRoundTrip(t *testing.T) {
	for _, input := range []string{"transfer", "ica*", "*"} {
		var p filter.PortPattern
		require.NoError(t, p.UnmarshalText([]byte(input)))
		raw, err := p.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, input, string(raw))
	}
}

func TestPatternZeroValueMatchesNothing(t *testing.T) {
	var p filter.PortPattern
	assert.False(t, p.IsExact())
	assert.False(t, p.IsWildcard())
	assert.False(t, p.Matches(ident.MustParsePortID("transfer")))
}
