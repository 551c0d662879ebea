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

	"github.com/crossrelay/crossrelay/relay/filter"
)

func TestWildcardIsMatch(t *testing.T) {
	testCases := map[string]struct {
		pattern string
		matches []string
		misses  []string
	}{
		"prefix": {
			pattern: "ica*",
			matches: []string{"ica", "ica0", "icafoo", "icabridge"},
			misses:  []string{"xica", "foo-ica", "myica", "ic"},
		},
		"any": {
			pattern: "*",
			matches: []string{"", "transfer", "channel-0", "a*b"},
		},
		"infix": {
			pattern: "transfer*v2",
			matches: []string{"transferv2", "transfer.v2", "transfer-foo-v2"},
			misses:  []string{"transfer", "transferv2x", "v2transfer"},
		},
		"no wildcard": {
			pattern: "transfer",
			matches: []string{"transfer"},
			misses:  []string{"transfers", "xtransfer", ""},
		},
		"metacharacters quoted": {
			pattern: "port.v1+x*",
			matches: []string{"port.v1+x", "port.v1+x9"},
			misses:  []string{"portxv1+x", "port.v1yx"},
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			w, err := filter.ParseWildcard(tc.pattern)
			require.NoError(t, err)
			for _, text := range tc.matches {
				assert.True(t, w.IsMatch(text), "expected match: %q", text)
			}
			for _, text := range tc.misses {
				assert.False(t, w.IsMatch(text), "expected miss: %q", text)
			}
		})
	}
}

func TestWildcardRoundTrip(t *testing.T) {
	patterns := []string{"ica*", "*", "transfer*v2", "port.v1+x*", "a*b*c"}
	probes := []string{"", "ica", "ica0", "transferv2", "port.v1+x", "abc", "axbyc", "foo"}
	for _, pattern := range patterns {
		w, err := filter.ParseWildcard(pattern)
		require.NoError(t, err)
		assert.Equal(t, pattern, w.String())
		reparsed, err := filter.ParseWildcard(w.String())
		require.NoError(t, err)
		for _, probe := range probes {
			assert.Equal(t, w.IsMatch(probe), reparsed.IsMatch(probe),
				"pattern %q probe %q", pattern, probe)
		}
	}
}

func TestWildcardZeroValue(t *testing.T) {
	var w filter.Wildcard
	assert.False(t, w.IsMatch(""))
	assert.False(t, w.IsMatch("transfer"))
	assert.Empty(t, w.String())
}
