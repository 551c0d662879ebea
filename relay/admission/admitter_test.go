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

package admission_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crossrelay/crossrelay/pkg/ident"
	"github.com/crossrelay/crossrelay/relay/admission"
	"github.com/crossrelay/crossrelay/relay/filter"
)

type testCounter struct {
	mtx sync.Mutex
	n   float64
}

func (c *testCounter) Add(delta float64) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.n += delta
}

func (c *testCounter) value() float64 {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.n
}

func mustAllowFilter(t *testing.T, list [][]string) filter.PacketFilter {
	t.Helper()
	f, err := filter.New("allow", list)
	require.NoError(t, err)
	return f
}

func TestAdmitterAllowed(t *testing.T) {
	accepted, rejected := &testCounter{}, &testCounter{}
	a := admission.NewAdmitter(
		map[string]filter.PacketFilter{
			"hub": mustAllowFilter(t, [][]string{{"transfer", "channel-0"}}),
		},
		admission.Metrics{AcceptedPackets: accepted, RejectedPackets: rejected},
		nil,
	)

	port := ident.MustParsePortID("transfer")
	assert.True(t, a.Allowed("hub", port, ident.MustParseChannelID("channel-0")))
	assert.False(t, a.Allowed("hub", port, ident.MustParseChannelID("channel-1")))
	assert.Equal(t, 1.0, accepted.value())
	assert.Equal(t, 1.0, rejected.value())
}

func TestAdmitterUnknownChainAllowsAll(t *testing.T) {
	a := admission.NewAdmitter(nil, admission.Metrics{}, nil)
	assert.True(t, a.Allowed("unknown",
		ident.MustParsePortID("transfer"), ident.MustParseChannelID("channel-0")))
	assert.Equal(t, filter.AllowAll, a.Filter("unknown").Policy())
}

func TestAdmitterUpdate(t *testing.T) {
	a := admission.NewAdmitter(
		map[string]filter.PacketFilter{"hub": {}},
		admission.Metrics{},
		nil,
	)
	port := ident.MustParsePortID("transfer")
	channel := ident.MustParseChannelID("channel-0")

	// Default filter permits everything.
	assert.True(t, a.Allowed("hub", port, channel))

	deny, err := filter.New("deny", [][]string{{"transfer", "*"}})
	require.NoError(t, err)
	require.NoError(t, a.Update("hub", deny))
	assert.False(t, a.Allowed("hub", port, channel))

	// The chain set is fixed at construction.
	assert.Error(t, a.Update("sidechain", filter.PacketFilter{}))
}

func TestAdmitterUpdateAll(t *testing.T) {
	a := admission.NewAdmitter(
		map[string]filter.PacketFilter{"hub": {}, "zone": {}},
		admission.Metrics{},
		nil,
	)
	err := a.UpdateAll(map[string]filter.PacketFilter{
		"hub":  mustAllowFilter(t, [][]string{{"transfer", "channel-0"}}),
		"zone": {},
	})
	require.NoError(t, err)
	assert.Equal(t, filter.Allow, a.Filter("hub").Policy())
	assert.Equal(t, filter.AllowAll, a.Filter("zone").Policy())

	err = a.UpdateAll(map[string]filter.PacketFilter{"bogus": {}})
	assert.Error(t, err)
}

func TestUpdateAllFailureKeepsPolicies(t *testing.T) {
	a := admission.NewAdmitter(
		map[string]filter.PacketFilter{"hub": {}},
		admission.Metrics{},
		nil,
	)
	port := ident.MustParsePortID("transfer")
	channel := ident.MustParseChannelID("channel-0")

	deny, err := filter.New("deny", [][]string{{"*", "*"}})
	require.NoError(t, err)

	// An update that adds a chain is rejected before any swap; the known
	// chain keeps its previous policy.
	err = a.UpdateAll(map[string]filter.PacketFilter{"hub": deny, "sidechain": {}})
	assert.Error(t, err)
	assert.Equal(t, filter.AllowAll, a.Filter("hub").Policy())
	assert.True(t, a.Allowed("hub", port, channel))

	// An update that removes a chain is rejected as well.
	err = a.UpdateAll(map[string]filter.PacketFilter{})
	assert.Error(t, err)
	assert.True(t, a.Allowed("hub", port, channel))
}

func TestAdmitterConcurrentChecks(t *testing.T) {
	a := admission.NewAdmitter(
		map[string]filter.PacketFilter{
			"hub": mustAllowFilter(t, [][]string{{"ica*", "*"}}),
		},
		admission.Metrics{},
		nil,
	)
	port := ident.MustParsePortID("icahost")
	channel := ident.MustParseChannelID("channel-0")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				assert.True(t, a.Allowed("hub", port, channel))
			}
		}()
	}
	for i := 0; i < 100; i++ {
		require.NoError(t, a.Update("hub", mustAllowFilter(t, [][]string{{"ica*", "*"}})))
	}
	wg.Wait()
}
