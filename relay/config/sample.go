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

package config

import (
	"fmt"

	"github.com/crossrelay/crossrelay/private/config"
)

const idSample = "relay-1"

const generalSampleTmpl = `
# The ID of the relay instance. (required)
id = "%s"
`

func generalSample(ctx config.CtxMap) string {
	return fmt.Sprintf(generalSampleTmpl, ctx[config.ID])
}

const metricsSample = `
# The address to export prometheus metrics on (host:port or ip:port or :port).
# The prometheus metrics can be found under /metrics.
# If not set, metrics are not exported. (default "")
prometheus = ""
`

const chainsSample = `
# One [[chains]] entry per connected chain. The filter section restricts
# which channels are relayed; a chain without a filter section relays all
# traffic.
[[chains]]
# The identifier of the chain. (required)
id = "cosmoshub-4"

# The packet admission policy for the chain. The policy is either "allow"
# or "deny"; the list holds [port, channel] pattern pairs. A "*" in a
# pattern matches any run of characters.
[chains.filter]
policy = "allow"
list = [
    ["transfer", "channel-0"],
    ["ica*", "*"],
]
`
