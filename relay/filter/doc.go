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

// Package filter implements the packet admission policy of the relay.
//
// A PacketFilter decides whether packets traversing a (port, channel) pair
// are in scope for relaying. Operators express the policy as an allow or
// deny list of pattern pairs, where each pattern is either an exact
// identifier or a glob with '*' wildcards. A filter value is built once
// from configuration and is immutable afterwards; IsAllowed is a total,
// pure predicate that is safe to call from any number of goroutines.
package filter
