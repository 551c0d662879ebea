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

import "errors"

// Errors returned when building a filter from its serialized form. All of
// them fail the entire configuration load; there is no partial acceptance
// of a filter list. A constructed PacketFilter cannot produce errors.
var (
	// ErrInvalidPattern indicates a pattern string that is neither a valid
	// identifier nor a compilable wildcard.
	ErrInvalidPattern = errors.New("invalid filter pattern")
	// ErrInvalidWildcard indicates a wildcard that failed to compile after
	// escaping.
	ErrInvalidWildcard = errors.New("invalid wildcard pattern")
	// ErrInvalidPolicy indicates a policy value other than allow or deny.
	ErrInvalidPolicy = errors.New("invalid filter policy")
	// ErrInvalidPair indicates a list entry that is not a pair of pattern
	// strings.
	ErrInvalidPair = errors.New("invalid filter pair")
)
