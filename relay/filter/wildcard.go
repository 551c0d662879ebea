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
	"regexp"
	"strings"

	"github.com/crossrelay/crossrelay/pkg/private/serrors"
)

// Wildcard is a glob pattern compiled to a regular expression. In the
// pattern source, '*' matches any sequence of characters, including the
// empty one; every other character matches itself. Matching is anchored at
// both ends, there is no substring matching.
type Wildcard struct {
	pattern string
	re      *regexp.Regexp
}

// ParseWildcard compiles s into a wildcard matcher. All regex
// metacharacters in s are quoted before compilation, so '*' is the only
// token with special meaning.
func ParseWildcard(s string) (Wildcard, error) {
	expr := "^" + strings.ReplaceAll(regexp.QuoteMeta(s), `\*`, "(?:.*)") + "$"
	re, err := regexp.Compile(expr)
	if err != nil {
		return Wildcard{}, serrors.Join(ErrInvalidWildcard, err, "pattern", s)
	}
	return Wildcard{pattern: s, re: re}, nil
}

// IsMatch reports whether text matches the whole pattern. The zero value
// matches nothing.
func (w Wildcard) IsMatch(text string) bool {
	return w.re != nil && w.re.MatchString(text)
}

// String returns the original pattern source with '*' intact, never the
// escaped regex form.
func (w Wildcard) String() string {
	return w.pattern
}
