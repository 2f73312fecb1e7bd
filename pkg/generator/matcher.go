package generator

import "strings"

// Matcher tests P2PKH addresses against a vanity pattern. Base58 is
// case-sensitive, so no normalization is applied.
type Matcher struct {
	pattern string
}

// NewMatcher creates a matcher for the given pattern.
func NewMatcher(pattern string) *Matcher {
	return &Matcher{pattern: pattern}
}

// MatchesAfterPrefix skips the single version character of the address and
// checks that the remainder starts with the pattern.
func (m *Matcher) MatchesAfterPrefix(addr string) bool {
	if len(addr) < 1 {
		return false
	}
	return strings.HasPrefix(addr[1:], m.pattern)
}
