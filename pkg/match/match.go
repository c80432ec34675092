// Package match builds tolerant string predicates for keyword, description
// and parent-folder searches.
package match

import (
	"strings"

	"github.com/rubiojr/hoi/pkg/textnorm"
)

// Matcher reports whether a candidate string matches the query it was built from.
type Matcher func(candidate string) bool

// New precomputes the loose, compact and token forms of query and returns a
// Matcher. A candidate matches when its loose form is non-empty and any of
// the following holds:
//
//  1. the candidate loose form contains the query loose form
//  2. the candidate compact form contains the query compact form
//  3. every query token appears somewhere in the candidate loose form
func New(query string) Matcher {
	qLoose := textnorm.Loose(query)
	qCompact := textnorm.Compact(query)
	qTokens := textnorm.Tokens(query)

	return func(candidate string) bool {
		cLoose := textnorm.Loose(candidate)
		if cLoose == "" {
			return false
		}
		if strings.Contains(cLoose, qLoose) {
			return true
		}
		if strings.Contains(strings.ReplaceAll(cLoose, " ", ""), qCompact) {
			return true
		}
		for _, tok := range qTokens {
			if !strings.Contains(cLoose, tok) {
				return false
			}
		}
		return true
	}
}

// Any reports whether m matches at least one of the candidates.
func (m Matcher) Any(candidates ...string) bool {
	for _, c := range candidates {
		if m(c) {
			return true
		}
	}
	return false
}
