package locate

import "github.com/cloudflare/ahocorasick"

// KeywordMatcher answers substring-containment queries for a fixed keyword
// list using the Aho-Corasick algorithm: one pass over the token regardless
// of how many keywords are loaded.
//
// Matching is case-sensitive. The keyword tables carry explicit casing and
// OCR variants instead ("LIDL", "L4DL"), mirroring how receipts actually
// print them.
type KeywordMatcher struct {
	matcher  *ahocorasick.Matcher
	keywords []string
}

// NewKeywordMatcher builds a matcher over the given keywords. Keyword order
// is preserved: First reports the earliest-listed keyword found.
func NewKeywordMatcher(keywords []string) *KeywordMatcher {
	return &KeywordMatcher{
		matcher:  ahocorasick.NewStringMatcher(keywords),
		keywords: keywords,
	}
}

// Contains reports whether any keyword occurs as a substring of the token.
func (m *KeywordMatcher) Contains(token string) bool {
	if len(m.keywords) == 0 {
		return false
	}
	return len(m.matcher.Match([]byte(token))) > 0
}

// First returns the list position of the earliest-listed keyword occurring
// in the token, or ok=false when none matches.
func (m *KeywordMatcher) First(token string) (int, bool) {
	if len(m.keywords) == 0 {
		return 0, false
	}
	hits := m.matcher.Match([]byte(token))
	if len(hits) == 0 {
		return 0, false
	}
	best := hits[0]
	for _, h := range hits[1:] {
		if h < best {
			best = h
		}
	}
	return best, true
}

// ContainsAny reports whether any token of the row matches.
func (m *KeywordMatcher) ContainsAny(tokens []string) bool {
	for _, token := range tokens {
		if m.Contains(token) {
			return true
		}
	}
	return false
}
