// Package categorize assigns a category to each extracted item by fuzzy
// matching the cleaned item name against the category term table.
package categorize

import (
	"strings"

	"github.com/FACorreiaa/receipt-scanner/internal/domain/receipt"
	"github.com/FACorreiaa/receipt-scanner/internal/domain/tables"
)

// Matcher holds the category terms in table order, lowercased once at
// construction. Immutable afterwards and safe for concurrent use.
type Matcher struct {
	prefixes   []string
	categories []matchCategory
}

type matchCategory struct {
	name  string
	terms []string // lowercased
}

// NewMatcher compiles a matcher from the configuration tables.
func NewMatcher(set tables.Set) *Matcher {
	m := &Matcher{prefixes: set.Keywords.NamePrefixes}
	for _, entry := range set.Categories.Entries {
		terms := make([]string, len(entry.Terms))
		for i, term := range entry.Terms {
			terms[i] = strings.ToLower(term)
		}
		m.categories = append(m.categories, matchCategory{name: entry.Name, terms: terms})
	}
	return m
}

// Assign sets the Category of every item in place.
func (m *Matcher) Assign(items []receipt.Item) {
	for i := range items {
		items[i].Category = m.Match(items[i].Name)
	}
}

// Match returns the category whose term has the smallest edit distance to
// the cleaned item name. Ties keep the earlier hit, so table order decides
// between equally distant categories. An empty table yields "".
func (m *Matcher) Match(name string) string {
	cleaned := m.CleanName(name)

	best := -1
	bestCategory := ""
	for _, category := range m.categories {
		for _, term := range category.terms {
			d := levenshtein(cleaned, term)
			if best < 0 || d < best {
				best = d
				bestCategory = category.name
				if d == 0 {
					return bestCategory
				}
			}
		}
	}
	return bestCategory
}

// CleanName strips vendor artifacts from the printed name and lowercases
// it. Each prefix is removed at its first occurrence only, in table order,
// so "KLC." is consumed before the bare "KLC" can split it.
func (m *Matcher) CleanName(name string) string {
	for _, prefix := range m.prefixes {
		name = strings.Replace(name, prefix, "", 1)
	}
	return strings.ToLower(strings.TrimSpace(name))
}

// levenshtein returns the edit distance between two strings, computed over
// runes with two rolling rows.
func levenshtein(s1, s2 string) int {
	if len(s1) == 0 {
		return len([]rune(s2))
	}
	if len(s2) == 0 {
		return len([]rune(s1))
	}

	r1 := []rune(s1)
	r2 := []rune(s2)

	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := 0; j <= len(r2); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(r2)]
}
