// Package normalize repairs raw receipt rows before parsing: blank tokens
// are trimmed, trailing tax-code markers are dropped, and known OCR
// corruption patterns on price tokens are stripped.
//
// Normalization is idempotent and never adds or removes a row.
package normalize

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/FACorreiaa/receipt-scanner/internal/domain/rows"
)

// Tax-code markers printed after the price column. Redundant with the
// length check (all are shorter than 3 characters) but kept explicit: they
// are the most common trailing artifacts on German receipts.
var taxMarkers = map[string]bool{"A": true, "B": true, "D": true}

// Known recognizer corruption suffixes on price tokens, replaced in order.
var corruptionSuffixes = []string{"+*A", "+*B", "'A", "'B", "*A", "*B", "+A", "+B"}

// digitTaxSuffix matches a digit run immediately followed by a stray A/B,
// e.g. a price read as "5A" or "10B".
var digitTaxSuffix = regexp.MustCompile(`(\d+)[AB]`)

// Apply normalizes every row of the table in place and returns the table.
func Apply(t *rows.Table) *rows.Table {
	t.Each(func(index int, tokens []string) bool {
		tokens = trimBlankTokens(tokens)
		tokens = stripTrailingArtifacts(tokens)
		repairPriceToken(tokens)
		t.Set(index, tokens)
		return true
	})
	return t
}

// trimBlankTokens removes leading and trailing tokens that are empty or a
// single space. Interior blanks are left alone; the grammars filter them
// when assembling item names.
func trimBlankTokens(tokens []string) []string {
	for len(tokens) > 0 && isBlank(tokens[0]) {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && isBlank(tokens[len(tokens)-1]) {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}

func isBlank(token string) bool {
	return token == "" || token == " "
}

// stripTrailingArtifacts deletes tokens from the row's end while they are a
// tax marker or shorter than 3 characters, stopping at the first token that
// is neither. Rows of length 1 are exempt so a lone price survives.
func stripTrailingArtifacts(tokens []string) []string {
	for len(tokens) > 1 {
		last := tokens[len(tokens)-1]
		if taxMarkers[last] || utf8.RuneCountInString(last) < 3 {
			tokens = tokens[:len(tokens)-1]
			continue
		}
		break
	}
	return tokens
}

// repairPriceToken strips OCR corruption from the row's final token.
func repairPriceToken(tokens []string) {
	if len(tokens) == 0 {
		return
	}
	last := tokens[len(tokens)-1]
	for _, suffix := range corruptionSuffixes {
		last = strings.Replace(last, suffix, "", 1)
	}
	last = digitTaxSuffix.ReplaceAllString(last, "$1")
	tokens[len(tokens)-1] = last
}
