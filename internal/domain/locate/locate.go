// Package locate finds the document structure inside a normalized row
// table: which vendor printed the receipt, the transaction date, the row
// range holding purchasable items, and the declared grand total.
//
// The locator degrades gracefully. A missing vendor keyword falls back to a
// low-confidence default, a missing date falls back to the current date, and
// a missing boundary leaves that side of the table untouched.
package locate

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/receipt-scanner/internal/domain/rows"
	"github.com/FACorreiaa/receipt-scanner/internal/domain/tables"
	"github.com/FACorreiaa/receipt-scanner/pkg/money"
)

// datePattern matches DD.MM.YY and DD.MM.YYYY with '.', '-' or '/' as
// separators, anywhere inside a token.
var datePattern = regexp.MustCompile(`\b(\d{2})[.\-/](\d{2})[.\-/](\d{2}|\d{4})\b`)

// boundaryCandidate restricts boundary keywords to all-letter tokens, so a
// price that happens to contain "EUR" digits-adjacent never opens the range.
var boundaryCandidate = regexp.MustCompile(`^[a-zA-Z]+$`)

// Locator holds the compiled keyword engines for one table set. It is
// immutable after construction and safe for concurrent use.
type Locator struct {
	vendorKeywords *KeywordMatcher
	vendorByHit    []tables.Vendor // vendor for each keyword position
	starts         *KeywordMatcher
	ends           *KeywordMatcher
	discounts      *KeywordMatcher
	info           *KeywordMatcher
}

// New compiles a locator from the configuration tables.
func New(set tables.Set) *Locator {
	var keywords []string
	var byHit []tables.Vendor
	for _, entry := range set.Vendors.Entries {
		for _, kw := range entry.Keywords {
			keywords = append(keywords, kw)
			byHit = append(byHit, entry.Vendor)
		}
	}

	return &Locator{
		vendorKeywords: NewKeywordMatcher(keywords),
		vendorByHit:    byHit,
		starts:         NewKeywordMatcher(set.Keywords.Starts),
		ends:           NewKeywordMatcher(set.Keywords.Ends),
		discounts:      NewKeywordMatcher(set.Keywords.Discounts),
		info:           NewKeywordMatcher(set.Keywords.Info),
	}
}

// IdentifyVendor scans every token in row order and returns the first vendor
// whose keyword occurs as a substring. When no keyword matches anywhere it
// returns the fallback vendor and found=false; the caller is expected to
// surface that for user confirmation.
func (l *Locator) IdentifyVendor(t *rows.Table) (vendor tables.Vendor, found bool) {
	vendor = tables.FallbackVendor
	t.Each(func(index int, tokens []string) bool {
		for _, token := range tokens {
			if hit, ok := l.vendorKeywords.First(token); ok {
				vendor = l.vendorByHit[hit]
				found = true
				return false
			}
		}
		return true
	})
	return vendor, found
}

// ExtractDate returns the first date-looking token as an ISO YYYY-MM-DD
// string. Two-digit years are expanded with the current century taken from
// today. No plausibility check is applied; the printed digits win. When no
// token matches, today's date is returned with found=false.
func (l *Locator) ExtractDate(t *rows.Table, today string) (date string, found bool) {
	date = today
	t.Each(func(index int, tokens []string) bool {
		for _, token := range tokens {
			m := datePattern.FindStringSubmatch(token)
			if m == nil {
				continue
			}
			day, month, year := m[1], m[2], m[3]
			if len(year) == 2 {
				year = today[:2] + year
			}
			date = fmt.Sprintf("%s-%s-%s", year, month, day)
			found = true
			return false
		}
		return true
	})
	return date, found
}

// Cut trims the table to the item range in place. The start boundary row is
// discarded along with everything before it; the end boundary row is kept
// (it carries the total) and everything after it is discarded. A missing
// boundary leaves that side untouched.
func (l *Locator) Cut(t *rows.Table) {
	start, hasStart := l.findBoundary(t, l.starts)
	end, hasEnd := l.findBoundary(t, l.ends)

	if hasEnd {
		for _, idx := range t.Indices() {
			if idx > end {
				t.Delete(idx)
			}
		}
	}
	if hasStart {
		for _, idx := range t.Indices() {
			if idx <= start {
				t.Delete(idx)
			}
		}
	}
}

// findBoundary returns the index of the first row holding an all-letter
// token that contains one of the given keywords.
func (l *Locator) findBoundary(t *rows.Table, km *KeywordMatcher) (index int, ok bool) {
	t.Each(func(idx int, tokens []string) bool {
		for _, token := range tokens {
			if !boundaryCandidate.MatchString(token) {
				continue
			}
			if km.Contains(token) {
				index, ok = idx, true
				return false
			}
		}
		return true
	})
	return index, ok
}

// ExtractTotal reads the declared grand total from the highest surviving
// row. The row must contain an end keyword; otherwise, or when the last
// token does not parse, the total is unknown (ok=false), which is not an
// error.
func (l *Locator) ExtractTotal(t *rows.Table) (decimal.Decimal, bool) {
	max, ok := t.MaxIndex()
	if !ok {
		return decimal.Decimal{}, false
	}
	row, _ := t.Row(max)
	if len(row) == 0 || !l.ends.ContainsAny(row) {
		return decimal.Decimal{}, false
	}
	return money.ParseDecimal(row[len(row)-1])
}
