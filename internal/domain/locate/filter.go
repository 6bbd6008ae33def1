package locate

import (
	"strings"

	"github.com/FACorreiaa/receipt-scanner/internal/domain/rows"
)

// DiscountRow is a retained discount row: its original index and the raw
// amount token (signed, decimal comma) from the row's end.
type DiscountRow struct {
	Index  int
	Amount string
}

// DiscountRows collects every discount row in index order, keyed by the
// original index so the reconciler can find the nearest preceding item.
func (l *Locator) DiscountRows(t *rows.Table) []DiscountRow {
	var out []DiscountRow
	t.Each(func(index int, tokens []string) bool {
		if len(tokens) > 0 && l.discounts.ContainsAny(tokens) {
			out = append(out, DiscountRow{Index: index, Amount: tokens[len(tokens)-1]})
		}
		return true
	})
	return out
}

// RemoveDiscountRows deletes every row containing a discount keyword.
func (l *Locator) RemoveDiscountRows(t *rows.Table) {
	removeMatchedRows(t, l.discounts)
}

// RemoveInfoRows deletes loyalty/advertising rows that carry no item.
func (l *Locator) RemoveInfoRows(t *rows.Table) {
	removeMatchedRows(t, l.info)
}

// RemoveTotalRow deletes the terminal total row when the highest surviving
// row contains an end keyword. The declared total must be extracted first.
func (l *Locator) RemoveTotalRow(t *rows.Table) {
	max, ok := t.MaxIndex()
	if !ok {
		return
	}
	row, _ := t.Row(max)
	if l.ends.ContainsAny(row) {
		t.Delete(max)
	}
}

// RemoveKgRows deletes per-kilogram unit-price rows ("2,99 /kg"). These
// carry a reference price, not a purchase, for the vendors that apply this
// filter; the Kaufland grammar instead reads the price out of them.
func RemoveKgRows(t *rows.Table) {
	t.Each(func(index int, tokens []string) bool {
		for _, token := range tokens {
			if strings.Contains(token, "/kg") {
				t.Delete(index)
				break
			}
		}
		return true
	})
}

func removeMatchedRows(t *rows.Table, km *KeywordMatcher) {
	t.Each(func(index int, tokens []string) bool {
		if km.ContainsAny(tokens) {
			t.Delete(index)
		}
		return true
	})
}
