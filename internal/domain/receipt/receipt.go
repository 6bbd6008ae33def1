// Package receipt defines the parsed receipt record: the document header
// (store, date, declared total), its item rows, and the extracted items.
package receipt

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/receipt-scanner/internal/domain/rows"
	"github.com/FACorreiaa/receipt-scanner/internal/domain/tables"
)

// Fatal parse outcomes. Everything else is absorbed into Anomalies: the
// system favors a partial, reviewable result over refusing to produce one.
var (
	// ErrEmptyInput means no row data was supplied at all.
	ErrEmptyInput = errors.New("receipt: no row data to process")
	// ErrUnprocessableDocument means boundary location collapsed the item
	// range to nothing.
	ErrUnprocessableDocument = errors.New("receipt: no item range located")
	// ErrNoItemsFound means the vendor grammar produced zero items.
	ErrNoItemsFound = errors.New("receipt: no items found")
)

// Receipt is one successfully located document. Immutable after creation
// except for attaching the extracted item list and anomalies.
type Receipt struct {
	ID          string
	Store       tables.Vendor
	StoreGuess  bool // true when Store is the low-confidence fallback
	Date        string // ISO YYYY-MM-DD, as printed; not validated
	DeclaredSum *decimal.Decimal // nil when the receipt printed no readable total
	Rows        *rows.Table      // located item range, discounts and total row included

	Items     []Item
	Anomalies []Anomaly
}

// Item is one purchased position. UnitPrice times Quantity is the item's
// contribution to the declared sum, within rounding tolerance.
type Item struct {
	SourceRow int // original row index, for discount correlation
	Name      string
	UnitPrice decimal.Decimal
	Quantity  decimal.Decimal
	Category  string
}

// Total returns the item's contribution to the receipt sum. A zero
// quantity falls back to the bare unit price.
func (i Item) Total() decimal.Decimal {
	if i.Quantity.IsZero() {
		return i.UnitPrice
	}
	return i.UnitPrice.Mul(i.Quantity)
}

// AnomalyKind classifies a non-fatal irregularity absorbed during parsing.
type AnomalyKind string

const (
	// AnomalyUnmatchedDiscount is a discount row with no preceding item.
	AnomalyUnmatchedDiscount AnomalyKind = "unmatched_discount"
	// AnomalyBadDiscountAmount is a discount row whose amount token does
	// not parse, or a positive "discount".
	AnomalyBadDiscountAmount AnomalyKind = "bad_discount_amount"
	// AnomalyMalformedDeposit is a deposit-return row without the expected
	// follow-up price row.
	AnomalyMalformedDeposit AnomalyKind = "malformed_deposit"
	// AnomalyQuantityRejected is a multiplier row whose computed quantity
	// failed the printed cross-check and was forced to 1.
	AnomalyQuantityRejected AnomalyKind = "quantity_rejected"
)

// Anomaly records where and why a best-effort default was applied.
type Anomaly struct {
	Kind   AnomalyKind
	Row    int
	Detail string
}
