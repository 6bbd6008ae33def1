// Package money provides precise decimal arithmetic for receipt amounts.
// Receipt tokens use the German convention (comma as decimal separator) and
// all derived prices are kept at 2-digit precision.
package money

import (
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ParseDecimal parses a receipt token into a decimal value.
// The first comma is treated as the decimal separator ("1,99" -> 1.99) and
// the result is rounded to 2 decimal places. A token that is not a number
// returns ok=false; a legitimate zero price returns (0, true).
func ParseDecimal(token string) (decimal.Decimal, bool) {
	normalized := strings.Replace(strings.TrimSpace(token), ",", ".", 1)
	if normalized == "" {
		return decimal.Decimal{}, false
	}

	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Decimal{}, false
	}

	return d.Round(2), true
}

// Round2 rounds a value to 2 decimal places (half away from zero).
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Format serializes a value with exactly 2 decimal places ("12.34").
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatEUR renders a value as a euro amount for display ("€12.34").
func FormatEUR(d decimal.Decimal) string {
	cents := d.Round(2).Mul(decimal.New(1, 2)).IntPart()
	return gomoney.New(cents, gomoney.EUR).Display()
}

// ParseQuantity parses a stored quantity ("3", "0.545"). Unlike receipt
// tokens, stored quantities already use the dot separator.
func ParseQuantity(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// Cents returns the value in minor units, for persistence.
func Cents(d decimal.Decimal) int64 {
	return d.Round(2).Mul(decimal.New(1, 2)).IntPart()
}

// FromCents converts minor units back to a decimal value.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
