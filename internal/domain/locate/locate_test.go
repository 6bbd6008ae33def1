package locate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/receipt-scanner/internal/domain/rows"
	"github.com/FACorreiaa/receipt-scanner/internal/domain/tables"
)

func newLocator() *Locator {
	return New(tables.Defaults())
}

func TestIdentifyVendor(t *testing.T) {
	l := newLocator()

	t.Run("keyword as substring of token", func(t *testing.T) {
		table := rows.FromLines([][]string{
			{"Filiale", "Muenchen"},
			{"LIDL-Dankt", "GmbH"},
		})
		vendor, found := l.IdentifyVendor(table)
		assert.True(t, found)
		assert.Equal(t, tables.VendorLidl, vendor)
	})

	t.Run("OCR misreading variant", func(t *testing.T) {
		table := rows.FromLines([][]string{{"L4DL", "Filiale"}})
		vendor, found := l.IdentifyVendor(table)
		assert.True(t, found)
		assert.Equal(t, tables.VendorLidl, vendor)
	})

	t.Run("first matching row wins", func(t *testing.T) {
		table := rows.FromLines([][]string{
			{"EDEKA", "Wiesmeth"},
			{"Netto", "Marken-Discount"},
		})
		vendor, found := l.IdentifyVendor(table)
		assert.True(t, found)
		assert.Equal(t, tables.VendorEdeka, vendor)
	})

	t.Run("table order breaks ties inside one token", func(t *testing.T) {
		// Contains keywords of both Kaufland ("KLC") and Edeka ("G&G");
		// Kaufland is listed first.
		table := rows.FromLines([][]string{{"KLC-G&G"}})
		vendor, found := l.IdentifyVendor(table)
		assert.True(t, found)
		assert.Equal(t, tables.VendorKaufland, vendor)
	})

	t.Run("fallback when nothing matches", func(t *testing.T) {
		table := rows.FromLines([][]string{{"Unbekannter", "Laden"}})
		vendor, found := l.IdentifyVendor(table)
		assert.False(t, found)
		assert.Equal(t, tables.FallbackVendor, vendor)
	})
}

func TestExtractDate(t *testing.T) {
	l := newLocator()
	today := "2026-08-29"

	t.Run("four digit year", func(t *testing.T) {
		table := rows.FromLines([][]string{{"Datum:", "14.03.2024"}})
		date, found := l.ExtractDate(table, today)
		assert.True(t, found)
		assert.Equal(t, "2024-03-14", date)
	})

	t.Run("two digit year expanded with current century", func(t *testing.T) {
		table := rows.FromLines([][]string{{"14.03.24"}})
		date, found := l.ExtractDate(table, today)
		assert.True(t, found)
		assert.Equal(t, "2024-03-14", date)
	})

	t.Run("dash and slash separators", func(t *testing.T) {
		table := rows.FromLines([][]string{{"14-03-2024"}, {"15/03/2024"}})
		date, _ := l.ExtractDate(table, today)
		assert.Equal(t, "2024-03-14", date) // first match wins
	})

	t.Run("date embedded in a longer token", func(t *testing.T) {
		table := rows.FromLines([][]string{{"Bon:14.03.24"}})
		date, found := l.ExtractDate(table, today)
		assert.True(t, found)
		assert.Equal(t, "2024-03-14", date)
	})

	t.Run("no date falls back to today", func(t *testing.T) {
		table := rows.FromLines([][]string{{"keine", "Zahlen"}})
		date, found := l.ExtractDate(table, today)
		assert.False(t, found)
		assert.Equal(t, today, date)
	})
}

func TestCut(t *testing.T) {
	l := newLocator()

	t.Run("both boundaries", func(t *testing.T) {
		table := rows.FromLines([][]string{
			{"Kaufland", "Filiale"},   // 0: header
			{"Preis", "EUR"},          // 1: start boundary
			{"Butter", "1,99"},        // 2: item
			{"Milch", "1,09"},         // 3: item
			{"SUMME", "3,08"},         // 4: end boundary, kept
			{"Kartenzahlung", "3,08"}, // 5: footer
			{"Vielen", "Dank"},        // 6: footer
		})

		l.Cut(table)

		assert.Equal(t, []int{2, 3, 4}, table.Indices())
	})

	t.Run("boundary containment start < idx <= end", func(t *testing.T) {
		table := rows.FromLines([][]string{
			{"EUR"},
			{"Butter", "1,99"},
			{"SUMME", "1,99"},
			{"Footer"},
		})

		l.Cut(table)

		for _, idx := range table.Indices() {
			assert.Greater(t, idx, 0)
			assert.LessOrEqual(t, idx, 2)
		}
	})

	t.Run("numeric token cannot be a boundary", func(t *testing.T) {
		table := rows.FromLines([][]string{
			{"PreisEUR2,99"}, // contains a start keyword but is not all-letter
			{"Butter", "1,99"},
		})

		l.Cut(table)

		assert.Equal(t, []int{0, 1}, table.Indices())
	})

	t.Run("missing end leaves tail untouched", func(t *testing.T) {
		table := rows.FromLines([][]string{
			{"EUR"},
			{"Butter", "1,99"},
			{"Milch", "1,09"},
		})

		l.Cut(table)

		assert.Equal(t, []int{1, 2}, table.Indices())
	})

	t.Run("missing start leaves head untouched", func(t *testing.T) {
		table := rows.FromLines([][]string{
			{"Butter", "1,99"},
			{"SUMME", "1,99"},
			{"Footer"},
		})

		l.Cut(table)

		assert.Equal(t, []int{0, 1}, table.Indices())
	})
}

func TestExtractTotal(t *testing.T) {
	l := newLocator()

	t.Run("total from end row", func(t *testing.T) {
		table := rows.FromLines([][]string{
			{"Butter", "1,99"},
			{"SUMME", "12,34"},
		})
		total, ok := l.ExtractTotal(table)
		require.True(t, ok)
		assert.Equal(t, "12.34", total.StringFixed(2))
	})

	t.Run("no end keyword means unknown", func(t *testing.T) {
		table := rows.FromLines([][]string{
			{"Butter", "1,99"},
		})
		_, ok := l.ExtractTotal(table)
		assert.False(t, ok)
	})

	t.Run("unparseable last token means unknown", func(t *testing.T) {
		table := rows.FromLines([][]string{
			{"SUMME", "abc"},
		})
		_, ok := l.ExtractTotal(table)
		assert.False(t, ok)
	})

	t.Run("empty table", func(t *testing.T) {
		_, ok := l.ExtractTotal(rows.New())
		assert.False(t, ok)
	})
}

func TestFilters(t *testing.T) {
	l := newLocator()

	t.Run("discount rows collected then removed", func(t *testing.T) {
		table := rows.FromLines([][]string{
			{"Butter", "1,99"},
			{"Rabatt", "-0,50"},
			{"Milch", "1,09"},
			{"Willkommensrabatt", "-1,00"},
		})

		discounts := l.DiscountRows(table)
		require.Len(t, discounts, 2)
		assert.Equal(t, DiscountRow{Index: 1, Amount: "-0,50"}, discounts[0])
		assert.Equal(t, DiscountRow{Index: 3, Amount: "-1,00"}, discounts[1])

		l.RemoveDiscountRows(table)
		assert.Equal(t, []int{0, 2}, table.Indices())
	})

	t.Run("info rows removed", func(t *testing.T) {
		table := rows.FromLines([][]string{
			{"Butter", "1,99"},
			{"Zusatzpunkte", "15"},
			{"Sie", "sparen", "0,45"},
		})

		l.RemoveInfoRows(table)
		assert.Equal(t, []int{0}, table.Indices())
	})

	t.Run("total row removed only when terminal row ends the receipt", func(t *testing.T) {
		table := rows.FromLines([][]string{
			{"Butter", "1,99"},
			{"SUMME", "1,99"},
		})
		l.RemoveTotalRow(table)
		assert.Equal(t, []int{0}, table.Indices())

		l.RemoveTotalRow(table) // terminal row is now an item, kept
		assert.Equal(t, []int{0}, table.Indices())
	})

	t.Run("kg reference rows removed", func(t *testing.T) {
		table := rows.FromLines([][]string{
			{"Bananen", "1,52"},
			{"1,29", "EUR/kg"},
		})
		RemoveKgRows(table)
		assert.Equal(t, []int{0}, table.Indices())
	})
}
