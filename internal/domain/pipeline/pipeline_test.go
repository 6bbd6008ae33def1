package pipeline

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/receipt-scanner/internal/domain/receipt"
	"github.com/FACorreiaa/receipt-scanner/internal/domain/rows"
	"github.com/FACorreiaa/receipt-scanner/internal/domain/tables"
)

func testPipeline(t *testing.T) *Pipeline {
	t.Helper()
	return New(tables.Defaults(),
		WithIDSource(&receipt.CounterSource{}),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithClock(func() time.Time {
			return time.Date(2024, time.January, 2, 12, 0, 0, 0, time.UTC)
		}),
	)
}

func TestParseReceipt(t *testing.T) {
	t.Run("empty table", func(t *testing.T) {
		p := testPipeline(t)
		_, err := p.ParseReceipt(rows.New())
		assert.ErrorIs(t, err, receipt.ErrEmptyInput)
	})

	t.Run("start boundary on the last row leaves nothing", func(t *testing.T) {
		p := testPipeline(t)
		_, err := p.ParseReceipt(rows.FromLines([][]string{
			{"Butter", "1,99"},
			{"EUR"},
		}))
		assert.ErrorIs(t, err, receipt.ErrUnprocessableDocument)
	})

	t.Run("full header extraction", func(t *testing.T) {
		p := testPipeline(t)
		r, err := p.ParseReceipt(rows.FromLines([][]string{
			{"Lidl", "sagt", "danke"},
			{"Barbarastr.", "3"},
			{"EUR"},
			{"Butter", "1,99"},
			{"Joghurt", "0,59A"},
			{"Rabatt", "-0,50"},
			{"SUMME", "2,08"},
			{"16.03.2024", "14:32"},
		}))
		require.NoError(t, err)

		assert.Equal(t, "r-1", r.ID)
		assert.Equal(t, tables.VendorLidl, r.Store)
		assert.False(t, r.StoreGuess)
		assert.Equal(t, "2024-03-16", r.Date)
		require.NotNil(t, r.DeclaredSum)
		assert.Equal(t, "2.08", r.DeclaredSum.StringFixed(2))

		// Start row and everything around the item range is gone; the end
		// row stays because it carries the total.
		assert.Equal(t, []int{3, 4, 5, 6}, r.Rows.Indices())

		// Normalization ran before location: the tax code is gone.
		tokens, ok := r.Rows.Row(4)
		require.True(t, ok)
		assert.Equal(t, []string{"Joghurt", "0,59"}, tokens)
	})

	t.Run("unknown store falls back with a guess flag", func(t *testing.T) {
		p := testPipeline(t)
		r, err := p.ParseReceipt(rows.FromLines([][]string{
			{"Butter", "1,99"},
		}))
		require.NoError(t, err)
		assert.Equal(t, tables.FallbackVendor, r.Store)
		assert.True(t, r.StoreGuess)
	})

	t.Run("missing date falls back to the clock", func(t *testing.T) {
		p := testPipeline(t)
		r, err := p.ParseReceipt(rows.FromLines([][]string{
			{"Lidl"},
			{"Butter", "1,99"},
		}))
		require.NoError(t, err)
		assert.Equal(t, "2024-01-02", r.Date)
	})

	t.Run("missing total leaves the declared sum nil", func(t *testing.T) {
		p := testPipeline(t)
		r, err := p.ParseReceipt(rows.FromLines([][]string{
			{"Lidl"},
			{"Butter", "1,99"},
		}))
		require.NoError(t, err)
		assert.Nil(t, r.DeclaredSum)
	})
}

func TestExtractItems(t *testing.T) {
	t.Run("discount reduces the nearest preceding item", func(t *testing.T) {
		p := testPipeline(t)
		table := rows.New()
		table.Set(5, []string{"Brot", "2,00"})
		table.Set(6, []string{"Rabatt", "-0,50"})
		r := &receipt.Receipt{ID: "r-test", Store: tables.VendorLidl, Rows: table}

		require.NoError(t, p.ExtractItems(r))
		require.Len(t, r.Items, 1)
		assert.Equal(t, "Brot", r.Items[0].Name)
		assert.Equal(t, "1.50", r.Items[0].UnitPrice.StringFixed(2))
		assert.Empty(t, r.Anomalies)
	})

	t.Run("multi-unit discount is spread per unit", func(t *testing.T) {
		p := testPipeline(t)
		table := rows.New()
		table.Set(1, []string{"Joghurt", "3", "1,77"})
		table.Set(2, []string{"Rabatt", "-0,30"})
		r := &receipt.Receipt{ID: "r-test", Store: tables.VendorLidl, Rows: table}

		require.NoError(t, p.ExtractItems(r))
		require.Len(t, r.Items, 1)
		// 0.59 per unit minus 0.10 per unit.
		assert.Equal(t, "0.49", r.Items[0].UnitPrice.StringFixed(2))
		assert.Equal(t, "3", r.Items[0].Quantity.String())
	})

	t.Run("discount with no preceding item", func(t *testing.T) {
		p := testPipeline(t)
		table := rows.New()
		table.Set(1, []string{"Rabatt", "-0,50"})
		table.Set(2, []string{"Brot", "2,00"})
		r := &receipt.Receipt{ID: "r-test", Store: tables.VendorLidl, Rows: table}

		require.NoError(t, p.ExtractItems(r))
		require.Len(t, r.Anomalies, 1)
		assert.Equal(t, receipt.AnomalyUnmatchedDiscount, r.Anomalies[0].Kind)
		assert.Equal(t, "2.00", r.Items[0].UnitPrice.StringFixed(2))
	})

	t.Run("positive discount is flagged but applied", func(t *testing.T) {
		p := testPipeline(t)
		table := rows.New()
		table.Set(1, []string{"Brot", "2,00"})
		table.Set(2, []string{"Rabatt", "0,50"})
		r := &receipt.Receipt{ID: "r-test", Store: tables.VendorLidl, Rows: table}

		require.NoError(t, p.ExtractItems(r))
		require.Len(t, r.Anomalies, 1)
		assert.Equal(t, receipt.AnomalyBadDiscountAmount, r.Anomalies[0].Kind)
		assert.Equal(t, "2.50", r.Items[0].UnitPrice.StringFixed(2))
	})

	t.Run("unparseable discount amount", func(t *testing.T) {
		p := testPipeline(t)
		table := rows.New()
		table.Set(1, []string{"Brot", "2,00"})
		table.Set(2, []string{"Rabatt", "abc"})
		r := &receipt.Receipt{ID: "r-test", Store: tables.VendorLidl, Rows: table}

		require.NoError(t, p.ExtractItems(r))
		require.Len(t, r.Anomalies, 1)
		assert.Equal(t, receipt.AnomalyBadDiscountAmount, r.Anomalies[0].Kind)
		assert.Equal(t, "2.00", r.Items[0].UnitPrice.StringFixed(2))
	})

	t.Run("no items is fatal", func(t *testing.T) {
		p := testPipeline(t)
		table := rows.New()
		table.Set(0, []string{"Kundenkarte"})
		r := &receipt.Receipt{ID: "r-test", Store: tables.VendorKaufland, Rows: table}
		assert.ErrorIs(t, p.ExtractItems(r), receipt.ErrNoItemsFound)
	})

	t.Run("kg reference rows removed for two-column stores", func(t *testing.T) {
		p := testPipeline(t)
		table := rows.New()
		table.Set(1, []string{"Bananen", "1,08"})
		table.Set(2, []string{"1,99", "/kg"})
		r := &receipt.Receipt{ID: "r-test", Store: tables.VendorLidl, Rows: table}

		require.NoError(t, p.ExtractItems(r))
		require.Len(t, r.Items, 1)
		assert.Equal(t, "Bananen", r.Items[0].Name)
	})

	t.Run("receipt rows survive extraction", func(t *testing.T) {
		p := testPipeline(t)
		table := rows.New()
		table.Set(1, []string{"Brot", "2,00"})
		table.Set(2, []string{"Rabatt", "-0,50"})
		r := &receipt.Receipt{ID: "r-test", Store: tables.VendorLidl, Rows: table}

		require.NoError(t, p.ExtractItems(r))
		assert.Equal(t, []int{1, 2}, r.Rows.Indices())
	})
}

func TestProcess(t *testing.T) {
	p := testPipeline(t)

	r, err := p.Process(rows.FromLines([][]string{
		{"Lidl", "Barbarastr."},
		{"EUR"},
		{"Bananen", "2", "2,16"},
		{"Tomaten", "2,49"},
		{"Rabatt", "-0,49"},
		{"SUMME", "4,16"},
		{"16.03.24"},
	}))
	require.NoError(t, err)

	assert.Equal(t, tables.VendorLidl, r.Store)
	assert.Equal(t, "2024-03-16", r.Date)
	require.NotNil(t, r.DeclaredSum)
	assert.Equal(t, "4.16", r.DeclaredSum.StringFixed(2))

	require.Len(t, r.Items, 2)
	assert.Equal(t, "Bananen", r.Items[0].Name)
	assert.Equal(t, "1.08", r.Items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "2", r.Items[0].Quantity.String())
	assert.Equal(t, "Obst", r.Items[0].Category)

	assert.Equal(t, "Tomaten", r.Items[1].Name)
	assert.Equal(t, "2.00", r.Items[1].UnitPrice.StringFixed(2))
	assert.Equal(t, "Gemüse", r.Items[1].Category)

	assert.Empty(t, r.Anomalies)
}

func TestProcessGeneratedReceipts(t *testing.T) {
	gen := receipt.NewTestDataGenerator(42)
	p := testPipeline(t)

	for i := 0; i < 20; i++ {
		r, err := p.Process(gen.RowTable(5))
		require.NoError(t, err)

		assert.Equal(t, tables.VendorLidl, r.Store)
		assert.False(t, r.StoreGuess)
		require.Len(t, r.Items, 5)
		require.NotNil(t, r.DeclaredSum)

		sum := decimal.Zero
		for _, item := range r.Items {
			sum = sum.Add(item.Total())
		}
		assert.True(t, r.DeclaredSum.Equal(sum.Round(2)),
			"declared %s, items sum to %s", r.DeclaredSum, sum)
	}
}
