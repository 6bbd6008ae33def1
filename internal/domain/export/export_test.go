package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/FACorreiaa/receipt-scanner/internal/domain/receipt"
	"github.com/FACorreiaa/receipt-scanner/internal/domain/tables"
)

func sampleReceipts() []*receipt.Receipt {
	sum := decimal.RequireFromString("4.16")
	return []*receipt.Receipt{
		{
			ID:          "r-1",
			Store:       tables.VendorLidl,
			Date:        "2024-03-16",
			DeclaredSum: &sum,
			Items: []receipt.Item{
				{Name: "Bananen", UnitPrice: decimal.RequireFromString("1.08"), Quantity: decimal.NewFromInt(2), Category: "Obst"},
				{Name: "Tomaten", UnitPrice: decimal.RequireFromString("2.00"), Quantity: decimal.NewFromInt(1), Category: "Gemüse"},
			},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleReceipts()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "receipt_id,store,date,name,unit_price,quantity,total,category", lines[0])
	assert.Equal(t, "r-1,Lidl,2024-03-16,Bananen,1.08,2,2.16,Obst", lines[1])
	assert.Equal(t, "r-1,Lidl,2024-03-16,Tomaten,2.00,1,2.00,Gemüse", lines[2])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleReceipts()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	items, err := f.GetRows(itemsSheet)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Bananen", items[1][3])

	summaries, err := f.GetRows(receiptsSheet)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "r-1", summaries[1][0])
	assert.Equal(t, "2", summaries[1][5])
}
