// Package export renders parsed receipts into spreadsheet formats for the
// household bookkeeping tools that consume them.
package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/FACorreiaa/receipt-scanner/internal/domain/receipt"
)

// itemRow is the flat per-item record written to CSV, one row per item.
type itemRow struct {
	ReceiptID string `csv:"receipt_id"`
	Store     string `csv:"store"`
	Date      string `csv:"date"`
	Name      string `csv:"name"`
	UnitPrice string `csv:"unit_price"`
	Quantity  string `csv:"quantity"`
	Total     string `csv:"total"`
	Category  string `csv:"category"`
}

func itemRows(receipts []*receipt.Receipt) []itemRow {
	var out []itemRow
	for _, r := range receipts {
		for _, item := range r.Items {
			out = append(out, itemRow{
				ReceiptID: r.ID,
				Store:     string(r.Store),
				Date:      r.Date,
				Name:      item.Name,
				UnitPrice: item.UnitPrice.StringFixed(2),
				Quantity:  item.Quantity.String(),
				Total:     item.Total().StringFixed(2),
				Category:  item.Category,
			})
		}
	}
	return out
}

// WriteCSV writes every item of every receipt as one CSV row.
func WriteCSV(w io.Writer, receipts []*receipt.Receipt) error {
	if err := gocsv.Marshal(itemRows(receipts), w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
