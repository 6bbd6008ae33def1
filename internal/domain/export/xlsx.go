package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/FACorreiaa/receipt-scanner/internal/domain/receipt"
)

const (
	itemsSheet    = "Items"
	receiptsSheet = "Receipts"
)

// WriteXLSX writes a workbook with two sheets: one item row per purchase
// and one summary row per receipt.
func WriteXLSX(w io.Writer, receipts []*receipt.Receipt) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeItemsSheet(f, receipts); err != nil {
		return err
	}
	if err := writeReceiptsSheet(f, receipts); err != nil {
		return err
	}

	// The default sheet is replaced, not kept alongside.
	if err := f.SetSheetName("Sheet1", itemsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func writeItemsSheet(f *excelize.File, receipts []*receipt.Receipt) error {
	header := []any{"Receipt", "Store", "Date", "Name", "Unit Price", "Quantity", "Total", "Category"}
	if err := setRow(f, "Sheet1", 1, header); err != nil {
		return err
	}

	rowNum := 2
	for _, r := range receipts {
		for _, item := range r.Items {
			unitPrice, _ := item.UnitPrice.Float64()
			total, _ := item.Total().Float64()
			quantity, _ := item.Quantity.Float64()
			err := setRow(f, "Sheet1", rowNum, []any{
				r.ID, string(r.Store), r.Date, item.Name,
				unitPrice, quantity, total, item.Category,
			})
			if err != nil {
				return err
			}
			rowNum++
		}
	}
	return nil
}

func writeReceiptsSheet(f *excelize.File, receipts []*receipt.Receipt) error {
	if _, err := f.NewSheet(receiptsSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	header := []any{"Receipt", "Store", "Guessed", "Date", "Declared Sum", "Items", "Anomalies"}
	if err := setRow(f, receiptsSheet, 1, header); err != nil {
		return err
	}

	for i, r := range receipts {
		declared := any(nil)
		if r.DeclaredSum != nil {
			declared, _ = r.DeclaredSum.Float64()
		}
		err := setRow(f, receiptsSheet, i+2, []any{
			r.ID, string(r.Store), r.StoreGuess, r.Date,
			declared, len(r.Items), len(r.Anomalies),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("set row %d on %s: %w", row, sheet, err)
	}
	return nil
}
