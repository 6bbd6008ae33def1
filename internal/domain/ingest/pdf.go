package ingest

import (
	"fmt"
	"os"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/FACorreiaa/receipt-scanner/internal/domain/rows"
)

// FromPDF extracts the text layer of a PDF file and tokenizes it. Receipts
// are printed as one continuous strip, so every page's text is concatenated
// into a single row table.
func FromPDF(path string) (*rows.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	return FromPDFBytes(data)
}

// FromPDFBytes extracts and tokenizes PDF text held in memory.
func FromPDFBytes(data []byte) (*rows.Table, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	var pages []string
	for page := 0; page < doc.NumPage(); page++ {
		text, err := doc.Text(page)
		if err != nil {
			return nil, fmt.Errorf("extract pdf page %d: %w", page, err)
		}
		pages = append(pages, strings.TrimRight(text, "\n"))
	}

	return FromText(strings.Join(pages, "\n")), nil
}
