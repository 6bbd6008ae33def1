// Package ingest turns raw receipt sources into tokenized row tables: one
// table row per visual text line, tokens split on single spaces.
package ingest

import (
	"strings"

	"github.com/FACorreiaa/receipt-scanner/internal/domain/rows"
)

// ocrRepairs maps characters OCR engines commonly misread in receipt fonts
// onto the letter they almost always stand for.
var ocrRepairs = strings.NewReplacer(
	"]", "l",
	")", "l",
)

// FromText tokenizes a text blob into a row table. Lines keep their
// position: blank lines still occupy an index, so downstream row indices
// match what a human sees in the source.
func FromText(text string) *rows.Table {
	return FromLines(strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n"))
}

// FromLines tokenizes pre-split lines into a row table, indexed 0..n-1.
func FromLines(lines []string) *rows.Table {
	t := rows.New()
	for i, line := range lines {
		t.Set(i, strings.Split(ocrRepairs.Replace(line), " "))
	}
	return t
}
