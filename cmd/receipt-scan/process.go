package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FACorreiaa/receipt-scanner/internal/domain/export"
	"github.com/FACorreiaa/receipt-scanner/internal/domain/ingest"
	"github.com/FACorreiaa/receipt-scanner/internal/domain/receipt"
	"github.com/FACorreiaa/receipt-scanner/internal/domain/rows"
	"github.com/FACorreiaa/receipt-scanner/pkg/money"
)

func newProcessCmd(a *app) *cobra.Command {
	var (
		csvPath  string
		xlsxPath string
		save     bool
	)

	cmd := &cobra.Command{
		Use:   "process <file>...",
		Short: "Parse receipt files (PDF or plain text) and print the extracted items",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var repo *receipt.Repository
			if save {
				var cleanup func()
				var err error
				repo, cleanup, err = a.openRepository(ctx)
				if err != nil {
					return err
				}
				defer cleanup()
			}

			var parsed []*receipt.Receipt
			for _, path := range args {
				r, err := a.processPath(ctx, path, repo)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				printReceipt(cmd, r)
				parsed = append(parsed, r)
			}

			if csvPath != "" {
				if err := writeFile(csvPath, parsed, export.WriteCSV); err != nil {
					return err
				}
			}
			if xlsxPath != "" {
				if err := writeFile(xlsxPath, parsed, export.WriteXLSX); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "write extracted items to a CSV file")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write extracted items to an XLSX workbook")
	cmd.Flags().BoolVar(&save, "save", false, "store parsed receipts in Postgres")

	return cmd
}

func (a *app) processPath(ctx context.Context, path string, repo *receipt.Repository) (*receipt.Receipt, error) {
	table, err := loadTable(path)
	if err != nil {
		return nil, err
	}

	r, err := a.pipe.Process(table)
	if err != nil {
		return nil, err
	}

	if repo != nil {
		if err := repo.Insert(ctx, r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// fileProcessor adapts the app to the inbox sweep's Processor interface:
// parse one file, storing the result when a repository is attached.
type fileProcessor struct {
	app  *app
	repo *receipt.Repository
}

func (p *fileProcessor) ProcessFile(ctx context.Context, path string) error {
	_, err := p.app.processPath(ctx, path, p.repo)
	return err
}

func loadTable(path string) (*rows.Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return ingest.FromPDF(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ingest.FromText(string(data)), nil
}

func printReceipt(cmd *cobra.Command, r *receipt.Receipt) {
	store := string(r.Store)
	if r.StoreGuess {
		store += " (guessed)"
	}
	cmd.Printf("%s  %s  %s\n", r.ID, store, r.Date)

	for _, item := range r.Items {
		cmd.Printf("  %-30s %3s x %8s = %8s  %s\n",
			item.Name, item.Quantity.String(),
			money.FormatEUR(item.UnitPrice), money.FormatEUR(item.Total()),
			item.Category,
		)
	}

	if r.DeclaredSum != nil {
		cmd.Printf("  declared total: %s\n", money.FormatEUR(*r.DeclaredSum))
	}
	for _, anomaly := range r.Anomalies {
		cmd.Printf("  warning: row %d: %s (%s)\n", anomaly.Row, anomaly.Detail, anomaly.Kind)
	}
}

func writeFile(path string, receipts []*receipt.Receipt, write func(w io.Writer, receipts []*receipt.Receipt) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f, receipts); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
