package receipt

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/FACorreiaa/receipt-scanner/internal/domain/tables"
	"github.com/FACorreiaa/receipt-scanner/pkg/money"
)

// ErrNotFound is returned when a receipt ID has no stored record.
var ErrNotFound = errors.New("receipt: not found")

// DB is the subset of pgxpool.Pool the repository needs. Satisfied by
// pgxmock in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repository persists parsed receipts. Amounts are stored as cents to keep
// the schema free of floating point.
type Repository struct {
	db DB
}

// NewRepository creates a receipt repository over the given pool.
func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

// Insert stores a receipt with its items and anomalies in one transaction.
func (r *Repository) Insert(ctx context.Context, rec *Receipt) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var declaredCents *int64
	if rec.DeclaredSum != nil {
		cents := money.Cents(*rec.DeclaredSum)
		declaredCents = &cents
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO receipts (id, store, store_guess, date, declared_sum_cents)
		VALUES ($1, $2, $3, $4, $5)
	`, rec.ID, string(rec.Store), rec.StoreGuess, rec.Date, declaredCents)
	if err != nil {
		return fmt.Errorf("insert receipt %s: %w", rec.ID, err)
	}

	for _, item := range rec.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO receipt_items (receipt_id, source_row, name, unit_price_cents, quantity, category)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, rec.ID, item.SourceRow, item.Name, money.Cents(item.UnitPrice), item.Quantity.String(), item.Category)
		if err != nil {
			return fmt.Errorf("insert item %q: %w", item.Name, err)
		}
	}

	for _, anomaly := range rec.Anomalies {
		_, err = tx.Exec(ctx, `
			INSERT INTO receipt_anomalies (receipt_id, kind, row_index, detail)
			VALUES ($1, $2, $3, $4)
		`, rec.ID, string(anomaly.Kind), anomaly.Row, anomaly.Detail)
		if err != nil {
			return fmt.Errorf("insert anomaly: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Get loads one receipt with its items. The raw row table is not persisted
// and comes back nil.
func (r *Repository) Get(ctx context.Context, id string) (*Receipt, error) {
	var (
		rec           Receipt
		store         string
		declaredCents *int64
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, store, store_guess, date, declared_sum_cents
		FROM receipts WHERE id = $1
	`, id).Scan(&rec.ID, &store, &rec.StoreGuess, &rec.Date, &declaredCents)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select receipt %s: %w", id, err)
	}
	rec.Store = tables.Vendor(store)
	if declaredCents != nil {
		sum := money.FromCents(*declaredCents)
		rec.DeclaredSum = &sum
	}

	rows, err := r.db.Query(ctx, `
		SELECT source_row, name, unit_price_cents, quantity, category
		FROM receipt_items WHERE receipt_id = $1 ORDER BY source_row
	`, id)
	if err != nil {
		return nil, fmt.Errorf("select items for %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item       Item
			priceCents int64
			quantity   string
		)
		if err := rows.Scan(&item.SourceRow, &item.Name, &priceCents, &quantity, &item.Category); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		item.UnitPrice = money.FromCents(priceCents)
		if item.Quantity, err = money.ParseQuantity(quantity); err != nil {
			return nil, fmt.Errorf("parse quantity %q: %w", quantity, err)
		}
		rec.Items = append(rec.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}

	return &rec, nil
}

// ListSummary is one receipt header row, without items.
type ListSummary struct {
	ID         string
	Store      tables.Vendor
	StoreGuess bool
	Date       string
	ItemCount  int
}

// List returns recent receipt headers, newest dates first.
func (r *Repository) List(ctx context.Context, limit int) ([]ListSummary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.id, r.store, r.store_guess, r.date, count(i.receipt_id)
		FROM receipts r
		LEFT JOIN receipt_items i ON i.receipt_id = r.id
		GROUP BY r.id, r.store, r.store_guess, r.date
		ORDER BY r.date DESC, r.id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()

	var out []ListSummary
	for rows.Next() {
		var (
			s     ListSummary
			store string
		)
		if err := rows.Scan(&s.ID, &store, &s.StoreGuess, &s.Date, &s.ItemCount); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		s.Store = tables.Vendor(store)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate summaries: %w", err)
	}
	return out, nil
}
