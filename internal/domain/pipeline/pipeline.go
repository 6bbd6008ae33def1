// Package pipeline orchestrates the parse stages: normalization, document
// location, vendor grammar parsing, discount reconciliation, and category
// assignment.
package pipeline

import (
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/receipt-scanner/internal/domain/categorize"
	"github.com/FACorreiaa/receipt-scanner/internal/domain/locate"
	"github.com/FACorreiaa/receipt-scanner/internal/domain/normalize"
	"github.com/FACorreiaa/receipt-scanner/internal/domain/receipt"
	"github.com/FACorreiaa/receipt-scanner/internal/domain/rows"
	"github.com/FACorreiaa/receipt-scanner/internal/domain/tables"
	"github.com/FACorreiaa/receipt-scanner/internal/domain/vendor"
	"github.com/FACorreiaa/receipt-scanner/pkg/metrics"
	"github.com/FACorreiaa/receipt-scanner/pkg/money"
)

const dateLayout = "2006-01-02"

var decimalOne = decimal.NewFromInt(1)

// Pipeline converts tokenized receipt rows into parsed receipt records.
// Construct once and share; all state is read-only after New.
type Pipeline struct {
	locator  *locate.Locator
	grammars *vendor.Registry
	matcher  *categorize.Matcher
	ids      receipt.IDSource
	log      *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithIDSource replaces the receipt ID generator.
func WithIDSource(ids receipt.IDSource) Option {
	return func(p *Pipeline) { p.ids = ids }
}

// WithLogger sets the structured logger.
func WithLogger(log *slog.Logger) Option {
	return func(p *Pipeline) { p.log = log }
}

// WithMetrics attaches parse counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// WithClock replaces the wall clock used for date fallbacks.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// New builds a pipeline over the given configuration tables.
func New(set tables.Set, opts ...Option) *Pipeline {
	p := &Pipeline{
		locator:  locate.New(set),
		grammars: vendor.NewRegistry(),
		matcher:  categorize.NewMatcher(set),
		ids:      receipt.UUIDSource{},
		log:      slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process runs the full pipeline: locate the document, then extract and
// categorize its items. The table is modified in place.
func (p *Pipeline) Process(t *rows.Table) (*receipt.Receipt, error) {
	r, err := p.ParseReceipt(t)
	if err != nil {
		return nil, err
	}
	if err := p.ExtractItems(r); err != nil {
		return nil, err
	}
	return r, nil
}

// ParseReceipt locates the document inside the row table: store, date, item
// range, and declared total. The table is normalized and trimmed in place
// and becomes the receipt's row range.
func (p *Pipeline) ParseReceipt(t *rows.Table) (*receipt.Receipt, error) {
	if t.Len() == 0 {
		p.metrics.ParseFailed("empty_input")
		return nil, receipt.ErrEmptyInput
	}

	normalize.Apply(t)

	store, storeFound := p.locator.IdentifyVendor(t)
	today := p.now().Format(dateLayout)
	date, dateFound := p.locator.ExtractDate(t, today)

	p.locator.Cut(t)
	if t.Len() == 0 {
		p.metrics.ParseFailed("no_item_range")
		return nil, receipt.ErrUnprocessableDocument
	}

	r := &receipt.Receipt{
		ID:         p.ids.NextID(),
		Store:      store,
		StoreGuess: !storeFound,
		Date:       date,
		Rows:       t,
	}
	if total, ok := p.locator.ExtractTotal(t); ok {
		r.DeclaredSum = &total
	}

	p.log.Info("receipt located",
		slog.String("receipt_id", r.ID),
		slog.String("store", string(r.Store)),
		slog.Bool("store_guessed", r.StoreGuess),
		slog.String("date", r.Date),
		slog.Bool("date_found", dateFound),
		slog.Bool("total_found", r.DeclaredSum != nil),
		slog.Int("rows", t.Len()),
	)

	return r, nil
}

// ExtractItems parses the located row range with the store's grammar,
// reconciles discount rows into item prices, and assigns categories. The
// receipt's Rows are untouched; the stages work on a clone.
func (p *Pipeline) ExtractItems(r *receipt.Receipt) error {
	work := r.Rows.Clone()

	// Discounts are collected before any filtering so their row indices
	// still point into the same range the items come from.
	discounts := p.locator.DiscountRows(work)
	p.locator.RemoveDiscountRows(work)
	p.locator.RemoveInfoRows(work)
	p.locator.RemoveTotalRow(work)

	entry := p.grammars.Lookup(r.Store)
	if entry.RemoveKgRows {
		locate.RemoveKgRows(work)
	}

	items, anomalies := entry.Grammar.Parse(work)
	if len(items) == 0 {
		p.metrics.ParseFailed("no_items")
		return receipt.ErrNoItemsFound
	}

	anomalies = append(anomalies, p.applyDiscounts(items, discounts)...)
	p.matcher.Assign(items)

	r.Items = items
	r.Anomalies = append(r.Anomalies, anomalies...)

	p.metrics.ReceiptParsed(string(r.Store))
	p.metrics.ItemsExtracted(len(items))
	for _, a := range r.Anomalies {
		p.metrics.Anomaly(string(a.Kind))
	}

	p.log.Info("items extracted",
		slog.String("receipt_id", r.ID),
		slog.Int("items", len(items)),
		slog.Int("discounts", len(discounts)),
		slog.Int("anomalies", len(r.Anomalies)),
	)

	return nil
}

// applyDiscounts folds each discount row into the nearest preceding item:
// the per-unit share of the discount amount is added to the item's unit
// price. Discount amounts print negative; a positive amount is suspicious
// but applied anyway, since some corrections do print positive.
func (p *Pipeline) applyDiscounts(items []receipt.Item, discounts []locate.DiscountRow) []receipt.Anomaly {
	var anomalies []receipt.Anomaly

	for _, d := range discounts {
		amount, ok := money.ParseDecimal(d.Amount)
		if !ok {
			anomalies = append(anomalies, receipt.Anomaly{
				Kind:   receipt.AnomalyBadDiscountAmount,
				Row:    d.Index,
				Detail: "discount amount " + d.Amount + " does not parse",
			})
			continue
		}
		if amount.IsPositive() {
			anomalies = append(anomalies, receipt.Anomaly{
				Kind:   receipt.AnomalyBadDiscountAmount,
				Row:    d.Index,
				Detail: "discount amount " + d.Amount + " is positive, applying anyway",
			})
		}

		target := -1
		for i := range items {
			if items[i].SourceRow < d.Index {
				if target < 0 || items[i].SourceRow > items[target].SourceRow {
					target = i
				}
			}
		}
		if target < 0 {
			anomalies = append(anomalies, receipt.Anomaly{
				Kind:   receipt.AnomalyUnmatchedDiscount,
				Row:    d.Index,
				Detail: "no item precedes this discount row",
			})
			continue
		}

		qty := items[target].Quantity
		if qty.IsZero() {
			qty = decimalOne
		}
		items[target].UnitPrice = money.Round2(items[target].UnitPrice.Add(amount.Div(qty)))
		p.metrics.DiscountApplied()
	}

	return anomalies
}
