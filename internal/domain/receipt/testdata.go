package receipt

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/receipt-scanner/internal/domain/rows"
	"github.com/FACorreiaa/receipt-scanner/internal/domain/tables"
)

// TestDataGenerator produces realistic receipt fixtures using gofakeit.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	ids   *CounterSource
}

// NewTestDataGenerator creates a generator with a fixed seed so fixtures
// are reproducible across runs.
func NewTestDataGenerator(seed int64) *TestDataGenerator {
	return &TestDataGenerator{
		faker: gofakeit.New(seed),
		ids:   &CounterSource{},
	}
}

var fixtureItems = []struct {
	name     string
	category string
}{
	{"Bananen", "Obst"},
	{"Äpfel", "Obst"},
	{"Tomaten", "Gemüse"},
	{"Gurken", "Gemüse"},
	{"Vollmilch", "Getränke"},
	{"Butter", ""},
	{"Joghurt", ""},
	{"Toast", "Backwaren"},
	{"Salami", "Fleischprodukte"},
	{"Hackfleisch", "Fleischprodukte"},
}

// Item generates one plausible purchase line.
func (g *TestDataGenerator) Item(sourceRow int) Item {
	pick := fixtureItems[g.faker.Number(0, len(fixtureItems)-1)]
	price := decimal.NewFromInt(int64(g.faker.Number(19, 999))).Div(decimal.NewFromInt(100))
	return Item{
		SourceRow: sourceRow,
		Name:      pick.name,
		UnitPrice: price.Round(2),
		Quantity:  decimal.NewFromInt(int64(g.faker.Number(1, 4))),
		Category:  pick.category,
	}
}

// Receipt generates a parsed receipt with the given number of items.
func (g *TestDataGenerator) Receipt(itemCount int) *Receipt {
	stores := []tables.Vendor{
		tables.VendorKaufland, tables.VendorLidl, tables.VendorNetto, tables.VendorEdeka,
	}

	r := &Receipt{
		ID:    g.ids.NextID(),
		Store: stores[g.faker.Number(0, len(stores)-1)],
		Date:  g.faker.DateRange(time.Now().AddDate(-1, 0, 0), time.Now()).Format("2006-01-02"),
	}

	total := decimal.Zero
	for i := 0; i < itemCount; i++ {
		item := g.Item(i + 2)
		r.Items = append(r.Items, item)
		total = total.Add(item.Total())
	}
	total = total.Round(2)
	r.DeclaredSum = &total
	return r
}

// RowTable generates a raw two-column receipt document: store header, item
// rows with comma decimals, a total row, and a date footer. Suitable as
// pipeline input.
func (g *TestDataGenerator) RowTable(itemCount int) *rows.Table {
	lines := [][]string{
		{"Lidl", "sagt", "danke"},
		{g.faker.StreetName(), fmt.Sprint(g.faker.Number(1, 99))},
		{"EUR"},
	}

	total := decimal.Zero
	for i := 0; i < itemCount; i++ {
		item := g.Item(0)
		lines = append(lines, []string{
			item.Name,
			strings.Replace(item.UnitPrice.StringFixed(2), ".", ",", 1),
		})
		total = total.Add(item.UnitPrice)
	}

	lines = append(lines,
		[]string{"SUMME", strings.Replace(total.Round(2).StringFixed(2), ".", ",", 1)},
		[]string{g.faker.DateRange(time.Now().AddDate(-1, 0, 0), time.Now()).Format("02.01.2006"), "12:30"},
	)

	return rows.FromLines(lines)
}
