// Package tables holds the static configuration consumed by the pipeline:
// vendor keyword tables, boundary/filter keywords, and the category term
// table used for fuzzy category assignment.
//
// Tables are built once at process start and shared read-only by all parses.
// Entry order is significant: vendor identification returns the first
// matching vendor, and category ties resolve to the first-listed category.
package tables

// Vendor identifies a supported retailer layout.
type Vendor string

// Supported vendors. Kaufland doubles as the low-confidence fallback when no
// keyword matches; the caller is expected to confirm it.
const (
	VendorKaufland Vendor = "Kaufland"
	VendorLidl     Vendor = "Lidl"
	VendorNetto    Vendor = "Netto"
	VendorEdeka    Vendor = "Edeka"
	VendorAldi     Vendor = "Aldi"
	VendorNorma    Vendor = "Norma"
)

// FallbackVendor is assigned when no vendor keyword matches any token.
const FallbackVendor = VendorKaufland

// VendorEntry maps one vendor to its identifying keywords. Keywords are
// matched as case-sensitive substrings of single tokens; OCR misreadings
// (e.g. "L4DL") are listed as explicit variants.
type VendorEntry struct {
	Vendor   Vendor   `yaml:"vendor"`
	Keywords []string `yaml:"keywords"`
}

// VendorTable is an ordered list of vendor entries. Earlier entries win when
// several vendors' keywords occur in the same document.
type VendorTable struct {
	Entries []VendorEntry `yaml:"vendors"`
}

// CategoryEntry maps one category to its representative terms.
type CategoryEntry struct {
	Name  string   `yaml:"name"`
	Terms []string `yaml:"terms"`
}

// CategoryTable is an ordered list of categories. Insertion order is the
// tie-break order for fuzzy matching.
type CategoryTable struct {
	Entries []CategoryEntry `yaml:"categories"`
}

// Keywords groups the lexical markers used to locate and filter rows.
type Keywords struct {
	// Starts mark where the item listing begins; the start row is discarded.
	Starts []string `yaml:"starts"`
	// Ends mark where the item listing ends; the end row carries the total.
	Ends []string `yaml:"ends"`
	// Discounts mark rows that reduce the preceding item's price.
	Discounts []string `yaml:"discounts"`
	// Info marks loyalty/advertising rows that carry no item.
	Info []string `yaml:"info"`
	// NamePrefixes are vendor artifacts stripped from item names before
	// categorization. Order is significant: longer prefixes come first.
	NamePrefixes []string `yaml:"name_prefixes"`
}

// DefaultVendors returns the built-in vendor keyword table.
func DefaultVendors() VendorTable {
	return VendorTable{Entries: []VendorEntry{
		{VendorKaufland, []string{"Kaufland", "KAUFLAND", "KLC", "Bergsteig", "09621/78260"}},
		{VendorLidl, []string{"Lidl", "LIDL", "Barbarastr", "Hirschauer", "L4DL", "L$DE", "Lid)", "Li1dl", "Lıdl"}},
		{VendorNetto, []string{"Netto", "NETTO", "Mosacher", "Deutschlandcard", "Marken-Discount"}},
		{VendorEdeka, []string{"Edeka", "EDEKA", "Wiesmeth", "Pfistermeisterstr", "G&G", "Kuhnert"}},
		{VendorAldi, []string{"Aldi", "ALDI"}},
		{VendorNorma, []string{"Norma", "NORMA"}},
	}}
}

// DefaultKeywords returns the built-in boundary and filter keywords.
func DefaultKeywords() Keywords {
	return Keywords{
		Starts:    []string{"EUR", "Preis EUR", "PREIS", "Preis"},
		Ends:      []string{"SUMME", "Summe", "zu zahlen", "Zu Zahlen", "Zahlen", "zahlen", "zahlen.", "SUNNE"},
		Discounts: []string{"Rabatt", "RABATT", "Rebatt", "Wıllkommensrabatt", "Willkommensrabatt"},
		Info:      []string{"Zusatzpunkte", "sparen", "Posten:"},
		NamePrefixes: []string{
			"KLC.", "KLC ", "KLC", "G&G_", "G&G",
		},
	}
}

// DefaultCategories returns the built-in category term table.
func DefaultCategories() CategoryTable {
	return CategoryTable{Entries: []CategoryEntry{
		{Name: "Obst", Terms: []string{
			"Ananas", "Ananaszylinder", "Apfel", "Äpfel", "Apfel kg", "Apfel rot", "Aprikosen",
			"Banane", "Bananen", "Bananen kg", "Birnen", "Blaubeeren", "Erdbeeren", "Feigen",
			"Frucht", "Granatapfel", "Grapefruit", "Heidelbeeren", "Himbeeren", "Honigmelone",
			"Kaktusfeigen", "Kirschen", "Kiwi", "Limetten", "Mandarinen", "Mango", "Melone",
			"Nektarinen", "Orangen", "Papaya", "Passionsfrucht", "Pfirsiche", "Pflaumen",
			"Plattnektarinen", "Plattpfirsiche", "Trauben", "Trauben dunkel", "Trauben hell",
			"Trauben kernlos", "Wassermelone", "Weintrauben", "Zitronen", "Zuckermelone",
		}},
		{Name: "Gemüse", Terms: []string{
			"Aubergine ", "Avocado", "Baby Spinat", "Blattspinat", "Blaukraut", "Blumenkohl",
			"Brokkoli", "Cherrytomaten", "Dattelcherrytomaten", "Eisbergsalat", "Erbse", "Erbsen",
			"Feldsalat", "Fenchel", "Grünkohl", "Gurke Stk", "Gurken", "Ingwer", "Karotten",
			"Kartoffeln", "Knoblauch", "Kohlrabi", "Kopfsalat", "Kürbis", "Lauch", "Lauchzwiebeln",
			"Mais", "Mais Stk", "Mangold", "Mini Möhren", "Miniromato", "Möhren", "Paprika",
			"Paprika rot", "Paprika rot, spitz", "Petersilie", "Pflücksalat", "Pflücksalat mediter.",
			"Radieschen", "Rahmspinat", "Rosenkohl", "Rote Bete", "Rotkohl", "Rucola", "Salat",
			"Schnittlauch", "Sellerie", "Spargel", "Spinat", "Spitzpaprika", "Stangenspargel",
			"Strauchtomaten", "Süßkartoffeln", "TO Miniroma", "Tomate", "Tomaten", "Weißkohl",
			"Zucchini", "Zwiebel rot", "Zwiebeln",
		}},
		{Name: "Leergut", Terms: []string{
			"Pfand", "Leergut", "Pfandartikel", "Pfand 0,25",
		}},
		{Name: "Fleischprodukte", Terms: []string{
			"Aoste Stickado & Brot", "Bayer. Leberk", "Bayerischer Leberkäse", "Cevapcici",
			"Chicken", "Chicken Nuggets", "Cordon Bleu", "Gefl. Lyoner", "Gefl. Mortadella",
			"Geflügelleberwurst", "Geflügel-Mortadella", "Geschnet.", "Geschnetzeltes",
			"Grillschinken", "Gutsleberwurst", "Gyros", "Hä.Geschnetz.", "Hackfleisch",
			"Hackfleisch gemischt", "Haenchenbrust", "Hähn.-Geschnetzeltes", "Hähnchenbr. hauchd.",
			"Hänchen", "Hänchen Schnitzel", "Hänchenbr.", "Hänchenbrust", "Huhn", "Hünchenbrust",
			"Karli Knusper Dinos", "Katenschinken", "Katenschinken Würfel", "Leberkäse",
			"Leberwurst", "Lyoner", "Mortadella", "P.Hackfleisch", "Pfefferbeißer", "Pommersche",
			"Puten Mini-Steaks", "Puten-Geschnetzeltes", "Puten-Mini-Steaks", "Putenschni.",
			"Putenschnitzel", "Rinder Cevapcici", "Rinderhackfleisch", "Roast Chicken",
			"Royal Hänchenbrust", "Rü. Schnitzel veg.", "Rü.Pomm.Schnitll.", "Rü.Salami Peperoni",
			"Rüg. Schinkensp. Pf.", "Rügenwalder", "Salami", "Salami Sticks", "Schinken",
			"Schinkenwürfel", "Schnitzel", "Steak", "Stickado", "Stickado Hähnchen",
			"Truthahnbrust", "Truthahnschinken", "Wurst/Schinken",
		}},
		{Name: "Backwaren", Terms: []string{
			"Breze", "Brezel", "Toast", "Buttertoast", "Weizensandwich", "KLC Weizensandwich",
			"Zwiebelbaguette", "Baguette", "Laugenstange", "Croissant", "Laugenbrezel",
		}},
		{Name: "Getränke", Terms: []string{
			"Coca Cola Zero", "Coke Zero", "Coca Cola", "Fanta", "Sprite", "Wasser",
		}},
	}}
}
