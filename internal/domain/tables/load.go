package tables

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Set bundles all configuration tables the pipeline consumes.
type Set struct {
	Vendors    VendorTable
	Categories CategoryTable
	Keywords   Keywords
}

// Defaults returns the built-in table set.
func Defaults() Set {
	return Set{
		Vendors:    DefaultVendors(),
		Categories: DefaultCategories(),
		Keywords:   DefaultKeywords(),
	}
}

// fileSchema is the on-disk YAML layout. All sections are optional; a
// missing section keeps its built-in default, so a deployment can override
// just the category terms without restating vendor keywords.
type fileSchema struct {
	Vendors    []VendorEntry   `yaml:"vendors"`
	Categories []CategoryEntry `yaml:"categories"`
	Keywords   *Keywords       `yaml:"keywords"`
}

// LoadFile reads table overrides from a YAML file on top of the defaults.
func LoadFile(path string) (Set, error) {
	set := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return set, fmt.Errorf("read tables file: %w", err)
	}

	var schema fileSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return set, fmt.Errorf("parse tables file %s: %w", path, err)
	}

	if len(schema.Vendors) > 0 {
		set.Vendors = VendorTable{Entries: schema.Vendors}
	}
	if len(schema.Categories) > 0 {
		set.Categories = CategoryTable{Entries: schema.Categories}
	}
	if schema.Keywords != nil {
		set.Keywords = *schema.Keywords
	}

	return set, nil
}
