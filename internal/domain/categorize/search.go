package categorize

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// termDocument is one indexed category term.
type termDocument struct {
	Term     string `json:"term"`
	Category string `json:"category"`
}

// Suggestion is one ranked category candidate for an item name.
type Suggestion struct {
	Category string
	Term     string
	Score    float64
}

// TermIndex offers relevance-ranked category suggestions over the term
// table. The strict edit-distance matcher always picks exactly one
// category; the index is for interactive review, where seeing the ranked
// alternatives matters.
type TermIndex struct {
	index   bleve.Index
	matcher *Matcher
}

// NewTermIndex builds an in-memory index over every category term.
func NewTermIndex(m *Matcher) (*TermIndex, error) {
	index, err := bleve.NewMemOnly(termIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create term index: %w", err)
	}

	batch := index.NewBatch()
	for _, category := range m.categories {
		for i, term := range category.terms {
			doc := termDocument{Term: term, Category: category.name}
			if err := batch.Index(fmt.Sprintf("%s/%d", category.name, i), doc); err != nil {
				return nil, fmt.Errorf("index term %q: %w", term, err)
			}
		}
	}
	if err := index.Batch(batch); err != nil {
		return nil, fmt.Errorf("flush term index: %w", err)
	}

	return &TermIndex{index: index, matcher: m}, nil
}

func termIndexMapping() mapping.IndexMapping {
	termField := bleve.NewTextFieldMapping()
	termField.Analyzer = simple.Name

	categoryField := bleve.NewTextFieldMapping()
	categoryField.Analyzer = keyword.Name

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("term", termField)
	docMapping.AddFieldMappingsAt("category", categoryField)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	indexMapping.DefaultAnalyzer = simple.Name
	return indexMapping
}

// Suggest returns up to limit categories ranked by relevance to the item
// name. Bleve's fuzzy query supplies the candidates; names that produce no
// hit at all fall back to subsequence ranking over the raw terms.
func (ti *TermIndex) Suggest(name string, limit int) ([]Suggestion, error) {
	cleaned := ti.matcher.CleanName(name)

	query := bleve.NewMatchQuery(cleaned)
	query.SetField("term")
	query.SetFuzziness(2)

	req := bleve.NewSearchRequestOptions(query, limit, 0, false)
	req.Fields = []string{"term", "category"}

	res, err := ti.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search term index: %w", err)
	}

	var out []Suggestion
	seen := make(map[string]bool)
	for _, hit := range res.Hits {
		category, _ := hit.Fields["category"].(string)
		term, _ := hit.Fields["term"].(string)
		if category == "" || seen[category] {
			continue
		}
		seen[category] = true
		out = append(out, Suggestion{Category: category, Term: term, Score: hit.Score})
	}
	if len(out) > 0 {
		return out, nil
	}

	return ti.subsequenceFallback(cleaned, limit), nil
}

// subsequenceFallback ranks terms by normalized subsequence distance. It
// keeps suggestions useful for heavily misread OCR names where token-level
// search finds nothing.
func (ti *TermIndex) subsequenceFallback(cleaned string, limit int) []Suggestion {
	var out []Suggestion
	seen := make(map[string]bool)
	for _, category := range ti.matcher.categories {
		if seen[category.name] {
			continue
		}
		ranks := fuzzy.RankFindNormalizedFold(cleaned, category.terms)
		if len(ranks) == 0 {
			continue
		}
		best := ranks[0]
		for _, r := range ranks[1:] {
			if r.Distance < best.Distance {
				best = r
			}
		}
		seen[category.name] = true
		out = append(out, Suggestion{
			Category: category.name,
			Term:     best.Target,
			Score:    1 / float64(best.Distance+1),
		})
		if len(out) == limit {
			break
		}
	}
	return out
}

// Close releases the index resources.
func (ti *TermIndex) Close() error {
	return ti.index.Close()
}
