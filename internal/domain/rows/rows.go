// Package rows defines the row table shared by every pipeline stage: an
// ordered, sparse mapping from row index to the whitespace-delimited tokens
// of one visual receipt line.
//
// Indices are stable identifiers. Deleting a row leaves a hole instead of
// renumbering the survivors, because discount reconciliation and item
// provenance correlate rows by their original position.
package rows

import "sort"

// Table is an ordered, sparse row-index -> tokens mapping.
// The zero value is not usable; construct with New or FromLines.
type Table struct {
	indices []int // sorted ascending
	tokens  map[int][]string
}

// New returns an empty table.
func New() *Table {
	return &Table{tokens: make(map[int][]string)}
}

// FromLines builds a table from already-tokenized lines, indexed 0..n-1.
func FromLines(lines [][]string) *Table {
	t := New()
	for i, tokens := range lines {
		t.Set(i, tokens)
	}
	return t
}

// Set stores tokens at the given index, inserting or replacing.
func (t *Table) Set(index int, tokens []string) {
	if _, exists := t.tokens[index]; !exists {
		pos := sort.SearchInts(t.indices, index)
		t.indices = append(t.indices, 0)
		copy(t.indices[pos+1:], t.indices[pos:])
		t.indices[pos] = index
	}
	t.tokens[index] = tokens
}

// Row returns the tokens at index, and whether the row exists.
func (t *Table) Row(index int) ([]string, bool) {
	tokens, ok := t.tokens[index]
	return tokens, ok
}

// Delete removes the row at index. Surviving rows keep their indices.
func (t *Table) Delete(index int) {
	if _, exists := t.tokens[index]; !exists {
		return
	}
	delete(t.tokens, index)
	pos := sort.SearchInts(t.indices, index)
	t.indices = append(t.indices[:pos], t.indices[pos+1:]...)
}

// Indices returns the surviving row indices in ascending order.
// The returned slice is a copy and safe to mutate.
func (t *Table) Indices() []int {
	out := make([]int, len(t.indices))
	copy(out, t.indices)
	return out
}

// Len returns the number of surviving rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.indices)
}

// MaxIndex returns the highest surviving index, or ok=false for an empty table.
func (t *Table) MaxIndex() (int, bool) {
	if len(t.indices) == 0 {
		return 0, false
	}
	return t.indices[len(t.indices)-1], true
}

// Clone returns a deep copy. Stages that delete rows work on a clone so the
// receipt keeps its original row range for provenance.
func (t *Table) Clone() *Table {
	c := New()
	for _, idx := range t.indices {
		tokens := make([]string, len(t.tokens[idx]))
		copy(tokens, t.tokens[idx])
		c.Set(idx, tokens)
	}
	return c
}

// Each calls fn for every row in ascending index order. Returning false
// stops the iteration. Deleting the current row inside fn is safe.
func (t *Table) Each(fn func(index int, tokens []string) bool) {
	snapshot := t.Indices()
	for _, idx := range snapshot {
		tokens, ok := t.tokens[idx]
		if !ok {
			continue
		}
		if !fn(idx, tokens) {
			return
		}
	}
}
