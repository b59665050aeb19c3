// Ordered filter catalog with quick keys and display numbering
package catalog

import (
	"errors"
	"fmt"
	"strconv"
)

// Entry is one selectable slot of the catalog. An empty ID is the passthrough
// filter. IDs may repeat; the position in the catalog is the selection key.
type Entry struct {
	ID       string
	Name     string
	Category Category
}

// Catalog is the ordered, read-only list of filters.
type Catalog struct {
	entries []Entry
	quick   map[rune]int
}

// New builds a catalog from ordered (id, name) entries and quick-key bindings.
// Categories are derived from the identifiers.
func New(entries []Entry, quick map[rune]int) (*Catalog, error) {
	if len(entries) < 2 {
		return nil, errors.New("catalog needs at least two entries")
	}

	c := &Catalog{
		entries: make([]Entry, len(entries)),
		quick:   make(map[rune]int, len(quick)),
	}
	for i, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("catalog entry %d has no name", i)
		}
		e.Category = Classify(e.ID)
		c.entries[i] = e
	}
	for r, idx := range quick {
		if idx < 0 || idx >= len(entries) {
			return nil, fmt.Errorf("quick key %q bound to position %d outside catalog of %d", r, idx, len(entries))
		}
		c.quick[r] = idx
	}
	return c, nil
}

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.entries) }

// At returns the entry at position i. It panics on an out-of-range position,
// like a slice index.
func (c *Catalog) At(i int) Entry { return c.entries[i] }

// Entries returns a copy of the ordered entries.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// QuickKey returns the position bound to r.
func (c *Catalog) QuickKey(r rune) (int, bool) {
	idx, ok := c.quick[r]
	return idx, ok
}

// QuickKeys returns a copy of the quick-key table.
func (c *Catalog) QuickKeys() map[rune]int {
	out := make(map[rune]int, len(c.quick))
	for r, idx := range c.quick {
		out[r] = idx
	}
	return out
}

// IndexOf returns the first position holding id.
func (c *Catalog) IndexOf(id string) (int, bool) {
	for i, e := range c.entries {
		if e.ID == id {
			return i, true
		}
	}
	return 0, false
}

// Wrap folds any integer position onto [0, Len).
func (c *Catalog) Wrap(i int) int {
	n := len(c.entries)
	return ((i % n) + n) % n
}

// DisplayNumberToIndex maps a user-facing number to a catalog position.
// Position 0 is reserved for its quick key and has no number: 0 maps to
// position 1 and n maps to n+1 for 1 <= n < Len-1.
func (c *Catalog) DisplayNumberToIndex(n int) (int, bool) {
	switch {
	case n == 0:
		return 1, true
	case n >= 1 && n < len(c.entries)-1:
		return n + 1, true
	default:
		return 0, false
	}
}

// DisplayLabel is the label shown next to position i in the overlay list.
func (c *Catalog) DisplayLabel(i int) string {
	if i == 0 {
		return "S"
	}
	return strconv.Itoa(i - 1)
}

// MaxDisplayNumber is the largest number DisplayNumberToIndex accepts.
func (c *Catalog) MaxDisplayNumber() int { return len(c.entries) - 2 }

// ResolveDisplay parses a typed display number and maps it to a position.
func (c *Catalog) ResolveDisplay(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return c.DisplayNumberToIndex(n)
}
