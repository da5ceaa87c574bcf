// Package catalog enumerates the games of the active configuration and
// loads their text documents.
package catalog

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Entry is one listed game: a display name unique within its catalog and
// the locator of its text document.
type Entry struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

// Catalog is an ordered, name-indexed set of entries. It is immutable once
// built and safe for concurrent reads.
type Catalog struct {
	entries []Entry
	byName  map[string]int
}

// New orders entries by name, ignoring case and accents, and drops entries
// whose name was already seen. Dropped names are returned.
func New(entries []Entry) (*Catalog, []string) {
	c := &Catalog{byName: make(map[string]int, len(entries))}
	seen := make(map[string]bool, len(entries))
	var dropped []string
	for _, e := range entries {
		if seen[e.Name] {
			dropped = append(dropped, e.Name)
			continue
		}
		seen[e.Name] = true
		c.entries = append(c.entries, e)
	}

	// Collators keep internal buffers, so each sort gets its own.
	col := collate.New(language.Und, collate.IgnoreCase, collate.IgnoreDiacritics)
	slices.SortStableFunc(c.entries, func(a, b Entry) int {
		if n := col.CompareString(a.Name, b.Name); n != 0 {
			return n
		}
		return strings.Compare(a.Name, b.Name)
	})
	for i, e := range c.entries {
		c.byName[e.Name] = i
	}
	return c, dropped
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Entries returns the entries in display order.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}
	return slices.Clone(c.entries)
}

// Lookup finds an entry by its exact name.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	i, ok := c.byName[name]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Filter returns the entries whose name contains query, ignoring case. An
// empty query matches everything.
func (c *Catalog) Filter(query string) []Entry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return c.Entries()
	}
	var out []Entry
	for _, e := range c.Entries() {
		if strings.Contains(strings.ToLower(e.Name), query) {
			out = append(out, e)
		}
	}
	return out
}
