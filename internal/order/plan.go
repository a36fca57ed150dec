// Package order computes the deterministic ordering plan for an export run:
// which source file gets which index, and what each output file is named.
// Output names are built so that plain byte-wise lexicographic sorting, the
// only ordering a naive USB car radio applies, reproduces the index order.
package order

import (
	"fmt"
	"sort"

	"autoradio/internal/source"
)

// Entry is one planned output: a source item with its assigned 1-based index.
type Entry struct {
	Item  source.Item
	Index int
}

// Plan is the immutable index assignment for a run. Indices are gap-free,
// duplicate-free and start at 1.
type Plan struct {
	Entries []Entry
	Width   int // zero-pad width for the index
}

// Compute orders items by natural sort of their filename and assigns
// indices. Names that compare equal keep their original enumeration order,
// so the assignment is a total order even with duplicate keys.
func Compute(items []source.Item) Plan {
	sorted := make([]source.Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Compare(sorted[i].Name, sorted[j].Name) < 0
	})

	entries := make([]Entry, len(sorted))
	for i, item := range sorted {
		entries[i] = Entry{Item: item, Index: i + 1}
	}

	return Plan{Entries: entries, Width: IndexWidth(len(entries))}
}

// IndexWidth returns the minimum digit count needed to represent n:
// 1-9 items need one digit, 10-99 two, and so on.
func IndexWidth(n int) int {
	w := 1
	for n >= 10 {
		n /= 10
		w++
	}
	return w
}

// FileName builds the output filename for an entry: zero-padded index,
// underscore, sanitized title, ".mp3".
func (p Plan) FileName(e Entry, title string, maxTitleLen int) string {
	return fmt.Sprintf("%0*d_%s.mp3", p.Width, e.Index, SanitizeTitle(title, maxTitleLen))
}
