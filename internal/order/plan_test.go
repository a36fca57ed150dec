package order

import (
	"fmt"
	"sort"
	"testing"

	"autoradio/internal/source"
)

func itemsFromNames(names []string) []source.Item {
	items := make([]source.Item, len(names))
	for i, name := range names {
		items[i] = source.Item{Path: "/src/" + name, Name: name, Position: i}
	}
	return items
}

func TestComputeNaturalOrder(t *testing.T) {
	plan := Compute(itemsFromNames([]string{"track2.mp3", "track10.mp3", "track1.mp3"}))

	want := []string{"track1.mp3", "track2.mp3", "track10.mp3"}
	for i, entry := range plan.Entries {
		if entry.Item.Name != want[i] {
			t.Errorf("entry %d = %q, want %q", i, entry.Item.Name, want[i])
		}
		if entry.Index != i+1 {
			t.Errorf("entry %d index = %d, want %d", i, entry.Index, i+1)
		}
	}
}

func TestComputeIndicesGapFree(t *testing.T) {
	var names []string
	for i := 150; i >= 1; i-- {
		names = append(names, fmt.Sprintf("episode %d.mp3", i))
	}
	plan := Compute(itemsFromNames(names))

	if len(plan.Entries) != 150 {
		t.Fatalf("expected 150 entries, got %d", len(plan.Entries))
	}
	seen := make(map[int]bool)
	for i, entry := range plan.Entries {
		if entry.Index != i+1 {
			t.Fatalf("index at position %d = %d, want %d", i, entry.Index, i+1)
		}
		if seen[entry.Index] {
			t.Fatalf("duplicate index %d", entry.Index)
		}
		seen[entry.Index] = true
	}
}

func TestComputeTieBreakKeepsEnumerationOrder(t *testing.T) {
	// Same natural-sort key ("track07" vs "track7"); the item discovered
	// first must receive the lower index.
	plan := Compute(itemsFromNames([]string{"track07.mp3", "track7.mp3"}))

	if plan.Entries[0].Item.Name != "track07.mp3" {
		t.Errorf("first entry = %q, want track07.mp3 (filesystem order wins ties)", plan.Entries[0].Item.Name)
	}
	if plan.Entries[1].Item.Name != "track7.mp3" {
		t.Errorf("second entry = %q, want track7.mp3", plan.Entries[1].Item.Name)
	}
}

func TestIndexWidth(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{0, 1}, {1, 1}, {7, 1}, {9, 1},
		{10, 2}, {12, 2}, {99, 2},
		{100, 3}, {150, 3}, {999, 3},
		{1000, 4},
	}
	for _, tt := range tests {
		if got := IndexWidth(tt.n); got != tt.want {
			t.Errorf("IndexWidth(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestFileNamesSortLikeIndices(t *testing.T) {
	// 150 shuffled-ish names; the generated output names must sort, under
	// plain byte ordering, identically to index order.
	var names []string
	for i := 150; i >= 1; i-- {
		names = append(names, fmt.Sprintf("episode %d.mp3", i))
	}
	plan := Compute(itemsFromNames(names))

	generated := make([]string, len(plan.Entries))
	for i, entry := range plan.Entries {
		generated[i] = plan.FileName(entry, entry.Item.Name, 15)
	}

	sorted := make([]string, len(generated))
	copy(sorted, generated)
	sort.Strings(sorted)

	for i := range generated {
		if generated[i] != sorted[i] {
			t.Fatalf("output name order diverges from index order at %d: %q vs %q", i, generated[i], sorted[i])
		}
	}
}

func TestFileName(t *testing.T) {
	plan := Plan{Width: 2}
	entry := Entry{Index: 3}

	got := plan.FileName(entry, "Morning News — Épisode 12", 15)
	want := "03_Morning_News_Ep.mp3"
	if got != want {
		t.Errorf("FileName() = %q, want %q", got, want)
	}
}

func TestComputeEmpty(t *testing.T) {
	plan := Compute(nil)
	if len(plan.Entries) != 0 {
		t.Errorf("expected empty plan, got %d entries", len(plan.Entries))
	}
	if plan.Width != 1 {
		t.Errorf("empty plan width = %d, want 1", plan.Width)
	}
}
