package order

import (
	"sort"
	"testing"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"track1.mp3", "track2.mp3", -1},
		{"track2.mp3", "track10.mp3", -1},
		{"track10.mp3", "track2.mp3", 1},
		{"track1.mp3", "track1.mp3", 0},
		{"track007.mp3", "track7.mp3", 0},
		{"Track1.mp3", "track1.mp3", 0},
		{"a.mp3", "b.mp3", -1},
		{"a.mp3", "a1.mp3", -1},
		{"10.mp3", "9.mp3", 1},
		{"ep1part2.mp3", "ep1part10.mp3", -1},
		{"ep2part1.mp3", "ep10part1.mp3", -1},
		{"", "a", -1},
		{"a", "", 1},
		{"", "", 0},
		// Digit runs longer than an int64 must still compare correctly.
		{"x99999999999999999998.mp3", "x99999999999999999999.mp3", -1},
	}

	for _, tt := range tests {
		if got := Compare(tt.a, tt.b); got != tt.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCompareSortOrder(t *testing.T) {
	names := []string{"track2.mp3", "track10.mp3", "track1.mp3"}
	sort.Slice(names, func(i, j int) bool { return Compare(names[i], names[j]) < 0 })

	want := []string{"track1.mp3", "track2.mp3", "track10.mp3"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("sorted order = %v, want %v", names, want)
		}
	}
}
