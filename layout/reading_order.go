// Package layout provides reading order detection, which determines the
// sequence in which a page's fragments are read.
package layout

import (
	"sort"
	"strings"

	"github.com/tsawler/reflow/model"
)

// ReadingOrderResult holds the result of reading order analysis
type ReadingOrderResult struct {
	// Fragments in reading order, trimmed, blanks removed
	Fragments []model.Fragment

	// Dropped is the number of blank fragments removed
	Dropped int
}

// ReadingOrderDetector orders a page's fragments top-to-bottom, then
// left-to-right. Multi-column layouts are not detected.
type ReadingOrderDetector struct{}

// NewReadingOrderDetector creates a new reading order detector
func NewReadingOrderDetector() *ReadingOrderDetector {
	return &ReadingOrderDetector{}
}

// Detect cleans the fragments and returns them in reading order. The input
// slice is not modified.
func (d *ReadingOrderDetector) Detect(fragments []model.Fragment) *ReadingOrderResult {
	cleaned := Clean(fragments)
	return &ReadingOrderResult{
		Fragments: SortFragments(cleaned),
		Dropped:   len(fragments) - len(cleaned),
	}
}

// Clean returns a copy of fragments with surrounding whitespace trimmed from
// each text and blank fragments removed.
func Clean(fragments []model.Fragment) []model.Fragment {
	out := make([]model.Fragment, 0, len(fragments))
	for _, f := range fragments {
		if f.IsBlank() {
			continue
		}
		f.Text = strings.TrimSpace(f.Text)
		out = append(out, f)
	}
	return out
}

// SortFragments returns a copy of fragments sorted by ascending top, ties
// broken by ascending left. The sort is stable: fragments equal on both keys
// keep their input order.
func SortFragments(fragments []model.Fragment) []model.Fragment {
	sorted := make([]model.Fragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Before(sorted[i], sorted[j])
	})
	return sorted
}

// Before reports whether a is read before b
func Before(a, b model.Fragment) bool {
	if a.BBox.Top != b.BBox.Top {
		return a.BBox.Top < b.BBox.Top
	}
	return a.BBox.Left < b.BBox.Left
}
