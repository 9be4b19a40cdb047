// Package htmldoc reads an assembled document back into a page outline.
package htmldoc

import (
	"fmt"
	"strings"
)

// EntryType represents the type of an outline entry.
type EntryType int

const (
	EntryHeading EntryType = iota
	EntryParagraph
	EntryFigure
)

// String returns a short label for the entry type.
func (t EntryType) String() string {
	switch t {
	case EntryHeading:
		return "heading"
	case EntryParagraph:
		return "paragraph"
	case EntryFigure:
		return "figure"
	default:
		return "unknown"
	}
}

// Entry is one content block of an assembled page.
type Entry struct {
	Type EntryType
	Text string // Heading or paragraph text, figure caption
	Src  string // Figure image source
}

// Outline is the structure recovered from an assembled document.
type Outline struct {
	Title   string    // <title> of the head
	Heading string    // Top-level <h1>
	Pages   [][]Entry // One slice per page separator
}

// Count returns the number of entries of the given type across all pages.
func (o *Outline) Count(t EntryType) int {
	n := 0
	for _, page := range o.Pages {
		for _, e := range page {
			if e.Type == t {
				n++
			}
		}
	}
	return n
}

// String renders a plain-text preview of the outline.
func (o *Outline) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%d pages)\n", o.Heading, len(o.Pages))
	for i, page := range o.Pages {
		fmt.Fprintf(&sb, "\n--- page %d ---\n", i+1)
		for _, e := range page {
			switch e.Type {
			case EntryHeading:
				fmt.Fprintf(&sb, "## %s\n", e.Text)
			case EntryFigure:
				fmt.Fprintf(&sb, "[%s: %s]\n", e.Text, e.Src)
			default:
				fmt.Fprintf(&sb, "%s\n", e.Text)
			}
		}
	}
	return sb.String()
}
