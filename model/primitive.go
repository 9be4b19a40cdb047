package model

import "strings"

// Fragment represents a positioned run of text extracted from one page
type Fragment struct {
	Text string
	BBox BBox
}

// NewFragment creates a fragment from raw text and its box edges
func NewFragment(text string, left, top, right, bottom float64) Fragment {
	return Fragment{Text: text, BBox: NewBBox(left, top, right, bottom)}
}

// IsBlank returns true if the fragment has no text after trimming
func (f Fragment) IsBlank() bool {
	return strings.TrimSpace(f.Text) == ""
}

// ImagePrimitive represents one embedded image of a page
type ImagePrimitive struct {
	Data  []byte
	Ext   string // Declared extension without the dot, e.g. "png"
	Index int    // Position within the page's image list, unique per page

	// Pixel dimensions when the extractor knows them (0 otherwise)
	Width  int
	Height int
}
