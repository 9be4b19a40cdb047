package model

// BBox represents a bounding box in top-down page coordinates
type BBox struct {
	Left   float64
	Top    float64 // Grows downward
	Right  float64
	Bottom float64
}

// NewBBox creates a bounding box from its four edges
func NewBBox(left, top, right, bottom float64) BBox {
	return BBox{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Width returns the horizontal extent
func (b BBox) Width() float64 {
	return b.Right - b.Left
}

// Height returns the vertical extent
func (b BBox) Height() float64 {
	return b.Bottom - b.Top
}

// FlipY converts a box from PDF coordinates (Y grows upward, origin at the
// bottom) to top-down coordinates for a page of the given height.
func FlipY(left, bottom, right, top, pageHeight float64) BBox {
	return BBox{
		Left:   left,
		Top:    pageHeight - top,
		Right:  right,
		Bottom: pageHeight - bottom,
	}
}
