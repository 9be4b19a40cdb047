package model

import (
	"fmt"
	"strings"
)

// Warning is a non-fatal issue met during a conversion, such as an image
// that could not be decoded and was skipped
type Warning struct {
	Page    int // 0-indexed, -1 when not page specific
	Message string
}

func (w Warning) String() string {
	if w.Page < 0 {
		return w.Message
	}
	return fmt.Sprintf("page %d: %s", w.Page+1, w.Message)
}

// FormatWarnings joins warnings into a single human readable string
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
