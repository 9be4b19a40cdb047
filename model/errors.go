package model

import (
	"errors"
	"fmt"
)

var (
	// ErrExtraction matches any ExtractionError
	ErrExtraction = errors.New("extraction failed")
	// ErrIO matches any IOError
	ErrIO = errors.New("i/o failed")
)

// ExtractionError reports that the page-content extractor could not yield
// fragments or images for a page
type ExtractionError struct {
	Page int // 0-indexed, -1 when not page specific
	Err  error
}

func (e *ExtractionError) Error() string {
	if e.Page < 0 {
		return fmt.Sprintf("extraction: %v", e.Err)
	}
	return fmt.Sprintf("extraction: page %d: %v", e.Page+1, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

func (e *ExtractionError) Is(target error) bool { return target == ErrExtraction }

// IOError reports a scratch directory or image write failure
type IOError struct {
	Op   string // "mkdir" or "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }
