// Package reflow converts the pages of a PDF into a single semantic HTML
// document.
//
// Each page's text fragments are put in reading order and classified as
// headings or paragraphs; fragments that are too short or start a
// reference list are dropped. Embedded images are written to a fresh
// scratch directory and referenced as figures after the page's text.
//
// Basic usage:
//
//	result, err := reflow.Open("paper.pdf").Convert(ctx)
//	if err != nil {
//	    // handle error
//	}
//	if len(result.Warnings) > 0 {
//	    log.Println("Warnings:", reflow.FormatWarnings(result.Warnings))
//	}
//	err = result.Save("paper.html")
//
// With options:
//
//	result, err := reflow.Open("paper.pdf").
//	    Pages(1, 2, 3).
//	    Workers(4).
//	    Title("Trial results").
//	    Convert(ctx)
//
// Callers that already hold page primitives use Convert with any
// extract.Source:
//
//	src := extract.NewMemory(extract.MemoryPage{Fragments: fragments})
//	result, err := reflow.Convert(ctx, reflow.ConvertRequest{Source: src})
//
// The scratch directory is never removed by this package; callers own its
// lifecycle.
package reflow

import (
	"context"

	"github.com/tsawler/reflow/extract"
	"github.com/tsawler/reflow/model"
)

// Warning is a non-fatal issue encountered during conversion.
type Warning = model.Warning

// FormatWarnings joins warnings into a single line.
func FormatWarnings(warnings []Warning) string {
	return model.FormatWarnings(warnings)
}

// Open returns a Converter for a PDF file. The file is opened and closed by
// the terminal Convert call.
//
// Example:
//
//	result, err := reflow.Open("document.pdf").Convert(ctx)
func Open(filename string) *Converter {
	return &Converter{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromSource returns a Converter over an already-opened source. The caller
// remains responsible for closing it.
//
// Example:
//
//	src, err := extract.OpenPDF("document.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer src.Close()
//	result, err := reflow.FromSource(src).Workers(1).Convert(ctx)
func FromSource(src extract.Source) *Converter {
	return &Converter{
		source:  src,
		options: defaultOptions(),
	}
}

// Convert runs one conversion of req.Source. Pages are composed
// concurrently, but the document always lists them in page order.
// Extraction and scratch-directory failures abort the conversion and no
// document is returned; image files already written are left in place.
func Convert(ctx context.Context, req ConvertRequest, opts ...Option) (*ConvertResult, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return convert(ctx, req, options)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	result := reflow.Must(reflow.Open("document.pdf").Convert(ctx))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
