// Package extract provides the page-content extractors the pipeline reads
// from.
//
// A [Source] yields, per 0-indexed page, positioned text fragments and
// embedded raster images. [OpenPDF] reads them from a PDF file; [Memory]
// serves primitives the caller already holds:
//
//	src, err := extract.OpenPDF("paper.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer src.Close()
//	fragments, err := src.Fragments(ctx, 0)
//
// Failures are reported as *model.ExtractionError.
package extract

import (
	"context"
	"fmt"

	"github.com/tsawler/reflow/model"
)

// Source is a page-content extractor. Fragments are returned in unspecified
// order; images carry an index unique within their page.
type Source interface {
	PageCount() int
	Fragments(ctx context.Context, page int) ([]model.Fragment, error)
	Images(ctx context.Context, page int) ([]model.ImagePrimitive, error)
}

// WarningSource is implemented by sources that skip content they cannot
// decode instead of failing
type WarningSource interface {
	Warnings() []model.Warning
}

// MemoryPage holds the primitives of one in-memory page. A non-nil Err is
// returned by both Fragments and Images for that page.
type MemoryPage struct {
	Fragments []model.Fragment
	Images    []model.ImagePrimitive
	Err       error
}

// Memory is a Source over primitives held in memory
type Memory struct {
	pages []MemoryPage
}

// NewMemory creates an in-memory source with the given pages
func NewMemory(pages ...MemoryPage) *Memory {
	return &Memory{pages: pages}
}

// PageCount returns the number of pages
func (m *Memory) PageCount() int {
	return len(m.pages)
}

// Fragments returns a copy of the page's fragments
func (m *Memory) Fragments(ctx context.Context, page int) ([]model.Fragment, error) {
	p, err := m.page(ctx, page)
	if err != nil {
		return nil, err
	}
	return append([]model.Fragment(nil), p.Fragments...), nil
}

// Images returns a copy of the page's images
func (m *Memory) Images(ctx context.Context, page int) ([]model.ImagePrimitive, error) {
	p, err := m.page(ctx, page)
	if err != nil {
		return nil, err
	}
	return append([]model.ImagePrimitive(nil), p.Images...), nil
}

func (m *Memory) page(ctx context.Context, page int) (*MemoryPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if page < 0 || page >= len(m.pages) {
		return nil, &model.ExtractionError{Page: page, Err: fmt.Errorf("page out of range (have %d)", len(m.pages))}
	}
	p := &m.pages[page]
	if p.Err != nil {
		return nil, &model.ExtractionError{Page: page, Err: p.Err}
	}
	return p, nil
}
