package reflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/reflow/classify"
	"github.com/tsawler/reflow/compose"
	"github.com/tsawler/reflow/extract"
	"github.com/tsawler/reflow/media"
	"github.com/tsawler/reflow/model"
	"github.com/tsawler/reflow/render"
)

// ConvertRequest is the input of one conversion.
type ConvertRequest struct {
	// Source yields the page primitives
	Source extract.Source

	// MediaDir is the parent of the scratch directory created for images.
	// Empty means the system temporary directory.
	MediaDir string
}

// ConvertResult is the output of one conversion.
type ConvertResult struct {
	// ID identifies the conversion in logs and in the scratch directory name
	ID string

	// Document is the assembled HTML
	Document string

	// Pages holds the composed nodes of each converted page, in page order
	Pages []*model.Page

	// MediaDir is the scratch directory holding the extracted images
	MediaDir string

	// MediaPaths lists every image written, in document order
	MediaPaths []string

	Warnings []Warning
}

// Save writes the document to path.
func (r *ConvertResult) Save(path string) error {
	if err := os.WriteFile(path, []byte(r.Document), 0644); err != nil {
		return &model.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Converter provides a fluent interface for converting a PDF or any other
// extract.Source. Each configuration method returns a new Converter
// instance, making it safe for concurrent use and allowing method chaining.
type Converter struct {
	// Source (only one is set)
	filename string
	source   extract.Source

	options ConvertOptions
}

// clone creates a shallow copy of the Converter with a deep copy of options.
func (c *Converter) clone() *Converter {
	return &Converter{
		filename: c.filename,
		source:   c.source,
		options:  c.options.clone(),
	}
}

// ============================================================================
// Configuration Methods (return new Converter instance)
// ============================================================================

// Pages specifies which pages to convert (1-indexed).
// Multiple calls are cumulative.
//
// Example:
//
//	result, err := reflow.Open("doc.pdf").Pages(1, 3, 5).Convert(ctx)
func (c *Converter) Pages(pages ...int) *Converter {
	newConv := c.clone()
	WithPages(pages...)(&newConv.options)
	return newConv
}

// Workers sets how many pages are composed concurrently.
// Default: GOMAXPROCS
func (c *Converter) Workers(n int) *Converter {
	newConv := c.clone()
	WithWorkers(n)(&newConv.options)
	return newConv
}

// RawText passes extracted text into the document without HTML escaping.
// Text containing markup characters may then produce invalid HTML.
func (c *Converter) RawText() *Converter {
	newConv := c.clone()
	WithRawText()(&newConv.options)
	return newConv
}

// Title sets the document title and main heading.
func (c *Converter) Title(title string) *Converter {
	newConv := c.clone()
	WithTitle(title)(&newConv.options)
	return newConv
}

// Dimensions emits width and height attributes on figure images.
func (c *Converter) Dimensions() *Converter {
	newConv := c.clone()
	WithDimensions()(&newConv.options)
	return newConv
}

// MediaDir sets the parent directory of the scratch directory.
func (c *Converter) MediaDir(dir string) *Converter {
	newConv := c.clone()
	newConv.options.mediaDir = dir
	return newConv
}

// Logger sets the logger for conversion events.
func (c *Converter) Logger(logger *slog.Logger) *Converter {
	newConv := c.clone()
	WithLogger(logger)(&newConv.options)
	return newConv
}

// Classifier replaces the fragment classifier.
func (c *Converter) Classifier(cl classify.Classifier) *Converter {
	newConv := c.clone()
	WithClassifier(cl)(&newConv.options)
	return newConv
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Convert runs the conversion. A file opened by Open is closed before
// Convert returns.
func (c *Converter) Convert(ctx context.Context) (*ConvertResult, error) {
	src := c.source
	if src == nil {
		if c.filename == "" {
			return nil, fmt.Errorf("no source specified")
		}
		pdfSrc, err := extract.OpenPDF(c.filename)
		if err != nil {
			return nil, err
		}
		defer pdfSrc.Close()
		src = pdfSrc
	}

	return convert(ctx, ConvertRequest{Source: src, MediaDir: c.options.mediaDir}, c.options)
}

// ============================================================================
// Internal helpers
// ============================================================================

// convert runs the pipeline: resolve pages, compose them concurrently into
// per-index slots, then assemble in page order.
func convert(ctx context.Context, req ConvertRequest, opts ConvertOptions) (*ConvertResult, error) {
	if req.Source == nil {
		return nil, fmt.Errorf("no source specified")
	}

	id := uuid.NewString()
	logger := opts.logger.With("conversion_id", id)
	start := time.Now()

	indices, err := resolvePages(opts.pages, req.Source.PageCount())
	if err != nil {
		return nil, err
	}

	store, err := media.New(req.MediaDir, "reflow-"+id+"-")
	if err != nil {
		logger.Error("failed to create media store", "error", err)
		return nil, err
	}

	logger.Info("conversion started",
		"pages", len(indices),
		"workers", opts.workers,
		"media_dir", store.Dir(),
	)

	composer := compose.NewWithConfig(compose.Config{
		Classifier: opts.classifier,
		Logger:     logger,
	})

	pages := make([]*model.Page, len(indices))
	pageWarnings := make([][]Warning, len(indices))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.workers, 1))
	for i, idx := range indices {
		i, idx := i, idx
		g.Go(func() error {
			page, warnings, err := composePage(gctx, req.Source, composer, store, idx)
			if err != nil {
				return err
			}
			pages[i] = page
			pageWarnings[i] = warnings
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("conversion failed", "error", err)
		return nil, err
	}

	// Abandoned before assembly
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := model.NewDocument(opts.title)
	for _, p := range pages {
		doc.AddPage(p)
	}

	renderConfig := render.DefaultConfig()
	renderConfig.RawText = opts.rawText
	renderConfig.IncludeDimensions = opts.dimensions
	if opts.title != "" {
		renderConfig.Title = opts.title
	}
	document := render.NewWithConfig(renderConfig).AssembleDocument(doc)

	warnings := collectWarnings(req.Source, pageWarnings, indices)

	logger.Info("conversion finished",
		"pages", doc.PageCount(),
		"headings", len(doc.Headings()),
		"images", len(store.Paths()),
		"warnings", len(warnings),
		"duration", time.Since(start),
	)

	return &ConvertResult{
		ID:         id,
		Document:   document,
		Pages:      doc.Pages,
		MediaDir:   store.Dir(),
		MediaPaths: doc.MediaPaths(),
		Warnings:   warnings,
	}, nil
}

// composePage extracts and composes one 0-indexed page
func composePage(ctx context.Context, src extract.Source, composer *compose.Composer, store *media.Store, idx int) (*model.Page, []Warning, error) {
	fragments, err := src.Fragments(ctx, idx)
	if err != nil {
		return nil, nil, extractionError(idx, fmt.Errorf("failed to extract fragments: %w", err))
	}
	images, err := src.Images(ctx, idx)
	if err != nil {
		return nil, nil, extractionError(idx, fmt.Errorf("failed to extract images: %w", err))
	}

	page, err := composer.ComposePage(ctx, idx, fragments, images, store)
	if err != nil {
		return nil, nil, err
	}

	var warnings []Warning
	if page.ExtractText() == "" {
		warnings = append(warnings, Warning{Page: idx, Message: "no text content"})
	}
	return page, warnings, nil
}

// extractionError attributes a source failure to the page being extracted.
// Cancellation and errors that already carry a page pass through.
func extractionError(idx int, err error) error {
	var ee *model.ExtractionError
	if errors.As(err, &ee) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &model.ExtractionError{Page: idx, Err: err}
}

// collectWarnings merges composition warnings with those reported by the
// source for the converted pages, ordered by page
func collectWarnings(src extract.Source, pageWarnings [][]Warning, indices []int) []Warning {
	var warnings []Warning
	for _, w := range pageWarnings {
		warnings = append(warnings, w...)
	}

	if ws, ok := src.(extract.WarningSource); ok {
		selected := make(map[int]bool, len(indices))
		for _, idx := range indices {
			selected[idx] = true
		}
		for _, w := range ws.Warnings() {
			if w.Page < 0 || selected[w.Page] {
				warnings = append(warnings, w)
			}
		}
	}

	sort.SliceStable(warnings, func(i, j int) bool {
		return warnings[i].Page < warnings[j].Page
	})
	return warnings
}

// resolvePages converts 1-indexed page numbers to 0-indexed and validates them.
// If no pages specified, returns all pages.
func resolvePages(pages []int, pageCount int) ([]int, error) {
	// If no pages specified, use all pages
	if len(pages) == 0 {
		pageIndices := make([]int, pageCount)
		for i := 0; i < pageCount; i++ {
			pageIndices[i] = i
		}
		return pageIndices, nil
	}

	// Convert 1-indexed to 0-indexed and validate
	seen := make(map[int]bool)
	var pageIndices []int
	for _, p := range pages {
		if p < 1 || p > pageCount {
			return nil, fmt.Errorf("page %d out of range (1-%d)", p, pageCount)
		}
		zeroIndexed := p - 1
		if !seen[zeroIndexed] {
			seen[zeroIndexed] = true
			pageIndices = append(pageIndices, zeroIndexed)
		}
	}

	// Sort pages in order
	sort.Ints(pageIndices)
	return pageIndices, nil
}
