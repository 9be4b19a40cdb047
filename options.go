package reflow

import (
	"io"
	"log/slog"
	"runtime"

	"github.com/tsawler/reflow/classify"
)

// ConvertOptions holds configuration for a conversion.
type ConvertOptions struct {
	// Page selection (1-indexed in API, stored as-is)
	pages []int

	// Concurrency
	workers int

	// Rendering
	rawText    bool
	title      string
	dimensions bool

	// Scratch directory parent, used by Converter only
	mediaDir string

	logger     *slog.Logger
	classifier classify.Classifier
}

// defaultOptions returns the default conversion options.
func defaultOptions() ConvertOptions {
	return ConvertOptions{
		pages:      nil, // nil means all pages
		workers:    runtime.GOMAXPROCS(0),
		rawText:    false,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		classifier: classify.New(),
	}
}

// clone creates a deep copy of ConvertOptions.
func (o ConvertOptions) clone() ConvertOptions {
	newOpts := o
	newOpts.pages = nil

	// Deep copy pages slice
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}

	return newOpts
}

// Option configures a call to Convert.
type Option func(*ConvertOptions)

// WithPages restricts the conversion to the given 1-indexed pages.
func WithPages(pages ...int) Option {
	return func(o *ConvertOptions) {
		o.pages = append(o.pages, pages...)
	}
}

// WithWorkers sets how many pages are composed concurrently. Values below
// one mean one.
func WithWorkers(n int) Option {
	return func(o *ConvertOptions) {
		o.workers = max(n, 1)
	}
}

// WithRawText disables HTML escaping of extracted text.
func WithRawText() Option {
	return func(o *ConvertOptions) {
		o.rawText = true
	}
}

// WithTitle sets the document title and main heading.
func WithTitle(title string) Option {
	return func(o *ConvertOptions) {
		o.title = title
	}
}

// WithDimensions emits width and height attributes on figure images when
// they are known.
func WithDimensions() Option {
	return func(o *ConvertOptions) {
		o.dimensions = true
	}
}

// WithLogger sets the logger for conversion events. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(o *ConvertOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClassifier replaces the fragment classifier. A nil classifier is
// ignored.
func WithClassifier(c classify.Classifier) Option {
	return func(o *ConvertOptions) {
		if c != nil {
			o.classifier = c
		}
	}
}
