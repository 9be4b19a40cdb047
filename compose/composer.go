// Package compose turns one page's fragments and images into content nodes
// in reading order.
//
// Fragments are cleaned and sorted top-to-bottom, left-to-right, then
// classified; discarded fragments produce no node. Images follow all text
// nodes in index order, each written through a [Store] and represented by a
// figure carrying the store path:
//
//	c := compose.New()
//	nodes, err := c.Compose(ctx, pageIndex, fragments, images, store)
package compose

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/tsawler/reflow/classify"
	"github.com/tsawler/reflow/layout"
	"github.com/tsawler/reflow/media"
	"github.com/tsawler/reflow/model"
)

// Store materializes image bytes and returns a path for them.
// *media.Store satisfies it.
type Store interface {
	Put(pageIndex, imageIndex int, ext string, data []byte) (string, error)
}

// Config holds configuration for page composition
type Config struct {
	// Classifier decides what each fragment becomes
	// Default: classify.New()
	Classifier classify.Classifier

	// Caption is the caption given to every figure
	// Default: model.DefaultCaption
	Caption string

	// Logger receives per-page debug events
	// Default: discards
	Logger *slog.Logger
}

// DefaultConfig returns the default composition configuration
func DefaultConfig() Config {
	return Config{
		Classifier: classify.New(),
		Caption:    model.DefaultCaption,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Composer builds the node sequence of a page. It holds no per-page state
// and may be shared by concurrent callers.
type Composer struct {
	config   Config
	detector *layout.ReadingOrderDetector
}

// New creates a composer with the default configuration
func New() *Composer {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a composer with a custom configuration. Zero fields
// take their defaults.
func NewWithConfig(config Config) *Composer {
	def := DefaultConfig()
	if config.Classifier == nil {
		config.Classifier = def.Classifier
	}
	if config.Caption == "" {
		config.Caption = def.Caption
	}
	if config.Logger == nil {
		config.Logger = def.Logger
	}
	return &Composer{
		config:   config,
		detector: layout.NewReadingOrderDetector(),
	}
}

// Compose returns the content nodes of one page. The result is never nil;
// an empty page yields an empty slice. A store failure aborts with the
// store's error and images already written stay on disk.
func (c *Composer) Compose(ctx context.Context, pageIndex int, fragments []model.Fragment, images []model.ImagePrimitive, store Store) ([]model.Node, error) {
	order := c.detector.Detect(fragments)
	nodes := make([]model.Node, 0, len(order.Fragments)+len(images))

	discarded := 0
	for _, f := range order.Fragments {
		switch c.config.Classifier.Classify(f.Text) {
		case classify.Heading:
			nodes = append(nodes, &model.Heading{Text: f.Text})
		case classify.Paragraph:
			nodes = append(nodes, &model.Paragraph{Text: f.Text})
		default:
			discarded++
		}
	}

	sorted, err := sortImages(pageIndex, images)
	if err != nil {
		return nil, err
	}

	for _, img := range sorted {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path, err := store.Put(pageIndex, img.Index, img.Ext, img.Data)
		if err != nil {
			return nil, fmt.Errorf("page %d image %d: %w", pageIndex+1, img.Index, err)
		}
		nodes = append(nodes, c.figure(path, img))
	}

	c.config.Logger.Debug("composed page",
		"page", pageIndex+1,
		"nodes", len(nodes),
		"discarded", discarded+order.Dropped,
		"images", len(sorted),
	)

	return nodes, nil
}

// ComposePage is Compose wrapped into a model.Page
func (c *Composer) ComposePage(ctx context.Context, pageIndex int, fragments []model.Fragment, images []model.ImagePrimitive, store Store) (*model.Page, error) {
	nodes, err := c.Compose(ctx, pageIndex, fragments, images, store)
	if err != nil {
		return nil, err
	}
	return model.NewPage(pageIndex, nodes), nil
}

func (c *Composer) figure(path string, img model.ImagePrimitive) *model.Figure {
	fig := &model.Figure{
		Path:    path,
		Caption: c.config.Caption,
		Width:   img.Width,
		Height:  img.Height,
	}
	if fig.Width == 0 || fig.Height == 0 {
		if info, err := media.Probe(img.Data); err == nil {
			fig.Width, fig.Height = info.Width, info.Height
		}
	}
	return fig
}

// sortImages returns a copy of images in ascending index order. Two images
// sharing an index would map to the same file, so that is reported as an
// extraction error rather than silently merged.
func sortImages(pageIndex int, images []model.ImagePrimitive) ([]model.ImagePrimitive, error) {
	sorted := make([]model.ImagePrimitive, len(images))
	copy(sorted, images)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Index < sorted[j].Index
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Index == sorted[i-1].Index {
			return nil, &model.ExtractionError{
				Page: pageIndex,
				Err:  fmt.Errorf("duplicate image index %d", sorted[i].Index),
			}
		}
	}
	return sorted, nil
}
