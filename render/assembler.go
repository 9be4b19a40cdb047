// Package render assembles per-page content nodes into a single
// self-contained HTML document.
//
// The output is a fixed head (doctype, charset, title and an embedded
// stylesheet), a top-level heading, each page's nodes followed by a page
// separator, and the closing tags. Headings render as <h2>, paragraphs as
// <p> and figures as <figure> blocks referencing the image path.
//
// Text and attribute values are escaped by default. Config.RawText passes
// source text through verbatim, in which case markup-significant characters
// in the source may produce structurally invalid output.
package render

import (
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/reflow/model"
)

// Config holds configuration for document assembly
type Config struct {
	// Title is the document <title>
	// Default: "Converted PDF"
	Title string

	// Heading is the top-level <h1> text
	// Default: "Converted PDF Document"
	Heading string

	// RawText disables escaping of node text and attribute values
	// Default: false
	RawText bool

	// IncludeDimensions adds width/height attributes to figure images when
	// the figure knows them
	// Default: false
	IncludeDimensions bool
}

// DefaultConfig returns the default assembly configuration
func DefaultConfig() Config {
	return Config{
		Title:   DefaultTitle,
		Heading: DefaultHeading,
	}
}

// Assembler renders content nodes to HTML. It performs no I/O of its own and
// holds no mutable state.
type Assembler struct {
	config Config
}

// New creates an assembler with the default configuration
func New() *Assembler {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates an assembler with a custom configuration
func NewWithConfig(config Config) *Assembler {
	return &Assembler{config: config}
}

// Assemble returns the complete document for pages, in page order. The same
// input always yields byte-identical output.
func (a *Assembler) Assemble(pages [][]model.Node) string {
	var sb strings.Builder
	// strings.Builder never returns a write error
	_ = a.Render(&sb, pages)
	return sb.String()
}

// AssembleDocument assembles the pages of doc. A non-empty doc.Title
// replaces the configured heading.
func (a *Assembler) AssembleDocument(doc *model.Document) string {
	asm := a
	if doc.Title != "" {
		cfg := a.config
		cfg.Heading = doc.Title
		asm = NewWithConfig(cfg)
	}
	return asm.Assemble(doc.NodePages())
}

// Render writes the document to w and returns the first write error
func (a *Assembler) Render(w io.Writer, pages [][]model.Node) error {
	ew := &errWriter{w: w}

	ew.write("<!DOCTYPE html><html lang='en'><head><meta charset='UTF-8'><title>")
	ew.write(a.text(a.config.Title))
	ew.write("</title>")
	ew.write(Stylesheet)
	ew.write("</head><body>")
	ew.write("<h1>" + a.text(a.config.Heading) + "</h1>\n")

	for _, nodes := range pages {
		for _, n := range nodes {
			ew.write(a.node(n))
		}
		ew.write(PageSeparator)
	}

	ew.write("</body></html>")
	return ew.err
}

// node renders a single content node. Unknown node types render nothing.
func (a *Assembler) node(n model.Node) string {
	switch v := n.(type) {
	case *model.Heading:
		return "<h2>" + a.text(v.Text) + "</h2>\n"
	case *model.Paragraph:
		return "<p>" + a.text(v.Text) + "</p>\n"
	case *model.Figure:
		var sb strings.Builder
		sb.WriteString(`<figure><img src="`)
		sb.WriteString(a.text(v.Path))
		sb.WriteString(`" alt="Figure"`)
		if a.config.IncludeDimensions && v.Width > 0 && v.Height > 0 {
			sb.WriteString(` width="` + strconv.Itoa(v.Width) + `" height="` + strconv.Itoa(v.Height) + `"`)
		}
		sb.WriteString(` /><figcaption>`)
		sb.WriteString(a.text(v.Caption))
		sb.WriteString("</figcaption></figure>\n")
		return sb.String()
	default:
		return ""
	}
}

func (a *Assembler) text(s string) string {
	if a.config.RawText {
		return s
	}
	return html.EscapeString(s)
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) write(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}
