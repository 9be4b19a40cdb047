package model

// NodeKind represents the type of a content node
type NodeKind int

const (
	NodeKindUnknown NodeKind = iota
	NodeKindHeading
	NodeKindParagraph
	NodeKindFigure
)

func (k NodeKind) String() string {
	switch k {
	case NodeKindHeading:
		return "Heading"
	case NodeKindParagraph:
		return "Paragraph"
	case NodeKindFigure:
		return "Figure"
	default:
		return "Unknown"
	}
}

// DefaultCaption is the placeholder caption given to every figure
const DefaultCaption = "Figure"

// Node is the interface for all content nodes. Nodes are immutable once
// created.
type Node interface {
	Kind() NodeKind
}

// TextNode is an interface for nodes carrying text
type TextNode interface {
	Node
	GetText() string
}

// Heading represents a heading
type Heading struct {
	Text string
}

func (h *Heading) Kind() NodeKind  { return NodeKindHeading }
func (h *Heading) GetText() string { return h.Text }

// Paragraph represents a paragraph of text
type Paragraph struct {
	Text string
}

func (p *Paragraph) Kind() NodeKind  { return NodeKindParagraph }
func (p *Paragraph) GetText() string { return p.Text }

// Figure represents an image materialized in the media store
type Figure struct {
	Path    string // Location of the image file
	Caption string

	// Pixel dimensions if known (0 otherwise)
	Width  int
	Height int
}

func (f *Figure) Kind() NodeKind  { return NodeKindFigure }
func (f *Figure) GetText() string { return f.Caption }
