package model

import "strings"

// Page represents the content nodes of a single source page
type Page struct {
	Index int    // 0-indexed source page
	Nodes []Node // Reading order
}

// NewPage creates a page. A nil node list is replaced with an empty one.
func NewPage(index int, nodes []Node) *Page {
	if nodes == nil {
		nodes = make([]Node, 0)
	}
	return &Page{Index: index, Nodes: nodes}
}

// Number returns the 1-indexed page number
func (p *Page) Number() int {
	return p.Index + 1
}

// ExtractText concatenates the text of all heading and paragraph nodes
func (p *Page) ExtractText() string {
	var sb strings.Builder
	for _, n := range p.Nodes {
		switch n.Kind() {
		case NodeKindHeading, NodeKindParagraph:
			sb.WriteString(n.(TextNode).GetText())
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Count returns the number of nodes of the given kind
func (p *Page) Count(kind NodeKind) int {
	n := 0
	for _, node := range p.Nodes {
		if node.Kind() == kind {
			n++
		}
	}
	return n
}

// Figures returns all figure nodes on the page
func (p *Page) Figures() []*Figure {
	var figures []*Figure
	for _, n := range p.Nodes {
		if f, ok := n.(*Figure); ok {
			figures = append(figures, f)
		}
	}
	return figures
}
