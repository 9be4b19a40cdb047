package model

// Document represents the reconstructed pages of one conversion
type Document struct {
	Title string
	Pages []*Page
}

// NewDocument creates a new empty document
func NewDocument(title string) *Document {
	return &Document{
		Title: title,
		Pages: make([]*Page, 0),
	}
}

// AddPage adds a page to the document
func (d *Document) AddPage(page *Page) {
	d.Pages = append(d.Pages, page)
}

// PageCount returns the total number of pages
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// NodePages returns the node sequences of all pages in page order
func (d *Document) NodePages() [][]Node {
	out := make([][]Node, len(d.Pages))
	for i, p := range d.Pages {
		out[i] = p.Nodes
	}
	return out
}

// Headings returns the text of all headings in document order
func (d *Document) Headings() []string {
	var headings []string
	for _, page := range d.Pages {
		for _, n := range page.Nodes {
			if h, ok := n.(*Heading); ok {
				headings = append(headings, h.Text)
			}
		}
	}
	return headings
}

// MediaPaths returns the paths of all figures in document order
func (d *Document) MediaPaths() []string {
	var paths []string
	for _, page := range d.Pages {
		for _, f := range page.Figures() {
			paths = append(paths, f.Path)
		}
	}
	return paths
}
