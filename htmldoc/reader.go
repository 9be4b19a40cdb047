package htmldoc

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
)

// separatorClass marks the page separator <hr> of an assembled document.
const separatorClass = "nejm"

// Open parses an assembled HTML file.
func Open(filename string) (*Outline, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads an assembled document and recovers its title, top-level
// heading and per-page entries. Content after the last page separator is
// returned as a final page.
func Parse(r io.Reader) (*Outline, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	o := &Outline{Pages: make([][]Entry, 0)}
	if title := findElement(doc, "title"); title != nil {
		o.Title = getTextContent(title)
	}

	body := findElement(doc, "body")
	if body == nil {
		body = doc
	}

	var current []Entry
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "h1":
			o.Heading = getTextContent(c)
		case "h2", "h3", "h4", "h5", "h6":
			current = append(current, Entry{Type: EntryHeading, Text: getTextContent(c)})
		case "p":
			current = append(current, Entry{Type: EntryParagraph, Text: getTextContent(c)})
		case "figure":
			current = append(current, parseFigure(c))
		case "hr":
			if hasClass(c, separatorClass) {
				if current == nil {
					current = make([]Entry, 0)
				}
				o.Pages = append(o.Pages, current)
				current = nil
			}
		}
	}
	if len(current) > 0 {
		o.Pages = append(o.Pages, current)
	}

	return o, nil
}

func parseFigure(n *html.Node) Entry {
	e := Entry{Type: EntryFigure}
	if img := findElement(n, "img"); img != nil {
		e.Src = getAttr(img, "src")
	}
	if caption := findElement(n, "figcaption"); caption != nil {
		e.Text = getTextContent(caption)
	}
	return e
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}

// getTextContent extracts all text content from a node and its descendants.
func getTextContent(n *html.Node) string {
	var result strings.Builder
	getTextContentRecursive(n, &result)
	return strings.TrimSpace(result.String())
}

func getTextContentRecursive(n *html.Node, result *strings.Builder) {
	if n.Type == html.TextNode {
		result.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		getTextContentRecursive(c, result)
	}
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(getAttr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}
