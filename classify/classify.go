// Package classify decides what a single text fragment becomes in the
// reconstructed document: nothing, a heading, or a paragraph.
//
// Detection is label-prefix based. Upstream primitives expose only plain
// text per fragment, so font size and style are not consulted. Strategies
// that have more information can implement [Classifier] and be swapped in
// without touching ordering or assembly.
package classify

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Kind is the outcome of classifying a fragment
type Kind int

const (
	Discard Kind = iota
	Heading
	Paragraph
)

// String returns a string representation of the kind
func (k Kind) String() string {
	switch k {
	case Heading:
		return "heading"
	case Paragraph:
		return "paragraph"
	default:
		return "discard"
	}
}

// Classifier classifies the text of one fragment. Implementations must be
// pure: the result depends only on the text.
type Classifier interface {
	Classify(text string) Kind
}

// ClassifierFunc adapts an ordinary function to the Classifier interface
type ClassifierFunc func(text string) Kind

// Classify calls f(text)
func (f ClassifierFunc) Classify(text string) Kind { return f(text) }

// Config holds configuration for prefix classification
type Config struct {
	// SkipPrefixes discard a fragment regardless of word count
	// Default: "references", "citations"
	SkipPrefixes []string

	// HeadingPrefixes mark a fragment as a heading
	// Default: "chapter", "section"
	HeadingPrefixes []string

	// MinWords is the minimum number of whitespace-separated words a
	// fragment needs to be kept
	// Default: 2
	MinWords int
}

// DefaultConfig returns the default prefix sets
func DefaultConfig() Config {
	return Config{
		SkipPrefixes:    []string{"references", "citations"},
		HeadingPrefixes: []string{"chapter", "section"},
		MinWords:        2,
	}
}

// PrefixClassifier matches case-folded fragment text against fixed prefix
// sets. It holds no mutable state and is safe for concurrent use.
type PrefixClassifier struct {
	skip    []string
	heading []string
	minWord int
}

// New creates a prefix classifier with the default configuration
func New() *PrefixClassifier {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a prefix classifier with a custom configuration
func NewWithConfig(config Config) *PrefixClassifier {
	return &PrefixClassifier{
		skip:    foldAll(config.SkipPrefixes),
		heading: foldAll(config.HeadingPrefixes),
		minWord: config.MinWords,
	}
}

// Classify returns Discard for empty, single-word and skip-prefixed text,
// Heading for heading-prefixed text, and Paragraph otherwise.
func (c *PrefixClassifier) Classify(text string) Kind {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || len(strings.Fields(trimmed)) < c.minWord {
		return Discard
	}

	folded := fold(trimmed)
	if hasAnyPrefix(folded, c.skip) {
		return Discard
	}
	if hasAnyPrefix(folded, c.heading) {
		return Heading
	}
	return Paragraph
}

// fold normalizes to NFC and applies Unicode case folding. A new Caser is
// used per call because Casers are not safe for concurrent use.
func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

func foldAll(prefixes []string) []string {
	out := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, fold(p))
		}
	}
	return out
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
