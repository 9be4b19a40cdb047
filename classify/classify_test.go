package classify

import (
	"sync"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{Discard, "discard"},
		{Heading, "heading"},
		{Paragraph, "paragraph"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.expected)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	if config.MinWords != 2 {
		t.Errorf("Expected MinWords 2, got %d", config.MinWords)
	}
	if len(config.SkipPrefixes) != 2 || config.SkipPrefixes[0] != "references" || config.SkipPrefixes[1] != "citations" {
		t.Errorf("Unexpected skip prefixes: %v", config.SkipPrefixes)
	}
	if len(config.HeadingPrefixes) != 2 || config.HeadingPrefixes[0] != "chapter" || config.HeadingPrefixes[1] != "section" {
		t.Errorf("Unexpected heading prefixes: %v", config.HeadingPrefixes)
	}
}

func TestClassify(t *testing.T) {
	c := New()

	tests := []struct {
		name string
		text string
		want Kind
	}{
		{"empty", "", Discard},
		{"whitespace only", " \t\n ", Discard},
		{"single word", "Abstract", Discard},
		{"single word padded", "   Introduction   ", Discard},
		{"single heading word", "Chapter", Discard},
		{"references alone", "References", Discard},
		{"references list", "References and further reading", Discard},
		{"citations upper", "CITATIONS: Smith 2019", Discard},
		{"references mixed case", "rEfErEnCeS 1. Doe et al.", Discard},
		{"references glued", "ReferencesSection two", Discard},
		{"section heading", "Section 1", Heading},
		{"chapter heading", "Chapter 12 Results", Heading},
		{"heading upper", "SECTION 2 METHODS", Heading},
		{"heading prefix inside word", "Sectional views of the sample", Heading},
		{"heading with leading space", "  chapter three", Heading},
		{"paragraph", "Intro text here", Paragraph},
		{"word mentions section", "See section 4 for details", Paragraph},
		{"two words", "Hello world", Paragraph},
		{"multiline block", "First line\nsecond line", Paragraph},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.text); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifySkipWinsOverWordCount(t *testing.T) {
	c := New()
	for _, text := range []string{"References", "Citations", "references one two three four"} {
		if got := c.Classify(text); got != Discard {
			t.Errorf("Classify(%q) = %v, want discard", text, got)
		}
	}
}

func TestClassifyUnicodeFolding(t *testing.T) {
	c := NewWithConfig(Config{
		SkipPrefixes:    []string{"Literatur"},
		HeadingPrefixes: []string{"Kapitel", "Straße"},
		MinWords:        2,
	})

	tests := []struct {
		text string
		want Kind
	}{
		{"LITERATURVERZEICHNIS und mehr", Discard},
		{"kapitel 3 Ergebnisse", Heading},
		{"STRASSE der Einheit", Heading},
		{"Einleitung und Motivation", Paragraph},
	}

	for _, tt := range tests {
		if got := c.Classify(tt.text); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestNewWithConfigIgnoresBlankPrefixes(t *testing.T) {
	c := NewWithConfig(Config{
		SkipPrefixes:    []string{"", "  "},
		HeadingPrefixes: []string{""},
		MinWords:        1,
	})
	if got := c.Classify("Anything"); got != Paragraph {
		t.Errorf("blank prefixes must not match everything, got %v", got)
	}
}

func TestClassifierFunc(t *testing.T) {
	var c Classifier = ClassifierFunc(func(text string) Kind {
		if text == "title" {
			return Heading
		}
		return Paragraph
	})
	if c.Classify("title") != Heading {
		t.Error("expected heading")
	}
	if c.Classify("body") != Paragraph {
		t.Error("expected paragraph")
	}
}

func TestClassifyConcurrent(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if c.Classify("Section 1") != Heading {
					t.Error("expected heading")
					return
				}
			}
		}()
	}
	wg.Wait()
}
