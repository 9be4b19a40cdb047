package format

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PDF, "PDF"},
		{HTML, "HTML"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PDF, ".pdf"},
		{HTML, ".html"},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("Format(%d).Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"paper.pdf", PDF},
		{"paper.PDF", PDF},
		{"dir/paper.Pdf", PDF},
		{"paper_nejm_converted.html", HTML},
		{"index.htm", HTML},
		{"paper.docx", Unknown},
		{"pdf", Unknown},
		{"", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := Detect(tt.filename); got != tt.want {
				t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Format
	}{
		{"pdf", "%PDF-1.7\n", PDF},
		{"pdf after junk", "\x00\x00garbage%PDF-1.4", PDF},
		{"html doctype", "<!DOCTYPE html><html>", HTML},
		{"html lowercase", "  \n<html lang='en'>", HTML},
		{"zip", "PK\x03\x04", Unknown},
		{"short", "%P", Unknown},
		{"empty", "", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic([]byte(tt.data)); got != tt.want {
				t.Errorf("DetectFromMagic(%q) = %v, want %v", tt.data, got, tt.want)
			}
		})
	}
}

func TestDetectFile(t *testing.T) {
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "a.pdf")
	if err := os.WriteFile(pdfPath, []byte("%PDF-1.4\n%%EOF\n"), 0644); err != nil {
		t.Fatal(err)
	}
	fakePath := filepath.Join(dir, "b.pdf")
	if err := os.WriteFile(fakePath, []byte("not really"), 0644); err != nil {
		t.Fatal(err)
	}

	if f, err := DetectFile(pdfPath); err != nil || f != PDF {
		t.Errorf("DetectFile(pdf) = %v, %v", f, err)
	}
	if f, err := DetectFile(fakePath); err != nil || f != Unknown {
		t.Errorf("DetectFile(fake) = %v, %v", f, err)
	}
	if _, err := DetectFile(filepath.Join(dir, "missing.pdf")); err == nil {
		t.Error("expected error for missing file")
	}
}
