package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tsawler/reflow/format"
)

// validateInput checks that path names an existing regular file with a .pdf
// extension and a PDF header
func validateInput(path string) error {
	if format.Detect(path) != format.PDF {
		return fmt.Errorf("not a .pdf file")
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("is a directory")
	}
	f, err := format.DetectFile(path)
	if err != nil {
		return err
	}
	if f != format.PDF {
		return fmt.Errorf("missing PDF header")
	}
	return nil
}

// outputPath returns the default save target next to the input:
// paper.pdf becomes paper_nejm_converted.html
func outputPath(input string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "_nejm_converted.html"
}

// maxSelectedPages bounds how many page numbers a page list may expand to
const maxSelectedPages = 100000

// parsePages parses a page list such as "1,3-5" into 1-indexed page
// numbers. An empty spec selects all pages.
func parsePages(spec string) ([]int, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}

	var pages []int
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		lo, hi, isRange := strings.Cut(part, "-")
		start, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("invalid page %q", part)
		}
		end := start
		if isRange {
			end, err = strconv.Atoi(strings.TrimSpace(hi))
			if err != nil {
				return nil, fmt.Errorf("invalid page range %q", part)
			}
		}
		if start < 1 || end < start {
			return nil, fmt.Errorf("invalid page range %q", part)
		}
		if end-start >= maxSelectedPages-len(pages) {
			return nil, fmt.Errorf("page list selects more than %d pages", maxSelectedPages)
		}
		for p := start; p <= end; p++ {
			pages = append(pages, p)
		}
	}
	return pages, nil
}

// confirm writes prompt to out and reports whether the answer read from in
// starts with y or Y
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
