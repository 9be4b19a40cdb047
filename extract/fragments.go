package extract

import (
	"math"
	"sort"
	"strings"

	"github.com/tsawler/reflow/model"
)

// Glyph is a positioned run of text as laid down by a content stream, in
// PDF coordinates (Y grows upward, Y is the baseline).
type Glyph struct {
	X, Y     float64
	W        float64 // Advance width
	FontSize float64
	S        string
}

// FragmentConfig holds configuration for grouping glyphs into fragments
type FragmentConfig struct {
	// LineTolerance is the maximum baseline difference, as a fraction of the
	// font size, for glyphs to share a line
	// Default: 0.3
	LineTolerance float64

	// WordGap is the horizontal gap, as a fraction of the font size, above
	// which a space is inserted between glyphs
	// Default: 0.15
	WordGap float64

	// ColumnGap is the horizontal gap, as a fraction of the font size, that
	// splits a line into separate fragments
	// Default: 2.0
	ColumnGap float64

	// MergeLines joins consecutive lines of similar size into one block
	// fragment
	// Default: true
	MergeLines bool

	// LineSpacing is the maximum baseline distance, as a multiple of the
	// font size, for two lines to belong to the same block
	// Default: 1.6
	LineSpacing float64
}

// DefaultFragmentConfig returns sensible default configuration
func DefaultFragmentConfig() FragmentConfig {
	return FragmentConfig{
		LineTolerance: 0.3,
		WordGap:       0.15,
		ColumnGap:     2.0,
		MergeLines:    true,
		LineSpacing:   1.6,
	}
}

// run is a horizontal sequence of glyphs on one baseline
type run struct {
	text        strings.Builder
	left, right float64
	top, base   float64 // Highest and lowest baseline (PDF coordinates)
	fontSize    float64
}

// BuildFragments groups glyphs into line or block fragments and converts
// their boxes to top-down coordinates for a page of the given height.
func BuildFragments(glyphs []Glyph, pageHeight float64, config FragmentConfig) []model.Fragment {
	runs := buildRuns(glyphs, config)
	if config.MergeLines {
		runs = mergeRuns(runs, config)
	}

	fragments := make([]model.Fragment, 0, len(runs))
	for _, r := range runs {
		text := strings.TrimSpace(r.text.String())
		if text == "" {
			continue
		}
		// Ascent and descent approximated from the font size
		fragments = append(fragments, model.Fragment{
			Text: text,
			BBox: model.FlipY(r.left, r.base-0.2*r.fontSize, r.right, r.top+0.8*r.fontSize, pageHeight),
		})
	}
	return fragments
}

// buildRuns buckets glyphs into lines, top to bottom, and splits each line
// at wide gaps
func buildRuns(glyphs []Glyph, config FragmentConfig) []*run {
	sorted := make([]Glyph, 0, len(glyphs))
	for _, g := range glyphs {
		if g.S != "" {
			sorted = append(sorted, g)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y > sorted[j].Y })

	var lines [][]Glyph
	for _, g := range sorted {
		n := len(lines)
		if n > 0 {
			ref := lines[n-1][0]
			if math.Abs(ref.Y-g.Y) <= config.LineTolerance*fontSizeOf(ref, g) {
				lines[n-1] = append(lines[n-1], g)
				continue
			}
		}
		lines = append(lines, []Glyph{g})
	}

	var runs []*run
	for _, line := range lines {
		sort.SliceStable(line, func(i, j int) bool { return line[i].X < line[j].X })

		var cur *run
		var prev Glyph
		for _, g := range line {
			fs := fontSizeOf(prev, g)
			if cur != nil {
				gap := g.X - (prev.X + prev.W)
				if gap > config.ColumnGap*fs {
					runs = append(runs, cur)
					cur = nil
				} else if gap > config.WordGap*fs && !endsWithSpace(&cur.text) && !strings.HasPrefix(g.S, " ") {
					cur.text.WriteString(" ")
				}
			}
			if cur == nil {
				cur = &run{left: g.X, top: g.Y, base: g.Y}
			}
			cur.text.WriteString(g.S)
			cur.right = math.Max(cur.right, g.X+g.W)
			cur.fontSize = math.Max(cur.fontSize, g.FontSize)
			prev = g
		}
		if cur != nil {
			runs = append(runs, cur)
		}
	}
	return runs
}

// mergeRuns joins each run into the most recent block directly above it
// when the two overlap horizontally, sit within LineSpacing and have
// similar font sizes
func mergeRuns(runs []*run, config FragmentConfig) []*run {
	var blocks []*run
	for _, r := range runs {
		var target *run
		for i := len(blocks) - 1; i >= 0; i-- {
			b := blocks[i]
			dist := b.base - r.top
			if dist <= 0 {
				continue // Same line
			}
			if dist > config.LineSpacing*math.Max(b.fontSize, r.fontSize) {
				break
			}
			if r.left < b.right && b.left < r.right && similarSize(b.fontSize, r.fontSize) {
				target = b
				break
			}
		}
		if target == nil {
			blocks = append(blocks, r)
			continue
		}
		target.text.WriteString(" ")
		target.text.WriteString(r.text.String())
		target.left = math.Min(target.left, r.left)
		target.right = math.Max(target.right, r.right)
		target.base = r.base
	}
	return blocks
}

func fontSizeOf(a, b Glyph) float64 {
	fs := math.Max(a.FontSize, b.FontSize)
	if fs <= 0 {
		return 10
	}
	return fs
}

func similarSize(a, b float64) bool {
	if a <= 0 || b <= 0 {
		return true
	}
	ratio := a / b
	return ratio >= 0.8 && ratio <= 1.25
}

func endsWithSpace(sb *strings.Builder) bool {
	s := sb.String()
	return s == "" || strings.HasSuffix(s, " ")
}
