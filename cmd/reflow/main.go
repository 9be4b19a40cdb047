package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/tsawler/reflow"
	"github.com/tsawler/reflow/format"
	"github.com/tsawler/reflow/htmldoc"
	"github.com/tsawler/reflow/internal/config"
	"github.com/tsawler/reflow/model"
)

func main() {
	cfg := config.Load()

	// Parse command line flags
	output := flag.String("o", "", "Output HTML file (default <input>_nejm_converted.html)")
	mediaDir := flag.String("media-dir", cfg.MediaDir, "Parent directory for the image scratch directory")
	workers := flag.Int("workers", cfg.Workers, "Number of pages composed concurrently")
	raw := flag.Bool("raw", cfg.RawText, "Don't escape extracted text")
	title := flag.String("title", cfg.Title, "Document title and main heading")
	pageSpec := flag.String("pages", "", "Pages to convert, e.g. 1,3-5")
	preview := flag.Bool("preview", false, "Print an outline of the converted document")
	yes := flag.Bool("yes", false, "Save without asking")
	verbose := flag.Bool("v", false, "Debug logging")
	jsonLog := flag.Bool("json", false, "Log as JSON")

	flag.Usage = printUsage
	flag.Parse()

	level := cfg.LogLevel
	if *verbose {
		level = slog.LevelDebug
	}
	logger := newLogger(*jsonLog, level)
	slog.SetDefault(logger)

	if flag.NArg() != 1 {
		printUsage()
		os.Exit(1)
	}
	inputPath := flag.Arg(0)

	if err := validateInput(inputPath); err != nil {
		logger.Error("select a valid PDF file", "path", inputPath, "error", err)
		os.Exit(1)
	}

	pages, err := parsePages(*pageSpec)
	if err != nil {
		logger.Error("invalid -pages", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("extracting content", "path", inputPath)

	conv := reflow.Open(inputPath).
		Pages(pages...).
		Workers(*workers).
		Title(*title).
		MediaDir(*mediaDir).
		Logger(logger)
	if *raw {
		conv = conv.RawText()
	}

	result, err := conv.Convert(ctx)
	if err != nil {
		logger.Error("conversion failed", "error", err)
		os.Exit(exitCode(err))
	}

	for _, w := range result.Warnings {
		logger.Warn(w.Message, "page", w.Page+1)
	}
	for _, p := range result.Pages {
		logger.Debug("page converted",
			"page", p.Number(),
			"headings", p.Count(model.NodeKindHeading),
			"paragraphs", p.Count(model.NodeKindParagraph),
			"figures", len(p.Figures()),
		)
	}
	logger.Info("ready",
		"conversion_id", result.ID,
		"pages", len(result.Pages),
		"images", len(result.MediaPaths),
		"media_dir", result.MediaDir,
	)

	if *preview {
		outline, err := htmldoc.Parse(strings.NewReader(result.Document))
		if err != nil {
			logger.Error("preview failed", "error", err)
			os.Exit(1)
		}
		fmt.Print(outline.String())
	}

	target := *output
	if target == "" {
		target = outputPath(inputPath)
	}
	if format.Detect(target) != format.HTML {
		logger.Warn("output file does not have an .html extension", "path", target)
	}

	if !*yes && !confirm(os.Stdin, os.Stderr, fmt.Sprintf("Save to %s? [y/N] ", target)) {
		logger.Info("cancelled", "media_dir", result.MediaDir)
		return
	}

	if err := result.Save(target); err != nil {
		logger.Error("save failed", "error", err)
		os.Exit(exitCode(err))
	}
	logger.Info("saved", "path", target)
}

func newLogger(jsonOutput bool, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if jsonOutput {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// exitCode maps a conversion error to the process exit status
func exitCode(err error) int {
	switch {
	case errors.Is(err, model.ErrExtraction):
		return 2
	case errors.Is(err, model.ErrIO):
		return 3
	default:
		return 1
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: reflow [flags] input.pdf\n\n")
	fmt.Fprintf(os.Stderr, "Converts a PDF into a single HTML document with headings, paragraphs\n")
	fmt.Fprintf(os.Stderr, "and figures. Images are written to a new scratch directory.\n\n")
	fmt.Fprintf(os.Stderr, "Flags:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
	fmt.Fprintf(os.Stderr, "  REFLOW_MEDIA_DIR, REFLOW_WORKERS, REFLOW_TITLE, REFLOW_LOG_LEVEL, REFLOW_RAW_TEXT\n")
}
