package textextract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Pdftotext extracts text with poppler's pdftotext command
type Pdftotext struct {
	binary string
	runner Runner
	logger *slog.Logger
}

// NewPdftotext creates a Pdftotext extractor. An empty binary means
// "pdftotext" found on PATH.
func NewPdftotext(binary string, logger *slog.Logger) *Pdftotext {
	if logger == nil {
		logger = slog.Default()
	}
	return NewPdftotextWithRunner(binary, execRunner{logger: logger}, logger)
}

// NewPdftotextWithRunner creates a Pdftotext extractor with a custom runner for testing
func NewPdftotextWithRunner(binary string, runner Runner, logger *slog.Logger) *Pdftotext {
	if binary == "" {
		binary = "pdftotext"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pdftotext{binary: binary, runner: runner, logger: logger}
}

// Name returns the backend name
func (p *Pdftotext) Name() string {
	return BackendPdftotext
}

// Check verifies pdftotext is on PATH
func (p *Pdftotext) Check() error {
	if _, err := p.runner.LookPath(p.binary); err != nil {
		return fmt.Errorf("%w: %s (install poppler): %v", ErrNotInstalled, p.binary, err)
	}
	return nil
}

// Extract runs pdftotext over the whole document and returns its output
func (p *Pdftotext) Extract(ctx context.Context, path string) (string, error) {
	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := p.runner.Run(ctx, p.binary, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return "", fmt.Errorf("running %s: %w: %s", p.binary, err, strings.TrimSpace(string(errb)))
	}

	text := string(out)
	// pdftotext separates pages with a form feed
	pages := 1 + strings.Count(text, "\f")
	p.logger.Debug("extracted text", "path", path, "backend", p.Name(), "pages", pages, "bytes", len(out))

	return normalize(text), nil
}
