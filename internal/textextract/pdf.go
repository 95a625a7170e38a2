package textextract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDF extracts text with a pure Go PDF reader. It copes with fewer font
// encodings than pdftotext but runs anywhere.
type PDF struct {
	logger *slog.Logger
}

// NewPDF creates a PDF extractor
func NewPDF(logger *slog.Logger) *PDF {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDF{logger: logger}
}

// Name returns the backend name
func (p *PDF) Name() string {
	return BackendPDF
}

// Check always succeeds
func (p *PDF) Check() error {
	return nil
}

// Extract reads the plain text of every page
func (p *PDF) Extract(ctx context.Context, path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	// pages are 1-indexed
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			p.logger.Warn("skipping unreadable page", "path", path, "page", i, "error", err)
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\f")
		}
		b.WriteString(text)
	}

	p.logger.Debug("extracted text", "path", path, "backend", p.Name(), "pages", r.NumPage(), "bytes", b.Len())

	return normalize(b.String()), nil
}
