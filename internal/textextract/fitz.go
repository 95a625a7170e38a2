package textextract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// Fitz extracts text with MuPDF. It needs no external tools.
type Fitz struct {
	logger *slog.Logger
}

// NewFitz creates a Fitz extractor
func NewFitz(logger *slog.Logger) *Fitz {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fitz{logger: logger}
}

// Name returns the backend name
func (f *Fitz) Name() string {
	return BackendFitz
}

// Check always succeeds since MuPDF is linked in
func (f *Fitz) Check() error {
	return nil
}

// Extract reads the text of every page, separated by form feeds like pdftotext
func (f *Fitz) Extract(ctx context.Context, path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	var b strings.Builder
	for page := 0; page < doc.NumPage(); page++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		text, err := doc.Text(page)
		if err != nil {
			return "", fmt.Errorf("reading text of page %d: %w", page+1, err)
		}
		if page > 0 {
			b.WriteString("\f")
		}
		b.WriteString(text)
	}

	f.logger.Debug("extracted text", "path", path, "backend", f.Name(), "pages", doc.NumPage(), "bytes", b.Len())

	return normalize(b.String()), nil
}
