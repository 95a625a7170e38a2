// Package textextract pulls the text layer out of PDF documents.
package textextract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrNotInstalled is returned by Check when a backend's external tool is missing
var ErrNotInstalled = errors.New("text extraction tool not installed")

// Extractor defines the interface for text extraction.
// An empty string with a nil error means the document has no text layer
// (an image-only scan, for example).
type Extractor interface {
	// Extract returns all of the text in the PDF at path
	Extract(ctx context.Context, path string) (string, error)
	// Check verifies the backend can run on this machine
	Check() error
	// Name identifies the backend in logs
	Name() string
}

// Backend names accepted by New
const (
	BackendPdftotext = "pdftotext"
	BackendFitz      = "fitz"
	BackendPDF       = "pdf"
)

// New creates the Extractor for the named backend
func New(backend string, logger *slog.Logger) (Extractor, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch backend {
	case "", BackendPdftotext:
		return NewPdftotext("", logger), nil
	case BackendFitz:
		return NewFitz(logger), nil
	case BackendPDF:
		return NewPDF(logger), nil
	}
	return nil, fmt.Errorf("unknown text extractor %q (valid: %s, %s, %s)", backend, BackendPdftotext, BackendFitz, BackendPDF)
}

// normalize trims the text and collapses a document made only of
// whitespace and form feeds to the empty string
func normalize(text string) string {
	if strings.TrimSpace(strings.ReplaceAll(text, "\f", "")) == "" {
		return ""
	}
	return strings.TrimSpace(text)
}
