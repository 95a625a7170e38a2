// Package extraction infers a document's identifying fields with a language model.
package extraction

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"

	"github.com/infews/parkive/internal/document"
	"github.com/infews/parkive/internal/llm"
)

// MaxAttempts is how many times the model is asked before giving up on a document
const MaxAttempts = 3

// Cache stores fields by a digest of the document text
type Cache interface {
	CachedFields(key string) (document.Fields, bool, error)
	CacheFields(key string, fields document.Fields) error
}

// Result is the outcome of extracting fields from one document.
// OK is false when every attempt failed; the caller should fall back to
// asking a human.
type Result struct {
	Fields   document.Fields
	OK       bool
	Attempts int
	Cached   bool
}

// Extractor asks a language model for the fields of a document
type Extractor struct {
	generator llm.Generator
	panel     *ExamplePanel
	cache     Cache
	logger    *slog.Logger
}

// NewExtractor creates an Extractor. cache may be nil.
func NewExtractor(generator llm.Generator, panel *ExamplePanel, cache Cache, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		generator: generator,
		panel:     panel,
		cache:     cache,
		logger:    logger,
	}
}

// Extract sends the document text to the model, retrying unparseable
// answers up to MaxAttempts times with the same prompt
func (e *Extractor) Extract(ctx context.Context, text string) Result {
	key := Digest(text)
	if fields, ok := e.cached(key); ok {
		e.logger.Debug("using cached fields", "digest", key)
		return Result{Fields: fields, OK: true, Cached: true}
	}

	prompt, err := BuildPrompt(e.panel, text)
	if err != nil {
		e.logger.Error("Failed to build prompt", "error", err)
		return Result{}
	}

	var attempts int
	for attempts = 1; attempts <= MaxAttempts; attempts++ {
		raw, err := e.generator.Generate(ctx, prompt)
		if err != nil {
			e.logger.Warn("LLM request failed", "attempt", attempts, "error", err)
			if ctx.Err() != nil {
				break
			}
			continue
		}

		e.logger.Debug("Raw LLM response", "attempt", attempts, "response", raw)

		fields, err := ParseResponse(raw)
		if err != nil {
			if attempts < MaxAttempts {
				e.logger.Debug("Retrying after invalid response", "attempt", attempts, "error", err)
			}
			continue
		}

		e.store(key, fields)
		return Result{Fields: fields, OK: true, Attempts: attempts}
	}

	if attempts > MaxAttempts {
		attempts = MaxAttempts
	}
	e.logger.Warn("Could not extract fields", "attempts", attempts)
	return Result{Attempts: attempts}
}

func (e *Extractor) cached(key string) (document.Fields, bool) {
	if e.cache == nil {
		return document.Fields{}, false
	}
	fields, ok, err := e.cache.CachedFields(key)
	if err != nil {
		e.logger.Warn("Failed to read fields cache", "error", err)
		return document.Fields{}, false
	}
	return fields, ok
}

func (e *Extractor) store(key string, fields document.Fields) {
	if e.cache == nil {
		return
	}
	if err := e.cache.CacheFields(key, fields); err != nil {
		e.logger.Warn("Failed to write fields cache", "error", err)
	}
}

// Digest identifies document text in the fields cache
func Digest(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
