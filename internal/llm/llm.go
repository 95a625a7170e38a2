// Package llm talks to the language models that read documents.
package llm

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotInstalled means the model runtime (or its credentials) is missing
	ErrNotInstalled = errors.New("llm runtime not installed")
	// ErrNotRunning means the model runtime did not answer a health check
	ErrNotRunning = errors.New("llm runtime not running")
)

// Generator defines the interface for text generation
type Generator interface {
	// Generate sends a prompt and returns the model's raw text response
	Generate(ctx context.Context, prompt string) (string, error)
	// CheckInstalled verifies the runtime is available on this machine
	CheckInstalled() error
	// Ping verifies the runtime is up and answering
	Ping(ctx context.Context) error
	// Close releases resources held by the generator
	Close() error
}

// Options tune generation. Zero values pick the defaults.
type Options struct {
	// Temperature is always sent; 0 gives deterministic output
	Temperature float32
	// NumCtx is the context window requested from Ollama
	NumCtx int
	// Timeout bounds a single request; local inference can be slow
	Timeout time.Duration
	// Format is a JSON schema constraining the response, when the backend supports it
	Format map[string]any
}

// Defaults
const (
	DefaultModel   = "qwen2.5:14b"
	DefaultNumCtx  = 16384
	DefaultTimeout = 2 * time.Minute
)

func (o Options) withDefaults() Options {
	if o.NumCtx <= 0 {
		o.NumCtx = DefaultNumCtx
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	return o
}
