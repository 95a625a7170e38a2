package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os/exec"
	"strings"
	"time"
)

// Ollama implements the Generator interface using a local Ollama server
type Ollama struct {
	baseURL  string
	model    string
	options  Options
	client   *http.Client
	lookPath func(string) (string, error)
}

// NewOllama creates a new Ollama Generator instance
func NewOllama(baseURL string, modelName string, options Options) (*Ollama, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if modelName == "" {
		modelName = DefaultModel
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parsing ollama url: %w", err)
	}
	options = options.withDefaults()

	return &Ollama{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   modelName,
		options: options,
		client: &http.Client{
			Timeout: options.Timeout,
		},
		lookPath: exec.LookPath,
	}, nil
}

// ollamaGenerateRequest represents the request body for Ollama's generate API
type ollamaGenerateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Format  map[string]any `json:"format,omitempty"`
	Options ollamaOptions  `json:"options"`
}

type ollamaOptions struct {
	Temperature float32 `json:"temperature"`
	NumCtx      int     `json:"num_ctx"`
}

// ollamaGenerateResponse represents the response from Ollama's generate API
type ollamaGenerateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Generate sends the prompt to /api/generate and returns the response text
func (o *Ollama) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.options.Timeout)
	defer cancel()

	reqBody := ollamaGenerateRequest{
		Model:  o.model,
		Prompt: prompt,
		Stream: false,
		Format: o.options.Format,
		Options: ollamaOptions{
			Temperature: o.options.Temperature,
			NumCtx:      o.options.NumCtx,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/generate", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling ollama API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama API error (status %d): %s", resp.StatusCode, string(body))
	}

	var genResp ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	return genResp.Response, nil
}

// CheckInstalled looks for the ollama binary when the server is local.
// A remote server is not expected to have a local binary.
func (o *Ollama) CheckInstalled() error {
	if !o.isLocal() {
		return nil
	}
	if _, err := o.lookPath("ollama"); err != nil {
		return fmt.Errorf("%w: ollama not found on PATH: %v", ErrNotInstalled, err)
	}
	return nil
}

// Ping asks the server for its version
func (o *Ollama) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/api/version", nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNotRunning, o.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s answered with status %d", ErrNotRunning, o.baseURL, resp.StatusCode)
	}
	return nil
}

// Close closes the Ollama client (no-op for HTTP client)
func (o *Ollama) Close() error {
	return nil
}

func (o *Ollama) isLocal() bool {
	u, err := url.Parse(o.baseURL)
	if err != nil {
		return true
	}
	host := u.Hostname()
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
