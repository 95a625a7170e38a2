package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenAI implements the Generator interface for OpenAI-compatible servers
// (llama.cpp, LM Studio, vLLM or the OpenAI API itself)
type OpenAI struct {
	baseURL string
	llm     llms.Model
	options Options
	client  *http.Client
}

// NewOpenAI creates a new OpenAI-compatible Generator instance.
// Local servers usually ignore the token, so an empty one is replaced.
func NewOpenAI(baseURL, token, modelName string, options Options) (*OpenAI, error) {
	if baseURL == "" {
		baseURL = "http://localhost:8080/v1"
	}
	if token == "" {
		token = "no-key"
	}
	options = options.withDefaults()

	opts := []openai.Option{
		openai.WithBaseURL(baseURL),
		openai.WithToken(token),
	}
	if modelName != "" {
		opts = append(opts, openai.WithModel(modelName))
	}

	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating openai client: %w", err)
	}

	return &OpenAI{
		baseURL: strings.TrimRight(baseURL, "/"),
		llm:     model,
		options: options,
		client:  &http.Client{Timeout: 5 * time.Second},
	}, nil
}

// Generate sends the prompt as a single user message
func (o *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.options.Timeout)
	defer cancel()

	text, err := llms.GenerateFromSinglePrompt(ctx, o.llm, prompt,
		llms.WithTemperature(float64(o.options.Temperature)),
	)
	if err != nil {
		return "", fmt.Errorf("generating completion: %w", err)
	}
	return text, nil
}

// CheckInstalled succeeds; there is nothing to install for a remote endpoint
func (o *OpenAI) CheckInstalled() error {
	return nil
}

// Ping lists the server's models
func (o *OpenAI) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/models", nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNotRunning, o.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: %s answered with status %d", ErrNotRunning, o.baseURL, resp.StatusCode)
	}
	return nil
}

// Close is a no-op
func (o *OpenAI) Close() error {
	return nil
}
