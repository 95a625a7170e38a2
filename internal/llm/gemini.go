package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini implements the Generator interface using Google Gemini
type Gemini struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	options Options
}

// NewGemini creates a new Gemini Generator instance.
// Without an API key the generator is created but CheckInstalled fails.
func NewGemini(apiKey string, modelName string, options Options) (*Gemini, error) {
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}
	options = options.withDefaults()

	g := &Gemini{options: options}
	if apiKey == "" {
		return g, nil
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(options.Temperature)

	g.client = client
	g.model = model
	return g, nil
}

// Generate sends the prompt and joins the text parts of the first candidate
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	if g.model == nil {
		return "", fmt.Errorf("%w: gemini api key is required", ErrNotInstalled)
	}

	ctx, cancel := context.WithTimeout(ctx, g.options.Timeout)
	defer cancel()

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			responseText.WriteString(string(text))
		}
	}

	return responseText.String(), nil
}

// CheckInstalled verifies an API key was configured
func (g *Gemini) CheckInstalled() error {
	if g.client == nil {
		return fmt.Errorf("%w: set --gemini-key or GEMINI_API_KEY", ErrNotInstalled)
	}
	return nil
}

// Ping counts the tokens of a tiny prompt, which needs a valid key and model
func (g *Gemini) Ping(ctx context.Context) error {
	if g.model == nil {
		return fmt.Errorf("%w: gemini api key is required", ErrNotRunning)
	}
	if _, err := g.model.CountTokens(ctx, genai.Text("ping")); err != nil {
		return fmt.Errorf("%w: %v", ErrNotRunning, err)
	}
	return nil
}

// Close closes the Gemini client
func (g *Gemini) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}
