package llm

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"google.golang.org/genai"
)

// GeminiClient talks to the Gemini API.
type GeminiClient struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGeminiClient creates a Gemini client.
func NewGeminiClient(ctx context.Context, opts Options) (client *GeminiClient, err error) {
	cfg := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	var gc *genai.Client
	gc, err = genai.NewClient(ctx, cfg)
	if err != nil {
		err = errors.Wrap(err, "failed to create Gemini client")
		return client, err
	}

	model := opts.Model
	if model == "" {
		model = GeminiModel
	}

	client = &GeminiClient{
		client:      gc,
		model:       model,
		temperature: float32(opts.Temperature),
	}
	return client, err
}

// Complete sends the prompt as a single user turn.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (text string, err error) {
	var resp *genai.GenerateContentResponse
	resp, err = c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(c.temperature),
		MaxOutputTokens: MaxTokens,
	})
	if err != nil {
		err = errors.Wrap(err, "Gemini request failed")
		return text, err
	}

	text = resp.Text()
	if strings.TrimSpace(text) == "" {
		err = ErrEmptyResponse
		return text, err
	}

	return text, err
}
