package llm

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

const (
	// ProviderGemini selects Google's Gemini models.
	ProviderGemini = "gemini"
	// ProviderClaude selects Anthropic's Claude models.
	ProviderClaude = "claude"

	// GeminiModel is the default Gemini model.
	GeminiModel = "gemini-2.0-flash"
	// ClaudeModel is the default Claude model.
	ClaudeModel = "claude-sonnet-4-20250514"

	// DefaultTemperature keeps answers close to the requested format.
	DefaultTemperature = 0.1
	// MaxTokens caps the answer length.
	MaxTokens = 4096
)

// ErrEmptyResponse is returned when the model answered with no text.
var ErrEmptyResponse = errors.New("no content in model response")

// Completer sends a single prompt and returns the model's text answer.
type Completer interface {
	Complete(ctx context.Context, prompt string) (text string, err error)
}

// Options configures a provider client.
type Options struct {
	Provider    string
	APIKey      string
	Model       string
	Temperature float64
	// BaseURL overrides the provider endpoint. Used by tests.
	BaseURL string
}

// New builds the client for the configured provider.
func New(ctx context.Context, opts Options) (completer Completer, err error) {
	switch strings.ToLower(strings.TrimSpace(opts.Provider)) {
	case "", ProviderGemini:
		var gemini *GeminiClient
		gemini, err = NewGeminiClient(ctx, opts)
		if err != nil {
			return completer, err
		}
		completer = gemini
	case ProviderClaude:
		completer = NewClaudeClient(opts)
	default:
		err = errors.Errorf("unknown provider '%s': must be '%s' or '%s'", opts.Provider, ProviderGemini, ProviderClaude)
	}
	return completer, err
}
