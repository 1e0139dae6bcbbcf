package llm

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/pkg/errors"
)

// ClaudeClient talks to the Anthropic Messages API.
type ClaudeClient struct {
	client      anthropic.Client
	model       string
	temperature float64
}

// NewClaudeClient creates a Claude client. Retries are disabled so each
// roadmap costs exactly one request.
func NewClaudeClient(opts Options) (client *ClaudeClient) {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}

	model := opts.Model
	if model == "" {
		model = ClaudeModel
	}

	client = &ClaudeClient{
		client:      anthropic.NewClient(reqOpts...),
		model:       model,
		temperature: opts.Temperature,
	}
	return client
}

// Complete sends the prompt as a single user message and joins the text blocks
// of the answer.
func (c *ClaudeClient) Complete(ctx context.Context, prompt string) (text string, err error) {
	var msg *anthropic.Message
	msg, err = c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   MaxTokens,
		Temperature: anthropic.Float(c.temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		err = errors.Wrap(err, "Claude request failed")
		return text, err
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	text = sb.String()
	if strings.TrimSpace(text) == "" {
		err = ErrEmptyResponse
		return text, err
	}

	return text, err
}
