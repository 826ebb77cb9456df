package suggest

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	aoption "github.com/anthropics/anthropic-sdk-go/option"
	"golang.org/x/time/rate"

	"github.com/dshills/reportassist/internal/ghost"
)

// DefaultAnthropicModel is used when no model is configured.
const DefaultAnthropicModel = "claude-3-5-haiku-latest"

// anthropicMaxTokens bounds the reply; suggestions are a short JSON object.
const anthropicMaxTokens = 2048

// AnthropicClient asks a Claude model for suggestions through the Messages
// API. It shares the prompt and reply format with LLMClient.
type AnthropicClient struct {
	client  anthropic.Client
	model   string
	limiter *rate.Limiter
}

// NewAnthropicClient creates a Messages API client. BaseURL is optional.
func NewAnthropicClient(cfg LLMConfig) *AnthropicClient {
	opts := []aoption.RequestOption{aoption.WithMaxRetries(0)}
	if cfg.APIKey != "" {
		opts = append(opts, aoption.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, aoption.WithBaseURL(cfg.BaseURL))
	}
	model := cfg.Model
	if model == "" {
		model = DefaultAnthropicModel
	}
	return &AnthropicClient{
		client:  anthropic.NewClient(opts...),
		model:   model,
		limiter: newLimiter(cfg.RatePerSecond, cfg.Burst),
	}
}

// Suggest implements Client.
func (c *AnthropicClient) Suggest(ctx context.Context, req Request) ([]ghost.Suggestion, error) {
	if c.limiter != nil && !c.limiter.Allow() {
		return nil, ErrRateLimited
	}

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: anthropicMaxTokens,
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(BuildPrompt(req))),
		},
		Temperature: anthropic.Float(0.2),
	})
	if err != nil {
		return nil, fmt.Errorf("messages (%s): %w", c.model, err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return nil, ErrEmptyCompletion
	}
	return DecodeResponse([]byte(extractJSON(text.String())))
}
