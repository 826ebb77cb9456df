package suggest

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"golang.org/x/time/rate"

	"github.com/dshills/reportassist/internal/ghost"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o-mini"

const systemPrompt = `You proofread radiology reports. You receive a report with numbered lines.
Suggest improved wording only for lines that need it.
Reply with JSON only: {"suggestions":[{"lineNumber":<0-based line>,"suggestion":"<replacement line>"}]}.
Reply {"suggestions":[]} when nothing should change.`

// LLMConfig configures an LLMClient.
type LLMConfig struct {
	// BaseURL of an OpenAI-compatible API, e.g. http://localhost:11434/v1/.
	// Empty uses the OpenAI default.
	BaseURL string
	Model   string
	APIKey  string
	// RatePerSecond and Burst configure client-side limiting.
	RatePerSecond float64
	Burst         int
}

// LLMClient asks an OpenAI-compatible chat model for suggestions.
type LLMClient struct {
	client  openai.Client
	model   string
	limiter *rate.Limiter
}

// NewLLMClient creates a chat-model client.
func NewLLMClient(cfg LLMConfig) *LLMClient {
	opts := []option.RequestOption{option.WithMaxRetries(0)}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &LLMClient{
		client:  openai.NewClient(opts...),
		model:   model,
		limiter: newLimiter(cfg.RatePerSecond, cfg.Burst),
	}
}

// Suggest implements Client.
func (c *LLMClient) Suggest(ctx context.Context, req Request) ([]ghost.Suggestion, error) {
	if c.limiter != nil && !c.limiter.Allow() {
		return nil, ErrRateLimited
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(BuildPrompt(req)),
		},
		Temperature: openai.Float(0.2),
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion (%s): %w", c.model, err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrEmptyCompletion
	}
	return DecodeResponse([]byte(extractJSON(resp.Choices[0].Message.Content)))
}

// BuildPrompt renders the study context and the numbered report.
func BuildPrompt(req Request) string {
	var b strings.Builder
	s := req.Study
	fmt.Fprintf(&b, "Patient: %s, %d years\n", orUnknown(s.PatientSex), s.PatientAge)
	if s.StudyHeader != "" {
		fmt.Fprintf(&b, "Study: %s\n", s.StudyHeader)
	}
	if s.StudyInfo != "" {
		fmt.Fprintf(&b, "Info: %s\n", s.StudyInfo)
	}
	b.WriteString("Report:\n")
	for i, line := range strings.Split(req.ReportText, "\n") {
		fmt.Fprintf(&b, "%d: %s\n", i, line)
	}
	return b.String()
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}

// extractJSON strips prose or code fences around the model's JSON object.
func extractJSON(content string) string {
	start := strings.IndexByte(content, '{')
	end := strings.LastIndexByte(content, '}')
	if start < 0 || end < start {
		return content
	}
	return content[start : end+1]
}
