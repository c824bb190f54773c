// ABOUTME: Remote summarizer backed by an OpenAI-compatible chat completion API
// ABOUTME: Optional layer in the chain; extractive summarizers remain the fallback

package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	apperrors "newsdesk-api/core/errors"
)

const (
	defaultLLMModel   = "gpt-4o-mini"
	defaultLLMTimeout = 20 * time.Second

	// maxPromptChars bounds the article text sent upstream
	maxPromptChars = 6000
)

const systemPrompt = `You summarize news articles for a reader app.
Reply with plain text only: no markdown, no lists, no preamble.
Stay factual and neutral and never add information that is not in the article.`

// LLMConfig configures the remote summarizer
type LLMConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// LLMSummarizer asks a chat model for a short summary
type LLMSummarizer struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewLLMSummarizer creates a remote summarizer. BaseURL overrides the API
// endpoint for OpenAI-compatible providers.
func NewLLMSummarizer(cfg LLMConfig) (*LLMSummarizer, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("llm summarizer requires an API key")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	model := cfg.Model
	if model == "" {
		model = defaultLLMModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultLLMTimeout
	}

	return &LLMSummarizer{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   model,
		timeout: timeout,
	}, nil
}

func (l *LLMSummarizer) Name() string { return "llm" }

func (l *LLMSummarizer) Summarize(ctx context.Context, in Input) (string, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return "", ErrNoContent
	}
	if r := []rune(content); len(r) > maxPromptChars {
		content = string(r[:maxPromptChars])
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	prompt := fmt.Sprintf("Summarize this article in at most %d sentences.\n\nTitle: %s\n\n%s",
		in.sentences(), in.Title, content)

	resp, err := l.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: l.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
		MaxTokens:   300,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", &apperrors.ExternalAPIError{
				StatusCode: apiErr.HTTPStatusCode,
				Message:    apiErr.Message,
				API:        "llm",
			}
		}
		return "", apperrors.WrapError(err, "llm completion failed")
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("llm returned no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("llm returned an empty summary")
	}
	return text, nil
}
