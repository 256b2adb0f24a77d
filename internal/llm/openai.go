package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/Veraticus/akihabara-market/internal/common"
)

const (
	openRouterBaseURL = "https://openrouter.ai/api/v1"
	openAIBaseURL     = "https://api.openai.com/v1"
)

// chatClient talks to any OpenAI-compatible chat completions endpoint.
type chatClient struct {
	client      openai.Client
	provider    string
	model       string
	temperature float64
	maxTokens   int
}

// newOpenRouterClient creates a client for OpenRouter. OpenRouter uses the
// HTTP-Referer and X-Title headers to attribute requests to an app.
func newOpenRouterClient(cfg Config) (Client, error) {
	opts := []option.RequestOption{}
	if referer := strings.TrimSpace(cfg.Referer); referer != "" {
		opts = append(opts, option.WithHeader("HTTP-Referer", referer))
	}
	if title := strings.TrimSpace(cfg.Title); title != "" {
		opts = append(opts, option.WithHeader("X-Title", title))
	}
	return newChatClient(ProviderOpenRouter, openRouterBaseURL, cfg, opts...)
}

// newOpenAIClient creates a client for the OpenAI API.
func newOpenAIClient(cfg Config) (Client, error) {
	return newChatClient(ProviderOpenAI, openAIBaseURL, cfg)
}

func newChatClient(provider, defaultBaseURL string, cfg Config, extra ...option.RequestOption) (*chatClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%s: %w", provider, ErrMissingAPIKey)
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("%s: %w: model", provider, common.ErrMissingConfig)
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(baseURL),
		option.WithHTTPClient(newHTTPClient(cfg.Timeout)),
		// Assistant owns retries.
		option.WithMaxRetries(0),
	}
	opts = append(opts, extra...)

	return &chatClient{
		client:      openai.NewClient(opts...),
		provider:    provider,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

// Complete sends prompt as a single user message.
func (c *chatClient) Complete(ctx context.Context, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(c.temperature),
	}
	if c.maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(c.maxTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", &APIError{
				Provider:   c.provider,
				StatusCode: apiErr.StatusCode,
				Message:    apiErr.Message,
			}
		}
		return "", fmt.Errorf("%s request failed: %w", c.provider, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: %w", c.provider, common.ErrEmptyCompletion)
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("%s: %w", c.provider, common.ErrEmptyCompletion)
	}
	return content, nil
}
