package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/Veraticus/akihabara-market/internal/common"
)

type geminiModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

var newGenAIClient = func(ctx context.Context, cfg *genai.ClientConfig) (*genai.Client, error) {
	return genai.NewClient(ctx, cfg)
}

// geminiClient implements the Client interface with the Google GenAI SDK.
type geminiClient struct {
	models      geminiModels
	model       string
	temperature float64
	maxTokens   int
}

func newGeminiClient(cfg Config) (Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("gemini: %w", ErrMissingAPIKey)
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("gemini: %w: model", common.ErrMissingConfig)
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: newHTTPClient(cfg.Timeout),
	}
	if baseURL := strings.TrimSpace(cfg.BaseURL); baseURL != "" {
		clientCfg.HTTPOptions.BaseURL = baseURL
	}

	client, err := newGenAIClient(context.Background(), clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &geminiClient{
		models:      client.Models,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

// Complete sends prompt as a single user turn.
func (c *geminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: prompt}},
	}}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(c.temperature)),
		ThinkingConfig: &genai.ThinkingConfig{
			IncludeThoughts: false,
			ThinkingBudget:  genai.Ptr(int32(0)),
		},
	}
	if c.maxTokens > 0 {
		config.MaxOutputTokens = int32(c.maxTokens)
	}

	resp, err := c.models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", &APIError{Provider: ProviderGemini, StatusCode: apiErr.Code, Message: apiErr.Message}
		}
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	content := strings.TrimSpace(visibleText(resp))
	if content == "" {
		return "", fmt.Errorf("gemini: %w", common.ErrEmptyCompletion)
	}
	return content, nil
}

// visibleText joins the text parts of the first candidate, skipping thoughts.
func visibleText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought || part.Text == "" {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String()
}
