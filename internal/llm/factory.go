package llm

import (
	"fmt"
	"strings"

	"github.com/Veraticus/akihabara-market/internal/common"
)

// Provider names accepted by NewClient.
const (
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderGemini     = "gemini"
)

// NewClient creates a provider client based on the provided configuration.
func NewClient(cfg Config) (Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	switch strings.ToLower(cfg.Provider) {
	case ProviderOpenRouter, "":
		return newOpenRouterClient(cfg)
	case ProviderOpenAI:
		return newOpenAIClient(cfg)
	case ProviderAnthropic:
		return newAnthropicClient(cfg)
	case ProviderGemini:
		return newGeminiClient(cfg)
	default:
		return nil, fmt.Errorf("%w: unsupported LLM provider %q", common.ErrInvalidConfig, cfg.Provider)
	}
}
