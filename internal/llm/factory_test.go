package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/akihabara-market/internal/common"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		wantType any
		wantErr  error
	}{
		{name: "default is openrouter", provider: "", wantType: &chatClient{}},
		{name: "openrouter", provider: "OpenRouter", wantType: &chatClient{}},
		{name: "openai", provider: "openai", wantType: &chatClient{}},
		{name: "anthropic", provider: "anthropic", wantType: &anthropicClient{}},
		{name: "unknown", provider: "claudecode", wantErr: common.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(Config{Provider: tt.provider, APIKey: "key", Model: "m"})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, client)
		})
	}
}

func TestNewClient_MissingAPIKey(t *testing.T) {
	_, err := NewClient(Config{Provider: ProviderOpenRouter, APIKey: "  ", Model: "m"})
	require.ErrorIs(t, err, ErrMissingAPIKey)
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestNewClient_OpenRouterSetsProvider(t *testing.T) {
	client, err := NewClient(Config{Provider: ProviderOpenRouter, APIKey: "key", Model: "m"})
	require.NoError(t, err)
	chat, ok := client.(*chatClient)
	require.True(t, ok)
	assert.Equal(t, ProviderOpenRouter, chat.provider)
}
