package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/akihabara-market/internal/cli"
	"github.com/Veraticus/akihabara-market/internal/common"
	"github.com/Veraticus/akihabara-market/internal/llm"
	"github.com/Veraticus/akihabara-market/internal/service"
	"github.com/Veraticus/akihabara-market/internal/storage"
)

// Output formats accepted by --output.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

// initStorage opens the configured database and brings the schema up to
// date. With seed set, an empty catalogue gets the demo products.
func (a *app) initStorage(ctx context.Context, seed bool) (service.Storage, error) {
	store, err := storage.NewSQLiteStorageWithDriver(a.settings.Database.Driver, a.settings.Database.Path)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if seed && a.settings.Seed {
		if _, err := store.SeedIfEmpty(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
	}

	return store, nil
}

// llmConfig maps the resolved settings onto the provider configuration.
func (a *app) llmConfig() llm.Config {
	s := a.settings.LLM
	return llm.Config{
		Provider:    s.Provider,
		APIKey:      s.APIKey,
		Model:       s.Model,
		BaseURL:     s.BaseURL,
		Referer:     s.Referer,
		Title:       s.Title,
		Language:    a.settings.Assistant.Language,
		Timeout:     s.Timeout,
		RetryDelay:  s.RetryDelay,
		CacheTTL:    s.CacheTTL,
		Temperature: s.Temperature,
		MaxRetries:  s.MaxRetries,
		RateLimit:   s.RateLimit,
		MaxTokens:   s.MaxTokens,
	}
}

// createAssistant returns nil when no API key is configured.
func (a *app) createAssistant() (*llm.Assistant, error) {
	if !a.settings.LLM.Enabled() {
		slog.Debug("AI assistant disabled, no API key configured", "provider", a.settings.LLM.Provider)
		return nil, nil
	}

	assistant, err := llm.NewAssistant(a.llmConfig(), slog.Default())
	if err != nil {
		return nil, err
	}
	slog.Debug("AI assistant enabled", "provider", a.settings.LLM.Provider, "model", a.settings.LLM.Model)
	return assistant, nil
}

// requireAssistant is createAssistant for commands that cannot run without it.
func (a *app) requireAssistant() (*llm.Assistant, error) {
	assistant, err := a.createAssistant()
	if err != nil {
		return nil, err
	}
	if assistant == nil {
		return nil, common.NewUserError(cli.MsgAssistantDisabled, common.ErrAssistantDisabled)
	}
	return assistant, nil
}

func parseID(arg, what string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id <= 0 {
		return 0, common.NewUserError(fmt.Sprintf("invalid %s ID %q", what, arg), err)
	}
	return id, nil
}

// writeOutput prints value in the requested format; table renders the
// human-readable form.
func writeOutput(w io.Writer, format string, value any, table func() cli.Table) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case outputTable, "":
		return table().Render(w)
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return err
		}
		return enc.Close()
	default:
		return common.NewUserError(fmt.Sprintf("unknown output format %q (use table, json or yaml)", format), nil)
	}
}
