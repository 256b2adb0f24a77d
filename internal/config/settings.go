package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/akihabara-market/internal/common"
	"github.com/spf13/viper"
)

// Defaults applied by SetDefaults.
const (
	DefaultDatabasePath = dataHome + "/akiba/akiba.db"
	DefaultLogFile      = dataHome + "/akiba/akiba.log"
	DefaultProvider     = "openrouter"
	DefaultLanguage     = "Spanish"
	DefaultReferer      = "https://akiba.local"
	DefaultTitle        = "AkihabaraMarket"
	EnvPrefix           = "AKIBA"
)

const jdbcSQLitePrefix = "jdbc:sqlite:"

// Default models per provider, used when llm.model is unset.
var defaultModels = map[string]string{
	"openrouter": "openai/gpt-4o-mini",
	"openai":     "gpt-4o-mini",
	"anthropic":  "claude-3-5-haiku-latest",
	"gemini":     "gemini-2.5-flash",
}

// Provider API key environment variables consulted when llm.api_key is empty.
var apiKeyEnv = map[string]string{
	"openrouter": "OPENROUTER_API_KEY",
	"openai":     "OPENAI_API_KEY",
	"anthropic":  "ANTHROPIC_API_KEY",
	"gemini":     "GEMINI_API_KEY",
}

// Settings is the resolved application configuration.
type Settings struct {
	Logging   LoggingSettings
	Database  DatabaseSettings
	Assistant AssistantSettings
	LLM       LLMSettings
	Seed      bool
}

// DatabaseSettings selects the SQLite driver and file.
type DatabaseSettings struct {
	Driver string
	Path   string
}

// LLMSettings configures the chat-completion provider.
type LLMSettings struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Referer     string
	Title       string
	Timeout     time.Duration
	RetryDelay  time.Duration
	CacheTTL    time.Duration
	Temperature float64
	MaxRetries  int
	RateLimit   int
	MaxTokens   int
}

// Enabled reports whether an API key is available.
func (l LLMSettings) Enabled() bool {
	return l.APIKey != ""
}

// AssistantSettings configures prompt wording.
type AssistantSettings struct {
	Language string
}

// LoggingSettings configures the slog handler.
type LoggingSettings struct {
	Level  string
	Format string
	File   string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.path", DefaultDatabasePath)
	v.SetDefault("seed.on_start", true)
	v.SetDefault("llm.provider", DefaultProvider)
	v.SetDefault("llm.referer", DefaultReferer)
	v.SetDefault("llm.title", DefaultTitle)
	v.SetDefault("llm.timeout", 30*time.Second)
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.retry_delay", time.Second)
	v.SetDefault("llm.cache_ttl", 24*time.Hour)
	v.SetDefault("llm.rate_limit", 60)
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.max_tokens", 300)
	v.SetDefault("assistant.language", DefaultLanguage)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", DefaultLogFile)
}

// Configure points v at the config file and environment. An explicit
// cfgFile wins; otherwise config.{yaml,properties,...} is searched for in
// $HOME/.config/akiba and the working directory. A missing file is not an
// error.
func Configure(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".config", "akiba"))
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

// Load resolves Settings from v, folding in the legacy properties keys
// (db.url, api.key, model) and provider API key environment variables.
func Load(v *viper.Viper) (Settings, error) {
	s := Settings{
		Database: DatabaseSettings{
			Driver: v.GetString("database.driver"),
			Path:   v.GetString("database.path"),
		},
		Seed: v.GetBool("seed.on_start"),
		LLM: LLMSettings{
			Provider:    strings.ToLower(strings.TrimSpace(v.GetString("llm.provider"))),
			APIKey:      strings.TrimSpace(v.GetString("llm.api_key")),
			Model:       strings.TrimSpace(v.GetString("llm.model")),
			BaseURL:     v.GetString("llm.base_url"),
			Referer:     v.GetString("llm.referer"),
			Title:       v.GetString("llm.title"),
			Timeout:     v.GetDuration("llm.timeout"),
			MaxRetries:  v.GetInt("llm.max_retries"),
			RetryDelay:  v.GetDuration("llm.retry_delay"),
			CacheTTL:    v.GetDuration("llm.cache_ttl"),
			RateLimit:   v.GetInt("llm.rate_limit"),
			Temperature: v.GetFloat64("llm.temperature"),
			MaxTokens:   v.GetInt("llm.max_tokens"),
		},
		Assistant: AssistantSettings{Language: v.GetString("assistant.language")},
		Logging: LoggingSettings{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
			File:   v.GetString("logging.file"),
		},
	}

	if err := applyLegacyKeys(v, &s); err != nil {
		return Settings{}, err
	}

	if s.LLM.Provider == "" {
		s.LLM.Provider = DefaultProvider
	}
	envKey, ok := apiKeyEnv[s.LLM.Provider]
	if !ok {
		return Settings{}, fmt.Errorf("%w: unsupported llm.provider %q", common.ErrInvalidConfig, s.LLM.Provider)
	}
	if s.LLM.APIKey == "" {
		s.LLM.APIKey = strings.TrimSpace(os.Getenv(envKey))
	}
	if s.LLM.Model == "" {
		s.LLM.Model = defaultModels[s.LLM.Provider]
	}
	if s.Assistant.Language == "" {
		s.Assistant.Language = DefaultLanguage
	}

	s.Database.Path = ExpandPath(s.Database.Path)
	s.Logging.File = ExpandPath(s.Logging.File)
	if s.Database.Path == "" {
		return Settings{}, fmt.Errorf("%w: database.path", common.ErrMissingConfig)
	}

	return s, nil
}

// applyLegacyKeys maps the keys of a legacy config.properties
// onto the current layout. New-style keys take precedence; db.url only
// replaces database.path while the latter is still the default.
func applyLegacyKeys(v *viper.Viper, s *Settings) error {
	if url := strings.TrimSpace(v.GetString("db.url")); url != "" && s.Database.Path == DefaultDatabasePath {
		path, err := parseDatabaseURL(url)
		if err != nil {
			return err
		}
		s.Database.Path = path
	}
	if v.IsSet("db.user") || v.IsSet("db.password") {
		slog.Warn("db.user and db.password are ignored: SQLite has no credentials")
	}
	if s.LLM.APIKey == "" {
		s.LLM.APIKey = strings.TrimSpace(v.GetString("api.key"))
	}
	if s.LLM.Model == "" {
		// A bare "model" key is only meaningful in a properties file; in
		// YAML it would be a map and GetString returns "".
		s.LLM.Model = strings.TrimSpace(v.GetString("model"))
	}
	return nil
}

// parseDatabaseURL accepts a jdbc:sqlite: URL or a plain path.
func parseDatabaseURL(url string) (string, error) {
	if strings.HasPrefix(url, jdbcSQLitePrefix) {
		path := strings.TrimPrefix(url, jdbcSQLitePrefix)
		if path == "" {
			return "", fmt.Errorf("%w: db.url has no database path", common.ErrInvalidConfig)
		}
		return path, nil
	}
	if strings.HasPrefix(url, "jdbc:") {
		return "", fmt.Errorf("%w: db.url %q is not a SQLite URL", common.ErrInvalidConfig, url)
	}
	return url, nil
}
