package tui

import (
	"github.com/Veraticus/akihabara-market/internal/service"
	"github.com/Veraticus/akihabara-market/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme     themes.Theme
	Storage   service.Storage
	Assistant service.Assistant
	Width     int
	Height    int
	AltScreen bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:     themes.Default,
		Width:     100,
		Height:    30,
		AltScreen: true,
	}
}

// WithStorage sets the storage service.
func WithStorage(storage service.Storage) Option {
	return func(c *Config) {
		c.Storage = storage
	}
}

// WithAssistant enables the AI actions.
func WithAssistant(assistant service.Assistant) Option {
	return func(c *Config) {
		c.Assistant = assistant
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithAltScreen controls whether the program takes over the whole screen.
func WithAltScreen(enabled bool) Option {
	return func(c *Config) {
		c.AltScreen = enabled
	}
}
