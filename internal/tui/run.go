// Package tui implements the interactive form application for products and
// customers.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// New builds the root model. Storage is required; the assistant is optional.
func New(opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Storage == nil {
		return Model{}, errors.New("storage is required")
	}
	return newModel(cfg), nil
}

// Run starts the form application and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, opts ...Option) error {
	return run(ctx, os.Stdin, os.Stdout, opts...)
}

func run(ctx context.Context, in io.Reader, out io.Writer, opts ...Option) error {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	m, err := New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	programOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	}
	if cfg.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	if _, err := tea.NewProgram(m, programOpts...).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
