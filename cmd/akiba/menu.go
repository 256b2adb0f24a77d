package main

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/akihabara-market/internal/cli"
	"github.com/Veraticus/akihabara-market/internal/service"
	"github.com/Veraticus/akihabara-market/internal/tui"
)

func (a *app) menuCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "menu",
		Short:       "Open the console menu (the default command)",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{interactiveAnnotation: "true"},
		RunE:        a.runMenu,
	}
}

func (a *app) runMenu(cmd *cobra.Command, _ []string) error {
	store, err := a.initStorage(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var assistant service.Assistant
	ai, err := a.createAssistant()
	if err != nil {
		return err
	}
	if ai != nil {
		defer func() { _ = ai.Close() }()
		assistant = ai
	}

	return cli.NewMenu(store, assistant, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
}

func (a *app) uiCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "ui",
		Aliases:     []string{"tui"},
		Short:       "Open the form application",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{interactiveAnnotation: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.initStorage(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			opts := []tui.Option{tui.WithStorage(store)}
			ai, err := a.createAssistant()
			if err != nil {
				return err
			}
			if ai != nil {
				defer func() { _ = ai.Close() }()
				opts = append(opts, tui.WithAssistant(ai))
			}

			return tui.Run(cmd.Context(), opts...)
		},
	}
}
