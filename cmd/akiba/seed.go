package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/akihabara-market/internal/cli"
	"github.com/Veraticus/akihabara-market/internal/storage"
)

func (a *app) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the demo products into an empty catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.initStorage(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			seeded, err := store.SeedIfEmpty(cmd.Context())
			if err != nil {
				return err
			}
			if !seeded {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("The catalogue already has products; nothing to seed."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Seeded %d demo products.", len(storage.DemoProducts))))
			return nil
		},
	}
}
