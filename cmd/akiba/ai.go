package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/akihabara-market/internal/cli"
)

func (a *app) aiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ai",
		Short: "Ask the AI assistant for copy or a category",
		Long: `Ask the configured language model for help. Requires llm.api_key or the
provider's API key environment variable (OPENROUTER_API_KEY by default).`,
	}

	cmd.AddCommand(a.aiDescribeCmd())
	cmd.AddCommand(a.aiSuggestCategoryCmd())

	return cmd
}

func (a *app) aiDescribeCmd() *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "describe <product-id>",
		Short: "Draft a marketing description for a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "product")
			if err != nil {
				return err
			}

			store, err := a.initStorage(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			product, err := store.GetProduct(cmd.Context(), id)
			if err != nil {
				return err
			}

			assistant, err := a.requireAssistant()
			if err != nil {
				return err
			}
			defer func() { _ = assistant.Close() }()

			text, err := assistant.DescribeProduct(cmd.Context(), *product)
			if err != nil {
				return fmt.Errorf("AI request failed: %w", err)
			}

			if raw {
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}
			title := fmt.Sprintf("%s Description for %s", cli.RobotIcon, product.Name)
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBox(title, cli.RenderMarkdown(text)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print the model's markdown without rendering it")
	return cmd
}

func (a *app) aiSuggestCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest-category <product name>",
		Short: "Suggest a category for a new product name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")

			assistant, err := a.requireAssistant()
			if err != nil {
				return err
			}
			defer func() { _ = assistant.Close() }()

			category, err := assistant.SuggestCategory(cmd.Context(), name)
			if err != nil {
				return fmt.Errorf("AI request failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), category)
			return nil
		},
	}
}
