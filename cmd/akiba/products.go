package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Veraticus/akihabara-market/internal/cli"
	"github.com/Veraticus/akihabara-market/internal/common"
	"github.com/Veraticus/akihabara-market/internal/model"
)

func (a *app) productsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product", "p"},
		Short:   "Manage the product catalogue",
	}

	cmd.AddCommand(a.productsListCmd())
	cmd.AddCommand(a.productsGetCmd())
	cmd.AddCommand(a.productsAddCmd())
	cmd.AddCommand(a.productsUpdateCmd())
	cmd.AddCommand(a.productsDeleteCmd())
	cmd.AddCommand(a.productsSearchCmd())
	cmd.AddCommand(a.productsImportCmd())

	return cmd
}

func (a *app) productsListCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.initStorage(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			products, err := store.ListProducts(cmd.Context())
			if err != nil {
				return err
			}
			return writeProducts(cmd.OutOrStdout(), output, products, "No products registered.")
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format (table, json, yaml)")
	return cmd
}

func (a *app) productsGetCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one product",
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
			return writeOutput(cmd.OutOrStdout(), output, product, func() cli.Table {
				return cli.ProductTable([]model.Product{*product})
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format (table, json, yaml)")
	return cmd
}

func (a *app) productsAddCmd() *cobra.Command {
	var (
		name, category, price string
		stock                 int
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product",
		Example: `  akiba products add --name "Rem Figure" --category Figure --price 49.90 --stock 5
  akiba products add --name "Totoro Plush" --category Other --price "19,95"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := model.Product{Name: name, Category: category, Stock: stock}
			parsed, err := cli.ParsePrice(price)
			if err != nil {
				return common.NewUserError("Price must be a number.", err)
			}
			p.Price = parsed
			p.Normalize()
			if err := p.Validate(); err != nil {
				return err
			}

			store, err := a.initStorage(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.CreateProduct(cmd.Context(), &p); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Product added with ID %d.", p.ID)))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "product name")
	cmd.Flags().StringVar(&category, "category", "", "product category")
	cmd.Flags().StringVar(&price, "price", "", "unit price (a decimal comma is accepted)")
	cmd.Flags().IntVar(&stock, "stock", 0, "units in stock")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func (a *app) productsUpdateCmd() *cobra.Command {
	var (
		name, category, price string
		stock                 int
	)
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a product",
		Long:  "Change fields of a product. Fields whose flag is not given keep their value.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "product")
			if err != nil {
				return err
			}

			store, err := a.initStorage(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			p, err := store.GetProduct(cmd.Context(), id)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("name") {
				p.Name = name
			}
			if flags.Changed("category") {
				p.Category = category
			}
			if flags.Changed("price") {
				parsed, err := cli.ParsePrice(price)
				if err != nil {
					return common.NewUserError("Price must be a number.", err)
				}
				p.Price = parsed
			}
			if flags.Changed("stock") {
				p.Stock = stock
			}
			p.Normalize()

			if err := store.UpdateProduct(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Product updated."))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&category, "category", "", "new category")
	cmd.Flags().StringVar(&price, "price", "", "new unit price")
	cmd.Flags().IntVar(&stock, "stock", 0, "new stock")
	return cmd
}

func (a *app) productsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a product",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "product")
			if err != nil {
				return err
			}

			store, err := a.initStorage(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteProduct(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(cli.TrashIcon+" Product deleted."))
			return nil
		},
	}
}

func (a *app) productsSearchCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "search <name fragment>",
		Short: "Find products whose name contains a fragment",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fragment := strings.Join(args, " ")

			store, err := a.initStorage(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			products, err := store.SearchProductsByName(cmd.Context(), fragment)
			if err != nil {
				return err
			}
			return writeProducts(cmd.OutOrStdout(), output, products, fmt.Sprintf("No products match %q.", fragment))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format (table, json, yaml)")
	return cmd
}

func (a *app) productsImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import products from a CSV file",
		Long: `Import products from a CSV file with the columns
name, category, price, stock. A header row is skipped. Either every row is
imported or none is.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open import file: %w", err)
			}
			defer func() { _ = f.Close() }()

			products, err := parseProductsCSV(f)
			if err != nil {
				return err
			}

			store, err := a.initStorage(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			bar := newImportBar(cmd.ErrOrStderr(), len(products))
			err = store.ImportProducts(cmd.Context(), products, func() {
				if err := bar.Add(1); err != nil {
					slog.Warn("Failed to update progress bar", "error", err)
				}
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Imported %d products.", len(products))))
			return nil
		},
	}
	return cmd
}

func newImportBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[magenta][bold]Importing products...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[magenta]=[reset]",
			SaucerHead:    "[magenta]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(w)
		}),
	)
}

// parseProductsCSV reads name,category,price,stock rows. Line numbers in
// errors count the header.
func parseProductsCSV(r io.Reader) ([]model.Product, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 4
	reader.TrimLeadingSpace = true

	var products []model.Product
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, common.NewUserError("Could not read the CSV file.", err)
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "name") {
			continue
		}

		price, err := cli.ParsePrice(record[2])
		if err != nil {
			return nil, common.NewUserError(fmt.Sprintf("Line %d: price must be a number.", line), err)
		}
		stock, err := strconv.Atoi(strings.TrimSpace(record[3]))
		if err != nil {
			return nil, common.NewUserError(fmt.Sprintf("Line %d: stock must be a whole number.", line), err)
		}

		p := model.Product{Name: record[0], Category: record[1], Price: price, Stock: stock}
		p.Normalize()
		if err := p.Validate(); err != nil {
			return nil, common.NewUserError(fmt.Sprintf("Line %d: %v.", line, err), err)
		}
		products = append(products, p)
	}

	if len(products) == 0 {
		return nil, common.NewUserError("The CSV file has no products.", nil)
	}
	return products, nil
}

func writeProducts(w io.Writer, format string, products []model.Product, empty string) error {
	if len(products) == 0 && (format == outputTable || format == "") {
		_, err := fmt.Fprintln(w, cli.FormatInfo(empty))
		return err
	}
	if products == nil {
		products = []model.Product{}
	}
	return writeOutput(w, format, products, func() cli.Table {
		return cli.ProductTable(products)
	})
}
