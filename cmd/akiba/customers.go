package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Veraticus/akihabara-market/internal/cli"
	"github.com/Veraticus/akihabara-market/internal/model"
)

func (a *app) customersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "customers",
		Aliases: []string{"customer", "c"},
		Short:   "Manage registered customers",
	}

	cmd.AddCommand(a.customersListCmd())
	cmd.AddCommand(a.customersGetCmd())
	cmd.AddCommand(a.customersFindPhoneCmd())
	cmd.AddCommand(a.customersAddCmd())
	cmd.AddCommand(a.customersUpdateCmd())
	cmd.AddCommand(a.customersDeleteCmd())

	return cmd
}

func (a *app) customersListCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all customers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.initStorage(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			customers, err := store.ListCustomers(cmd.Context())
			if err != nil {
				return err
			}
			return writeCustomers(cmd.OutOrStdout(), output, customers)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format (table, json, yaml)")
	return cmd
}

func (a *app) customersGetCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "customer")
			if err != nil {
				return err
			}

			store, err := a.initStorage(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			customer, err := store.GetCustomer(cmd.Context(), id)
			if err != nil {
				return err
			}
			return writeCustomers(cmd.OutOrStdout(), output, []model.Customer{*customer})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format (table, json, yaml)")
	return cmd
}

func (a *app) customersFindPhoneCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "find-phone <phone>",
		Short: "Find a customer by phone number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.initStorage(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			customer, err := store.GetCustomerByPhone(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeCustomers(cmd.OutOrStdout(), output, []model.Customer{*customer})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format (table, json, yaml)")
	return cmd
}

func (a *app) customersAddCmd() *cobra.Command {
	var c model.Customer
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Register a customer",
		Example: `  akiba customers add --name "Sakura Haruno" --email sakura@example.com --phone "+81 90 1234 5678"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			customer := c
			customer.Normalize()
			if err := customer.Validate(); err != nil {
				return err
			}

			store, err := a.initStorage(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.CreateCustomer(cmd.Context(), &customer); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Customer added with ID %d.", customer.ID)))
			return nil
		},
	}
	cmd.Flags().StringVar(&c.Name, "name", "", "customer name")
	cmd.Flags().StringVar(&c.Email, "email", "", "email address")
	cmd.Flags().StringVar(&c.Phone, "phone", "", "phone number")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("phone")
	return cmd
}

func (a *app) customersUpdateCmd() *cobra.Command {
	var name, email, phone string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a customer",
		Long:  "Change fields of a customer. Fields whose flag is not given keep their value; the registration time never changes.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "customer")
			if err != nil {
				return err
			}

			store, err := a.initStorage(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			c, err := store.GetCustomer(cmd.Context(), id)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("name") {
				c.Name = name
			}
			if flags.Changed("email") {
				c.Email = email
			}
			if flags.Changed("phone") {
				c.Phone = phone
			}
			c.Normalize()

			if err := store.UpdateCustomer(cmd.Context(), c); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Customer updated."))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&email, "email", "", "new email address")
	cmd.Flags().StringVar(&phone, "phone", "", "new phone number")
	return cmd
}

func (a *app) customersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a customer",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "customer")
			if err != nil {
				return err
			}

			store, err := a.initStorage(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteCustomer(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(cli.TrashIcon+" Customer deleted."))
			return nil
		},
	}
}

func writeCustomers(w io.Writer, format string, customers []model.Customer) error {
	if len(customers) == 0 && (format == outputTable || format == "") {
		_, err := fmt.Fprintln(w, cli.FormatInfo("No customers registered."))
		return err
	}
	if customers == nil {
		customers = []model.Customer{}
	}
	return writeOutput(w, format, customers, func() cli.Table {
		return cli.CustomerTable(customers)
	})
}
