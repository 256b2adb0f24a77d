package cli

import (
	"context"
	"fmt"

	"github.com/Veraticus/akihabara-market/internal/model"
)

const customerMenu = `1. Add customer
2. Find customer by ID
3. List customers
4. Update customer
5. Delete customer
6. Find customer by phone
0. Back to main menu`

func (m *Menu) customerMenu(ctx context.Context) error {
	return m.submenu(ctx, "Customers", customerMenu, func(option int) error {
		switch option {
		case 1:
			return m.addCustomer(ctx)
		case 2:
			return m.findCustomer(ctx)
		case 3:
			return m.listCustomers(ctx)
		case 4:
			return m.updateCustomer(ctx)
		case 5:
			return m.deleteCustomer(ctx)
		case 6:
			return m.findCustomerByPhone(ctx)
		default:
			m.println(FormatWarning("Invalid option."))
			return nil
		}
	})
}

func (m *Menu) addCustomer(ctx context.Context) error {
	m.heading("Add customer")

	var c model.Customer
	var err error
	if c.Name, err = m.ask(ctx, "Name:"); err != nil {
		return err
	}
	if c.Email, err = m.ask(ctx, "Email:"); err != nil {
		return err
	}
	if c.Phone, err = m.ask(ctx, "Phone:"); err != nil {
		return err
	}

	if err := m.store.CreateCustomer(ctx, &c); err != nil {
		m.report("add customer", err)
		return nil
	}
	m.println(FormatSuccess(fmt.Sprintf("Customer added with ID %d.", c.ID)))
	return nil
}

func (m *Menu) findCustomer(ctx context.Context) error {
	id, err := m.askInt(ctx, "Customer ID:")
	if err != nil {
		return err
	}

	customer, err := m.store.GetCustomer(ctx, id)
	if err != nil {
		m.report("find customer", err)
		return nil
	}
	m.printCustomer(*customer)
	return nil
}

func (m *Menu) findCustomerByPhone(ctx context.Context) error {
	phone, err := m.ask(ctx, "Phone:")
	if err != nil {
		return err
	}

	customer, err := m.store.GetCustomerByPhone(ctx, phone)
	if err != nil {
		m.report("find customer by phone", err)
		return nil
	}
	m.printCustomer(*customer)
	return nil
}

func (m *Menu) listCustomers(ctx context.Context) error {
	customers, err := m.store.ListCustomers(ctx)
	if err != nil {
		m.report("list customers", err)
		return nil
	}
	if len(customers) == 0 {
		m.println(FormatInfo("No customers registered."))
		return nil
	}
	return CustomerTable(customers).Render(m.out)
}

func (m *Menu) updateCustomer(ctx context.Context) error {
	id, err := m.askInt(ctx, "Customer ID to update:")
	if err != nil {
		return err
	}

	customer, err := m.store.GetCustomer(ctx, id)
	if err != nil {
		m.report("update customer", err)
		return nil
	}

	m.println("Current: " + customer.String())
	m.println(SubtleStyle.Render("Leave a field blank to keep its value."))
	if customer.Name, err = m.askDefault(ctx, "New name", customer.Name); err != nil {
		return err
	}
	if customer.Email, err = m.askDefault(ctx, "New email", customer.Email); err != nil {
		return err
	}
	if customer.Phone, err = m.askDefault(ctx, "New phone", customer.Phone); err != nil {
		return err
	}

	if err := m.store.UpdateCustomer(ctx, customer); err != nil {
		m.report("update customer", err)
		return nil
	}
	m.println(FormatSuccess("Customer updated."))
	return nil
}

func (m *Menu) deleteCustomer(ctx context.Context) error {
	id, err := m.askInt(ctx, "Customer ID to delete:")
	if err != nil {
		return err
	}

	if err := m.store.DeleteCustomer(ctx, id); err != nil {
		m.report("delete customer", err)
		return nil
	}
	m.println(FormatSuccess(TrashIcon + " Customer deleted."))
	return nil
}

func (m *Menu) printCustomer(c model.Customer) {
	m.printf("ID:         %d\n", c.ID)
	m.printf("Name:       %s\n", c.Name)
	m.printf("Email:      %s\n", c.Email)
	m.printf("Phone:      %s\n", c.Phone)
	m.printf("Registered: %s\n", c.RegisteredAtString())
}
