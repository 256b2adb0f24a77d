package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/akihabara-market/internal/common"
	"github.com/Veraticus/akihabara-market/internal/model"
)

var (
	// ErrCustomerNotFound is returned when no customer matches the lookup.
	ErrCustomerNotFound = fmt.Errorf("customer %w", common.ErrNotFound)
	// ErrDuplicateEmail is returned when another customer already uses the email.
	ErrDuplicateEmail = fmt.Errorf("email already registered: %w", common.ErrDuplicateEntry)
)

const customerColumns = `id, name, email, phone, registered_at`

func scanCustomer(row rowScanner) (model.Customer, error) {
	var (
		c            model.Customer
		registeredAt sql.NullTime
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &registeredAt); err != nil {
		return model.Customer{}, err
	}
	if registeredAt.Valid {
		c.RegisteredAt = registeredAt.Time
	}
	return c, nil
}

// CreateCustomer inserts a new customer, setting its ID and registration time.
func (s *SQLiteStorage) CreateCustomer(ctx context.Context, customer *model.Customer) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCustomer(customer); err != nil {
		return err
	}

	query := `
		INSERT INTO customers (name, email, phone, registered_at)
		VALUES (?, ?, ?, ?)`

	now := time.Now().UTC().Truncate(time.Second)
	result, err := s.db.ExecContext(ctx, query, customer.Name, customer.Email, customer.Phone, now)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create customer: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get customer ID: %w", err)
	}

	customer.ID = int(id)
	customer.RegisteredAt = now

	slog.Info("created customer", "id", customer.ID, "email", customer.Email)
	return nil
}

// GetCustomer returns the customer with the given ID.
func (s *SQLiteStorage) GetCustomer(ctx context.Context, id int) (*model.Customer, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}

	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = ?`
	return s.queryCustomer(ctx, query, id)
}

// GetCustomerByPhone returns the first customer registered with the phone number.
func (s *SQLiteStorage) GetCustomerByPhone(ctx context.Context, phone string) (*model.Customer, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	phone = model.NormalizePhone(phone)
	if err := validateString(phone, "phone"); err != nil {
		return nil, err
	}

	query := `SELECT ` + customerColumns + ` FROM customers WHERE phone = ? ORDER BY id LIMIT 1`
	return s.queryCustomer(ctx, query, phone)
}

func (s *SQLiteStorage) queryCustomer(ctx context.Context, query string, args ...any) (*model.Customer, error) {
	customer, err := scanCustomer(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}
	return &customer, nil
}

// ListCustomers returns every customer ordered by ID.
func (s *SQLiteStorage) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	customers := []model.Customer{}
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}

	slog.Debug("retrieved customers", "count", len(customers))
	return customers, nil
}

// UpdateCustomer overwrites name, email and phone. The registration time is kept.
func (s *SQLiteStorage) UpdateCustomer(ctx context.Context, customer *model.Customer) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCustomer(customer); err != nil {
		return err
	}
	if err := validateID(customer.ID, "customer.ID"); err != nil {
		return err
	}

	query := `
		UPDATE customers
		SET name = ?, email = ?, phone = ?
		WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, customer.Name, customer.Email, customer.Phone, customer.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to update customer: %w", err)
	}

	if err := requireAffected(result, ErrCustomerNotFound); err != nil {
		return err
	}

	slog.Info("updated customer", "id", customer.ID)
	return nil
}

// DeleteCustomer removes the customer with the given ID.
func (s *SQLiteStorage) DeleteCustomer(ctx context.Context, id int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	if err := requireAffected(result, ErrCustomerNotFound); err != nil {
		return err
	}

	slog.Info("deleted customer", "id", id)
	return nil
}
