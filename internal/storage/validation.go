// Package storage provides the data persistence layer for the shop.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/akihabara-market/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrEmptySlice   = errors.New("slice cannot be empty")
	ErrInvalidID    = errors.New("id must be positive")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateID ensures a row id is positive.
func validateID(id int, paramName string) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s=%d", ErrInvalidID, paramName, id)
	}
	return nil
}

// validateProduct normalizes and validates a product before it is written.
func validateProduct(product *model.Product) error {
	if product == nil {
		return fmt.Errorf("%w: product", ErrNilParameter)
	}
	product.Normalize()
	return product.Validate()
}

// validateCustomer normalizes and validates a customer before it is written.
func validateCustomer(customer *model.Customer) error {
	if customer == nil {
		return fmt.Errorf("%w: customer", ErrNilParameter)
	}
	customer.Normalize()
	return customer.Validate()
}
