// Package model defines the records the shop keeps: products and customers.
package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidProduct is returned when a product fails validation.
var ErrInvalidProduct = errors.New("invalid product")

// ProductCategories is the category list offered to the assistant when it
// suggests a category for a new product.
var ProductCategories = []string{
	"Figure",
	"Manga",
	"Poster",
	"Keychain",
	"Clothing",
	"Video game",
	"Other",
}

// Product represents an item for sale in the shop.
type Product struct {
	Name     string  `json:"name" yaml:"name"`
	Category string  `json:"category" yaml:"category"`
	Price    float64 `json:"price" yaml:"price"`
	ID       int     `json:"id" yaml:"id"`
	Stock    int     `json:"stock" yaml:"stock"`
}

// Validate checks that the product can be persisted.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if strings.TrimSpace(p.Category) == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidProduct)
	}
	if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
		return fmt.Errorf("%w: price must be a number", ErrInvalidProduct)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidProduct)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", ErrInvalidProduct)
	}
	return nil
}

// Normalize trims surrounding whitespace from the text fields.
func (p *Product) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
}

// String renders a one-line summary of the product.
func (p Product) String() string {
	return fmt.Sprintf("#%d %s [%s] %.2f (stock %d)", p.ID, p.Name, p.Category, p.Price, p.Stock)
}
