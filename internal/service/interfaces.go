// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Veraticus/akihabara-market/internal/model"
)

// ProductStore persists the shop's product catalogue.
type ProductStore interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	GetProduct(ctx context.Context, id int) (*model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	UpdateProduct(ctx context.Context, product *model.Product) error
	DeleteProduct(ctx context.Context, id int) error
	SearchProductsByName(ctx context.Context, fragment string) ([]model.Product, error)
	CountProducts(ctx context.Context) (int, error)
}

// CustomerStore persists registered customers.
type CustomerStore interface {
	CreateCustomer(ctx context.Context, customer *model.Customer) error
	GetCustomer(ctx context.Context, id int) (*model.Customer, error)
	GetCustomerByPhone(ctx context.Context, phone string) (*model.Customer, error)
	ListCustomers(ctx context.Context) ([]model.Customer, error)
	UpdateCustomer(ctx context.Context, customer *model.Customer) error
	DeleteCustomer(ctx context.Context, id int) error
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	ProductStore
	CustomerStore

	// Bulk and setup operations
	ImportProducts(ctx context.Context, products []model.Product, onProgress func()) error
	SeedIfEmpty(ctx context.Context) (bool, error)

	// Database management
	Migrate(ctx context.Context) error
	SchemaVersion(ctx context.Context) (int, error)
	Close() error
}

// Assistant drafts text for the shop with a language model.
type Assistant interface {
	DescribeProduct(ctx context.Context, product model.Product) (string, error)
	SuggestCategory(ctx context.Context, productName string) (string, error)
}

// RetryOptions configures retry behavior for operations. Logger receives
// one warning per retried attempt; nil means slog.Default.
type RetryOptions struct {
	Logger       *slog.Logger
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
