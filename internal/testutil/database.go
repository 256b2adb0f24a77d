// Package testutil provides shared fixtures for tests: an in-memory shop
// database and a scripted assistant.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/akihabara-market/internal/model"
	"github.com/Veraticus/akihabara-market/internal/service"
	"github.com/Veraticus/akihabara-market/internal/storage"
)

// TestDB represents a migrated in-memory database.
type TestDB struct {
	Storage   service.Storage
	t         *testing.T
	Products  []model.Product
	Customers []model.Customer
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	Products    []model.Product
	Customers   []model.Customer
}

// SetupTestDB creates a new in-memory test database holding the given
// products. It handles migrations and cleanup.
//
// Example:
//
//	db := testutil.SetupTestDB(t, testutil.SampleProducts()...)
func SetupTestDB(t *testing.T, products ...model.Product) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{Products: products})
}

// SetupTestDBWithOptions creates a test database with custom options.
// Seeded records get their IDs filled in on the returned TestDB.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	db := &TestDB{Storage: store, t: t}

	for _, p := range opts.Products {
		product := p
		if err := store.CreateProduct(ctx, &product); err != nil {
			t.Fatalf("failed to seed product %q: %v", p.Name, err)
		}
		db.Products = append(db.Products, product)
	}

	for _, c := range opts.Customers {
		customer := c
		if err := store.CreateCustomer(ctx, &customer); err != nil {
			t.Fatalf("failed to seed customer %q: %v", c.Email, err)
		}
		db.Customers = append(db.Customers, customer)
	}

	return db
}

// MustGetProduct reloads a product or fails the test.
func (db *TestDB) MustGetProduct(id int) *model.Product {
	db.t.Helper()
	product, err := db.Storage.GetProduct(context.Background(), id)
	if err != nil {
		db.t.Fatalf("failed to get product %d: %v", id, err)
	}
	return product
}

// MustGetCustomer reloads a customer or fails the test.
func (db *TestDB) MustGetCustomer(id int) *model.Customer {
	db.t.Helper()
	customer, err := db.Storage.GetCustomer(context.Background(), id)
	if err != nil {
		db.t.Fatalf("failed to get customer %d: %v", id, err)
	}
	return customer
}
