package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/akihabara-market/internal/model"
)

func TestSQLiteStorage_SeedIfEmpty(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	seeded, err := store.SeedIfEmpty(ctx)
	if err != nil {
		t.Fatalf("SeedIfEmpty() error = %v", err)
	}
	if !seeded {
		t.Fatal("SeedIfEmpty() on empty table returned false")
	}

	products, err := store.ListProducts(ctx)
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}
	if len(products) != len(DemoProducts) {
		t.Fatalf("got %d products, want %d", len(products), len(DemoProducts))
	}
	for i, p := range products {
		if p.Name != DemoProducts[i].Name || p.Price != DemoProducts[i].Price {
			t.Errorf("products[%d] = %+v, want %+v", i, p, DemoProducts[i])
		}
	}

	seeded, err = store.SeedIfEmpty(ctx)
	if err != nil {
		t.Fatalf("second SeedIfEmpty() error = %v", err)
	}
	if seeded {
		t.Error("SeedIfEmpty() seeded a non-empty table")
	}
	if DemoProducts[0].ID != 0 {
		t.Error("SeedIfEmpty() mutated DemoProducts")
	}
}

func TestSQLiteStorage_ImportProducts(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	products := []model.Product{
		{Name: "Evangelion Unit-01 Model", Category: "Figure", Price: 89, Stock: 2},
		{Name: "Berserk Deluxe Vol. 1", Category: "Manga", Price: 49.99, Stock: 6},
	}

	progress := 0
	if err := store.ImportProducts(ctx, products, func() { progress++ }); err != nil {
		t.Fatalf("ImportProducts() error = %v", err)
	}
	if progress != len(products) {
		t.Errorf("progress callbacks = %d, want %d", progress, len(products))
	}
	for _, p := range products {
		if p.ID <= 0 {
			t.Errorf("product %q has no ID after import", p.Name)
		}
	}

	count, err := store.CountProducts(ctx)
	if err != nil {
		t.Fatalf("CountProducts() error = %v", err)
	}
	if count != 2 {
		t.Errorf("CountProducts() = %d, want 2", count)
	}
}

func TestSQLiteStorage_ImportProductsAllOrNothing(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	products := []model.Product{
		{Name: "Valid", Category: "Other", Price: 1, Stock: 1},
		{Name: "Broken", Category: "Other", Price: -5, Stock: 1},
	}

	err := store.ImportProducts(ctx, products, nil)
	if !errors.Is(err, model.ErrInvalidProduct) {
		t.Fatalf("ImportProducts() error = %v, want ErrInvalidProduct", err)
	}

	count, err := store.CountProducts(ctx)
	if err != nil {
		t.Fatalf("CountProducts() error = %v", err)
	}
	if count != 0 {
		t.Errorf("partial import stored %d products", count)
	}

	if err := store.ImportProducts(ctx, nil, nil); !errors.Is(err, ErrEmptySlice) {
		t.Errorf("ImportProducts(nil) error = %v, want ErrEmptySlice", err)
	}
}
