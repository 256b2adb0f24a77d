package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/akihabara-market/internal/model"
)

// DemoProducts is inserted by SeedIfEmpty into an empty catalogue.
var DemoProducts = []model.Product{
	{Name: "Anya Forger Figure", Category: "Figure", Price: 59.95, Stock: 8},
	{Name: "Chainsaw Man Manga Vol. 1", Category: "Manga", Price: 9.99, Stock: 20},
	{Name: "Studio Ghibli Poster Collection", Category: "Poster", Price: 15.50, Stock: 15},
}

// SeedIfEmpty inserts DemoProducts when the product table is empty and
// reports whether it did.
func (s *SQLiteStorage) SeedIfEmpty(ctx context.Context) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	for _, demo := range DemoProducts {
		product := demo
		if err := insertProduct(ctx, tx, &product); err != nil {
			return false, fmt.Errorf("failed to seed %q: %w", demo.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit seed data: %w", err)
	}

	slog.Info("seeded demo products", "count", len(DemoProducts))
	return true, nil
}

// ImportProducts inserts products in a single transaction. Nothing is
// written unless every product is valid and inserted. onProgress, if not
// nil, is called after each insert. IDs are assigned in place.
func (s *SQLiteStorage) ImportProducts(ctx context.Context, products []model.Product, onProgress func()) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if len(products) == 0 {
		return fmt.Errorf("%w: products", ErrEmptySlice)
	}

	for i := range products {
		if err := validateProduct(&products[i]); err != nil {
			return fmt.Errorf("product at index %d: %w", i, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i := range products {
		if err := insertProduct(ctx, tx, &products[i]); err != nil {
			for j := range products[:i] {
				products[j].ID = 0
			}
			return fmt.Errorf("product at index %d: %w", i, err)
		}
		if onProgress != nil {
			onProgress()
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	slog.Info("imported products", "count", len(products))
	return nil
}
