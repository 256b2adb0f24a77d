package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"

	"github.com/Veraticus/akihabara-market/internal/common"
	"github.com/Veraticus/akihabara-market/internal/model"
)

// ErrProductNotFound is returned when no product matches the requested id.
var ErrProductNotFound = fmt.Errorf("product %w", common.ErrNotFound)

const productColumns = `id, name, category, price, stock`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Stock)
	return p, err
}

func insertProduct(ctx context.Context, ex execer, product *model.Product) error {
	query := `
		INSERT INTO products (name, category, price, stock)
		VALUES (?, ?, ?, ?)`

	result, err := ex.ExecContext(ctx, query,
		product.Name, product.Category, product.Price, product.Stock)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get product ID: %w", err)
	}
	product.ID = int(id)
	return nil
}

// CreateProduct inserts a new product and sets its generated ID.
func (s *SQLiteStorage) CreateProduct(ctx context.Context, product *model.Product) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateProduct(product); err != nil {
		return err
	}

	if err := insertProduct(ctx, s.db, product); err != nil {
		return err
	}

	slog.Info("created product", "id", product.ID, "name", product.Name)
	return nil
}

// GetProduct returns the product with the given ID.
func (s *SQLiteStorage) GetProduct(ctx context.Context, id int) (*model.Product, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`

	product, err := scanProduct(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &product, nil
}

// ListProducts returns every product ordered by ID.
func (s *SQLiteStorage) ListProducts(ctx context.Context) ([]model.Product, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`
	return s.queryProducts(ctx, query)
}

// SearchProductsByName returns products whose name contains fragment,
// ignoring case for every script. SQLite's LIKE only folds ASCII, so names
// are matched after Unicode case folding. An empty fragment matches every
// product.
func (s *SQLiteStorage) SearchProductsByName(ctx context.Context, fragment string) ([]model.Product, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	products, err := s.queryProducts(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}

	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(fragment))
	if needle == "" {
		return products, nil
	}

	matches := []model.Product{}
	for _, product := range products {
		if strings.Contains(fold.String(product.Name), needle) {
			matches = append(matches, product)
		}
	}
	return matches, nil
}

func (s *SQLiteStorage) queryProducts(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	slog.Debug("retrieved products", "count", len(products))
	return products, nil
}

// UpdateProduct overwrites every field of an existing product.
func (s *SQLiteStorage) UpdateProduct(ctx context.Context, product *model.Product) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateProduct(product); err != nil {
		return err
	}
	if err := validateID(product.ID, "product.ID"); err != nil {
		return err
	}

	query := `
		UPDATE products
		SET name = ?, category = ?, price = ?, stock = ?
		WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query,
		product.Name, product.Category, product.Price, product.Stock, product.ID)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	if err := requireAffected(result, ErrProductNotFound); err != nil {
		return err
	}

	slog.Info("updated product", "id", product.ID)
	return nil
}

// DeleteProduct removes the product with the given ID.
func (s *SQLiteStorage) DeleteProduct(ctx context.Context, id int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if err := requireAffected(result, ErrProductNotFound); err != nil {
		return err
	}

	slog.Info("deleted product", "id", id)
	return nil
}

// CountProducts returns the number of products in the catalogue.
func (s *SQLiteStorage) CountProducts(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// requireAffected turns a zero-row update or delete into notFound.
func requireAffected(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
