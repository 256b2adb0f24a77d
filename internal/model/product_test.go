package model

import (
	"errors"
	"math"
	"testing"
)

func TestProduct_Validate(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		wantErr bool
	}{
		{
			name:    "valid product",
			product: Product{Name: "Anya Forger Figure", Category: "Figure", Price: 59.95, Stock: 8},
		},
		{
			name:    "free item with no stock",
			product: Product{Name: "Sticker", Category: "Other", Price: 0, Stock: 0},
		},
		{
			name:    "missing name",
			product: Product{Name: "   ", Category: "Figure", Price: 1, Stock: 1},
			wantErr: true,
		},
		{
			name:    "missing category",
			product: Product{Name: "Poster", Category: "", Price: 1, Stock: 1},
			wantErr: true,
		},
		{
			name:    "negative price",
			product: Product{Name: "Poster", Category: "Poster", Price: -0.01, Stock: 1},
			wantErr: true,
		},
		{
			name:    "NaN price",
			product: Product{Name: "Poster", Category: "Poster", Price: math.NaN(), Stock: 1},
			wantErr: true,
		},
		{
			name:    "negative stock",
			product: Product{Name: "Poster", Category: "Poster", Price: 1, Stock: -1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.product.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidProduct) {
				t.Errorf("Validate() error = %v, want ErrInvalidProduct", err)
			}
		})
	}
}

func TestProduct_Normalize(t *testing.T) {
	p := Product{Name: "  Luffy Figure ", Category: "\tFigure\n"}
	p.Normalize()

	if p.Name != "Luffy Figure" {
		t.Errorf("Name = %q, want %q", p.Name, "Luffy Figure")
	}
	if p.Category != "Figure" {
		t.Errorf("Category = %q, want %q", p.Category, "Figure")
	}
}
