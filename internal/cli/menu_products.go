package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/akihabara-market/internal/model"
)

func (m *Menu) addProduct(ctx context.Context) error {
	m.heading("Add product")

	var p model.Product
	var err error
	if p.Name, err = m.ask(ctx, "Name:"); err != nil {
		return err
	}
	if p.Category, err = m.ask(ctx, fmt.Sprintf("Category (%s):", strings.Join(model.ProductCategories, ", "))); err != nil {
		return err
	}
	if p.Price, err = m.askPrice(ctx, "Price:"); err != nil {
		return err
	}
	if p.Stock, err = m.askInt(ctx, "Stock:"); err != nil {
		return err
	}

	if err := m.store.CreateProduct(ctx, &p); err != nil {
		m.report("add product", err)
		return nil
	}
	m.println(FormatSuccess(fmt.Sprintf("Product added with ID %d.", p.ID)))
	return nil
}

func (m *Menu) findProduct(ctx context.Context) error {
	id, err := m.askInt(ctx, "Product ID:")
	if err != nil {
		return err
	}

	product, err := m.store.GetProduct(ctx, id)
	if err != nil {
		m.report("find product", err)
		return nil
	}
	m.printProduct(*product)
	return nil
}

func (m *Menu) listProducts(ctx context.Context) error {
	products, err := m.store.ListProducts(ctx)
	if err != nil {
		m.report("list products", err)
		return nil
	}
	if len(products) == 0 {
		m.println(FormatInfo("No products registered."))
		return nil
	}
	return ProductTable(products).Render(m.out)
}

func (m *Menu) updateProduct(ctx context.Context) error {
	id, err := m.askInt(ctx, "Product ID to update:")
	if err != nil {
		return err
	}

	product, err := m.store.GetProduct(ctx, id)
	if err != nil {
		m.report("update product", err)
		return nil
	}

	m.println("Current: " + product.String())
	m.println(SubtleStyle.Render("Leave a field blank to keep its value."))
	if product.Name, err = m.askDefault(ctx, "New name", product.Name); err != nil {
		return err
	}
	if product.Category, err = m.askDefault(ctx, "New category", product.Category); err != nil {
		return err
	}
	if product.Price, err = m.askPriceDefault(ctx, "New price", product.Price); err != nil {
		return err
	}
	if product.Stock, err = m.askIntDefault(ctx, "New stock", product.Stock); err != nil {
		return err
	}

	if err := m.store.UpdateProduct(ctx, product); err != nil {
		m.report("update product", err)
		return nil
	}
	m.println(FormatSuccess("Product updated."))
	return nil
}

func (m *Menu) deleteProduct(ctx context.Context) error {
	id, err := m.askInt(ctx, "Product ID to delete:")
	if err != nil {
		return err
	}

	if err := m.store.DeleteProduct(ctx, id); err != nil {
		m.report("delete product", err)
		return nil
	}
	m.println(FormatSuccess(TrashIcon + " Product deleted."))
	return nil
}

func (m *Menu) searchProducts(ctx context.Context) error {
	fragment, err := m.ask(ctx, "Name contains:")
	if err != nil {
		return err
	}

	products, err := m.store.SearchProductsByName(ctx, fragment)
	if err != nil {
		m.report("search products", err)
		return nil
	}
	if len(products) == 0 {
		m.println(FormatInfo(fmt.Sprintf("No products match %q.", fragment)))
		return nil
	}
	return ProductTable(products).Render(m.out)
}

func (m *Menu) printProduct(p model.Product) {
	m.printf("ID:       %d\n", p.ID)
	m.printf("Name:     %s\n", p.Name)
	m.printf("Category: %s\n", p.Category)
	m.printf("Price:    %s\n", FormatPrice(p.Price))
	m.printf("Stock:    %d\n", p.Stock)
}
