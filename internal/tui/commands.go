package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/akihabara-market/internal/common"
	"github.com/Veraticus/akihabara-market/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	storageTimeout   = 10 * time.Second
	assistantTimeout = 2 * time.Minute
)

var errNoStorage = fmt.Errorf("%w: storage", common.ErrMissingConfig)

// loadProducts lists products, filtered by name when query is not blank.
func (m Model) loadProducts(query string) tea.Cmd {
	store := m.storage
	query = strings.TrimSpace(query)
	return func() tea.Msg {
		if store == nil {
			return productsLoadedMsg{err: errNoStorage}
		}

		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()

		var (
			products []model.Product
			err      error
		)
		if query == "" {
			products, err = store.ListProducts(ctx)
		} else {
			products, err = store.SearchProductsByName(ctx, query)
		}
		return productsLoadedMsg{products: products, query: query, err: err}
	}
}

// loadCustomers lists customers.
func (m Model) loadCustomers() tea.Cmd {
	store := m.storage
	return func() tea.Msg {
		if store == nil {
			return customersLoadedMsg{err: errNoStorage}
		}

		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()

		customers, err := store.ListCustomers(ctx)
		return customersLoadedMsg{customers: customers, err: err}
	}
}

func (m Model) saveProduct(p model.Product) tea.Cmd {
	store := m.storage
	return func() tea.Msg {
		if store == nil {
			return savedMsg{tab: TabProducts, err: errNoStorage}
		}

		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()

		created := p.ID == 0
		var err error
		if created {
			err = store.CreateProduct(ctx, &p)
		} else {
			err = store.UpdateProduct(ctx, &p)
		}
		return savedMsg{tab: TabProducts, name: p.Name, created: created, err: err}
	}
}

func (m Model) saveCustomer(c model.Customer) tea.Cmd {
	store := m.storage
	return func() tea.Msg {
		if store == nil {
			return savedMsg{tab: TabCustomers, err: errNoStorage}
		}

		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()

		created := c.ID == 0
		var err error
		if created {
			err = store.CreateCustomer(ctx, &c)
		} else {
			err = store.UpdateCustomer(ctx, &c)
		}
		return savedMsg{tab: TabCustomers, name: c.Name, created: created, err: err}
	}
}

func (m Model) deleteRecord(tab Tab, id int, name string) tea.Cmd {
	store := m.storage
	return func() tea.Msg {
		if store == nil {
			return deletedMsg{tab: tab, err: errNoStorage}
		}

		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()

		var err error
		if tab == TabCustomers {
			err = store.DeleteCustomer(ctx, id)
		} else {
			err = store.DeleteProduct(ctx, id)
		}
		return deletedMsg{tab: tab, name: name, err: err}
	}
}

func (m Model) describeProduct(p model.Product) tea.Cmd {
	assistant := m.assistant
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), assistantTimeout)
		defer cancel()

		text, err := assistant.DescribeProduct(ctx, p)
		return descriptionMsg{product: p.Name, text: text, err: err}
	}
}

func (m Model) suggestCategoryFor(formSeq int, name string) tea.Cmd {
	assistant := m.assistant
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), assistantTimeout)
		defer cancel()

		category, err := assistant.SuggestCategory(ctx, name)
		return categorySuggestedMsg{formSeq: formSeq, name: name, category: category, err: err}
	}
}
