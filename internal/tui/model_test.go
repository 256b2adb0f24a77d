package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Veraticus/akihabara-market/internal/cli"
	"github.com/Veraticus/akihabara-market/internal/model"
	"github.com/Veraticus/akihabara-market/internal/testutil"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, db *testutil.TestDB, assistant *testutil.StubAssistant) Model {
	t.Helper()

	opts := []Option{WithStorage(db.Storage), WithSize(120, 40)}
	if assistant != nil {
		opts = append(opts, WithAssistant(assistant))
	}
	m, err := New(opts...)
	require.NoError(t, err)
	m.render = func(s string) string { return s }

	return drain(t, m, m.Init())
}

// drain runs cmd and feeds the resulting messages back into the model.
// Spinner ticks are dropped so animations don't loop.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}

	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = drain(t, m, c)
		}
		return m
	case spinner.TickMsg, tea.QuitMsg, nil:
		return m
	default:
		next, follow := m.Update(msg)
		return drain(t, next.(Model), follow)
	}
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, cmd := m.Update(k)
		m = drain(t, next.(Model), cmd)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(kt tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: kt}
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = press(t, m, runes(string(r)))
	}
	return m
}

func listProducts(t *testing.T, db *testutil.TestDB) []model.Product {
	t.Helper()
	products, err := db.Storage.ListProducts(context.Background())
	require.NoError(t, err)
	return products
}

func TestModel_LoadsBothTabs(t *testing.T) {
	db := testutil.SetupTestDBWithOptions(t, testutil.TestDBOptions{
		Products:  testutil.SampleProducts(),
		Customers: testutil.SampleCustomers(),
	})
	m := newTestModel(t, db, nil)

	require.True(t, m.ready)
	assert.Len(t, m.products, 3)
	assert.Len(t, m.customers, 2)
	assert.Contains(t, m.View(), "Anya Forger Figure")

	m = press(t, m, keyOf(tea.KeyTab))
	assert.Equal(t, TabCustomers, m.tab)
	assert.Contains(t, m.View(), "sakura@example.com")
}

func TestModel_EmptyTables(t *testing.T) {
	m := newTestModel(t, testutil.SetupTestDB(t), nil)

	assert.Contains(t, m.View(), "No products registered.")
	m = press(t, m, keyOf(tea.KeyTab))
	assert.Contains(t, m.View(), "No customers registered.")

	m = press(t, m, runes("e"))
	assert.Equal(t, StateBrowse, m.state)
	assert.Equal(t, "No customer selected.", m.status)
}

func TestModel_AddProduct(t *testing.T) {
	db := testutil.SetupTestDB(t)
	m := newTestModel(t, db, nil)

	m = press(t, m, runes("n"))
	require.Equal(t, StateForm, m.state)

	m = typeText(t, m, "Rem Figure")
	m = press(t, m, keyOf(tea.KeyTab))
	m = typeText(t, m, "Figure")
	m = press(t, m, keyOf(tea.KeyTab))
	m = typeText(t, m, "12,50")
	m = press(t, m, keyOf(tea.KeyTab))
	m = typeText(t, m, "3")
	m = press(t, m, keyOf(tea.KeyEnter))

	assert.Equal(t, StateBrowse, m.state)
	assert.Equal(t, "Product added: Rem Figure", m.status)

	products := listProducts(t, db)
	require.Len(t, products, 1)
	assert.Equal(t, "Rem Figure", products[0].Name)
	assert.InDelta(t, 12.5, products[0].Price, 0.001)
	assert.Equal(t, 3, products[0].Stock)
	assert.Len(t, m.products, 1)
}

func TestModel_FormValidation(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		want   string
	}{
		{
			name:   "missing name",
			fields: []string{"", "Figure", "1", "1"},
			want:   "Name is required.",
		},
		{
			name:   "negative price",
			fields: []string{"Rem Figure", "Figure", "-1", "1"},
			want:   "Price must be a number greater than or equal to 0.",
		},
		{
			name:   "price not a number",
			fields: []string{"Rem Figure", "Figure", "cheap", "1"},
			want:   "Price must be a number greater than or equal to 0.",
		},
		{
			name:   "fractional stock",
			fields: []string{"Rem Figure", "Figure", "1", "1.5"},
			want:   "Stock must be a whole number greater than or equal to 0.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			m := newTestModel(t, db, nil)
			m = press(t, m, runes("n"))
			for i, value := range tt.fields {
				if i > 0 {
					m = press(t, m, keyOf(tea.KeyTab))
				}
				m = typeText(t, m, value)
			}
			m = press(t, m, keyOf(tea.KeyEnter))

			assert.Equal(t, StateForm, m.state)
			assert.Equal(t, statusError, m.statusKind)
			assert.Equal(t, tt.want, m.status)
			assert.Empty(t, listProducts(t, db))
		})
	}
}

func TestModel_EditProduct(t *testing.T) {
	db := testutil.SetupTestDB(t, testutil.SampleProducts()...)
	m := newTestModel(t, db, nil)

	m = press(t, m, keyOf(tea.KeyDown), runes("e"))
	require.Equal(t, StateForm, m.state)
	assert.Equal(t, db.Products[1].ID, m.form.id)
	assert.Equal(t, "20", m.form.value(productStock))

	m = press(t, m, keyOf(tea.KeyShiftTab), keyOf(tea.KeyCtrlU))
	m = typeText(t, m, "7")
	m = press(t, m, keyOf(tea.KeyEnter))

	assert.Equal(t, "Product updated: Chainsaw Man Manga Vol. 1", m.status)
	got := db.MustGetProduct(db.Products[1].ID)
	assert.Equal(t, 7, got.Stock)
	assert.Equal(t, "Manga", got.Category)
}

func TestModel_CancelForm(t *testing.T) {
	db := testutil.SetupTestDB(t)
	m := newTestModel(t, db, nil)

	m = press(t, m, runes("n"))
	m = typeText(t, m, "Unsaved")
	m = press(t, m, keyOf(tea.KeyEsc))

	assert.Equal(t, StateBrowse, m.state)
	assert.Equal(t, "Cancelled.", m.status)
	assert.Empty(t, listProducts(t, db))
}

func TestModel_DeleteAsksForConfirmation(t *testing.T) {
	db := testutil.SetupTestDB(t, testutil.SampleProducts()...)
	m := newTestModel(t, db, nil)

	m = press(t, m, runes("d"))
	require.Equal(t, StateConfirmDelete, m.state)
	assert.Contains(t, m.status, "Delete Anya Forger Figure?")

	m = press(t, m, runes("n"))
	assert.Equal(t, StateBrowse, m.state)
	assert.Equal(t, "Delete cancelled.", m.status)
	assert.Len(t, listProducts(t, db), 3)

	m = press(t, m, runes("d"), runes("y"))
	assert.Equal(t, cli.TrashIcon+" Product deleted: Anya Forger Figure", m.status)
	assert.Len(t, listProducts(t, db), 2)
	assert.Len(t, m.products, 2)
}

func TestModel_Search(t *testing.T) {
	db := testutil.SetupTestDB(t, testutil.SampleProducts()...)
	m := newTestModel(t, db, nil)

	m = press(t, m, runes("/"))
	require.Equal(t, StateSearch, m.state)
	m = typeText(t, m, "MAN")
	m = press(t, m, keyOf(tea.KeyEnter))

	assert.Equal(t, "MAN", m.query)
	require.Len(t, m.products, 1)
	assert.Equal(t, "Chainsaw Man Manga Vol. 1", m.products[0].Name)

	m = press(t, m, runes("/"), keyOf(tea.KeyCtrlU))
	m = typeText(t, m, "gundam")
	m = press(t, m, keyOf(tea.KeyEnter))
	assert.Contains(t, m.View(), `No products match "gundam".`)

	m = press(t, m, keyOf(tea.KeyEsc))
	assert.Empty(t, m.query)
	assert.Len(t, m.products, 3)

	m = press(t, m, runes("/"))
	m = typeText(t, m, "ghibli")
	m = press(t, m, keyOf(tea.KeyEnter))
	require.Len(t, m.products, 1)

	m = press(t, m, runes("/"), keyOf(tea.KeyEsc))
	assert.Equal(t, StateBrowse, m.state)
	assert.Empty(t, m.query)
	assert.Len(t, m.products, 3)
}

func TestModel_AddCustomer(t *testing.T) {
	db := testutil.SetupTestDBWithOptions(t, testutil.TestDBOptions{
		Customers: testutil.SampleCustomers(),
	})
	m := newTestModel(t, db, nil)

	m = press(t, m, keyOf(tea.KeyTab), runes("n"))
	m = typeText(t, m, "Mikasa Ackerman")
	m = press(t, m, keyOf(tea.KeyDown))
	m = typeText(t, m, "mikasa@example.com")
	m = press(t, m, keyOf(tea.KeyDown))
	m = typeText(t, m, "+81 80-1111-2222")
	m = press(t, m, keyOf(tea.KeyEnter))

	assert.Equal(t, "Customer added: Mikasa Ackerman", m.status)
	require.Len(t, m.customers, 3)
	assert.Equal(t, "+818011112222", m.customers[2].Phone)
	assert.False(t, m.customers[2].RegisteredAt.IsZero())
}

func TestModel_CustomerErrors(t *testing.T) {
	db := testutil.SetupTestDBWithOptions(t, testutil.TestDBOptions{
		Customers: testutil.SampleCustomers(),
	})

	t.Run("duplicate email", func(t *testing.T) {
		m := newTestModel(t, db, nil)
		m = press(t, m, keyOf(tea.KeyTab), runes("n"))
		m = typeText(t, m, "Impostor")
		m = press(t, m, keyOf(tea.KeyTab))
		m = typeText(t, m, "SAKURA@example.com")
		m = press(t, m, keyOf(tea.KeyTab))
		m = typeText(t, m, "600999999")
		m = press(t, m, keyOf(tea.KeyEnter))

		assert.Equal(t, StateForm, m.state)
		assert.Equal(t, cli.MsgDuplicateEmail, m.status)
	})

	t.Run("invalid phone", func(t *testing.T) {
		m := newTestModel(t, db, nil)
		m = press(t, m, keyOf(tea.KeyTab), runes("n"))
		m = typeText(t, m, "Levi")
		m = press(t, m, keyOf(tea.KeyTab))
		m = typeText(t, m, "levi@example.com")
		m = press(t, m, keyOf(tea.KeyTab))
		m = typeText(t, m, "12ab")
		m = press(t, m, keyOf(tea.KeyEnter))

		assert.Equal(t, StateForm, m.state)
		assert.Equal(t, statusError, m.statusKind)
		assert.Contains(t, m.status, "phone")
	})
}

func TestModel_Describe(t *testing.T) {
	db := testutil.SetupTestDB(t, testutil.SampleProducts()...)
	assistant := &testutil.StubAssistant{Description: "Una figura **increíble**."}
	m := newTestModel(t, db, assistant)

	next, cmd := m.Update(runes("a"))
	m = next.(Model)
	assert.True(t, m.busy)
	assert.Contains(t, m.View(), "Writing a description for Anya Forger Figure")

	m = drain(t, m, cmd)
	assert.False(t, m.busy)
	assert.Equal(t, "Description for Anya Forger Figure", m.panelTitle)
	assert.Equal(t, "Una figura **increíble**.", m.panel)
	require.Len(t, assistant.Described, 1)
	assert.Equal(t, db.Products[0].ID, assistant.Described[0].ID)

	m = press(t, m, keyOf(tea.KeyEsc))
	assert.Empty(t, m.panel)
}

func TestModel_AssistantFailure(t *testing.T) {
	db := testutil.SetupTestDB(t, testutil.SampleProducts()...)
	assistant := &testutil.StubAssistant{Err: errors.New("status 502")}
	m := newTestModel(t, db, assistant)

	m = press(t, m, runes("a"))
	assert.Equal(t, "AI request failed: status 502", m.status)
	assert.Empty(t, m.panel)
}

func TestModel_AssistantDisabled(t *testing.T) {
	db := testutil.SetupTestDB(t, testutil.SampleProducts()...)
	m := newTestModel(t, db, nil)

	m = press(t, m, runes("a"))
	assert.Equal(t, cli.MsgAssistantDisabled, m.status)

	m = press(t, m, runes("n"))
	m = typeText(t, m, "Totoro Plush")
	m = press(t, m, keyOf(tea.KeyCtrlS))
	assert.Equal(t, cli.MsgAssistantDisabled, m.status)
}

func TestModel_SuggestCategoryFillsForm(t *testing.T) {
	db := testutil.SetupTestDB(t)
	assistant := &testutil.StubAssistant{Category: "Other"}
	m := newTestModel(t, db, assistant)

	m = press(t, m, runes("n"), keyOf(tea.KeyCtrlS))
	assert.Equal(t, "Enter a product name first.", m.status)
	assert.Empty(t, assistant.Suggested)

	m = typeText(t, m, "Totoro Plush")
	m = press(t, m, keyOf(tea.KeyCtrlS))

	assert.Equal(t, StateForm, m.state)
	assert.Equal(t, "Other", m.form.value(productCategory))
	assert.Equal(t, "Suggested category: Other", m.status)
	assert.Equal(t, []string{"Totoro Plush"}, assistant.Suggested)
}

// held runs cmd and returns its messages instead of delivering them.
func held(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, held(c)...)
		}
		return out
	case spinner.TickMsg, nil:
		return nil
	default:
		return []tea.Msg{msg}
	}
}

func TestModel_LateSuggestionIgnoredByOtherForm(t *testing.T) {
	db := testutil.SetupTestDB(t, testutil.SampleProducts()...)
	assistant := &testutil.StubAssistant{Category: "Manga"}
	m := newTestModel(t, db, assistant)

	m = press(t, m, runes("n"))
	m = typeText(t, m, "Naruto Vol 1")
	next, cmd := m.Update(keyOf(tea.KeyCtrlS))
	m = next.(Model)
	replies := held(cmd)
	require.Len(t, replies, 1)

	m = press(t, m, keyOf(tea.KeyEsc), runes("e"))
	require.Equal(t, StateForm, m.state)
	require.Equal(t, "Anya Forger Figure", m.form.value(productName))

	next, _ = m.Update(replies[0])
	m = next.(Model)
	assert.False(t, m.busy)
	assert.Equal(t, "Figure", m.form.value(productCategory))

	m = press(t, m, keyOf(tea.KeyEnter))
	stored, err := db.Storage.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Figure", stored.Category)
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, testutil.SetupTestDB(t), nil)

	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, next.(Model).quitting)
	assert.Empty(t, next.(Model).View())

	m = press(t, m, runes("n"))
	_, cmd = m.Update(runes("q"))
	if cmd != nil {
		assert.NotEqual(t, tea.QuitMsg{}, cmd())
	}

	_, cmd = m.Update(keyOf(tea.KeyCtrlC))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_Resize(t *testing.T) {
	m := newTestModel(t, testutil.SetupTestDB(t, testutil.SampleProducts()...), nil)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	m = next.(Model)
	assert.Equal(t, 20-chromeHeight, m.productTable.Height())
	assert.Equal(t, 20-chromeHeight, m.customerTable.Height())
	assert.True(t, strings.Contains(m.View(), "AKIHABARA MARKET"))
}

func TestNew_RequiresStorage(t *testing.T) {
	_, err := New()
	require.Error(t, err)
}
