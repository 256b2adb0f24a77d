package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/akihabara-market/internal/cli"
	"github.com/Veraticus/akihabara-market/internal/common"
	"github.com/Veraticus/akihabara-market/internal/model"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Product form fields.
const (
	productName = iota
	productCategory
	productPrice
	productStock
)

// Customer form fields.
const (
	customerName = iota
	customerEmail
	customerPhone
)

// form edits one product or customer. A zero id means the record is new.
type form struct {
	registeredAt time.Time
	labels       []string
	inputs       []textinput.Model
	tab          Tab
	id           int
	focus        int
	seq          int
}

func newInput(placeholder, value string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.SetValue(value)
	return ti
}

func newProductForm(p *model.Product) form {
	var current model.Product
	if p != nil {
		current = *p
	}

	price, stock := "", ""
	if p != nil {
		price = strconv.FormatFloat(current.Price, 'f', 2, 64)
		stock = strconv.Itoa(current.Stock)
	}

	f := form{
		tab:    TabProducts,
		id:     current.ID,
		labels: []string{"Name", "Category", "Price", "Stock"},
		inputs: []textinput.Model{
			newInput("Anya Forger Figure", current.Name, 120),
			newInput(strings.Join(model.ProductCategories, ", "), current.Category, 60),
			newInput("0.00", price, 12),
			newInput("0", stock, 9),
		},
	}
	f.inputs[0].Focus()
	return f
}

func newCustomerForm(c *model.Customer) form {
	var current model.Customer
	if c != nil {
		current = *c
	}

	f := form{
		tab:          TabCustomers,
		id:           current.ID,
		registeredAt: current.RegisteredAt,
		labels:       []string{"Name", "Email", "Phone"},
		inputs: []textinput.Model{
			newInput("Sakura Haruno", current.Name, 120),
			newInput("name@example.com", current.Email, 254),
			newInput("+81 90 1234 5678", current.Phone, 24),
		},
	}
	f.inputs[0].Focus()
	return f
}

func (f form) isNew() bool {
	return f.id == 0
}

func (f form) value(field int) string {
	return strings.TrimSpace(f.inputs[field].Value())
}

func (f form) setValue(field int, value string) form {
	f.inputs = append([]textinput.Model(nil), f.inputs...)
	f.inputs[field].SetValue(value)
	f.inputs[field].CursorEnd()
	return f
}

func (f form) focusField(field int) form {
	n := len(f.inputs)
	field = ((field % n) + n) % n

	f.inputs = append([]textinput.Model(nil), f.inputs...)
	for i := range f.inputs {
		if i == field {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	f.focus = field
	return f
}

func (f form) next() form { return f.focusField(f.focus + 1) }
func (f form) prev() form { return f.focusField(f.focus - 1) }

// update forwards a message to the focused input.
func (f form) update(msg tea.Msg) (form, tea.Cmd) {
	f.inputs = append([]textinput.Model(nil), f.inputs...)
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f form) required() error {
	for i, label := range f.labels {
		if f.value(i) == "" {
			return common.NewUserError(label+" is required.", nil)
		}
	}
	return nil
}

// product parses and validates the form as a product.
func (f form) product() (model.Product, error) {
	if err := f.required(); err != nil {
		return model.Product{}, err
	}

	price, err := cli.ParsePrice(f.value(productPrice))
	if err != nil || price < 0 {
		return model.Product{}, common.NewUserError("Price must be a number greater than or equal to 0.", err)
	}
	stock, err := strconv.Atoi(f.value(productStock))
	if err != nil || stock < 0 {
		return model.Product{}, common.NewUserError("Stock must be a whole number greater than or equal to 0.", err)
	}

	p := model.Product{
		ID:       f.id,
		Name:     f.value(productName),
		Category: f.value(productCategory),
		Price:    price,
		Stock:    stock,
	}
	if err := p.Validate(); err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// customer parses and validates the form as a customer.
func (f form) customer() (model.Customer, error) {
	if err := f.required(); err != nil {
		return model.Customer{}, err
	}

	c := model.Customer{
		ID:           f.id,
		Name:         f.value(customerName),
		Email:        f.value(customerEmail),
		Phone:        f.value(customerPhone),
		RegisteredAt: f.registeredAt,
	}
	c.Normalize()
	if err := c.Validate(); err != nil {
		return model.Customer{}, err
	}
	return c, nil
}

func (f form) title() string {
	noun := "product"
	if f.tab == TabCustomers {
		noun = "customer"
	}
	if f.isNew() {
		return "New " + noun
	}
	return fmt.Sprintf("Edit %s #%d", noun, f.id)
}
