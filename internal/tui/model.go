package tui

import (
	"github.com/Veraticus/akihabara-market/internal/cli"
	"github.com/Veraticus/akihabara-market/internal/common"
	"github.com/Veraticus/akihabara-market/internal/model"
	"github.com/Veraticus/akihabara-market/internal/service"
	"github.com/Veraticus/akihabara-market/internal/tui/themes"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Tab selects which records are shown.
type Tab int

const (
	TabProducts Tab = iota
	TabCustomers
)

func (t Tab) String() string {
	if t == TabCustomers {
		return "Customers"
	}
	return "Products"
}

// State represents the current interaction mode.
type State int

const (
	StateBrowse State = iota
	StateForm
	StateConfirmDelete
	StateSearch
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusWarning
	statusError
)

// Model holds the main TUI state.
type Model struct {
	storage       service.Storage
	assistant     service.Assistant
	render        func(string) string
	theme         themes.Theme
	keymap        KeyMap
	help          help.Model
	spinner       spinner.Model
	search        textinput.Model
	productTable  table.Model
	customerTable table.Model
	form          form
	query         string
	status        string
	panelTitle    string
	panel         string
	busyLabel     string
	products      []model.Product
	customers     []model.Customer
	deleteName    string
	deleteID      int
	formSeq       int
	width         int
	height        int
	tab           Tab
	state         State
	statusKind    statusKind
	busy          bool
	ready         bool
	quitting      bool
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	search := textinput.New()
	search.Placeholder = "name fragment"
	search.Prompt = "/ "
	search.CharLimit = 120
	search.Cursor.SetMode(cursor.CursorStatic)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = sp.Style.Foreground(cfg.Theme.Primary)

	m := Model{
		storage:   cfg.Storage,
		assistant: cfg.Assistant,
		render:    cli.RenderMarkdown,
		theme:     cfg.Theme,
		keymap:    DefaultKeyMap(),
		help:      help.New(),
		spinner:   sp,
		search:    search,
		width:     cfg.Width,
		height:    cfg.Height,
		tab:       TabProducts,
		state:     StateBrowse,
	}
	m.productTable = newTable(productColumns(), m.theme, m.tableHeight())
	m.customerTable = newTable(customerColumns(), m.theme, m.tableHeight())
	m.productTable.Focus()
	return m
}

// Init loads both record lists.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadProducts(""), m.loadCustomers())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case productsLoadedMsg:
		m.ready = true
		if msg.err != nil {
			m.setStatus(statusError, cli.ErrorMessage(msg.err))
			return m, nil
		}
		m.products = msg.products
		m.query = msg.query
		m.productTable.SetRows(productRows(msg.products))
		clampCursor(&m.productTable, len(msg.products))
		return m, nil

	case customersLoadedMsg:
		if msg.err != nil {
			m.setStatus(statusError, cli.ErrorMessage(msg.err))
			return m, nil
		}
		m.customers = msg.customers
		m.customerTable.SetRows(customerRows(msg.customers))
		clampCursor(&m.customerTable, len(msg.customers))
		return m, nil

	case savedMsg:
		return m.handleSaved(msg)

	case deletedMsg:
		if msg.err != nil {
			m.setStatus(statusError, cli.ErrorMessage(msg.err))
			return m, nil
		}
		common.LogInfo("deleted record", common.Fields{"tab": msg.tab.String(), "name": msg.name})
		m.setStatus(statusSuccess, cli.TrashIcon+" "+msg.tab.singular()+" deleted: "+msg.name)
		return m, m.reload(msg.tab)

	case descriptionMsg:
		m.busy = false
		if msg.err != nil {
			m.setStatus(statusError, cli.AIErrorMessage(msg.err))
			return m, nil
		}
		m.panelTitle = "Description for " + msg.product
		m.panel = m.render(msg.text)
		m.setStatus(statusSuccess, "Description ready.")
		return m, nil

	case categorySuggestedMsg:
		m.busy = false
		if msg.err != nil {
			m.setStatus(statusError, cli.AIErrorMessage(msg.err))
			return m, nil
		}
		if m.state != StateForm || m.form.seq != msg.formSeq || m.form.value(productName) != msg.name {
			return m, nil
		}
		m.form = m.form.setValue(productCategory, msg.category)
		m.setStatus(statusSuccess, "Suggested category: "+msg.category)
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case StateForm:
		return m.handleFormKey(msg)
	case StateConfirmDelete:
		return m.handleConfirmKey(msg)
	case StateSearch:
		return m.handleSearchKey(msg)
	default:
		return m.handleBrowseKey(msg)
	}
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	products := m.tab == TabProducts

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.SwitchTab):
		m.switchTab()
		return m, nil

	case key.Matches(msg, m.keymap.New):
		if products {
			m.openForm(newProductForm(nil))
		} else {
			m.openForm(newCustomerForm(nil))
		}
		return m, nil

	case key.Matches(msg, m.keymap.Edit):
		return m.editSelected()

	case key.Matches(msg, m.keymap.Delete):
		return m.confirmDelete()

	case key.Matches(msg, m.keymap.Reload):
		m.clearStatus()
		return m, m.reload(m.tab)

	case products && key.Matches(msg, m.keymap.Search):
		m.search.SetValue(m.query)
		m.search.CursorEnd()
		m.search.Focus()
		m.state = StateSearch
		return m, nil

	case products && key.Matches(msg, m.keymap.Describe):
		return m.describeSelected()

	case key.Matches(msg, m.keymap.Cancel):
		m.panel, m.panelTitle = "", ""
		if products && m.query != "" {
			return m, m.loadProducts("")
		}
		return m, nil
	}

	var cmd tea.Cmd
	if products {
		m.productTable, cmd = m.productTable.Update(msg)
	} else {
		m.customerTable, cmd = m.customerTable.Update(msg)
	}
	return m, cmd
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Cancel):
		m.state = StateBrowse
		m.setStatus(statusInfo, "Cancelled.")
		return m, nil

	case key.Matches(msg, m.keymap.Save):
		return m.submitForm()

	case key.Matches(msg, m.keymap.NextField):
		m.form = m.form.next()
		return m, nil

	case key.Matches(msg, m.keymap.PrevField):
		m.form = m.form.prev()
		return m, nil

	case m.form.tab == TabProducts && key.Matches(msg, m.keymap.Suggest):
		return m.suggestCategory()
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Confirm):
		m.state = StateBrowse
		return m, m.deleteRecord(m.tab, m.deleteID, m.deleteName)
	case key.Matches(msg, m.keymap.Deny):
		m.state = StateBrowse
		m.setStatus(statusInfo, "Delete cancelled.")
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.search.Blur()
		m.state = StateBrowse
		m.clearStatus()
		return m, m.loadProducts(m.search.Value())
	case tea.KeyEsc:
		m.search.Blur()
		m.search.SetValue("")
		m.state = StateBrowse
		m.clearStatus()
		if m.query != "" {
			return m, m.loadProducts("")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		common.LogError(msg.err, "save failed", common.Fields{"tab": msg.tab.String(), "name": msg.name})
		m.setStatus(statusError, cli.ErrorMessage(msg.err))
		return m, nil
	}

	if m.state == StateForm {
		m.state = StateBrowse
	}
	verb := "updated"
	if msg.created {
		verb = "added"
	}
	m.setStatus(statusSuccess, msg.tab.singular()+" "+verb+": "+msg.name)
	return m, m.reload(msg.tab)
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	if m.form.tab == TabProducts {
		p, err := m.form.product()
		if err != nil {
			m.setStatus(statusError, cli.ErrorMessage(err))
			return m, nil
		}
		return m, m.saveProduct(p)
	}

	c, err := m.form.customer()
	if err != nil {
		m.setStatus(statusError, cli.ErrorMessage(err))
		return m, nil
	}
	return m, m.saveCustomer(c)
}

func (m Model) editSelected() (tea.Model, tea.Cmd) {
	if m.tab == TabProducts {
		p, ok := m.selectedProduct()
		if !ok {
			m.setStatus(statusWarning, "No product selected.")
			return m, nil
		}
		m.openForm(newProductForm(&p))
	} else {
		c, ok := m.selectedCustomer()
		if !ok {
			m.setStatus(statusWarning, "No customer selected.")
			return m, nil
		}
		m.openForm(newCustomerForm(&c))
	}
	return m, nil
}

// openForm shows f. Each opened form gets a new sequence number so late
// assistant replies can be matched to the form that asked.
func (m *Model) openForm(f form) {
	m.formSeq++
	f.seq = m.formSeq
	m.form = f
	m.state = StateForm
	m.clearStatus()
}

func (m Model) confirmDelete() (tea.Model, tea.Cmd) {
	if m.tab == TabProducts {
		p, ok := m.selectedProduct()
		if !ok {
			m.setStatus(statusWarning, "No product selected.")
			return m, nil
		}
		m.deleteID, m.deleteName = p.ID, p.Name
	} else {
		c, ok := m.selectedCustomer()
		if !ok {
			m.setStatus(statusWarning, "No customer selected.")
			return m, nil
		}
		m.deleteID, m.deleteName = c.ID, c.Name
	}
	m.state = StateConfirmDelete
	m.setStatus(statusWarning, "Delete "+m.deleteName+"? (y/n)")
	return m, nil
}

func (m Model) describeSelected() (tea.Model, tea.Cmd) {
	if m.assistant == nil {
		m.setStatus(statusWarning, cli.MsgAssistantDisabled)
		return m, nil
	}
	p, ok := m.selectedProduct()
	if !ok {
		m.setStatus(statusWarning, "No product selected.")
		return m, nil
	}
	return m.startBusy("Writing a description for "+p.Name, m.describeProduct(p))
}

func (m Model) suggestCategory() (tea.Model, tea.Cmd) {
	if m.assistant == nil {
		m.setStatus(statusWarning, cli.MsgAssistantDisabled)
		return m, nil
	}
	name := m.form.value(productName)
	if name == "" {
		m.setStatus(statusError, "Enter a product name first.")
		return m, nil
	}
	return m.startBusy("Suggesting a category for "+name, m.suggestCategoryFor(m.form.seq, name))
}

func (m Model) startBusy(label string, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if m.busy {
		m.setStatus(statusWarning, "The assistant is still working.")
		return m, nil
	}
	m.busy = true
	m.busyLabel = label
	m.clearStatus()
	return m, tea.Batch(cmd, m.spinner.Tick)
}

func (m *Model) switchTab() {
	if m.tab == TabProducts {
		m.tab = TabCustomers
		m.productTable.Blur()
		m.customerTable.Focus()
	} else {
		m.tab = TabProducts
		m.customerTable.Blur()
		m.productTable.Focus()
	}
	m.clearStatus()
}

func (m Model) selectedProduct() (model.Product, bool) {
	i := m.productTable.Cursor()
	if i < 0 || i >= len(m.products) {
		return model.Product{}, false
	}
	return m.products[i], true
}

func (m Model) selectedCustomer() (model.Customer, bool) {
	i := m.customerTable.Cursor()
	if i < 0 || i >= len(m.customers) {
		return model.Customer{}, false
	}
	return m.customers[i], true
}

func (m Model) reload(tab Tab) tea.Cmd {
	if tab == TabCustomers {
		return m.loadCustomers()
	}
	return m.loadProducts(m.query)
}

func clampCursor(t *table.Model, n int) {
	if t.Cursor() >= n && n > 0 {
		t.SetCursor(n - 1)
	}
}

func (m *Model) setStatus(kind statusKind, text string) {
	m.statusKind = kind
	m.status = text
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusKind = statusInfo
}

func (t Tab) singular() string {
	if t == TabCustomers {
		return "Customer"
	}
	return "Product"
}
