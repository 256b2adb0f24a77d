package tui

import (
	"strconv"
	"strings"

	"github.com/Veraticus/akihabara-market/internal/cli"
	"github.com/Veraticus/akihabara-market/internal/model"
	"github.com/Veraticus/akihabara-market/internal/tui/themes"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Rows taken by the header, status bar, help and borders.
const chromeHeight = 9

func productColumns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Name", Width: 36},
		{Title: "Category", Width: 14},
		{Title: "Price", Width: 11},
		{Title: "Stock", Width: 6},
	}
}

func customerColumns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Name", Width: 24},
		{Title: "Email", Width: 28},
		{Title: "Phone", Width: 16},
		{Title: "Registered", Width: 17},
	}
}

func productRows(products []model.Product) []table.Row {
	rows := make([]table.Row, len(products))
	for i, p := range products {
		rows[i] = table.Row{
			strconv.Itoa(p.ID),
			p.Name,
			p.Category,
			cli.FormatPrice(p.Price),
			strconv.Itoa(p.Stock),
		}
	}
	return rows
}

func customerRows(customers []model.Customer) []table.Row {
	rows := make([]table.Row, len(customers))
	for i, c := range customers {
		rows[i] = table.Row{
			strconv.Itoa(c.ID),
			c.Name,
			c.Email,
			c.Phone,
			c.RegisteredAtString(),
		}
	}
	return rows
}

func newTable(columns []table.Column, theme themes.Theme, height int) table.Model {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(true).
		Foreground(theme.Secondary)
	styles.Selected = theme.Selected

	return table.New(
		table.WithColumns(columns),
		table.WithHeight(height),
		table.WithStyles(styles),
	)
}

func (m Model) tableHeight() int {
	return max(m.height-chromeHeight, 3)
}

func (m *Model) handleResize() {
	h := m.tableHeight()
	m.productTable.SetHeight(h)
	m.customerTable.SetHeight(h)
	m.help.Width = m.width
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.renderLoading()
	}

	var body string
	switch m.state {
	case StateForm:
		body = m.renderForm()
	default:
		body = m.renderTable()
	}
	if m.panel != "" && m.state != StateForm {
		body = lipgloss.JoinVertical(lipgloss.Left, body, m.renderPanel())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderStatusBar(),
		m.renderHelp(),
	)
}

func (m Model) renderLoading() string {
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.theme.Title.Render(cli.ShopIcon+" Loading Akihabara Market..."),
	)
}

func (m Model) renderHeader() string {
	tabs := make([]string, 0, 2)
	for _, tab := range []Tab{TabProducts, TabCustomers} {
		label := tab.String()
		if tab == TabProducts && m.query != "" {
			label += " (" + m.query + ")"
		}
		if tab == m.tab {
			tabs = append(tabs, m.theme.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.theme.TabInactive.Render(label))
		}
	}

	title := m.theme.Title.Render(cli.ShopIcon + " AKIHABARA MARKET")
	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
	)
}

func (m Model) renderTable() string {
	var (
		t     table.Model
		empty string
		count int
	)
	if m.tab == TabProducts {
		t, count, empty = m.productTable, len(m.products), "No products registered."
		if m.query != "" {
			empty = "No products match " + strconv.Quote(m.query) + "."
		}
	} else {
		t, count, empty = m.customerTable, len(m.customers), "No customers registered."
	}

	content := t.View()
	if count == 0 {
		content = m.theme.Subtitle.Render(empty)
	}
	if m.state == StateSearch {
		content = lipgloss.JoinVertical(lipgloss.Left, m.search.View(), content)
	}
	return m.theme.RoundedBox.Render(content)
}

func (m Model) renderForm() string {
	lines := []string{m.theme.Bold.Render(m.form.title()), ""}
	for i, label := range m.form.labels {
		style := m.theme.FieldLabel
		if i == m.form.focus {
			style = m.theme.FieldFocused
		}
		lines = append(lines, style.Render(label)+" "+m.form.inputs[i].View())
	}
	if m.form.tab == TabCustomers && !m.form.isNew() {
		registered := model.Customer{RegisteredAt: m.form.registeredAt}.RegisteredAtString()
		lines = append(lines, m.theme.FieldLabel.Render("Registered")+" "+m.theme.Subtitle.Render(registered))
	}
	return m.theme.RoundedBox.Render(strings.Join(lines, "\n"))
}

func (m Model) renderPanel() string {
	title := m.theme.Bold.Render(cli.RobotIcon + " " + m.panelTitle)
	width := max(m.width-4, 20)
	return m.theme.RoundedBox.
		BorderForeground(m.theme.Primary).
		Width(width).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, m.panel))
}

func (m Model) renderStatusBar() string {
	if m.busy {
		return m.spinner.View() + " " + m.theme.StatusInfo.Render(m.busyLabel+"...")
	}

	var style lipgloss.Style
	switch m.statusKind {
	case statusSuccess:
		style = m.theme.StatusSuccess
	case statusWarning:
		style = m.theme.StatusWarning
	case statusError:
		style = m.theme.StatusError
	default:
		style = m.theme.StatusInfo
	}
	return style.Render(m.status)
}

func (m Model) renderHelp() string {
	products := m.tab == TabProducts
	switch m.state {
	case StateForm:
		return m.help.View(formHelp{keys: m.keymap, products: m.form.tab == TabProducts})
	case StateConfirmDelete:
		return m.help.ShortHelpView([]key.Binding{m.keymap.Confirm, m.keymap.Deny})
	case StateSearch:
		return m.theme.Subtitle.Render("enter search • esc cancel")
	default:
		return m.help.View(browseHelp{keys: m.keymap, products: products})
	}
}
