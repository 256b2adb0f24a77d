package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/Veraticus/akihabara-market/internal/model"
)

const columnGap = "  "

// Table is a fixed-width text table. Cell widths are measured in terminal
// cells so titles in kana or kanji line up.
type Table struct {
	Headers []string
	Rows    [][]string
	// MaxWidth truncates cells wider than this many cells; zero disables it.
	MaxWidth int
}

// Render writes the table to w.
func (t Table) Render(w io.Writer) error {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.Rows {
		for i := range widths {
			if i < len(row) {
				widths[i] = max(widths[i], runewidth.StringWidth(t.cell(row[i])))
			}
		}
	}

	header := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = TableHeaderStyle.Render(runewidth.FillRight(h, widths[i]))
	}
	if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(header, columnGap), " ")); err != nil {
		return fmt.Errorf("failed to write table header: %w", err)
	}

	rule := make([]string, len(widths))
	for i, width := range widths {
		rule[i] = strings.Repeat("-", width)
	}
	if _, err := fmt.Fprintln(w, SubtleStyle.Render(strings.Join(rule, columnGap))); err != nil {
		return fmt.Errorf("failed to write table rule: %w", err)
	}

	for _, row := range t.Rows {
		cells := make([]string, len(widths))
		for i := range widths {
			value := ""
			if i < len(row) {
				value = t.cell(row[i])
			}
			cells[i] = runewidth.FillRight(value, widths[i])
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, columnGap), " ")); err != nil {
			return fmt.Errorf("failed to write table row: %w", err)
		}
	}
	return nil
}

func (t Table) cell(value string) string {
	if t.MaxWidth > 0 && runewidth.StringWidth(value) > t.MaxWidth {
		return runewidth.Truncate(value, t.MaxWidth, "…")
	}
	return value
}

// ProductTable lays out products one per row.
func ProductTable(products []model.Product) Table {
	table := Table{
		Headers:  []string{"ID", "NAME", "CATEGORY", "PRICE", "STOCK"},
		MaxWidth: 40,
	}
	for _, p := range products {
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(p.ID),
			p.Name,
			p.Category,
			FormatPrice(p.Price),
			strconv.Itoa(p.Stock),
		})
	}
	return table
}

// CustomerTable lays out customers one per row.
func CustomerTable(customers []model.Customer) Table {
	table := Table{
		Headers:  []string{"ID", "NAME", "EMAIL", "PHONE", "REGISTERED"},
		MaxWidth: 40,
	}
	for _, c := range customers {
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(c.ID),
			c.Name,
			c.Email,
			c.Phone,
			c.RegisteredAtString(),
		})
	}
	return table
}

// FormatPrice renders a price in euros.
func FormatPrice(price float64) string {
	return fmt.Sprintf("%.2f €", price)
}
