package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/akihabara-market/internal/service"
)

const mainMenu = `1. Add product
2. Find product by ID
3. List products
4. Update product
5. Delete product
6. Search products by name
7. AI assistant
8. Customers
0. Exit`

// Menu is the numbered console interface over the shop's storage.
type Menu struct {
	store     service.Storage
	assistant service.Assistant
	in        *NonBlockingReader
	out       io.Writer
	markdown  func(string) string
}

// NewMenu creates a console menu. assistant may be nil, in which case the
// AI actions explain how to enable it.
func NewMenu(store service.Storage, assistant service.Assistant, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		store:     store,
		assistant: assistant,
		in:        NewNonBlockingReader(in),
		out:       out,
		markdown:  RenderMarkdown,
	}
}

// Run shows the main menu until the operator picks 0 or input ends.
func (m *Menu) Run(ctx context.Context) error {
	for {
		m.println("")
		m.println(FormatTitle("AKIHABARA MARKET"))
		m.println(mainMenu)

		option, err := m.askInt(ctx, "Choose an option:")
		if err != nil {
			return m.finish(ctx, err)
		}

		if option == 0 {
			m.println("Goodbye!")
			return nil
		}

		if err := m.dispatchMain(ctx, option); err != nil {
			return m.finish(ctx, err)
		}
	}
}

func (m *Menu) dispatchMain(ctx context.Context, option int) error {
	switch option {
	case 1:
		return m.addProduct(ctx)
	case 2:
		return m.findProduct(ctx)
	case 3:
		return m.listProducts(ctx)
	case 4:
		return m.updateProduct(ctx)
	case 5:
		return m.deleteProduct(ctx)
	case 6:
		return m.searchProducts(ctx)
	case 7:
		return m.assistantMenu(ctx)
	case 8:
		return m.customerMenu(ctx)
	default:
		m.println(FormatWarning("Invalid option."))
		return nil
	}
}

// finish converts the error that ended the loop. End of input is a normal
// exit; only I/O problems are reported.
func (m *Menu) finish(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, io.EOF):
		m.println("")
		m.println("Goodbye!")
		return nil
	case errors.Is(err, ErrInputCancelled):
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	default:
		return err
	}
}

// submenu loops over a numbered submenu until 0 is chosen. An error from
// handle ends the whole menu.
func (m *Menu) submenu(ctx context.Context, title, options string, handle func(int) error) error {
	for {
		m.println("")
		m.println(FormatTitle(title))
		m.println(options)

		option, err := m.askInt(ctx, "Choose an option:")
		if err != nil {
			return err
		}
		if option == 0 {
			return nil
		}
		if err := handle(option); err != nil {
			return err
		}
	}
}

// report prints a storage error and keeps the menu running.
func (m *Menu) report(action string, err error) {
	slog.Warn("menu action failed", "action", action, "error", err)
	m.println(FormatError(ErrorMessage(err)))
}

func (m *Menu) println(s string) {
	_, _ = fmt.Fprintln(m.out, s)
}

func (m *Menu) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(m.out, format, args...)
}

func (m *Menu) heading(s string) {
	m.println("")
	m.println(SubtleStyle.Render("--- " + s + " ---"))
}
