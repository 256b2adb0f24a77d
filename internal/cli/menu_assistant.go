package cli

import (
	"context"
	"fmt"
	"log/slog"
)

const assistantMenu = `1. Generate description for a product
2. Suggest a category for a new product
0. Back to main menu`

func (m *Menu) assistantMenu(ctx context.Context) error {
	return m.submenu(ctx, RobotIcon+" AI assistant", assistantMenu, func(option int) error {
		switch option {
		case 1:
			return m.describeProduct(ctx)
		case 2:
			return m.suggestCategory(ctx)
		default:
			m.println(FormatWarning("Invalid option."))
			return nil
		}
	})
}

func (m *Menu) describeProduct(ctx context.Context) error {
	if m.assistant == nil {
		m.println(FormatWarning(MsgAssistantDisabled))
		return nil
	}

	id, err := m.askInt(ctx, "Product ID:")
	if err != nil {
		return err
	}

	product, err := m.store.GetProduct(ctx, id)
	if err != nil {
		m.report("describe product", err)
		return nil
	}

	m.println(SubtleStyle.Render("Asking the assistant..."))
	description, err := m.assistant.DescribeProduct(ctx, *product)
	if err != nil {
		if ctx.Err() != nil {
			return ErrInputCancelled
		}
		slog.Warn("description request failed", "product_id", id, "error", err)
		m.println(FormatError(AIErrorMessage(err)))
		return nil
	}

	m.println(RenderBox(fmt.Sprintf("Description for %s", product.Name), m.markdown(description)))
	return nil
}

func (m *Menu) suggestCategory(ctx context.Context) error {
	if m.assistant == nil {
		m.println(FormatWarning(MsgAssistantDisabled))
		return nil
	}

	name, err := m.ask(ctx, "New product name:")
	if err != nil {
		return err
	}
	if name == "" {
		m.println(FormatWarning("A product name is required."))
		return nil
	}

	m.println(SubtleStyle.Render("Asking the assistant..."))
	category, err := m.assistant.SuggestCategory(ctx, name)
	if err != nil {
		if ctx.Err() != nil {
			return ErrInputCancelled
		}
		slog.Warn("category request failed", "product", name, "error", err)
		m.println(FormatError(AIErrorMessage(err)))
		return nil
	}

	m.println(FormatSuccess("Suggested category: " + category))
	return nil
}
