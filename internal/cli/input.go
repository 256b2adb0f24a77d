package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

const invalidNumberPrompt = "Please enter a valid number: "

// ask writes label and reads one line.
func (m *Menu) ask(ctx context.Context, label string) (string, error) {
	if _, err := fmt.Fprint(m.out, FormatPrompt(label)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	return m.in.ReadLine(ctx)
}

// askDefault shows current in the prompt and returns it for a blank answer.
func (m *Menu) askDefault(ctx context.Context, label, current string) (string, error) {
	answer, err := m.ask(ctx, fmt.Sprintf("%s (%s):", label, current))
	if err != nil {
		return "", err
	}
	if answer == "" {
		return current, nil
	}
	return answer, nil
}

// askInt re-asks until the answer parses as an integer.
func (m *Menu) askInt(ctx context.Context, label string) (int, error) {
	answer, err := m.ask(ctx, label)
	for err == nil {
		if n, convErr := strconv.Atoi(answer); convErr == nil {
			return n, nil
		}
		answer, err = m.ask(ctx, invalidNumberPrompt)
	}
	return 0, err
}

// askIntDefault is askInt with a blank answer meaning current.
func (m *Menu) askIntDefault(ctx context.Context, label string, current int) (int, error) {
	prompt := fmt.Sprintf("%s (%d):", label, current)
	answer, err := m.ask(ctx, prompt)
	for err == nil {
		if answer == "" {
			return current, nil
		}
		if n, convErr := strconv.Atoi(answer); convErr == nil {
			return n, nil
		}
		answer, err = m.ask(ctx, invalidNumberPrompt)
	}
	return 0, err
}

// askPrice re-asks until the answer parses as a decimal. A decimal comma
// is accepted.
func (m *Menu) askPrice(ctx context.Context, label string) (float64, error) {
	answer, err := m.ask(ctx, label)
	for err == nil {
		if price, ok := parsePrice(answer); ok {
			return price, nil
		}
		answer, err = m.ask(ctx, invalidNumberPrompt)
	}
	return 0, err
}

func (m *Menu) askPriceDefault(ctx context.Context, label string, current float64) (float64, error) {
	answer, err := m.ask(ctx, fmt.Sprintf("%s (%.2f):", label, current))
	for err == nil {
		if answer == "" {
			return current, nil
		}
		if price, ok := parsePrice(answer); ok {
			return price, nil
		}
		answer, err = m.ask(ctx, invalidNumberPrompt)
	}
	return 0, err
}

// ParsePrice parses a decimal with either '.' or ',' as separator.
func ParsePrice(s string) (float64, error) {
	price, ok := parsePrice(s)
	if !ok {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	return price, nil
}

func parsePrice(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "€"))
	if s == "" {
		return 0, false
	}
	price, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return 0, false
	}
	return price, true
}
