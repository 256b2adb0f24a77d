package llm

import (
	"fmt"
	"strings"

	"github.com/Veraticus/akihabara-market/internal/model"
)

func describePrompt(product model.Product, language string) string {
	return fmt.Sprintf(`Write a brief, attractive marketing description in %s for the product "%s" from the category "%s".

Keep it to two or three sentences suitable for a shop listing. Respond with the description only.`,
		language, product.Name, product.Category)
}

func categoryPrompt(productName string, categories []string) string {
	return fmt.Sprintf(`Suggest the most suitable category for a product named "%s".

Choose exactly one of: %s.

Respond with the category name only, exactly as written in the list.`,
		productName, strings.Join(categories, ", "))
}

// cleanCategory strips periods and surrounding whitespace from a model
// answer and, when it names a known category in any case, returns the
// canonical spelling.
func cleanCategory(answer string, categories []string) string {
	cleaned := strings.TrimSpace(strings.ReplaceAll(answer, ".", ""))
	cleaned = strings.Trim(cleaned, `"'*`)
	cleaned = strings.TrimSpace(cleaned)
	for _, category := range categories {
		if strings.EqualFold(cleaned, category) {
			return category
		}
	}
	return cleaned
}
