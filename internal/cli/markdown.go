package cli

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const markdownWidth = 80

// RenderMarkdown renders assistant output for the terminal. If glamour
// cannot render it the text is returned unchanged.
func RenderMarkdown(text string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(markdownWidth),
	)
	if err != nil {
		return text
	}

	out, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}
