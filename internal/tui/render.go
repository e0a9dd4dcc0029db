package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/glamour"
)

const defaultWrap = 80

// returns a markdown renderer, or nil when the terminal style cannot be loaded
func newRenderer(width int) *glamour.TermRenderer {
	if width <= 0 {
		width = defaultWrap
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}

	return renderer
}

// renders model output as markdown, falling back to the raw text
func renderMarkdown(renderer *glamour.TermRenderer, text string) string {
	if renderer == nil {
		return text
	}

	out, err := renderer.Render(text)
	if err != nil {
		return text
	}

	return strings.TrimRight(out, "\n")
}

func newSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = infoStyle

	return s
}

func wrapWidth(width int) int {
	if width <= 8 {
		return defaultWrap
	}

	return min(width-8, 120)
}
