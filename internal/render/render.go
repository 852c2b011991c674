package render

import (
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// Markdown renders markdown for the terminal with the dracula style.
func Markdown(content string, width int) (string, error) {
	if width <= 0 {
		width = 100
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(termenv.ANSI256),
	)
	if err != nil {
		return "", err
	}

	return r.Render(content)
}

// FilePreview renders a note for a preview pane. Errors are reported inline
// since the pane has nowhere else to show them.
func FilePreview(path string, width int) string {
	content, err := os.ReadFile(path)
	if err != nil {
		return "Error reading file"
	}

	markdown, err := Markdown(string(content), width)
	if err != nil {
		return "Error rendering markdown"
	}
	return markdown
}
