package formatter

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const markdownWidth = 80

// Markdown renders a project or task description. Descriptions are authored
// as markdown in the web app; plain text passes through unchanged apart from
// wrapping. Rendering failures fall back to the raw text.
func Markdown(src string) string {
	src = strings.TrimSpace(src)
	if src == "" {
		return Dim("No description.")
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(markdownWidth),
	)
	if err != nil {
		return src
	}
	out, err := r.Render(src)
	if err != nil {
		return src
	}
	return strings.Trim(out, "\n")
}
