package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// Table is a column-aligned listing. Empty is printed in place of the rows
// when there are none.
type Table struct {
	Headers []string
	Rows    [][]string
	Empty   string
}

// Render aligns every column to its widest cell. Widths are measured on the
// visible text so styled cells line up.
func (t Table) Render() string {
	cols := len(t.Headers)
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < cols && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	writeRow(&b, t.Headers, widths, StyleHeader.Render)

	seps := make([]string, cols)
	for i, w := range widths {
		seps[i] = strings.Repeat("─", w)
	}
	writeRow(&b, seps, widths, StyleDim.Render)

	if len(t.Rows) == 0 && t.Empty != "" {
		b.WriteString(Dim(t.Empty))
		b.WriteString("\n")
		return b.String()
	}
	for _, row := range t.Rows {
		writeRow(&b, row, widths, nil)
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string, widths []int, style func(...string) string) {
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		pad := max(w-lipgloss.Width(cell), 0)
		if style != nil {
			cell = style(cell)
		}
		b.WriteString(cell)
		if i < len(widths)-1 {
			b.WriteString(strings.Repeat(" ", pad+colGap))
		}
	}
	b.WriteString("\n")
}

// RenderTable renders headers and rows with no empty-state text.
func RenderTable(headers []string, rows [][]string) string {
	return Table{Headers: headers, Rows: rows}.Render()
}
