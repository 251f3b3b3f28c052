package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// tableGap separates adjacent columns.
const tableGap = "  "

// RenderTable renders rows under a header and a dim rule, every column left
// aligned.
func RenderTable(headers []string, rows [][]string) string {
	return RenderAlignedTable(headers, nil, rows)
}

// RenderAlignedTable is RenderTable with a per-column alignment. Columns
// without an entry in align are left aligned. Widths are measured on the
// visible text, so styled cells line up. The last column is never padded.
func RenderAlignedTable(headers []string, align []lipgloss.Position, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := range min(len(row), len(widths)) {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	pos := func(i int) lipgloss.Position {
		if i < len(align) {
			return align[i]
		}
		return lipgloss.Left
	}
	line := func(cells []string, style func(string) string) string {
		parts := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if style != nil {
				cell = style(cell)
			}
			if i == len(widths)-1 && pos(i) == lipgloss.Left {
				parts[i] = cell
				continue
			}
			parts[i] = lipgloss.PlaceHorizontal(widths[i], pos(i), cell)
		}
		return strings.Join(parts, tableGap)
	}

	rules := make([]string, len(widths))
	for i, w := range widths {
		rules[i] = StyleDim.Render(strings.Repeat("─", w))
	}

	var b strings.Builder
	b.WriteString(line(headers, func(h string) string { return StyleHeader.Render(h) }))
	b.WriteString("\n")
	b.WriteString(strings.Join(rules, tableGap))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(line(row, nil))
		b.WriteString("\n")
	}
	return b.String()
}
