package formatter

import (
	"strings"

	"github.com/zeabis/zeabis/internal/grid"
)

const (
	markCursor    = "›"
	markCollapsed = "▸"
	markExpanded  = "▾"
)

// RenderGrid draws a built grid view as a text table. The row at cursor is
// highlighted (pass -1 for none) and an expanded row's detail is printed
// indented beneath it. Loading and empty views render their message only.
func RenderGrid(v grid.View, cursor int) string {
	if v.State != grid.StateRows {
		return "  " + Dim(v.Message) + "\n"
	}

	headers := make([]string, len(v.Headers)+1)
	for i, h := range v.Headers {
		headers[i+1] = h.Label
		if h.Arrow != "" {
			headers[i+1] += " " + h.Arrow
		}
	}
	rows := make([][]string, len(v.Rows))
	for i, r := range v.Rows {
		rows[i] = append([]string{rowMarks(r, i == cursor)}, r.Cells...)
	}
	widths := columnWidths(headers, rows)

	var b strings.Builder
	writeCells(&b, headers, widths, func(s string) string { return StyleHeader.Render(s) })
	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = StyleDim.Render(strings.Repeat("─", w))
	}
	writeCells(&b, rule, widths, nil)

	for i, r := range v.Rows {
		var style func(string) string
		if i == cursor {
			style = func(s string) string { return StyleSelected.Render(s) }
		}
		writeCells(&b, rows[i], widths, style)
		if r.Expanded && r.Detail != "" {
			for _, line := range strings.Split(strings.TrimRight(r.Detail, "\n"), "\n") {
				b.WriteString("      " + line + "\n")
			}
		}
	}
	return b.String()
}

func rowMarks(r grid.ViewRow, selected bool) string {
	cur, exp := " ", " "
	if selected {
		cur = markCursor
	}
	if r.Expandable {
		exp = markCollapsed
		if r.Expanded {
			exp = markExpanded
		}
	}
	return cur + exp
}
