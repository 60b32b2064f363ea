package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/zeabis/zeabis/internal/domain"
)

// TreeItem is one line of a tree. Items are listed depth-first; IsLast marks
// the final child of its parent so the connector closes.
type TreeItem struct {
	Title  string
	Level  int
	IsLast bool
	Status domain.InvoiceStatus
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderTree draws items with box connectors and right-aligned detail
// badges. Paid items are dimmed, overdue ones flagged red.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	content := make([]string, len(items))
	width := 0
	for i, item := range items {
		var prefix string
		if item.Level > 0 {
			prefix = strings.Repeat(treePipe, item.Level-1)
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}
		content[i] = prefix + statusMark(item.Status, item.Title)
		width = max(width, lipgloss.Width(content[i]))
	}

	var b strings.Builder
	for i, item := range items {
		b.WriteString(content[i])
		if item.Detail != "" {
			pad := width - lipgloss.Width(content[i])
			b.WriteString(strings.Repeat(" ", pad) + "  " + StyleBlue.Render("[ "+item.Detail+" ]"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func statusMark(s domain.InvoiceStatus, title string) string {
	switch s {
	case domain.InvoicePaid:
		return StyleGreen.Render("✔ ") + Dim(title)
	case domain.InvoiceOverdue:
		return StyleRed.Render("▲ ") + StyleRed.Render(title)
	case domain.InvoiceSent:
		return StyleYellowBold.Render("▶ ") + title
	case domain.InvoiceCancelled:
		return Dim("✖ " + title)
	}
	return title
}
