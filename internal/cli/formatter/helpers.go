package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"github.com/zeabis/zeabis/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)
	if title != "" {
		content = StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content
	}
	return box.Render(content)
}

// KeyValues renders label/value pairs with the labels right-aligned.
func KeyValues(pairs ...[2]string) string {
	width := 0
	for _, p := range pairs {
		width = max(width, lipgloss.Width(p[0]))
	}
	lines := make([]string, len(pairs))
	for i, p := range pairs {
		pad := strings.Repeat(" ", width-lipgloss.Width(p[0]))
		lines[i] = pad + Dim(p[0]) + "  " + p[1]
	}
	return strings.Join(lines, "\n")
}

// StatusPill returns a colored indicator for a project status.
func StatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectActive:
		return StyleGreen.Render("● Active")
	case domain.ProjectPlanning:
		return StyleBlue.Render("○ Planning")
	case domain.ProjectOnHold:
		return StyleYellow.Render("○ On Hold")
	case domain.ProjectCompleted:
		return StyleDim.Render("✔ Completed")
	case domain.ProjectClosed, domain.ProjectCancelled:
		return StyleDim.Render("✖ " + string(status))
	default:
		return StyleDim.Render(string(status))
	}
}

// InvoicePill returns a colored indicator for an invoice status.
func InvoicePill(status domain.InvoiceStatus) string {
	switch status {
	case domain.InvoiceDraft:
		return StyleBlue.Render("○ Draft")
	case domain.InvoiceSent:
		return StyleYellow.Render("▶ Sent")
	case domain.InvoicePaid:
		return StyleGreen.Render("✔ Paid")
	case domain.InvoiceOverdue:
		return StyleRed.Render("▲ Overdue")
	default:
		return StyleDim.Render(string(status))
	}
}

// Money renders an amount rounded to cents with thousands separators.
func Money(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return "$" + humanize.FormatFloat("#,###.##", f)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Count renders n with a noun, pluralized by a trailing "s".
func Count(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%s %ss", humanize.Comma(int64(n)), noun)
}
