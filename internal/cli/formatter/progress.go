package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderBurn renders a burned percentage as a bar like [████░░░░] 45.0%.
// The bar is clamped at 100% but the label keeps the real value, so an
// overrun PO still reads as such.
func RenderBurn(pct float64, width int) string {
	width = max(width, 2)
	frac := min(max(pct/100, 0), 1)
	filled := int(frac * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return fmt.Sprintf("[%s] %.1f%%", BurnStyle(pct).Render(bar), pct)
}
