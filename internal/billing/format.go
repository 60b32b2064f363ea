package billing

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatAmount rounds to whole currency units with thousands separators.
func FormatAmount(d decimal.Decimal) string {
	return "$" + humanize.Comma(d.Round(0).IntPart())
}

func FormatHours(h float64) string {
	return humanize.Commaf(h)
}

// FormatPercent renders a percentage with one decimal place.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}
