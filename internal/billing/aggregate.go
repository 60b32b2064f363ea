// Package billing derives the hierarchical billing and invoice tracker rows:
// month buckets per project and employee, and the totals computed from them.
// Totals are always derived on demand and never stored.
package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthLabelLayout renders bucket labels such as "Jan 2024".
const MonthLabelLayout = "Jan 2006"

// MonthBucket is one month of a fixed reporting window. A zero Amount means
// no amount was recorded.
type MonthBucket struct {
	Key    string          `json:"key"`
	Month  string          `json:"month"`
	Hours  float64         `json:"hours"`
	Amount decimal.Decimal `json:"amount"`
}

// Window returns empty buckets for the given months of year in calendar
// order, or for all twelve months when months is empty.
func Window(year int, months []time.Month) []MonthBucket {
	selected := map[time.Month]bool{}
	for _, m := range months {
		selected[m] = true
	}
	var out []MonthBucket
	for m := time.January; m <= time.December; m++ {
		if len(selected) > 0 && !selected[m] {
			continue
		}
		t := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
		out = append(out, MonthBucket{Key: t.Format("2006-01"), Month: t.Format(MonthLabelLayout)})
	}
	return out
}

func TotalHours(months []MonthBucket) float64 {
	var sum float64
	for _, m := range months {
		sum += m.Hours
	}
	return sum
}

// TotalAmount sums bucket amounts; absent amounts count as zero.
func TotalAmount(months []MonthBucket) decimal.Decimal {
	sum := decimal.Zero
	for _, m := range months {
		sum = sum.Add(m.Amount)
	}
	return sum
}

// BurnedPercentage is burned hours as a percentage of PO hours. A PO without
// hours has burned nothing of its quota, so the result is 0 rather than NaN.
func BurnedPercentage(totalBurnedHours, poHours float64) float64 {
	if poHours == 0 {
		return 0
	}
	return totalBurnedHours / poHours * 100
}

// BalanceHours is what is left of the PO hours; negative when overrun.
func BalanceHours(poHours, totalBurnedHours float64) float64 {
	return poHours - totalBurnedHours
}

func cloneMonths(months []MonthBucket) []MonthBucket {
	if months == nil {
		return nil
	}
	out := make([]MonthBucket, len(months))
	copy(out, months)
	return out
}
