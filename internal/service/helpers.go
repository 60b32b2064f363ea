package service

import (
	"github.com/shopspring/decimal"
)

func decimalFromHours(h float64) decimal.Decimal {
	return decimal.NewFromFloat(h)
}
