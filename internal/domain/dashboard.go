package domain

import "github.com/shopspring/decimal"

type DashboardStats struct {
	TotalProjects  int             `json:"totalProjects"`
	TotalCustomers int             `json:"totalCustomers"`
	TotalEmployees int             `json:"totalEmployees"`
	YearlyRevenue  decimal.Decimal `json:"yearlyRevenue"`
}

// RevenuePoint is paid revenue for one YYYY-MM month.
type RevenuePoint struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}
