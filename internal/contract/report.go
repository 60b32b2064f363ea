package contract

import (
	"time"

	"github.com/zeabis/zeabis/internal/billing"
	"github.com/zeabis/zeabis/internal/grid"
)

// BillingReportRequest asks for the billing tracker. A nil Sort keeps the
// repository order (project name).
type BillingReportRequest struct {
	Filters FilterValues
	Sort    *grid.SortState
	Now     *time.Time
}

func NewBillingReportRequest(f FilterValues) BillingReportRequest {
	return BillingReportRequest{Filters: f}
}

// WithSort sets the sort from a key and direction text; an empty key clears it.
func (r BillingReportRequest) WithSort(key, dir string) BillingReportRequest {
	if key == "" {
		r.Sort = nil
		return r
	}
	r.Sort = &grid.SortState{Key: key, Direction: grid.ParseDirection(dir)}
	return r
}

type BillingReportResponse struct {
	GeneratedAt   time.Time                `json:"generatedAt"`
	Year          int                      `json:"year"`
	Filters       FilterValues             `json:"filters"`
	Window        []billing.MonthBucket    `json:"window"`
	Rows          []billing.ProjectBilling `json:"rows"`
	Summary       billing.Summary          `json:"summary"`
	MonthOverview []billing.MonthBucket    `json:"monthOverview"`
}

type InvoiceReportRequest struct {
	Filters FilterValues
	Sort    *grid.SortState
	Now     *time.Time
}

func NewInvoiceReportRequest(f FilterValues) InvoiceReportRequest {
	return InvoiceReportRequest{Filters: f}
}

func (r InvoiceReportRequest) WithSort(key, dir string) InvoiceReportRequest {
	if key == "" {
		r.Sort = nil
		return r
	}
	r.Sort = &grid.SortState{Key: key, Direction: grid.ParseDirection(dir)}
	return r
}

type InvoiceReportResponse struct {
	GeneratedAt time.Time                `json:"generatedAt"`
	Year        int                      `json:"year"`
	Filters     FilterValues             `json:"filters"`
	Window      []billing.MonthBucket    `json:"window"`
	Rows        []billing.InvoiceBilling `json:"rows"`
}
