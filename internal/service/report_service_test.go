package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeabis/zeabis/internal/billing"
	"github.com/zeabis/zeabis/internal/contract"
	"github.com/zeabis/zeabis/internal/domain"
	"github.com/zeabis/zeabis/internal/repository"
	"github.com/zeabis/zeabis/internal/testutil"
)

func billingFor(t *testing.T, svc ReportService, f contract.FilterValues, sortKey, dir string) *contract.BillingReportResponse {
	t.Helper()
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	req := contract.NewBillingReportRequest(f).WithSort(sortKey, dir)
	req.Now = &now
	resp, err := svc.Billing(context.Background(), req)
	require.NoError(t, err)
	return resp
}

func rowNames(rows []billing.ProjectBilling) []string {
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.Project
	}
	return names
}

func TestReportService_BillingDefaultsToCurrentYear(t *testing.T) {
	env := setupEnv(t)
	seedTracker(t, env)
	svc := NewReportService(repository.NewSQLiteBillingRepo(env.db))

	resp := billingFor(t, svc, contract.FilterValues{}, "", "")
	assert.Equal(t, 2024, resp.Year)
	assert.Len(t, resp.Window, 12)
	assert.Equal(t, []string{"Mobile", "Portal"}, rowNames(resp.Rows))

	portal := resp.Rows[1]
	totals := portal.Totals()
	assert.Equal(t, 80.0, totals.TotalBurnedHours, "the December 2023 entry is outside the window")
	assert.Equal(t, 20.0, totals.BalanceHours)
	assert.InDelta(t, 80.0, totals.BurnedPercentage, 1e-9)
	assert.Equal(t, billing.InvoicePending, portal.InvoiceStatus)
	assert.Equal(t, "Dana", portal.ProjectManager)
	require.Len(t, portal.Employees, 2)
	assert.Equal(t, "Ana", portal.Employees[0].Name)
	assert.True(t, decimal.NewFromInt(7200).Equal(totals.BurnedAmount), totals.BurnedAmount.String())

	mobile := resp.Rows[0]
	assert.Zero(t, mobile.Totals().BurnedPercentage, "a PO without hours burns 0%")

	assert.Equal(t, billing.Summary{
		TotalPOHours:     100,
		TotalBurnedHours: 90,
		AvgBurnRate:      40,
		TotalEmployees:   3,
		TotalPOs:         2,
		ActiveProjects:   1,
	}, resp.Summary)

	require.Len(t, resp.MonthOverview, 12)
	assert.Equal(t, 16.0, resp.MonthOverview[0].Hours)
	assert.Equal(t, 44.0, resp.MonthOverview[1].Hours)
	assert.Equal(t, 30.0, resp.MonthOverview[2].Hours)
}

func TestReportService_BillingFilters(t *testing.T) {
	env := setupEnv(t)
	seedTracker(t, env)
	svc := NewReportService(repository.NewSQLiteBillingRepo(env.db))

	resp := billingFor(t, svc, contract.FilterValues{Months: []string{"March"}}, "", "")
	require.Len(t, resp.Window, 1)
	assert.Equal(t, "Mar 2024", resp.Window[0].Month)
	assert.Equal(t, 10.0, resp.Rows[0].Totals().TotalBurnedHours)
	assert.Equal(t, 20.0, resp.Rows[1].Totals().TotalBurnedHours)

	resp = billingFor(t, svc, contract.FilterValues{Employee: "ana"}, "", "")
	assert.Equal(t, []string{"Portal"}, rowNames(resp.Rows), "projects without the employee drop out")
	require.Len(t, resp.Rows[0].Employees, 1)
	assert.Equal(t, 40.0, resp.Rows[0].Totals().TotalBurnedHours)

	resp = billingFor(t, svc, contract.FilterValues{Customer: "glob"}, "", "")
	assert.Equal(t, []string{"Mobile"}, rowNames(resp.Rows))

	resp = billingFor(t, svc, contract.FilterValues{ProjectStatus: domain.ProjectActive}, "", "")
	assert.Equal(t, []string{"Portal"}, rowNames(resp.Rows))

	resp = billingFor(t, svc, contract.FilterValues{Year: 2023}, "", "")
	assert.Equal(t, 8.0, resp.Rows[1].Totals().TotalBurnedHours)
}

func TestReportService_BillingSort(t *testing.T) {
	env := setupEnv(t)
	seedTracker(t, env)
	svc := NewReportService(repository.NewSQLiteBillingRepo(env.db))

	resp := billingFor(t, svc, contract.FilterValues{}, "burnedPercentage", "desc")
	assert.Equal(t, []string{"Portal", "Mobile"}, rowNames(resp.Rows))

	resp = billingFor(t, svc, contract.FilterValues{}, "2024-03", "asc")
	assert.Equal(t, []string{"Mobile", "Portal"}, rowNames(resp.Rows), "month columns sort by hours")

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	req := contract.NewBillingReportRequest(contract.FilterValues{}).WithSort("nope", "asc")
	req.Now = &now
	_, err := svc.Billing(context.Background(), req)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestReportService_Invoices(t *testing.T) {
	env := setupEnv(t)
	w := seedTracker(t, env)
	ctx := context.Background()
	pos, err := env.pos.List(ctx, w.portal.ID)
	require.NoError(t, err)
	require.Len(t, pos, 1)
	require.NoError(t, env.invoices.Create(ctx, testutil.NewTestInvoice(pos[0].ID, "INV-9",
		testutil.WithInvoiceStatus(domain.InvoiceSent), testutil.WithInvoiceDates("2024-04-01", "2024-04-30"), testutil.WithInvoiceAmount(6000))))

	svc := NewReportService(repository.NewSQLiteBillingRepo(env.db))
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	req := contract.NewInvoiceReportRequest(contract.FilterValues{})
	req.Now = &now
	resp, err := svc.Invoices(ctx, req)
	require.NoError(t, err)
	require.Len(t, resp.Rows, 1)
	row := resp.Rows[0]
	assert.Equal(t, "INV-9", row.InvoiceNumber)
	assert.Equal(t, "PO-1", row.POID)
	assert.Equal(t, 80.0, row.Totals().TotalHours)

	billingResp := billingFor(t, svc, contract.FilterValues{}, "", "")
	assert.Equal(t, billing.InvoicePartial, billingResp.Rows[1].InvoiceStatus)

	mobilePOs, err := env.pos.List(ctx, w.mobile.ID)
	require.NoError(t, err)
	require.Len(t, mobilePOs, 1)
	require.NoError(t, env.invoices.Create(ctx, testutil.NewTestInvoice(mobilePOs[0].ID, "INV-10",
		testutil.WithInvoiceDates("2024-04-02", "2024-05-02"), testutil.WithInvoiceAmount(800))))

	// Ana never booked on Mobile, so its invoice drops out like the
	// project does in the billing tracker.
	req = contract.NewInvoiceReportRequest(contract.FilterValues{Employee: "ana"}).WithSort("invoiceNumber", "asc")
	req.Now = &now
	resp, err = svc.Invoices(ctx, req)
	require.NoError(t, err)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "INV-9", resp.Rows[0].InvoiceNumber)
	assert.Equal(t, 40.0, resp.Rows[0].Totals().TotalHours)

	req = contract.NewInvoiceReportRequest(contract.FilterValues{Employee: "ben"})
	req.Now = &now
	resp, err = svc.Invoices(ctx, req)
	require.NoError(t, err)
	assert.Len(t, resp.Rows, 2)

	req = contract.NewInvoiceReportRequest(contract.FilterValues{InvoiceStatus: domain.InvoicePaid})
	req.Now = &now
	resp, err = svc.Invoices(ctx, req)
	require.NoError(t, err)
	assert.Empty(t, resp.Rows)
}
