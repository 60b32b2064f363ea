package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeabis/zeabis/internal/domain"
	"github.com/zeabis/zeabis/internal/testutil"
)

func TestBillingRepo_ProjectLinesUseLatestPO(t *testing.T) {
	db := testutil.NewTestDB(t)
	w := seedBillingWorld(t, db)
	ctx := context.Background()

	newer := testutil.NewTestPurchaseOrder(w.project.ID, "PO-2",
		testutil.WithPOHours(200, 150), testutil.WithPODate("2024-06-01"))
	require.NoError(t, NewSQLitePurchaseOrderRepo(db).Create(ctx, newer))

	invoices := NewSQLiteInvoiceRepo(db)
	require.NoError(t, invoices.Create(ctx, testutil.NewTestInvoice(newer.ID, "INV-1", testutil.WithInvoiceAmount(4000))))
	require.NoError(t, invoices.Create(ctx, testutil.NewTestInvoice(newer.ID, "INV-X",
		testutil.WithInvoiceAmount(9999), testutil.WithInvoiceStatus(domain.InvoiceCancelled))))

	// A project without any PO is not part of the tracker.
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, testutil.NewTestProject(w.customer.ID, "No PO")))

	repo := NewSQLiteBillingRepo(db)
	lines, err := repo.ListProjectLines(ctx, BillingQuery{})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	l := lines[0]
	assert.Equal(t, "PO-2", l.PONumber)
	assert.Equal(t, 200.0, l.POHours)
	assert.Equal(t, "Acme", l.CustomerName)
	assert.Equal(t, "Dana", l.ProjectManager)
	assert.True(t, decimal.NewFromInt(4000).Equal(l.TotalInvoiced), l.TotalInvoiced.String())
}

func TestBillingRepo_ProjectLineFilters(t *testing.T) {
	db := testutil.NewTestDB(t)
	seedBillingWorld(t, db)
	repo := NewSQLiteBillingRepo(db)
	ctx := context.Background()

	lines, err := repo.ListProjectLines(ctx, BillingQuery{Customer: "acm"})
	require.NoError(t, err)
	assert.Len(t, lines, 1)

	lines, err = repo.ListProjectLines(ctx, BillingQuery{Project: "nothing like it"})
	require.NoError(t, err)
	assert.Empty(t, lines)

	lines, err = repo.ListProjectLines(ctx, BillingQuery{POStatus: domain.DocumentClosed})
	require.NoError(t, err)
	assert.Empty(t, lines)

	lines, err = repo.ListProjectLines(ctx, BillingQuery{PO: "po-1"})
	require.NoError(t, err)
	assert.Len(t, lines, 1)

	lines, err = repo.ListProjectLines(ctx, BillingQuery{PO: "po_1"})
	require.NoError(t, err)
	assert.Empty(t, lines, "underscore is matched literally")

	lines, err = repo.ListProjectLines(ctx, BillingQuery{InvoiceStatus: domain.InvoicePaid})
	require.NoError(t, err)
	assert.Empty(t, lines, "no invoices yet")
}

func TestBillingRepo_MonthlyHours(t *testing.T) {
	db := testutil.NewTestDB(t)
	w := seedBillingWorld(t, db)
	ctx := context.Background()
	sheets := NewSQLiteTimesheetRepo(db)
	for _, ts := range []struct {
		emp   string
		date  string
		hours float64
	}{
		{w.ana.ID, "2024-01-02", 8},
		{w.ana.ID, "2024-01-03", 6},
		{w.ana.ID, "2024-02-01", 4},
		{w.ben.ID, "2024-01-10", 5},
		{w.ben.ID, "2023-12-29", 9},
	} {
		require.NoError(t, sheets.Create(ctx, testutil.NewTestTimesheet(ts.emp, w.project.ID, ts.date, ts.hours)))
	}
	require.NoError(t, sheets.Create(ctx, testutil.NewTestTimesheet(w.ben.ID, w.project.ID, "2024-01-11", 3, testutil.WithNonBillable())))

	repo := NewSQLiteBillingRepo(db)
	facts, err := repo.MonthlyHours(ctx, []string{w.project.ID}, BillingQuery{Year: 2024})
	require.NoError(t, err)
	require.Len(t, facts, 3)
	assert.Equal(t, HoursFact{
		ProjectID: w.project.ID, EmployeeID: w.ana.ID, EmployeeName: "Ana",
		HourlyRate: facts[0].HourlyRate, Month: "2024-01", Hours: 14,
	}, facts[0])
	assert.Equal(t, "2024-02", facts[1].Month)
	assert.Equal(t, "Ben", facts[2].EmployeeName)
	assert.Equal(t, 5.0, facts[2].Hours)

	onlyBen, err := repo.MonthlyHours(ctx, []string{w.project.ID}, BillingQuery{Year: 2024, Employee: "ben"})
	require.NoError(t, err)
	assert.Len(t, onlyBen, 1)

	none, err := repo.MonthlyHours(ctx, nil, BillingQuery{})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestBillingRepo_InvoiceLines(t *testing.T) {
	db := testutil.NewTestDB(t)
	w := seedBillingWorld(t, db)
	ctx := context.Background()
	invoices := NewSQLiteInvoiceRepo(db)
	require.NoError(t, invoices.Create(ctx, testutil.NewTestInvoice(w.po.ID, "INV-24",
		testutil.WithInvoiceDates("2024-05-01", "2024-06-01"), testutil.WithInvoiceStatus(domain.InvoiceSent))))
	require.NoError(t, invoices.Create(ctx, testutil.NewTestInvoice(w.po.ID, "INV-23",
		testutil.WithInvoiceDates("2023-05-01", "2023-06-01"))))
	require.NoError(t, invoices.Create(ctx, testutil.NewTestInvoice("", "INV-LOOSE")))

	repo := NewSQLiteBillingRepo(db)
	lines, err := repo.ListInvoiceLines(ctx, BillingQuery{})
	require.NoError(t, err)
	require.Len(t, lines, 2, "invoices without a PO have no project")

	lines, err = repo.ListInvoiceLines(ctx, BillingQuery{Year: 2024, InvoiceStatus: domain.InvoiceSent})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "INV-24", lines[0].InvoiceNumber)
	assert.Equal(t, "PO-1", lines[0].PONumber)
	require.NotNil(t, lines[0].DueDate)
}
