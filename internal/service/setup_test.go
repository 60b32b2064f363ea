package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zeabis/zeabis/internal/auth"
	"github.com/zeabis/zeabis/internal/domain"
	"github.com/zeabis/zeabis/internal/repository"
	"github.com/zeabis/zeabis/internal/testutil"
)

type testEnv struct {
	db         *sql.DB
	customers  *repository.SQLiteCustomerRepo
	employees  *repository.SQLiteEmployeeRepo
	projects   *repository.SQLiteProjectRepo
	timesheets *repository.SQLiteTimesheetRepo
	pos        *repository.SQLitePurchaseOrderRepo
	invoices   *repository.SQLiteInvoiceRepo
	users      *repository.SQLiteUserRepo
	issuer     *auth.Issuer
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testEnv{
		db:         database,
		customers:  repository.NewSQLiteCustomerRepo(database),
		employees:  repository.NewSQLiteEmployeeRepo(database),
		projects:   repository.NewSQLiteProjectRepo(database),
		timesheets: repository.NewSQLiteTimesheetRepo(database),
		pos:        repository.NewSQLitePurchaseOrderRepo(database),
		invoices:   repository.NewSQLiteInvoiceRepo(database),
		users:      repository.NewSQLiteUserRepo(database),
		issuer:     auth.NewIssuer("test-secret", time.Hour),
	}
}

// trackerWorld seeds two projects with POs and a year of timesheets:
// Portal (PO 100h @150) burns 80h, Mobile (PO 0h) burns 10h.
type trackerWorld struct {
	portal, mobile *domain.Project
	ana, ben       *domain.Employee
}

func seedTracker(t *testing.T, env *testEnv) trackerWorld {
	t.Helper()
	ctx := context.Background()
	acme := testutil.NewTestCustomer("Acme")
	globex := testutil.NewTestCustomer("Globex")
	require.NoError(t, env.customers.Create(ctx, acme))
	require.NoError(t, env.customers.Create(ctx, globex))

	w := trackerWorld{
		portal: testutil.NewTestProject(acme.ID, "Portal", testutil.WithProjectManager("Dana")),
		mobile: testutil.NewTestProject(globex.ID, "Mobile", testutil.WithProjectStatus(domain.ProjectOnHold)),
		ana:    testutil.NewTestEmployee("Ana", testutil.WithHourlyRate("100")),
		ben:    testutil.NewTestEmployee("Ben", testutil.WithHourlyRate("80")),
	}
	require.NoError(t, env.projects.Create(ctx, w.portal))
	require.NoError(t, env.projects.Create(ctx, w.mobile))
	require.NoError(t, env.employees.Create(ctx, w.ana))
	require.NoError(t, env.employees.Create(ctx, w.ben))

	require.NoError(t, env.pos.Create(ctx, testutil.NewTestPurchaseOrder(w.portal.ID, "PO-1",
		testutil.WithPOHours(100, 150), testutil.WithPODate("2024-01-05"))))
	require.NoError(t, env.pos.Create(ctx, testutil.NewTestPurchaseOrder(w.mobile.ID, "PO-2",
		testutil.WithPODate("2024-02-01"))))

	for _, ts := range []struct {
		emp, proj, date string
		hours           float64
	}{
		{w.ana.ID, w.portal.ID, "2024-01-10", 8},
		{w.ana.ID, w.portal.ID, "2024-01-11", 8},
		{w.ana.ID, w.portal.ID, "2024-02-01", 24},
		{w.ben.ID, w.portal.ID, "2024-02-02", 20},
		{w.ben.ID, w.portal.ID, "2024-03-03", 20},
		{w.ben.ID, w.mobile.ID, "2024-03-04", 10},
		{w.ana.ID, w.portal.ID, "2023-12-30", 8},
	} {
		require.NoError(t, env.timesheets.Create(ctx, testutil.NewTestTimesheet(ts.emp, ts.proj, ts.date, ts.hours)))
	}
	return w
}
