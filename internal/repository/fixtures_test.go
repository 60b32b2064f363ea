package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeabis/zeabis/internal/domain"
	"github.com/zeabis/zeabis/internal/testutil"
)

// billingWorld is a small customer/project/employee graph shared by the
// timesheet, invoice and billing tests.
type billingWorld struct {
	customer *domain.Customer
	project  *domain.Project
	ana      *domain.Employee
	ben      *domain.Employee
	po       *domain.PurchaseOrder
}

func seedBillingWorld(t *testing.T, db *sql.DB) billingWorld {
	t.Helper()
	ctx := context.Background()
	w := billingWorld{
		customer: testutil.NewTestCustomer("Acme"),
		ana:      testutil.NewTestEmployee("Ana", testutil.WithHourlyRate("100")),
		ben:      testutil.NewTestEmployee("Ben", testutil.WithHourlyRate("80")),
	}
	w.project = testutil.NewTestProject(w.customer.ID, "Portal", testutil.WithProjectManager("Dana"))
	w.po = testutil.NewTestPurchaseOrder(w.project.ID, "PO-1",
		testutil.WithPOHours(100, 150), testutil.WithPODate("2024-01-05"))

	require.NoError(t, NewSQLiteCustomerRepo(db).Create(ctx, w.customer))
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, w.project))
	employees := NewSQLiteEmployeeRepo(db)
	require.NoError(t, employees.Create(ctx, w.ana))
	require.NoError(t, employees.Create(ctx, w.ben))
	require.NoError(t, NewSQLitePurchaseOrderRepo(db).Create(ctx, w.po))
	return w
}
