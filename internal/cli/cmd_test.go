package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/zeabis/zeabis/internal/auth"
	"github.com/zeabis/zeabis/internal/client"
	"github.com/zeabis/zeabis/internal/config"
	"github.com/zeabis/zeabis/internal/domain"
	"github.com/zeabis/zeabis/internal/httpapi"
	"github.com/zeabis/zeabis/internal/service"
	"github.com/zeabis/zeabis/internal/testutil"
)

var testNow = time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	cfg := config.DefaultConfig()
	cfg.TokenFile = filepath.Join(t.TempDir(), "token")
	return &App{
		Services: service.NewServices(database, auth.NewIssuer("cli-test-secret", time.Hour)),
		Config:   cfg,
		Now:      func() time.Time { return testNow },
	}
}

// seededApp is testApp loaded with the bundled demo data.
func seededApp(t *testing.T) *App {
	t.Helper()
	app := testApp(t)
	_, err := executeCmd(t, app, "seed")
	require.NoError(t, err)
	return app
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	output, err := executeCmd(t, testApp(t))
	require.NoError(t, err)
	assert.Contains(t, output, "zeabis")
	assert.Contains(t, output, "billing")
}

// --- seed ---

func TestSeedCmd_Demo(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "seed")
	require.NoError(t, err)
	assert.Contains(t, output, "Seeded 3 users, 3 customers, 4 employees, 3 projects")

	_, err = executeCmd(t, app, "seed")
	require.Error(t, err, "a second load collides on unique emails")
	assert.True(t, domain.IsConflict(err))
}

func TestSeedCmd_CheckReportsEveryProblem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, path, `
customers:
  - ref: a
    name: Acme
projects:
  - ref: p
    customer: nobody
    name: Portal
    status: Sleeping
`)

	output, err := executeCmd(t, testApp(t), "seed", "--file", path, "--check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "problems")
	assert.Contains(t, output, "nobody")
	assert.Contains(t, output, "Sleeping")
}

func TestSeedCmd_CheckValid(t *testing.T) {
	output, err := executeCmd(t, testApp(t), "seed", "--check")
	require.NoError(t, err)
	assert.Contains(t, output, "seed is valid")
}

// --- billing ---

func TestBillingCmd_Plain(t *testing.T) {
	app := seededApp(t)

	output, err := executeCmd(t, app, "billing")
	require.NoError(t, err)
	assert.Contains(t, output, "BILLING TRACKER 2026")
	assert.Contains(t, output, "Customer Portal")
	assert.Contains(t, output, "Mobile App")
	assert.Contains(t, output, "Data Migration")
	assert.Contains(t, output, "SUMMARY")
	assert.NotContains(t, output, "Ana Lopez", "employees stay collapsed by default")
}

func TestBillingCmd_SortAndExpand(t *testing.T) {
	app := seededApp(t)

	output, err := executeCmd(t, app, "billing", "--sort", "burnedPercentage", "--dir", "desc", "--expand")
	require.NoError(t, err)
	// Mobile 426/800 burned, Portal 536/1200, Migration has no PO hours.
	mobile := strings.Index(output, "Mobile App")
	portal := strings.Index(output, "Customer Portal")
	migration := strings.Index(output, "Data Migration")
	assert.Less(t, mobile, portal)
	assert.Less(t, portal, migration)
	assert.Contains(t, output, "Burn % ▼")
	assert.Contains(t, output, "Ana Lopez")
	assert.Contains(t, output, "Dee Murphy")
}

func TestBillingCmd_ExpandAllShowsEmployeeMonths(t *testing.T) {
	output, err := executeCmd(t, seededApp(t), "billing", "--project", "portal", "--expand-all")
	require.NoError(t, err)
	assert.Contains(t, output, "Ana Lopez")
	assert.Contains(t, output, "├─ Jan 2026")
	assert.Contains(t, output, "└─ Jun 2026")
	assert.NotContains(t, output, "Jul 2026", "months without hours are left out")
}

func TestBillingCmd_Filters(t *testing.T) {
	app := seededApp(t)

	output, err := executeCmd(t, app, "billing", "--project", "portal", "--months", "jan,feb", "--monthly", "--expand")
	require.NoError(t, err)
	assert.Contains(t, output, "Customer Portal")
	assert.NotContains(t, output, "Mobile App")
	assert.Contains(t, output, "Jan 2026")
	assert.Contains(t, output, "Feb 2026")
	assert.NotContains(t, output, "Mar 2026")
	assert.Contains(t, output, "Chen Wei")
}

func TestBillingCmd_RejectsBadInput(t *testing.T) {
	app := seededApp(t)

	_, err := executeCmd(t, app, "billing", "--months", "smarch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid month")

	_, err = executeCmd(t, app, "billing", "--sort", "bogus")
	require.Error(t, err)

	_, err = executeCmd(t, app, "billing", "--invoice-status", "Lost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid invoice status")
}

// --- invoices ---

func TestInvoiceReportCmd(t *testing.T) {
	app := seededApp(t)

	output, err := executeCmd(t, app, "invoices", "report")
	require.NoError(t, err)
	assert.Contains(t, output, "INVOICES 2026")
	assert.Contains(t, output, "INV-2026-0001")
	assert.Contains(t, output, "INV-2026-0003")
	assert.Contains(t, output, "$14,100")
	assert.NotContains(t, output, "Ana Lopez", "employees stay collapsed by default")

	output, err = executeCmd(t, app, "invoices", "report", "--sort", "invoiceNumber", "--dir", "desc", "--expand-all")
	require.NoError(t, err)
	assert.Less(t, strings.Index(output, "INV-2026-0003"), strings.Index(output, "INV-2026-0001"))
	assert.Contains(t, output, "Ana Lopez")
	assert.Contains(t, output, "Ben Okafor")
	assert.Contains(t, output, "└─ ")
}

func TestInvoiceReportCmd_EmployeeFilter(t *testing.T) {
	output, err := executeCmd(t, seededApp(t), "invoices", "report", "--employee", "ben", "--expand")
	require.NoError(t, err)
	assert.Contains(t, output, "INV-2026-0003")
	assert.NotContains(t, output, "INV-2026-0001", "Ben never booked on the portal")
	assert.Contains(t, output, "Ben Okafor")
}

func TestInvoiceReportCmd_Empty(t *testing.T) {
	output, err := executeCmd(t, testApp(t), "invoices", "report")
	require.NoError(t, err)
	assert.Contains(t, output, "No invoices found.")
}

func TestInvoiceOverdueCmd(t *testing.T) {
	app := seededApp(t)

	output, err := executeCmd(t, app, "invoices", "overdue")
	require.NoError(t, err)
	assert.Contains(t, output, "1 invoice marked overdue")

	overdue, err := app.Services.Invoices.List(context.Background(), domain.InvoiceFilter{Status: domain.InvoiceOverdue})
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, "INV-2026-0002", overdue[0].Number)

	output, err = executeCmd(t, app, "invoices", "overdue")
	require.NoError(t, err)
	assert.Contains(t, output, "0 invoices marked overdue")
}

func TestInvoiceStatusCmd(t *testing.T) {
	app := seededApp(t)
	drafts, err := app.Services.Invoices.List(context.Background(), domain.InvoiceFilter{Status: domain.InvoiceDraft})
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	output, err := executeCmd(t, app, "invoices", "status", drafts[0].ID, "Sent")
	require.NoError(t, err)
	assert.Contains(t, output, "INV-2026-0003")
	assert.Contains(t, output, "Sent")

	_, err = executeCmd(t, app, "invoices", "status", drafts[0].ID, "Lost")
	require.Error(t, err)

	_, err = executeCmd(t, app, "invoices", "status", "missing", "Paid")
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

// --- dashboard ---

func TestDashboardCmd(t *testing.T) {
	output, err := executeCmd(t, seededApp(t), "dashboard")
	require.NoError(t, err)
	assert.Contains(t, output, "DASHBOARD")
	assert.Contains(t, output, "Revenue 2026")
	assert.Contains(t, output, "$14,100.00")
	assert.Contains(t, output, "Feb 2026")
}

func TestDashboardCmd_NoRevenue(t *testing.T) {
	output, err := executeCmd(t, testApp(t), "dashboard")
	require.NoError(t, err)
	assert.Contains(t, output, "No paid invoices")
}

// --- export ---

func TestExportCmd_Billing(t *testing.T) {
	app := seededApp(t)
	path := filepath.Join(t.TempDir(), "billing.xlsx")

	output, err := executeCmd(t, app, "export", "billing", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, output, "Wrote 3 projects")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Projects")
	assert.Contains(t, f.GetSheetList(), "Employees")
}

func TestExportCmd_BillingAsShown(t *testing.T) {
	app := seededApp(t)
	path := filepath.Join(t.TempDir(), "shown.xlsx")

	_, err := executeCmd(t, app, "export", "billing", "--as-shown", "--sort", "project", "-o", path)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Billing")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Project", rows[0][0])
	assert.Equal(t, "Customer Portal", rows[1][0])
}

func TestExportCmd_Invoices(t *testing.T) {
	app := seededApp(t)
	path := filepath.Join(t.TempDir(), "invoices.xlsx")

	output, err := executeCmd(t, app, "export", "invoices", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, output, "Wrote 3 invoices")
}

// --- user ---

func TestUserRegisterCmd(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "user", "register",
		"--email", "Kim@Example.com", "--password", "longenough",
		"--first-name", "Kim", "--last-name", "Lee", "--role", "Finance Manager")
	require.NoError(t, err)
	assert.Contains(t, output, "Kim Lee")
	assert.Contains(t, output, "Finance Manager")

	output, err = executeCmd(t, app, "user", "role", "kim@example.com", "Admin")
	require.NoError(t, err)
	assert.Contains(t, output, "Admin")

	_, err = executeCmd(t, app, "user", "role", "kim@example.com", "Overlord")
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestUserRegisterCmd_NonInteractiveNeedsFlags(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "user", "register", "--email", "a@b.test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--password")
}

func TestRegisterFormValidators(t *testing.T) {
	assert.NoError(t, validateEmail("kim@example.com"))
	assert.Error(t, validateEmail("kim"))
	assert.Error(t, validatePassword("short"))
	assert.NoError(t, validatePassword("longenough"))
	assert.Error(t, required("first name")("  "))

	var reg domain.Registration
	assert.NotNil(t, registerForm(&reg))
}

// --- serve ---

func TestServeCmd_RejectsBadSchedule(t *testing.T) {
	app := testApp(t)
	app.Config.OverdueSchedule = "every tuesday"

	_, err := executeCmd(t, app, "serve", "--addr", "127.0.0.1:0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid overdue schedule")
}

// --- api ---

// apiApp seeds a local database, serves it over httptest and points the
// api commands at it.
func apiApp(t *testing.T) *App {
	t.Helper()
	app := seededApp(t)
	srv := httptest.NewServer(httpapi.NewServer(app.Services, nil).WithClock(app.Now).Handler())
	t.Cleanup(srv.Close)
	app.Config.APIURL = srv.URL + "/api"
	app.HTTPClient = srv.Client()
	return app
}

func TestAPICmd_SessionFlow(t *testing.T) {
	app := apiApp(t)

	_, err := executeCmd(t, app, "api", "me")
	require.ErrorIs(t, err, client.ErrNotLoggedIn)

	output, err := executeCmd(t, app, "api", "login", "--email", "admin@zeabis.test", "--password", "zeabis-demo")
	require.NoError(t, err)
	assert.Contains(t, output, "Alex Admin")

	output, err = executeCmd(t, app, "api", "me")
	require.NoError(t, err)
	assert.Contains(t, output, "admin@zeabis.test")

	output, err = executeCmd(t, app, "api", "get", "/customers", "search=acme")
	require.NoError(t, err)
	assert.Contains(t, output, "Acme Corporation")
	assert.NotContains(t, output, "Globex")

	output, err = executeCmd(t, app, "api", "logout")
	require.NoError(t, err)
	assert.Contains(t, output, "Logged out.")

	output, err = executeCmd(t, app, "api", "logout")
	require.NoError(t, err)
	assert.Contains(t, output, "Not logged in.")
}

func TestAPICmd_BadLogin(t *testing.T) {
	app := apiApp(t)

	_, err := executeCmd(t, app, "api", "login", "--email", "admin@zeabis.test", "--password", "wrong-password")
	require.Error(t, err)
	assert.True(t, client.IsUnauthorized(err))

	_, err = app.tokens().Load()
	assert.ErrorIs(t, err, client.ErrNotLoggedIn)
}

func TestAPICmd_ExpiredToken(t *testing.T) {
	app := apiApp(t)
	require.NoError(t, app.tokens().Save("not-a-token"))

	_, err := executeCmd(t, app, "api", "me")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api login")
}

func TestAPICmd_BillingAndExport(t *testing.T) {
	app := apiApp(t)
	_, err := executeCmd(t, app, "api", "login", "--email", "finance@zeabis.test", "--password", "zeabis-demo")
	require.NoError(t, err)

	output, err := executeCmd(t, app, "api", "billing", "--year", "2026", "--sort", "project", "--expand")
	require.NoError(t, err)
	assert.Less(t, strings.Index(output, "Customer Portal"), strings.Index(output, "Data Migration"))
	assert.Contains(t, output, "Ben Okafor")

	output, err = executeCmd(t, app, "api", "invoices", "--year", "2026", "--expand")
	require.NoError(t, err)
	assert.Contains(t, output, "INV-2026-0002")
	assert.Contains(t, output, "Chen Wei")

	path := filepath.Join(t.TempDir(), "remote.xlsx")
	_, err = executeCmd(t, app, "api", "export", "--year", "2026", "-o", path)
	require.NoError(t, err)
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Projects")
}

func TestAPICmd_GetRejectsMalformedQuery(t *testing.T) {
	app := apiApp(t)
	require.NoError(t, app.tokens().Save("whatever"))

	_, err := executeCmd(t, app, "api", "get", "customers", "search")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key=value")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
