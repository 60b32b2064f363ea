package cli

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zeabis/zeabis/internal/billing"
	"github.com/zeabis/zeabis/internal/contract"
	"github.com/zeabis/zeabis/internal/domain"
	"github.com/zeabis/zeabis/internal/teatest"
)

func trackerFixture() *contract.BillingReportResponse {
	window := billing.Window(2024, []time.Month{time.January, time.February})
	months := func(jan, feb float64) []billing.MonthBucket {
		out := make([]billing.MonthBucket, len(window))
		copy(out, window)
		out[0].Hours, out[1].Hours = jan, feb
		return out
	}
	rate := decimal.NewFromInt(100)
	rows := []billing.ProjectBilling{
		{
			ProjectID: "p1", Project: "Alpha", Customer: "Acme", ProjectStatus: domain.ProjectActive,
			POID: "PO-1", POHours: 100, BillRate: rate, POAmount: decimal.NewFromInt(10000),
			Months: months(10, 20),
			Employees: []billing.EmployeeBilling{
				{EmployeeID: "e1", Name: "Alice", BillRate: rate, Months: months(10, 20)},
			},
		},
		{
			ProjectID: "p2", Project: "Beta", Customer: "Globex", ProjectStatus: domain.ProjectActive,
			POID: "PO-2", POHours: 50, BillRate: rate, POAmount: decimal.NewFromInt(5000),
			Months: months(40, 5),
		},
	}
	return &contract.BillingReportResponse{Year: 2024, Window: window, Rows: rows, Summary: billing.Summarize(rows)}
}

func stubLoader(resp *contract.BillingReportResponse, err error) billingLoader {
	return func(context.Context, contract.BillingReportRequest) (*contract.BillingReportResponse, error) {
		return resp, err
	}
}

func loadedView(t *testing.T, resp *contract.BillingReportResponse) (*teatest.Driver, *billingView) {
	t.Helper()
	view := newBillingView(stubLoader(resp, nil), contract.BillingReportRequest{}, false)
	d := teatest.New(t, view, teatest.WithSize(200, 60))
	d.DrainInit()
	return d, d.Model.(*billingView)
}

func TestBillingView_LoadingThenRows(t *testing.T) {
	view := newBillingView(stubLoader(trackerFixture(), nil), contract.BillingReportRequest{}, false)
	d := teatest.New(t, view)
	assert.Contains(t, d.View(), "Loading billing tracker...")

	d.DrainInit()
	out := d.View()
	assert.Contains(t, out, "BILLING TRACKER 2024")
	assert.Contains(t, out, "Alpha")
	assert.Contains(t, out, "Beta")
	assert.Contains(t, out, "SUMMARY")
	assert.Contains(t, out, "›▸", "first row carries the cursor")
}

func TestBillingView_LoadError(t *testing.T) {
	view := newBillingView(stubLoader(nil, errors.New("boom")), contract.BillingReportRequest{}, false)
	d := teatest.New(t, view)
	d.DrainInit()
	assert.Contains(t, d.View(), "Error: boom")
}

func TestBillingView_ToggleExpansion(t *testing.T) {
	d, v := loadedView(t, trackerFixture())
	assert.NotContains(t, d.View(), "Alice")

	d.PressEnter()
	assert.Contains(t, d.View(), "Alice")
	assert.True(t, v.expand.IsExpanded("p1"))

	// Alice sits between the two projects now.
	d.PressDown()
	d.PressDown()
	d.PressEnter()
	assert.Contains(t, d.View(), "No hours booked in this window")

	d.PressUp()
	d.PressUp()
	d.PressKey(' ')
	assert.NotContains(t, d.View(), "Alice")
	assert.True(t, v.expand.IsExpanded("p2"), "collapsing one row leaves the other open")
}

func TestBillingView_CursorWalksEmployees(t *testing.T) {
	d, v := loadedView(t, trackerFixture())
	d.PressEnter()
	d.PressDown()
	assert.Equal(t, []string{"p1", "e1"}, v.selected(v.paths()))
	for _, line := range strings.Split(d.View(), "\n") {
		if strings.Contains(line, "›") {
			assert.Contains(t, line, "Alice", "the nested row carries the cursor")
		}
	}

	d.PressEnter()
	assert.True(t, v.expand.IsExpanded("p1", "e1"))
	out := d.View()
	assert.Contains(t, out, "Jan 2024")
	assert.Contains(t, out, "└─ Feb 2024")

	d.PressDown()
	assert.Equal(t, []string{"p2"}, v.selected(v.paths()))
}

func TestBillingView_CollapseForgetsNestedExpansion(t *testing.T) {
	d, v := loadedView(t, trackerFixture())
	d.PressEnter()
	d.PressDown()
	d.PressEnter()
	require.True(t, v.expand.IsExpanded("p1", "e1"))

	d.PressUp()
	d.PressEnter()
	assert.False(t, v.expand.IsExpanded("p1"))
	assert.False(t, v.expand.IsExpanded("p1", "e1"))
	assert.Zero(t, v.expand.Len())

	d.PressEnter()
	assert.Contains(t, d.View(), "Alice")
	assert.NotContains(t, d.View(), "└─ Feb 2024", "reopening the project leaves the employee closed")
}

func TestBillingView_EditEmployeeHours(t *testing.T) {
	resp := trackerFixture()
	for i := range resp.Rows[0].Months {
		resp.Rows[0].Months[i].Amount = decimal.NewFromFloat(resp.Rows[0].Months[i].Hours * 100)
		resp.Rows[0].Employees[0].Months[i].Amount = resp.Rows[0].Months[i].Amount
	}
	d, v := loadedView(t, resp)
	d.PressEnter()
	d.PressDown()

	d.PressKey('e')
	require.NotNil(t, v.edit)
	assert.Equal(t, "e1", v.editEmployee)
	assert.Contains(t, d.View(), "Alpha · Alice")

	d.Type("40")
	d.PressEnter()
	d.Send(tea.KeyMsg{Type: tea.KeyCtrlS})

	require.Nil(t, v.edit)
	row := v.rows[0]
	assert.Equal(t, 40.0, row.Employees[0].Months[0].Hours)
	assert.Equal(t, 40.0, row.Months[0].Hours)
	assert.Equal(t, "6000", row.Totals().BurnedAmount.String())
	assert.Equal(t, 10.0, resp.Rows[0].Employees[0].Months[0].Hours)
}

func TestBillingView_CursorStaysInBounds(t *testing.T) {
	d, v := loadedView(t, trackerFixture())
	d.PressUp()
	assert.Equal(t, 0, v.cursor)
	d.PressDown()
	d.PressDown()
	d.PressKey('j')
	assert.Equal(t, 1, v.cursor)
}

func TestBillingView_SortCycle(t *testing.T) {
	d, v := loadedView(t, trackerFixture())

	d.PressKey('s')
	require.NotNil(t, v.sort)
	assert.Equal(t, "project", v.sort.Key)
	assert.Contains(t, d.View(), "Project ▲")

	d.PressKey('s')
	out := d.View()
	assert.Contains(t, out, "Project ▼")
	assert.Less(t, strings.Index(out, "Beta"), strings.Index(out, "Alpha"))

	// Moving right to the customer column sorts by it on the next press.
	d.PressKey('l')
	d.PressKey('s')
	assert.Equal(t, "customer", v.sort.Key)
	assert.Equal(t, "Customer", v.build().Headers[v.column].Label)
}

func TestBillingView_EditCancelKeepsRows(t *testing.T) {
	resp := trackerFixture()
	d, v := loadedView(t, resp)

	d.PressKey('e')
	require.NotNil(t, v.edit)
	assert.Contains(t, d.View(), "Editing")

	d.Type("50")
	d.PressEnter()
	out := d.View()
	assert.Contains(t, out, "(unsaved)")
	assert.Equal(t, 70.0, v.edit.Totals().TotalBurnedHours)

	d.PressEsc()
	assert.Nil(t, v.edit)
	assert.Contains(t, d.View(), "Edit discarded")
	assert.Equal(t, 10.0, v.rows[0].Months[0].Hours)
}

func TestBillingView_EditSave(t *testing.T) {
	resp := trackerFixture()
	d, v := loadedView(t, resp)

	d.PressKey('e')
	d.PressTab()
	d.Type("2x5")
	d.PressBackspace()
	d.Type("5")
	d.PressEnter()
	d.Send(tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Nil(t, v.edit)
	assert.Contains(t, d.View(), "Hours updated")
	assert.Equal(t, 25.0, v.rows[0].Months[1].Hours)
	assert.Equal(t, 20.0, resp.Rows[0].Months[1].Hours, "loaded response is not mutated")
	assert.Equal(t, 35.0, v.rows[0].Totals().TotalBurnedHours)
}

func TestBillingView_EditRejectsNegativeAndEmpty(t *testing.T) {
	d, v := loadedView(t, trackerFixture())

	d.PressKey('e')
	d.PressEnter()
	assert.False(t, v.edit.Dirty(), "enter without input applies nothing")

	d.Type("-")
	assert.Empty(t, v.input, "only digits and dots are accepted")
}

func TestBillingView_Quit(t *testing.T) {
	d, _ := loadedView(t, trackerFixture())
	d.PressKey('q')
	assert.True(t, d.Quitting)
}

func TestBillingView_Reload(t *testing.T) {
	calls := 0
	resp := trackerFixture()
	load := func(context.Context, contract.BillingReportRequest) (*contract.BillingReportResponse, error) {
		calls++
		return resp, nil
	}
	d := teatest.New(t, newBillingView(load, contract.BillingReportRequest{}, false))
	d.DrainInit()
	d.PressEnter()

	d.PressKey('r')
	assert.Equal(t, 2, calls)
	v := d.Model.(*billingView)
	assert.False(t, v.loading)
	assert.False(t, v.expand.IsExpanded("p1"), "reload collapses rows")
}
