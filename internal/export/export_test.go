package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/zeabis/zeabis/internal/billing"
	"github.com/zeabis/zeabis/internal/contract"
	"github.com/zeabis/zeabis/internal/domain"
	"github.com/zeabis/zeabis/internal/grid"
)

func readBack(t *testing.T, sheets ...Sheet) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sheets...))
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestFromView_WritesRenderedCells(t *testing.T) {
	table := grid.Table[grid.Record]{Columns: []grid.Column[grid.Record]{
		{Key: "name", Label: "Name", Sortable: true},
		{Key: "hours", Label: "Hours"},
	}}
	view := table.Build([]grid.Record{
		{"id": "2", "name": "Ben", "hours": 5.5},
		{"id": "1", "name": "Ana"},
	}, grid.ViewOptions{Sort: &grid.SortState{Key: "name"}})

	f := readBack(t, FromView("People", view))
	rows, err := f.GetRows("People")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Name", "Hours"},
		{"Ana", "-"},
		{"Ben", "5.5"},
	}, rows)
}

func TestFromView_EmptyView(t *testing.T) {
	table := grid.Table[grid.Record]{Columns: []grid.Column[grid.Record]{{Key: "name", Label: "Name"}}}
	f := readBack(t, FromView("People", table.Build(nil, grid.ViewOptions{})))
	rows, err := f.GetRows("People")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Name"}, {grid.EmptyMessage}}, rows)
}

func TestWorkbook_RequiresSheets(t *testing.T) {
	_, err := Workbook()
	assert.Error(t, err)
}

func TestBillingSheets(t *testing.T) {
	window := billing.Window(2024, []time.Month{time.January, time.February})
	months := billing.Window(2024, []time.Month{time.January, time.February})
	months[0].Hours, months[0].Amount = 10, decimal.NewFromInt(1000)
	rows := []billing.ProjectBilling{{
		ProjectID: "p1", Project: "Portal", Customer: "Acme", ProjectStatus: domain.ProjectActive,
		POID: "PO-1", POHours: 100, POAmount: decimal.NewFromInt(15000),
		Months:    months,
		Employees: []billing.EmployeeBilling{{EmployeeID: "e1", Name: "Ana", BillRate: decimal.NewFromInt(100), Months: months}},
	}}
	resp := &contract.BillingReportResponse{
		Year: 2024, Window: window, Rows: rows,
		Summary: billing.Summarize(rows), MonthOverview: billing.MonthOverview(rows),
	}

	f := readBack(t, BillingSheets(resp)...)
	assert.Equal(t, []string{"Projects", "Employees", "Summary"}, f.GetSheetList())

	projects, err := f.GetRows("Projects")
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Jan 2024", projects[0][15])
	assert.Equal(t, "Portal", projects[1][0])
	assert.Equal(t, "10", projects[1][12], "burned hours")
	assert.Equal(t, "10", projects[1][15])

	burned, err := f.GetCellValue("Projects", "O2")
	require.NoError(t, err)
	assert.Equal(t, "10", burned, "burned percentage stays numeric")

	employees, err := f.GetRows("Employees")
	require.NoError(t, err)
	require.Len(t, employees, 2)
	assert.Equal(t, []string{"Portal", "Ana", "100", "10", "1000", "10", "0"}, employees[1])
}
