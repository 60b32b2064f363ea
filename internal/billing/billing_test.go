package billing

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeabis/zeabis/internal/domain"
)

func buckets(hours ...float64) []MonthBucket {
	w := Window(2024, nil)
	out := w[:len(hours)]
	for i, h := range hours {
		out[i].Hours = h
	}
	return out
}

func TestAggregates(t *testing.T) {
	months := buckets(10, 20, 30)
	assert.Equal(t, 60.0, TotalHours(months))
	assert.Equal(t, 60.0, BurnedPercentage(TotalHours(months), 100))
	assert.Equal(t, 40.0, BalanceHours(100, 60))

	months[0].Amount = decimal.NewFromInt(1500)
	months[2].Amount = decimal.NewFromInt(500)
	assert.True(t, decimal.NewFromInt(2000).Equal(TotalAmount(months)), "absent amount counts as zero")
}

func TestBurnedPercentage_ZeroPOHours(t *testing.T) {
	assert.Equal(t, 0.0, BurnedPercentage(120, 0))
}

func TestProjectTotals_EndToEnd(t *testing.T) {
	row := ProjectBilling{Project: "Acme", POHours: 2400, Months: buckets(1000, 920)}
	totals := row.Totals()
	assert.Equal(t, 1920.0, totals.TotalBurnedHours)
	assert.Equal(t, 480.0, totals.BalanceHours)
	assert.InDelta(t, 80.0, totals.BurnedPercentage, 1e-9)
	assert.Equal(t, "80.0%", FormatPercent(totals.BurnedPercentage))
}

func TestWindow(t *testing.T) {
	full := Window(2024, nil)
	require.Len(t, full, 12)
	assert.Equal(t, "Jan 2024", full[0].Month)
	assert.Equal(t, "2024-12", full[11].Key)

	q := Window(2024, []time.Month{time.June, time.March})
	require.Len(t, q, 2)
	assert.Equal(t, "Mar 2024", q[0].Month, "calendar order regardless of selection order")
}

func TestInvoiceStatusFor(t *testing.T) {
	po := decimal.NewFromInt(1000)
	assert.Equal(t, InvoicePending, InvoiceStatusFor(po, decimal.Zero))
	assert.Equal(t, InvoicePartial, InvoiceStatusFor(po, decimal.NewFromInt(400)))
	assert.Equal(t, InvoiceCompleted, InvoiceStatusFor(po, decimal.NewFromInt(1000)))
}

func TestEditSession_IsolationCommitCancel(t *testing.T) {
	rows := []ProjectBilling{
		{ProjectID: "p1", POHours: 100, Months: buckets(10, 20, 30)},
		{ProjectID: "p2", POHours: 50, Months: buckets(5)},
	}

	s, err := Begin(rows, "p1")
	require.NoError(t, err)

	totals, err := s.SetMonthHours("2024-02", 50)
	require.NoError(t, err)
	assert.Equal(t, 90.0, totals.TotalBurnedHours)
	assert.Equal(t, 90.0, totals.BurnedPercentage)
	assert.True(t, s.Dirty())

	_, err = s.SetMonthHours("Mar 2024", 0)
	require.NoError(t, err)
	assert.Equal(t, 60.0, s.Totals().TotalBurnedHours)

	assert.Equal(t, 20.0, rows[0].Months[1].Hours, "canonical rows untouched before commit")
	assert.Equal(t, 30.0, rows[0].Months[2].Hours)

	restored := s.Cancel()
	assert.Equal(t, rows[0], restored)
	assert.False(t, s.Dirty())
	assert.Equal(t, 60.0, s.Totals().TotalBurnedHours)

	_, err = s.SetMonthHours("2024-01", 15)
	require.NoError(t, err)
	committed, err := s.Commit(rows)
	require.NoError(t, err)
	assert.Equal(t, 15.0, committed[0].Months[0].Hours)
	assert.Equal(t, 10.0, rows[0].Months[0].Hours, "commit returns a new slice")
	assert.Equal(t, rows[1], committed[1])
}

func TestEditSession_RecomputesAmountsAndBreakdown(t *testing.T) {
	rate := decimal.NewFromInt(100)
	priced := func(hours ...float64) []MonthBucket {
		out := buckets(hours...)
		for i := range out {
			out[i].Amount = rate.Mul(decimal.NewFromFloat(out[i].Hours))
		}
		return out
	}
	rows := []ProjectBilling{{
		ProjectID: "p1", POHours: 200, BillRate: decimal.NewFromInt(120), Months: priced(10, 30, 0),
		Employees: []EmployeeBilling{
			{EmployeeID: "e1", BillRate: rate, Months: priced(10, 20, 0)},
			{EmployeeID: "e2", BillRate: rate, Months: priced(0, 10, 0)},
		},
	}}

	s, err := Begin(rows, "p1")
	require.NoError(t, err)

	totals, err := s.SetMonthHours("2024-01", 50)
	require.NoError(t, err)
	assert.Equal(t, 80.0, totals.TotalBurnedHours)
	assert.Equal(t, "8000", totals.BurnedAmount.String())
	staged := s.Staged()
	assert.Equal(t, "5000", staged.Months[0].Amount.String())
	assert.Equal(t, 50.0, staged.Employees[0].Months[0].Hours)
	assert.Equal(t, "5000", staged.Employees[0].Months[0].Amount.String())

	// Feb is split 20/10, so doubling it doubles both employees.
	_, err = s.SetMonthHours("Feb 2024", 60)
	require.NoError(t, err)
	staged = s.Staged()
	assert.Equal(t, 40.0, staged.Employees[0].Months[1].Hours)
	assert.Equal(t, 20.0, staged.Employees[1].Months[1].Hours)
	assert.Equal(t, "6000", staged.Months[1].Amount.String())

	// Nobody booked March: priced at the PO rate, employees untouched.
	_, err = s.SetMonthHours("2024-03", 5)
	require.NoError(t, err)
	staged = s.Staged()
	assert.Equal(t, "600", staged.Months[2].Amount.String())
	assert.Zero(t, staged.Employees[0].Months[2].Hours)

	totals, err = s.SetEmployeeMonthHours("e2", "2024-02", 5)
	require.NoError(t, err)
	staged = s.Staged()
	assert.Equal(t, 45.0, staged.Months[1].Hours)
	assert.Equal(t, "4500", staged.Months[1].Amount.String())
	assert.Equal(t, 100.0, totals.TotalBurnedHours)
	for i := range staged.Months[:2] {
		sum := 0.0
		for _, e := range staged.Employees {
			sum += e.Months[i].Hours
		}
		assert.Equal(t, staged.Months[i].Hours, sum, "month %d breakdown sums to the project", i)
	}

	_, err = s.SetEmployeeMonthHours("ghost", "2024-02", 5)
	assert.True(t, domain.IsNotFound(err))

	assert.Equal(t, "1000", rows[0].Months[0].Amount.String(), "canonical row keeps its amounts")
	assert.Equal(t, 10.0, rows[0].Employees[0].Months[0].Hours)
}

func TestEditSession_Errors(t *testing.T) {
	rows := []ProjectBilling{{ProjectID: "p1", Months: buckets(1)}}
	_, err := Begin(rows, "missing")
	assert.True(t, domain.IsNotFound(err))

	s, err := Begin(rows, "p1")
	require.NoError(t, err)
	_, err = s.SetMonthHours("2030-01", 1)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	_, err = s.SetMonthHours("2024-01", -1)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = s.Commit(nil)
	assert.True(t, domain.IsNotFound(err))
}

func TestSummarizeAndOverview(t *testing.T) {
	rows := []ProjectBilling{
		{ProjectID: "a", POHours: 100, ProjectStatus: domain.ProjectActive, Months: buckets(40, 40),
			Employees: []EmployeeBilling{{EmployeeID: "e1"}, {EmployeeID: "e2"}}},
		{ProjectID: "b", POHours: 200, ProjectStatus: domain.ProjectOnHold, Months: buckets(20, 0),
			Employees: []EmployeeBilling{{EmployeeID: "e1"}}},
	}
	s := Summarize(rows)
	assert.Equal(t, 300.0, s.TotalPOHours)
	assert.Equal(t, 100.0, s.TotalBurnedHours)
	assert.Equal(t, 45.0, s.AvgBurnRate)
	assert.Equal(t, 3, s.TotalEmployees)
	assert.Equal(t, 2, s.TotalPOs)
	assert.Equal(t, 1, s.ActiveProjects)

	assert.Equal(t, Summary{}, Summarize(nil))

	overview := MonthOverview(rows)
	require.Len(t, overview, 2)
	assert.Equal(t, 60.0, overview[0].Hours)
	assert.Equal(t, 40.0, overview[1].Hours)
	assert.Nil(t, MonthOverview(nil))
}

func TestAttachProjects(t *testing.T) {
	window := Window(2024, []time.Month{time.January, time.February})
	rate := decimal.NewFromInt(100)
	facts := []Fact{
		{ProjectID: "p1", EmployeeID: "e1", EmployeeName: "Ana", Rate: rate, Month: "2024-01", Hours: 10},
		{ProjectID: "p1", EmployeeID: "e1", EmployeeName: "Ana", Rate: rate, Month: "2024-02", Hours: 5},
		{ProjectID: "p1", EmployeeID: "e2", EmployeeName: "Ben", Rate: decimal.NewFromInt(80), Month: "2024-01", Hours: 2.5},
		{ProjectID: "p1", EmployeeID: "e3", EmployeeName: "Cy", Rate: rate, Month: "2024-07", Hours: 8},
	}
	rows := []ProjectBilling{
		{ProjectID: "p1", POHours: 100, POAmount: decimal.NewFromInt(10000), TotalInvoiced: decimal.NewFromInt(2000)},
		{ProjectID: "p2"},
	}

	out := AttachProjects(rows, facts, window)
	require.Len(t, out, 2)
	p1 := out[0]
	assert.Equal(t, InvoicePartial, p1.InvoiceStatus)
	require.Len(t, p1.Months, 2)
	assert.Equal(t, 12.5, p1.Months[0].Hours)
	assert.True(t, decimal.NewFromInt(1200).Equal(p1.Months[0].Amount), p1.Months[0].Amount.String())
	require.Len(t, p1.Employees, 2, "employees without hours in the window are dropped")
	assert.Equal(t, "Ana", p1.Employees[0].Name)
	assert.Equal(t, 15.0, p1.Employees[0].Totals().TotalHours)
	assert.Equal(t, 17.5, p1.Totals().TotalBurnedHours)

	p2 := out[1]
	assert.Len(t, p2.Months, 2)
	assert.Empty(t, p2.Employees)
	assert.Equal(t, InvoicePending, p2.InvoiceStatus)
	assert.Nil(t, rows[0].Months, "input rows are not modified")
}

func TestProjectBilling_JSONIncludesTotals(t *testing.T) {
	row := ProjectBilling{ProjectID: "p1", POHours: 2400, POAmount: decimal.NewFromInt(360000),
		TotalInvoiced: decimal.NewFromInt(60000), Months: buckets(1920)}
	b, err := json.Marshal(row)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, 1920.0, got["totalBurnedHours"])
	assert.Equal(t, 480.0, got["balanceHours"])
	assert.Equal(t, 80.0, got["burnedPercentage"])
	assert.Equal(t, "p1", got["projectId"])

	var back ProjectBilling
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, 2400.0, back.POHours)
	assert.Len(t, back.Months, 1)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$150,000", FormatAmount(decimal.RequireFromString("149999.6")))
	assert.Equal(t, "1,920", FormatHours(1920))
}
