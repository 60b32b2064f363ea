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

	"github.com/zeabis/zeabis/internal/billing"
	"github.com/zeabis/zeabis/internal/contract"
	"github.com/zeabis/zeabis/internal/domain"
	"github.com/zeabis/zeabis/internal/teatest"
)

func invoiceFixture() *contract.InvoiceReportResponse {
	window := billing.Window(2024, []time.Month{time.March, time.April})
	months := make([]billing.MonthBucket, len(window))
	copy(months, window)
	months[0].Hours, months[0].Amount = 12, decimal.NewFromInt(1200)
	return &contract.InvoiceReportResponse{
		Year:   2024,
		Window: window,
		Rows: []billing.InvoiceBilling{
			{
				InvoiceID: "i1", InvoiceNumber: "INV-1", Project: "Alpha", Customer: "Acme",
				Status: domain.InvoiceSent, TotalAmount: decimal.NewFromInt(1200), Months: months,
				Employees: []billing.EmployeeBilling{
					{EmployeeID: "e1", Name: "Alice", BillRate: decimal.NewFromInt(100), Months: months},
				},
			},
			{
				InvoiceID: "i2", InvoiceNumber: "INV-2", Project: "Beta", Customer: "Globex",
				Status: domain.InvoiceDraft, TotalAmount: decimal.NewFromInt(300), Months: window,
			},
		},
	}
}

func loadedInvoiceView(t *testing.T) (*teatest.Driver, *invoiceView) {
	t.Helper()
	load := func(context.Context, contract.InvoiceReportRequest) (*contract.InvoiceReportResponse, error) {
		return invoiceFixture(), nil
	}
	d := teatest.New(t, newInvoiceView(load, contract.InvoiceReportRequest{}), teatest.WithSize(200, 60))
	d.DrainInit()
	return d, d.Model.(*invoiceView)
}

func TestInvoiceView_DrillDown(t *testing.T) {
	d, v := loadedInvoiceView(t)
	out := d.View()
	assert.Contains(t, out, "INVOICES 2024")
	assert.Contains(t, out, "INV-1")
	assert.NotContains(t, out, "Alice")

	d.PressEnter()
	assert.Contains(t, d.View(), "Alice")

	d.PressDown()
	assert.Equal(t, []string{"i1", "e1"}, v.selected(v.paths()))
	d.PressEnter()
	assert.Contains(t, d.View(), "└─ Mar 2024")
	assert.NotContains(t, d.View(), "Apr 2024", "months without hours are left out")

	// Collapsing the invoice forgets the employee beneath it.
	d.PressUp()
	d.PressEnter()
	assert.Zero(t, v.expand.Len())
	d.PressEnter()
	assert.Contains(t, d.View(), "Alice")
	assert.NotContains(t, d.View(), "└─ Mar 2024")

	d.PressDown()
	d.PressDown()
	d.PressEnter()
	assert.Contains(t, d.View(), "No hours booked on this project in this window")
}

func TestInvoiceView_Sort(t *testing.T) {
	d, v := loadedInvoiceView(t)
	d.PressKey('s')
	d.PressKey('s')
	require.NotNil(t, v.sort)
	assert.Equal(t, "invoiceNumber", v.sort.Key)
	out := d.View()
	assert.Less(t, strings.Index(out, "INV-2"), strings.Index(out, "INV-1"))
}

func TestInvoiceView_LoadErrorAndQuit(t *testing.T) {
	load := func(context.Context, contract.InvoiceReportRequest) (*contract.InvoiceReportResponse, error) {
		return nil, errors.New("offline")
	}
	d := teatest.New(t, newInvoiceView(load, contract.InvoiceReportRequest{}))
	assert.Contains(t, d.View(), "Loading invoices...")
	d.DrainInit()
	assert.Contains(t, d.View(), "Error: offline")

	d.PressDown()
	d.PressKey('q')
	assert.True(t, d.Quitting)
}
