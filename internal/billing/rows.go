package billing

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"github.com/zeabis/zeabis/internal/domain"
)

// Invoice states of a billing row, derived from what was invoiced against the PO.
const (
	InvoicePending   = "Pending"
	InvoicePartial   = "Partial"
	InvoiceCompleted = "Completed"
)

// InvoiceStatusFor derives the billing row's invoice status.
func InvoiceStatusFor(poAmount, totalInvoiced decimal.Decimal) string {
	switch {
	case !totalInvoiced.IsPositive():
		return InvoicePending
	case totalInvoiced.GreaterThanOrEqual(poAmount):
		return InvoiceCompleted
	default:
		return InvoicePartial
	}
}

type EmployeeBilling struct {
	EmployeeID string          `json:"employeeId"`
	Name       string          `json:"name"`
	BillRate   decimal.Decimal `json:"billRate"`
	Months     []MonthBucket   `json:"months"`
}

type EmployeeTotals struct {
	TotalHours  float64         `json:"totalHours"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

func (e EmployeeBilling) Totals() EmployeeTotals {
	return EmployeeTotals{TotalHours: TotalHours(e.Months), TotalAmount: TotalAmount(e.Months)}
}

func (e EmployeeBilling) MarshalJSON() ([]byte, error) {
	type plain EmployeeBilling
	return json.Marshal(struct {
		plain
		EmployeeTotals
	}{plain(e), e.Totals()})
}

func (e EmployeeBilling) clone() EmployeeBilling {
	e.Months = cloneMonths(e.Months)
	return e
}

// ProjectBilling is one billing-tracker row: a project against its PO.
type ProjectBilling struct {
	ProjectID      string                `json:"projectId"`
	Project        string                `json:"project"`
	ProjectManager string                `json:"projectManager"`
	Customer       string                `json:"customer"`
	InvoiceStatus  string                `json:"invoiceStatus"`
	ProjectStatus  domain.ProjectStatus  `json:"projectStatus"`
	ProposalID     string                `json:"proposalId"`
	ProposalStatus domain.DocumentStatus `json:"proposalStatus,omitempty"`
	POID           string                `json:"poId"`
	POStatus       domain.DocumentStatus `json:"poStatus"`
	POHours        float64               `json:"poHours"`
	BillRate       decimal.Decimal       `json:"billRate"`
	POAmount       decimal.Decimal       `json:"poAmount"`
	TotalInvoiced  decimal.Decimal       `json:"totalInvoiced"`
	Months         []MonthBucket         `json:"months"`
	Employees      []EmployeeBilling     `json:"employees"`
}

type ProjectTotals struct {
	TotalBurnedHours float64         `json:"totalBurnedHours"`
	BalanceHours     float64         `json:"balanceHours"`
	BurnedPercentage float64         `json:"burnedPercentage"`
	BurnedAmount     decimal.Decimal `json:"burnedAmount"`
	BalanceToInvoice decimal.Decimal `json:"balanceToInvoice"`
}

func (p ProjectBilling) Totals() ProjectTotals {
	burned := TotalHours(p.Months)
	return ProjectTotals{
		TotalBurnedHours: burned,
		BalanceHours:     BalanceHours(p.POHours, burned),
		BurnedPercentage: BurnedPercentage(burned, p.POHours),
		BurnedAmount:     TotalAmount(p.Months),
		BalanceToInvoice: p.POAmount.Sub(p.TotalInvoiced),
	}
}

// MarshalJSON adds the derived totals next to the stored fields.
func (p ProjectBilling) MarshalJSON() ([]byte, error) {
	type plain ProjectBilling
	return json.Marshal(struct {
		plain
		ProjectTotals
	}{plain(p), p.Totals()})
}

// Clone deep-copies the row so edits to the copy never reach the original.
func (p ProjectBilling) Clone() ProjectBilling {
	p.Months = cloneMonths(p.Months)
	if p.Employees != nil {
		emps := make([]EmployeeBilling, len(p.Employees))
		for i, e := range p.Employees {
			emps[i] = e.clone()
		}
		p.Employees = emps
	}
	return p
}

// InvoiceBilling is one invoice-tracker row with the effort behind it.
type InvoiceBilling struct {
	InvoiceID      string               `json:"invoiceId"`
	InvoiceNumber  string               `json:"invoiceNumber"`
	ProjectID      string               `json:"projectId"`
	Project        string               `json:"project"`
	ProjectManager string               `json:"projectManager"`
	Customer       string               `json:"customer"`
	POID           string               `json:"poId"`
	InvoiceDate    domain.Date          `json:"invoiceDate"`
	DueDate        *domain.Date         `json:"dueDate"`
	Status         domain.InvoiceStatus `json:"status"`
	TotalAmount    decimal.Decimal      `json:"totalAmount"`
	Months         []MonthBucket        `json:"months"`
	Employees      []EmployeeBilling    `json:"employees"`
}

type InvoiceTotals struct {
	TotalHours   float64         `json:"totalHours"`
	EffortAmount decimal.Decimal `json:"effortAmount"`
}

func (i InvoiceBilling) Totals() InvoiceTotals {
	return InvoiceTotals{TotalHours: TotalHours(i.Months), EffortAmount: TotalAmount(i.Months)}
}

func (i InvoiceBilling) MarshalJSON() ([]byte, error) {
	type plain InvoiceBilling
	return json.Marshal(struct {
		plain
		InvoiceTotals
	}{plain(i), i.Totals()})
}
