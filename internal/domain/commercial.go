package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Proposal struct {
	ID           string          `json:"proposalId"`
	ProjectID    string          `json:"projectId"`
	ProjectName  string          `json:"projectName,omitempty"`
	CustomerName string          `json:"customerName,omitempty"`
	Number       string          `json:"proposalNumber"`
	Date         Date            `json:"proposalDate"`
	Amount       decimal.Decimal `json:"amount"`
	Status       DocumentStatus  `json:"status"`
	Notes        string          `json:"notes"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func (p *Proposal) Validate() error {
	if p.ProjectID == "" || p.Number == "" {
		return Invalid("projectId and proposalNumber are required")
	}
	return validateDocument(p.Status, p.Amount)
}

type ProposalPatch struct {
	Number *string          `json:"proposalNumber"`
	Date   *Date            `json:"proposalDate"`
	Amount *decimal.Decimal `json:"amount"`
	Status *DocumentStatus  `json:"status"`
	Notes  *string          `json:"notes"`
}

// PurchaseOrder is the customer's commitment against a proposal. Hours and
// BillRate drive the burn figures of the billing tracker.
type PurchaseOrder struct {
	ID           string          `json:"poId"`
	ProjectID    string          `json:"projectId"`
	ProjectName  string          `json:"projectName,omitempty"`
	CustomerName string          `json:"customerName,omitempty"`
	ProposalID   *string         `json:"proposalId,omitempty"`
	Number       string          `json:"poNumber"`
	Date         Date            `json:"poDate"`
	Amount       decimal.Decimal `json:"amount"`
	Hours        float64         `json:"poHours"`
	BillRate     decimal.Decimal `json:"billRate"`
	Status       DocumentStatus  `json:"status"`
	StartDate    *Date           `json:"startDate,omitempty"`
	EndDate      *Date           `json:"endDate,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func (po *PurchaseOrder) Validate() error {
	if po.ProjectID == "" || po.Number == "" {
		return Invalid("projectId and poNumber are required")
	}
	if po.Hours < 0 {
		return Invalid("poHours must not be negative")
	}
	return validateDocument(po.Status, po.Amount)
}

type PurchaseOrderPatch struct {
	Number    *string          `json:"poNumber"`
	Date      *Date            `json:"poDate"`
	Amount    *decimal.Decimal `json:"amount"`
	Hours     *float64         `json:"poHours"`
	BillRate  *decimal.Decimal `json:"billRate"`
	Status    *DocumentStatus  `json:"status"`
	StartDate *Date            `json:"startDate"`
	EndDate   *Date            `json:"endDate"`
}

// POUtilization compares a PO amount with the cost of hours booked against its project.
type POUtilization struct {
	POID            string          `json:"poId"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	UtilizedAmount  decimal.Decimal `json:"utilizedAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
}

func validateDocument(status DocumentStatus, amount decimal.Decimal) error {
	if status != "" && !status.Valid() {
		return Invalid("invalid status %q", status)
	}
	if amount.IsNegative() {
		return Invalid("amount must not be negative")
	}
	return nil
}
