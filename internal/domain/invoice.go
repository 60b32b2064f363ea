package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Invoice struct {
	ID          string          `json:"invoiceId"`
	POID        *string         `json:"poId,omitempty"`
	PONumber    string          `json:"poNumber,omitempty"`
	ProjectID   string          `json:"projectId,omitempty"`
	ProjectName string          `json:"projectName,omitempty"`
	Number      string          `json:"invoiceNumber"`
	InvoiceDate Date            `json:"invoiceDate"`
	DueDate     *Date           `json:"dueDate,omitempty"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	TaxAmount   decimal.Decimal `json:"taxAmount"`
	Status      InvoiceStatus   `json:"status"`
	PaymentDate *Date           `json:"paymentDate,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (i *Invoice) Validate() error {
	if i.Number == "" {
		return Invalid("invoiceNumber is required")
	}
	if i.Status != "" && !i.Status.Valid() {
		return Invalid("invalid invoice status %q", i.Status)
	}
	if i.TotalAmount.IsNegative() || i.TaxAmount.IsNegative() {
		return Invalid("amounts must not be negative")
	}
	return nil
}

// IsOverdue reports whether a sent invoice is past its due date on day asOf.
func (i *Invoice) IsOverdue(asOf Date) bool {
	return i.Status == InvoiceSent && i.DueDate != nil && i.DueDate.Before(asOf.Time)
}

type InvoicePatch struct {
	Number      *string          `json:"invoiceNumber"`
	InvoiceDate *Date            `json:"invoiceDate"`
	DueDate     *Date            `json:"dueDate"`
	TotalAmount *decimal.Decimal `json:"totalAmount"`
	TaxAmount   *decimal.Decimal `json:"taxAmount"`
	Status      *InvoiceStatus   `json:"status"`
	PaymentDate *Date            `json:"paymentDate"`
}

func (p InvoicePatch) Validate() error {
	if p.Status != nil && !p.Status.Valid() {
		return Invalid("invalid invoice status %q", *p.Status)
	}
	return nil
}

type InvoiceFilter struct {
	Status InvoiceStatus
	POID   string
}

type InvoiceDetail struct {
	ID             string          `json:"detailId"`
	InvoiceID      string          `json:"invoiceId"`
	LineItemNumber int             `json:"lineItemNumber"`
	Description    string          `json:"description"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	LineTotal      decimal.Decimal `json:"lineTotal"`
}

// Normalize fills LineTotal from quantity and unit price when it was omitted.
func (d *InvoiceDetail) Normalize() {
	if d.LineTotal.IsZero() {
		d.LineTotal = d.Quantity.Mul(d.UnitPrice)
	}
}

func (d *InvoiceDetail) Validate() error {
	if d.Description == "" {
		return Invalid("description is required")
	}
	if !d.Quantity.IsPositive() {
		return Invalid("quantity must be positive")
	}
	if d.UnitPrice.IsNegative() {
		return Invalid("unitPrice must not be negative")
	}
	return nil
}
