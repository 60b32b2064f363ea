package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zeabis/zeabis/internal/domain"
	"github.com/zeabis/zeabis/internal/repository"
)

type invoiceService struct {
	invoices repository.InvoiceRepo
	observer UseCaseObserver
}

func NewInvoiceService(invoices repository.InvoiceRepo, observers ...UseCaseObserver) InvoiceService {
	return &invoiceService{invoices: invoices, observer: useCaseObserverOrNoop(observers)}
}

func (s *invoiceService) Create(ctx context.Context, i *domain.Invoice) error {
	if i.Status == "" {
		i.Status = domain.InvoiceDraft
	}
	if err := i.Validate(); err != nil {
		return err
	}
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	if i.InvoiceDate.IsZero() {
		i.InvoiceDate = domain.NewDate(time.Now())
	}
	if i.DueDate != nil && i.DueDate.Before(i.InvoiceDate.Time) {
		return domain.Invalid("dueDate %s is before invoiceDate %s", i.DueDate, i.InvoiceDate)
	}
	now := time.Now().UTC()
	i.CreatedAt = now
	i.UpdatedAt = now
	return s.invoices.Create(ctx, i)
}

func (s *invoiceService) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	return s.invoices.GetByID(ctx, id)
}

func (s *invoiceService) List(ctx context.Context, f domain.InvoiceFilter) ([]*domain.Invoice, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, domain.Invalid("invalid invoice status %q", f.Status)
	}
	return s.invoices.List(ctx, f)
}

func (s *invoiceService) Update(ctx context.Context, id string, p domain.InvoicePatch) (*domain.Invoice, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return s.invoices.Update(ctx, id, p)
}

func (s *invoiceService) SetStatus(ctx context.Context, id string, status domain.InvoiceStatus) (inv *domain.Invoice, err error) {
	done := track(ctx, s.observer, "set-invoice-status", map[string]any{"invoice_id": id, "status": string(status)})
	defer func() { done(err) }()

	if !status.Valid() {
		return nil, domain.Invalid("invalid invoice status %q", status)
	}
	return s.invoices.SetStatus(ctx, id, status)
}

func (s *invoiceService) Details(ctx context.Context, invoiceID string) ([]domain.InvoiceDetail, error) {
	if _, err := s.invoices.GetByID(ctx, invoiceID); err != nil {
		return nil, err
	}
	return s.invoices.ListDetails(ctx, invoiceID)
}

// AddDetail appends a line item. The line number is assigned by the
// repository and the line total defaults to quantity times unit price.
func (s *invoiceService) AddDetail(ctx context.Context, d *domain.InvoiceDetail) error {
	if err := d.Validate(); err != nil {
		return err
	}
	d.Normalize()
	if _, err := s.invoices.GetByID(ctx, d.InvoiceID); err != nil {
		return err
	}
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return s.invoices.AddDetail(ctx, d)
}

func (s *invoiceService) SweepOverdue(ctx context.Context, asOf time.Time) (n int, err error) {
	day := domain.NewDate(asOf)
	fields := map[string]any{"as_of": day.String()}
	done := track(ctx, s.observer, "sweep-overdue", fields)
	defer func() {
		fields["marked"] = n
		done(err)
	}()
	return s.invoices.MarkOverdue(ctx, day)
}
