package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zeabis/zeabis/internal/domain"
	"github.com/zeabis/zeabis/internal/repository"
)

type proposalService struct {
	proposals repository.ProposalRepo
}

func NewProposalService(proposals repository.ProposalRepo) ProposalService {
	return &proposalService{proposals: proposals}
}

func (s *proposalService) Create(ctx context.Context, p *domain.Proposal) error {
	if p.Status == "" {
		p.Status = domain.DocumentDraft
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Date.IsZero() {
		p.Date = domain.NewDate(time.Now())
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.proposals.Create(ctx, p)
}

func (s *proposalService) GetByID(ctx context.Context, id string) (*domain.Proposal, error) {
	return s.proposals.GetByID(ctx, id)
}

func (s *proposalService) List(ctx context.Context, status domain.DocumentStatus) ([]*domain.Proposal, error) {
	if status != "" && !status.Valid() {
		return nil, domain.Invalid("invalid status %q", status)
	}
	return s.proposals.List(ctx, status)
}

func (s *proposalService) Update(ctx context.Context, id string, p domain.ProposalPatch) (*domain.Proposal, error) {
	if p.Status != nil && !p.Status.Valid() {
		return nil, domain.Invalid("invalid status %q", *p.Status)
	}
	if p.Amount != nil && p.Amount.IsNegative() {
		return nil, domain.Invalid("amount must not be negative")
	}
	return s.proposals.Update(ctx, id, p)
}

type purchaseOrderService struct {
	pos repository.PurchaseOrderRepo
}

func NewPurchaseOrderService(pos repository.PurchaseOrderRepo) PurchaseOrderService {
	return &purchaseOrderService{pos: pos}
}

// Create stores a PO. When only hours and a bill rate are given the amount
// is derived from them.
func (s *purchaseOrderService) Create(ctx context.Context, po *domain.PurchaseOrder) error {
	if po.Status == "" {
		po.Status = domain.DocumentDraft
	}
	if po.Amount.IsZero() && po.Hours > 0 {
		po.Amount = po.BillRate.Mul(decimalFromHours(po.Hours)).Round(2)
	}
	if err := po.Validate(); err != nil {
		return err
	}
	if po.ID == "" {
		po.ID = uuid.New().String()
	}
	if po.Date.IsZero() {
		po.Date = domain.NewDate(time.Now())
	}
	now := time.Now().UTC()
	po.CreatedAt = now
	po.UpdatedAt = now
	return s.pos.Create(ctx, po)
}

func (s *purchaseOrderService) GetByID(ctx context.Context, id string) (*domain.PurchaseOrder, error) {
	return s.pos.GetByID(ctx, id)
}

func (s *purchaseOrderService) List(ctx context.Context, projectID string) ([]*domain.PurchaseOrder, error) {
	return s.pos.List(ctx, projectID)
}

func (s *purchaseOrderService) Update(ctx context.Context, id string, p domain.PurchaseOrderPatch) (*domain.PurchaseOrder, error) {
	if p.Status != nil && !p.Status.Valid() {
		return nil, domain.Invalid("invalid status %q", *p.Status)
	}
	if p.Hours != nil && *p.Hours < 0 {
		return nil, domain.Invalid("poHours must not be negative")
	}
	return s.pos.Update(ctx, id, p)
}

func (s *purchaseOrderService) Utilization(ctx context.Context, id string) (*domain.POUtilization, error) {
	return s.pos.Utilization(ctx, id)
}
