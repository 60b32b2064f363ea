package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zeabis/zeabis/internal/domain"
	"github.com/zeabis/zeabis/internal/repository"
)

type customerService struct {
	customers repository.CustomerRepo
	projects  repository.ProjectRepo
	observer  UseCaseObserver
}

func NewCustomerService(customers repository.CustomerRepo, projects repository.ProjectRepo, observers ...UseCaseObserver) CustomerService {
	return &customerService{customers: customers, projects: projects, observer: useCaseObserverOrNoop(observers)}
}

func (s *customerService) Create(ctx context.Context, c *domain.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	c.Active = true
	return s.customers.Create(ctx, c)
}

func (s *customerService) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	return s.customers.GetByID(ctx, id)
}

func (s *customerService) List(ctx context.Context, nameLike string) ([]*domain.Customer, error) {
	return s.customers.List(ctx, nameLike)
}

func (s *customerService) Update(ctx context.Context, id string, p domain.CustomerPatch) (*domain.Customer, error) {
	if p.Name != nil && *p.Name == "" {
		return nil, domain.Invalid("customerName must not be empty")
	}
	return s.customers.Update(ctx, id, p)
}

// Delete is a soft delete: the customer stays for history but is inactive.
func (s *customerService) Delete(ctx context.Context, id string) (err error) {
	done := track(ctx, s.observer, "delete-customer", map[string]any{"customer_id": id})
	defer func() { done(err) }()
	return s.customers.Deactivate(ctx, id)
}

func (s *customerService) Projects(ctx context.Context, id string) ([]*domain.Project, error) {
	if _, err := s.customers.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.projects.List(ctx, domain.ProjectFilter{CustomerID: id})
}
