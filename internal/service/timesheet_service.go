package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zeabis/zeabis/internal/domain"
	"github.com/zeabis/zeabis/internal/repository"
)

type timesheetService struct {
	timesheets repository.TimesheetRepo
}

func NewTimesheetService(timesheets repository.TimesheetRepo) TimesheetService {
	return &timesheetService{timesheets: timesheets}
}

// Create stores a timesheet entry. Entries are billable unless the caller
// says otherwise, which the transport layer signals by setting Billable
// explicitly.
func (s *timesheetService) Create(ctx context.Context, t *domain.Timesheet) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.timesheets.Create(ctx, t)
}

func (s *timesheetService) GetByID(ctx context.Context, id string) (*domain.Timesheet, error) {
	return s.timesheets.GetByID(ctx, id)
}

func (s *timesheetService) List(ctx context.Context, f domain.TimesheetFilter) ([]*domain.Timesheet, error) {
	return s.timesheets.List(ctx, f)
}

func (s *timesheetService) Update(ctx context.Context, id string, p domain.TimesheetPatch) (*domain.Timesheet, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return s.timesheets.Update(ctx, id, p)
}

func (s *timesheetService) Delete(ctx context.Context, id string) error {
	return s.timesheets.Delete(ctx, id)
}
