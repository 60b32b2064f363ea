package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zeabis/zeabis/internal/domain"
	"github.com/zeabis/zeabis/internal/repository"
)

type employeeService struct {
	employees  repository.EmployeeRepo
	timesheets repository.TimesheetRepo
}

func NewEmployeeService(employees repository.EmployeeRepo, timesheets repository.TimesheetRepo) EmployeeService {
	return &employeeService{employees: employees, timesheets: timesheets}
}

func (s *employeeService) Create(ctx context.Context, e *domain.Employee) error {
	e.Email = strings.ToLower(strings.TrimSpace(e.Email))
	if err := e.Validate(); err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	e.Active = true
	return s.employees.Create(ctx, e)
}

func (s *employeeService) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	return s.employees.GetByID(ctx, id)
}

func (s *employeeService) List(ctx context.Context) ([]*domain.Employee, error) {
	return s.employees.List(ctx)
}

func (s *employeeService) Update(ctx context.Context, id string, p domain.EmployeePatch) (*domain.Employee, error) {
	if p.HourlyRate != nil && p.HourlyRate.IsNegative() {
		return nil, domain.Invalid("hourlyRate must not be negative")
	}
	if p.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*p.Email))
		p.Email = &email
	}
	return s.employees.Update(ctx, id, p)
}

func (s *employeeService) SetActive(ctx context.Context, id string, active bool) (*domain.Employee, error) {
	return s.employees.SetActive(ctx, id, active)
}

func (s *employeeService) Timesheets(ctx context.Context, id string) ([]*domain.Timesheet, error) {
	if _, err := s.employees.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.timesheets.List(ctx, domain.TimesheetFilter{EmployeeID: id})
}

func (s *employeeService) Projects(ctx context.Context, id string) ([]domain.EmployeeAssignment, error) {
	if _, err := s.employees.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.employees.ListAssignments(ctx, id)
}
