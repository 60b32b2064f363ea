package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zeabis/zeabis/internal/domain"
	"github.com/zeabis/zeabis/internal/repository"
)

type projectService struct {
	projects repository.ProjectRepo
	team     repository.TeamRepo
}

func NewProjectService(projects repository.ProjectRepo, team repository.TeamRepo) ProjectService {
	return &projectService{projects: projects, team: team}
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) error {
	if p.Status == "" {
		p.Status = domain.ProjectPlanning
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.Active = true
	return s.projects.Create(ctx, p)
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context, f domain.ProjectFilter) ([]*domain.Project, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, domain.Invalid("invalid project status %q", f.Status)
	}
	return s.projects.List(ctx, f)
}

func (s *projectService) Update(ctx context.Context, id string, p domain.ProjectPatch) (*domain.Project, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.StartDate != nil || p.EndDate != nil {
		cur, err := s.projects.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		// Validate the date range the update would leave behind.
		merged := *cur
		if p.StartDate != nil {
			merged.StartDate = p.StartDate
		}
		if p.EndDate != nil {
			merged.EndDate = p.EndDate
		}
		if err := merged.Validate(); err != nil {
			return nil, err
		}
	}
	return s.projects.Update(ctx, id, p)
}

func (s *projectService) SetStatus(ctx context.Context, id string, status domain.ProjectStatus) (*domain.Project, error) {
	if !status.Valid() {
		return nil, domain.Invalid("invalid project status %q", status)
	}
	return s.projects.SetStatus(ctx, id, status)
}

func (s *projectService) Team(ctx context.Context, projectID string) ([]domain.TeamMember, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.team.List(ctx, projectID)
}

// AddTeamMember defaults the allocation to 100% and the assignment date to today.
func (s *projectService) AddTeamMember(ctx context.Context, m *domain.TeamMember) error {
	if m.AllocationPercentage == 0 {
		m.AllocationPercentage = 100
	}
	if err := m.Validate(); err != nil {
		return err
	}
	if _, err := s.projects.GetByID(ctx, m.ProjectID); err != nil {
		return err
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.AssignedDate.IsZero() {
		m.AssignedDate = domain.NewDate(time.Now())
	}
	return s.team.Add(ctx, m)
}

func (s *projectService) RemoveTeamMember(ctx context.Context, projectID, employeeID string) error {
	return s.team.Remove(ctx, projectID, employeeID)
}
