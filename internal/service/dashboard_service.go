package service

import (
	"context"
	"fmt"
	"time"

	"github.com/zeabis/zeabis/internal/domain"
	"github.com/zeabis/zeabis/internal/repository"
)

type dashboardService struct {
	projects  repository.ProjectRepo
	customers repository.CustomerRepo
	employees repository.EmployeeRepo
	invoices  repository.InvoiceRepo
}

func NewDashboardService(
	projects repository.ProjectRepo,
	customers repository.CustomerRepo,
	employees repository.EmployeeRepo,
	invoices repository.InvoiceRepo,
) DashboardService {
	return &dashboardService{projects: projects, customers: customers, employees: employees, invoices: invoices}
}

// Stats counts active projects, customers and employees, and sums revenue
// from invoices paid in now's calendar year.
func (s *dashboardService) Stats(ctx context.Context, now time.Time) (*domain.DashboardStats, error) {
	var st domain.DashboardStats
	var err error
	if st.TotalProjects, err = s.projects.CountActive(ctx); err != nil {
		return nil, fmt.Errorf("counting projects: %w", err)
	}
	if st.TotalCustomers, err = s.customers.CountActive(ctx); err != nil {
		return nil, fmt.Errorf("counting customers: %w", err)
	}
	if st.TotalEmployees, err = s.employees.CountActive(ctx); err != nil {
		return nil, fmt.Errorf("counting employees: %w", err)
	}
	if st.YearlyRevenue, err = s.invoices.RevenueForYear(ctx, now.Year()); err != nil {
		return nil, err
	}
	return &st, nil
}

// Revenue returns paid revenue per month over the last twelve months,
// including the current one, newest first.
func (s *dashboardService) Revenue(ctx context.Context, now time.Time) ([]domain.RevenuePoint, error) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -11, 0)
	points, err := s.invoices.RevenueByMonth(ctx, domain.NewDate(first))
	if err != nil {
		return nil, err
	}
	if points == nil {
		points = []domain.RevenuePoint{}
	}
	return points, nil
}
