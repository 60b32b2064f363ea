package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Project struct {
	ID             string          `json:"projectId"`
	Name           string          `json:"projectName"`
	CustomerID     string          `json:"customerId"`
	CustomerName   string          `json:"customerName,omitempty"`
	ProjectManager string          `json:"projectManager"`
	StartDate      *Date           `json:"startDate,omitempty"`
	EndDate        *Date           `json:"endDate,omitempty"`
	Status         ProjectStatus   `json:"status"`
	Budget         decimal.Decimal `json:"budget"`
	ProjectType    string          `json:"projectType"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// Validate checks required fields and the date range.
func (p *Project) Validate() error {
	if p.Name == "" {
		return Invalid("projectName is required")
	}
	if p.CustomerID == "" {
		return Invalid("customerId is required")
	}
	if p.Status != "" && !p.Status.Valid() {
		return Invalid("invalid project status %q", p.Status)
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(p.StartDate.Time) {
		return Invalid("endDate %s is before startDate %s", p.EndDate, p.StartDate)
	}
	return nil
}

type ProjectPatch struct {
	Name           *string          `json:"projectName"`
	ProjectManager *string          `json:"projectManager"`
	StartDate      *Date            `json:"startDate"`
	EndDate        *Date            `json:"endDate"`
	Status         *ProjectStatus   `json:"status"`
	Budget         *decimal.Decimal `json:"budget"`
	ProjectType    *string          `json:"projectType"`
	Active         *bool            `json:"active"`
}

func (p ProjectPatch) Validate() error {
	if p.Status != nil && !p.Status.Valid() {
		return Invalid("invalid project status %q", *p.Status)
	}
	return nil
}

// ProjectFilter narrows project listings. Empty fields do not filter.
type ProjectFilter struct {
	Status       ProjectStatus
	CustomerID   string
	NameLike     string
	CustomerLike string
}

type TeamMember struct {
	ID                   string `json:"teamMemberId"`
	ProjectID            string `json:"projectId"`
	EmployeeID           string `json:"employeeId"`
	EmployeeName         string `json:"employeeName,omitempty"`
	Role                 string `json:"role"`
	AssignedDate         Date   `json:"assignedDate"`
	AllocationPercentage int    `json:"allocationPercentage"`
}

func (m *TeamMember) Validate() error {
	if m.EmployeeID == "" {
		return Invalid("employeeId is required")
	}
	if m.AllocationPercentage < 0 || m.AllocationPercentage > 100 {
		return Invalid("allocationPercentage must be between 0 and 100")
	}
	return nil
}
