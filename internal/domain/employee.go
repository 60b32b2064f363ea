package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID         string          `json:"employeeId"`
	UserID     *string         `json:"userId,omitempty"`
	Name       string          `json:"employeeName"`
	Email      string          `json:"email"`
	Role       string          `json:"role"`
	Department string          `json:"department"`
	HireDate   *Date           `json:"hireDate,omitempty"`
	HourlyRate decimal.Decimal `json:"hourlyRate"`
	Active     bool            `json:"active"`
	UserRole   UserRole        `json:"userRole,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

func (e *Employee) Validate() error {
	if e.Name == "" {
		return Invalid("employeeName is required")
	}
	if e.Email == "" {
		return Invalid("email is required")
	}
	if e.HourlyRate.IsNegative() {
		return Invalid("hourlyRate must not be negative")
	}
	return nil
}

type EmployeePatch struct {
	Name       *string          `json:"employeeName"`
	Email      *string          `json:"email"`
	Role       *string          `json:"role"`
	Department *string          `json:"department"`
	HireDate   *Date            `json:"hireDate"`
	HourlyRate *decimal.Decimal `json:"hourlyRate"`
	Active     *bool            `json:"active"`
}

// EmployeeAssignment is a project as seen from one of its team members.
type EmployeeAssignment struct {
	ProjectID    string        `json:"projectId"`
	ProjectName  string        `json:"projectName"`
	Status       ProjectStatus `json:"status"`
	AssignedDate Date          `json:"assignedDate"`
	ProjectRole  string        `json:"projectRole"`
}
