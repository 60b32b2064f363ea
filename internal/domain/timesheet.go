package domain

import "time"

type Timesheet struct {
	ID           string    `json:"timesheetId"`
	EmployeeID   string    `json:"employeeId"`
	EmployeeName string    `json:"employeeName,omitempty"`
	ProjectID    string    `json:"projectId"`
	ProjectName  string    `json:"projectName,omitempty"`
	WorkDate     Date      `json:"workDate"`
	HoursWorked  float64   `json:"hoursWorked"`
	Description  string    `json:"description"`
	Billable     bool      `json:"billable"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (t *Timesheet) Validate() error {
	if t.EmployeeID == "" || t.ProjectID == "" {
		return Invalid("employeeId and projectId are required")
	}
	if t.WorkDate.IsZero() {
		return Invalid("workDate is required")
	}
	return validateHours(t.HoursWorked)
}

// validateHours accepts any positive amount. Entries may book a whole
// period of work on one date, so there is no per-day ceiling.
func validateHours(h float64) error {
	if h <= 0 {
		return Invalid("hoursWorked must be greater than 0")
	}
	return nil
}

type TimesheetPatch struct {
	WorkDate    *Date    `json:"workDate"`
	HoursWorked *float64 `json:"hoursWorked"`
	Description *string  `json:"description"`
	Billable    *bool    `json:"billable"`
}

func (p TimesheetPatch) Validate() error {
	if p.HoursWorked != nil {
		return validateHours(*p.HoursWorked)
	}
	return nil
}

type TimesheetFilter struct {
	EmployeeID string
	ProjectID  string
}
