package repository

import (
	"context"
	"fmt"

	"github.com/zeabis/zeabis/internal/db"
	"github.com/zeabis/zeabis/internal/domain"
)

// SQLiteTeamRepo implements TeamRepo over project_team_members.
type SQLiteTeamRepo struct {
	db db.DBTX
}

func NewSQLiteTeamRepo(conn db.DBTX) *SQLiteTeamRepo {
	return &SQLiteTeamRepo{db: conn}
}

func (r *SQLiteTeamRepo) List(ctx context.Context, projectID string) ([]domain.TeamMember, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT m.id, m.project_id, m.employee_id, e.name, m.role, m.assigned_date, m.allocation_percentage
		FROM project_team_members m
		JOIN employees e ON e.id = m.employee_id
		WHERE m.project_id = ?
		ORDER BY e.name`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing team: %w", err)
	}
	defer rows.Close()

	var out []domain.TeamMember
	for rows.Next() {
		var m domain.TeamMember
		var assigned string
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.EmployeeID, &m.EmployeeName, &m.Role,
			&assigned, &m.AllocationPercentage); err != nil {
			return nil, fmt.Errorf("scanning team member: %w", err)
		}
		if m.AssignedDate, err = parseDate(assigned); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating team: %w", err)
	}
	return out, nil
}

func (r *SQLiteTeamRepo) Add(ctx context.Context, m *domain.TeamMember) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO project_team_members (id, project_id, employee_id, role, assigned_date, allocation_percentage)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.ProjectID, m.EmployeeID, m.Role, m.AssignedDate.String(), m.AllocationPercentage,
	)
	if err != nil {
		return classify(err, "adding team member", "Employee is already on the project team")
	}
	return nil
}

func (r *SQLiteTeamRepo) Remove(ctx context.Context, projectID, employeeID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM project_team_members WHERE project_id = ? AND employee_id = ?`, projectID, employeeID)
	if err != nil {
		return fmt.Errorf("removing team member: %w", err)
	}
	return requireAffected(res, "Team member")
}
