package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/zeabis/zeabis/internal/db"
	"github.com/zeabis/zeabis/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

const projectSelect = `SELECT p.id, p.name, p.customer_id, COALESCE(c.name, ''), p.project_manager,
		p.start_date, p.end_date, p.status, p.budget, p.project_type, p.active, p.created_at, p.updated_at
	FROM projects p
	LEFT JOIN customers c ON c.id = p.customer_id`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (id, name, customer_id, project_manager, start_date, end_date, status, budget, project_type, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.CustomerID,
		p.ProjectManager,
		nullableDate(p.StartDate),
		nullableDate(p.EndDate),
		string(p.Status),
		p.Budget.String(),
		p.ProjectType,
		boolToInt(p.Active),
		formatTime(p.CreatedAt),
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return classify(err, "inserting project", "Project already exists")
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return scanProject(r.db.QueryRowContext(ctx, projectSelect+` WHERE p.id = ?`, id))
}

// List returns projects newest first. Every non-empty filter field narrows the result.
func (r *SQLiteProjectRepo) List(ctx context.Context, f domain.ProjectFilter) ([]*domain.Project, error) {
	var w where
	if f.Status != "" {
		w.add(`p.status = ?`, string(f.Status))
	}
	if f.CustomerID != "" {
		w.add(`p.customer_id = ?`, f.CustomerID)
	}
	if f.NameLike != "" {
		w.add(`LOWER(p.name) LIKE ? ESCAPE '\'`, likePattern(f.NameLike))
	}
	if f.CustomerLike != "" {
		w.add(`LOWER(c.name) LIKE ? ESCAPE '\'`, likePattern(f.CustomerLike))
	}

	rows, err := r.db.QueryContext(ctx, projectSelect+w.String()+` ORDER BY p.created_at DESC, p.name`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, id string, p domain.ProjectPatch) (*domain.Project, error) {
	var status any
	if p.Status != nil {
		status = string(*p.Status)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE projects SET
			name = COALESCE(?, name),
			project_manager = COALESCE(?, project_manager),
			start_date = COALESCE(?, start_date),
			end_date = COALESCE(?, end_date),
			status = COALESCE(?, status),
			budget = COALESCE(?, budget),
			project_type = COALESCE(?, project_type),
			active = COALESCE(?, active),
			updated_at = ?
		WHERE id = ?`,
		nullableString(p.Name), nullableString(p.ProjectManager),
		nullableDate(p.StartDate), nullableDate(p.EndDate), status,
		nullableDecimal(p.Budget), nullableString(p.ProjectType), nullableBool(p.Active),
		nowUTC(), id,
	)
	if err != nil {
		return nil, classify(err, "updating project", "Project already exists")
	}
	if err := requireAffected(res, "Project"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *SQLiteProjectRepo) SetStatus(ctx context.Context, id string, status domain.ProjectStatus) (*domain.Project, error) {
	return r.Update(ctx, id, domain.ProjectPatch{Status: &status})
}

func (r *SQLiteProjectRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects WHERE active = 1`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting projects: %w", err)
	}
	return n, nil
}

// scanProject scans a single project row.
func scanProject(row scanner) (*domain.Project, error) {
	var p domain.Project
	var startDate, endDate sql.NullString
	var status, createdAt, updatedAt string
	var active int

	err := row.Scan(
		&p.ID, &p.Name, &p.CustomerID, &p.CustomerName, &p.ProjectManager,
		&startDate, &endDate, &status, &p.Budget, &p.ProjectType, &active,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, notFoundOr(err, "Project")
	}
	p.StartDate = parseNullableDate(startDate)
	p.EndDate = parseNullableDate(endDate)
	p.Status = domain.ProjectStatus(status)
	p.Active = intToBool(active)
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return &p, nil
}
