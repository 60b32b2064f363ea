package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/zeabis/zeabis/internal/db"
	"github.com/zeabis/zeabis/internal/domain"
)

// SQLiteUserRepo implements UserRepo. The active role and linked employee are
// joined in on every read.
type SQLiteUserRepo struct {
	db db.DBTX
}

func NewSQLiteUserRepo(conn db.DBTX) *SQLiteUserRepo {
	return &SQLiteUserRepo{db: conn}
}

const userSelect = `SELECT u.id, u.email, u.password_hash, u.first_name, u.last_name, u.active,
		COALESCE((SELECT r.role_name FROM user_roles r WHERE r.user_id = u.id AND r.active = 1
			ORDER BY r.created_at DESC LIMIT 1), ''),
		(SELECT e.id FROM employees e WHERE e.user_id = u.id LIMIT 1),
		u.created_at, u.updated_at
	FROM users u`

func (r *SQLiteUserRepo) Create(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, first_name, last_name, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, strings.ToLower(u.Email), u.PasswordHash, u.FirstName, u.LastName,
		boolToInt(u.Active), formatTime(u.CreatedAt), formatTime(u.UpdatedAt),
	)
	if err != nil {
		return classify(err, "inserting user", domain.MsgEmailExists)
	}
	return nil
}

func (r *SQLiteUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, userSelect+` WHERE u.id = ?`, id))
}

func (r *SQLiteUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, userSelect+` WHERE u.email = ?`, strings.ToLower(email)))
}

// AssignRole deactivates any previous role and records role as the active one.
func (r *SQLiteUserRepo) AssignRole(ctx context.Context, userID string, role domain.UserRole) error {
	if !role.Valid() {
		return domain.Invalid("invalid role %q", role)
	}
	if _, err := r.db.ExecContext(ctx,
		`UPDATE user_roles SET active = 0 WHERE user_id = ? AND active = 1`, userID); err != nil {
		return fmt.Errorf("retiring previous roles: %w", err)
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_roles (id, user_id, role_name, active, created_at) VALUES (?, ?, ?, 1, ?)`,
		uuid.New().String(), userID, string(role), nowUTC(),
	)
	if err != nil {
		return classify(err, "assigning role", "role already assigned")
	}
	return nil
}

func scanUser(row scanner) (*domain.User, error) {
	var u domain.User
	var active int
	var role, createdAt, updatedAt string
	var employeeID sql.NullString

	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &active,
		&role, &employeeID, &createdAt, &updatedAt)
	if err != nil {
		return nil, notFoundOr(err, "User")
	}
	u.Active = intToBool(active)
	u.Role = domain.UserRole(role)
	if employeeID.Valid {
		u.EmployeeID = &employeeID.String
	}
	u.CreatedAt = parseTime(createdAt)
	u.UpdatedAt = parseTime(updatedAt)
	return &u, nil
}
