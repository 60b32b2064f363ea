package repository

import (
	"context"
	"fmt"

	"github.com/zeabis/zeabis/internal/db"
	"github.com/zeabis/zeabis/internal/domain"
)

// SQLiteCustomerRepo implements CustomerRepo.
type SQLiteCustomerRepo struct {
	db db.DBTX
}

func NewSQLiteCustomerRepo(conn db.DBTX) *SQLiteCustomerRepo {
	return &SQLiteCustomerRepo{db: conn}
}

const customerColumns = `id, name, contact_person, contact_email, contact_phone, address, active, created_at, updated_at`

func (r *SQLiteCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO customers (`+customerColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.ContactPerson, c.ContactEmail, c.ContactPhone, c.Address,
		boolToInt(c.Active), formatTime(c.CreatedAt), formatTime(c.UpdatedAt),
	)
	if err != nil {
		return classify(err, "inserting customer", "Customer already exists")
	}
	return nil
}

func (r *SQLiteCustomerRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = ?`, id)
	return scanCustomer(row)
}

// List returns customers ordered by name, optionally narrowed by a
// case-insensitive name fragment.
func (r *SQLiteCustomerRepo) List(ctx context.Context, nameLike string) ([]*domain.Customer, error) {
	var w where
	if nameLike != "" {
		w.add(`LOWER(name) LIKE ? ESCAPE '\'`, likePattern(nameLike))
	}
	rows, err := r.db.QueryContext(ctx, `SELECT `+customerColumns+` FROM customers`+w.String()+` ORDER BY name`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	var out []*domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customers: %w", err)
	}
	return out, nil
}

func (r *SQLiteCustomerRepo) Update(ctx context.Context, id string, p domain.CustomerPatch) (*domain.Customer, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE customers SET
			name = COALESCE(?, name),
			contact_person = COALESCE(?, contact_person),
			contact_email = COALESCE(?, contact_email),
			contact_phone = COALESCE(?, contact_phone),
			address = COALESCE(?, address),
			active = COALESCE(?, active),
			updated_at = ?
		WHERE id = ?`,
		nullableString(p.Name), nullableString(p.ContactPerson), nullableString(p.ContactEmail),
		nullableString(p.ContactPhone), nullableString(p.Address), nullableBool(p.Active),
		nowUTC(), id,
	)
	if err != nil {
		return nil, classify(err, "updating customer", "Customer already exists")
	}
	if err := requireAffected(res, "Customer"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Deactivate soft-deletes a customer; its projects keep referencing it.
func (r *SQLiteCustomerRepo) Deactivate(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE customers SET active = 0, updated_at = ? WHERE id = ?`, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("deactivating customer: %w", err)
	}
	return requireAffected(res, "Customer")
}

func (r *SQLiteCustomerRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers WHERE active = 1`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting customers: %w", err)
	}
	return n, nil
}

func scanCustomer(row scanner) (*domain.Customer, error) {
	var c domain.Customer
	var active int
	var createdAt, updatedAt string
	err := row.Scan(&c.ID, &c.Name, &c.ContactPerson, &c.ContactEmail, &c.ContactPhone, &c.Address,
		&active, &createdAt, &updatedAt)
	if err != nil {
		return nil, notFoundOr(err, "Customer")
	}
	c.Active = intToBool(active)
	c.CreatedAt = parseTime(createdAt)
	c.UpdatedAt = parseTime(updatedAt)
	return &c, nil
}
