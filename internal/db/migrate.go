package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent so the
// full list is replayed on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Money columns are NUMERIC text-compatible values read back through
// decimal.Decimal; dates are YYYY-MM-DD text and timestamps RFC3339 text.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS user_roles (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		role_name TEXT NOT NULL CHECK(role_name IN ('Admin','Delivery Manager','Project Manager','Finance Manager','Account Manager','Team Member')),
		active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		contact_person TEXT NOT NULL DEFAULT '',
		contact_email TEXT NOT NULL DEFAULT '',
		contact_phone TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		user_id TEXT REFERENCES users(id) ON DELETE SET NULL,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL DEFAULT '',
		department TEXT NOT NULL DEFAULT '',
		hire_date TEXT,
		hourly_rate NUMERIC NOT NULL DEFAULT 0,
		active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		customer_id TEXT NOT NULL REFERENCES customers(id),
		project_manager TEXT NOT NULL DEFAULT '',
		start_date TEXT,
		end_date TEXT,
		status TEXT NOT NULL DEFAULT 'Planning' CHECK(status IN ('Planning','Active','On Hold','Completed','Closed','Cancelled')),
		budget NUMERIC NOT NULL DEFAULT 0,
		project_type TEXT NOT NULL DEFAULT '',
		active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS project_team_members (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		employee_id TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		role TEXT NOT NULL DEFAULT '',
		assigned_date TEXT NOT NULL,
		allocation_percentage INTEGER NOT NULL DEFAULT 100,
		UNIQUE(project_id, employee_id)
	)`,
	`CREATE TABLE IF NOT EXISTS timesheets (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id),
		project_id TEXT NOT NULL REFERENCES projects(id),
		work_date TEXT NOT NULL,
		hours_worked REAL NOT NULL CHECK(hours_worked > 0),
		description TEXT NOT NULL DEFAULT '',
		billable INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS proposals (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id),
		proposal_number TEXT NOT NULL UNIQUE,
		proposal_date TEXT NOT NULL,
		amount NUMERIC NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'Draft',
		notes TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS purchase_orders (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id),
		proposal_id TEXT REFERENCES proposals(id) ON DELETE SET NULL,
		po_number TEXT NOT NULL UNIQUE,
		po_date TEXT NOT NULL,
		amount NUMERIC NOT NULL DEFAULT 0,
		hours REAL NOT NULL DEFAULT 0,
		bill_rate NUMERIC NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'Draft',
		start_date TEXT,
		end_date TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS invoices (
		id TEXT PRIMARY KEY,
		po_id TEXT REFERENCES purchase_orders(id) ON DELETE SET NULL,
		invoice_number TEXT NOT NULL UNIQUE,
		invoice_date TEXT NOT NULL,
		due_date TEXT,
		total_amount NUMERIC NOT NULL DEFAULT 0,
		tax_amount NUMERIC NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'Draft' CHECK(status IN ('Draft','Sent','Paid','Overdue','Cancelled')),
		payment_date TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS invoice_details (
		id TEXT PRIMARY KEY,
		invoice_id TEXT NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
		line_item_number INTEGER NOT NULL,
		description TEXT NOT NULL,
		quantity NUMERIC NOT NULL,
		unit_price NUMERIC NOT NULL,
		line_total NUMERIC NOT NULL,
		UNIQUE(invoice_id, line_item_number)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_user_roles_user ON user_roles(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_customer ON projects(customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status)`,
	`CREATE INDEX IF NOT EXISTS idx_team_employee ON project_team_members(employee_id)`,
	`CREATE INDEX IF NOT EXISTS idx_timesheets_employee ON timesheets(employee_id)`,
	`CREATE INDEX IF NOT EXISTS idx_timesheets_project_date ON timesheets(project_id, work_date)`,
	`CREATE INDEX IF NOT EXISTS idx_purchase_orders_project ON purchase_orders(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_po ON invoices(po_id)`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_status ON invoices(status)`,
}
