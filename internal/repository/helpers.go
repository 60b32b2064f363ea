package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zeabis/zeabis/internal/domain"
)

// scanner is satisfied by *sql.Row and *sql.Rows so one scan helper serves
// both single-row lookups and listings.
type scanner interface {
	Scan(dest ...any) error
}

// parseDate parses a stored YYYY-MM-DD column. Empty text yields the zero date.
func parseDate(s string) (domain.Date, error) {
	if s == "" {
		return domain.Date{}, nil
	}
	d, err := domain.ParseDate(s)
	if err != nil {
		return domain.Date{}, fmt.Errorf("parsing stored date: %w", err)
	}
	return d, nil
}

// parseNullableDate returns nil for NULL, empty or unparsable columns.
func parseNullableDate(s sql.NullString) *domain.Date {
	if !s.Valid || s.String == "" {
		return nil
	}
	d, err := domain.ParseDate(s.String)
	if err != nil {
		return nil
	}
	return &d
}

// nullableDate converts a *domain.Date to a value suitable for SQLite storage.
// A nil pointer becomes SQL NULL, which also makes it a no-op inside COALESCE.
func nullableDate(d *domain.Date) any {
	if d == nil || d.IsZero() {
		return nil
	}
	return d.String()
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullableFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func nullableDecimal(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func nullableBool(b *bool) any {
	if b == nil {
		return nil
	}
	return boolToInt(*b)
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// likePattern wraps a free-text filter for a case-insensitive LIKE match.
func likePattern(s string) string {
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(s))
	return "%" + s + "%"
}

// classify tags constraint violations so callers can tell a duplicate or a
// dangling reference from a storage failure.
func classify(err error, op, conflictMsg string) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return &domain.Error{Kind: domain.KindConflict, Msg: conflictMsg, Err: err}
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return &domain.Error{Kind: domain.KindValidation, Msg: op + ": referenced record does not exist", Err: err}
	case strings.Contains(msg, "CHECK constraint failed"):
		return &domain.Error{Kind: domain.KindValidation, Msg: op + ": value out of range", Err: err}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// requireAffected turns a zero-row UPDATE or DELETE into a NotFound error.
func requireAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return domain.NotFound(entity)
	}
	return nil
}

// notFoundOr maps sql.ErrNoRows to a tagged NotFound error.
func notFoundOr(err error, entity string) error {
	if err == sql.ErrNoRows {
		return domain.NotFound(entity)
	}
	return fmt.Errorf("scanning %s: %w", strings.ToLower(entity), err)
}

// where accumulates AND-ed predicates and their arguments.
type where struct {
	clauses []string
	args    []any
}

func (w *where) add(clause string, args ...any) {
	w.clauses = append(w.clauses, clause)
	w.args = append(w.args, args...)
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}
