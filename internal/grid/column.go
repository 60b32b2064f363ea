// Package grid is a generic, sortable, expandable data grid. It derives view
// state (sort order, expanded rows, rendered cells) from caller-owned rows and
// never mutates them.
package grid

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Placeholder is rendered for absent values.
const Placeholder = "-"

// Fielder is implemented by map-shaped rows that resolve a column key themselves.
type Fielder interface {
	Field(key string) any
}

// Column describes one displayed field.
type Column[R any] struct {
	Key      string
	Label    string
	Sortable bool
	// Value extracts the cell value. When nil the row must implement Fielder.
	Value func(row R) any
	// Render formats the cell. When nil the raw value is formatted.
	Render func(value any, row R) string
}

// ValueOf returns the column's raw value for row, or nil when it cannot be resolved.
func (c Column[R]) ValueOf(row R) any {
	if c.Value != nil {
		return c.Value(row)
	}
	if f, ok := any(row).(Fielder); ok {
		return f.Field(c.Key)
	}
	return nil
}

// Cell renders the column for row.
func (c Column[R]) Cell(row R) string {
	v := c.ValueOf(row)
	if c.Render != nil {
		return c.Render(v, row)
	}
	return FormatValue(v)
}

// Record is a loosely typed row keyed by field name.
type Record map[string]any

func (r Record) Field(key string) any { return r[key] }

// RecordID returns the record's "id" field, falling back to the value of the
// first column.
func RecordID(r Record, columns []Column[Record]) string {
	if id, ok := r["id"]; ok && !isNil(id) {
		return FormatValue(id)
	}
	if len(columns) > 0 {
		return FormatValue(columns[0].ValueOf(r))
	}
	return ""
}

// FormatValue renders a raw value for display. Nil and nil pointers become
// Placeholder.
func FormatValue(v any) string {
	v = deref(v)
	if v == nil {
		return Placeholder
	}
	switch x := v.(type) {
	case string:
		return x
	case time.Time:
		return x.Format("2006-01-02")
	case decimal.Decimal:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

// deref follows pointers and returns nil for nil pointers, maps, slices and interfaces.
func deref(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return nil
		}
	}
	return rv.Interface()
}

func isNil(v any) bool { return deref(v) == nil }
