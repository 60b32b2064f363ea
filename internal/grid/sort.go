package grid

import (
	"cmp"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// ParseDirection accepts "asc" and "desc" (any case); anything else is Asc.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), "desc") {
		return Desc
	}
	return Asc
}

// SortState is the single active sort key. A nil *SortState means insertion order.
type SortState struct {
	Key       string
	Direction Direction
}

// NextSort applies a header click on key: the active ascending key flips to
// descending, anything else starts ascending.
func NextSort(cur *SortState, key string) *SortState {
	if cur != nil && cur.Key == key && cur.Direction == Asc {
		return &SortState{Key: key, Direction: Desc}
	}
	return &SortState{Key: key, Direction: Asc}
}

// Arrow is the header indicator for key under state.
func (s *SortState) Arrow(key string) string {
	if s == nil || s.Key != key {
		return ""
	}
	if s.Direction == Desc {
		return "▼"
	}
	return "▲"
}

// Sort returns a stably sorted copy of rows. Rows whose value is nil sort
// last in both directions. A nil state or a key that names no column leaves
// insertion order untouched.
func Sort[R any](rows []R, columns []Column[R], state *SortState) []R {
	out := make([]R, len(rows))
	copy(out, rows)
	if state == nil {
		return out
	}
	col, ok := findColumn(columns, state.Key)
	if !ok {
		return out
	}

	vals := make([]any, len(out))
	for i, r := range out {
		vals[i] = deref(col.ValueOf(r))
	}
	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}

	sort.SliceStable(idx, func(i, j int) bool {
		a, b := vals[idx[i]], vals[idx[j]]
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		c := Compare(a, b)
		if state.Direction == Desc {
			c = -c
		}
		return c < 0
	})

	sorted := make([]R, len(out))
	for i, k := range idx {
		sorted[i] = out[k]
	}
	return sorted
}

func findColumn[R any](columns []Column[R], key string) (Column[R], bool) {
	for _, c := range columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column[R]{}, false
}

type unixNanoer interface {
	UnixNano() int64
}

// Compare orders two non-nil values: numbers numerically, strings lexically,
// false before true, times chronologically, decimals by value. Values of
// unrelated types compare by their formatted text.
func Compare(a, b any) int {
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return cmp.Compare(x, y)
		}
	case bool:
		if y, ok := b.(bool); ok {
			return compareBool(x, y)
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	case decimal.Decimal:
		if y, ok := b.(decimal.Decimal); ok {
			return x.Cmp(y)
		}
	}
	if x, ok := a.(unixNanoer); ok {
		if y, ok := b.(unixNanoer); ok {
			return cmp.Compare(x.UnixNano(), y.UnixNano())
		}
	}
	if x, ok := toFloat(a); ok {
		if y, ok := toFloat(b); ok {
			return cmp.Compare(x, y)
		}
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	if d, ok := v.(decimal.Decimal); ok {
		return d.InexactFloat64(), true
	}
	return 0, false
}
