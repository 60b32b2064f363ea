package grid

// ViewState says what a built view shows instead of, or as, its rows.
type ViewState int

const (
	StateRows ViewState = iota
	StateLoading
	StateEmpty
)

func (s ViewState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateEmpty:
		return "empty"
	default:
		return "rows"
	}
}

const (
	LoadingMessage = "Loading..."
	EmptyMessage   = "No data available"
)

// Table binds columns and row callbacks. It renders but never edits: Edit and
// Delete only hand the row to the caller's callback.
type Table[R any] struct {
	Columns []Column[R]
	// RowID identifies a row for expansion. Defaults to Record ids or the
	// first column's value.
	RowID          func(R) string
	Expandable     bool
	RenderExpanded func(R) string
	OnEdit         func(R)
	OnDelete       func(R)
}

// ViewOptions is the per-render state owned by the caller.
type ViewOptions struct {
	Loading   bool
	Sort      *SortState
	Expansion *Expansion
	// Parent prefixes every row id when the table is nested inside another
	// table's expanded row.
	Parent []string
}

type HeaderCell struct {
	Key      string
	Label    string
	Sortable bool
	Arrow    string
}

type ViewRow struct {
	ID         string
	Path       []string
	Cells      []string
	Expandable bool
	Expanded   bool
	Detail     string
}

// View is the renderer-neutral result of Build.
type View struct {
	State      ViewState
	Message    string
	Headers    []HeaderCell
	Rows       []ViewRow
	HasActions bool
}

// Build sorts rows and renders their cells. A loading view wins over any row
// content; an empty row set yields the empty placeholder rather than a table
// without a body.
func (t *Table[R]) Build(rows []R, opts ViewOptions) View {
	v := View{
		Headers:    t.headers(opts.Sort),
		HasActions: t.OnEdit != nil || t.OnDelete != nil,
	}
	switch {
	case opts.Loading:
		v.State, v.Message = StateLoading, LoadingMessage
		return v
	case len(rows) == 0:
		v.State, v.Message = StateEmpty, EmptyMessage
		return v
	}

	sorted := Sort(rows, t.Columns, opts.Sort)
	v.Rows = make([]ViewRow, 0, len(sorted))
	for _, r := range sorted {
		id := t.idOf(r)
		path := append(append([]string(nil), opts.Parent...), id)
		vr := ViewRow{ID: id, Path: path, Expandable: t.Expandable, Cells: make([]string, len(t.Columns))}
		for i, c := range t.Columns {
			vr.Cells[i] = c.Cell(r)
		}
		if t.Expandable && opts.Expansion != nil && opts.Expansion.IsExpanded(path...) {
			vr.Expanded = true
			if t.RenderExpanded != nil {
				vr.Detail = t.RenderExpanded(r)
			}
		}
		v.Rows = append(v.Rows, vr)
	}
	return v
}

// Edit passes row to OnEdit and reports whether a callback was set.
func (t *Table[R]) Edit(row R) bool {
	if t.OnEdit == nil {
		return false
	}
	t.OnEdit(row)
	return true
}

// Delete passes row to OnDelete and reports whether a callback was set.
func (t *Table[R]) Delete(row R) bool {
	if t.OnDelete == nil {
		return false
	}
	t.OnDelete(row)
	return true
}

func (t *Table[R]) headers(s *SortState) []HeaderCell {
	out := make([]HeaderCell, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = HeaderCell{Key: c.Key, Label: c.Label, Sortable: c.Sortable}
		if c.Sortable {
			out[i].Arrow = s.Arrow(c.Key)
		}
	}
	return out
}

func (t *Table[R]) idOf(r R) string {
	if t.RowID != nil {
		return t.RowID(r)
	}
	if rec, ok := any(r).(Record); ok {
		if id, ok := rec["id"]; ok && !isNil(id) {
			return FormatValue(id)
		}
	}
	if len(t.Columns) > 0 {
		return FormatValue(t.Columns[0].ValueOf(r))
	}
	return ""
}

// HeaderClick returns the sort state after clicking the header of key.
// Clicks on unknown or non-sortable columns leave cur unchanged.
func (t *Table[R]) HeaderClick(cur *SortState, key string) *SortState {
	c, ok := findColumn(t.Columns, key)
	if !ok || !c.Sortable {
		return cur
	}
	return NextSort(cur, key)
}
