package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zeabis/zeabis/internal/billing"
	"github.com/zeabis/zeabis/internal/cli/formatter"
	"github.com/zeabis/zeabis/internal/contract"
	"github.com/zeabis/zeabis/internal/grid"
)

// billingLoadedMsg carries the result of a tracker load.
type billingLoadedMsg struct {
	resp *contract.BillingReportResponse
	err  error
}

type billingKeys struct {
	Up, Down, Toggle, Left, Right, Sort, Edit, Reload, Quit key.Binding
	// edit mode
	PrevMonth, NextMonth, Apply, Save, Cancel key.Binding
}

func newBillingKeys() billingKeys {
	return billingKeys{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "expand")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "column")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "column")),
		Sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit hours")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		PrevMonth: key.NewBinding(key.WithKeys("left", "shift+tab"), key.WithHelp("←", "month")),
		NextMonth: key.NewBinding(key.WithKeys("right", "tab"), key.WithHelp("→", "month")),
		Apply:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// billingView is the interactive billing tracker. Sorting and expansion are
// view state over the loaded rows; the cursor walks every visible row,
// employees of expanded projects included. Hour edits are staged in a
// billing.EditSession and only replace the row on save.
type billingView struct {
	load    billingLoader
	req     contract.BillingReportRequest
	monthly bool

	resp   *contract.BillingReportResponse
	rows   []billing.ProjectBilling
	sort   *grid.SortState
	expand grid.Expansion
	cursor int
	column int

	loading bool
	err     error
	notice  string

	edit      *billing.EditSession
	editMonth int
	// editEmployee is set when the edit targets one employee's hours.
	editEmployee string
	input        string

	keys    billingKeys
	help    help.Model
	spinner spinner.Model
	width   int
}

func newBillingView(load billingLoader, req contract.BillingReportRequest, monthly bool) *billingView {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple
	return &billingView{
		load:    load,
		req:     req,
		monthly: monthly,
		sort:    req.Sort,
		loading: true,
		keys:    newBillingKeys(),
		help:    help.New(),
		spinner: sp,
	}
}

func (v *billingView) ShortHelp() []key.Binding {
	if v.edit != nil {
		return []key.Binding{v.keys.PrevMonth, v.keys.NextMonth, v.keys.Apply, v.keys.Save, v.keys.Cancel}
	}
	return []key.Binding{v.keys.Up, v.keys.Down, v.keys.Toggle, v.keys.Left, v.keys.Sort, v.keys.Edit, v.keys.Reload, v.keys.Quit}
}

func (v *billingView) Init() tea.Cmd {
	return tea.Batch(v.spinner.Tick, v.loadCmd())
}

func (v *billingView) loadCmd() tea.Cmd {
	load, req := v.load, v.req
	return func() tea.Msg {
		resp, err := load(context.Background(), req)
		return billingLoadedMsg{resp: resp, err: err}
	}
}

func (v *billingView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.help.Width = msg.Width
		return v, nil

	case spinner.TickMsg:
		if !v.loading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case billingLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.resp = msg.resp
			v.rows = msg.resp.Rows
			v.cursor = min(v.cursor, max(len(v.paths())-1, 0))
		}
		return v, nil

	case tea.KeyMsg:
		if v.edit != nil {
			return v.updateEdit(msg)
		}
		return v.updateBrowse(msg)
	}
	return v, nil
}

func (v *billingView) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, v.keys.Quit) {
		return v, tea.Quit
	}
	if v.loading {
		return v, nil
	}
	view := v.build()
	paths := v.paths()
	v.notice = ""

	switch {
	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(paths)-1 {
			v.cursor++
		}
	case key.Matches(msg, v.keys.Toggle):
		if path := v.selected(paths); path != nil {
			v.expand.Toggle(path...)
		}
	case key.Matches(msg, v.keys.Left):
		v.column = (v.column - 1 + len(view.Headers)) % max(len(view.Headers), 1)
	case key.Matches(msg, v.keys.Right):
		v.column = (v.column + 1) % max(len(view.Headers), 1)
	case key.Matches(msg, v.keys.Sort):
		if v.column < len(view.Headers) {
			v.sort = v.grid(nil).projects().HeaderClick(v.sort, view.Headers[v.column].Key)
		}
	case key.Matches(msg, v.keys.Edit):
		path := v.selected(paths)
		if path == nil {
			break
		}
		t := v.grid(nil).projects()
		t.OnEdit = v.beginEdit
		for _, p := range v.rows {
			if p.ProjectID == path[0] {
				t.Edit(p)
				break
			}
		}
		if v.edit != nil && len(path) > 1 {
			v.editEmployee = path[1]
		}
	case key.Matches(msg, v.keys.Reload):
		v.loading = true
		v.expand.Reset()
		return v, tea.Batch(v.spinner.Tick, v.loadCmd())
	}
	return v, nil
}

func (v *billingView) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	months := v.edit.Staged().Months
	switch {
	case key.Matches(msg, v.keys.Cancel):
		v.edit.Cancel()
		v.edit, v.editEmployee, v.input = nil, "", ""
		v.notice = "Edit discarded"
	case key.Matches(msg, v.keys.Save):
		rows, err := v.edit.Commit(v.rows)
		if err != nil {
			v.notice = err.Error()
			break
		}
		v.rows = rows
		v.edit, v.editEmployee, v.input = nil, "", ""
		v.notice = "Hours updated"
	case key.Matches(msg, v.keys.PrevMonth):
		v.editMonth = (v.editMonth - 1 + len(months)) % max(len(months), 1)
		v.input = ""
	case key.Matches(msg, v.keys.NextMonth):
		v.editMonth = (v.editMonth + 1) % max(len(months), 1)
		v.input = ""
	case key.Matches(msg, v.keys.Apply):
		if v.input == "" || v.editMonth >= len(months) {
			break
		}
		hours, err := strconv.ParseFloat(v.input, 64)
		if err != nil {
			v.notice = fmt.Sprintf("invalid hours %q", v.input)
			break
		}
		month := months[v.editMonth].Key
		if v.editEmployee != "" {
			_, err = v.edit.SetEmployeeMonthHours(v.editEmployee, month, hours)
		} else {
			_, err = v.edit.SetMonthHours(month, hours)
		}
		if err != nil {
			v.notice = err.Error()
			break
		}
		v.input, v.notice = "", ""
	case msg.Type == tea.KeyBackspace:
		if v.input != "" {
			v.input = v.input[:len(v.input)-1]
		}
	case msg.Type == tea.KeyRunes:
		for _, r := range msg.Runes {
			if (r >= '0' && r <= '9') || r == '.' {
				v.input += string(r)
			}
		}
	}
	return v, nil
}

func (v *billingView) beginEdit(p billing.ProjectBilling) {
	session, err := billing.Begin(v.rows, p.ProjectID)
	if err != nil {
		v.notice = err.Error()
		return
	}
	v.edit, v.editMonth, v.editEmployee, v.input = session, 0, "", ""
}

func (v *billingView) grid(cursor []string) billingGrid {
	var window []billing.MonthBucket
	if v.resp != nil {
		window = v.resp.Window
	}
	return billingGrid{window: window, monthly: v.monthly, expand: &v.expand, cursor: cursor}
}

// visibleRows substitutes the staged row while an edit is open.
func (v *billingView) visibleRows() []billing.ProjectBilling {
	if v.edit == nil {
		return v.rows
	}
	staged := v.edit.Staged()
	out := make([]billing.ProjectBilling, len(v.rows))
	for i, r := range v.rows {
		if r.ProjectID == staged.ProjectID {
			r = staged
		}
		out[i] = r
	}
	return out
}

func (v *billingView) opts() grid.ViewOptions {
	return grid.ViewOptions{Loading: v.loading, Sort: v.sort}
}

func (v *billingView) paths() [][]string {
	return v.grid(nil).paths(v.visibleRows(), v.opts())
}

// selected is the path of the row under the cursor, or nil.
func (v *billingView) selected(paths [][]string) []string {
	if v.cursor < 0 || v.cursor >= len(paths) {
		return nil
	}
	return paths[v.cursor]
}

func (v *billingView) build() grid.View {
	return v.grid(v.selected(v.paths())).build(v.visibleRows(), v.opts())
}

func (v *billingView) View() string {
	if v.loading {
		return "\n  " + v.spinner.View() + " " + formatter.Dim("Loading billing tracker...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error()) + "\n"
	}

	var b strings.Builder
	b.WriteString("\n" + formatter.Header(fmt.Sprintf("Billing tracker %d", v.resp.Year)) + "\n\n")

	view := v.build()
	if len(view.Headers) > 0 && v.column < len(view.Headers) {
		h := view.Headers[v.column]
		b.WriteString(formatter.Dim("column: ") + formatter.StyleBlue.Render(h.Label))
		if v.sort != nil {
			b.WriteString(formatter.Dim(fmt.Sprintf("   sorted by %s %s", v.sort.Key, v.sort.Direction)))
		}
		b.WriteString("\n\n")
	}
	b.WriteString(formatter.RenderGrid(view, cursorIndex(view, v.selected(v.paths()))))

	if v.edit != nil {
		b.WriteString("\n" + v.editBar())
	}
	if v.notice != "" {
		b.WriteString("\n  " + formatter.StyleYellow.Render(v.notice) + "\n")
	}
	b.WriteString("\n" + summaryBox(billing.Summarize(v.visibleRows())) + "\n")
	b.WriteString("\n" + v.help.ShortHelpView(v.ShortHelp()) + "\n")
	return b.String()
}

func (v *billingView) editBar() string {
	staged := v.edit.Staged()
	t := v.edit.Totals()
	title := staged.Project
	months := staged.Months
	for _, e := range staged.Employees {
		if e.EmployeeID == v.editEmployee {
			title += " · " + e.Name
			months = e.Months
		}
	}
	month := "-"
	current := 0.0
	if v.editMonth < len(months) {
		month = months[v.editMonth].Month
		current = months[v.editMonth].Hours
	}
	dirty := ""
	if v.edit.Dirty() {
		dirty = formatter.StyleYellow.Render(" (unsaved)")
	}
	return fmt.Sprintf("  %s %s%s\n  %s %s  %s %s█\n  %s %s  %s\n",
		formatter.Dim("Editing"), formatter.Bold(title), dirty,
		formatter.Dim(month+":"), billing.FormatHours(current),
		formatter.Dim("new hours"), v.input,
		formatter.Dim("burned"), billing.FormatHours(t.TotalBurnedHours), formatter.RenderBurn(t.BurnedPercentage, 20),
	)
}
