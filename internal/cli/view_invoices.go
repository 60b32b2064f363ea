package cli

import (
	"context"
	"fmt"
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

// invoiceLoader fetches the invoice tracker.
type invoiceLoader func(ctx context.Context, req contract.InvoiceReportRequest) (*contract.InvoiceReportResponse, error)

type invoicesLoadedMsg struct {
	resp *contract.InvoiceReportResponse
	err  error
}

// invoiceView browses the invoice tracker: invoices, the employees behind
// each one and their months. It is read-only.
type invoiceView struct {
	load invoiceLoader
	req  contract.InvoiceReportRequest

	resp   *contract.InvoiceReportResponse
	sort   *grid.SortState
	expand grid.Expansion
	cursor int
	column int

	loading bool
	err     error

	keys    billingKeys
	help    help.Model
	spinner spinner.Model
}

func newInvoiceView(load invoiceLoader, req contract.InvoiceReportRequest) *invoiceView {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple
	return &invoiceView{
		load:    load,
		req:     req,
		sort:    req.Sort,
		loading: true,
		keys:    newBillingKeys(),
		help:    help.New(),
		spinner: sp,
	}
}

func (v *invoiceView) ShortHelp() []key.Binding {
	return []key.Binding{v.keys.Up, v.keys.Down, v.keys.Toggle, v.keys.Left, v.keys.Sort, v.keys.Reload, v.keys.Quit}
}

func (v *invoiceView) Init() tea.Cmd {
	return tea.Batch(v.spinner.Tick, v.loadCmd())
}

func (v *invoiceView) loadCmd() tea.Cmd {
	load, req := v.load, v.req
	return func() tea.Msg {
		resp, err := load(context.Background(), req)
		return invoicesLoadedMsg{resp: resp, err: err}
	}
}

func (v *invoiceView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.help.Width = msg.Width
		return v, nil

	case spinner.TickMsg:
		if !v.loading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case invoicesLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.resp = msg.resp
			v.cursor = min(v.cursor, max(len(v.paths())-1, 0))
		}
		return v, nil

	case tea.KeyMsg:
		if key.Matches(msg, v.keys.Quit) {
			return v, tea.Quit
		}
		if v.loading || v.err != nil {
			return v, nil
		}
		headers := v.build().Headers
		paths := v.paths()
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
			v.column = (v.column - 1 + len(headers)) % max(len(headers), 1)
		case key.Matches(msg, v.keys.Right):
			v.column = (v.column + 1) % max(len(headers), 1)
		case key.Matches(msg, v.keys.Sort):
			if v.column < len(headers) {
				v.sort = v.grid(nil).invoices().HeaderClick(v.sort, headers[v.column].Key)
			}
		case key.Matches(msg, v.keys.Reload):
			v.loading = true
			v.expand.Reset()
			return v, tea.Batch(v.spinner.Tick, v.loadCmd())
		}
	}
	return v, nil
}

func (v *invoiceView) rows() []billing.InvoiceBilling {
	if v.resp == nil {
		return nil
	}
	return v.resp.Rows
}

func (v *invoiceView) grid(cursor []string) invoiceGrid {
	var window []billing.MonthBucket
	if v.resp != nil {
		window = v.resp.Window
	}
	return invoiceGrid{window: window, expand: &v.expand, cursor: cursor}
}

func (v *invoiceView) opts() grid.ViewOptions {
	return grid.ViewOptions{Loading: v.loading, Sort: v.sort}
}

func (v *invoiceView) paths() [][]string {
	return v.grid(nil).paths(v.rows(), v.opts())
}

func (v *invoiceView) selected(paths [][]string) []string {
	if v.cursor < 0 || v.cursor >= len(paths) {
		return nil
	}
	return paths[v.cursor]
}

func (v *invoiceView) build() grid.View {
	return v.grid(v.selected(v.paths())).build(v.rows(), v.opts())
}

func (v *invoiceView) View() string {
	if v.loading {
		return "\n  " + v.spinner.View() + " " + formatter.Dim("Loading invoices...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error()) + "\n"
	}

	var b strings.Builder
	b.WriteString("\n" + formatter.Header(fmt.Sprintf("Invoices %d", v.resp.Year)) + "\n\n")
	view := v.build()
	if v.column < len(view.Headers) {
		b.WriteString(formatter.Dim("column: ") + formatter.StyleBlue.Render(view.Headers[v.column].Label) + "\n\n")
	}
	b.WriteString(formatter.RenderGrid(view, cursorIndex(view, v.selected(v.paths()))))
	b.WriteString("\n" + v.help.ShortHelpView(v.ShortHelp()) + "\n")
	return b.String()
}
