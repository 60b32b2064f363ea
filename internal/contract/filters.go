package contract

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/zeabis/zeabis/internal/domain"
)

// FilterValues is the one filter shape shared by every report and listing.
// Consumers apply it server-side; an empty field does not filter.
type FilterValues struct {
	Year           int                   `json:"year,omitempty" yaml:"year,omitempty"`
	Months         []string              `json:"months,omitempty" yaml:"months,omitempty"`
	Project        string                `json:"project,omitempty" yaml:"project,omitempty"`
	Customer       string                `json:"customer,omitempty" yaml:"customer,omitempty"`
	Employee       string                `json:"employee,omitempty" yaml:"employee,omitempty"`
	Proposal       string                `json:"proposal,omitempty" yaml:"proposal,omitempty"`
	PO             string                `json:"po,omitempty" yaml:"po,omitempty"`
	Invoice        string                `json:"invoice,omitempty" yaml:"invoice,omitempty"`
	ProjectStatus  domain.ProjectStatus  `json:"projectStatus,omitempty" yaml:"projectStatus,omitempty"`
	ProposalStatus domain.DocumentStatus `json:"proposalStatus,omitempty" yaml:"proposalStatus,omitempty"`
	POStatus       domain.DocumentStatus `json:"poStatus,omitempty" yaml:"poStatus,omitempty"`
	InvoiceStatus  domain.InvoiceStatus  `json:"invoiceStatus,omitempty" yaml:"invoiceStatus,omitempty"`
}

// FilterKeys lists the keys accepted by With and the query codec.
var FilterKeys = []string{
	"year", "months", "month", "project", "customer", "employee", "proposal", "po", "invoice",
	"projectStatus", "proposalStatus", "poStatus", "invoiceStatus",
}

// With returns the complete filter object after setting one control, the way
// a filter bar reports every change. "month" is the single-select variant
// and replaces Months with one entry; an empty value clears the field.
func (f FilterValues) With(key, value string) (FilterValues, error) {
	next := f
	next.Months = slices.Clone(f.Months)
	value = strings.TrimSpace(value)

	switch key {
	case "year":
		if value == "" {
			next.Year = 0
			break
		}
		y, err := parseYear(value)
		if err != nil {
			return f, err
		}
		next.Year = y
	case "months":
		months, err := splitMonths(value)
		if err != nil {
			return f, err
		}
		next.Months = months
	case "month":
		if value == "" {
			next.Months = nil
			break
		}
		m, err := ParseMonth(value)
		if err != nil {
			return f, err
		}
		next.Months = []string{m.String()}
	case "project":
		next.Project = value
	case "customer":
		next.Customer = value
	case "employee":
		next.Employee = value
	case "proposal":
		next.Proposal = value
	case "po":
		next.PO = value
	case "invoice":
		next.Invoice = value
	case "projectStatus":
		s := domain.ProjectStatus(value)
		if s != "" && !s.Valid() {
			return f, domain.Invalid("invalid project status %q", value)
		}
		next.ProjectStatus = s
	case "proposalStatus":
		s := domain.DocumentStatus(value)
		if s != "" && !s.Valid() {
			return f, domain.Invalid("invalid proposal status %q", value)
		}
		next.ProposalStatus = s
	case "poStatus":
		s := domain.DocumentStatus(value)
		if s != "" && !s.Valid() {
			return f, domain.Invalid("invalid PO status %q", value)
		}
		next.POStatus = s
	case "invoiceStatus":
		s := domain.InvoiceStatus(value)
		if s != "" && !s.Valid() {
			return f, domain.Invalid("invalid invoice status %q", value)
		}
		next.InvoiceStatus = s
	default:
		return f, domain.Invalid("unknown filter %q", key)
	}
	return next, nil
}

// ParseFilterValues reads filters from query parameters. Repeated "months"
// parameters and comma-separated lists are both accepted.
func ParseFilterValues(q url.Values) (FilterValues, error) {
	var f FilterValues
	var err error
	for _, key := range FilterKeys {
		vals, ok := q[key]
		if !ok {
			continue
		}
		if key == "months" {
			vals = []string{strings.Join(vals, ",")}
		}
		if f, err = f.With(key, vals[len(vals)-1]); err != nil {
			return FilterValues{}, err
		}
	}
	return f, nil
}

// Encode is the inverse of ParseFilterValues. Empty fields are omitted.
func (f FilterValues) Encode() url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	if f.Year != 0 {
		q.Set("year", strconv.Itoa(f.Year))
	}
	if len(f.Months) > 0 {
		q.Set("months", strings.Join(f.Months, ","))
	}
	set("project", f.Project)
	set("customer", f.Customer)
	set("employee", f.Employee)
	set("proposal", f.Proposal)
	set("po", f.PO)
	set("invoice", f.Invoice)
	set("projectStatus", string(f.ProjectStatus))
	set("proposalStatus", string(f.ProposalStatus))
	set("poStatus", string(f.POStatus))
	set("invoiceStatus", string(f.InvoiceStatus))
	return q
}

// YearOr returns the selected year or fallback when none is selected.
func (f FilterValues) YearOr(fallback int) int {
	if f.Year != 0 {
		return f.Year
	}
	return fallback
}

// MonthList resolves Months to calendar months.
func (f FilterValues) MonthList() ([]time.Month, error) {
	out := make([]time.Month, 0, len(f.Months))
	for _, s := range f.Months {
		m, err := ParseMonth(s)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// IsZero reports whether no filter is set.
func (f FilterValues) IsZero() bool {
	return len(f.Encode()) == 0
}

// ParseMonth accepts full or abbreviated English month names in any case,
// month numbers 1-12, and YYYY-MM keys.
func ParseMonth(s string) (time.Month, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= 12 {
		return time.Month(n), nil
	}
	if t, err := time.Parse("2006-01", s); err == nil {
		return t.Month(), nil
	}
	lower := strings.ToLower(s)
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		if lower == name || (len(lower) >= 3 && strings.HasPrefix(name, lower)) {
			return m, nil
		}
	}
	return 0, domain.Invalid("invalid month %q", s)
}

func splitMonths(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var out []string
	seen := map[time.Month]bool{}
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		m, err := ParseMonth(part)
		if err != nil {
			return nil, err
		}
		if !seen[m] {
			seen[m] = true
			out = append(out, m.String())
		}
	}
	return out, nil
}

func parseYear(s string) (int, error) {
	y, err := strconv.Atoi(s)
	if err != nil || y < 1900 || y > 9999 {
		return 0, domain.Invalid("invalid year %q", s)
	}
	return y, nil
}

func (f FilterValues) String() string {
	if f.IsZero() {
		return "no filters"
	}
	return fmt.Sprintf("filters(%s)", f.Encode().Encode())
}
