package cli

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/zeabis/zeabis/internal/contract"
)

// filterFlags mirrors contract.FilterValues on the command line. Values go
// through FilterValues.With so the CLI accepts exactly what the API does.
type filterFlags struct {
	year   int
	months []string
	text   map[string]*string
	sort   string
	dir    string
}

// filterTextKeys are the filters bound as plain string flags, in help order.
var filterTextKeys = []string{
	"project", "customer", "employee", "proposal", "po", "invoice",
	"projectStatus", "proposalStatus", "poStatus", "invoiceStatus",
}

func (f *filterFlags) bind(fs *pflag.FlagSet) {
	fs.IntVar(&f.year, "year", 0, "reporting year (default: current year)")
	fs.StringSliceVar(&f.months, "months", nil, "months to include, e.g. jan,feb or 2024-03")
	f.text = make(map[string]*string, len(filterTextKeys))
	for _, key := range filterTextKeys {
		f.text[key] = fs.String(flagName(key), "", "filter by "+strings.ToLower(splitCamel(key)))
	}
	fs.StringVar(&f.sort, "sort", "", "column key to sort by")
	fs.StringVar(&f.dir, "dir", "asc", "sort direction: asc or desc")
}

func (f *filterFlags) values() (contract.FilterValues, error) {
	var fv contract.FilterValues
	var err error
	if f.year != 0 {
		if fv, err = fv.With("year", strconv.Itoa(f.year)); err != nil {
			return contract.FilterValues{}, err
		}
	}
	if fv, err = fv.With("months", strings.Join(f.months, ",")); err != nil {
		return contract.FilterValues{}, err
	}
	for _, key := range filterTextKeys {
		if fv, err = fv.With(key, *f.text[key]); err != nil {
			return contract.FilterValues{}, err
		}
	}
	return fv, nil
}

func (f *filterFlags) billingRequest(now time.Time) (contract.BillingReportRequest, error) {
	fv, err := f.values()
	if err != nil {
		return contract.BillingReportRequest{}, err
	}
	req := contract.NewBillingReportRequest(fv).WithSort(f.sort, f.dir)
	req.Now = &now
	return req, nil
}

func (f *filterFlags) invoiceRequest(now time.Time) (contract.InvoiceReportRequest, error) {
	fv, err := f.values()
	if err != nil {
		return contract.InvoiceReportRequest{}, err
	}
	req := contract.NewInvoiceReportRequest(fv).WithSort(f.sort, f.dir)
	req.Now = &now
	return req, nil
}

// flagName turns a filter key such as "projectStatus" into "project-status".
func flagName(key string) string {
	return strings.ReplaceAll(strings.ToLower(splitCamel(key)), " ", "-")
}

func splitCamel(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
