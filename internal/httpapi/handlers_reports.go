package httpapi

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/zeabis/zeabis/internal/contract"
	"github.com/zeabis/zeabis/internal/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) billingRequest(r *http.Request) (contract.BillingReportRequest, error) {
	q := r.URL.Query()
	f, err := contract.ParseFilterValues(q)
	if err != nil {
		return contract.BillingReportRequest{}, err
	}
	now := s.now()
	req := contract.NewBillingReportRequest(f).WithSort(q.Get("sort"), q.Get("dir"))
	req.Now = &now
	return req, nil
}

func (s *Server) billingReport(w http.ResponseWriter, r *http.Request) {
	req, err := s.billingRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp, err := s.svc.Reports.Billing(r.Context(), req)
	s.respond(w, r, http.StatusOK, resp, err)
}

// billingWorkbook renders the billing report as an xlsx download. The
// workbook is built in memory so a failure still yields a JSON error.
func (s *Server) billingWorkbook(w http.ResponseWriter, r *http.Request) {
	req, err := s.billingRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp, err := s.svc.Reports.Billing(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := export.Write(&buf, export.BillingSheets(resp)...); err != nil {
		s.writeError(w, r, fmt.Errorf("rendering billing workbook: %w", err))
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="billing-%d.xlsx"`, resp.Year))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) invoiceReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f, err := contract.ParseFilterValues(q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	now := s.now()
	req := contract.NewInvoiceReportRequest(f).WithSort(q.Get("sort"), q.Get("dir"))
	req.Now = &now
	resp, err := s.svc.Reports.Invoices(r.Context(), req)
	s.respond(w, r, http.StatusOK, resp, err)
}
