package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/zeabis/zeabis/internal/domain"
)

func init() {
	// Money goes over the wire as JSON numbers, as the SPA expects.
	decimal.MarshalJSONWithoutQuotes = true
}

const maxBodyBytes = 1 << 20

var statusByKind = map[domain.ErrorKind]int{
	domain.KindNotFound:     http.StatusNotFound,
	domain.KindConflict:     http.StatusConflict,
	domain.KindUnauthorized: http.StatusUnauthorized,
	domain.KindForbidden:    http.StatusForbidden,
	domain.KindValidation:   http.StatusBadRequest,
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a domain error kind to its status. Untagged errors are
// logged and reported as a generic 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, ok := statusByKind[domain.KindOf(err)]
	if !ok {
		s.logger.ErrorContext(r.Context(), "internal_error",
			"method", r.Method, "path", r.URL.Path, "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Internal server error"})
		return
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

// decodeJSON reads a JSON body into v. Malformed bodies are validation errors.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Invalid("request body is required")
		}
		var de *domain.Error
		if errors.As(err, &de) {
			return err
		}
		return &domain.Error{Kind: domain.KindValidation, Msg: "invalid JSON body: " + err.Error(), Err: err}
	}
	return nil
}
