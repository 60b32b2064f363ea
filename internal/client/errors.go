package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnavailable indicates the API server could not be reached.
var ErrUnavailable = errors.New("zeabis api unavailable")

// ErrNotLoggedIn is returned when a call needs a token and none is stored.
var ErrNotLoggedIn = errors.New("not logged in: run `zeabis api login` first")

// APIError is a non-2xx answer. Message is the server's "error" field, or
// "HTTP <status>" when the body carried none.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsUnauthorized reports whether err is a 401 from the server.
func IsUnauthorized(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == http.StatusUnauthorized
}

func statusError(status int, msg string) *APIError {
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", status)
	}
	return &APIError{Status: status, Message: msg}
}
