package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

var (
	ErrMissingURL    = errors.New("API URL is required")
	ErrMissingAPIKey = errors.New("API key is required")
	ErrInvalidURL    = errors.New("API URL is not a valid http(s) address")
	ErrRejected      = errors.New("server rejected the request")
)

// Error is a non-2xx response from the server.
type Error struct {
	Method     string
	Endpoint   string
	StatusCode int
	Message    string
	Body       []byte
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Endpoint, e.StatusCode, http.StatusText(e.StatusCode))
}

// IsUnauthorized reports whether err is a 401/403 from the server.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
	}
	return false
}

func newError(method, endpoint string, status int, body []byte) *Error {
	return &Error{
		Method:     method,
		Endpoint:   endpoint,
		StatusCode: status,
		Message:    serverMessage(body),
		Body:       body,
	}
}

// serverMessage pulls the human readable reason out of a response body.
// Routes disagree on whether it lives under "error" or "message".
func serverMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	for _, key := range []string{"error", "message"} {
		if v := gjson.GetBytes(body, key); v.Exists() && v.Type == gjson.String {
			return v.String()
		}
	}
	return ""
}

// rejected converts a 2xx body carrying "success": false into an error.
func rejected(body []byte) error {
	v := gjson.GetBytes(body, "success")
	if v.Exists() && !v.Bool() {
		if msg := serverMessage(body); msg != "" {
			return fmt.Errorf("%w: %s", ErrRejected, msg)
		}
		return ErrRejected
	}
	return nil
}
