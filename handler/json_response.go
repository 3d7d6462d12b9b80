package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/installments-admin/binder"
)

// jsonResponse renders a payload as-is.
type jsonResponse struct {
	status int
	body   any
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSONOption configures a JSON response.
type JSONOption func(*jsonResponse)

// WithStatus sets a custom HTTP status code.
func WithStatus(status int) JSONOption {
	return func(r *jsonResponse) {
		r.status = status
	}
}

// JSON creates a response that renders v verbatim with status 200 unless
// overridden.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: v}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// errorBody is the uniform failure payload: {"error": "..."}.
type errorBody struct {
	Error string `json:"error"`
}

// JSONError creates a {"error": "..."} response with a status derived
// from the error type. Use WithStatus to override the classification.
func JSONError(err error, opts ...JSONOption) Response {
	status, message := classifyError(err)
	r := &jsonResponse{status: status, body: errorBody{Error: message}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// classifyError maps an error to an HTTP status and a caller-safe message.
// Validation and binding problems are client faults; HTTPError carries its
// own status; everything else is a 500 with the error text passed through
// (provider rejections deliberately keep their original wording).
func classifyError(err error) (int, string) {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, httpErr.Message
	}

	var validationErr ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, validationErr.Error()
	}

	if isBindingError(err) {
		return http.StatusBadRequest, err.Error()
	}

	return http.StatusInternalServerError, err.Error()
}

func isBindingError(err error) bool {
	return errors.Is(err, binder.ErrInvalidJSON) ||
		errors.Is(err, binder.ErrInvalidQuery) ||
		errors.Is(err, binder.ErrInvalidPath) ||
		errors.Is(err, binder.ErrMissingContentType) ||
		errors.Is(err, binder.ErrUnsupportedMediaType)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: message})
}
