package handler

import "net/http"

// HTTPError represents an HTTP error with a status code and a
// human-readable message that is safe to return to the caller.
type HTTPError struct {
	Code    int    // HTTP status code
	Message string // message written into the {"error": ...} body
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Message
}

// Common errors for routes that have nothing more specific to say.
var (
	ErrBadRequest          = HTTPError{Code: http.StatusBadRequest, Message: "bad request"}
	ErrUnauthorized        = HTTPError{Code: http.StatusUnauthorized, Message: "unauthorized"}
	ErrForbidden           = HTTPError{Code: http.StatusForbidden, Message: "forbidden"}
	ErrNotFound            = HTTPError{Code: http.StatusNotFound, Message: "not found"}
	ErrInternalServerError = HTTPError{Code: http.StatusInternalServerError, Message: "internal server error"}
	ErrBadGateway          = HTTPError{Code: http.StatusBadGateway, Message: "bad gateway"}
)

// NewHTTPError creates a custom HTTP error with the given status code and
// message.
func NewHTTPError(code int, message string) HTTPError {
	return HTTPError{Code: code, Message: message}
}
