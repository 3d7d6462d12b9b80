package billing

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSignature indicates the webhook payload could not be
	// verified against the signing secret.
	ErrInvalidSignature = errors.New("webhook signature verification failed")

	// ErrInvalidAPIKey indicates the provider secret key is missing or
	// malformed. Raised at construction time so misconfiguration fails
	// startup instead of the first request.
	ErrInvalidAPIKey = errors.New("invalid billing provider API key")
)

// ProviderError is a rejection or failure reported by the billing API.
// Message carries the provider's own wording untranslated, since no local
// rephrasing should mask provider detail.
type ProviderError struct {
	Code       string // provider error code, if any
	Message    string // provider message, verbatim
	HTTPStatus int    // status the provider API responded with
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("billing provider: %s (%s)", e.Message, e.Code)
	}
	return fmt.Sprintf("billing provider: %s", e.Message)
}

// ClientFault reports whether the provider classified the failure as a
// problem with the request (4xx) rather than with the provider itself.
func (e *ProviderError) ClientFault() bool {
	return e.HTTPStatus >= 400 && e.HTTPStatus < 500
}
