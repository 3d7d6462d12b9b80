package installment

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidPaymentsCount is returned when the payment count is below one.
	ErrInvalidPaymentsCount = errors.New("payments count must be at least 1")

	// ErrNegativeAmount is returned when a supplied amount is negative.
	ErrNegativeAmount = errors.New("amount must not be negative")

	// ErrBelowMinimum indicates the per-installment amount is smaller than
	// the provider's minimum charge for the currency.
	ErrBelowMinimum = errors.New("per-installment amount below currency minimum")
)

// BelowMinimumError reports a per-installment amount that falls under the
// provider's minimum charge for the currency. It wraps ErrBelowMinimum so
// callers can match with errors.Is.
type BelowMinimumError struct {
	Amount   int64  // computed per-installment amount, smallest unit
	Minimum  int64  // provider minimum for the currency, smallest unit
	Currency string // lowercase ISO currency code
}

func (e BelowMinimumError) Error() string {
	cur := strings.ToUpper(e.Currency)
	return fmt.Sprintf(
		"the amount per payment (%.2f %s) is below the minimum allowed by the billing provider (%.2f %s); try fewer payments",
		float64(e.Amount)/100, cur, float64(e.Minimum)/100, cur,
	)
}

func (e BelowMinimumError) Unwrap() error { return ErrBelowMinimum }
