package installment

import "strings"

// Plan is the result of converting a price into equal monthly charges.
// It is computed per request and never persisted.
type Plan struct {
	TotalAmount    int64  // full price, smallest currency unit
	PaymentsCount  int    // number of equal charges before auto-cancellation
	PerInstallment int64  // amount charged each month, smallest currency unit
	Currency       string // lowercase ISO currency code
}

// SplitTotal divides a total amount into count equal monthly charges using
// integer ceiling division, so the plan never undercharges; any rounding
// residue is absorbed by the buyer and never refunded.
//
// The per-installment amount is validated against the currency minimum.
// A failing check is reported as BelowMinimumError; the amount is never
// silently raised.
func SplitTotal(total int64, count int, currency string) (Plan, error) {
	if count < 1 {
		return Plan{}, ErrInvalidPaymentsCount
	}
	if total < 0 {
		return Plan{}, ErrNegativeAmount
	}

	per := ceilDiv(total, int64(count))

	plan := Plan{
		TotalAmount:    total,
		PaymentsCount:  count,
		PerInstallment: per,
		Currency:       strings.ToLower(currency),
	}
	if err := plan.checkMinimum(); err != nil {
		return Plan{}, err
	}
	return plan, nil
}

// Manual builds a plan from an operator-supplied per-installment amount.
// The amount is used as-is and never divided; the implied total is
// amount × count.
func Manual(perInstallment int64, count int, currency string) (Plan, error) {
	if count < 1 {
		return Plan{}, ErrInvalidPaymentsCount
	}
	if perInstallment < 0 {
		return Plan{}, ErrNegativeAmount
	}

	plan := Plan{
		TotalAmount:    perInstallment * int64(count),
		PaymentsCount:  count,
		PerInstallment: perInstallment,
		Currency:       strings.ToLower(currency),
	}
	if err := plan.checkMinimum(); err != nil {
		return Plan{}, err
	}
	return plan, nil
}

func (p Plan) checkMinimum() error {
	if min := MinimumAmount(p.Currency); p.PerInstallment < min {
		return BelowMinimumError{
			Amount:   p.PerInstallment,
			Minimum:  min,
			Currency: p.Currency,
		}
	}
	return nil
}

// ceilDiv returns ceil(a/b) for non-negative a and positive b without
// touching floating point.
func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}
