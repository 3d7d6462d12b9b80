package checkout

import "errors"

var (
	// ErrPaymentsCountInvalid indicates the requested number of charges is
	// missing, zero, or negative.
	ErrPaymentsCountInvalid = errors.New("paymentsCount must be a whole number greater than zero")

	// ErrPricingSourceMissing indicates the request carries neither a
	// catalog price reference nor a manual amount.
	ErrPricingSourceMissing = errors.New("either priceId or manualPrice is required")

	// ErrProductUnresolvable indicates a manual amount was supplied without
	// any way to resolve the product the ephemeral price must attach to.
	ErrProductUnresolvable = errors.New("manual pricing requires a productId or a priceId to resolve the product")

	// ErrPriceNotMonthly indicates the referenced catalog price does not
	// bill monthly, so it cannot anchor an installment plan.
	ErrPriceNotMonthly = errors.New("price must be a monthly recurring subscription price")
)
