// Package billing abstracts the external subscription/payment platform
// behind a minimal Provider interface: product and price reads, ephemeral
// price creation, hosted checkout sessions, subscription cancellation
// scheduling, and signed event parsing.
//
// The abstraction keeps the rest of the application vendor-neutral while
// the Stripe adapter handles provider-specific quirks (typed params,
// webhook signature scheme, error shapes) internally. Provider errors are
// normalized into ProviderError with the provider's own message preserved
// verbatim, since operators need the original detail to act on rejections.
package billing
