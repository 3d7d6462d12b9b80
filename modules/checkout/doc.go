// Package checkout orchestrates installment-based subscription checkouts.
//
// The service turns a one-off catalog price into an ephemeral monthly
// recurring price, opens a provider-hosted checkout session for it, and
// plants cancellation metadata on the future subscription. A webhook
// reconciler later reads that metadata back and schedules the absolute
// cancellation cutoff, so the subscription stops itself after the agreed
// number of charges without any local persistence.
//
// All state lives with the billing provider; this package is stateless
// and every request is self-contained.
package checkout
