// Package catalog exposes the billing provider's product catalog to the
// admin UI: active products, optionally restricted to an allow-list of
// exact product names, and their monthly recurring prices.
//
// The catalog is read straight from the provider on every request; there
// is no local cache or store.
package catalog
