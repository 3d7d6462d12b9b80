package billing

import (
	"context"
	"encoding/json"
)

// Provider defines the minimal interface for payment provider integrations.
// This abstraction allows support for different providers (Stripe, Paddle,
// Lemonsqueezy) while avoiding vendor lock-in. The provider handles all
// payment complexity through hosted checkouts, so no card data ever
// touches this application.
//
// Implementations should use official provider SDKs and handle
// provider-specific quirks internally (e.g., Stripe's metadata fields and
// signed event envelope).
type Provider interface {
	// GetPrice retrieves a single price by its provider identifier.
	GetPrice(ctx context.Context, id string) (*Price, error)

	// CreatePrice mints a new price object bound to an existing product.
	// The caller owns nothing afterwards: the provider keeps the object
	// and the orchestrator never deletes or reuses it.
	CreatePrice(ctx context.Context, params CreatePriceParams) (*Price, error)

	// ListProducts returns active products from the provider catalog.
	ListProducts(ctx context.Context) ([]Product, error)

	// GetProduct retrieves a single product by its provider identifier.
	GetProduct(ctx context.Context, id string) (*Product, error)

	// ListPrices returns active prices attached to the given product.
	ListPrices(ctx context.Context, productID string) ([]Price, error)

	// CreateCheckoutSession creates a subscription-mode hosted checkout
	// session and returns its id and hosted URL.
	CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error)

	// GetSubscription retrieves a subscription, including its metadata and
	// any scheduled cancellation timestamp.
	GetSubscription(ctx context.Context, id string) (*Subscription, error)

	// CancelSubscriptionAt schedules an absolute cancellation cutoff
	// (UNIX seconds) on the subscription.
	CancelSubscriptionAt(ctx context.Context, id string, cancelAt int64) (*Subscription, error)

	// ParseWebhookEvent validates and parses incoming webhook data.
	// Must verify the signature to prevent event spoofing; an unverifiable
	// payload is rejected outright and never interpreted.
	ParseWebhookEvent(payload []byte, signature string) (*WebhookEvent, error)
}

// Product is a provider catalog product.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
}

// Price is a provider price object. UnitAmount is in the smallest
// currency unit.
type Price struct {
	ID            string `json:"id"`
	ProductID     string `json:"-"`
	UnitAmount    int64  `json:"unit_amount"`
	Currency      string `json:"currency"` // lowercase ISO code
	Recurring     bool   `json:"-"`
	Interval      string `json:"interval,omitempty"`
	IntervalCount int64  `json:"interval_count,omitempty"`
}

// MonthlyRecurring reports whether the price bills monthly.
func (p Price) MonthlyRecurring() bool {
	return p.Recurring && p.Interval == "month"
}

// CreatePriceParams describes a new recurring price.
type CreatePriceParams struct {
	ProductID     string
	UnitAmount    int64  // smallest currency unit
	Currency      string // lowercase ISO code
	Interval      string // e.g. "month"
	IntervalCount int64
}

// CheckoutSessionParams describes a subscription-mode checkout session.
// SubscriptionMetadata is copied by the provider onto the subscription
// created when the checkout completes; it is the only channel carrying
// intent between checkout creation and event reconciliation.
type CheckoutSessionParams struct {
	PriceID              string
	Quantity             int64
	SuccessURL           string
	CancelURL            string
	SubscriptionMetadata map[string]string
}

// CheckoutSession is a provider-hosted checkout session.
type CheckoutSession struct {
	ID             string
	URL            string
	Mode           string // e.g. "subscription"
	SubscriptionID string // set once the checkout completes
}

// Subscription is a provider-owned subscription. CancelAt is the
// scheduled cancellation cutoff in UNIX seconds, zero when none is set.
type Subscription struct {
	ID       string
	Status   string
	Metadata map[string]string
	CancelAt int64
}

// SignatureHeader is the HTTP header carrying the provider's event
// signature on webhook deliveries.
const SignatureHeader = "Stripe-Signature"

// EventType is the normalized billing event type. Provider
// implementations map their specific event names onto these.
type EventType string

const (
	EventCheckoutCompleted EventType = "checkout_completed"
	EventInvoicePaid       EventType = "invoice_paid"
)

// WebhookEvent is a verified, normalized event from the billing provider.
type WebhookEvent struct {
	Type          EventType        // normalized event type
	ProviderEvent string           // original provider event name
	Session       *CheckoutSession // set for checkout events
	Invoice       *Invoice         // set for invoice events
	Raw           json.RawMessage  // full provider event object
}

// Invoice carries the fields of an invoice event this service logs.
type Invoice struct {
	ID         string
	AmountPaid int64
}
