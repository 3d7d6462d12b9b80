package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhook"
)

// StripeConfig holds configuration for the Stripe billing provider.
type StripeConfig struct {
	SecretKey     string `env:"STRIPE_SECRET_KEY,required"`
	WebhookSecret string `env:"STRIPE_WEBHOOK_SECRET,required"`
}

// Standard keys (sk_live_/sk_test_) and restricted keys (rk_live_/rk_test_)
// are both accepted.
var stripeKeyFormat = regexp.MustCompile(`^(sk|rk)_(live|test)_`)

// StripeProvider implements Provider for Stripe.
type StripeProvider struct {
	client        *client.API
	webhookSecret string
}

// NewStripeProvider creates a new Stripe billing provider. The key format
// is checked up front so a misconfigured deployment fails at startup
// rather than on the first billing call.
func NewStripeProvider(config StripeConfig) (*StripeProvider, error) {
	if config.SecretKey == "" || !stripeKeyFormat.MatchString(config.SecretKey) {
		return nil, ErrInvalidAPIKey
	}
	if config.WebhookSecret == "" {
		return nil, errors.New("stripe webhook secret is required")
	}

	api := &client.API{}
	api.Init(config.SecretKey, nil)

	return &StripeProvider{
		client:        api,
		webhookSecret: config.WebhookSecret,
	}, nil
}

// GetPrice retrieves a single price from Stripe.
func (p *StripeProvider) GetPrice(ctx context.Context, id string) (*Price, error) {
	price, err := p.client.Prices.Get(id, &stripe.PriceParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return nil, wrapStripeErr(err)
	}
	return mapStripePrice(price), nil
}

// CreatePrice mints a new recurring price bound to an existing product.
func (p *StripeProvider) CreatePrice(ctx context.Context, params CreatePriceParams) (*Price, error) {
	price, err := p.client.Prices.New(&stripe.PriceParams{
		Params:     stripe.Params{Context: ctx},
		Product:    stripe.String(params.ProductID),
		UnitAmount: stripe.Int64(params.UnitAmount),
		Currency:   stripe.String(params.Currency),
		Recurring: &stripe.PriceRecurringParams{
			Interval:      stripe.String(params.Interval),
			IntervalCount: stripe.Int64(params.IntervalCount),
		},
	})
	if err != nil {
		return nil, wrapStripeErr(err)
	}
	return mapStripePrice(price), nil
}

// ListProducts returns active products from the Stripe catalog.
func (p *StripeProvider) ListProducts(ctx context.Context) ([]Product, error) {
	params := &stripe.ProductListParams{Active: stripe.Bool(true)}
	params.Context = ctx
	params.Limit = stripe.Int64(100)

	var products []Product
	iter := p.client.Products.List(params)
	for iter.Next() {
		prod := iter.Product()
		products = append(products, Product{
			ID:          prod.ID,
			Name:        prod.Name,
			Description: prod.Description,
			Images:      prod.Images,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, wrapStripeErr(err)
	}
	return products, nil
}

// GetProduct retrieves a single product from Stripe.
func (p *StripeProvider) GetProduct(ctx context.Context, id string) (*Product, error) {
	prod, err := p.client.Products.Get(id, &stripe.ProductParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return nil, wrapStripeErr(err)
	}
	return &Product{
		ID:          prod.ID,
		Name:        prod.Name,
		Description: prod.Description,
		Images:      prod.Images,
	}, nil
}

// ListPrices returns active prices attached to the given product.
func (p *StripeProvider) ListPrices(ctx context.Context, productID string) ([]Price, error) {
	params := &stripe.PriceListParams{
		Product: stripe.String(productID),
		Active:  stripe.Bool(true),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(100)

	var prices []Price
	iter := p.client.Prices.List(params)
	for iter.Next() {
		prices = append(prices, *mapStripePrice(iter.Price()))
	}
	if err := iter.Err(); err != nil {
		return nil, wrapStripeErr(err)
	}
	return prices, nil
}

// CreateCheckoutSession creates a subscription-mode hosted checkout
// session. The metadata lands on the subscription object once the
// checkout completes, which is the only place the cancellation plan
// survives until reconciliation.
func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error) {
	quantity := params.Quantity
	if quantity == 0 {
		quantity = 1
	}

	sessionParams := &stripe.CheckoutSessionParams{
		Params: stripe.Params{Context: ctx},
		Mode:   stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(params.PriceID),
				Quantity: stripe.Int64(quantity),
			},
		},
		SuccessURL: stripe.String(params.SuccessURL),
		CancelURL:  stripe.String(params.CancelURL),
	}
	if len(params.SubscriptionMetadata) > 0 {
		sessionParams.SubscriptionData = &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: params.SubscriptionMetadata,
		}
	}

	session, err := p.client.CheckoutSessions.New(sessionParams)
	if err != nil {
		return nil, wrapStripeErr(err)
	}
	if session.URL == "" {
		return nil, &ProviderError{Message: "no checkout URL returned from stripe"}
	}
	return mapStripeSession(session), nil
}

// GetSubscription retrieves a subscription including its metadata.
func (p *StripeProvider) GetSubscription(ctx context.Context, id string) (*Subscription, error) {
	sub, err := p.client.Subscriptions.Get(id, &stripe.SubscriptionParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return nil, wrapStripeErr(err)
	}
	return mapStripeSubscription(sub), nil
}

// CancelSubscriptionAt schedules an absolute cancellation cutoff on the
// subscription.
func (p *StripeProvider) CancelSubscriptionAt(ctx context.Context, id string, cancelAt int64) (*Subscription, error) {
	sub, err := p.client.Subscriptions.Update(id, &stripe.SubscriptionParams{
		Params:   stripe.Params{Context: ctx},
		CancelAt: stripe.Int64(cancelAt),
	})
	if err != nil {
		return nil, wrapStripeErr(err)
	}
	return mapStripeSubscription(sub), nil
}

// ParseWebhookEvent verifies the Stripe-Signature header against the
// signing secret and normalizes the event. API version pinning is left to
// the webhook endpoint configuration, so a version mismatch between the
// SDK and the endpoint does not reject otherwise valid events.
func (p *StripeProvider) ParseWebhookEvent(payload []byte, signature string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, p.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, errors.Join(ErrInvalidSignature, err)
	}

	normalized := &WebhookEvent{
		Type:          mapStripeEventType(string(event.Type)),
		ProviderEvent: string(event.Type),
		Raw:           event.Data.Raw,
	}

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return nil, fmt.Errorf("failed to parse checkout session payload: %w", err)
		}
		normalized.Session = mapStripeSession(&session)
	case "invoice.paid":
		var invoice stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			return nil, fmt.Errorf("failed to parse invoice payload: %w", err)
		}
		normalized.Invoice = &Invoice{ID: invoice.ID, AmountPaid: invoice.AmountPaid}
	}

	return normalized, nil
}

func mapStripeEventType(stripeEvent string) EventType {
	switch stripeEvent {
	case "checkout.session.completed":
		return EventCheckoutCompleted
	case "invoice.paid":
		return EventInvoicePaid
	default:
		// Pass unmapped events through under their original name.
		return EventType(stripeEvent)
	}
}

func mapStripePrice(price *stripe.Price) *Price {
	mapped := &Price{
		ID:         price.ID,
		UnitAmount: price.UnitAmount,
		Currency:   string(price.Currency),
	}
	if price.Product != nil {
		mapped.ProductID = price.Product.ID
	}
	if price.Type == stripe.PriceTypeRecurring && price.Recurring != nil {
		mapped.Recurring = true
		mapped.Interval = string(price.Recurring.Interval)
		mapped.IntervalCount = price.Recurring.IntervalCount
	}
	return mapped
}

func mapStripeSession(session *stripe.CheckoutSession) *CheckoutSession {
	mapped := &CheckoutSession{
		ID:   session.ID,
		URL:  session.URL,
		Mode: string(session.Mode),
	}
	if session.Subscription != nil {
		mapped.SubscriptionID = session.Subscription.ID
	}
	return mapped
}

func mapStripeSubscription(sub *stripe.Subscription) *Subscription {
	return &Subscription{
		ID:       sub.ID,
		Status:   string(sub.Status),
		Metadata: sub.Metadata,
		CancelAt: sub.CancelAt,
	}
}

// wrapStripeErr converts Stripe SDK errors into ProviderError, keeping the
// provider's own message intact.
func wrapStripeErr(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return &ProviderError{
			Code:       string(stripeErr.Code),
			Message:    stripeErr.Msg,
			HTTPStatus: stripeErr.HTTPStatusCode,
		}
	}
	return err
}
