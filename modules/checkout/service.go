package checkout

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/installments-admin/pkg/billing"
	"github.com/dmitrymomot/installments-admin/pkg/installment"
	"github.com/dmitrymomot/installments-admin/pkg/logger"
)

// manualCurrency is the only currency accepted for operator-entered
// amounts; catalog-referenced plans inherit the price's own currency.
const manualCurrency = "usd"

// Service creates installment checkouts and reconciles the webhook events
// they produce. It holds no state of its own; the billing provider is the
// single source of truth.
type Service struct {
	provider billing.Provider
	appURL   string
	log      *slog.Logger
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for orchestration and reconciliation
// events. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock overrides the time source used to anchor cancellation
// cutoffs. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a checkout service. appURL is the public base URL
// the hosted checkout redirects back to.
func NewService(provider billing.Provider, appURL string, opts ...Option) *Service {
	s := &Service{
		provider: provider,
		appURL:   strings.TrimRight(appURL, "/"),
		log:      slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateCheckoutRequest is the operator's request for a new installment
// checkout. Exactly one pricing source must resolve: a catalog price via
// PriceID, or an operator-entered per-installment amount via ManualPrice
// (in which case PriceID or ProductID only locates the product).
type CreateCheckoutRequest struct {
	PriceID       string `json:"priceId,omitempty"`
	ProductID     string `json:"productId,omitempty"`
	PaymentsCount int    `json:"paymentsCount"`
	ManualPrice   *int64 `json:"manualPrice,omitempty"` // smallest currency unit
}

// CheckoutResult is returned to the operator once the hosted checkout
// session exists. Amounts are in the smallest currency unit.
type CheckoutResult struct {
	URL              string `json:"url"`
	SessionID        string `json:"sessionId"`
	AmountPerPayment int64  `json:"amountPerPayment"`
	TotalAmount      int64  `json:"totalAmount"`
	Currency         string `json:"currency"`
}

// CreateInstallmentCheckout validates the request, computes the
// installment plan, mints an ephemeral monthly price, and opens a
// subscription-mode hosted checkout whose future subscription carries the
// cancellation metadata.
//
// All validation happens before any provider mutation, so a rejected
// request never leaves an orphaned price behind.
func (s *Service) CreateInstallmentCheckout(ctx context.Context, req CreateCheckoutRequest) (*CheckoutResult, error) {
	if req.PaymentsCount < 1 {
		return nil, ErrPaymentsCountInvalid
	}
	if req.PriceID == "" && req.ManualPrice == nil {
		return nil, ErrPricingSourceMissing
	}

	var (
		plan            installment.Plan
		productID       string
		originalPriceID string
		err             error
	)

	if req.ManualPrice != nil {
		// Manual mode: the amount is charged as-is, never divided.
		plan, err = installment.Manual(*req.ManualPrice, req.PaymentsCount, manualCurrency)
		if err != nil {
			return nil, err
		}
		productID, err = s.resolveProduct(ctx, req)
		if err != nil {
			return nil, err
		}
		originalPriceID = manualPriceMarker
	} else {
		price, err := s.provider.GetPrice(ctx, req.PriceID)
		if err != nil {
			return nil, err
		}
		if !price.MonthlyRecurring() {
			return nil, ErrPriceNotMonthly
		}
		plan, err = installment.SplitTotal(price.UnitAmount, req.PaymentsCount, price.Currency)
		if err != nil {
			return nil, err
		}
		productID = price.ProductID
		originalPriceID = price.ID
	}

	ephemeral, err := s.provider.CreatePrice(ctx, billing.CreatePriceParams{
		ProductID:     productID,
		UnitAmount:    plan.PerInstallment,
		Currency:      plan.Currency,
		Interval:      "month",
		IntervalCount: 1,
	})
	if err != nil {
		return nil, err
	}

	// Calendar month addition: month-end dates normalize forward the way
	// the provider dashboard does (Jan 31 + 1 month lands in early March).
	cancelAt := s.now().AddDate(0, plan.PaymentsCount, 0)

	meta := CancellationPlan{
		CancelAt:        cancelAt.Unix(),
		PaymentsCount:   plan.PaymentsCount,
		OriginalPriceID: originalPriceID,
		ManualPrice:     req.ManualPrice != nil,
	}

	session, err := s.provider.CreateCheckoutSession(ctx, billing.CheckoutSessionParams{
		PriceID:              ephemeral.ID,
		Quantity:             1,
		SuccessURL:           s.appURL + "/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:            s.appURL + "/cancel",
		SubscriptionMetadata: meta.Metadata(),
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "installment checkout created",
		logger.SessionID(session.ID),
		logger.Amount(plan.PerInstallment),
		logger.Currency(plan.Currency),
		slog.Int("payments_count", plan.PaymentsCount),
		slog.Int64("cancel_at", cancelAt.Unix()),
		slog.Bool("manual_price", meta.ManualPrice),
		logger.Component("checkout"),
	)

	return &CheckoutResult{
		URL:              session.URL,
		SessionID:        session.ID,
		AmountPerPayment: plan.PerInstallment,
		TotalAmount:      plan.TotalAmount,
		Currency:         plan.Currency,
	}, nil
}

// resolveProduct locates the product an ephemeral price attaches to in
// manual mode. An explicit productId wins; otherwise the referenced price
// is looked up only for its product.
func (s *Service) resolveProduct(ctx context.Context, req CreateCheckoutRequest) (string, error) {
	switch {
	case req.ProductID != "":
		product, err := s.provider.GetProduct(ctx, req.ProductID)
		if err != nil {
			return "", err
		}
		return product.ID, nil
	case req.PriceID != "":
		price, err := s.provider.GetPrice(ctx, req.PriceID)
		if err != nil {
			return "", err
		}
		return price.ProductID, nil
	}
	return "", ErrProductUnresolvable
}
