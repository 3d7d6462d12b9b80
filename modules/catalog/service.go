package catalog

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/dmitrymomot/installments-admin/pkg/billing"
)

// Config controls which catalog products the admin UI may see.
type Config struct {
	// AllowedProductNames restricts listings to exact name matches.
	// An empty list exposes every active product.
	AllowedProductNames []string `env:"ALLOWED_PRODUCT_NAMES" envSeparator:","`
}

// Service reads the provider catalog for the admin UI.
type Service struct {
	provider billing.Provider
	allowed  []string
	log      *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService creates a catalog service. Allow-list entries are trimmed
// and empty entries dropped, so a trailing comma in the environment
// variable cannot accidentally hide the whole catalog.
func NewService(provider billing.Provider, cfg Config, opts ...Option) *Service {
	allowed := make([]string, 0, len(cfg.AllowedProductNames))
	for _, name := range cfg.AllowedProductNames {
		if name = strings.TrimSpace(name); name != "" {
			allowed = append(allowed, name)
		}
	}

	s := &Service{
		provider: provider,
		allowed:  allowed,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListProducts returns active products, filtered by the allow-list when
// one is configured. Matching is exact on the product name.
func (s *Service) ListProducts(ctx context.Context) ([]billing.Product, error) {
	products, err := s.provider.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	if len(s.allowed) == 0 {
		if products == nil {
			products = []billing.Product{}
		}
		return products, nil
	}

	filtered := make([]billing.Product, 0, len(products))
	for _, p := range products {
		if slices.Contains(s.allowed, p.Name) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// ListActivePrices returns all of the product's active prices regardless
// of billing interval, for operators inspecting the full catalog.
func (s *Service) ListActivePrices(ctx context.Context, productID string) ([]billing.Price, error) {
	prices, err := s.provider.ListPrices(ctx, productID)
	if err != nil {
		return nil, err
	}
	if prices == nil {
		prices = []billing.Price{}
	}
	return prices, nil
}

// ListMonthlyPrices returns the product's active prices that bill
// monthly; only those can anchor an installment plan.
func (s *Service) ListMonthlyPrices(ctx context.Context, productID string) ([]billing.Price, error) {
	prices, err := s.provider.ListPrices(ctx, productID)
	if err != nil {
		return nil, err
	}

	monthly := make([]billing.Price, 0, len(prices))
	for _, p := range prices {
		if p.MonthlyRecurring() {
			monthly = append(monthly, p)
		}
	}
	return monthly, nil
}
