package checkout_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/installments-admin/pkg/billing"
)

type mockProvider struct {
	mock.Mock
}

var _ billing.Provider = (*mockProvider)(nil)

func (m *mockProvider) GetPrice(ctx context.Context, id string) (*billing.Price, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*billing.Price); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProvider) CreatePrice(ctx context.Context, params billing.CreatePriceParams) (*billing.Price, error) {
	args := m.Called(ctx, params)
	if p, ok := args.Get(0).(*billing.Price); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProvider) ListProducts(ctx context.Context) ([]billing.Product, error) {
	args := m.Called(ctx)
	if p, ok := args.Get(0).([]billing.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProvider) GetProduct(ctx context.Context, id string) (*billing.Product, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*billing.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProvider) ListPrices(ctx context.Context, productID string) ([]billing.Price, error) {
	args := m.Called(ctx, productID)
	if p, ok := args.Get(0).([]billing.Price); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProvider) CreateCheckoutSession(ctx context.Context, params billing.CheckoutSessionParams) (*billing.CheckoutSession, error) {
	args := m.Called(ctx, params)
	if s, ok := args.Get(0).(*billing.CheckoutSession); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProvider) GetSubscription(ctx context.Context, id string) (*billing.Subscription, error) {
	args := m.Called(ctx, id)
	if s, ok := args.Get(0).(*billing.Subscription); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProvider) CancelSubscriptionAt(ctx context.Context, id string, cancelAt int64) (*billing.Subscription, error) {
	args := m.Called(ctx, id, cancelAt)
	if s, ok := args.Get(0).(*billing.Subscription); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProvider) ParseWebhookEvent(payload []byte, signature string) (*billing.WebhookEvent, error) {
	args := m.Called(payload, signature)
	if e, ok := args.Get(0).(*billing.WebhookEvent); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}
