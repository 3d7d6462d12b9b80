package catalog

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/installments-admin/binder"
	"github.com/dmitrymomot/installments-admin/handler"
	"github.com/dmitrymomot/installments-admin/pkg/billing"
)

// ProductsResponse wraps the product listing.
type ProductsResponse struct {
	Products []billing.Product `json:"products"`
}

// PricesResponse wraps the monthly price listing for one product.
type PricesResponse struct {
	Prices []billing.Price `json:"prices"`
}

type pricesRequest struct {
	ProductID string `path:"productId"`
	All       bool   `query:"all"` // include non-monthly prices
}

// Register mounts the catalog routes on the given router.
func Register(r chi.Router, svc *Service, errHandler handler.ErrorHandler[handler.Context]) {
	r.Get("/products", handler.Wrap(
		listProducts(svc),
		handler.WithErrorHandler[handler.Context, struct{}](errHandler),
	))
	r.Get("/prices/{productId}", handler.Wrap(
		listPrices(svc),
		handler.WithBinders[handler.Context, pricesRequest](
			binder.Path(chi.URLParam),
			binder.BindQuery(),
		),
		handler.WithErrorHandler[handler.Context, pricesRequest](errHandler),
	))
}

func listProducts(svc *Service) handler.HandlerFunc[handler.Context, struct{}] {
	return func(ctx handler.Context, _ struct{}) handler.Response {
		products, err := svc.ListProducts(ctx)
		if err != nil {
			return handler.JSONError(toHTTPError(err))
		}
		return handler.JSON(ProductsResponse{Products: products})
	}
}

func listPrices(svc *Service) handler.HandlerFunc[handler.Context, pricesRequest] {
	return func(ctx handler.Context, req pricesRequest) handler.Response {
		list := svc.ListMonthlyPrices
		if req.All {
			list = svc.ListActivePrices
		}
		prices, err := list(ctx, req.ProductID)
		if err != nil {
			return handler.JSONError(toHTTPError(err))
		}
		return handler.JSON(PricesResponse{Prices: prices})
	}
}

// toHTTPError keeps provider wording while mapping the fault direction:
// provider-rejected requests are 400, provider outages 502.
func toHTTPError(err error) error {
	var provErr *billing.ProviderError
	if errors.As(err, &provErr) {
		if provErr.ClientFault() {
			return handler.NewHTTPError(http.StatusBadRequest, provErr.Message)
		}
		return handler.NewHTTPError(http.StatusBadGateway, provErr.Message)
	}
	return err
}
