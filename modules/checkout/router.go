package checkout

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/installments-admin/binder"
	"github.com/dmitrymomot/installments-admin/handler"
	"github.com/dmitrymomot/installments-admin/pkg/billing"
	"github.com/dmitrymomot/installments-admin/pkg/installment"
)

// maxWebhookBody caps event payload reads; provider events are small and
// anything larger is not a legitimate delivery.
const maxWebhookBody = 1 << 20

// Register mounts the checkout routes on the given router.
func Register(r chi.Router, svc *Service, errHandler handler.ErrorHandler[handler.Context]) {
	r.Post("/checkout-session", handler.Wrap(
		createCheckoutSession(svc),
		handler.WithBinders[handler.Context, CreateCheckoutRequest](binder.BindJSON()),
		handler.WithErrorHandler[handler.Context, CreateCheckoutRequest](errHandler),
	))
	r.Post("/webhooks/billing", webhookHandler(svc))
}

func createCheckoutSession(svc *Service) handler.HandlerFunc[handler.Context, CreateCheckoutRequest] {
	return func(ctx handler.Context, req CreateCheckoutRequest) handler.Response {
		result, err := svc.CreateInstallmentCheckout(ctx, req)
		if err != nil {
			return handler.JSONError(toHTTPError(err))
		}
		return handler.JSON(result)
	}
}

// toHTTPError maps orchestration failures onto response statuses: request
// faults become 400, provider-side failures 502, everything else keeps
// the default 500 classification.
func toHTTPError(err error) error {
	var provErr *billing.ProviderError
	if errors.As(err, &provErr) {
		if provErr.ClientFault() {
			return handler.NewHTTPError(http.StatusBadRequest, provErr.Message)
		}
		return handler.NewHTTPError(http.StatusBadGateway, provErr.Message)
	}
	if isRequestFault(err) {
		return handler.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return err
}

func isRequestFault(err error) bool {
	return errors.Is(err, ErrPaymentsCountInvalid) ||
		errors.Is(err, ErrPricingSourceMissing) ||
		errors.Is(err, ErrProductUnresolvable) ||
		errors.Is(err, ErrPriceNotMonthly) ||
		errors.Is(err, installment.ErrInvalidPaymentsCount) ||
		errors.Is(err, installment.ErrNegativeAmount) ||
		errors.Is(err, installment.ErrBelowMinimum)
}

// webhookHandler receives provider event deliveries. It bypasses the
// typed handler pipeline because signature verification needs the raw
// request body byte-for-byte.
func webhookHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		signature := r.Header.Get(billing.SignatureHeader)
		if signature == "" {
			_ = handler.JSONError(handler.NewHTTPError(http.StatusBadRequest, "missing signature header")).Render(w, r)
			return
		}

		payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
		if err != nil {
			_ = handler.JSONError(handler.NewHTTPError(http.StatusBadRequest, "failed to read request body")).Render(w, r)
			return
		}

		if err := svc.HandleWebhook(r.Context(), payload, signature); err != nil {
			if errors.Is(err, billing.ErrInvalidSignature) {
				_ = handler.JSONError(handler.NewHTTPError(http.StatusBadRequest, "invalid signature")).Render(w, r)
				return
			}
			// Non-2xx makes the provider redeliver the event.
			_ = handler.JSONError(handler.NewHTTPError(http.StatusInternalServerError, "event processing failed")).Render(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"received":true}` + "\n"))
	}
}
