// Package handler provides a minimal, type-safe layer between chi routes
// and the application services.
//
// Handlers are plain functions typed by their request payload:
//
//	h := handler.HandlerFunc[handler.Context, CreateCheckoutRequest](
//		func(ctx handler.Context, req CreateCheckoutRequest) handler.Response {
//			result, err := svc.CreateInstallmentCheckout(ctx, req)
//			if err != nil {
//				return handler.JSONError(err)
//			}
//			return handler.JSON(result)
//		},
//	)
//	r.Post("/checkout-session", handler.Wrap(h,
//		handler.WithBinders[handler.Context, CreateCheckoutRequest](binder.BindJSON()),
//	))
//
// Responses render themselves to the http.ResponseWriter. JSON success
// payloads are written flat (exactly the value given), failures as
// {"error": "..."} with a status derived from the error type, matching
// the wire contract the admin UI consumes.
package handler
