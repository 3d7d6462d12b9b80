package handler

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/installments-admin/pkg/logger"
	"github.com/dmitrymomot/installments-admin/pkg/requestid"
)

// determineLogLevel maps HTTP status codes to appropriate log levels
func determineLogLevel(statusCode int) slog.Level {
	if statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// NewErrorHandler creates the default error handler used for binding and
// rendering failures: it logs the error with request context and writes
// the uniform {"error": "..."} body. Configure once in main.go and pass
// to all modules.
func NewErrorHandler(log *slog.Logger) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		status, message := classifyError(err)

		log.LogAttrs(ctx.Request().Context(), determineLogLevel(status), "request error",
			logger.RequestID(requestid.FromContext(ctx.Request().Context())),
			logger.Error(err),
			slog.Int("status_code", status),
			slog.String("method", ctx.Request().Method),
			slog.String("path", ctx.Request().URL.Path),
			logger.Component("error_handler"),
		)

		writeJSONError(ctx.ResponseWriter(), status, message)
	}
}
