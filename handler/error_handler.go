package handler

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/drivecase/pkg/logger"
	"github.com/dmitrymomot/drivecase/pkg/requestid"
)

// Helper functions for HTTP status code classification
func isClientError(statusCode int) bool {
	return statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError
}

// determineLogLevel maps HTTP status codes to appropriate log levels
func determineLogLevel(statusCode int) slog.Level {
	if isClientError(statusCode) {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// LogError logs a request error at a level derived from the status code it maps to.
// Client errors are logged at WARN, everything else at ERROR.
func LogError(log *slog.Logger, r *http.Request, err error) {
	if log == nil {
		log = slog.Default()
	}
	status := StatusCode(err)

	log.LogAttrs(r.Context(), determineLogLevel(status), "request error",
		logger.RequestID(requestid.FromContext(r.Context())),
		logger.Error(err),
		slog.Int("status_code", status),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		logger.Component("error_handler"),
	)
}

// NewErrorHandler creates the default error handler: it logs the error and
// renders it as a JSON error body. Configure it once in main.go and pass it to
// every module.
func NewErrorHandler[C Context](log *slog.Logger) ErrorHandler[C] {
	// Default logger if not provided
	if log == nil {
		log = slog.Default()
	}

	return func(ctx C, err error) {
		LogError(log, ctx.Request(), err)

		if renderErr := JSONError(err).Render(ctx.ResponseWriter(), ctx.Request()); renderErr != nil {
			log.Error("failed to render error response",
				logger.RequestID(requestid.FromContext(ctx.Request().Context())),
				logger.Error(renderErr),
				logger.Operation("render_error_response"),
			)
		}
	}
}
