package portal

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/drivecase/handler"
	"github.com/dmitrymomot/drivecase/pkg/logger"
)

// DebtorOnly is a handler decorator applying RequireDebtor. Rejections are
// logged at DEBUG on log; nil discards them.
func DebtorOnly[R any](log *slog.Logger) handler.Decorator[handler.Context, R] {
	return gate[R](log, "debtor_only", RequireDebtor)
}

// RoleOrScope is a handler decorator applying RequireRoleOrScope.
func RoleOrScope[R any](log *slog.Logger, scope string) handler.Decorator[handler.Context, R] {
	return gate[R](log, "role_or_scope:"+scope, func(c *Claims) error {
		return RequireRoleOrScope(c, scope)
	})
}

func gate[R any](log *slog.Logger, name string, check func(*Claims) error) handler.Decorator[handler.Context, R] {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return func(next handler.HandlerFunc[handler.Context, R]) handler.HandlerFunc[handler.Context, R] {
		return func(ctx handler.Context, req R) handler.Response {
			claims, _ := ClaimsFromContext(ctx)
			if err := check(claims); err != nil {
				var role string
				if claims != nil {
					role = string(claims.Role)
				}
				log.DebugContext(ctx, "gate rejected request",
					logger.Component("portal"),
					slog.String("gate", name),
					logger.Role(role),
					logger.Error(err),
					slog.String("path", ctx.Request().URL.Path),
				)
				return handler.JSONError(HTTPError(err))
			}
			return next(ctx, req)
		}
	}
}

// HTTPError maps token errors to 401 and 403. Other errors pass through.
func HTTPError(err error) error {
	switch {
	case errors.Is(err, ErrForbidden):
		return handler.ErrForbidden.WithMessage("token does not grant this action")
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrNoClaims):
		return handler.ErrUnauthorized.WithMessage("invalid or expired token")
	}
	return err
}

// UnauthorizedHandler renders middleware failures as a JSON 401 and logs
// them at WARN.
func UnauthorizedHandler(log *slog.Logger) func(w http.ResponseWriter, r *http.Request, err error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		herr := handler.ErrUnauthorized.WithMessage("invalid or expired token")
		handler.LogError(log, r, errors.Join(herr, err))
		_ = handler.JSONError(herr).Render(w, r)
	}
}
