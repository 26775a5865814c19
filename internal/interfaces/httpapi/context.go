package httpapi

import (
	"context"

	"github.com/riskibarqy/sports-league/internal/domain/user"
)

type contextKey string

const (
	principalContextKey    contextKey = "auth_principal"
	exposeErrorsContextKey contextKey = "expose_internal_errors"
)

func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func principalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(user.Principal)
	return p, ok
}

func withExposedErrors(ctx context.Context) context.Context {
	return context.WithValue(ctx, exposeErrorsContextKey, true)
}

// internalErrorsExposed reports whether 5xx messages may reach the client.
func internalErrorsExposed(ctx context.Context) bool {
	exposed, _ := ctx.Value(exposeErrorsContextKey).(bool)
	return exposed
}
