package httpapi

import (
	"net/http"

	"github.com/riskibarqy/sports-league/internal/platform/logging"
)

// RouterConfig carries the transport settings resolved from configuration.
type RouterConfig struct {
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
	// ExposeInternalErrors keeps the raw message on 5xx responses.
	ExposeInternalErrors bool
	RateLimiter          *RateLimiter
}

func NewRouter(handler *Handler, verifier TokenVerifier, logger *logging.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.SwaggerEnabled)
	registerAuthRoutes(mux, handler)
	registerAdminRoutes(mux, handler, verifier)
	registerPortalRoutes(mux, handler, verifier)

	return RequestTracing(
		RequestLogging(logger,
			CORS(cfg.CORSAllowedOrigins,
				RateLimit(cfg.RateLimiter,
					ExposeErrors(cfg.ExposeInternalErrors,
						recoverPanic(logger, mux),
					),
				),
			),
		),
	)
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
