package rest

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

// RouterConfig configures the HTTP middleware chain.
type RouterConfig struct {
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter builds the HTTP handler with scoring and health routes, an
// optional metrics endpoint and the middleware chain. Requests are traced
// through the global TracerProvider.
func NewRouter(
	scoring *ScoringHandler,
	health *HealthHandler,
	metrics http.Handler,
	cfg RouterConfig,
	logger *slog.Logger,
) http.Handler {
	mux := http.NewServeMux()
	scoring.RegisterRoutes(mux)
	health.RegisterRoutes(mux)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}

	// Build middleware chain (applied in reverse order).
	var h http.Handler = mux
	if cfg.RateLimitRPS > 0 {
		h = RateLimitMiddleware(rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst))(h)
	}
	h = CORSMiddleware(cfg.AllowedOrigins)(h)
	h = otelhttp.NewHandler(h, "fraudshield.http",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
	h = LoggingMiddleware(logger)(h)
	return h
}
