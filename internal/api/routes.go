package api

import (
	"net/http"
	"waitlist/internal/models"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

// routeConfig collects optional route behavior before the router is built.
type routeConfig struct {
	routerMiddleware []mux.MiddlewareFunc
	apiMiddleware    []mux.MiddlewareFunc
}

// RouteOption configures optional route behavior.
type RouteOption func(*routeConfig)

// WithOTelMiddleware adds OpenTelemetry HTTP instrumentation middleware.
func WithOTelMiddleware(serviceName string) RouteOption {
	return func(rc *routeConfig) {
		rc.routerMiddleware = append(rc.routerMiddleware, otelmux.Middleware(serviceName,
			otelmux.WithFilter(func(r *http.Request) bool {
				return r.URL.Path != "/health" &&
					r.URL.Path != "/api/v1/health" &&
					r.URL.Path != "/metrics"
			}),
		))
	}
}

// WithRateLimiter applies rate limiting middleware to all /api/v1 routes.
// The export cooldown is enforced in addition to this limiter, not instead
// of it.
func WithRateLimiter(middleware func(http.Handler) http.Handler) RouteOption {
	return func(rc *routeConfig) {
		rc.apiMiddleware = append(rc.apiMiddleware, mux.MiddlewareFunc(middleware))
	}
}

// SetupRoutes configures the HTTP routes for the API
func SetupRoutes(handlers *Handlers, config *models.Config, opts ...RouteOption) *mux.Router {
	rc := &routeConfig{}
	for _, opt := range opts {
		opt(rc)
	}

	router := mux.NewRouter()
	for _, mw := range rc.routerMiddleware {
		router.Use(mw)
	}

	api := router.PathPrefix("/api/v1").Subrouter()
	for _, mw := range rc.apiMiddleware {
		api.Use(mw)
	}

	api.HandleFunc("/waitlist", handlers.Submit).Methods("POST")
	api.HandleFunc("/waitlist", methodNotAllowedHandler).Methods("GET", "PUT", "DELETE", "PATCH")
	api.HandleFunc("/waitlist/count", handlers.Count).Methods("GET")
	api.HandleFunc("/waitlist/export", handlers.Export).Methods("GET")
	api.HandleFunc("/notify", handlers.Notify).Methods("POST")

	router.HandleFunc("/health", handlers.HealthCheck).Methods("GET")
	router.HandleFunc("/api/v1/health", handlers.HealthCheck).Methods("GET")

	api.PathPrefix("").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}).Methods("OPTIONS")

	if config.Server.CORS.Enabled {
		router.Use(corsMiddleware(config.Server.CORS))
	}

	router.Use(loggingMiddleware)
	router.Use(recoveryMiddleware)

	router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowedHandler)

	return router
}
