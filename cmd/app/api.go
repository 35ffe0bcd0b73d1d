package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"newsboard/internal/config"
	handlers "newsboard/internal/handler"
	"newsboard/internal/metrics"
	"newsboard/internal/middleware"
	"newsboard/internal/service"
)

// APIHandler builds the Content API router with its middleware stack.
// health may be nil for the memory store.
func APIHandler(cfg *config.Config, services *service.Service, health handlers.HealthChecker, log logrus.FieldLogger) http.Handler {
	m := metrics.New()
	handler := handlers.NewHandlers(services, health, m, log)

	router := handlers.NewRouter(handler)
	router.Use(
		mux.MiddlewareFunc(middleware.LoggingMiddleware(log)),
		mux.MiddlewareFunc(middleware.MetricsMiddleware(m)),
		middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst).Handler,
	)

	return middleware.Chain(router, middleware.CORSMiddleware)
}
