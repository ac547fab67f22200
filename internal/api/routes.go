package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/thai-calendar-api/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET    /health
//	GET    /metrics
//	GET    /api/v1/convert/today
//	GET    /api/v1/convert/{date}          ?time=HH:MM&lang=th|en
//	GET    /api/v1/range                   ?start=&end=&time=
//	GET    /api/v1/holydays/{year}         JSON, or iCalendar with a .ics suffix
//	POST   /api/v1/births                  X-API-Key
//	GET    /api/v1/births                  X-API-Key
//	GET    /api/v1/births/{id}             X-API-Key
//	DELETE /api/v1/births/{id}             X-API-Key
func SetupRoutes(h *Handlers, limiter *RateLimiter, cfg *config.Config, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		RecoveryMiddleware(log),
		RequestIDMiddleware(),
		LoggingMiddleware(log),
		CORSMiddleware(),
		h.metrics.Middleware,
	)

	r.Get("/health", h.HealthCheck)
	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(limiter.Middleware)

		r.Get("/convert/today", h.ConvertToday)
		r.Get("/convert/{date}", h.ConvertDate)
		r.Get("/range", h.ConvertRange)
		r.Get("/holydays/{year}", h.HolyDays)

		r.Route("/births", func(r chi.Router) {
			r.Use(AuthMiddleware(cfg, log))

			r.Post("/", h.CreateBirth)
			r.Get("/", h.ListBirths)
			r.Get("/{id}", h.GetBirth)
			r.Delete("/{id}", h.DeleteBirth)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", "METHOD_NOT_ALLOWED")
	})

	return r
}
