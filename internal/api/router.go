package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ndewijer/Sun-Circumference-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Sun-Circumference-Backend/internal/api/middleware"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/auth"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/config"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(piService *service.PiService, systemService *service.SystemService, gate auth.Gate, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		circumferenceHandler := handlers.NewCircumferenceHandler(piService, gate, cfg.Server.IsProduction())
		r.Get("/circumference", circumferenceHandler.Circumference)

		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService, piService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})
	})

	return r
}
