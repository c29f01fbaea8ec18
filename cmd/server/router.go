package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/courseforge/courseforge-api/internal/api"
	apiMiddleware "github.com/courseforge/courseforge-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userStore, app.jwtService, app.passwordVerifier)
	courseHandler := api.NewCourseHandler(app.courseService, app.logger)
	usageHandler := api.NewUsageHandler(app.usageStore)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	rateLimiter := apiMiddleware.NewRateLimitMiddleware(app.limiter)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.Refresh)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/auth/me", authHandler.Me)

			// Generation is rate limited per user
			r.Group(func(r chi.Router) {
				r.Use(rateLimiter.Limit)
				r.Post("/courses/generate", courseHandler.Generate)
			})

			r.Get("/courses", courseHandler.List)
			r.Get("/courses/{id}", courseHandler.Get)
			r.Put("/courses/{id}", courseHandler.Update)
			r.Delete("/courses/{id}", courseHandler.Delete)
			r.Post("/courses/{id}/export", courseHandler.Export)

			r.Get("/usage", usageHandler.List)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
