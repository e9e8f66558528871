package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/stridelab/stride-api/app"
)

// SetupRoutes configures all application routes and middleware.
// Stage order on mutation routes is fixed: admission runs before identity so
// denied requests never cost a directory lookup, and identity (with standing)
// runs before any payload inspection.
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Retry-After", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoints
	r.Get("/healthz", deps.HealthHandler.HandleHealth)
	r.Get("/readyz", deps.HealthHandler.HandleReadiness)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/profiles", func(r chi.Router) {
			r.Get("/{id}", deps.ProfileHandler.HandleGetProfile)

			r.Group(func(r chi.Router) {
				r.Use(deps.AdmissionMiddleware.Limit("profile_update"))
				r.Use(deps.IdentityMiddleware.RequireActor)
				r.Patch("/{id}", deps.ProfileHandler.HandleUpdateProfile)
			})
		})

		r.Route("/users/{id}/follow", func(r chi.Router) {
			r.Use(deps.AdmissionMiddleware.Limit("follow"))
			r.Use(deps.IdentityMiddleware.RequireActor)
			r.Post("/", deps.FollowHandler.HandleCreateFollow)
			r.Delete("/", deps.FollowHandler.HandleDeleteFollow)
		})

		r.Route("/chat", func(r chi.Router) {
			r.Use(deps.AdmissionMiddleware.Limit("chat"))
			r.Use(deps.IdentityMiddleware.RequireActor)
			r.Post("/messages", deps.ChatHandler.HandleSendMessage)
		})
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"endpoint not found"}`))
	})

	return r
}
