package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/upb/campaign-studio/app"
	"github.com/upb/campaign-studio/utils"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		// Health endpoints
		r.Get("/health", deps.HealthHandler.HandleHealth)
		r.Get("/health/ready", deps.HealthHandler.HandleReadiness)

		// Authentication
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", deps.AuthHandler.HandleRegister)
			r.Post("/login", deps.AuthHandler.HandleLogin)

			r.Group(func(r chi.Router) {
				r.Use(deps.AuthMiddleware.RequireAuth)
				r.Get("/user", deps.AuthHandler.HandleCurrentUser)
			})
		})

		// Campaign management (requires authentication)
		r.Route("/campaigns", func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireAuth)
			r.Post("/generate", deps.CampaignHandler.HandleGenerate)
			r.Get("/list", deps.CampaignHandler.HandleList)
			r.Post("/regenerate/{id}", deps.CampaignHandler.HandleRegenerate)
			r.Get("/{id}", deps.CampaignHandler.HandleGet)
			r.Put("/{id}", deps.CampaignHandler.HandleUpdate)
			r.Delete("/{id}", deps.CampaignHandler.HandleDelete)
		})

		// News discovery (requires authentication)
		r.Route("/news", func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireAuth)
			r.Get("/trending", deps.NewsHandler.HandleTrending)
			r.Get("/topics", deps.NewsHandler.HandleTopics)
		})
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteNotFound(w, "Endpoint not found")
	})

	return r
}
