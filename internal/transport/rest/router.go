package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/widyatama/shift-management/internal/auth"
	"github.com/widyatama/shift-management/internal/company"
	"github.com/widyatama/shift-management/internal/shift"
	"github.com/widyatama/shift-management/internal/transport/middleware"
	"github.com/widyatama/shift-management/internal/transport/swagger"
	"github.com/widyatama/shift-management/internal/user"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, redisClient *redis.Client, authHandler *auth.Handler, shiftHandler *shift.Handler, userHandler *user.Handler, companyHandler *company.Handler, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db, redisClient)

	// Apply global middleware
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		if authHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/register", authHandler.Register)
				sr.Post("/login", authHandler.Login)
				sr.Post("/logout", authHandler.Logout)
			})
		}

		// Public companies route (no auth required)
		if companyHandler != nil {
			r.Get("/companies", companyHandler.ListCompanies)
		}

		// Public shift browsing (no auth required)
		if shiftHandler != nil {
			r.Get("/shifts", shiftHandler.ListAvailable)     // GET /shifts
			r.Get("/shifts/{id}", shiftHandler.GetShift)     // GET /shifts/:id
		}

		if authHandler != nil {
			// Protected routes that require authentication
			r.Group(func(pr chi.Router) {
				pr.Use(authHandler.AuthMiddleware)

				if shiftHandler != nil {
					pr.Get("/shifts/user-shifts", shiftHandler.UserShifts)  // GET /shifts/user-shifts
					pr.Post("/shifts/{id}/apply", shiftHandler.Apply)       // POST /shifts/:id/apply
					pr.Post("/shifts/{id}/withdraw", shiftHandler.Withdraw) // POST /shifts/:id/withdraw
				}

				if userHandler != nil {
					pr.Get("/users/me", userHandler.Me)           // GET /users/me
					pr.Get("/users/{id}", userHandler.GetProfile) // GET /users/:id
				}
			})
		}
	})
}
