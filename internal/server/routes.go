package server

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"relieflink/internal/db"
	"relieflink/internal/handlers"
	"relieflink/internal/middleware"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, database *db.DB) error {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(s.Cfg)
	requestHandler := handlers.NewRequestHandler(database)
	responseHandler := handlers.NewResponseHandler(database)
	publicHandler := handlers.NewPublicHandler(database)
	healthHandler := handlers.NewHealthHandler(database)

	// Tighter rate limit on the login endpoint to slow brute forcing.
	loginLimiter := limiter.New(limiter.Config{
		Max:        5,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"status": "error",
				"error":  "too many login attempts, try again later",
			})
		},
	})

	// Auth routes
	s.App.Post("/api/auth/login", authHandler.Login, loginLimiter)
	s.App.Post("/api/auth/logout", authHandler.Logout)
	s.App.Get("/api/auth/status", authHandler.Status)

	// OIDC routes - only wired when an issuer is configured
	if s.Cfg.OIDCIssuer != "" {
		oidcHandler, err := handlers.NewOIDCHandler(ctx, s.Cfg)
		if err != nil {
			return err
		}
		s.App.Get("/auth/login", oidcHandler.Login)
		s.App.Get("/auth/callback", oidcHandler.Callback)
		s.App.Get("/auth/logout", oidcHandler.Logout)
	} else {
		log.Println("OIDC authentication is disabled. Set OIDC_ISSUER to enable.")
	}

	// Admin routes
	s.App.Get("/api/requests", requestHandler.List, middleware.RequireAdmin)
	s.App.Post("/api/requests", requestHandler.Create, middleware.RequireAdmin)
	s.App.Get("/api/requests/:id", requestHandler.Get, middleware.RequireAdmin)
	s.App.Put("/api/requests/:id", requestHandler.Update, middleware.RequireAdmin)
	s.App.Delete("/api/requests/:id", requestHandler.Delete, middleware.RequireAdmin)
	s.App.Get("/api/requests/:id/activity", requestHandler.Activity, middleware.RequireAdmin)
	s.App.Post("/api/responses/:id/accept", responseHandler.Accept, middleware.RequireAdmin)
	s.App.Post("/api/responses/:id/unaccept", responseHandler.Unaccept, middleware.RequireAdmin)

	// Public routes
	s.App.Get("/api/public/requests", publicHandler.ListRequests)
	s.App.Get("/api/public/requests/:id", publicHandler.GetRequest)
	s.App.Post("/api/public/requests/:id/responses", publicHandler.SubmitResponse)

	// Operational routes
	s.App.Get("/health", healthHandler.Check)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return nil
}
