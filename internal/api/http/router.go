package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lifeexplorer230/mafclubscore-sub001/internal/api/http/handlers"
	"github.com/lifeexplorer230/mafclubscore-sub001/internal/auth"
	"github.com/lifeexplorer230/mafclubscore-sub001/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Session        *handlers.SessionHandler
	Audit          *handlers.AuditHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)
	app.Post("/auth/logout", cfg.Auth.Logout)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)
	api.Get("/session", cfg.Session.Current)
	api.Get("/audit", auth.RequireRole(domain.RoleAdmin, domain.RoleModerator), cfg.Audit.Recent)
}
