package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hashtagpe-console/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health *handlers.HealthHandler
	Status *handlers.StatusHandler
}

// RegisterRoutes wires the local status routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/status", cfg.Status.Snapshot)
}
