package handlers

import (
	"github.com/gofiber/fiber/v3"

	"relieflink/internal/db"
	"relieflink/internal/models"
)

// HealthHandler reports service and store reachability.
type HealthHandler struct {
	db *db.DB
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(database *db.DB) *HealthHandler {
	return &HealthHandler{db: database}
}

// Check pings the store on demand. A failed ping degrades the status and
// returns 503 so load balancers can pull the instance.
func (h *HealthHandler) Check(c fiber.Ctx) error {
	health := models.HealthResponse{
		Status:   "ok",
		Database: "connected",
	}

	if err := h.db.Ping(c.Context()); err != nil {
		health.Status = "degraded"
		health.Database = "disconnected"
		return c.Status(fiber.StatusServiceUnavailable).JSON(health)
	}

	return c.JSON(health)
}
