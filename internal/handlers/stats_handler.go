package handlers

import (
	"ivr/internal/services"

	"github.com/gofiber/fiber/v2"
)

// StatsHandler serves the admin dashboard summary.
type StatsHandler struct {
	service *services.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(service *services.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// RegisterRoutes registers the stats routes with the Fiber app.
func (h *StatsHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/admin-stats", h.HandleAdminStats)
}

// HandleAdminStats returns user and order counts and the sum of all order totals.
func (h *StatsHandler) HandleAdminStats(c *fiber.Ctx) error {
	stats, err := h.service.AdminStats(c.UserContext())
	if err != nil {
		return internalError(c, err, "Failed to fetch admin stats")
	}
	return c.JSON(stats)
}
