package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Joshtri/SIMTernakAyam-API-sub000/database"
	"github.com/Joshtri/SIMTernakAyam-API-sub000/services"
)

// DashboardHandler serves read-only aggregates for the reporting layer.
type DashboardHandler struct {
	dashboard *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(dashboard *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Overview summarizes occupancy across all enclosures.
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	asOf, err := queryDate(c, "as_of")
	if err != nil {
		return err
	}
	summaries, err := h.dashboard.Overview(c.Context(), asOf)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summaries)
}

// RecentQueries exposes the captured SQL log for debugging.
func (h *DashboardHandler) RecentQueries(c *fiber.Ctx) error {
	n := c.QueryInt("n", 20)
	return c.JSON(database.SQLLogger.RecentQueries(n))
}
