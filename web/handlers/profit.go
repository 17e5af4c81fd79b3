package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Joshtri/SIMTernakAyam-API-sub000/services"
)

// ProfitHandler serves per-harvest profitability reports.
type ProfitHandler struct {
	profit *services.ProfitService
}

// NewProfitHandler creates a new profit handler.
func NewProfitHandler(profit *services.ProfitService) *ProfitHandler {
	return &ProfitHandler{profit: profit}
}

// Compute builds the profit report for a harvest event. Pass
// ?mode=best_effort to fall back to the most recent historical price
// when none is active on the harvest date.
func (h *ProfitHandler) Compute(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	bestEffort := c.Query("mode") == "best_effort"
	report, err := h.profit.ComputeProfit(c.Context(), id, bestEffort)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report)
}
