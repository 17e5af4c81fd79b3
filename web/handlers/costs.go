package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Joshtri/SIMTernakAyam-API-sub000/models"
	"github.com/Joshtri/SIMTernakAyam-API-sub000/repositories"
)

// CostHandler serves cost entry CRUD.
type CostHandler struct {
	costs *repositories.CostRepository
}

// NewCostHandler creates a new cost handler.
func NewCostHandler(costs *repositories.CostRepository) *CostHandler {
	return &CostHandler{costs: costs}
}

type costRequest struct {
	Label        string  `json:"label"`
	Amount       float64 `json:"amount"`
	RecordedDate string  `json:"recorded_date"`
	EnclosureID  *uint   `json:"enclosure_id,omitempty"`
}

// List returns all cost entries.
func (h *CostHandler) List(c *fiber.Ctx) error {
	costs, err := h.costs.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(costs)
}

// Create records a cost. Omitting enclosure_id marks the cost as shared,
// prorated across enclosures during profit calculation.
func (h *CostHandler) Create(c *fiber.Ctx) error {
	var req costRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Amount < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "amount must not be negative")
	}
	date, err := parseDate(req.RecordedDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid recorded_date, want YYYY-MM-DD")
	}
	cost := &models.CostEntry{
		Label:        req.Label,
		Amount:       req.Amount,
		RecordedDate: models.DateOnly(date),
		EnclosureID:  req.EnclosureID,
	}
	if err := h.costs.Create(c.Context(), cost); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cost)
}
