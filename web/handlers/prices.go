package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Joshtri/SIMTernakAyam-API-sub000/services"
)

// PriceHandler serves the effective-dated price table.
type PriceHandler struct {
	prices *services.PriceService
}

// NewPriceHandler creates a new price handler.
func NewPriceHandler(prices *services.PriceService) *PriceHandler {
	return &PriceHandler{prices: prices}
}

type addPriceRequest struct {
	PricePerHead float64 `json:"price_per_head"`
	PricePerKg   float64 `json:"price_per_kg"`
	StartDate    string  `json:"start_date"`
	EndDate      *string `json:"end_date,omitempty"`
	Region       *string `json:"region,omitempty"`
	Active       bool    `json:"active"`
}

// Add creates a price entry.
func (h *PriceHandler) Add(c *fiber.Ctx) error {
	var req addPriceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid start_date, want YYYY-MM-DD")
	}
	in := services.AddPriceInput{
		PricePerHead: req.PricePerHead,
		PricePerKg:   req.PricePerKg,
		StartDate:    start,
		Region:       req.Region,
		Active:       req.Active,
	}
	if req.EndDate != nil {
		end, err := parseDate(*req.EndDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid end_date, want YYYY-MM-DD")
		}
		in.EndDate = &end
	}
	entry, err := h.prices.AddPrice(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// Activate re-activates a price entry.
func (h *PriceHandler) Activate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	entry, err := h.prices.Activate(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(entry)
}

// Deactivate retires a price entry.
func (h *PriceHandler) Deactivate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	entry, err := h.prices.Deactivate(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(entry)
}

// Resolve returns the price active on a date for a region. A miss is a
// 200 with a null entry, not an error.
func (h *PriceHandler) Resolve(c *fiber.Ctx) error {
	date, err := queryDate(c, "date")
	if err != nil {
		return err
	}
	entry, err := h.prices.Resolve(c.Context(), date, c.Query("region"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"price": entry})
}
