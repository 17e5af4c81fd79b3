package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Joshtri/SIMTernakAyam-API-sub000/services"
)

// DepletionHandler serves death and harvest recording, both per-batch
// and aggregate per-enclosure.
type DepletionHandler struct {
	depletions *services.DepletionService
}

// NewDepletionHandler creates a new depletion handler.
func NewDepletionHandler(depletions *services.DepletionService) *DepletionHandler {
	return &DepletionHandler{depletions: depletions}
}

type deathRequest struct {
	BatchID   uint    `json:"batch_id"`
	Date      string  `json:"date"`
	TimeOfDay *string `json:"time_of_day,omitempty"`
	Quantity  int     `json:"quantity"`
	Cause     string  `json:"cause"`
}

type harvestRequest struct {
	BatchID   uint    `json:"batch_id"`
	Date      string  `json:"date"`
	Quantity  int     `json:"quantity"`
	AvgWeight float64 `json:"avg_weight"`
}

// RecordDeath records mortality against one batch.
func (h *DepletionHandler) RecordDeath(c *fiber.Ctx) error {
	var req deathRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid date, want YYYY-MM-DD")
	}
	event, err := h.depletions.RecordDeath(c.Context(), services.DeathInput{
		BatchID:   req.BatchID,
		Date:      date,
		TimeOfDay: req.TimeOfDay,
		Quantity:  req.Quantity,
		Cause:     req.Cause,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

// RecordHarvest records a harvest against one batch.
func (h *DepletionHandler) RecordHarvest(c *fiber.Ctx) error {
	var req harvestRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid date, want YYYY-MM-DD")
	}
	event, err := h.depletions.RecordHarvest(c.Context(), services.HarvestInput{
		BatchID:   req.BatchID,
		Date:      date,
		Quantity:  req.Quantity,
		AvgWeight: req.AvgWeight,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

type enclosureDeathRequest struct {
	Date      string  `json:"date"`
	TimeOfDay *string `json:"time_of_day,omitempty"`
	Quantity  int     `json:"quantity"`
	Cause     string  `json:"cause"`
}

type enclosureHarvestRequest struct {
	Date      string  `json:"date"`
	Quantity  int     `json:"quantity"`
	AvgWeight float64 `json:"avg_weight"`
}

// RecordEnclosureDeath distributes an aggregate death report across the
// enclosure's batches.
func (h *DepletionHandler) RecordEnclosureDeath(c *fiber.Ctx) error {
	enclosureID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req enclosureDeathRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid date, want YYYY-MM-DD")
	}
	events, err := h.depletions.RecordEnclosureDeath(c.Context(), services.EnclosureDeathInput{
		EnclosureID: enclosureID,
		Date:        date,
		TimeOfDay:   req.TimeOfDay,
		Quantity:    req.Quantity,
		Cause:       req.Cause,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(events)
}

// RecordEnclosureHarvest distributes an aggregate harvest report across
// the enclosure's batches.
func (h *DepletionHandler) RecordEnclosureHarvest(c *fiber.Ctx) error {
	enclosureID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req enclosureHarvestRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid date, want YYYY-MM-DD")
	}
	events, err := h.depletions.RecordEnclosureHarvest(c.Context(), services.EnclosureHarvestInput{
		EnclosureID: enclosureID,
		Date:        date,
		Quantity:    req.Quantity,
		AvgWeight:   req.AvgWeight,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(events)
}

type updateEventRequest struct {
	Date      string   `json:"date"`
	TimeOfDay *string  `json:"time_of_day,omitempty"`
	Quantity  int      `json:"quantity"`
	Cause     *string  `json:"cause,omitempty"`
	AvgWeight *float64 `json:"avg_weight,omitempty"`
}

// UpdateEvent edits a recorded death or harvest.
func (h *DepletionHandler) UpdateEvent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req updateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid date, want YYYY-MM-DD")
	}
	event, err := h.depletions.UpdateEvent(c.Context(), id, services.UpdateEventInput{
		Date:      date,
		TimeOfDay: req.TimeOfDay,
		Quantity:  req.Quantity,
		Cause:     req.Cause,
		AvgWeight: req.AvgWeight,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(event)
}

// DeleteEvent removes a recorded death or harvest.
func (h *DepletionHandler) DeleteEvent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.depletions.DeleteEvent(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
