package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Joshtri/SIMTernakAyam-API-sub000/models"
	"github.com/Joshtri/SIMTernakAyam-API-sub000/repositories"
	"github.com/Joshtri/SIMTernakAyam-API-sub000/services"
)

// BatchHandler serves batch entry and derived stock queries.
type BatchHandler struct {
	ledger *services.LedgerService
	events *repositories.StockEventRepository
}

// NewBatchHandler creates a new batch handler.
func NewBatchHandler(ledger *services.LedgerService, events *repositories.StockEventRepository) *BatchHandler {
	return &BatchHandler{ledger: ledger, events: events}
}

type enterBatchRequest struct {
	EnclosureID    uint    `json:"enclosure_id"`
	EntryDate      string  `json:"entry_date"`
	Quantity       int     `json:"quantity"`
	Leftover       bool    `json:"leftover"`
	LeftoverReason *string `json:"leftover_reason,omitempty"`
}

// Enter records a cohort entering an enclosure.
func (h *BatchHandler) Enter(c *fiber.Ctx) error {
	var req enterBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	entryDate, err := parseDate(req.EntryDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid entry_date, want YYYY-MM-DD")
	}
	batch, err := h.ledger.EnterBatch(c.Context(), services.EnterBatchInput{
		EnclosureID:    req.EnclosureID,
		EntryDate:      entryDate,
		Quantity:       req.Quantity,
		Leftover:       req.Leftover,
		LeftoverReason: req.LeftoverReason,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(batch)
}

// Live returns a batch's derived live count.
func (h *BatchHandler) Live(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	asOf, err := queryDate(c, "as_of")
	if err != nil {
		return err
	}
	live, err := h.ledger.LiveCount(c.Context(), id, asOf)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"batch_id": id,
		"as_of":    models.DateOnly(asOf).Format(dateLayout),
		"live":     live,
	})
}

// Events lists a batch's depletion ledger.
func (h *BatchHandler) Events(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	events, err := h.events.ListByBatch(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(events)
}
