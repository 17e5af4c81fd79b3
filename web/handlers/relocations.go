package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Joshtri/SIMTernakAyam-API-sub000/repositories"
	"github.com/Joshtri/SIMTernakAyam-API-sub000/services"
)

// RelocationHandler serves relocation execution and cancellation.
type RelocationHandler struct {
	relocations *services.RelocationService
	store       *repositories.RelocationRepository
}

// NewRelocationHandler creates a new relocation handler.
func NewRelocationHandler(relocations *services.RelocationService, store *repositories.RelocationRepository) *RelocationHandler {
	return &RelocationHandler{relocations: relocations, store: store}
}

type relocateRequest struct {
	SourceEnclosureID uint    `json:"source_enclosure_id"`
	DestEnclosureID   uint    `json:"dest_enclosure_id"`
	SourceBatchID     uint    `json:"source_batch_id"`
	Quantity          int     `json:"quantity"`
	Date              string  `json:"date"`
	Reason            string  `json:"reason"`
	Note              *string `json:"note,omitempty"`
	OperatorID        uint    `json:"operator_id"`
}

// List returns all relocations, newest first.
func (h *RelocationHandler) List(c *fiber.Ctx) error {
	relocations, err := h.store.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(relocations)
}

// Relocate moves animals from a source batch into a new batch in
// another enclosure.
func (h *RelocationHandler) Relocate(c *fiber.Ctx) error {
	var req relocateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid date, want YYYY-MM-DD")
	}
	relocation, err := h.relocations.Relocate(c.Context(), services.RelocateInput{
		SourceEnclosureID: req.SourceEnclosureID,
		DestEnclosureID:   req.DestEnclosureID,
		SourceBatchID:     req.SourceBatchID,
		Quantity:          req.Quantity,
		Date:              date,
		Reason:            req.Reason,
		Note:              req.Note,
		OperatorID:        req.OperatorID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(relocation)
}

// Cancel flips a relocation to cancelled. Stock is not restored; the
// response body repeats that so API consumers cannot miss it.
func (h *RelocationHandler) Cancel(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	relocation, err := h.relocations.Cancel(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"relocation": relocation,
		"warning":    "cancellation does not restore source stock or remove the destination batch; record a counter-relocation to undo the move",
	})
}
