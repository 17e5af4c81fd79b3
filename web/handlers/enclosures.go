package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Joshtri/SIMTernakAyam-API-sub000/models"
	"github.com/Joshtri/SIMTernakAyam-API-sub000/repositories"
	"github.com/Joshtri/SIMTernakAyam-API-sub000/services"
)

// EnclosureHandler serves enclosure CRUD and derived stock queries.
type EnclosureHandler struct {
	enclosures *repositories.EnclosureRepository
	ledger     *services.LedgerService
	dashboard  *services.DashboardService
}

// NewEnclosureHandler creates a new enclosure handler.
func NewEnclosureHandler(enclosures *repositories.EnclosureRepository, ledger *services.LedgerService, dashboard *services.DashboardService) *EnclosureHandler {
	return &EnclosureHandler{enclosures: enclosures, ledger: ledger, dashboard: dashboard}
}

type enclosureRequest struct {
	EnclosureCode string  `json:"enclosure_code"`
	EnclosureName string  `json:"enclosure_name"`
	Capacity      int     `json:"capacity"`
	Region        *string `json:"region,omitempty"`
	CaretakerID   *uint   `json:"caretaker_id,omitempty"`
}

// List returns all enclosures.
func (h *EnclosureHandler) List(c *fiber.Ctx) error {
	enclosures, err := h.enclosures.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(enclosures)
}

// Get returns one enclosure.
func (h *EnclosureHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	enclosure, err := h.enclosures.FindByID(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(enclosure)
}

// Create registers a new enclosure.
func (h *EnclosureHandler) Create(c *fiber.Ctx) error {
	var req enclosureRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Capacity < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "capacity must not be negative")
	}
	enclosure := &models.Enclosure{
		EnclosureCode: req.EnclosureCode,
		EnclosureName: req.EnclosureName,
		Capacity:      req.Capacity,
		Region:        req.Region,
		CaretakerID:   req.CaretakerID,
	}
	if err := h.enclosures.Create(c.Context(), enclosure); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(enclosure)
}

// Update edits an enclosure. Shrinking capacity never invalidates the
// batches already housed; it only constrains future entries and
// relocations.
func (h *EnclosureHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req enclosureRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Capacity < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "capacity must not be negative")
	}
	ctx := c.Context()
	enclosure, err := h.enclosures.FindByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	enclosure.EnclosureCode = req.EnclosureCode
	enclosure.EnclosureName = req.EnclosureName
	enclosure.Capacity = req.Capacity
	enclosure.Region = req.Region
	enclosure.CaretakerID = req.CaretakerID
	if err := h.enclosures.Update(ctx, enclosure); err != nil {
		return writeError(c, err)
	}
	return c.JSON(enclosure)
}

// Live returns the derived aggregate live count of an enclosure.
func (h *EnclosureHandler) Live(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	asOf, err := queryDate(c, "as_of")
	if err != nil {
		return err
	}
	live, err := h.ledger.EnclosureLive(c.Context(), id, asOf)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"enclosure_id": id,
		"as_of":        models.DateOnly(asOf).Format(dateLayout),
		"live":         live,
	})
}

// Stats returns the death/harvest totals of an enclosure over a window.
func (h *EnclosureHandler) Stats(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	from, err := queryDate(c, "from")
	if err != nil {
		return err
	}
	to, err := queryDate(c, "to")
	if err != nil {
		return err
	}
	stats, err := h.dashboard.EnclosureStats(c.Context(), id, from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stats)
}
