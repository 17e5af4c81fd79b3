// Package handlers exposes the ledger services as a JSON API. Handlers
// only parse requests and translate domain error kinds into HTTP
// statuses; all validation lives in the services.
package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Joshtri/SIMTernakAyam-API-sub000/apperrors"
)

const dateLayout = "2006-01-02"

// statusForKind maps a domain error kind to its HTTP status.
func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindEntityNotFound:
		return fiber.StatusNotFound
	case apperrors.KindInvalidQuantity,
		apperrors.KindFutureDate,
		apperrors.KindDateBeforeEntry,
		apperrors.KindInvalidRelocation,
		apperrors.KindInvalidPeriod:
		return fiber.StatusBadRequest
	case apperrors.KindCapacityExceeded,
		apperrors.KindInsufficientStock,
		apperrors.KindInsufficientAggregateStock,
		apperrors.KindOverlappingPeriod,
		apperrors.KindAlreadyCancelled:
		return fiber.StatusConflict
	case apperrors.KindNoActivePriceFound:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError renders a service failure. Domain errors carry their kind;
// anything else is an infrastructure fault surfaced as a 500.
func writeError(c *fiber.Ctx, err error) error {
	var domainErr *apperrors.Error
	if errors.As(err, &domainErr) {
		return c.Status(statusForKind(domainErr.Kind)).JSON(fiber.Map{
			"error": domainErr.Message,
			"kind":  domainErr.Kind,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal server error",
	})
}

// parseDate reads a YYYY-MM-DD value, accepting RFC3339 as a fallback.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// queryDate reads an optional date query parameter, defaulting to now.
func queryDate(c *fiber.Ctx, name string) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return time.Now(), nil
	}
	t, err := parseDate(raw)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "invalid "+name+" date, want YYYY-MM-DD")
	}
	return t, nil
}

// paramID reads a positive integer path parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}
