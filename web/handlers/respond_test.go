package handlers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joshtri/SIMTernakAyam-API-sub000/apperrors"
)

func TestStatusForKind(t *testing.T) {
	cases := []struct {
		kind apperrors.Kind
		want int
	}{
		{apperrors.KindEntityNotFound, fiber.StatusNotFound},
		{apperrors.KindInvalidQuantity, fiber.StatusBadRequest},
		{apperrors.KindFutureDate, fiber.StatusBadRequest},
		{apperrors.KindDateBeforeEntry, fiber.StatusBadRequest},
		{apperrors.KindInvalidRelocation, fiber.StatusBadRequest},
		{apperrors.KindInvalidPeriod, fiber.StatusBadRequest},
		{apperrors.KindCapacityExceeded, fiber.StatusConflict},
		{apperrors.KindInsufficientStock, fiber.StatusConflict},
		{apperrors.KindInsufficientAggregateStock, fiber.StatusConflict},
		{apperrors.KindOverlappingPeriod, fiber.StatusConflict},
		{apperrors.KindAlreadyCancelled, fiber.StatusConflict},
		{apperrors.KindNoActivePriceFound, fiber.StatusUnprocessableEntity},
		{apperrors.Kind("who_knows"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusForKind(tc.kind), string(tc.kind))
	}
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, 15, d.Day())

	d, err = parseDate("2026-03-15T08:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 15, d.Day())

	_, err = parseDate("15/03/2026")
	assert.Error(t, err)
}
