package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsKind_SeesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("recording death: %w", InsufficientStock(7, 12, 5))

	assert.True(t, IsKind(err, KindInsufficientStock))
	assert.False(t, IsKind(err, KindCapacityExceeded))
	assert.Equal(t, KindInsufficientStock, KindOf(err))
}

func TestKindOf_NonDomainError(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(errors.New("disk on fire")))
	assert.False(t, IsKind(nil, KindInvalidQuantity))
}

func TestMessages_NameTheNumbers(t *testing.T) {
	err := InsufficientStock(3, 20, 12)
	assert.Contains(t, err.Error(), "3")
	assert.Contains(t, err.Error(), "20")
	assert.Contains(t, err.Error(), "12")

	assert.Contains(t, OverlappingPeriod(9, "").Error(), "global")
	assert.Contains(t, OverlappingPeriod(9, "east").Error(), "east")
}
