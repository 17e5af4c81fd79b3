package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joshtri/SIMTernakAyam-API-sub000/apperrors"
)

func TestDistribute_NewestFirst(t *testing.T) {
	batches := []BatchStock{
		{BatchID: 1, EntryDate: date(2026, time.March, 1), Live: 50},
		{BatchID: 2, EntryDate: date(2026, time.March, 20), Live: 30},
		{BatchID: 3, EntryDate: date(2026, time.March, 10), Live: 40},
	}

	allocations, err := Distribute(batches, 60)
	require.NoError(t, err)

	// Newest batch drained first, then the next newest up to the total.
	require.Len(t, allocations, 2)
	assert.Equal(t, Allocation{BatchID: 2, Quantity: 30}, allocations[0])
	assert.Equal(t, Allocation{BatchID: 3, Quantity: 30}, allocations[1])
}

func TestDistribute_LeftoverAfterFreshAtEqualDate(t *testing.T) {
	entry := date(2026, time.March, 15)
	batches := []BatchStock{
		{BatchID: 1, EntryDate: entry, Leftover: true, Live: 20},
		{BatchID: 2, EntryDate: entry, Leftover: false, Live: 20},
	}

	allocations, err := Distribute(batches, 25)
	require.NoError(t, err)

	require.Len(t, allocations, 2)
	assert.Equal(t, Allocation{BatchID: 2, Quantity: 20}, allocations[0])
	assert.Equal(t, Allocation{BatchID: 1, Quantity: 5}, allocations[1])
}

func TestDistribute_BatchIDBreaksRemainingTies(t *testing.T) {
	entry := date(2026, time.March, 15)
	batches := []BatchStock{
		{BatchID: 7, EntryDate: entry, Live: 10},
		{BatchID: 3, EntryDate: entry, Live: 10},
	}

	allocations, err := Distribute(batches, 5)
	require.NoError(t, err)

	require.Len(t, allocations, 1)
	assert.Equal(t, uint(3), allocations[0].BatchID)
}

func TestDistribute_SkipsEmptyBatches(t *testing.T) {
	batches := []BatchStock{
		{BatchID: 1, EntryDate: date(2026, time.March, 20), Live: 0},
		{BatchID: 2, EntryDate: date(2026, time.March, 1), Live: 15},
	}

	allocations, err := Distribute(batches, 10)
	require.NoError(t, err)

	require.Len(t, allocations, 1)
	assert.Equal(t, Allocation{BatchID: 2, Quantity: 10}, allocations[0])
}

func TestDistribute_ExactDrain(t *testing.T) {
	batches := []BatchStock{
		{BatchID: 1, EntryDate: date(2026, time.March, 1), Live: 10},
		{BatchID: 2, EntryDate: date(2026, time.March, 5), Live: 10},
	}

	allocations, err := Distribute(batches, 20)
	require.NoError(t, err)

	total := 0
	for _, a := range allocations {
		total += a.Quantity
	}
	assert.Equal(t, 20, total)
}

func TestDistribute_InsufficientAggregateStock(t *testing.T) {
	batches := []BatchStock{
		{BatchID: 1, EntryDate: date(2026, time.March, 1), Live: 10},
		{BatchID: 2, EntryDate: date(2026, time.March, 5), Live: 5},
	}

	allocations, err := Distribute(batches, 16)
	assert.Nil(t, allocations)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInsufficientAggregateStock))
}

func TestDistribute_RejectsNonPositiveTotal(t *testing.T) {
	batches := []BatchStock{
		{BatchID: 1, EntryDate: date(2026, time.March, 1), Live: 10},
	}

	_, err := Distribute(batches, 0)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidQuantity))

	_, err = Distribute(batches, -3)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidQuantity))
}

func TestDistribute_DoesNotMutateInput(t *testing.T) {
	batches := []BatchStock{
		{BatchID: 1, EntryDate: date(2026, time.March, 1), Live: 10},
		{BatchID: 2, EntryDate: date(2026, time.March, 5), Live: 10},
	}

	_, err := Distribute(batches, 15)
	require.NoError(t, err)

	assert.Equal(t, uint(1), batches[0].BatchID)
	assert.Equal(t, uint(2), batches[1].BatchID)
}
