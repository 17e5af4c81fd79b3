package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joshtri/SIMTernakAyam-API-sub000/apperrors"
	"github.com/Joshtri/SIMTernakAyam-API-sub000/models"
)

func TestRelocate_MovesStockAtomically(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRelocationService(db, nil)
	svc.now = fixedClock(date(2026, time.April, 1))
	ledger := NewLedgerService(db, nil)
	operator := createUser(t, db, "pak-budi")
	source := createEnclosure(t, db, "KD-001", 1000, nil)
	dest := createEnclosure(t, db, "KD-002", 500, nil)
	batch := createBatch(t, db, source.EnclosureID, date(2026, time.March, 1), 200, false)

	relocation, err := svc.Relocate(context.Background(), RelocateInput{
		SourceEnclosureID: source.EnclosureID,
		DestEnclosureID:   dest.EnclosureID,
		SourceBatchID:     batch.BatchID,
		Quantity:          80,
		Date:              date(2026, time.March, 15),
		Reason:            "thinning",
		OperatorID:        operator.UserID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RelocationCompleted, relocation.Status)
	assert.NotEmpty(t, relocation.RelocationCode)
	assert.NotZero(t, relocation.DestBatchID)

	// Source drops by the moved quantity.
	sourceLive, err := ledger.LiveCount(context.Background(), batch.BatchID, date(2026, time.March, 15))
	require.NoError(t, err)
	assert.Equal(t, 120, sourceLive)

	// Destination gained a fresh batch with the relocation's date and quantity.
	destLive, err := ledger.LiveCount(context.Background(), relocation.DestBatchID, date(2026, time.March, 15))
	require.NoError(t, err)
	assert.Equal(t, 80, destLive)

	var destBatch models.Batch
	require.NoError(t, db.First(&destBatch, "batch_id = ?", relocation.DestBatchID).Error)
	assert.Equal(t, dest.EnclosureID, destBatch.EnclosureID)
	assert.Equal(t, models.DateOnly(date(2026, time.March, 15)), models.DateOnly(destBatch.EntryDate))
	assert.False(t, destBatch.Leftover)

	// Before the relocation date neither side has moved.
	sourceLive, err = ledger.LiveCount(context.Background(), batch.BatchID, date(2026, time.March, 14))
	require.NoError(t, err)
	assert.Equal(t, 200, sourceLive)
}

func TestRelocate_RollsBackOnCapacityFailure(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRelocationService(db, nil)
	svc.now = fixedClock(date(2026, time.April, 1))
	operator := createUser(t, db, "pak-budi")
	source := createEnclosure(t, db, "KD-001", 1000, nil)
	dest := createEnclosure(t, db, "KD-002", 50, nil)
	batch := createBatch(t, db, source.EnclosureID, date(2026, time.March, 1), 200, false)
	createBatch(t, db, dest.EnclosureID, date(2026, time.March, 1), 30, false)

	_, err := svc.Relocate(context.Background(), RelocateInput{
		SourceEnclosureID: source.EnclosureID,
		DestEnclosureID:   dest.EnclosureID,
		SourceBatchID:     batch.BatchID,
		Quantity:          21,
		Date:              date(2026, time.March, 15),
		Reason:            "thinning",
		OperatorID:        operator.UserID,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindCapacityExceeded))

	// The failed relocation left no trace: no deduction, no new batch,
	// no relocation row.
	var eventCount, relocationCount, batchCount int64
	require.NoError(t, db.Model(&models.StockEvent{}).Count(&eventCount).Error)
	require.NoError(t, db.Model(&models.Relocation{}).Count(&relocationCount).Error)
	require.NoError(t, db.Model(&models.Batch{}).Count(&batchCount).Error)
	assert.Zero(t, eventCount)
	assert.Zero(t, relocationCount)
	assert.Equal(t, int64(2), batchCount)
}

func TestRelocate_RejectsSameEnclosure(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRelocationService(db, nil)
	svc.now = fixedClock(date(2026, time.April, 1))

	_, err := svc.Relocate(context.Background(), RelocateInput{
		SourceEnclosureID: 1,
		DestEnclosureID:   1,
		SourceBatchID:     1,
		Quantity:          10,
		Date:              date(2026, time.March, 15),
		Reason:            "thinning",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidRelocation))
}

func TestRelocate_RejectsForeignBatch(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRelocationService(db, nil)
	svc.now = fixedClock(date(2026, time.April, 1))
	operator := createUser(t, db, "pak-budi")
	source := createEnclosure(t, db, "KD-001", 1000, nil)
	dest := createEnclosure(t, db, "KD-002", 500, nil)
	other := createEnclosure(t, db, "KD-003", 500, nil)
	batch := createBatch(t, db, other.EnclosureID, date(2026, time.March, 1), 100, false)

	_, err := svc.Relocate(context.Background(), RelocateInput{
		SourceEnclosureID: source.EnclosureID,
		DestEnclosureID:   dest.EnclosureID,
		SourceBatchID:     batch.BatchID,
		Quantity:          10,
		Date:              date(2026, time.March, 15),
		Reason:            "thinning",
		OperatorID:        operator.UserID,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidRelocation))
}

func TestRelocate_RejectsOverdraw(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRelocationService(db, nil)
	svc.now = fixedClock(date(2026, time.April, 1))
	operator := createUser(t, db, "pak-budi")
	source := createEnclosure(t, db, "KD-001", 1000, nil)
	dest := createEnclosure(t, db, "KD-002", 500, nil)
	batch := createBatch(t, db, source.EnclosureID, date(2026, time.March, 1), 50, false)

	_, err := svc.Relocate(context.Background(), RelocateInput{
		SourceEnclosureID: source.EnclosureID,
		DestEnclosureID:   dest.EnclosureID,
		SourceBatchID:     batch.BatchID,
		Quantity:          51,
		Date:              date(2026, time.March, 15),
		Reason:            "thinning",
		OperatorID:        operator.UserID,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindInsufficientStock))
}

func TestRelocate_BackdatedChecksDestHistoricalOccupancy(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRelocationService(db, nil)
	svc.now = fixedClock(date(2026, time.April, 1))
	depletions := NewDepletionService(db, nil)
	operator := createUser(t, db, "pak-budi")
	source := createEnclosure(t, db, "KD-001", 1000, nil)
	dest := createEnclosure(t, db, "KD-002", 100, nil)
	batch := createBatch(t, db, source.EnclosureID, date(2026, time.March, 1), 200, false)
	occupant := createBatch(t, db, dest.EnclosureID, date(2026, time.March, 1), 100, false)

	_, err := depletions.RecordHarvest(context.Background(), HarvestInput{
		BatchID:   occupant.BatchID,
		Date:      date(2026, time.March, 10),
		Quantity:  100,
		AvgWeight: 1.8,
	})
	require.NoError(t, err)

	// The destination is empty today, but on March 5 its previous batch
	// was still in place. A backdated relocation may not overlap it.
	_, err = svc.Relocate(context.Background(), RelocateInput{
		SourceEnclosureID: source.EnclosureID,
		DestEnclosureID:   dest.EnclosureID,
		SourceBatchID:     batch.BatchID,
		Quantity:          50,
		Date:              date(2026, time.March, 5),
		Reason:            "thinning",
		OperatorID:        operator.UserID,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindCapacityExceeded))

	// From the harvest date onward the move fits.
	_, err = svc.Relocate(context.Background(), RelocateInput{
		SourceEnclosureID: source.EnclosureID,
		DestEnclosureID:   dest.EnclosureID,
		SourceBatchID:     batch.BatchID,
		Quantity:          50,
		Date:              date(2026, time.March, 10),
		Reason:            "thinning",
		OperatorID:        operator.UserID,
	})
	require.NoError(t, err)
}

func TestCancel_DoesNotCompensate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRelocationService(db, nil)
	svc.now = fixedClock(date(2026, time.April, 1))
	ledger := NewLedgerService(db, nil)
	operator := createUser(t, db, "pak-budi")
	source := createEnclosure(t, db, "KD-001", 1000, nil)
	dest := createEnclosure(t, db, "KD-002", 500, nil)
	batch := createBatch(t, db, source.EnclosureID, date(2026, time.March, 1), 200, false)

	relocation, err := svc.Relocate(context.Background(), RelocateInput{
		SourceEnclosureID: source.EnclosureID,
		DestEnclosureID:   dest.EnclosureID,
		SourceBatchID:     batch.BatchID,
		Quantity:          80,
		Date:              date(2026, time.March, 15),
		Reason:            "thinning",
		OperatorID:        operator.UserID,
	})
	require.NoError(t, err)

	cancelled, err := svc.Cancel(context.Background(), relocation.RelocationID)
	require.NoError(t, err)
	assert.Equal(t, models.RelocationCancelled, cancelled.Status)

	// Cancelling is a status flip only: the ledger still shows the move.
	sourceLive, err := ledger.LiveCount(context.Background(), batch.BatchID, date(2026, time.March, 20))
	require.NoError(t, err)
	assert.Equal(t, 120, sourceLive)

	destLive, err := ledger.LiveCount(context.Background(), relocation.DestBatchID, date(2026, time.March, 20))
	require.NoError(t, err)
	assert.Equal(t, 80, destLive)

	// Cancelling twice fails.
	_, err = svc.Cancel(context.Background(), relocation.RelocationID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAlreadyCancelled))
}

func TestRelocate_RoundTripLeavesCountsConsistent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRelocationService(db, nil)
	svc.now = fixedClock(date(2026, time.April, 1))
	ledger := NewLedgerService(db, nil)
	operator := createUser(t, db, "pak-budi")
	a := createEnclosure(t, db, "KD-001", 1000, nil)
	b := createEnclosure(t, db, "KD-002", 1000, nil)
	batch := createBatch(t, db, a.EnclosureID, date(2026, time.March, 1), 100, false)

	out, err := svc.Relocate(context.Background(), RelocateInput{
		SourceEnclosureID: a.EnclosureID,
		DestEnclosureID:   b.EnclosureID,
		SourceBatchID:     batch.BatchID,
		Quantity:          40,
		Date:              date(2026, time.March, 10),
		Reason:            "thinning",
		OperatorID:        operator.UserID,
	})
	require.NoError(t, err)

	// Move the animals back via a counter-relocation of the new batch.
	_, err = svc.Relocate(context.Background(), RelocateInput{
		SourceEnclosureID: b.EnclosureID,
		DestEnclosureID:   a.EnclosureID,
		SourceBatchID:     out.DestBatchID,
		Quantity:          40,
		Date:              date(2026, time.March, 20),
		Reason:            "correction",
		OperatorID:        operator.UserID,
	})
	require.NoError(t, err)

	liveA, err := ledger.EnclosureLive(context.Background(), a.EnclosureID, date(2026, time.March, 25))
	require.NoError(t, err)
	liveB, err := ledger.EnclosureLive(context.Background(), b.EnclosureID, date(2026, time.March, 25))
	require.NoError(t, err)
	assert.Equal(t, 100, liveA)
	assert.Equal(t, 0, liveB)
}
