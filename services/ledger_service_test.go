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

func TestEnterBatch_RecordsCohort(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLedgerService(db, nil)
	svc.now = fixedClock(date(2026, time.April, 1))
	enclosure := createEnclosure(t, db, "KD-001", 1000, nil)

	batch, err := svc.EnterBatch(context.Background(), EnterBatchInput{
		EnclosureID: enclosure.EnclosureID,
		EntryDate:   date(2026, time.March, 10),
		Quantity:    500,
	})
	require.NoError(t, err)
	assert.NotZero(t, batch.BatchID)
	assert.Equal(t, 500, batch.EntryQuantity)

	live, err := svc.LiveCount(context.Background(), batch.BatchID, date(2026, time.April, 1))
	require.NoError(t, err)
	assert.Equal(t, 500, live)
}

func TestEnterBatch_CapacityCountsLiveNotEntered(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedgerService(db, nil)
	ledger.now = fixedClock(date(2026, time.April, 10))
	depletions := NewDepletionService(db, nil)
	enclosure := createEnclosure(t, db, "KD-001", 1000, nil)

	first, err := ledger.EnterBatch(context.Background(), EnterBatchInput{
		EnclosureID: enclosure.EnclosureID,
		EntryDate:   date(2026, time.March, 1),
		Quantity:    800,
	})
	require.NoError(t, err)

	// 300 of the 800 die, dropping the enclosure to 500 live.
	_, err = depletions.RecordDeath(context.Background(), DeathInput{
		BatchID:  first.BatchID,
		Date:     date(2026, time.March, 20),
		Quantity: 300,
		Cause:    "heat stress",
	})
	require.NoError(t, err)

	// 500 more fit exactly because capacity binds on the live count.
	_, err = ledger.EnterBatch(context.Background(), EnterBatchInput{
		EnclosureID: enclosure.EnclosureID,
		EntryDate:   date(2026, time.April, 1),
		Quantity:    500,
	})
	require.NoError(t, err)

	// One animal more would not have fit.
	_, err = ledger.EnterBatch(context.Background(), EnterBatchInput{
		EnclosureID: enclosure.EnclosureID,
		EntryDate:   date(2026, time.April, 2),
		Quantity:    1,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindCapacityExceeded))
}

func TestEnterBatch_BackdatedEntryChecksHistoricalOccupancy(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedgerService(db, nil)
	ledger.now = fixedClock(date(2026, time.April, 1))
	depletions := NewDepletionService(db, nil)
	enclosure := createEnclosure(t, db, "KD-001", 100, nil)

	first, err := ledger.EnterBatch(context.Background(), EnterBatchInput{
		EnclosureID: enclosure.EnclosureID,
		EntryDate:   date(2026, time.March, 1),
		Quantity:    100,
	})
	require.NoError(t, err)
	_, err = depletions.RecordHarvest(context.Background(), HarvestInput{
		BatchID:   first.BatchID,
		Date:      date(2026, time.March, 10),
		Quantity:  100,
		AvgWeight: 1.8,
	})
	require.NoError(t, err)

	// The enclosure is empty today, but on March 5 the first batch still
	// held all 100 head. A backdated entry may not coexist with it.
	_, err = ledger.EnterBatch(context.Background(), EnterBatchInput{
		EnclosureID: enclosure.EnclosureID,
		EntryDate:   date(2026, time.March, 5),
		Quantity:    100,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindCapacityExceeded))

	// From the harvest date onward the space is free again.
	_, err = ledger.EnterBatch(context.Background(), EnterBatchInput{
		EnclosureID: enclosure.EnclosureID,
		EntryDate:   date(2026, time.March, 10),
		Quantity:    100,
	})
	require.NoError(t, err)
}

func TestEnterBatch_BackdatedEntrySeesLaterEntries(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedgerService(db, nil)
	ledger.now = fixedClock(date(2026, time.April, 1))
	enclosure := createEnclosure(t, db, "KD-001", 100, nil)
	createBatch(t, db, enclosure.EnclosureID, date(2026, time.March, 10), 60, false)

	// The enclosure was empty on March 1, but a batch dated there would
	// still be alive on March 10 when the 60 arrived. Occupancy binds on
	// the peak across the whole window, not just the entry date.
	_, err := ledger.EnterBatch(context.Background(), EnterBatchInput{
		EnclosureID: enclosure.EnclosureID,
		EntryDate:   date(2026, time.March, 1),
		Quantity:    50,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindCapacityExceeded))

	_, err = ledger.EnterBatch(context.Background(), EnterBatchInput{
		EnclosureID: enclosure.EnclosureID,
		EntryDate:   date(2026, time.March, 1),
		Quantity:    40,
	})
	require.NoError(t, err)
}

func TestEnterBatch_RejectsNonPositiveQuantity(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLedgerService(db, nil)
	enclosure := createEnclosure(t, db, "KD-001", 100, nil)

	_, err := svc.EnterBatch(context.Background(), EnterBatchInput{
		EnclosureID: enclosure.EnclosureID,
		EntryDate:   date(2026, time.March, 10),
		Quantity:    0,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidQuantity))
}

func TestEnterBatch_RejectsFutureEntryDate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLedgerService(db, nil)
	svc.now = fixedClock(date(2026, time.April, 1))
	enclosure := createEnclosure(t, db, "KD-001", 100, nil)

	_, err := svc.EnterBatch(context.Background(), EnterBatchInput{
		EnclosureID: enclosure.EnclosureID,
		EntryDate:   date(2026, time.April, 2),
		Quantity:    10,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindFutureDate))
}

func TestEnterBatch_UnknownEnclosure(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLedgerService(db, nil)
	svc.now = fixedClock(date(2026, time.April, 1))

	_, err := svc.EnterBatch(context.Background(), EnterBatchInput{
		EnclosureID: 999,
		EntryDate:   date(2026, time.March, 10),
		Quantity:    10,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindEntityNotFound))
}

func TestEnterBatch_LeftoverFlag(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLedgerService(db, nil)
	svc.now = fixedClock(date(2026, time.April, 1))
	enclosure := createEnclosure(t, db, "KD-001", 1000, nil)

	flagged := date(2026, time.March, 12)
	batch, err := svc.EnterBatch(context.Background(), EnterBatchInput{
		EnclosureID:    enclosure.EnclosureID,
		EntryDate:      date(2026, time.March, 10),
		Quantity:       40,
		Leftover:       true,
		LeftoverReason: strPtr("carried over from previous cycle"),
		FlaggedAt:      &flagged,
	})
	require.NoError(t, err)
	assert.True(t, batch.Leftover)
	require.NotNil(t, batch.LeftoverReason)
	assert.Equal(t, "carried over from previous cycle", *batch.LeftoverReason)
}

func TestLiveCount_IsDerivedFromEvents(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedgerService(db, nil)
	depletions := NewDepletionService(db, nil)
	enclosure := createEnclosure(t, db, "KD-001", 1000, nil)
	batch := createBatch(t, db, enclosure.EnclosureID, date(2026, time.March, 1), 100, false)

	_, err := depletions.RecordDeath(context.Background(), DeathInput{
		BatchID:  batch.BatchID,
		Date:     date(2026, time.March, 10),
		Quantity: 5,
		Cause:    "disease",
	})
	require.NoError(t, err)
	_, err = depletions.RecordHarvest(context.Background(), HarvestInput{
		BatchID:   batch.BatchID,
		Date:      date(2026, time.March, 20),
		Quantity:  30,
		AvgWeight: 1.8,
	})
	require.NoError(t, err)

	// Live count moves with the as-of date.
	for _, tc := range []struct {
		asOf time.Time
		want int
	}{
		{date(2026, time.February, 28), 0},
		{date(2026, time.March, 1), 100},
		{date(2026, time.March, 10), 95},
		{date(2026, time.March, 19), 95},
		{date(2026, time.March, 20), 65},
		{date(2026, time.April, 1), 65},
	} {
		live, err := ledger.LiveCount(context.Background(), batch.BatchID, tc.asOf)
		require.NoError(t, err)
		assert.Equal(t, tc.want, live, "as of %s", tc.asOf.Format("2006-01-02"))
	}
}

func TestEnclosureLive_SumsBatches(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedgerService(db, nil)
	enclosure := createEnclosure(t, db, "KD-001", 1000, nil)
	createBatch(t, db, enclosure.EnclosureID, date(2026, time.March, 1), 100, false)
	createBatch(t, db, enclosure.EnclosureID, date(2026, time.March, 15), 60, false)

	live, err := ledger.EnclosureLive(context.Background(), enclosure.EnclosureID, date(2026, time.March, 10))
	require.NoError(t, err)
	assert.Equal(t, 100, live)

	live, err = ledger.EnclosureLive(context.Background(), enclosure.EnclosureID, date(2026, time.March, 20))
	require.NoError(t, err)
	assert.Equal(t, 160, live)
}

func TestEnclosureLive_UnknownEnclosure(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedgerService(db, nil)

	_, err := ledger.EnclosureLive(context.Background(), 42, date(2026, time.March, 10))
	assert.True(t, apperrors.IsKind(err, apperrors.KindEntityNotFound))
}

func TestBatchLiveAsOf_ClampsAtZero(t *testing.T) {
	batch := &models.Batch{EntryQuantity: 10, EntryDate: date(2026, time.March, 1)}
	events := []models.StockEvent{
		{EventDate: date(2026, time.March, 5), Quantity: 8},
		{EventDate: date(2026, time.March, 6), Quantity: 8},
	}
	assert.Equal(t, 0, batch.LiveAsOf(events, date(2026, time.March, 7)))
	assert.True(t, batch.Closed(events, date(2026, time.March, 7)))
}
