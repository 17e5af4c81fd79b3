package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joshtri/SIMTernakAyam-API-sub000/apperrors"
)

func TestAddPrice_RejectsOverlapInSameScope(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPriceService(db, nil)

	_, err := svc.AddPrice(context.Background(), AddPriceInput{
		PricePerHead: 45000,
		PricePerKg:   20000,
		StartDate:    date(2026, time.March, 1),
		EndDate:      timePtr(date(2026, time.April, 1)),
		Active:       true,
	})
	require.NoError(t, err)

	// [2026-03-20, 2026-04-10) intersects the first interval.
	_, err = svc.AddPrice(context.Background(), AddPriceInput{
		PricePerHead: 46000,
		PricePerKg:   21000,
		StartDate:    date(2026, time.March, 20),
		EndDate:      timePtr(date(2026, time.April, 10)),
		Active:       true,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindOverlappingPeriod))

	// Touching intervals do not overlap: end date is exclusive.
	_, err = svc.AddPrice(context.Background(), AddPriceInput{
		PricePerHead: 46000,
		PricePerKg:   21000,
		StartDate:    date(2026, time.April, 1),
		EndDate:      timePtr(date(2026, time.May, 1)),
		Active:       true,
	})
	assert.NoError(t, err)
}

func TestAddPrice_OpenEndedOverlapsEverythingLater(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPriceService(db, nil)

	_, err := svc.AddPrice(context.Background(), AddPriceInput{
		PricePerHead: 45000,
		PricePerKg:   20000,
		StartDate:    date(2026, time.March, 1),
		Active:       true,
	})
	require.NoError(t, err)

	_, err = svc.AddPrice(context.Background(), AddPriceInput{
		PricePerHead: 46000,
		PricePerKg:   21000,
		StartDate:    date(2026, time.June, 1),
		EndDate:      timePtr(date(2026, time.July, 1)),
		Active:       true,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindOverlappingPeriod))
}

func TestAddPrice_ScopesAreIndependent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPriceService(db, nil)

	_, err := svc.AddPrice(context.Background(), AddPriceInput{
		PricePerHead: 45000,
		PricePerKg:   20000,
		StartDate:    date(2026, time.March, 1),
		Active:       true,
	})
	require.NoError(t, err)

	// Same interval in a regional scope is fine.
	_, err = svc.AddPrice(context.Background(), AddPriceInput{
		PricePerHead: 47000,
		PricePerKg:   22000,
		StartDate:    date(2026, time.March, 1),
		Region:       strPtr("east"),
		Active:       true,
	})
	assert.NoError(t, err)
}

func TestAddPrice_InactiveSkipsOverlapCheck(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPriceService(db, nil)

	_, err := svc.AddPrice(context.Background(), AddPriceInput{
		PricePerHead: 45000,
		PricePerKg:   20000,
		StartDate:    date(2026, time.March, 1),
		Active:       true,
	})
	require.NoError(t, err)

	// An inactive draft may overlap; the check runs on activation.
	draft, err := svc.AddPrice(context.Background(), AddPriceInput{
		PricePerHead: 46000,
		PricePerKg:   21000,
		StartDate:    date(2026, time.March, 10),
		Active:       false,
	})
	require.NoError(t, err)

	_, err = svc.Activate(context.Background(), draft.PriceID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindOverlappingPeriod))
}

func TestAddPrice_RejectsInvertedPeriod(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPriceService(db, nil)

	_, err := svc.AddPrice(context.Background(), AddPriceInput{
		PricePerHead: 45000,
		PricePerKg:   20000,
		StartDate:    date(2026, time.March, 10),
		EndDate:      timePtr(date(2026, time.March, 10)),
		Active:       true,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidPeriod))
}

func TestDeactivate_ClosesOpenInterval(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPriceService(db, nil)
	svc.now = fixedClock(date(2026, time.April, 15))

	entry, err := svc.AddPrice(context.Background(), AddPriceInput{
		PricePerHead: 45000,
		PricePerKg:   20000,
		StartDate:    date(2026, time.March, 1),
		Active:       true,
	})
	require.NoError(t, err)

	retired, err := svc.Deactivate(context.Background(), entry.PriceID)
	require.NoError(t, err)
	assert.False(t, retired.IsActive)
	require.NotNil(t, retired.EndDate)
	assert.Equal(t, date(2026, time.April, 15), *retired.EndDate)

	// The slot is free again for a replacement.
	_, err = svc.AddPrice(context.Background(), AddPriceInput{
		PricePerHead: 47000,
		PricePerKg:   21000,
		StartDate:    date(2026, time.March, 1),
		Active:       true,
	})
	assert.NoError(t, err)
}

func TestResolve_MissIsNilNotError(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPriceService(db, nil)

	entry, err := svc.Resolve(context.Background(), date(2026, time.March, 10), "")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestResolve_RegionalOutranksGlobal(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPriceService(db, nil)

	global, err := svc.AddPrice(context.Background(), AddPriceInput{
		PricePerHead: 45000,
		PricePerKg:   20000,
		StartDate:    date(2026, time.March, 1),
		Active:       true,
	})
	require.NoError(t, err)

	regional, err := svc.AddPrice(context.Background(), AddPriceInput{
		PricePerHead: 47000,
		PricePerKg:   22000,
		StartDate:    date(2026, time.March, 5),
		Region:       strPtr("east"),
		Active:       true,
	})
	require.NoError(t, err)

	// Region "east" sees its own price.
	got, err := svc.Resolve(context.Background(), date(2026, time.March, 10), "east")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, regional.PriceID, got.PriceID)

	// The global scope never borrows a regional entry.
	got, err = svc.Resolve(context.Background(), date(2026, time.March, 10), "")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, global.PriceID, got.PriceID)

	// A region without its own entry falls back to the global one.
	got, err = svc.Resolve(context.Background(), date(2026, time.March, 10), "west")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, global.PriceID, got.PriceID)
}

func TestResolve_EndDateIsExclusive(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPriceService(db, nil)

	_, err := svc.AddPrice(context.Background(), AddPriceInput{
		PricePerHead: 45000,
		PricePerKg:   20000,
		StartDate:    date(2026, time.March, 1),
		EndDate:      timePtr(date(2026, time.April, 1)),
		Active:       true,
	})
	require.NoError(t, err)

	got, err := svc.Resolve(context.Background(), date(2026, time.March, 31), "")
	require.NoError(t, err)
	assert.NotNil(t, got)

	got, err = svc.Resolve(context.Background(), date(2026, time.April, 1), "")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResolveLatest_IgnoresCoverage(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPriceService(db, nil)

	closed, err := svc.AddPrice(context.Background(), AddPriceInput{
		PricePerHead: 45000,
		PricePerKg:   20000,
		StartDate:    date(2026, time.January, 1),
		EndDate:      timePtr(date(2026, time.February, 1)),
		Active:       true,
	})
	require.NoError(t, err)

	// Nothing covers March, but the January entry is the latest start.
	got, err := svc.ResolveLatest(context.Background(), date(2026, time.March, 10), "")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, closed.PriceID, got.PriceID)
}
