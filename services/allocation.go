package services

import (
	"sort"
	"time"

	"github.com/Joshtri/SIMTernakAyam-API-sub000/apperrors"
)

// BatchStock is a point-in-time snapshot of one batch fed to the
// allocation policy.
type BatchStock struct {
	BatchID   uint
	EntryDate time.Time
	Leftover  bool
	Live      int
}

// Allocation assigns part of an aggregate depletion to one batch.
type Allocation struct {
	BatchID  uint
	Quantity int
}

// Distribute splits an aggregate depletion quantity across the batches
// of an enclosure. It is a pure planning function: nothing is persisted
// here, and on failure the caller must persist nothing either.
//
// Ordering: newest entry first, and at equal recency batches flagged as
// leftover come after fresh ones, since a reported death or harvest is
// far more likely to come from a newly entered cohort than from animals
// carried over from the previous cycle. Batch ID breaks remaining ties
// deterministically.
func Distribute(batches []BatchStock, total int) ([]Allocation, error) {
	if total <= 0 {
		return nil, apperrors.InvalidQuantity(total)
	}

	ordered := make([]BatchStock, len(batches))
	copy(ordered, batches)
	sort.SliceStable(ordered, func(i, j int) bool {
		di, dj := ordered[i].EntryDate, ordered[j].EntryDate
		if !di.Equal(dj) {
			return di.After(dj)
		}
		if ordered[i].Leftover != ordered[j].Leftover {
			return !ordered[i].Leftover
		}
		return ordered[i].BatchID < ordered[j].BatchID
	})

	remaining := total
	allocations := make([]Allocation, 0, len(ordered))
	for _, batch := range ordered {
		if remaining == 0 {
			break
		}
		take := batch.Live
		if take > remaining {
			take = remaining
		}
		if take <= 0 {
			continue
		}
		allocations = append(allocations, Allocation{BatchID: batch.BatchID, Quantity: take})
		remaining -= take
	}

	if remaining > 0 {
		return nil, apperrors.New(apperrors.KindInsufficientAggregateStock,
			"requested %d but only %d live animals are available", total, total-remaining)
	}
	return allocations, nil
}
