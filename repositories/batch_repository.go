package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Joshtri/SIMTernakAyam-API-sub000/apperrors"
	"github.com/Joshtri/SIMTernakAyam-API-sub000/models"
)

// BatchLive pairs a batch with its derived live count at a point in time.
type BatchLive struct {
	Batch models.Batch
	Live  int
}

// BatchRepository provides access to batches and their derived stock.
// Live counts are recomputed from the event ledger on every call; there
// is no stored counter to drift.
type BatchRepository struct {
	db *gorm.DB
}

// NewBatchRepository creates a new batch repository.
func NewBatchRepository(db *gorm.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

// WithTx returns a copy of the repository bound to tx.
func (r *BatchRepository) WithTx(tx *gorm.DB) *BatchRepository {
	return &BatchRepository{db: tx}
}

// Create persists a new batch.
func (r *BatchRepository) Create(ctx context.Context, batch *models.Batch) error {
	if err := r.db.WithContext(ctx).Create(batch).Error; err != nil {
		return fmt.Errorf("create batch: %w", err)
	}
	return nil
}

// FindByID loads one batch.
func (r *BatchRepository) FindByID(ctx context.Context, id uint) (*models.Batch, error) {
	var batch models.Batch
	err := r.db.WithContext(ctx).First(&batch, "batch_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("batch", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find batch %d: %w", id, err)
	}
	return &batch, nil
}

// FindByIDForUpdate loads one batch holding a row lock. All event writes
// re-validate under this lock so concurrent depletions cannot both read
// the same stale live count.
func (r *BatchRepository) FindByIDForUpdate(ctx context.Context, id uint) (*models.Batch, error) {
	var batch models.Batch
	err := forUpdate(r.db.WithContext(ctx)).First(&batch, "batch_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("batch", id)
	}
	if err != nil {
		return nil, fmt.Errorf("lock batch %d: %w", id, err)
	}
	return &batch, nil
}

// Update persists batch field changes (leftover flagging; entry quantity
// is never rewritten once events exist).
func (r *BatchRepository) Update(ctx context.Context, batch *models.Batch) error {
	if err := r.db.WithContext(ctx).Save(batch).Error; err != nil {
		return fmt.Errorf("update batch %d: %w", batch.BatchID, err)
	}
	return nil
}

// ListByEnclosure returns all batches housed in an enclosure.
func (r *BatchRepository) ListByEnclosure(ctx context.Context, enclosureID uint) ([]models.Batch, error) {
	return r.listByEnclosure(r.db.WithContext(ctx), enclosureID)
}

// ListByEnclosureForUpdate returns all batches of an enclosure holding
// their row locks, in batch_id order. Aggregate depletion validates and
// writes under these locks so a concurrent single-batch depletion on any
// of the same batches serializes instead of racing the derived count.
func (r *BatchRepository) ListByEnclosureForUpdate(ctx context.Context, enclosureID uint) ([]models.Batch, error) {
	return r.listByEnclosure(forUpdate(r.db.WithContext(ctx)), enclosureID)
}

func (r *BatchRepository) listByEnclosure(db *gorm.DB, enclosureID uint) ([]models.Batch, error) {
	var batches []models.Batch
	err := db.
		Where("enclosure_id = ?", enclosureID).
		Order("batch_id").
		Find(&batches).Error
	if err != nil {
		return nil, fmt.Errorf("list batches of enclosure %d: %w", enclosureID, err)
	}
	return batches, nil
}

// SumEvents returns the total quantity deducted from a batch by events
// dated on or before asOf.
func (r *BatchRepository) SumEvents(ctx context.Context, batchID uint, asOf time.Time) (int, error) {
	return r.sumEvents(ctx, batchID, asOf, 0)
}

// SumEventsExcluding is SumEvents minus one event, used when an edit
// re-validates against the ledger without double-counting itself.
func (r *BatchRepository) SumEventsExcluding(ctx context.Context, batchID uint, asOf time.Time, excludeEventID uint) (int, error) {
	return r.sumEvents(ctx, batchID, asOf, excludeEventID)
}

func (r *BatchRepository) sumEvents(ctx context.Context, batchID uint, asOf time.Time, excludeEventID uint) (int, error) {
	query := r.db.WithContext(ctx).
		Model(&models.StockEvent{}).
		Where("batch_id = ? AND event_date <= ?", batchID, models.DateOnly(asOf))
	if excludeEventID != 0 {
		query = query.Where("event_id <> ?", excludeEventID)
	}
	var total struct{ Total int }
	if err := query.Select("COALESCE(SUM(quantity), 0) AS total").Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("sum events of batch %d: %w", batchID, err)
	}
	return total.Total, nil
}

// LiveCount derives a batch's live count as of a date. A date before the
// batch's entry yields zero.
func (r *BatchRepository) LiveCount(ctx context.Context, batchID uint, asOf time.Time) (int, error) {
	batch, err := r.FindByID(ctx, batchID)
	if err != nil {
		return 0, err
	}
	return r.liveOf(ctx, batch, asOf, 0)
}

// LiveCountExcluding derives a live count while ignoring one event.
func (r *BatchRepository) LiveCountExcluding(ctx context.Context, batch *models.Batch, asOf time.Time, excludeEventID uint) (int, error) {
	return r.liveOf(ctx, batch, asOf, excludeEventID)
}

// LiveOf derives the live count of an already loaded batch.
func (r *BatchRepository) LiveOf(ctx context.Context, batch *models.Batch, asOf time.Time) (int, error) {
	return r.liveOf(ctx, batch, asOf, 0)
}

func (r *BatchRepository) liveOf(ctx context.Context, batch *models.Batch, asOf time.Time, excludeEventID uint) (int, error) {
	if models.DateOnly(asOf).Before(models.DateOnly(batch.EntryDate)) {
		return 0, nil
	}
	deducted, err := r.sumEvents(ctx, batch.BatchID, asOf, excludeEventID)
	if err != nil {
		return 0, err
	}
	live := batch.EntryQuantity - deducted
	if live < 0 {
		live = 0
	}
	return live, nil
}

// EnclosureLive derives the aggregate live count across all batches of
// an enclosure as of a date.
func (r *BatchRepository) EnclosureLive(ctx context.Context, enclosureID uint, asOf time.Time) (int, error) {
	stocks, err := r.ListWithLive(ctx, enclosureID, asOf)
	if err != nil {
		return 0, err
	}
	var total int
	for _, s := range stocks {
		total += s.Live
	}
	return total, nil
}

// ListWithLive snapshots every batch of an enclosure together with its
// derived live count as of a date. Allocation planning runs over this
// snapshot.
func (r *BatchRepository) ListWithLive(ctx context.Context, enclosureID uint, asOf time.Time) ([]BatchLive, error) {
	batches, err := r.ListByEnclosure(ctx, enclosureID)
	if err != nil {
		return nil, err
	}
	return r.attachLive(ctx, batches, asOf)
}

// ListWithLiveForUpdate is ListWithLive over row-locked batches.
func (r *BatchRepository) ListWithLiveForUpdate(ctx context.Context, enclosureID uint, asOf time.Time) ([]BatchLive, error) {
	batches, err := r.ListByEnclosureForUpdate(ctx, enclosureID)
	if err != nil {
		return nil, err
	}
	return r.attachLive(ctx, batches, asOf)
}

func (r *BatchRepository) attachLive(ctx context.Context, batches []models.Batch, asOf time.Time) ([]BatchLive, error) {
	stocks := make([]BatchLive, 0, len(batches))
	for i := range batches {
		live, err := r.liveOf(ctx, &batches[i], asOf, 0)
		if err != nil {
			return nil, err
		}
		stocks = append(stocks, BatchLive{Batch: batches[i], Live: live})
	}
	return stocks, nil
}

// PeakEnclosureLive derives the maximum aggregate live count of an
// enclosure across the [from, to] date window. Between events the
// aggregate only rises at a batch's entry date, so the peak is reached
// either at the window start or on an entry date inside the window;
// only those dates are evaluated.
func (r *BatchRepository) PeakEnclosureLive(ctx context.Context, enclosureID uint, from, to time.Time) (int, error) {
	from, to = models.DateOnly(from), models.DateOnly(to)
	batches, err := r.ListByEnclosure(ctx, enclosureID)
	if err != nil {
		return 0, err
	}
	candidates := []time.Time{from}
	for i := range batches {
		entry := models.DateOnly(batches[i].EntryDate)
		if entry.After(from) && !entry.After(to) {
			candidates = append(candidates, entry)
		}
	}
	peak := 0
	for _, day := range candidates {
		total := 0
		for i := range batches {
			live, err := r.liveOf(ctx, &batches[i], day, 0)
			if err != nil {
				return 0, err
			}
			total += live
		}
		if total > peak {
			peak = total
		}
	}
	return peak, nil
}

// LiveEnclosureIDs returns the IDs of enclosures holding live stock on
// the given date. Shared costs are prorated across exactly this set.
func (r *BatchRepository) LiveEnclosureIDs(ctx context.Context, date time.Time) ([]uint, error) {
	day := models.DateOnly(date)
	rows := []struct {
		EnclosureID uint
		Live        int
	}{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT b.enclosure_id AS enclosure_id,
		       SUM(b.entry_quantity) - COALESCE(SUM(ev.deducted), 0) AS live
		FROM batches b
		LEFT JOIN (
			SELECT batch_id, SUM(quantity) AS deducted
			FROM stock_events
			WHERE event_date <= ?
			GROUP BY batch_id
		) ev ON ev.batch_id = b.batch_id
		WHERE b.entry_date <= ?
		GROUP BY b.enclosure_id
		HAVING SUM(b.entry_quantity) - COALESCE(SUM(ev.deducted), 0) > 0
		ORDER BY b.enclosure_id
	`, day, day).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("live enclosures at %s: %w", day.Format("2006-01-02"), err)
	}
	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.EnclosureID)
	}
	return ids, nil
}
