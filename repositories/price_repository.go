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

// PriceRepository provides access to the effective-dated price table.
type PriceRepository struct {
	db *gorm.DB
}

// NewPriceRepository creates a new price repository.
func NewPriceRepository(db *gorm.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// WithTx returns a copy of the repository bound to tx.
func (r *PriceRepository) WithTx(tx *gorm.DB) *PriceRepository {
	return &PriceRepository{db: tx}
}

// Create persists a new price entry.
func (r *PriceRepository) Create(ctx context.Context, entry *models.PriceEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("create price entry: %w", err)
	}
	return nil
}

// FindByID loads one price entry.
func (r *PriceRepository) FindByID(ctx context.Context, id uint) (*models.PriceEntry, error) {
	var entry models.PriceEntry
	err := r.db.WithContext(ctx).First(&entry, "price_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("price entry", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find price entry %d: %w", id, err)
	}
	return &entry, nil
}

// FindByIDForUpdate loads one price entry holding a row lock.
func (r *PriceRepository) FindByIDForUpdate(ctx context.Context, id uint) (*models.PriceEntry, error) {
	var entry models.PriceEntry
	err := forUpdate(r.db.WithContext(ctx)).First(&entry, "price_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("price entry", id)
	}
	if err != nil {
		return nil, fmt.Errorf("lock price entry %d: %w", id, err)
	}
	return &entry, nil
}

// Update persists price entry field changes.
func (r *PriceRepository) Update(ctx context.Context, entry *models.PriceEntry) error {
	if err := r.db.WithContext(ctx).Save(entry).Error; err != nil {
		return fmt.Errorf("update price entry %d: %w", entry.PriceID, err)
	}
	return nil
}

// ListActiveByScope returns the active entries of one region scope
// (empty scope means the global, region-less entries), locked when the
// caller is about to mutate the scope. Overlap checks walk this slice.
func (r *PriceRepository) ListActiveByScope(ctx context.Context, scope string, lock bool) ([]models.PriceEntry, error) {
	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	if scope == "" {
		query = query.Where("region IS NULL OR region = ''")
	} else {
		query = query.Where("region = ?", scope)
	}
	if lock {
		query = forUpdate(query)
	}
	var entries []models.PriceEntry
	if err := query.Order("start_date").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list active prices in scope %q: %w", scope, err)
	}
	return entries, nil
}

// ListActiveCovering returns every active entry whose interval contains
// the date, across all scopes. Resolution picks among these.
func (r *PriceRepository) ListActiveCovering(ctx context.Context, date time.Time) ([]models.PriceEntry, error) {
	day := models.DateOnly(date)
	var entries []models.PriceEntry
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND start_date <= ?", true, day).
		Where("end_date IS NULL OR end_date > ?", day).
		Order("start_date DESC, price_id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list prices covering %s: %w", day.Format("2006-01-02"), err)
	}
	return entries, nil
}

// LatestStartedOnOrBefore returns the most recent entry (active or
// retired) of a scope whose interval started on or before the date.
// Best-effort profit estimates fall back to this.
func (r *PriceRepository) LatestStartedOnOrBefore(ctx context.Context, date time.Time, scope string) (*models.PriceEntry, error) {
	day := models.DateOnly(date)
	query := r.db.WithContext(ctx).Where("start_date <= ?", day)
	if scope == "" {
		query = query.Where("region IS NULL OR region = ''")
	} else {
		query = query.Where("region = ? OR region IS NULL OR region = ''", scope)
	}
	var entry models.PriceEntry
	err := query.Order("start_date DESC, price_id DESC").First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest price before %s: %w", day.Format("2006-01-02"), err)
	}
	return &entry, nil
}
