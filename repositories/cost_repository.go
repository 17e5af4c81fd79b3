package repositories

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Joshtri/SIMTernakAyam-API-sub000/models"
)

// CostRepository provides access to cost entries.
type CostRepository struct {
	db *gorm.DB
}

// NewCostRepository creates a new cost repository.
func NewCostRepository(db *gorm.DB) *CostRepository {
	return &CostRepository{db: db}
}

// WithTx returns a copy of the repository bound to tx.
func (r *CostRepository) WithTx(tx *gorm.DB) *CostRepository {
	return &CostRepository{db: tx}
}

// Create persists a cost entry.
func (r *CostRepository) Create(ctx context.Context, cost *models.CostEntry) error {
	if err := r.db.WithContext(ctx).Create(cost).Error; err != nil {
		return fmt.Errorf("create cost entry: %w", err)
	}
	return nil
}

// ListTagged returns the costs tagged to one enclosure dated within
// [from, to].
func (r *CostRepository) ListTagged(ctx context.Context, enclosureID uint, from, to time.Time) ([]models.CostEntry, error) {
	var costs []models.CostEntry
	err := r.db.WithContext(ctx).
		Where("enclosure_id = ?", enclosureID).
		Where("recorded_date BETWEEN ? AND ?", models.DateOnly(from), models.DateOnly(to)).
		Order("recorded_date, cost_id").
		Find(&costs).Error
	if err != nil {
		return nil, fmt.Errorf("list tagged costs of enclosure %d: %w", enclosureID, err)
	}
	return costs, nil
}

// ListShared returns the untagged costs dated within [from, to].
func (r *CostRepository) ListShared(ctx context.Context, from, to time.Time) ([]models.CostEntry, error) {
	var costs []models.CostEntry
	err := r.db.WithContext(ctx).
		Where("enclosure_id IS NULL").
		Where("recorded_date BETWEEN ? AND ?", models.DateOnly(from), models.DateOnly(to)).
		Order("recorded_date, cost_id").
		Find(&costs).Error
	if err != nil {
		return nil, fmt.Errorf("list shared costs: %w", err)
	}
	return costs, nil
}

// List returns all cost entries, newest first.
func (r *CostRepository) List(ctx context.Context) ([]models.CostEntry, error) {
	var costs []models.CostEntry
	err := r.db.WithContext(ctx).Order("recorded_date DESC, cost_id DESC").Find(&costs).Error
	if err != nil {
		return nil, fmt.Errorf("list cost entries: %w", err)
	}
	return costs, nil
}
