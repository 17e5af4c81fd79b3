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

// StockEventRepository provides access to the depletion ledger.
type StockEventRepository struct {
	db *gorm.DB
}

// NewStockEventRepository creates a new stock event repository.
func NewStockEventRepository(db *gorm.DB) *StockEventRepository {
	return &StockEventRepository{db: db}
}

// WithTx returns a copy of the repository bound to tx.
func (r *StockEventRepository) WithTx(tx *gorm.DB) *StockEventRepository {
	return &StockEventRepository{db: tx}
}

// Create persists a new event.
func (r *StockEventRepository) Create(ctx context.Context, event *models.StockEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("create stock event: %w", err)
	}
	return nil
}

// FindByID loads one event.
func (r *StockEventRepository) FindByID(ctx context.Context, id uint) (*models.StockEvent, error) {
	var event models.StockEvent
	err := r.db.WithContext(ctx).First(&event, "event_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("stock event", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find stock event %d: %w", id, err)
	}
	return &event, nil
}

// Update persists event field changes.
func (r *StockEventRepository) Update(ctx context.Context, event *models.StockEvent) error {
	if err := r.db.WithContext(ctx).Save(event).Error; err != nil {
		return fmt.Errorf("update stock event %d: %w", event.EventID, err)
	}
	return nil
}

// Delete removes an event from the ledger.
func (r *StockEventRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.StockEvent{}, "event_id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete stock event %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("stock event", id)
	}
	return nil
}

// ListByBatch returns a batch's events ordered by date then id.
func (r *StockEventRepository) ListByBatch(ctx context.Context, batchID uint) ([]models.StockEvent, error) {
	var events []models.StockEvent
	err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("event_date, event_id").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("list events of batch %d: %w", batchID, err)
	}
	return events, nil
}

// SumByKind totals event quantities of one kind across an enclosure's
// batches within [from, to]. Dashboard statistics are built on this and
// therefore never include relocation deductions unless asked to.
func (r *StockEventRepository) SumByKind(ctx context.Context, enclosureID uint, kind models.StockEventKind, from, to time.Time) (int, error) {
	var total struct{ Total int }
	err := r.db.WithContext(ctx).
		Model(&models.StockEvent{}).
		Joins("JOIN batches ON batches.batch_id = stock_events.batch_id").
		Where("batches.enclosure_id = ? AND stock_events.kind = ?", enclosureID, kind).
		Where("stock_events.event_date BETWEEN ? AND ?", models.DateOnly(from), models.DateOnly(to)).
		Select("COALESCE(SUM(stock_events.quantity), 0) AS total").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("sum %s events of enclosure %d: %w", kind, enclosureID, err)
	}
	return total.Total, nil
}
