// Package repositories contains the GORM data access layer. Every
// repository is bound to a *gorm.DB; WithTx rebinds it to a transaction
// handle so services can compose multi-row writes atomically.
package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Joshtri/SIMTernakAyam-API-sub000/apperrors"
	"github.com/Joshtri/SIMTernakAyam-API-sub000/models"
)

// EnclosureRepository provides access to enclosures.
type EnclosureRepository struct {
	db *gorm.DB
}

// NewEnclosureRepository creates a new enclosure repository.
func NewEnclosureRepository(db *gorm.DB) *EnclosureRepository {
	return &EnclosureRepository{db: db}
}

// WithTx returns a copy of the repository bound to tx.
func (r *EnclosureRepository) WithTx(tx *gorm.DB) *EnclosureRepository {
	return &EnclosureRepository{db: tx}
}

// Create persists a new enclosure.
func (r *EnclosureRepository) Create(ctx context.Context, enclosure *models.Enclosure) error {
	if err := r.db.WithContext(ctx).Create(enclosure).Error; err != nil {
		return fmt.Errorf("create enclosure: %w", err)
	}
	return nil
}

// FindByID loads one enclosure.
func (r *EnclosureRepository) FindByID(ctx context.Context, id uint) (*models.Enclosure, error) {
	var enclosure models.Enclosure
	err := r.db.WithContext(ctx).First(&enclosure, "enclosure_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("enclosure", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find enclosure %d: %w", id, err)
	}
	return &enclosure, nil
}

// FindByIDForUpdate loads one enclosure holding a row lock for the
// duration of the surrounding transaction.
func (r *EnclosureRepository) FindByIDForUpdate(ctx context.Context, id uint) (*models.Enclosure, error) {
	var enclosure models.Enclosure
	err := forUpdate(r.db.WithContext(ctx)).First(&enclosure, "enclosure_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("enclosure", id)
	}
	if err != nil {
		return nil, fmt.Errorf("lock enclosure %d: %w", id, err)
	}
	return &enclosure, nil
}

// LockPairAscending locks two enclosure rows in ascending-ID order so
// concurrent relocations in opposite directions cannot deadlock.
func (r *EnclosureRepository) LockPairAscending(ctx context.Context, firstID, secondID uint) (*models.Enclosure, *models.Enclosure, error) {
	lowID, highID := firstID, secondID
	if lowID > highID {
		lowID, highID = highID, lowID
	}
	low, err := r.FindByIDForUpdate(ctx, lowID)
	if err != nil {
		return nil, nil, err
	}
	high, err := r.FindByIDForUpdate(ctx, highID)
	if err != nil {
		return nil, nil, err
	}
	if firstID == lowID {
		return low, high, nil
	}
	return high, low, nil
}

// List returns all enclosures with their caretakers preloaded.
func (r *EnclosureRepository) List(ctx context.Context) ([]models.Enclosure, error) {
	var enclosures []models.Enclosure
	err := r.db.WithContext(ctx).Preload("Caretaker").Order("enclosure_id").Find(&enclosures).Error
	if err != nil {
		return nil, fmt.Errorf("list enclosures: %w", err)
	}
	return enclosures, nil
}

// Update persists enclosure field changes.
func (r *EnclosureRepository) Update(ctx context.Context, enclosure *models.Enclosure) error {
	if err := r.db.WithContext(ctx).Save(enclosure).Error; err != nil {
		return fmt.Errorf("update enclosure %d: %w", enclosure.EnclosureID, err)
	}
	return nil
}
