package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Joshtri/SIMTernakAyam-API-sub000/apperrors"
	"github.com/Joshtri/SIMTernakAyam-API-sub000/models"
)

// RelocationRepository provides access to relocation records.
type RelocationRepository struct {
	db *gorm.DB
}

// NewRelocationRepository creates a new relocation repository.
func NewRelocationRepository(db *gorm.DB) *RelocationRepository {
	return &RelocationRepository{db: db}
}

// WithTx returns a copy of the repository bound to tx.
func (r *RelocationRepository) WithTx(tx *gorm.DB) *RelocationRepository {
	return &RelocationRepository{db: tx}
}

// Create persists a new relocation record.
func (r *RelocationRepository) Create(ctx context.Context, relocation *models.Relocation) error {
	if err := r.db.WithContext(ctx).Create(relocation).Error; err != nil {
		return fmt.Errorf("create relocation: %w", err)
	}
	return nil
}

// FindByID loads one relocation.
func (r *RelocationRepository) FindByID(ctx context.Context, id uint) (*models.Relocation, error) {
	var relocation models.Relocation
	err := r.db.WithContext(ctx).First(&relocation, "relocation_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("relocation", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find relocation %d: %w", id, err)
	}
	return &relocation, nil
}

// FindByIDForUpdate loads one relocation holding a row lock.
func (r *RelocationRepository) FindByIDForUpdate(ctx context.Context, id uint) (*models.Relocation, error) {
	var relocation models.Relocation
	err := forUpdate(r.db.WithContext(ctx)).First(&relocation, "relocation_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("relocation", id)
	}
	if err != nil {
		return nil, fmt.Errorf("lock relocation %d: %w", id, err)
	}
	return &relocation, nil
}

// Update persists relocation field changes.
func (r *RelocationRepository) Update(ctx context.Context, relocation *models.Relocation) error {
	if err := r.db.WithContext(ctx).Save(relocation).Error; err != nil {
		return fmt.Errorf("update relocation %d: %w", relocation.RelocationID, err)
	}
	return nil
}

// List returns all relocations, newest first.
func (r *RelocationRepository) List(ctx context.Context) ([]models.Relocation, error) {
	var relocations []models.Relocation
	err := r.db.WithContext(ctx).
		Order("relocation_date DESC, relocation_id DESC").
		Find(&relocations).Error
	if err != nil {
		return nil, fmt.Errorf("list relocations: %w", err)
	}
	return relocations, nil
}
