package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Joshtri/SIMTernakAyam-API-sub000/apperrors"
	"github.com/Joshtri/SIMTernakAyam-API-sub000/models"
	"github.com/Joshtri/SIMTernakAyam-API-sub000/repositories"
)

// RelocationService moves animals between enclosures: a relocation
// depletes the source batch and creates a brand-new batch in the
// destination, as one transaction.
type RelocationService struct {
	db          *gorm.DB
	enclosures  *repositories.EnclosureRepository
	batches     *repositories.BatchRepository
	events      *repositories.StockEventRepository
	relocations *repositories.RelocationRepository
	logger      *zap.Logger
	now         func() time.Time
}

// NewRelocationService wires a new relocation service instance.
func NewRelocationService(db *gorm.DB, logger *zap.Logger) *RelocationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RelocationService{
		db:          db,
		enclosures:  repositories.NewEnclosureRepository(db),
		batches:     repositories.NewBatchRepository(db),
		events:      repositories.NewStockEventRepository(db),
		relocations: repositories.NewRelocationRepository(db),
		logger:      logger,
		now:         time.Now,
	}
}

// RelocateInput carries a relocation request.
type RelocateInput struct {
	SourceEnclosureID uint      `json:"source_enclosure_id"`
	DestEnclosureID   uint      `json:"dest_enclosure_id"`
	SourceBatchID     uint      `json:"source_batch_id"`
	Quantity          int       `json:"quantity"`
	Date              time.Time `json:"date"`
	Reason            string    `json:"reason"`
	Note              *string   `json:"note,omitempty"`
	OperatorID        uint      `json:"operator_id"`
}

// Relocate atomically deducts quantity from the source batch and creates
// a new destination batch whose entry quantity and date equal the
// relocation's. Both enclosure rows are locked in ascending-ID order so
// two opposite relocations cannot deadlock. Any failed step rolls the
// whole operation back; a partial relocation is never observable.
func (s *RelocationService) Relocate(ctx context.Context, in RelocateInput) (*models.Relocation, error) {
	if in.Quantity <= 0 {
		return nil, apperrors.InvalidQuantity(in.Quantity)
	}
	if in.SourceEnclosureID == in.DestEnclosureID {
		return nil, apperrors.InvalidRelocation("source and destination enclosures must differ")
	}
	date := models.DateOnly(in.Date)
	if date.After(models.DateOnly(s.now())) {
		return nil, apperrors.FutureDate()
	}

	var relocation *models.Relocation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		enclosures := s.enclosures.WithTx(tx)
		batches := s.batches.WithTx(tx)

		source, dest, err := enclosures.LockPairAscending(ctx, in.SourceEnclosureID, in.DestEnclosureID)
		if err != nil {
			return err
		}
		sourceBatch, err := batches.FindByIDForUpdate(ctx, in.SourceBatchID)
		if err != nil {
			return err
		}
		if sourceBatch.EnclosureID != source.EnclosureID {
			return apperrors.InvalidRelocation("batch %d is not housed in enclosure %d",
				sourceBatch.BatchID, source.EnclosureID)
		}
		if date.Before(models.DateOnly(sourceBatch.EntryDate)) {
			return apperrors.DateBeforeEntry(sourceBatch.BatchID)
		}

		sourceLive, err := batches.LiveOf(ctx, sourceBatch, date)
		if err != nil {
			return err
		}
		if in.Quantity > sourceLive {
			return apperrors.InsufficientStock(sourceBatch.BatchID, in.Quantity, sourceLive)
		}

		// A backdated relocation occupies the destination from its date
		// onward, so capacity binds on the peak occupancy since then.
		destLive, err := batches.PeakEnclosureLive(ctx, dest.EnclosureID, date, s.now())
		if err != nil {
			return err
		}
		if in.Quantity > dest.Capacity-destLive {
			return apperrors.CapacityExceeded(dest.EnclosureID, dest.Capacity, destLive+in.Quantity)
		}

		destBatch := &models.Batch{
			EnclosureID:   dest.EnclosureID,
			EntryDate:     date,
			EntryQuantity: in.Quantity,
			Leftover:      false,
		}
		if err := batches.Create(ctx, destBatch); err != nil {
			return err
		}

		deduction := &models.StockEvent{
			BatchID:   sourceBatch.BatchID,
			Kind:      models.EventRelocationOut,
			EventDate: date,
			Quantity:  in.Quantity,
		}
		if err := s.events.WithTx(tx).Create(ctx, deduction); err != nil {
			return err
		}

		relocation = &models.Relocation{
			RelocationCode:    fmt.Sprintf("RL-%s", uuid.NewString()),
			SourceEnclosureID: source.EnclosureID,
			DestEnclosureID:   dest.EnclosureID,
			SourceBatchID:     sourceBatch.BatchID,
			DestBatchID:       destBatch.BatchID,
			Quantity:          in.Quantity,
			RelocationDate:    date,
			Reason:            in.Reason,
			Note:              in.Note,
			OperatorID:        in.OperatorID,
			Status:            models.RelocationCompleted,
		}
		return s.relocations.WithTx(tx).Create(ctx, relocation)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("relocation completed",
		zap.Uint("relocation_id", relocation.RelocationID),
		zap.Uint("source_enclosure_id", relocation.SourceEnclosureID),
		zap.Uint("dest_enclosure_id", relocation.DestEnclosureID),
		zap.Int("quantity", relocation.Quantity))
	return relocation, nil
}

// Cancel flips a relocation to cancelled. This is deliberately a
// non-compensating action: the source deduction stays on the ledger and
// the destination batch stays in place. Operators who need the stock
// back must record a counter-relocation. Repeat calls fail with
// AlreadyCancelled.
func (s *RelocationService) Cancel(ctx context.Context, relocationID uint) (*models.Relocation, error) {
	var relocation *models.Relocation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		relocations := s.relocations.WithTx(tx)
		var err error
		relocation, err = relocations.FindByIDForUpdate(ctx, relocationID)
		if err != nil {
			return err
		}
		if relocation.Status == models.RelocationCancelled {
			return apperrors.AlreadyCancelled(relocationID)
		}
		relocation.Status = models.RelocationCancelled
		return relocations.Update(ctx, relocation)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Warn("relocation cancelled without compensation",
		zap.Uint("relocation_id", relocation.RelocationID),
		zap.Uint("dest_batch_id", relocation.DestBatchID))
	return relocation, nil
}
