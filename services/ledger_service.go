// Package services implements the batch stock ledger and allocation
// engine: derived live counts, depletion recording, aggregate
// distribution, relocation, pricing, and profitability.
package services

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Joshtri/SIMTernakAyam-API-sub000/apperrors"
	"github.com/Joshtri/SIMTernakAyam-API-sub000/models"
	"github.com/Joshtri/SIMTernakAyam-API-sub000/repositories"
)

// LedgerService records batch entries and answers derived stock queries.
type LedgerService struct {
	db         *gorm.DB
	enclosures *repositories.EnclosureRepository
	batches    *repositories.BatchRepository
	logger     *zap.Logger
	now        func() time.Time
}

// NewLedgerService wires a new ledger service instance.
func NewLedgerService(db *gorm.DB, logger *zap.Logger) *LedgerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerService{
		db:         db,
		enclosures: repositories.NewEnclosureRepository(db),
		batches:    repositories.NewBatchRepository(db),
		logger:     logger,
		now:        time.Now,
	}
}

// EnterBatchInput carries a batch entry request.
type EnterBatchInput struct {
	EnclosureID    uint       `json:"enclosure_id"`
	EntryDate      time.Time  `json:"entry_date"`
	Quantity       int        `json:"quantity"`
	Leftover       bool       `json:"leftover"`
	LeftoverReason *string    `json:"leftover_reason,omitempty"`
	FlaggedAt      *time.Time `json:"leftover_flagged_at,omitempty"`
}

// EnterBatch records a cohort entering an enclosure. The capacity check
// runs under the enclosure row lock of the same transaction that inserts
// the batch, against the peak aggregate live count over the entry date
// through today. A backdated entry therefore cannot sit alongside
// since-departed batches on any historical date either.
func (s *LedgerService) EnterBatch(ctx context.Context, in EnterBatchInput) (*models.Batch, error) {
	if in.Quantity <= 0 {
		return nil, apperrors.InvalidQuantity(in.Quantity)
	}
	now := s.now()
	if models.DateOnly(in.EntryDate).After(models.DateOnly(now)) {
		return nil, apperrors.FutureDate()
	}

	var batch *models.Batch
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		enclosures := s.enclosures.WithTx(tx)
		batches := s.batches.WithTx(tx)

		enclosure, err := enclosures.FindByIDForUpdate(ctx, in.EnclosureID)
		if err != nil {
			return err
		}
		occupied, err := batches.PeakEnclosureLive(ctx, in.EnclosureID, in.EntryDate, now)
		if err != nil {
			return err
		}
		if occupied+in.Quantity > enclosure.Capacity {
			return apperrors.CapacityExceeded(enclosure.EnclosureID, enclosure.Capacity, occupied+in.Quantity)
		}

		batch = &models.Batch{
			EnclosureID:       in.EnclosureID,
			EntryDate:         models.DateOnly(in.EntryDate),
			EntryQuantity:     in.Quantity,
			Leftover:          in.Leftover,
			LeftoverReason:    in.LeftoverReason,
			LeftoverFlaggedAt: in.FlaggedAt,
		}
		return batches.Create(ctx, batch)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("batch entered",
		zap.Uint("batch_id", batch.BatchID),
		zap.Uint("enclosure_id", batch.EnclosureID),
		zap.Int("quantity", batch.EntryQuantity),
		zap.Bool("leftover", batch.Leftover))
	return batch, nil
}

// LiveCount derives a batch's live count as of a date.
func (s *LedgerService) LiveCount(ctx context.Context, batchID uint, asOf time.Time) (int, error) {
	return s.batches.LiveCount(ctx, batchID, asOf)
}

// EnclosureLive derives the aggregate live count of an enclosure.
func (s *LedgerService) EnclosureLive(ctx context.Context, enclosureID uint, asOf time.Time) (int, error) {
	if _, err := s.enclosures.FindByID(ctx, enclosureID); err != nil {
		return 0, err
	}
	return s.batches.EnclosureLive(ctx, enclosureID, asOf)
}

// BatchStocks snapshots an enclosure's batches with their live counts.
func (s *LedgerService) BatchStocks(ctx context.Context, enclosureID uint, asOf time.Time) ([]repositories.BatchLive, error) {
	return s.batches.ListWithLive(ctx, enclosureID, asOf)
}
