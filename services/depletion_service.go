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

// DepletionService records harvest and death events against batches.
// Every write re-validates the derived live count under the batch row
// lock, inside the transaction that persists the event.
type DepletionService struct {
	db         *gorm.DB
	batches    *repositories.BatchRepository
	events     *repositories.StockEventRepository
	enclosures *repositories.EnclosureRepository
	logger     *zap.Logger
}

// NewDepletionService wires a new depletion service instance.
func NewDepletionService(db *gorm.DB, logger *zap.Logger) *DepletionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DepletionService{
		db:         db,
		batches:    repositories.NewBatchRepository(db),
		events:     repositories.NewStockEventRepository(db),
		enclosures: repositories.NewEnclosureRepository(db),
		logger:     logger,
	}
}

// DeathInput carries a death report for one batch.
type DeathInput struct {
	BatchID   uint      `json:"batch_id"`
	Date      time.Time `json:"date"`
	TimeOfDay *string   `json:"time_of_day,omitempty"`
	Quantity  int       `json:"quantity"`
	Cause     string    `json:"cause"`
}

// HarvestInput carries a harvest report for one batch.
type HarvestInput struct {
	BatchID   uint      `json:"batch_id"`
	Date      time.Time `json:"date"`
	Quantity  int       `json:"quantity"`
	AvgWeight float64   `json:"avg_weight"`
}

// RecordDeath records mortality against a batch.
func (s *DepletionService) RecordDeath(ctx context.Context, in DeathInput) (*models.StockEvent, error) {
	cause := in.Cause
	event := &models.StockEvent{
		BatchID:   in.BatchID,
		Kind:      models.EventDeath,
		EventDate: models.DateOnly(in.Date),
		EventTime: in.TimeOfDay,
		Quantity:  in.Quantity,
		Cause:     &cause,
	}
	if err := s.record(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// RecordHarvest records a harvest against a batch.
func (s *DepletionService) RecordHarvest(ctx context.Context, in HarvestInput) (*models.StockEvent, error) {
	weight := in.AvgWeight
	event := &models.StockEvent{
		BatchID:   in.BatchID,
		Kind:      models.EventHarvest,
		EventDate: models.DateOnly(in.Date),
		Quantity:  in.Quantity,
		AvgWeight: &weight,
	}
	if err := s.record(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *DepletionService) record(ctx context.Context, event *models.StockEvent) error {
	if event.Quantity <= 0 {
		return apperrors.InvalidQuantity(event.Quantity)
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		batches := s.batches.WithTx(tx)

		batch, err := batches.FindByIDForUpdate(ctx, event.BatchID)
		if err != nil {
			return err
		}
		if event.EventDate.Before(models.DateOnly(batch.EntryDate)) {
			return apperrors.DateBeforeEntry(batch.BatchID)
		}
		live, err := batches.LiveOf(ctx, batch, event.EventDate)
		if err != nil {
			return err
		}
		if event.Quantity > live {
			return apperrors.InsufficientStock(batch.BatchID, event.Quantity, live)
		}
		return s.events.WithTx(tx).Create(ctx, event)
	})
	if err != nil {
		return err
	}

	s.logger.Info("depletion recorded",
		zap.Uint("event_id", event.EventID),
		zap.Uint("batch_id", event.BatchID),
		zap.String("kind", string(event.Kind)),
		zap.Int("quantity", event.Quantity))
	return nil
}

// UpdateEventInput carries an edit to an existing harvest or death.
type UpdateEventInput struct {
	Date      time.Time `json:"date"`
	TimeOfDay *string   `json:"time_of_day,omitempty"`
	Quantity  int       `json:"quantity"`
	Cause     *string   `json:"cause,omitempty"`
	AvgWeight *float64  `json:"avg_weight,omitempty"`
}

// UpdateEvent edits a harvest or death. The live count is recomputed
// from all other events, excluding the one being edited, so the edit
// never double-counts itself. Relocation deductions belong to their
// relocation and cannot be edited here.
func (s *DepletionService) UpdateEvent(ctx context.Context, eventID uint, in UpdateEventInput) (*models.StockEvent, error) {
	if in.Quantity <= 0 {
		return nil, apperrors.InvalidQuantity(in.Quantity)
	}
	var event *models.StockEvent
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		batches := s.batches.WithTx(tx)
		events := s.events.WithTx(tx)

		var err error
		event, err = events.FindByID(ctx, eventID)
		if err != nil {
			return err
		}
		if event.Kind == models.EventRelocationOut {
			return apperrors.InvalidRelocation("event %d belongs to a relocation and cannot be edited directly", eventID)
		}
		batch, err := batches.FindByIDForUpdate(ctx, event.BatchID)
		if err != nil {
			return err
		}
		newDate := models.DateOnly(in.Date)
		if newDate.Before(models.DateOnly(batch.EntryDate)) {
			return apperrors.DateBeforeEntry(batch.BatchID)
		}
		live, err := batches.LiveCountExcluding(ctx, batch, newDate, event.EventID)
		if err != nil {
			return err
		}
		if in.Quantity > live {
			return apperrors.InsufficientStock(batch.BatchID, in.Quantity, live)
		}

		event.EventDate = newDate
		event.Quantity = in.Quantity
		if event.Kind == models.EventDeath {
			event.EventTime = in.TimeOfDay
			if in.Cause != nil {
				event.Cause = in.Cause
			}
		}
		if event.Kind == models.EventHarvest && in.AvgWeight != nil {
			event.AvgWeight = in.AvgWeight
		}
		return events.Update(ctx, event)
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

// DeleteEvent removes a harvest or death from the ledger. Deleting only
// raises the derived live count, so no stock validation is needed;
// capacity never constrains historical corrections.
func (s *DepletionService) DeleteEvent(ctx context.Context, eventID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		events := s.events.WithTx(tx)
		event, err := events.FindByID(ctx, eventID)
		if err != nil {
			return err
		}
		if event.Kind == models.EventRelocationOut {
			return apperrors.InvalidRelocation("event %d belongs to a relocation and cannot be deleted directly", eventID)
		}
		if _, err := s.batches.WithTx(tx).FindByIDForUpdate(ctx, event.BatchID); err != nil {
			return err
		}
		return events.Delete(ctx, eventID)
	})
}

// EnclosureDeathInput carries a death reported for a whole enclosure,
// not yet tied to one batch.
type EnclosureDeathInput struct {
	EnclosureID uint      `json:"enclosure_id"`
	Date        time.Time `json:"date"`
	TimeOfDay   *string   `json:"time_of_day,omitempty"`
	Quantity    int       `json:"quantity"`
	Cause       string    `json:"cause"`
}

// EnclosureHarvestInput carries a harvest reported for a whole enclosure.
type EnclosureHarvestInput struct {
	EnclosureID uint      `json:"enclosure_id"`
	Date        time.Time `json:"date"`
	Quantity    int       `json:"quantity"`
	AvgWeight   float64   `json:"avg_weight"`
}

// RecordEnclosureDeath distributes an aggregate death report across the
// enclosure's batches with the allocation policy and persists one event
// per allocation, all or nothing.
func (s *DepletionService) RecordEnclosureDeath(ctx context.Context, in EnclosureDeathInput) ([]models.StockEvent, error) {
	cause := in.Cause
	return s.recordAggregate(ctx, in.EnclosureID, in.Quantity, models.DateOnly(in.Date),
		func(batchID uint, quantity int) *models.StockEvent {
			return &models.StockEvent{
				BatchID:   batchID,
				Kind:      models.EventDeath,
				EventDate: models.DateOnly(in.Date),
				EventTime: in.TimeOfDay,
				Quantity:  quantity,
				Cause:     &cause,
			}
		})
}

// RecordEnclosureHarvest distributes an aggregate harvest report across
// the enclosure's batches and persists one event per allocation.
func (s *DepletionService) RecordEnclosureHarvest(ctx context.Context, in EnclosureHarvestInput) ([]models.StockEvent, error) {
	weight := in.AvgWeight
	return s.recordAggregate(ctx, in.EnclosureID, in.Quantity, models.DateOnly(in.Date),
		func(batchID uint, quantity int) *models.StockEvent {
			return &models.StockEvent{
				BatchID:   batchID,
				Kind:      models.EventHarvest,
				EventDate: models.DateOnly(in.Date),
				Quantity:  quantity,
				AvgWeight: &weight,
			}
		})
}

func (s *DepletionService) recordAggregate(ctx context.Context, enclosureID uint, total int, asOf time.Time, build func(batchID uint, quantity int) *models.StockEvent) ([]models.StockEvent, error) {
	if total <= 0 {
		return nil, apperrors.InvalidQuantity(total)
	}
	var created []models.StockEvent
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		batches := s.batches.WithTx(tx)
		events := s.events.WithTx(tx)

		if _, err := s.enclosures.WithTx(tx).FindByIDForUpdate(ctx, enclosureID); err != nil {
			return err
		}
		// Row-lock the batches before reading their counts so a single-batch
		// depletion on one of them cannot validate against the same snapshot
		// concurrently. Lock order is enclosure first, then batches by id,
		// which matches the relocation path.
		stocks, err := batches.ListWithLiveForUpdate(ctx, enclosureID, asOf)
		if err != nil {
			return err
		}
		snapshot := make([]BatchStock, 0, len(stocks))
		available := 0
		for _, stock := range stocks {
			snapshot = append(snapshot, BatchStock{
				BatchID:   stock.Batch.BatchID,
				EntryDate: stock.Batch.EntryDate,
				Leftover:  stock.Batch.Leftover,
				Live:      stock.Live,
			})
			available += stock.Live
		}
		allocations, err := Distribute(snapshot, total)
		if err != nil {
			if apperrors.IsKind(err, apperrors.KindInsufficientAggregateStock) {
				return apperrors.InsufficientAggregateStock(enclosureID, total, available)
			}
			return err
		}
		for _, allocation := range allocations {
			event := build(allocation.BatchID, allocation.Quantity)
			if err := events.Create(ctx, event); err != nil {
				return err
			}
			created = append(created, *event)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("aggregate depletion distributed",
		zap.Uint("enclosure_id", enclosureID),
		zap.Int("quantity", total),
		zap.Int("batches", len(created)))
	return created, nil
}
