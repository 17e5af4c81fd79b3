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

// ProfitOutcome classifies a profit report by the sign of its net profit.
type ProfitOutcome string

const (
	OutcomeProfit    ProfitOutcome = "profit"
	OutcomeLoss      ProfitOutcome = "loss"
	OutcomeBreakEven ProfitOutcome = "break_even"
)

// ProfitReport combines a harvest, the price resolved for its date, and
// the costs matched to its batch's window.
type ProfitReport struct {
	HarvestEventID uint          `json:"harvest_event_id"`
	BatchID        uint          `json:"batch_id"`
	EnclosureID    uint          `json:"enclosure_id"`
	HarvestDate    time.Time     `json:"harvest_date"`
	Quantity       int           `json:"quantity"`
	AvgWeight      float64       `json:"avg_weight"`
	PriceID        uint          `json:"price_id"`
	PricePerKg     float64       `json:"price_per_kg"`
	GrossRevenue   float64       `json:"gross_revenue"`
	DirectCost     float64       `json:"direct_cost"`
	SharedCost     float64       `json:"shared_cost"`
	TotalCost      float64       `json:"total_cost"`
	NetProfit      float64       `json:"net_profit"`
	MarginPct      float64       `json:"margin_pct"`
	Outcome        ProfitOutcome `json:"outcome"`
}

// ProfitService computes per-harvest profitability.
type ProfitService struct {
	db         *gorm.DB
	events     *repositories.StockEventRepository
	batches    *repositories.BatchRepository
	enclosures *repositories.EnclosureRepository
	costs      *repositories.CostRepository
	prices     *PriceService
	logger     *zap.Logger
}

// NewProfitService wires a new profit service instance.
func NewProfitService(db *gorm.DB, prices *PriceService, logger *zap.Logger) *ProfitService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfitService{
		db:         db,
		events:     repositories.NewStockEventRepository(db),
		batches:    repositories.NewBatchRepository(db),
		enclosures: repositories.NewEnclosureRepository(db),
		costs:      repositories.NewCostRepository(db),
		prices:     prices,
		logger:     logger,
	}
}

// ComputeProfit builds the profit report for a harvest event. Strict
// mode fails with NoActivePriceFound when no active price covers the
// harvest date; best-effort mode falls back to the most recent price
// started on or before it. Realized profit is weight-based: the
// per-head price figure is only for pre-harvest estimates and is never
// used here.
func (s *ProfitService) ComputeProfit(ctx context.Context, harvestEventID uint, bestEffort bool) (*ProfitReport, error) {
	event, err := s.events.FindByID(ctx, harvestEventID)
	if err != nil {
		return nil, err
	}
	if event.Kind != models.EventHarvest {
		return nil, apperrors.NotFound("harvest event", harvestEventID)
	}
	batch, err := s.batches.FindByID(ctx, event.BatchID)
	if err != nil {
		return nil, err
	}
	enclosure, err := s.enclosures.FindByID(ctx, batch.EnclosureID)
	if err != nil {
		return nil, err
	}

	scope := enclosure.RegionScope()
	price, err := s.prices.Resolve(ctx, event.EventDate, scope)
	if err != nil {
		return nil, err
	}
	if price == nil && bestEffort {
		price, err = s.prices.ResolveLatest(ctx, event.EventDate, scope)
		if err != nil {
			return nil, err
		}
	}
	if price == nil {
		return nil, apperrors.NoActivePriceFound(scope)
	}

	avgWeight := 0.0
	if event.AvgWeight != nil {
		avgWeight = *event.AvgWeight
	}
	gross := float64(event.Quantity) * avgWeight * price.PricePerKg

	direct, shared, err := s.matchCosts(ctx, enclosure.EnclosureID, batch.EntryDate, event.EventDate)
	if err != nil {
		return nil, err
	}

	total := direct + shared
	net := gross - total
	margin := 0.0
	if gross != 0 {
		margin = net / gross * 100
	}

	outcome := OutcomeBreakEven
	switch {
	case net > 0:
		outcome = OutcomeProfit
	case net < 0:
		outcome = OutcomeLoss
	}

	report := &ProfitReport{
		HarvestEventID: event.EventID,
		BatchID:        batch.BatchID,
		EnclosureID:    enclosure.EnclosureID,
		HarvestDate:    event.EventDate,
		Quantity:       event.Quantity,
		AvgWeight:      avgWeight,
		PriceID:        price.PriceID,
		PricePerKg:     price.PricePerKg,
		GrossRevenue:   gross,
		DirectCost:     direct,
		SharedCost:     shared,
		TotalCost:      total,
		NetProfit:      net,
		MarginPct:      margin,
		Outcome:        outcome,
	}
	s.logger.Info("profit computed",
		zap.Uint("harvest_event_id", report.HarvestEventID),
		zap.Float64("gross", report.GrossRevenue),
		zap.Float64("net", report.NetProfit),
		zap.String("outcome", string(report.Outcome)))
	return report, nil
}

// matchCosts aggregates the costs attributable to one enclosure over
// [from, to]: directly tagged costs in full, plus an even share of each
// untagged shared cost split across the enclosures holding live stock on
// the cost's recorded date. The enclosure only carries a share of costs
// dated while it held live stock itself.
func (s *ProfitService) matchCosts(ctx context.Context, enclosureID uint, from, to time.Time) (direct, shared float64, err error) {
	tagged, err := s.costs.ListTagged(ctx, enclosureID, from, to)
	if err != nil {
		return 0, 0, err
	}
	for _, cost := range tagged {
		direct += cost.Amount
	}

	untagged, err := s.costs.ListShared(ctx, from, to)
	if err != nil {
		return 0, 0, err
	}
	for _, cost := range untagged {
		liveIDs, err := s.batches.LiveEnclosureIDs(ctx, cost.RecordedDate)
		if err != nil {
			return 0, 0, err
		}
		if len(liveIDs) == 0 {
			continue
		}
		for _, id := range liveIDs {
			if id == enclosureID {
				shared += cost.Amount / float64(len(liveIDs))
				break
			}
		}
	}
	return direct, shared, nil
}
