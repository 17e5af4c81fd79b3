package services

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Joshtri/SIMTernakAyam-API-sub000/models"
	"github.com/Joshtri/SIMTernakAyam-API-sub000/repositories"
)

// EnclosureSummary is a read-only aggregate row for the reporting layer.
type EnclosureSummary struct {
	EnclosureID   uint    `json:"enclosure_id"`
	EnclosureCode string  `json:"enclosure_code"`
	EnclosureName string  `json:"enclosure_name"`
	Capacity      int     `json:"capacity"`
	Live          int     `json:"live"`
	Batches       int     `json:"batches"`
	OpenBatches   int     `json:"open_batches"`
	OccupancyPct  float64 `json:"occupancy_pct"`
}

// DepletionStats totals deaths and harvests for an enclosure window.
// Relocation deductions are excluded on purpose.
type DepletionStats struct {
	EnclosureID  uint      `json:"enclosure_id"`
	From         time.Time `json:"from"`
	To           time.Time `json:"to"`
	Deaths       int       `json:"deaths"`
	Harvested    int       `json:"harvested"`
	MortalityPct float64   `json:"mortality_pct"`
}

// DashboardService aggregates derived ledger figures for dashboards and
// report rendering. It only reads; mutation stays with the other
// services.
type DashboardService struct {
	db         *gorm.DB
	enclosures *repositories.EnclosureRepository
	batches    *repositories.BatchRepository
	events     *repositories.StockEventRepository
	logger     *zap.Logger
}

// NewDashboardService wires a new dashboard service instance.
func NewDashboardService(db *gorm.DB, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		db:         db,
		enclosures: repositories.NewEnclosureRepository(db),
		batches:    repositories.NewBatchRepository(db),
		events:     repositories.NewStockEventRepository(db),
		logger:     logger,
	}
}

// Overview summarizes every enclosure's occupancy as of a date.
func (s *DashboardService) Overview(ctx context.Context, asOf time.Time) ([]EnclosureSummary, error) {
	enclosures, err := s.enclosures.List(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]EnclosureSummary, 0, len(enclosures))
	for _, enclosure := range enclosures {
		stocks, err := s.batches.ListWithLive(ctx, enclosure.EnclosureID, asOf)
		if err != nil {
			return nil, err
		}
		summary := EnclosureSummary{
			EnclosureID:   enclosure.EnclosureID,
			EnclosureCode: enclosure.EnclosureCode,
			EnclosureName: enclosure.EnclosureName,
			Capacity:      enclosure.Capacity,
			Batches:       len(stocks),
		}
		for _, stock := range stocks {
			summary.Live += stock.Live
			if stock.Live > 0 {
				summary.OpenBatches++
			}
		}
		if enclosure.Capacity > 0 {
			summary.OccupancyPct = float64(summary.Live) / float64(enclosure.Capacity) * 100
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// EnclosureStats totals deaths and harvests of one enclosure over a
// window and relates mortality to the stock entered in that window.
func (s *DashboardService) EnclosureStats(ctx context.Context, enclosureID uint, from, to time.Time) (*DepletionStats, error) {
	if _, err := s.enclosures.FindByID(ctx, enclosureID); err != nil {
		return nil, err
	}
	deaths, err := s.events.SumByKind(ctx, enclosureID, models.EventDeath, from, to)
	if err != nil {
		return nil, err
	}
	harvested, err := s.events.SumByKind(ctx, enclosureID, models.EventHarvest, from, to)
	if err != nil {
		return nil, err
	}

	stats := &DepletionStats{
		EnclosureID: enclosureID,
		From:        models.DateOnly(from),
		To:          models.DateOnly(to),
		Deaths:      deaths,
		Harvested:   harvested,
	}
	batches, err := s.batches.ListByEnclosure(ctx, enclosureID)
	if err != nil {
		return nil, err
	}
	var entered int
	for _, batch := range batches {
		if !models.DateOnly(batch.EntryDate).After(models.DateOnly(to)) {
			entered += batch.EntryQuantity
		}
	}
	if entered > 0 {
		stats.MortalityPct = float64(deaths) / float64(entered) * 100
	}
	return stats, nil
}
