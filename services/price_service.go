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

// PriceService maintains the effective-dated price table. Within one
// region scope (or the global, region-less scope) at most one active
// entry may cover any date; activation that would break that is
// rejected instead of silently letting two prices compete.
type PriceService struct {
	db     *gorm.DB
	prices *repositories.PriceRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewPriceService wires a new price service instance.
func NewPriceService(db *gorm.DB, logger *zap.Logger) *PriceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PriceService{
		db:     db,
		prices: repositories.NewPriceRepository(db),
		logger: logger,
		now:    time.Now,
	}
}

// AddPriceInput carries a new price entry.
type AddPriceInput struct {
	PricePerHead float64    `json:"price_per_head"`
	PricePerKg   float64    `json:"price_per_kg"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Region       *string    `json:"region,omitempty"`
	Active       bool       `json:"active"`
}

// AddPrice creates a price entry. When created active, the scope's other
// active entries are checked for interval overlap inside the same
// transaction that inserts the row.
func (s *PriceService) AddPrice(ctx context.Context, in AddPriceInput) (*models.PriceEntry, error) {
	start := models.DateOnly(in.StartDate)
	var end *time.Time
	if in.EndDate != nil {
		e := models.DateOnly(*in.EndDate)
		if !e.After(start) {
			return nil, apperrors.InvalidPeriod()
		}
		end = &e
	}

	entry := &models.PriceEntry{
		PricePerHead: in.PricePerHead,
		PricePerKg:   in.PricePerKg,
		StartDate:    start,
		EndDate:      end,
		Region:       in.Region,
		IsActive:     in.Active,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		prices := s.prices.WithTx(tx)
		if in.Active {
			if err := s.checkOverlap(ctx, prices, entry); err != nil {
				return err
			}
		}
		return prices.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("price entry added",
		zap.Uint("price_id", entry.PriceID),
		zap.String("scope", entry.Scope()),
		zap.Bool("active", entry.IsActive))
	return entry, nil
}

// Activate re-activates an entry, re-running the overlap check against
// the other active entries of its scope.
func (s *PriceService) Activate(ctx context.Context, priceID uint) (*models.PriceEntry, error) {
	var entry *models.PriceEntry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		prices := s.prices.WithTx(tx)
		var err error
		entry, err = prices.FindByIDForUpdate(ctx, priceID)
		if err != nil {
			return err
		}
		if entry.IsActive {
			return nil
		}
		if err := s.checkOverlap(ctx, prices, entry); err != nil {
			return err
		}
		entry.IsActive = true
		return prices.Update(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Deactivate retires an entry. An open-ended interval is closed at now
// so the row keeps its history instead of being deleted.
func (s *PriceService) Deactivate(ctx context.Context, priceID uint) (*models.PriceEntry, error) {
	var entry *models.PriceEntry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		prices := s.prices.WithTx(tx)
		var err error
		entry, err = prices.FindByIDForUpdate(ctx, priceID)
		if err != nil {
			return err
		}
		entry.IsActive = false
		if entry.EndDate == nil {
			end := models.DateOnly(s.now())
			entry.EndDate = &end
		}
		return prices.Update(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// checkOverlap rejects the entry when any other active entry of its
// scope intersects its interval. Runs under the scope's row locks.
func (s *PriceService) checkOverlap(ctx context.Context, prices *repositories.PriceRepository, entry *models.PriceEntry) error {
	active, err := prices.ListActiveByScope(ctx, entry.Scope(), true)
	if err != nil {
		return err
	}
	for i := range active {
		if active[i].PriceID == entry.PriceID {
			continue
		}
		if active[i].Overlaps(entry.StartDate, entry.EndDate) {
			return apperrors.OverlappingPeriod(active[i].PriceID, entry.Scope())
		}
	}
	return nil
}

// Resolve returns the active price entry covering the date for a region,
// or nil when no entry matches. "No active price on this date" is a
// first-class outcome here, not an error; strict callers turn the nil
// into NoActivePriceFound themselves.
//
// Region-specific entries outrank global ones; among equally scoped
// matches the latest start wins.
func (s *PriceService) Resolve(ctx context.Context, date time.Time, region string) (*models.PriceEntry, error) {
	covering, err := s.prices.ListActiveCovering(ctx, date)
	if err != nil {
		return nil, err
	}
	return selectPrice(covering, region), nil
}

// ResolveLatest returns the most recent price (active history included)
// started on or before the date, for best-effort estimates.
func (s *PriceService) ResolveLatest(ctx context.Context, date time.Time, region string) (*models.PriceEntry, error) {
	return s.prices.LatestStartedOnOrBefore(ctx, date, region)
}

// selectPrice picks the winning entry among candidates already known to
// cover the date: regional match first, then latest start, then the
// newest row.
func selectPrice(candidates []models.PriceEntry, region string) *models.PriceEntry {
	var best *models.PriceEntry
	for i := range candidates {
		c := &candidates[i]
		scope := c.Scope()
		if scope != "" && scope != region {
			continue
		}
		if best == nil {
			best = c
			continue
		}
		bestRegional := best.Scope() != ""
		cRegional := scope != ""
		switch {
		case cRegional && !bestRegional:
			best = c
		case bestRegional && !cRegional:
			// keep best
		case c.StartDate.After(best.StartDate):
			best = c
		case c.StartDate.Equal(best.StartDate) && c.PriceID > best.PriceID:
			best = c
		}
	}
	return best
}
