package models

import "time"

// PriceEntry represents price_entries table: an effective-dated market
// price with independent per-head and per-kilogram figures. Active
// entries sharing a region scope must never overlap; deactivation closes
// the interval instead of deleting the row, so the table keeps history.
type PriceEntry struct {
	PriceID      uint       `gorm:"primaryKey;column:price_id" json:"price_id"`
	PricePerHead float64    `gorm:"type:decimal(12,2);not null" json:"price_per_head"`
	PricePerKg   float64    `gorm:"type:decimal(12,2);not null" json:"price_per_kg"`
	StartDate    time.Time  `gorm:"type:date;not null;index" json:"start_date"`
	EndDate      *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	Region       *string    `gorm:"type:varchar(50);index" json:"region,omitempty"`
	IsActive     bool       `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName specifies the table name for PriceEntry
func (PriceEntry) TableName() string {
	return "price_entries"
}

// Scope returns the region scope of the entry, empty for the global
// (region-less) scope.
func (p *PriceEntry) Scope() string {
	if p.Region == nil {
		return ""
	}
	return *p.Region
}

// Covers reports whether date falls in the entry's [start, end)
// interval. A nil end date means the entry is open-ended.
func (p *PriceEntry) Covers(date time.Time) bool {
	d := DateOnly(date)
	if d.Before(DateOnly(p.StartDate)) {
		return false
	}
	if p.EndDate == nil {
		return true
	}
	return d.Before(DateOnly(*p.EndDate))
}

// Overlaps reports whether the entry's interval intersects [start, end),
// with nil end treated as +infinity on either side.
func (p *PriceEntry) Overlaps(start time.Time, end *time.Time) bool {
	// s1 < e2 && s2 < e1
	if end != nil && !DateOnly(p.StartDate).Before(DateOnly(*end)) {
		return false
	}
	if p.EndDate != nil && !DateOnly(start).Before(DateOnly(*p.EndDate)) {
		return false
	}
	return true
}
