package models

import "time"

// Batch represents batches table. A batch is a cohort of animals that
// entered one enclosure on one date. EntryQuantity is historical ground
// truth and is never mutated once events reference the batch; the live
// count is always derived from EntryQuantity minus the batch's stock
// events, never stored.
type Batch struct {
	BatchID           uint       `gorm:"primaryKey;column:batch_id" json:"batch_id"`
	EnclosureID       uint       `gorm:"not null;index" json:"enclosure_id"`
	EntryDate         time.Time  `gorm:"type:date;not null;index" json:"entry_date"`
	EntryQuantity     int        `gorm:"not null;check:entry_quantity > 0" json:"entry_quantity"`
	Leftover          bool       `gorm:"not null;default:false" json:"leftover"`
	LeftoverReason    *string    `gorm:"type:varchar(200)" json:"leftover_reason,omitempty"`
	LeftoverFlaggedAt *time.Time `gorm:"type:date" json:"leftover_flagged_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	// Relationships
	Enclosure Enclosure    `gorm:"foreignKey:EnclosureID" json:"enclosure,omitempty"`
	Events    []StockEvent `gorm:"foreignKey:BatchID" json:"events,omitempty"`
}

// TableName specifies the table name for Batch
func (Batch) TableName() string {
	return "batches"
}

// LiveAsOf derives the live count from a preloaded event slice. Events
// dated after asOf are ignored; the result is clamped at zero.
func (b *Batch) LiveAsOf(events []StockEvent, asOf time.Time) int {
	live := b.EntryQuantity
	cutoff := DateOnly(asOf)
	for _, ev := range events {
		if DateOnly(ev.EventDate).After(cutoff) {
			continue
		}
		live -= ev.Quantity
	}
	if live < 0 {
		return 0
	}
	return live
}

// Closed reports whether the batch is implicitly closed: there is no
// explicit status column, a batch with no live animals left is done.
func (b *Batch) Closed(events []StockEvent, asOf time.Time) bool {
	return b.LiveAsOf(events, asOf) == 0
}
