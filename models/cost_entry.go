package models

import "time"

// CostEntry represents cost_entries table. A cost either targets one
// enclosure directly or, when EnclosureID is nil, is a shared cost split
// evenly across the enclosures holding live stock on its recorded date.
type CostEntry struct {
	CostID       uint      `gorm:"primaryKey;column:cost_id" json:"cost_id"`
	Label        string    `gorm:"type:varchar(100);not null" json:"label"`
	Amount       float64   `gorm:"type:decimal(14,2);not null;check:amount >= 0" json:"amount"`
	RecordedDate time.Time `gorm:"type:date;not null;index" json:"recorded_date"`
	EnclosureID  *uint     `gorm:"index" json:"enclosure_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`

	// Relationships
	Enclosure *Enclosure `gorm:"foreignKey:EnclosureID" json:"enclosure,omitempty"`
}

// TableName specifies the table name for CostEntry
func (CostEntry) TableName() string {
	return "cost_entries"
}

// Shared reports whether the cost is untagged and must be prorated.
func (c *CostEntry) Shared() bool {
	return c.EnclosureID == nil
}
