package models

import "time"

// Enclosure represents enclosures table (physical cages with a hard
// capacity on live animals)
type Enclosure struct {
	EnclosureID   uint      `gorm:"primaryKey;column:enclosure_id" json:"enclosure_id"`
	EnclosureCode string    `gorm:"type:varchar(20);not null;unique" json:"enclosure_code"`
	EnclosureName string    `gorm:"type:varchar(100);not null" json:"enclosure_name"`
	Capacity      int       `gorm:"not null;check:capacity >= 0" json:"capacity"`
	Region        *string   `gorm:"type:varchar(50);index" json:"region,omitempty"`
	CaretakerID   *uint     `json:"caretaker_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relationships
	Caretaker *User `gorm:"foreignKey:CaretakerID" json:"caretaker,omitempty"`
}

// TableName specifies the table name for Enclosure
func (Enclosure) TableName() string {
	return "enclosures"
}

// SpareCapacity returns the headroom left once liveCount animals are housed.
func (e *Enclosure) SpareCapacity(liveCount int) int {
	spare := e.Capacity - liveCount
	if spare < 0 {
		return 0
	}
	return spare
}

// RegionScope returns the pricing scope of the enclosure, empty for
// enclosures without a region tag.
func (e *Enclosure) RegionScope() string {
	if e.Region == nil {
		return ""
	}
	return *e.Region
}
