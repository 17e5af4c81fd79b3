package models

import "time"

// RelocationStatus enumerates relocation states. The operation runs
// synchronously, so records are born completed.
type RelocationStatus string

const (
	RelocationCompleted RelocationStatus = "completed"
	RelocationCancelled RelocationStatus = "cancelled"
)

// Relocation represents relocations table: a paired move that depletes a
// source batch and creates a fresh batch in another enclosure.
//
// Cancelling a relocation is a one-way status flip only. It does not
// restore source stock and does not remove the destination batch;
// operators correct mistakes with a counter-relocation.
type Relocation struct {
	RelocationID      uint             `gorm:"primaryKey;column:relocation_id" json:"relocation_id"`
	RelocationCode    string           `gorm:"type:varchar(40);not null;unique" json:"relocation_code"`
	SourceEnclosureID uint             `gorm:"not null;index" json:"source_enclosure_id"`
	DestEnclosureID   uint             `gorm:"not null;index" json:"dest_enclosure_id"`
	SourceBatchID     uint             `gorm:"not null" json:"source_batch_id"`
	DestBatchID       uint             `gorm:"not null" json:"dest_batch_id"`
	Quantity          int              `gorm:"not null;check:quantity > 0" json:"quantity"`
	RelocationDate    time.Time        `gorm:"type:date;not null" json:"relocation_date"`
	Reason            string           `gorm:"type:varchar(50);not null" json:"reason"`
	Note              *string          `gorm:"type:text" json:"note,omitempty"`
	OperatorID        uint             `gorm:"not null" json:"operator_id"`
	Status            RelocationStatus `gorm:"type:varchar(20);not null;default:'completed'" json:"status"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`

	// Relationships
	SourceEnclosure Enclosure `gorm:"foreignKey:SourceEnclosureID" json:"source_enclosure,omitempty"`
	DestEnclosure   Enclosure `gorm:"foreignKey:DestEnclosureID" json:"dest_enclosure,omitempty"`
	SourceBatch     Batch     `gorm:"foreignKey:SourceBatchID" json:"source_batch,omitempty"`
	DestBatch       Batch     `gorm:"foreignKey:DestBatchID" json:"dest_batch,omitempty"`
	Operator        User      `gorm:"foreignKey:OperatorID" json:"operator,omitempty"`
}

// TableName specifies the table name for Relocation
func (Relocation) TableName() string {
	return "relocations"
}
