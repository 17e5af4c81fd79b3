package models

import "time"

// StockEventKind classifies the deductions recorded against a batch.
type StockEventKind string

const (
	// EventHarvest records animals sold/collected with an average weight.
	EventHarvest StockEventKind = "harvest"
	// EventDeath records mortality with a cause and time of day.
	EventDeath StockEventKind = "death"
	// EventRelocationOut records animals moved out by a relocation. It
	// depletes the ledger like any other event but is excluded from
	// mortality and harvest statistics.
	EventRelocationOut StockEventKind = "relocation_out"
)

// StockEvent represents stock_events table, the immutable depletion
// ledger of a batch
type StockEvent struct {
	EventID   uint           `gorm:"primaryKey;column:event_id" json:"event_id"`
	BatchID   uint           `gorm:"not null;index" json:"batch_id"`
	Kind      StockEventKind `gorm:"type:varchar(20);not null;index" json:"kind"`
	EventDate time.Time      `gorm:"type:date;not null;index" json:"event_date"`
	EventTime *string        `gorm:"type:varchar(5)" json:"event_time,omitempty"`
	Quantity  int            `gorm:"not null;check:quantity > 0" json:"quantity"`
	Cause     *string        `gorm:"type:varchar(100)" json:"cause,omitempty"`
	AvgWeight *float64       `gorm:"type:decimal(6,2)" json:"avg_weight,omitempty"`
	CreatedAt time.Time      `json:"created_at"`

	// Relationships
	Batch Batch `gorm:"foreignKey:BatchID" json:"batch,omitempty"`
}

// TableName specifies the table name for StockEvent
func (StockEvent) TableName() string {
	return "stock_events"
}

// CountsInStatistics reports whether the event belongs in mortality and
// harvest figures. Relocation deductions only move stock, they do not
// represent loss or yield.
func (e *StockEvent) CountsInStatistics() bool {
	return e.Kind != EventRelocationOut
}
