package models

import "time"

// BaseModel contains common timestamp columns for all models
type BaseModel struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DateOnly truncates a timestamp to its calendar date in local time.
// Ledger arithmetic compares calendar dates, never clock times.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
