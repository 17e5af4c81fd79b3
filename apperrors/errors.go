// Package apperrors defines the typed validation failures the ledger
// services return. Handlers translate kinds into HTTP statuses; only
// genuine infrastructure failures travel as plain wrapped errors.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind identifies a category of domain validation failure.
type Kind string

const (
	KindInvalidQuantity            Kind = "invalid_quantity"
	KindInsufficientStock          Kind = "insufficient_stock"
	KindInsufficientAggregateStock Kind = "insufficient_aggregate_stock"
	KindCapacityExceeded           Kind = "capacity_exceeded"
	KindDateBeforeEntry            Kind = "date_before_entry"
	KindFutureDate                 Kind = "future_date"
	KindOverlappingPeriod          Kind = "overlapping_period"
	KindNoActivePriceFound         Kind = "no_active_price_found"
	KindAlreadyCancelled           Kind = "already_cancelled"
	KindEntityNotFound             Kind = "entity_not_found"
	KindInvalidRelocation          Kind = "invalid_relocation"
	KindInvalidPeriod              Kind = "invalid_period"
)

// Error is a domain validation failure with a machine-readable kind.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New builds a domain error of the given kind.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err (or anything it wraps) is a domain error of
// the given kind.
func IsKind(err error, kind Kind) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind == kind
	}
	return false
}

// KindOf extracts the kind of a domain error, or empty when err is not one.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// InvalidQuantity flags a non-positive quantity.
func InvalidQuantity(quantity int) *Error {
	return New(KindInvalidQuantity, "quantity must be positive, got %d", quantity)
}

// InsufficientStock flags a request exceeding a single batch's live count.
func InsufficientStock(batchID uint, requested, available int) *Error {
	return New(KindInsufficientStock,
		"batch %d holds %d live animals, cannot deduct %d", batchID, available, requested)
}

// InsufficientAggregateStock flags a request exceeding a whole enclosure's
// live count.
func InsufficientAggregateStock(enclosureID uint, requested, available int) *Error {
	return New(KindInsufficientAggregateStock,
		"enclosure %d holds %d live animals across its batches, cannot distribute %d",
		enclosureID, available, requested)
}

// CapacityExceeded flags a mutation that would overfill an enclosure.
func CapacityExceeded(enclosureID uint, capacity, wouldHold int) *Error {
	return New(KindCapacityExceeded,
		"enclosure %d has capacity %d, operation would house %d", enclosureID, capacity, wouldHold)
}

// DateBeforeEntry flags an event dated before its batch entered.
func DateBeforeEntry(batchID uint) *Error {
	return New(KindDateBeforeEntry, "event date precedes entry date of batch %d", batchID)
}

// FutureDate flags a date after now.
func FutureDate() *Error {
	return New(KindFutureDate, "date must not be in the future")
}

// OverlappingPeriod flags a price activation conflicting with an already
// active entry, naming the conflict.
func OverlappingPeriod(conflictingPriceID uint, scope string) *Error {
	if scope == "" {
		scope = "global"
	}
	return New(KindOverlappingPeriod,
		"active price entry %d already covers part of that period in the %s scope",
		conflictingPriceID, scope)
}

// NoActivePriceFound flags strict price resolution coming up empty.
func NoActivePriceFound(scope string) *Error {
	if scope == "" {
		scope = "global"
	}
	return New(KindNoActivePriceFound, "no active price entry covers that date in the %s scope", scope)
}

// AlreadyCancelled flags a repeat cancellation.
func AlreadyCancelled(relocationID uint) *Error {
	return New(KindAlreadyCancelled, "relocation %d is already cancelled", relocationID)
}

// InvalidRelocation flags a structurally impossible relocation request,
// such as matching source and destination enclosures.
func InvalidRelocation(format string, args ...interface{}) *Error {
	return New(KindInvalidRelocation, format, args...)
}

// InvalidPeriod flags a price interval whose end does not come after its
// start.
func InvalidPeriod() *Error {
	return New(KindInvalidPeriod, "end date must come after start date")
}

// NotFound flags a missing entity.
func NotFound(entity string, id uint) *Error {
	return New(KindEntityNotFound, "%s %d not found", entity, id)
}
