package models

import (
	"errors"
	"fmt"
)

// ValidationKind tags a rejected-input error so the HTTP layer can map it to a
// status code without string matching.
type ValidationKind string

const (
	ErrInvalidDateRange      ValidationKind = "invalid_date_range"
	ErrPastCheckInDate       ValidationKind = "past_check_in_date"
	ErrListingUnavailable    ValidationKind = "listing_unavailable"
	ErrGuestCapacityExceeded ValidationKind = "guest_capacity_exceeded"
	ErrDateRangeConflict     ValidationKind = "date_range_conflict"
	ErrInvalidRating         ValidationKind = "invalid_rating"
	ErrDuplicateReview       ValidationKind = "duplicate_review"
	ErrNotBookingOwner       ValidationKind = "not_booking_owner"
	ErrBookingNotCompleted   ValidationKind = "booking_not_completed"
	ErrInvalidTransition     ValidationKind = "invalid_status_transition"
	ErrInvalidInput          ValidationKind = "invalid_input"
	ErrListingNotFound       ValidationKind = "listing_not_found"
	ErrBookingNotFound       ValidationKind = "booking_not_found"
	ErrReviewNotFound        ValidationKind = "review_not_found"
)

// ValidationError is returned by validators and repositories when a request is
// rejected. It is never process-fatal; the same input always produces the same
// kind.
type ValidationError struct {
	Kind   ValidationKind
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Detail
}

func NewValidationError(kind ValidationKind, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Kind:   kind,
		Detail: fmt.Sprintf(format, args...),
	}
}

// AsValidationError reports whether err (or anything it wraps) is a
// ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// IsKind reports whether err is a ValidationError of the given kind.
func IsKind(err error, kind ValidationKind) bool {
	ve, ok := AsValidationError(err)
	return ok && ve.Kind == kind
}
