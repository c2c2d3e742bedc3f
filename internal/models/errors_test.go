package models

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationErrorKinds(t *testing.T) {
	err := NewValidationError(ErrGuestCapacityExceeded, "number of guests (%d) exceeds the maximum allowed (%d) for this listing", 6, 4)

	if err.Error() != "number of guests (6) exceeds the maximum allowed (4) for this listing" {
		t.Errorf("unexpected detail: %s", err.Error())
	}
	if !IsKind(err, ErrGuestCapacityExceeded) {
		t.Error("IsKind missed the matching kind")
	}
	if IsKind(err, ErrDateRangeConflict) {
		t.Error("IsKind matched the wrong kind")
	}
}

func TestAsValidationErrorUnwraps(t *testing.T) {
	inner := NewValidationError(ErrBookingNotFound, "booking not found")
	wrapped := fmt.Errorf("loading booking: %w", inner)

	ve, ok := AsValidationError(wrapped)
	if !ok {
		t.Fatal("wrapped validation error not recognized")
	}
	if ve.Kind != ErrBookingNotFound {
		t.Errorf("kind = %s, want %s", ve.Kind, ErrBookingNotFound)
	}

	if _, ok := AsValidationError(errors.New("connection refused")); ok {
		t.Error("plain error misread as a validation error")
	}
	if IsKind(nil, ErrBookingNotFound) {
		t.Error("nil error matched a kind")
	}
}
