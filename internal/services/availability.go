package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/staybay/internal/models"
)

// AvailabilityChecker answers whether a date range on a listing is free of
// blocking bookings.
type AvailabilityChecker struct {
	bookingsRepo models.BookingsRepo
}

func NewAvailabilityChecker(bookingsRepo models.BookingsRepo) *AvailabilityChecker {
	return &AvailabilityChecker{
		bookingsRepo: bookingsRepo,
	}
}

// HasConflict reports whether any pending or confirmed booking overlaps
// [checkIn, checkOut) on the listing. Two stays that meet exactly on a
// turnover day do not overlap. Pass excludeBookingID when revalidating an
// existing booking so it is not counted against itself.
func (ac *AvailabilityChecker) HasConflict(ctx context.Context, listingID uuid.UUID, checkIn, checkOut time.Time, excludeBookingID *uuid.UUID) (bool, error) {
	if listingID == uuid.Nil {
		return false, fmt.Errorf("invalid listing ID")
	}
	if !checkOut.After(checkIn) {
		return false, models.NewValidationError(models.ErrInvalidDateRange, "check-out date must be after check-in date")
	}

	return ac.bookingsRepo.HasConflict(ctx, listingID, checkIn, checkOut, excludeBookingID)
}
