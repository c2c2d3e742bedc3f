package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/staybay/internal/helpers"
	"github.com/joshua-takyi/staybay/internal/models"
)

type BookingService struct {
	bookingsRepo models.BookingsRepo
	listingsRepo models.ListingsRepo
	availability *AvailabilityChecker
	// now is swappable so tests can pin the calendar.
	now func() time.Time
}

func NewBookingService(bookingsRepo models.BookingsRepo, listingsRepo models.ListingsRepo, availability *AvailabilityChecker) *BookingService {
	return &BookingService{
		bookingsRepo: bookingsRepo,
		listingsRepo: listingsRepo,
		availability: availability,
		now:          time.Now,
	}
}

// ValidateAndPrice runs the admission checks for a stay and returns a priced
// pending booking that has not been persisted. Checks run in a fixed order
// and stop at the first failure: date ordering, past check-in, listing
// availability, guest capacity, then date conflicts. Dates are truncated to
// midnight UTC before any comparison.
func (bs *BookingService) ValidateAndPrice(ctx context.Context, listing *models.Listing, guestID uuid.UUID, checkIn, checkOut time.Time, numberOfGuests int, excludeBookingID *uuid.UUID) (*models.Booking, error) {
	if listing == nil {
		return nil, fmt.Errorf("listing is nil")
	}
	if guestID == uuid.Nil {
		return nil, fmt.Errorf("invalid guest ID")
	}

	checkIn = helpers.Midnight(checkIn)
	checkOut = helpers.Midnight(checkOut)

	if !checkOut.After(checkIn) {
		return nil, models.NewValidationError(models.ErrInvalidDateRange, "check-out date must be after check-in date")
	}
	if checkIn.Before(helpers.Midnight(bs.now())) {
		return nil, models.NewValidationError(models.ErrPastCheckInDate, "check-in date cannot be in the past")
	}
	if !listing.IsAvailable {
		return nil, models.NewValidationError(models.ErrListingUnavailable, "this listing is not available for booking")
	}
	if numberOfGuests < 1 {
		return nil, models.NewValidationError(models.ErrGuestCapacityExceeded, "number of guests must be at least 1")
	}
	if numberOfGuests > listing.MaxGuests {
		return nil, models.NewValidationError(models.ErrGuestCapacityExceeded, "number of guests (%d) exceeds the maximum allowed (%d) for this listing", numberOfGuests, listing.MaxGuests)
	}

	conflict, err := bs.availability.HasConflict(ctx, listing.ID, checkIn, checkOut, excludeBookingID)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, models.NewValidationError(models.ErrDateRangeConflict, "the selected dates conflict with an existing booking")
	}

	_, total, err := PriceStay(listing.PricePerNight, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	return &models.Booking{
		ID:             uuid.New(),
		ListingID:      listing.ID,
		GuestID:        guestID,
		CheckInDate:    checkIn,
		CheckOutDate:   checkOut,
		NumberOfGuests: numberOfGuests,
		TotalPrice:     total,
		Status:         models.BookingStatusPending,
	}, nil
}

func (bs *BookingService) CreateBooking(ctx context.Context, guestID, listingID uuid.UUID, checkIn, checkOut time.Time, numberOfGuests int, specialRequests string) (*models.Booking, error) {
	if listingID == uuid.Nil {
		return nil, fmt.Errorf("invalid listing ID")
	}

	listing, err := bs.listingsRepo.GetListingByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	booking, err := bs.ValidateAndPrice(ctx, listing, guestID, checkIn, checkOut, numberOfGuests, nil)
	if err != nil {
		return nil, err
	}

	if trimmed := strings.TrimSpace(specialRequests); trimmed != "" {
		booking.SpecialRequests = &trimmed
	}
	now := bs.now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	return bs.bookingsRepo.CreateBooking(ctx, booking)
}

// UpdateBookingDates reschedules a stay. The new range passes through the
// same validation and pricing as a fresh booking, with this booking excluded
// from conflict detection so it cannot collide with itself. Cancelled and
// completed bookings are frozen.
func (bs *BookingService) UpdateBookingDates(ctx context.Context, bookingID uuid.UUID, checkIn, checkOut time.Time) (*models.Booking, error) {
	if bookingID == uuid.Nil {
		return nil, fmt.Errorf("invalid booking ID")
	}

	booking, err := bs.bookingsRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status.Terminal() {
		return nil, models.NewValidationError(models.ErrInvalidTransition, "a %s booking cannot be rescheduled", booking.Status)
	}

	listing, err := bs.listingsRepo.GetListingByID(ctx, booking.ListingID)
	if err != nil {
		return nil, err
	}

	draft, err := bs.ValidateAndPrice(ctx, listing, booking.GuestID, checkIn, checkOut, booking.NumberOfGuests, &booking.ID)
	if err != nil {
		return nil, err
	}

	return bs.bookingsRepo.UpdateBookingDates(ctx, bookingID, draft.CheckInDate, draft.CheckOutDate, draft.TotalPrice)
}

// TransitionStatus moves a booking along pending -> confirmed -> completed,
// with cancellation allowed from either blocking state. Repeating the current
// status is a no-op; anything else outside the machine is rejected without
// touching the row.
func (bs *BookingService) TransitionStatus(ctx context.Context, bookingID uuid.UUID, next models.BookingStatus) (*models.Booking, error) {
	if bookingID == uuid.Nil {
		return nil, fmt.Errorf("invalid booking ID")
	}
	if !next.Valid() {
		return nil, models.NewValidationError(models.ErrInvalidInput, "unknown booking status %q", string(next))
	}

	booking, err := bs.bookingsRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status == next {
		return booking, nil
	}
	if !booking.Status.CanTransitionTo(next) {
		return nil, models.NewValidationError(models.ErrInvalidTransition, "cannot move booking from %s to %s", booking.Status, next)
	}

	return bs.bookingsRepo.UpdateBookingStatus(ctx, bookingID, next)
}

func (bs *BookingService) GetBooking(ctx context.Context, bookingID uuid.UUID) (*models.Booking, error) {
	if bookingID == uuid.Nil {
		return nil, fmt.Errorf("invalid booking ID")
	}

	return bs.bookingsRepo.GetBookingByID(ctx, bookingID)
}

func (bs *BookingService) ListBookingsByGuest(ctx context.Context, guestID uuid.UUID, offset, limit int) ([]*models.Booking, int, error) {
	if offset < 0 || limit <= 0 {
		return nil, 0, fmt.Errorf("invalid offset or limit")
	}
	if guestID == uuid.Nil {
		return nil, 0, fmt.Errorf("invalid guest ID")
	}

	return bs.bookingsRepo.ListBookingsByGuest(ctx, guestID, offset, limit)
}

func (bs *BookingService) ListBookingsByListing(ctx context.Context, listingID uuid.UUID, offset, limit int) ([]*models.Booking, int, error) {
	if offset < 0 || limit <= 0 {
		return nil, 0, fmt.Errorf("invalid offset or limit")
	}
	if listingID == uuid.Nil {
		return nil, 0, fmt.Errorf("invalid listing ID")
	}

	return bs.bookingsRepo.ListBookingsByListing(ctx, listingID, offset, limit)
}
