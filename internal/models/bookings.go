package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// Terminal statuses accept no further transitions and freeze the booking's
// dates.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCancelled || s == BookingStatusCompleted
}

// Blocking statuses hold their date range against new bookings. Cancelled and
// completed stays release it.
func (s BookingStatus) Blocking() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// CanTransitionTo reports whether the status machine allows moving to next.
// pending may confirm or cancel, confirmed may complete or cancel, terminal
// statuses allow nothing.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return next == BookingStatusConfirmed || next == BookingStatusCancelled
	case BookingStatusConfirmed:
		return next == BookingStatusCompleted || next == BookingStatusCancelled
	}
	return false
}

// Booking reserves a listing for a half-open date range: the guest occupies
// check-in night through the night before check-out. TotalPrice is fixed at
// validation time and only changes when the dates are revalidated.
type Booking struct {
	ID              uuid.UUID       `json:"booking_id" db:"booking_id"`
	ListingID       uuid.UUID       `json:"listing_id" db:"listing_id"`
	GuestID         uuid.UUID       `json:"guest_id" db:"guest_id"`
	CheckInDate     time.Time       `json:"check_in_date" db:"check_in_date"`
	CheckOutDate    time.Time       `json:"check_out_date" db:"check_out_date"`
	NumberOfGuests  int             `json:"number_of_guests" db:"number_of_guests"`
	TotalPrice      decimal.Decimal `json:"total_price" db:"total_price"`
	Status          BookingStatus   `json:"status" db:"status"`
	SpecialRequests *string         `json:"special_requests,omitempty" db:"special_requests"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// DurationNights is the whole-day span of the stay. Dates are stored at
// midnight UTC so the division is exact.
func (b *Booking) DurationNights() int {
	return int(b.CheckOutDate.Sub(b.CheckInDate) / (24 * time.Hour))
}

// MarshalJSON renders the stay dates as plain calendar dates and attaches the
// derived night count.
func (b Booking) MarshalJSON() ([]byte, error) {
	type alias Booking
	return json.Marshal(struct {
		alias
		CheckInDate    string `json:"check_in_date"`
		CheckOutDate   string `json:"check_out_date"`
		DurationNights int    `json:"duration_nights"`
	}{
		alias:          alias(b),
		CheckInDate:    b.CheckInDate.Format(time.DateOnly),
		CheckOutDate:   b.CheckOutDate.Format(time.DateOnly),
		DurationNights: b.DurationNights(),
	})
}
