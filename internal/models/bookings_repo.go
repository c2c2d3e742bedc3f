package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingsRepo interface {
	CreateBooking(ctx context.Context, booking *Booking) (*Booking, error)
	GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListBookingsByGuest(ctx context.Context, guestID uuid.UUID, offset, limit int) ([]*Booking, int, error)
	ListBookingsByListing(ctx context.Context, listingID uuid.UUID, offset, limit int) ([]*Booking, int, error)
	UpdateBookingDates(ctx context.Context, id uuid.UUID, checkIn, checkOut time.Time, totalPrice decimal.Decimal) (*Booking, error)
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, status BookingStatus) (*Booking, error)
	HasConflict(ctx context.Context, listingID uuid.UUID, checkIn, checkOut time.Time, excludeBookingID *uuid.UUID) (bool, error)
}

const bookingColumns = `booking_id, listing_id, guest_id, check_in_date, check_out_date,
	number_of_guests, total_price, status, special_requests, created_at, updated_at`

func (pg *PostgresRepo) CreateBooking(ctx context.Context, booking *Booking) (*Booking, error) {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES (:booking_id, :listing_id, :guest_id, :check_in_date, :check_out_date,
			:number_of_guests, :total_price, :status, :special_requests, :created_at, :updated_at)`

	if _, err := pg.db.NamedExecContext(ctx, query, booking); err != nil {
		err = translateConstraintError(err)
		if _, ok := AsValidationError(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create booking: %v", err)
	}

	return pg.GetBookingByID(ctx, booking.ID)
}

func (pg *PostgresRepo) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_id = $1`

	if err := pg.db.GetContext(ctx, &booking, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewValidationError(ErrBookingNotFound, "booking %s not found", id)
		}
		return nil, fmt.Errorf("failed to get booking: %v", err)
	}

	return &booking, nil
}

func (pg *PostgresRepo) ListBookingsByGuest(ctx context.Context, guestID uuid.UUID, offset, limit int) ([]*Booking, int, error) {
	bookings := []*Booking{}
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE guest_id = $1 ORDER BY check_in_date DESC OFFSET $2 LIMIT $3`

	if err := pg.db.SelectContext(ctx, &bookings, query, guestID, offset, limit); err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings for guest: %v", err)
	}

	var total int
	if err := pg.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM bookings WHERE guest_id = $1`, guestID); err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings for guest: %v", err)
	}

	return bookings, total, nil
}

func (pg *PostgresRepo) ListBookingsByListing(ctx context.Context, listingID uuid.UUID, offset, limit int) ([]*Booking, int, error) {
	bookings := []*Booking{}
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE listing_id = $1 ORDER BY check_in_date DESC OFFSET $2 LIMIT $3`

	if err := pg.db.SelectContext(ctx, &bookings, query, listingID, offset, limit); err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings for listing: %v", err)
	}

	var total int
	if err := pg.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM bookings WHERE listing_id = $1`, listingID); err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings for listing: %v", err)
	}

	return bookings, total, nil
}

func (pg *PostgresRepo) UpdateBookingDates(ctx context.Context, id uuid.UUID, checkIn, checkOut time.Time, totalPrice decimal.Decimal) (*Booking, error) {
	query := `
		UPDATE bookings
		SET check_in_date = $1, check_out_date = $2, total_price = $3, updated_at = now()
		WHERE booking_id = $4`

	res, err := pg.db.ExecContext(ctx, query, checkIn, checkOut, totalPrice, id)
	if err != nil {
		err = translateConstraintError(err)
		if _, ok := AsValidationError(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update booking dates: %v", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return nil, NewValidationError(ErrBookingNotFound, "booking %s not found", id)
	}

	return pg.GetBookingByID(ctx, id)
}

func (pg *PostgresRepo) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status BookingStatus) (*Booking, error) {
	query := `UPDATE bookings SET status = $1, updated_at = now() WHERE booking_id = $2`

	res, err := pg.db.ExecContext(ctx, query, status, id)
	if err != nil {
		err = translateConstraintError(err)
		if _, ok := AsValidationError(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update booking status: %v", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return nil, NewValidationError(ErrBookingNotFound, "booking %s not found", id)
	}

	return pg.GetBookingByID(ctx, id)
}

// HasConflict reports whether any pending or confirmed booking on the listing
// overlaps the half-open range [checkIn, checkOut). A stay ending exactly on
// checkIn, or starting exactly on checkOut, does not overlap. Pass
// excludeBookingID when revalidating an existing booking so it does not
// collide with itself.
func (pg *PostgresRepo) HasConflict(ctx context.Context, listingID uuid.UUID, checkIn, checkOut time.Time, excludeBookingID *uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE listing_id = $1
			  AND status IN ('pending', 'confirmed')
			  AND check_in_date < $3
			  AND check_out_date > $2
			  AND ($4::uuid IS NULL OR booking_id <> $4::uuid)
		)`

	var conflict bool
	if err := pg.db.GetContext(ctx, &conflict, query, listingID, checkIn, checkOut, excludeBookingID); err != nil {
		return false, fmt.Errorf("failed to check booking conflicts: %v", err)
	}

	return conflict, nil
}
