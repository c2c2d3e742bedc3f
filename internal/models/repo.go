package models

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var Validate = validator.New()

type PostgresRepo struct {
	db *sqlx.DB
}

func PostgresNewRepo(db *sqlx.DB) *PostgresRepo {
	return &PostgresRepo{
		db: db,
	}
}

// DB exposes the underlying pool for tooling that needs raw access, such as
// the seeder's truncate pass.
func (pg *PostgresRepo) DB() *sqlx.DB {
	return pg.db
}

// Constraint names from the schema. The database enforces the same rules the
// validators check, so a constraint violation that slips past validation under
// concurrency is translated back into the matching ValidationError.
const (
	constraintBookingNoOverlap     = "bookings_no_overlap"
	constraintReviewOnePerReviewer = "reviews_one_per_listing_reviewer"
)

func translateConstraintError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code.Name() {
	case "exclusion_violation":
		if pqErr.Constraint == constraintBookingNoOverlap {
			return NewValidationError(ErrDateRangeConflict, "the selected dates conflict with an existing booking")
		}
	case "unique_violation":
		if pqErr.Constraint == constraintReviewOnePerReviewer {
			return NewValidationError(ErrDuplicateReview, "you have already reviewed this listing")
		}
	case "foreign_key_violation":
		switch pqErr.Constraint {
		case "bookings_listing_id_fkey", "reviews_listing_id_fkey":
			return NewValidationError(ErrListingNotFound, "listing does not exist")
		case "reviews_booking_id_fkey":
			return NewValidationError(ErrBookingNotFound, "booking does not exist")
		}
	case "check_violation":
		return NewValidationError(ErrInvalidInput, "row rejected by constraint %s", pqErr.Constraint)
	}
	return err
}
