package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a guest's rating of a listing. BookingID is optional: when set it
// points at the completed stay the review is based on, and it survives the
// booking's deletion as null.
type Review struct {
	ID         uuid.UUID  `json:"review_id" db:"review_id"`
	ListingID  uuid.UUID  `json:"listing_id" db:"listing_id"`
	ReviewerID uuid.UUID  `json:"reviewer_id" db:"reviewer_id"`
	BookingID  *uuid.UUID `json:"booking_id,omitempty" db:"booking_id"`
	Rating     int        `json:"rating" db:"rating" validate:"required,min=1,max=5"`
	Comment    string     `json:"comment" db:"comment" validate:"required"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}
