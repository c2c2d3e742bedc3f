package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Listing is a property a host offers for short stays. PricePerNight is an
// exact decimal; arithmetic on it never goes through floats.
type Listing struct {
	ID                uuid.UUID       `json:"listing_id" db:"listing_id"`
	HostID            uuid.UUID       `json:"host_id" db:"host_id"`
	Title             string          `json:"title" db:"title" validate:"required,min=2,max=200"`
	Description       string          `json:"description" db:"description" validate:"required"`
	Location          string          `json:"location" db:"location" validate:"required,max=200"`
	PricePerNight     decimal.Decimal `json:"price_per_night" db:"price_per_night"`
	NumberOfBedrooms  int             `json:"number_of_bedrooms" db:"number_of_bedrooms" validate:"required,min=1"`
	NumberOfBathrooms int             `json:"number_of_bathrooms" db:"number_of_bathrooms" validate:"required,min=1"`
	MaxGuests         int             `json:"max_guests" db:"max_guests" validate:"required,min=1"`
	IsAvailable       bool            `json:"is_available" db:"is_available"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" db:"updated_at"`

	// Read-side aggregates, computed from reviews on fetch. Not columns on
	// the listings table.
	AverageRating float64 `json:"average_rating" db:"average_rating"`
	TotalReviews  int     `json:"total_reviews" db:"total_reviews"`
}

// ValidatePricing rejects listings whose nightly price is not strictly
// positive. Kept out of struct tags because the validator cannot compare
// decimals.
func (l *Listing) ValidatePricing() error {
	if !l.PricePerNight.IsPositive() {
		return NewValidationError(ErrInvalidInput, "price_per_night must be greater than zero")
	}
	return nil
}
