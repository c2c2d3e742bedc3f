package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/staybay/internal/helpers"
	"github.com/joshua-takyi/staybay/internal/models"
	"github.com/shopspring/decimal"
)

type ListingService struct {
	listingsRepo models.ListingsRepo
	availability *AvailabilityChecker
}

func NewListingService(listingsRepo models.ListingsRepo, availability *AvailabilityChecker) *ListingService {
	return &ListingService{
		listingsRepo: listingsRepo,
		availability: availability,
	}
}

// StayQuote prices a hypothetical stay without reserving anything.
type StayQuote struct {
	ListingID     uuid.UUID       `json:"listing_id"`
	CheckInDate   string          `json:"check_in_date"`
	CheckOutDate  string          `json:"check_out_date"`
	Nights        int             `json:"nights"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	TotalPrice    decimal.Decimal `json:"total_price"`
}

func (ls *ListingService) CreateListing(ctx context.Context, hostID uuid.UUID, listing *models.Listing) (*models.Listing, error) {
	if hostID == uuid.Nil {
		return nil, fmt.Errorf("invalid host ID")
	}
	if listing == nil {
		return nil, fmt.Errorf("listing is nil")
	}

	if err := models.Validate.Struct(listing); err != nil {
		return nil, models.NewValidationError(models.ErrInvalidInput, "invalid listing data: %v", err)
	}
	if err := listing.ValidatePricing(); err != nil {
		return nil, err
	}

	if listing.ID == uuid.Nil {
		listing.ID = uuid.New()
	}
	now := time.Now().UTC()
	listing.HostID = hostID
	listing.CreatedAt = now
	listing.UpdatedAt = now

	return ls.listingsRepo.CreateListing(ctx, listing)
}

func (ls *ListingService) GetListing(ctx context.Context, listingID uuid.UUID) (*models.Listing, error) {
	if listingID == uuid.Nil {
		return nil, fmt.Errorf("invalid listing ID")
	}

	return ls.listingsRepo.GetListingByID(ctx, listingID)
}

func (ls *ListingService) ListListings(ctx context.Context, offset, limit int) ([]*models.Listing, int, error) {
	if offset < 0 || limit <= 0 {
		return nil, 0, fmt.Errorf("invalid offset or limit")
	}

	return ls.listingsRepo.ListListings(ctx, offset, limit)
}

func (ls *ListingService) ListListingsByHost(ctx context.Context, hostID uuid.UUID, offset, limit int) ([]*models.Listing, int, error) {
	if offset < 0 || limit <= 0 {
		return nil, 0, fmt.Errorf("invalid offset or limit")
	}
	if hostID == uuid.Nil {
		return nil, 0, fmt.Errorf("invalid host ID")
	}

	return ls.listingsRepo.ListListingsByHost(ctx, hostID, offset, limit)
}

// UpdateListing applies a partial update. The repo whitelists column names;
// value checks happen here so a bad patch never reaches the database.
func (ls *ListingService) UpdateListing(ctx context.Context, listingID uuid.UUID, updates map[string]interface{}) (*models.Listing, error) {
	if listingID == uuid.Nil {
		return nil, fmt.Errorf("invalid listing ID")
	}
	if len(updates) == 0 {
		return nil, models.NewValidationError(models.ErrInvalidInput, "no fields to update")
	}

	if v, ok := updates["price_per_night"]; ok {
		price, ok := v.(decimal.Decimal)
		if !ok || !price.IsPositive() {
			return nil, models.NewValidationError(models.ErrInvalidInput, "price_per_night must be greater than zero")
		}
	}
	for _, field := range []string{"number_of_bedrooms", "number_of_bathrooms", "max_guests"} {
		if v, ok := updates[field]; ok {
			n, ok := v.(int)
			if !ok || n < 1 {
				return nil, models.NewValidationError(models.ErrInvalidInput, "%s must be at least 1", field)
			}
		}
	}
	for _, field := range []string{"title", "description", "location"} {
		if v, ok := updates[field]; ok {
			s, ok := v.(string)
			if !ok || strings.TrimSpace(s) == "" {
				return nil, models.NewValidationError(models.ErrInvalidInput, "%s cannot be empty", field)
			}
		}
	}

	return ls.listingsRepo.UpdateListing(ctx, listingID, updates)
}

func (ls *ListingService) DeleteListing(ctx context.Context, listingID uuid.UUID) error {
	if listingID == uuid.Nil {
		return fmt.Errorf("invalid listing ID")
	}

	return ls.listingsRepo.DeleteListing(ctx, listingID)
}

// CheckAvailability reports whether the listing can host a stay over the
// given range. The listing's is_available flag and any blocking booking both
// close the calendar; a missing listing is an error, not "unavailable".
func (ls *ListingService) CheckAvailability(ctx context.Context, listingID uuid.UUID, checkIn, checkOut time.Time) (bool, error) {
	listing, err := ls.listingsRepo.GetListingByID(ctx, listingID)
	if err != nil {
		return false, err
	}

	checkIn = helpers.Midnight(checkIn)
	checkOut = helpers.Midnight(checkOut)
	if !checkOut.After(checkIn) {
		return false, models.NewValidationError(models.ErrInvalidDateRange, "check-out date must be after check-in date")
	}

	if !listing.IsAvailable {
		return false, nil
	}

	conflict, err := ls.availability.HasConflict(ctx, listingID, checkIn, checkOut, nil)
	if err != nil {
		return false, err
	}

	return !conflict, nil
}

// QuoteStay prices a stay on the listing without touching the calendar.
func (ls *ListingService) QuoteStay(ctx context.Context, listingID uuid.UUID, checkIn, checkOut time.Time) (*StayQuote, error) {
	listing, err := ls.listingsRepo.GetListingByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	checkIn = helpers.Midnight(checkIn)
	checkOut = helpers.Midnight(checkOut)
	nights, total, err := PriceStay(listing.PricePerNight, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	return &StayQuote{
		ListingID:     listing.ID,
		CheckInDate:   checkIn.Format(time.DateOnly),
		CheckOutDate:  checkOut.Format(time.DateOnly),
		Nights:        nights,
		PricePerNight: listing.PricePerNight,
		TotalPrice:    total,
	}, nil
}
