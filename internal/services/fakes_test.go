package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/staybay/internal/models"
	"github.com/shopspring/decimal"
)

// memStore is an in-memory stand-in for the Postgres repo. It applies the
// same half-open overlap rule and the same not-found and duplicate semantics,
// so services behave identically against it.
type memStore struct {
	listings map[uuid.UUID]*models.Listing
	bookings map[uuid.UUID]*models.Booking
	reviews  map[uuid.UUID]*models.Review
}

func newMemStore() *memStore {
	return &memStore{
		listings: map[uuid.UUID]*models.Listing{},
		bookings: map[uuid.UUID]*models.Booking{},
		reviews:  map[uuid.UUID]*models.Review{},
	}
}

func (m *memStore) CreateListing(ctx context.Context, listing *models.Listing) (*models.Listing, error) {
	cp := *listing
	m.listings[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memStore) GetListingByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	l, ok := m.listings[id]
	if !ok {
		return nil, models.NewValidationError(models.ErrListingNotFound, "listing %s not found", id)
	}
	cp := *l
	return &cp, nil
}

func (m *memStore) ListListings(ctx context.Context, offset, limit int) ([]*models.Listing, int, error) {
	all := make([]*models.Listing, 0, len(m.listings))
	for _, l := range m.listings {
		cp := *l
		all = append(all, &cp)
	}
	return page(all, offset, limit), len(all), nil
}

func (m *memStore) ListListingsByHost(ctx context.Context, hostID uuid.UUID, offset, limit int) ([]*models.Listing, int, error) {
	matched := []*models.Listing{}
	for _, l := range m.listings {
		if l.HostID == hostID {
			cp := *l
			matched = append(matched, &cp)
		}
	}
	return page(matched, offset, limit), len(matched), nil
}

func (m *memStore) UpdateListing(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*models.Listing, error) {
	l, ok := m.listings[id]
	if !ok {
		return nil, models.NewValidationError(models.ErrListingNotFound, "listing %s not found", id)
	}
	for key, value := range updates {
		switch key {
		case "title":
			l.Title = value.(string)
		case "description":
			l.Description = value.(string)
		case "location":
			l.Location = value.(string)
		case "price_per_night":
			l.PricePerNight = value.(decimal.Decimal)
		case "number_of_bedrooms":
			l.NumberOfBedrooms = value.(int)
		case "number_of_bathrooms":
			l.NumberOfBathrooms = value.(int)
		case "max_guests":
			l.MaxGuests = value.(int)
		case "is_available":
			l.IsAvailable = value.(bool)
		}
	}
	cp := *l
	return &cp, nil
}

func (m *memStore) DeleteListing(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.listings[id]; !ok {
		return models.NewValidationError(models.ErrListingNotFound, "listing %s not found", id)
	}
	delete(m.listings, id)
	return nil
}

func (m *memStore) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	cp := *booking
	m.bookings[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memStore) GetBookingByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, models.NewValidationError(models.ErrBookingNotFound, "booking %s not found", id)
	}
	cp := *b
	return &cp, nil
}

func (m *memStore) ListBookingsByGuest(ctx context.Context, guestID uuid.UUID, offset, limit int) ([]*models.Booking, int, error) {
	matched := []*models.Booking{}
	for _, b := range m.bookings {
		if b.GuestID == guestID {
			cp := *b
			matched = append(matched, &cp)
		}
	}
	return page(matched, offset, limit), len(matched), nil
}

func (m *memStore) ListBookingsByListing(ctx context.Context, listingID uuid.UUID, offset, limit int) ([]*models.Booking, int, error) {
	matched := []*models.Booking{}
	for _, b := range m.bookings {
		if b.ListingID == listingID {
			cp := *b
			matched = append(matched, &cp)
		}
	}
	return page(matched, offset, limit), len(matched), nil
}

func (m *memStore) UpdateBookingDates(ctx context.Context, id uuid.UUID, checkIn, checkOut time.Time, totalPrice decimal.Decimal) (*models.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, models.NewValidationError(models.ErrBookingNotFound, "booking %s not found", id)
	}
	b.CheckInDate = checkIn
	b.CheckOutDate = checkOut
	b.TotalPrice = totalPrice
	cp := *b
	return &cp, nil
}

func (m *memStore) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus) (*models.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, models.NewValidationError(models.ErrBookingNotFound, "booking %s not found", id)
	}
	b.Status = status
	cp := *b
	return &cp, nil
}

func (m *memStore) HasConflict(ctx context.Context, listingID uuid.UUID, checkIn, checkOut time.Time, excludeBookingID *uuid.UUID) (bool, error) {
	for _, b := range m.bookings {
		if b.ListingID != listingID || !b.Status.Blocking() {
			continue
		}
		if excludeBookingID != nil && b.ID == *excludeBookingID {
			continue
		}
		if b.CheckInDate.Before(checkOut) && b.CheckOutDate.After(checkIn) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	cp := *review
	m.reviews[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memStore) GetReviewByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	r, ok := m.reviews[id]
	if !ok {
		return nil, models.NewValidationError(models.ErrReviewNotFound, "review %s not found", id)
	}
	cp := *r
	return &cp, nil
}

func (m *memStore) ListReviewsByListing(ctx context.Context, listingID uuid.UUID, offset, limit int) ([]*models.Review, int, error) {
	matched := []*models.Review{}
	for _, r := range m.reviews {
		if r.ListingID == listingID {
			cp := *r
			matched = append(matched, &cp)
		}
	}
	return page(matched, offset, limit), len(matched), nil
}

func (m *memStore) ListReviewsByReviewer(ctx context.Context, reviewerID uuid.UUID, offset, limit int) ([]*models.Review, int, error) {
	matched := []*models.Review{}
	for _, r := range m.reviews {
		if r.ReviewerID == reviewerID {
			cp := *r
			matched = append(matched, &cp)
		}
	}
	return page(matched, offset, limit), len(matched), nil
}

func (m *memStore) HasReviewed(ctx context.Context, listingID, reviewerID uuid.UUID) (bool, error) {
	for _, r := range m.reviews {
		if r.ListingID == listingID && r.ReviewerID == reviewerID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) UpdateReview(ctx context.Context, id uuid.UUID, rating int, comment string) (*models.Review, error) {
	r, ok := m.reviews[id]
	if !ok {
		return nil, models.NewValidationError(models.ErrReviewNotFound, "review %s not found", id)
	}
	r.Rating = rating
	r.Comment = comment
	cp := *r
	return &cp, nil
}

func (m *memStore) DeleteReview(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.reviews[id]; !ok {
		return models.NewValidationError(models.ErrReviewNotFound, "review %s not found", id)
	}
	delete(m.reviews, id)
	return nil
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func (m *memStore) addListing(hostID uuid.UUID, price string, maxGuests int, available bool) *models.Listing {
	l := &models.Listing{
		ID:                uuid.New(),
		HostID:            hostID,
		Title:             "Cozy Downtown Apartment",
		Description:       "Perfect blend of luxury and comfort in a prime location.",
		Location:          "Austin, TX",
		PricePerNight:     decimal.RequireFromString(price),
		NumberOfBedrooms:  2,
		NumberOfBathrooms: 1,
		MaxGuests:         maxGuests,
		IsAvailable:       available,
		CreatedAt:         time.Now().UTC(),
		UpdatedAt:         time.Now().UTC(),
	}
	m.listings[l.ID] = l
	return l
}

func (m *memStore) addBooking(listingID, guestID uuid.UUID, checkIn, checkOut time.Time, status models.BookingStatus) *models.Booking {
	b := &models.Booking{
		ID:             uuid.New(),
		ListingID:      listingID,
		GuestID:        guestID,
		CheckInDate:    checkIn,
		CheckOutDate:   checkOut,
		NumberOfGuests: 2,
		TotalPrice:     decimal.NewFromInt(100),
		Status:         status,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}
	m.bookings[b.ID] = b
	return b
}
