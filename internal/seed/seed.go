package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/joshua-takyi/staybay/internal/helpers"
	"github.com/joshua-takyi/staybay/internal/models"
	"github.com/shopspring/decimal"
)

var listingTitles = []string{
	"Cozy Downtown Apartment", "Luxury Beach Villa", "Mountain Cabin Retreat",
	"Historic City Loft", "Modern Studio Flat", "Charming Countryside Cottage",
	"Beachfront Condo", "Urban Penthouse", "Rustic Log Cabin", "Elegant Townhouse",
	"Seaside Bungalow", "Metropolitan High-Rise", "Peaceful Garden House",
	"Designer Apartment", "Vintage Victorian Home", "Contemporary Loft Space",
	"Tropical Paradise Villa", "Ski Chalet", "Riverside Retreat", "City Center Suite",
}

var listingLocations = []string{
	"New York, NY", "Los Angeles, CA", "Miami, FL", "San Francisco, CA",
	"Austin, TX", "Seattle, WA", "Boston, MA", "Chicago, IL",
	"Denver, CO", "Nashville, TN", "Portland, OR", "San Diego, CA",
	"Las Vegas, NV", "Phoenix, AZ", "Atlanta, GA", "Washington, DC",
	"Honolulu, HI", "Charleston, SC", "Savannah, GA", "Key West, FL",
}

var listingDescriptions = []string{
	"Perfect for couples or solo travelers looking for comfort and convenience.",
	"Spacious accommodation with modern amenities and stunning views.",
	"Quiet retreat away from the hustle and bustle of city life.",
	"Located in the heart of the city with easy access to attractions.",
	"Beautifully decorated space with all the comforts of home.",
	"Ideal for families or groups seeking a memorable vacation experience.",
	"Recently renovated with high-end furnishings and appliances.",
	"Enjoy breathtaking sunrises and sunsets from your private balcony.",
	"Experience local culture and cuisine within walking distance.",
	"Perfect blend of luxury and comfort in a prime location.",
}

var reviewComments = []string{
	"Amazing place! Exactly as described and the host was very helpful.",
	"Great location and clean accommodations. Would definitely stay again.",
	"Perfect for our weekend getaway. Beautiful views and comfortable beds.",
	"Host was responsive and the place had everything we needed.",
	"Lovely property in a quiet neighborhood. Highly recommend!",
	"Good value for money. The amenities were as advertised.",
	"Wonderful experience! The place was spotless and well-equipped.",
	"Great communication from the host. Check-in was smooth and easy.",
	"Beautiful property with stunning views. Perfect for relaxation.",
	"Comfortable stay with all necessary amenities. Would book again.",
	"Nice place but could use some updates. Overall decent stay.",
	"Location was perfect for exploring the area. Clean and tidy.",
	"Exceeded expectations! The photos don't do it justice.",
	"Peaceful and quiet. Exactly what we were looking for.",
	"Good experience overall. Minor issues but nothing major.",
}

var specialRequestsPool = []string{
	"", "Late check-in please", "Extra towels needed",
	"Ground floor preferred", "Quiet room please",
	"Early check-in if possible",
}

// 60% confirmed, 15% each cancelled/completed, 10% pending.
var (
	bookingStatuses      = []models.BookingStatus{models.BookingStatusPending, models.BookingStatusConfirmed, models.BookingStatusCancelled, models.BookingStatusCompleted}
	bookingStatusWeights = []int{10, 60, 15, 15}
)

// Most reviews land at 4-5 stars.
var (
	ratingValues  = []int{1, 2, 3, 4, 5}
	ratingWeights = []int{2, 3, 10, 35, 50}
)

type Options struct {
	Listings int
	Bookings int
	Reviews  int
	Clear    bool
}

// Seeder fills the database with sample listings, bookings and reviews. The
// random source is injected so runs are reproducible under a fixed seed.
// Bookings insert through the repository, not the booking validator, so
// historical and overlapping stays can exist; anything the database's own
// constraints refuse is logged and skipped.
type Seeder struct {
	db           *sqlx.DB
	listingsRepo models.ListingsRepo
	bookingsRepo models.BookingsRepo
	reviewsRepo  models.ReviewsRepo
	rng          *rand.Rand
	logger       *slog.Logger
}

func NewSeeder(db *sqlx.DB, repo *models.PostgresRepo, rng *rand.Rand, logger *slog.Logger) *Seeder {
	return &Seeder{
		db:           db,
		listingsRepo: repo,
		bookingsRepo: repo,
		reviewsRepo:  repo,
		rng:          rng,
		logger:       logger,
	}
}

func (s *Seeder) Run(ctx context.Context, opts Options) error {
	if opts.Clear {
		if err := s.Clear(ctx); err != nil {
			return err
		}
	}

	hosts := s.randomIDs(4)
	guests := s.randomIDs(4)

	listings := s.seedListings(ctx, opts.Listings, hosts)
	bookings := s.seedBookings(ctx, opts.Bookings, listings, guests)
	s.seedReviews(ctx, opts.Reviews, listings, bookings, guests)

	return nil
}

// Clear removes seeded rows child-tables-first so foreign keys never block.
func (s *Seeder) Clear(ctx context.Context) error {
	s.logger.Warn("clearing existing data")
	for _, table := range []string{"reviews", "bookings", "listings"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %v", table, err)
		}
	}
	s.logger.Info("cleared existing listings, bookings, and reviews")
	return nil
}

func (s *Seeder) seedListings(ctx context.Context, count int, hosts []uuid.UUID) []*models.Listing {
	created := make([]*models.Listing, 0, count)
	now := time.Now().UTC()

	for i := 0; i < count; i++ {
		listing := &models.Listing{
			ID:                s.randomID(),
			HostID:            hosts[s.rng.Intn(len(hosts))],
			Title:             listingTitles[s.rng.Intn(len(listingTitles))],
			Description:       listingDescriptions[s.rng.Intn(len(listingDescriptions))],
			Location:          listingLocations[s.rng.Intn(len(listingLocations))],
			PricePerNight:     decimal.NewFromInt(int64(50 + s.rng.Intn(451))),
			NumberOfBedrooms:  1 + s.rng.Intn(4),
			NumberOfBathrooms: 1 + s.rng.Intn(3),
			MaxGuests:         2 + s.rng.Intn(7),
			IsAvailable:       s.rng.Intn(4) != 0,
			CreatedAt:         now,
			UpdatedAt:         now,
		}

		saved, err := s.listingsRepo.CreateListing(ctx, listing)
		if err != nil {
			s.logger.Warn("failed to create listing", "error", err)
			continue
		}
		created = append(created, saved)

		if len(created)%5 == 0 {
			s.logger.Info("created listings", "count", len(created))
		}
	}

	s.logger.Info("successfully created listings", "count", len(created))
	return created
}

func (s *Seeder) seedBookings(ctx context.Context, count int, listings []*models.Listing, guests []uuid.UUID) []*models.Booking {
	available := make([]*models.Listing, 0, len(listings))
	for _, l := range listings {
		if l.IsAvailable {
			available = append(available, l)
		}
	}
	if len(available) == 0 {
		s.logger.Warn("no available listings found, skipping booking creation")
		return nil
	}
	if len(guests) == 0 {
		s.logger.Warn("no guest users found, skipping booking creation")
		return nil
	}

	today := helpers.Midnight(time.Now())
	now := time.Now().UTC()
	created := make([]*models.Booking, 0, count)

	for i := 0; i < count; i++ {
		listing := available[s.rng.Intn(len(available))]
		guest := guests[s.rng.Intn(len(guests))]

		// Stays spread from 90 days back to a year ahead, 1-14 nights.
		checkIn := today.AddDate(0, 0, s.rng.Intn(456)-90)
		nights := 1 + s.rng.Intn(14)
		checkOut := checkIn.AddDate(0, 0, nights)

		maxGuests := listing.MaxGuests
		if maxGuests > 6 {
			maxGuests = 6
		}
		numberOfGuests := 1 + s.rng.Intn(maxGuests)

		totalPrice := listing.PricePerNight.Mul(decimal.NewFromInt(int64(nights)))
		status := bookingStatuses[weightedIndex(s.rng, bookingStatusWeights)]
		special := specialRequestsPool[s.rng.Intn(len(specialRequestsPool))]

		booking := &models.Booking{
			ID:             s.randomID(),
			ListingID:      listing.ID,
			GuestID:        guest,
			CheckInDate:    checkIn,
			CheckOutDate:   checkOut,
			NumberOfGuests: numberOfGuests,
			TotalPrice:     totalPrice,
			Status:         status,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if special != "" {
			booking.SpecialRequests = &special
		}

		saved, err := s.bookingsRepo.CreateBooking(ctx, booking)
		if err != nil {
			s.logger.Warn("failed to create booking", "error", err)
			continue
		}
		created = append(created, saved)

		if len(created)%10 == 0 {
			s.logger.Info("created bookings", "count", len(created))
		}
	}

	s.logger.Info("successfully created bookings", "count", len(created))
	return created
}

func (s *Seeder) seedReviews(ctx context.Context, count int, listings []*models.Listing, bookings []*models.Booking, guests []uuid.UUID) {
	completed := make([]*models.Booking, 0)
	for _, b := range bookings {
		if b.Status == models.BookingStatusCompleted {
			completed = append(completed, b)
		}
	}
	if len(completed) == 0 {
		s.logger.Warn("no completed bookings found, creating reviews without booking association")
		if len(listings) == 0 || len(guests) == 0 {
			s.logger.Warn("insufficient data for creating reviews")
			return
		}
	}

	type pair struct {
		listing  uuid.UUID
		reviewer uuid.UUID
	}
	seen := map[pair]bool{}
	now := time.Now().UTC()
	createdCount := 0

	for i := 0; i < count; i++ {
		var listingID, reviewerID uuid.UUID
		var bookingID *uuid.UUID

		if len(completed) > 0 {
			// Reviews grow out of finished stays when any exist.
			b := completed[s.rng.Intn(len(completed))]
			listingID = b.ListingID
			reviewerID = b.GuestID
			id := b.ID
			bookingID = &id
		} else {
			listingID = listings[s.rng.Intn(len(listings))].ID
			reviewerID = guests[s.rng.Intn(len(guests))]
		}

		key := pair{listing: listingID, reviewer: reviewerID}
		if seen[key] {
			continue
		}
		seen[key] = true

		review := &models.Review{
			ID:         s.randomID(),
			ListingID:  listingID,
			ReviewerID: reviewerID,
			BookingID:  bookingID,
			Rating:     ratingValues[weightedIndex(s.rng, ratingWeights)],
			Comment:    reviewComments[s.rng.Intn(len(reviewComments))],
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		if _, err := s.reviewsRepo.CreateReview(ctx, review); err != nil {
			s.logger.Warn("failed to create review", "error", err)
			continue
		}
		createdCount++

		if createdCount%5 == 0 {
			s.logger.Info("created reviews", "count", createdCount)
		}
	}

	s.logger.Info("successfully created reviews", "count", createdCount)
}

func (s *Seeder) randomID() uuid.UUID {
	id, err := uuid.NewRandomFromReader(s.rng)
	if err != nil {
		return uuid.New()
	}
	return id
}

func (s *Seeder) randomIDs(n int) []uuid.UUID {
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = s.randomID()
	}
	return ids
}

func weightedIndex(rng *rand.Rand, weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	n := rng.Intn(total)
	for i, w := range weights {
		if n < w {
			return i
		}
		n -= w
	}
	return len(weights) - 1
}
