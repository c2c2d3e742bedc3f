package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/staybay/internal/models"
)

type ReviewService struct {
	reviewsRepo  models.ReviewsRepo
	bookingsRepo models.BookingsRepo
	listingsRepo models.ListingsRepo
}

func NewReviewService(reviewsRepo models.ReviewsRepo, bookingsRepo models.BookingsRepo, listingsRepo models.ListingsRepo) *ReviewService {
	return &ReviewService{
		reviewsRepo:  reviewsRepo,
		bookingsRepo: bookingsRepo,
		listingsRepo: listingsRepo,
	}
}

// ValidateEligibility runs the review admission checks in a fixed order and
// stops at the first failure: rating bounds, one review per reviewer per
// listing, then booking ownership and completion when a booking is attached.
// A nil booking skips the stay-based checks entirely.
func (rs *ReviewService) ValidateEligibility(ctx context.Context, listingID, reviewerID uuid.UUID, rating int, booking *models.Booking) error {
	if rating < 1 || rating > 5 {
		return models.NewValidationError(models.ErrInvalidRating, "rating must be between 1 and 5")
	}

	already, err := rs.reviewsRepo.HasReviewed(ctx, listingID, reviewerID)
	if err != nil {
		return err
	}
	if already {
		return models.NewValidationError(models.ErrDuplicateReview, "you have already reviewed this listing")
	}

	if booking != nil {
		if booking.GuestID != reviewerID {
			return models.NewValidationError(models.ErrNotBookingOwner, "you can only review stays from your own bookings")
		}
		if booking.Status != models.BookingStatusCompleted {
			return models.NewValidationError(models.ErrBookingNotCompleted, "you can only review completed stays")
		}
	}

	return nil
}

func (rs *ReviewService) CreateReview(ctx context.Context, reviewerID, listingID uuid.UUID, bookingID *uuid.UUID, rating int, comment string) (*models.Review, error) {
	if reviewerID == uuid.Nil {
		return nil, fmt.Errorf("invalid reviewer ID")
	}
	if listingID == uuid.Nil {
		return nil, fmt.Errorf("invalid listing ID")
	}
	if strings.TrimSpace(comment) == "" {
		return nil, models.NewValidationError(models.ErrInvalidInput, "comment is required")
	}

	if _, err := rs.listingsRepo.GetListingByID(ctx, listingID); err != nil {
		return nil, err
	}

	var booking *models.Booking
	if bookingID != nil {
		b, err := rs.bookingsRepo.GetBookingByID(ctx, *bookingID)
		if err != nil {
			return nil, err
		}
		booking = b
	}

	if err := rs.ValidateEligibility(ctx, listingID, reviewerID, rating, booking); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	review := &models.Review{
		ID:         uuid.New(),
		ListingID:  listingID,
		ReviewerID: reviewerID,
		BookingID:  bookingID,
		Rating:     rating,
		Comment:    comment,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	return rs.reviewsRepo.CreateReview(ctx, review)
}

func (rs *ReviewService) GetReview(ctx context.Context, reviewID uuid.UUID) (*models.Review, error) {
	if reviewID == uuid.Nil {
		return nil, fmt.Errorf("invalid review ID")
	}

	return rs.reviewsRepo.GetReviewByID(ctx, reviewID)
}

// ListReviewsByListing returns a listing's reviews, newest first. The listing
// must exist so a bad ID reads as not-found rather than an empty page.
func (rs *ReviewService) ListReviewsByListing(ctx context.Context, listingID uuid.UUID, offset, limit int) ([]*models.Review, int, error) {
	if offset < 0 || limit <= 0 {
		return nil, 0, fmt.Errorf("invalid offset or limit")
	}
	if listingID == uuid.Nil {
		return nil, 0, fmt.Errorf("invalid listing ID")
	}

	if _, err := rs.listingsRepo.GetListingByID(ctx, listingID); err != nil {
		return nil, 0, err
	}

	return rs.reviewsRepo.ListReviewsByListing(ctx, listingID, offset, limit)
}

func (rs *ReviewService) ListReviewsByReviewer(ctx context.Context, reviewerID uuid.UUID, offset, limit int) ([]*models.Review, int, error) {
	if offset < 0 || limit <= 0 {
		return nil, 0, fmt.Errorf("invalid offset or limit")
	}
	if reviewerID == uuid.Nil {
		return nil, 0, fmt.Errorf("invalid reviewer ID")
	}

	return rs.reviewsRepo.ListReviewsByReviewer(ctx, reviewerID, offset, limit)
}

// UpdateReview changes the rating or comment on an existing review. Callers
// enforce ownership; the rating bounds are revalidated here.
func (rs *ReviewService) UpdateReview(ctx context.Context, reviewID uuid.UUID, rating int, comment string) (*models.Review, error) {
	if reviewID == uuid.Nil {
		return nil, fmt.Errorf("invalid review ID")
	}
	if rating < 1 || rating > 5 {
		return nil, models.NewValidationError(models.ErrInvalidRating, "rating must be between 1 and 5")
	}
	if strings.TrimSpace(comment) == "" {
		return nil, models.NewValidationError(models.ErrInvalidInput, "comment is required")
	}

	return rs.reviewsRepo.UpdateReview(ctx, reviewID, rating, comment)
}

func (rs *ReviewService) DeleteReview(ctx context.Context, reviewID uuid.UUID) error {
	if reviewID == uuid.Nil {
		return fmt.Errorf("invalid review ID")
	}

	return rs.reviewsRepo.DeleteReview(ctx, reviewID)
}
