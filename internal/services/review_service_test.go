package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/staybay/internal/models"
)

func newTestReviewService(store *memStore) *ReviewService {
	return NewReviewService(store, store, store)
}

func TestCreateReviewFromCompletedStay(t *testing.T) {
	store := newMemStore()
	rs := newTestReviewService(store)
	listing := store.addListing(uuid.New(), "100.00", 4, true)
	guest := uuid.New()
	booking := store.addBooking(listing.ID, guest, date(2025, time.May, 1), date(2025, time.May, 4), models.BookingStatusCompleted)

	review, err := rs.CreateReview(context.Background(), guest, listing.ID, &booking.ID, 5, "Amazing place! Exactly as described and the host was very helpful.")
	if err != nil {
		t.Fatalf("CreateReview failed: %v", err)
	}
	if review.Rating != 5 {
		t.Errorf("rating = %d, want 5", review.Rating)
	}
	if review.BookingID == nil || *review.BookingID != booking.ID {
		t.Errorf("review not tied to booking: %v", review.BookingID)
	}
	if _, ok := store.reviews[review.ID]; !ok {
		t.Error("review was not persisted")
	}
}

// A review without a booking reference skips the stay checks entirely.
func TestCreateReviewWithoutBooking(t *testing.T) {
	store := newMemStore()
	rs := newTestReviewService(store)
	listing := store.addListing(uuid.New(), "100.00", 4, true)

	review, err := rs.CreateReview(context.Background(), uuid.New(), listing.ID, nil, 4, "Great location and clean accommodations.")
	if err != nil {
		t.Fatalf("CreateReview without booking failed: %v", err)
	}
	if review.BookingID != nil {
		t.Errorf("expected nil booking reference, got %v", review.BookingID)
	}
}

// Eligibility checks run in a fixed order: rating bounds, duplicates,
// ownership, completion. Each case below is wrong in the named way and often
// in later ways too.
func TestReviewEligibilityOrder(t *testing.T) {
	store := newMemStore()
	rs := newTestReviewService(store)
	listing := store.addListing(uuid.New(), "100.00", 4, true)
	reviewer := uuid.New()
	stranger := uuid.New()

	completedOwn := store.addBooking(listing.ID, reviewer, date(2025, time.May, 1), date(2025, time.May, 4), models.BookingStatusCompleted)
	completedOther := store.addBooking(listing.ID, stranger, date(2025, time.May, 10), date(2025, time.May, 13), models.BookingStatusCompleted)
	pendingOwn := store.addBooking(listing.ID, reviewer, date(2025, time.July, 1), date(2025, time.July, 4), models.BookingStatusPending)
	confirmedOwn := store.addBooking(listing.ID, reviewer, date(2025, time.August, 1), date(2025, time.August, 4), models.BookingStatusConfirmed)

	for _, rating := range []int{0, -1, 6} {
		err := rs.ValidateEligibility(context.Background(), listing.ID, reviewer, rating, completedOwn)
		if !models.IsKind(err, models.ErrInvalidRating) {
			t.Errorf("rating %d: expected invalid_rating, got %v", rating, err)
		}
	}

	if err := rs.ValidateEligibility(context.Background(), listing.ID, reviewer, 5, completedOther); !models.IsKind(err, models.ErrNotBookingOwner) {
		t.Errorf("someone else's booking: expected not_booking_owner, got %v", err)
	}
	if err := rs.ValidateEligibility(context.Background(), listing.ID, reviewer, 5, pendingOwn); !models.IsKind(err, models.ErrBookingNotCompleted) {
		t.Errorf("pending booking: expected booking_not_completed, got %v", err)
	}
	if err := rs.ValidateEligibility(context.Background(), listing.ID, reviewer, 5, confirmedOwn); !models.IsKind(err, models.ErrBookingNotCompleted) {
		t.Errorf("confirmed booking: expected booking_not_completed, got %v", err)
	}

	if err := rs.ValidateEligibility(context.Background(), listing.ID, reviewer, 5, completedOwn); err != nil {
		t.Fatalf("eligible review rejected: %v", err)
	}

	// Once a review exists, the duplicate check fires before ownership, so
	// even someone else's booking reports duplicate_review.
	if _, err := rs.CreateReview(context.Background(), reviewer, listing.ID, &completedOwn.ID, 5, "Wonderful experience!"); err != nil {
		t.Fatalf("first review failed: %v", err)
	}
	if err := rs.ValidateEligibility(context.Background(), listing.ID, reviewer, 5, completedOther); !models.IsKind(err, models.ErrDuplicateReview) {
		t.Errorf("after reviewing: expected duplicate_review, got %v", err)
	}
}

func TestCreateReviewDuplicateRejected(t *testing.T) {
	store := newMemStore()
	rs := newTestReviewService(store)
	listing := store.addListing(uuid.New(), "100.00", 4, true)
	reviewer := uuid.New()

	if _, err := rs.CreateReview(context.Background(), reviewer, listing.ID, nil, 4, "Lovely property in a quiet neighborhood."); err != nil {
		t.Fatalf("first review failed: %v", err)
	}
	_, err := rs.CreateReview(context.Background(), reviewer, listing.ID, nil, 5, "Changed my mind, five stars.")
	if !models.IsKind(err, models.ErrDuplicateReview) {
		t.Fatalf("expected duplicate_review, got %v", err)
	}
}

func TestCreateReviewRequiresListingAndComment(t *testing.T) {
	store := newMemStore()
	rs := newTestReviewService(store)
	listing := store.addListing(uuid.New(), "100.00", 4, true)

	_, err := rs.CreateReview(context.Background(), uuid.New(), uuid.New(), nil, 4, "Decent stay.")
	if !models.IsKind(err, models.ErrListingNotFound) {
		t.Fatalf("expected listing_not_found, got %v", err)
	}

	_, err = rs.CreateReview(context.Background(), uuid.New(), listing.ID, nil, 4, "   ")
	if !models.IsKind(err, models.ErrInvalidInput) {
		t.Fatalf("expected invalid_input for blank comment, got %v", err)
	}
}

func TestCreateReviewUnknownBooking(t *testing.T) {
	store := newMemStore()
	rs := newTestReviewService(store)
	listing := store.addListing(uuid.New(), "100.00", 4, true)
	missing := uuid.New()

	_, err := rs.CreateReview(context.Background(), uuid.New(), listing.ID, &missing, 4, "Decent stay.")
	if !models.IsKind(err, models.ErrBookingNotFound) {
		t.Fatalf("expected booking_not_found, got %v", err)
	}
}

func TestUpdateReviewRevalidatesRating(t *testing.T) {
	store := newMemStore()
	rs := newTestReviewService(store)
	listing := store.addListing(uuid.New(), "100.00", 4, true)
	reviewer := uuid.New()

	review, err := rs.CreateReview(context.Background(), reviewer, listing.ID, nil, 4, "Good value for money.")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = rs.UpdateReview(context.Background(), review.ID, 6, "Even better on reflection.")
	if !models.IsKind(err, models.ErrInvalidRating) {
		t.Fatalf("expected invalid_rating on update, got %v", err)
	}

	updated, err := rs.UpdateReview(context.Background(), review.ID, 5, "Even better on reflection.")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Rating != 5 {
		t.Errorf("rating after update = %d, want 5", updated.Rating)
	}
}

func TestListReviewsByListingRequiresListing(t *testing.T) {
	store := newMemStore()
	rs := newTestReviewService(store)

	_, _, err := rs.ListReviewsByListing(context.Background(), uuid.New(), 0, 10)
	if !models.IsKind(err, models.ErrListingNotFound) {
		t.Fatalf("expected listing_not_found, got %v", err)
	}
}
