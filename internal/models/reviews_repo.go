package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type ReviewsRepo interface {
	CreateReview(ctx context.Context, review *Review) (*Review, error)
	GetReviewByID(ctx context.Context, id uuid.UUID) (*Review, error)
	ListReviewsByListing(ctx context.Context, listingID uuid.UUID, offset, limit int) ([]*Review, int, error)
	ListReviewsByReviewer(ctx context.Context, reviewerID uuid.UUID, offset, limit int) ([]*Review, int, error)
	HasReviewed(ctx context.Context, listingID, reviewerID uuid.UUID) (bool, error)
	UpdateReview(ctx context.Context, id uuid.UUID, rating int, comment string) (*Review, error)
	DeleteReview(ctx context.Context, id uuid.UUID) error
}

const reviewColumns = `review_id, listing_id, reviewer_id, booking_id, rating, comment, created_at, updated_at`

func (pg *PostgresRepo) CreateReview(ctx context.Context, review *Review) (*Review, error) {
	query := `
		INSERT INTO reviews (` + reviewColumns + `)
		VALUES (:review_id, :listing_id, :reviewer_id, :booking_id, :rating, :comment, :created_at, :updated_at)`

	if _, err := pg.db.NamedExecContext(ctx, query, review); err != nil {
		err = translateConstraintError(err)
		if _, ok := AsValidationError(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create review: %v", err)
	}

	return pg.GetReviewByID(ctx, review.ID)
}

func (pg *PostgresRepo) GetReviewByID(ctx context.Context, id uuid.UUID) (*Review, error) {
	var review Review
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE review_id = $1`

	if err := pg.db.GetContext(ctx, &review, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewValidationError(ErrReviewNotFound, "review %s not found", id)
		}
		return nil, fmt.Errorf("failed to get review: %v", err)
	}

	return &review, nil
}

func (pg *PostgresRepo) ListReviewsByListing(ctx context.Context, listingID uuid.UUID, offset, limit int) ([]*Review, int, error) {
	reviews := []*Review{}
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE listing_id = $1 ORDER BY created_at DESC OFFSET $2 LIMIT $3`

	if err := pg.db.SelectContext(ctx, &reviews, query, listingID, offset, limit); err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews for listing: %v", err)
	}

	var total int
	if err := pg.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM reviews WHERE listing_id = $1`, listingID); err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews for listing: %v", err)
	}

	return reviews, total, nil
}

func (pg *PostgresRepo) ListReviewsByReviewer(ctx context.Context, reviewerID uuid.UUID, offset, limit int) ([]*Review, int, error) {
	reviews := []*Review{}
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE reviewer_id = $1 ORDER BY created_at DESC OFFSET $2 LIMIT $3`

	if err := pg.db.SelectContext(ctx, &reviews, query, reviewerID, offset, limit); err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews by reviewer: %v", err)
	}

	var total int
	if err := pg.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM reviews WHERE reviewer_id = $1`, reviewerID); err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews by reviewer: %v", err)
	}

	return reviews, total, nil
}

// HasReviewed reports whether the reviewer already holds the one review slot
// the listing allows them.
func (pg *PostgresRepo) HasReviewed(ctx context.Context, listingID, reviewerID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM reviews WHERE listing_id = $1 AND reviewer_id = $2)`

	if err := pg.db.GetContext(ctx, &exists, query, listingID, reviewerID); err != nil {
		return false, fmt.Errorf("failed to check for existing review: %v", err)
	}

	return exists, nil
}

func (pg *PostgresRepo) UpdateReview(ctx context.Context, id uuid.UUID, rating int, comment string) (*Review, error) {
	query := `UPDATE reviews SET rating = $1, comment = $2, updated_at = now() WHERE review_id = $3`

	res, err := pg.db.ExecContext(ctx, query, rating, comment, id)
	if err != nil {
		err = translateConstraintError(err)
		if _, ok := AsValidationError(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update review: %v", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return nil, NewValidationError(ErrReviewNotFound, "review %s not found", id)
	}

	return pg.GetReviewByID(ctx, id)
}

func (pg *PostgresRepo) DeleteReview(ctx context.Context, id uuid.UUID) error {
	res, err := pg.db.ExecContext(ctx, `DELETE FROM reviews WHERE review_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %v", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return NewValidationError(ErrReviewNotFound, "review %s not found", id)
	}
	return nil
}
