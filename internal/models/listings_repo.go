package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type ListingsRepo interface {
	CreateListing(ctx context.Context, listing *Listing) (*Listing, error)
	GetListingByID(ctx context.Context, id uuid.UUID) (*Listing, error)
	ListListings(ctx context.Context, offset, limit int) ([]*Listing, int, error)
	ListListingsByHost(ctx context.Context, hostID uuid.UUID, offset, limit int) ([]*Listing, int, error)
	UpdateListing(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Listing, error)
	DeleteListing(ctx context.Context, id uuid.UUID) error
}

// Every listing read carries its review aggregates, so selects join reviews
// and group on the primary key.
const listingSelect = `
	SELECT l.listing_id, l.host_id, l.title, l.description, l.location,
	       l.price_per_night, l.number_of_bedrooms, l.number_of_bathrooms,
	       l.max_guests, l.is_available, l.created_at, l.updated_at,
	       COALESCE(AVG(r.rating), 0) AS average_rating,
	       COUNT(r.review_id) AS total_reviews
	FROM listings l
	LEFT JOIN reviews r ON r.listing_id = l.listing_id`

// updatableListingColumns are the only fields PATCH may touch. Identity,
// ownership and timestamps stay server-controlled.
var updatableListingColumns = map[string]bool{
	"title":               true,
	"description":         true,
	"location":            true,
	"price_per_night":     true,
	"number_of_bedrooms":  true,
	"number_of_bathrooms": true,
	"max_guests":          true,
	"is_available":        true,
}

func (pg *PostgresRepo) CreateListing(ctx context.Context, listing *Listing) (*Listing, error) {
	query := `
		INSERT INTO listings (listing_id, host_id, title, description, location, price_per_night,
			number_of_bedrooms, number_of_bathrooms, max_guests, is_available, created_at, updated_at)
		VALUES (:listing_id, :host_id, :title, :description, :location, :price_per_night,
			:number_of_bedrooms, :number_of_bathrooms, :max_guests, :is_available, :created_at, :updated_at)`

	if _, err := pg.db.NamedExecContext(ctx, query, listing); err != nil {
		err = translateConstraintError(err)
		if _, ok := AsValidationError(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create listing: %v", err)
	}

	return pg.GetListingByID(ctx, listing.ID)
}

func (pg *PostgresRepo) GetListingByID(ctx context.Context, id uuid.UUID) (*Listing, error) {
	var listing Listing
	query := listingSelect + ` WHERE l.listing_id = $1 GROUP BY l.listing_id`

	if err := pg.db.GetContext(ctx, &listing, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewValidationError(ErrListingNotFound, "listing %s not found", id)
		}
		return nil, fmt.Errorf("failed to get listing: %v", err)
	}

	return &listing, nil
}

func (pg *PostgresRepo) ListListings(ctx context.Context, offset, limit int) ([]*Listing, int, error) {
	listings := []*Listing{}
	query := listingSelect + ` GROUP BY l.listing_id ORDER BY l.created_at DESC OFFSET $1 LIMIT $2`

	if err := pg.db.SelectContext(ctx, &listings, query, offset, limit); err != nil {
		return nil, 0, fmt.Errorf("failed to list listings: %v", err)
	}

	var total int
	if err := pg.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM listings`); err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %v", err)
	}

	return listings, total, nil
}

func (pg *PostgresRepo) ListListingsByHost(ctx context.Context, hostID uuid.UUID, offset, limit int) ([]*Listing, int, error) {
	listings := []*Listing{}
	query := listingSelect + ` WHERE l.host_id = $1 GROUP BY l.listing_id ORDER BY l.created_at DESC OFFSET $2 LIMIT $3`

	if err := pg.db.SelectContext(ctx, &listings, query, hostID, offset, limit); err != nil {
		return nil, 0, fmt.Errorf("failed to list listings for host: %v", err)
	}

	var total int
	if err := pg.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM listings WHERE host_id = $1`, hostID); err != nil {
		return nil, 0, fmt.Errorf("failed to count listings for host: %v", err)
	}

	return listings, total, nil
}

func (pg *PostgresRepo) UpdateListing(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Listing, error) {
	if len(updates) == 0 {
		return pg.GetListingByID(ctx, id)
	}

	setClauses := make([]string, 0, len(updates)+1)
	args := make([]interface{}, 0, len(updates)+1)
	pos := 1
	for col, val := range updates {
		if !updatableListingColumns[col] {
			return nil, NewValidationError(ErrInvalidInput, "field %q cannot be updated", col)
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, pos))
		args = append(args, val)
		pos++
	}
	setClauses = append(setClauses, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf("UPDATE listings SET %s WHERE listing_id = $%d", strings.Join(setClauses, ", "), pos)
	res, err := pg.db.ExecContext(ctx, query, args...)
	if err != nil {
		err = translateConstraintError(err)
		if _, ok := AsValidationError(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update listing: %v", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return nil, NewValidationError(ErrListingNotFound, "listing %s not found", id)
	}

	return pg.GetListingByID(ctx, id)
}

func (pg *PostgresRepo) DeleteListing(ctx context.Context, id uuid.UUID) error {
	res, err := pg.db.ExecContext(ctx, `DELETE FROM listings WHERE listing_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete listing: %v", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return NewValidationError(ErrListingNotFound, "listing %s not found", id)
	}
	return nil
}
