package connect

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS listings (
	listing_id uuid PRIMARY KEY,
	host_id uuid NOT NULL,
	title text NOT NULL,
	description text NOT NULL,
	location text NOT NULL,
	price_per_night numeric(10,2) NOT NULL CHECK (price_per_night > 0),
	number_of_bedrooms integer NOT NULL CHECK (number_of_bedrooms >= 1),
	number_of_bathrooms integer NOT NULL CHECK (number_of_bathrooms >= 1),
	max_guests integer NOT NULL CHECK (max_guests >= 1),
	is_available boolean NOT NULL DEFAULT true,
	created_at timestamptz NOT NULL DEFAULT now(),
	updated_at timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS bookings (
	booking_id uuid PRIMARY KEY,
	listing_id uuid NOT NULL REFERENCES listings (listing_id) ON DELETE CASCADE,
	guest_id uuid NOT NULL,
	check_in_date date NOT NULL,
	check_out_date date NOT NULL,
	number_of_guests integer NOT NULL CHECK (number_of_guests >= 1),
	total_price numeric(10,2) NOT NULL CHECK (total_price >= 0),
	status text NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'confirmed', 'cancelled', 'completed')),
	special_requests text,
	created_at timestamptz NOT NULL DEFAULT now(),
	updated_at timestamptz NOT NULL DEFAULT now(),
	CONSTRAINT bookings_dates_ordered CHECK (check_out_date > check_in_date)
);

CREATE INDEX IF NOT EXISTS bookings_listing_dates_idx ON bookings (listing_id, check_in_date, check_out_date);
CREATE INDEX IF NOT EXISTS bookings_guest_idx ON bookings (guest_id);

CREATE TABLE IF NOT EXISTS reviews (
	review_id uuid PRIMARY KEY,
	listing_id uuid NOT NULL REFERENCES listings (listing_id) ON DELETE CASCADE,
	reviewer_id uuid NOT NULL,
	booking_id uuid REFERENCES bookings (booking_id) ON DELETE SET NULL,
	rating integer NOT NULL CHECK (rating BETWEEN 1 AND 5),
	comment text NOT NULL,
	created_at timestamptz NOT NULL DEFAULT now(),
	updated_at timestamptz NOT NULL DEFAULT now(),
	CONSTRAINT reviews_one_per_listing_reviewer UNIQUE (listing_id, reviewer_id)
);

CREATE INDEX IF NOT EXISTS reviews_listing_idx ON reviews (listing_id);
`

// daterange() builds half-open [) ranges, so two stays sharing a turnover day
// do not overlap. The constraint only guards rows whose status still blocks
// the calendar, matching the validator's conflict query.
const overlapConstraintDDL = `
DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_overlap') THEN
		ALTER TABLE bookings
			ADD CONSTRAINT bookings_no_overlap
			EXCLUDE USING gist (
				listing_id WITH =,
				daterange(check_in_date, check_out_date) WITH &&
			) WHERE (status IN ('pending', 'confirmed'));
	END IF;
END
$$;
`

// EnsureSchema creates the tables and constraints on startup. The exclusion
// constraint needs the btree_gist extension for uuid equality inside a gist
// index; on databases where the role cannot install extensions, overlap
// enforcement degrades to the validator's conflict check alone.
func EnsureSchema(ctx context.Context, db *sqlx.DB, logger *slog.Logger) error {
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("failed to ensure schema: %v", err)
	}

	if _, err := db.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS btree_gist`); err != nil {
		logger.Warn("btree_gist unavailable, skipping overlap exclusion constraint", "error", err)
		return nil
	}

	if _, err := db.ExecContext(ctx, overlapConstraintDDL); err != nil {
		return fmt.Errorf("failed to add overlap constraint: %v", err)
	}

	return nil
}
