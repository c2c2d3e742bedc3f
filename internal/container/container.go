package container

import (
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/joshua-takyi/staybay/internal/models"
	"github.com/joshua-takyi/staybay/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Logger *slog.Logger
	// Database client
	DB             *sqlx.DB
	ListingService *services.ListingService
	BookingService *services.BookingService
	ReviewService  *services.ReviewService
}

// NewContainer creates a new dependency injection container
func NewContainer(logger *slog.Logger, db *sqlx.DB) *Container {
	// Initialize repositories
	pg := models.PostgresNewRepo(db)
	availability := services.NewAvailabilityChecker(pg)
	listingService := services.NewListingService(pg, availability)
	bookingService := services.NewBookingService(pg, pg, availability)
	reviewService := services.NewReviewService(pg, pg, pg)

	return &Container{
		Logger:         logger,
		DB:             db,
		ListingService: listingService,
		BookingService: bookingService,
		ReviewService:  reviewService,
	}
}
