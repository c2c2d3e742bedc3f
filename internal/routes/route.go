package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/staybay/internal/container"
	"github.com/joshua-takyi/staybay/internal/handlers"
	"github.com/joshua-takyi/staybay/internal/helpers"
	"github.com/joshua-takyi/staybay/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	// Set Gin mode for production
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	// API version 1
	v1 := r.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "staybay-api",
			})
		})
	}

	// Browsing the marketplace needs no identity: listings, their reviews,
	// availability probes and quotes are all public reads.
	publicListings := v1.Group("/listings")
	{
		publicListings.GET("/", handlers.ListListings(container.ListingService))
		publicListings.GET("/:id", handlers.GetListingByID(container.ListingService))
		publicListings.GET("/:id/availability", handlers.CheckListingAvailability(container.ListingService))
		publicListings.GET("/:id/quote", handlers.QuoteListingStay(container.ListingService))
		publicListings.GET("/:id/reviews", handlers.ListListingReviews(container.ReviewService))
	}

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(container.Logger))

	protected.GET("/profile", func(c *gin.Context) {
		user, exist := c.Get("user")
		if !exist {
			c.JSON(401, gin.H{"error": "Unauthorized"})
			return
		}

		claims, ok := user.(*helpers.ActorClaims)
		if !ok {
			c.JSON(500, gin.H{"error": "Invalid user claims format"})
			return
		}

		c.JSON(200, gin.H{
			"status":   "OK",
			"user_id":  claims.UserID,
			"email":    claims.Email,
			"role":     claims.Role,
			"is_admin": claims.IsAdmin(),
		})
	})

	// The caller's own collections live under /me. Keeping them out of the
	// /bookings and /reviews groups leaves :id as the only segment there,
	// which the router requires.
	meRoutes := protected.Group("/me")
	{
		meRoutes.GET("/bookings", handlers.ListMyBookings(container.BookingService))
		meRoutes.GET("/reviews", handlers.ListMyReviews(container.ReviewService))
	}

	listingRoutes := protected.Group("/listings")
	{
		listingRoutes.POST("/", handlers.CreateListingHandler(container.ListingService))
		listingRoutes.PATCH("/:id", handlers.UpdateListingHandler(container.ListingService))
		listingRoutes.DELETE("/:id", handlers.DeleteListingHandler(container.ListingService))
		listingRoutes.GET("/:id/bookings", handlers.ListListingBookings(container.BookingService, container.ListingService))
		listingRoutes.POST("/:id/reviews", handlers.CreateReviewHandler(container.ReviewService))
	}

	hostRoutes := protected.Group("/hosts")
	{
		hostRoutes.GET("/:host_id/listings", handlers.ListListingsByHost(container.ListingService))
	}

	bookingRoutes := protected.Group("/bookings")
	{
		bookingRoutes.POST("/", handlers.CreateBookingHandler(container.BookingService))
		bookingRoutes.GET("/:id", handlers.GetBookingByID(container.BookingService, container.ListingService))
		bookingRoutes.PATCH("/:id/dates", handlers.UpdateBookingDatesHandler(container.BookingService))
		bookingRoutes.PATCH("/:id/status", handlers.UpdateBookingStatusHandler(container.BookingService, container.ListingService))
	}

	reviewRoutes := protected.Group("/reviews")
	{
		reviewRoutes.PATCH("/:id", handlers.UpdateReviewHandler(container.ReviewService))
		reviewRoutes.DELETE("/:id", handlers.DeleteReviewHandler(container.ReviewService))
	}

	return r
}
