package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/staybay/internal/helpers"
	"github.com/joshua-takyi/staybay/internal/models"
	"github.com/joshua-takyi/staybay/internal/services"
	"github.com/shopspring/decimal"
)

type CreateListingRequest struct {
	Title             string          `json:"title" binding:"required"`
	Description       string          `json:"description" binding:"required"`
	Location          string          `json:"location" binding:"required"`
	PricePerNight     decimal.Decimal `json:"price_per_night" binding:"required"`
	NumberOfBedrooms  int             `json:"number_of_bedrooms" binding:"required,min=1"`
	NumberOfBathrooms int             `json:"number_of_bathrooms" binding:"required,min=1"`
	MaxGuests         int             `json:"max_guests" binding:"required,min=1"`
	// Listings accept bookings unless the host says otherwise, so an omitted
	// flag must read as true, not as the bool zero value.
	IsAvailable *bool `json:"is_available"`
}

type UpdateListingRequest struct {
	Title             *string          `json:"title"`
	Description       *string          `json:"description"`
	Location          *string          `json:"location"`
	PricePerNight     *decimal.Decimal `json:"price_per_night"`
	NumberOfBedrooms  *int             `json:"number_of_bedrooms"`
	NumberOfBathrooms *int             `json:"number_of_bathrooms"`
	MaxGuests         *int             `json:"max_guests"`
	IsAvailable       *bool            `json:"is_available"`
}

func (r *UpdateListingRequest) toUpdates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.Title != nil {
		updates["title"] = *r.Title
	}
	if r.Description != nil {
		updates["description"] = *r.Description
	}
	if r.Location != nil {
		updates["location"] = *r.Location
	}
	if r.PricePerNight != nil {
		updates["price_per_night"] = *r.PricePerNight
	}
	if r.NumberOfBedrooms != nil {
		updates["number_of_bedrooms"] = *r.NumberOfBedrooms
	}
	if r.NumberOfBathrooms != nil {
		updates["number_of_bathrooms"] = *r.NumberOfBathrooms
	}
	if r.MaxGuests != nil {
		updates["max_guests"] = *r.MaxGuests
	}
	if r.IsAvailable != nil {
		updates["is_available"] = *r.IsAvailable
	}
	return updates
}

func CreateListingHandler(l *services.ListingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, actorID, ok := currentActor(c)
		if !ok {
			return
		}
		if !claims.IsHost() && !claims.IsAdmin() {
			c.JSON(http.StatusForbidden, models.ErrorResponse("only users with host role can create listings"))
			return
		}

		var req CreateListingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		isAvailable := true
		if req.IsAvailable != nil {
			isAvailable = *req.IsAvailable
		}

		listing := &models.Listing{
			Title:             req.Title,
			Description:       req.Description,
			Location:          req.Location,
			PricePerNight:     req.PricePerNight,
			NumberOfBedrooms:  req.NumberOfBedrooms,
			NumberOfBathrooms: req.NumberOfBathrooms,
			MaxGuests:         req.MaxGuests,
			IsAvailable:       isAvailable,
		}

		created, err := l.CreateListing(c.Request.Context(), actorID, listing)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(created, "listing created successfully"))
	}
}

func ListListings(l *services.ListingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		offset, limit, ok := parsePagination(c)
		if !ok {
			return
		}

		listings, total, err := l.ListListings(c.Request.Context(), offset, limit)
		if err != nil {
			respondError(c, err)
			return
		}

		page := (offset / limit) + 1
		c.JSON(http.StatusOK, models.PaginatedResponse(listings, page, limit, total))
	}
}

func GetListingByID(l *services.ListingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		listingID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		listing, err := l.GetListing(c.Request.Context(), listingID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(listing, ""))
	}
}

func UpdateListingHandler(l *services.ListingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		listingID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		claims, actorID, ok := currentActor(c)
		if !ok {
			return
		}

		listing, err := l.GetListing(c.Request.Context(), listingID)
		if err != nil {
			respondError(c, err)
			return
		}
		if listing.HostID != actorID && !claims.IsAdmin() {
			c.JSON(http.StatusForbidden, models.ErrorResponse("you can only update your own listings"))
			return
		}

		var req UpdateListingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		updated, err := l.UpdateListing(c.Request.Context(), listingID, req.toUpdates())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(updated, "listing updated successfully"))
	}
}

func DeleteListingHandler(l *services.ListingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		listingID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		claims, actorID, ok := currentActor(c)
		if !ok {
			return
		}

		listing, err := l.GetListing(c.Request.Context(), listingID)
		if err != nil {
			respondError(c, err)
			return
		}
		if listing.HostID != actorID && !claims.IsAdmin() {
			c.JSON(http.StatusForbidden, models.ErrorResponse("you can only delete your own listings"))
			return
		}

		if err := l.DeleteListing(c.Request.Context(), listingID); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "listing deleted successfully"))
	}
}

func ListListingsByHost(l *services.ListingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		offset, limit, ok := parsePagination(c)
		if !ok {
			return
		}
		hostID, ok := parseIDParam(c, "host_id")
		if !ok {
			return
		}
		claims, actorID, ok := currentActor(c)
		if !ok {
			return
		}

		if hostID != actorID && !claims.IsAdmin() {
			c.JSON(http.StatusForbidden, models.ErrorResponse("unauthorized access"))
			return
		}

		listings, total, err := l.ListListingsByHost(c.Request.Context(), hostID, offset, limit)
		if err != nil {
			respondError(c, err)
			return
		}

		page := (offset / limit) + 1
		c.JSON(http.StatusOK, models.PaginatedResponse(listings, page, limit, total))
	}
}

// CheckListingAvailability answers whether the listing is bookable for the
// range given in check_in_date/check_out_date query parameters.
func CheckListingAvailability(l *services.ListingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		listingID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		checkIn, err := helpers.ParseDate(c.Query("check_in_date"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}
		checkOut, err := helpers.ParseDate(c.Query("check_out_date"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		available, err := l.CheckAvailability(c.Request.Context(), listingID, checkIn, checkOut)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"listing_id":     listingID,
			"check_in_date":  checkIn.Format(time.DateOnly),
			"check_out_date": checkOut.Format(time.DateOnly),
			"available":      available,
		}, ""))
	}
}

// QuoteListingStay prices a stay over the query-parameter range without
// creating a booking.
func QuoteListingStay(l *services.ListingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		listingID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		checkIn, err := helpers.ParseDate(c.Query("check_in_date"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}
		checkOut, err := helpers.ParseDate(c.Query("check_out_date"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		quote, err := l.QuoteStay(c.Request.Context(), listingID, checkIn, checkOut)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(quote, ""))
	}
}
