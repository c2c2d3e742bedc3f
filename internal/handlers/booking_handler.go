package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/staybay/internal/helpers"
	"github.com/joshua-takyi/staybay/internal/models"
	"github.com/joshua-takyi/staybay/internal/services"
)

// NumberOfGuests carries no binding tag on purpose: zero or negative counts
// must reach the validator so they come back tagged as capacity rejections
// instead of generic binding noise.
type CreateBookingRequest struct {
	ListingID       string `json:"listing_id" binding:"required,uuid"`
	CheckInDate     string `json:"check_in_date" binding:"required,datetime=2006-01-02"`
	CheckOutDate    string `json:"check_out_date" binding:"required,datetime=2006-01-02"`
	NumberOfGuests  int    `json:"number_of_guests"`
	SpecialRequests string `json:"special_requests"`
}

type UpdateBookingDatesRequest struct {
	CheckInDate  string `json:"check_in_date" binding:"required,datetime=2006-01-02"`
	CheckOutDate string `json:"check_out_date" binding:"required,datetime=2006-01-02"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func CreateBookingHandler(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, actorID, ok := currentActor(c)
		if !ok {
			return
		}

		var req CreateBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		listingID, err := uuid.Parse(req.ListingID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid listing ID format"))
			return
		}
		checkIn, err := helpers.ParseDate(req.CheckInDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}
		checkOut, err := helpers.ParseDate(req.CheckOutDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		booking, err := b.CreateBooking(c.Request.Context(), actorID, listingID, checkIn, checkOut, req.NumberOfGuests, req.SpecialRequests)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(booking, "booking created successfully"))
	}
}

// ListMyBookings returns the caller's own bookings, newest stay first.
func ListMyBookings(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		offset, limit, ok := parsePagination(c)
		if !ok {
			return
		}
		_, actorID, ok := currentActor(c)
		if !ok {
			return
		}

		bookings, total, err := b.ListBookingsByGuest(c.Request.Context(), actorID, offset, limit)
		if err != nil {
			respondError(c, err)
			return
		}

		page := (offset / limit) + 1
		c.JSON(http.StatusOK, models.PaginatedResponse(bookings, page, limit, total))
	}
}

// GetBookingByID shows a booking to its guest, the listing's host, or an
// admin.
func GetBookingByID(b *services.BookingService, l *services.ListingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		claims, actorID, ok := currentActor(c)
		if !ok {
			return
		}

		booking, err := b.GetBooking(c.Request.Context(), bookingID)
		if err != nil {
			respondError(c, err)
			return
		}

		if booking.GuestID != actorID && !claims.IsAdmin() {
			listing, err := l.GetListing(c.Request.Context(), booking.ListingID)
			if err != nil {
				respondError(c, err)
				return
			}
			if listing.HostID != actorID {
				c.JSON(http.StatusForbidden, models.ErrorResponse("you do not have access to this booking"))
				return
			}
		}

		c.JSON(http.StatusOK, models.SuccessResponse(booking, ""))
	}
}

// UpdateBookingDatesHandler reschedules a stay. Only the guest who booked it
// or an admin may move it; the new range is fully revalidated and repriced.
func UpdateBookingDatesHandler(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		claims, actorID, ok := currentActor(c)
		if !ok {
			return
		}

		booking, err := b.GetBooking(c.Request.Context(), bookingID)
		if err != nil {
			respondError(c, err)
			return
		}
		if booking.GuestID != actorID && !claims.IsAdmin() {
			c.JSON(http.StatusForbidden, models.ErrorResponse("you can only reschedule your own bookings"))
			return
		}

		var req UpdateBookingDatesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}
		checkIn, err := helpers.ParseDate(req.CheckInDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}
		checkOut, err := helpers.ParseDate(req.CheckOutDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		updated, err := b.UpdateBookingDates(c.Request.Context(), bookingID, checkIn, checkOut)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(updated, "booking rescheduled successfully"))
	}
}

// UpdateBookingStatusHandler drives the status machine. Hosts confirm and
// complete stays on their listings; guests may cancel their own bookings;
// admins may do either.
func UpdateBookingStatusHandler(b *services.BookingService, l *services.ListingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		claims, actorID, ok := currentActor(c)
		if !ok {
			return
		}

		var req UpdateBookingStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		booking, err := b.GetBooking(c.Request.Context(), bookingID)
		if err != nil {
			respondError(c, err)
			return
		}
		listing, err := l.GetListing(c.Request.Context(), booking.ListingID)
		if err != nil {
			respondError(c, err)
			return
		}

		isGuest := booking.GuestID == actorID
		isHost := listing.HostID == actorID

		switch next := models.BookingStatus(req.Status); next {
		case models.BookingStatusCancelled:
			if !isGuest && !isHost && !claims.IsAdmin() {
				c.JSON(http.StatusForbidden, models.ErrorResponse("you cannot cancel this booking"))
				return
			}
		case models.BookingStatusConfirmed, models.BookingStatusCompleted:
			if !isHost && !claims.IsAdmin() {
				c.JSON(http.StatusForbidden, models.ErrorResponse("only the listing host can set this status"))
				return
			}
		}

		updated, err := b.TransitionStatus(c.Request.Context(), bookingID, models.BookingStatus(req.Status))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(updated, "booking status updated successfully"))
	}
}

// ListListingBookings shows the booking calendar of a listing to its host or
// an admin.
func ListListingBookings(b *services.BookingService, l *services.ListingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		offset, limit, ok := parsePagination(c)
		if !ok {
			return
		}
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
			c.JSON(http.StatusForbidden, models.ErrorResponse("you can only view bookings for your own listings"))
			return
		}

		bookings, total, err := b.ListBookingsByListing(c.Request.Context(), listingID, offset, limit)
		if err != nil {
			respondError(c, err)
			return
		}

		page := (offset / limit) + 1
		c.JSON(http.StatusOK, models.PaginatedResponse(bookings, page, limit, total))
	}
}
