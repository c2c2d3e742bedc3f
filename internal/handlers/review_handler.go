package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/staybay/internal/models"
	"github.com/joshua-takyi/staybay/internal/services"
)

// Rating carries no binding tag so out-of-bounds values reach the eligibility
// checks and come back tagged as rating rejections.
type CreateReviewRequest struct {
	Rating    int     `json:"rating"`
	Comment   string  `json:"comment" binding:"required"`
	BookingID *string `json:"booking_id"`
}

type UpdateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment" binding:"required"`
}

// CreateReviewHandler posts a review on the listing named in the path. An
// attached booking id ties the review to a completed stay and is checked for
// ownership and completion.
func CreateReviewHandler(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		listingID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		_, actorID, ok := currentActor(c)
		if !ok {
			return
		}

		var req CreateReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		var bookingID *uuid.UUID
		if req.BookingID != nil && *req.BookingID != "" {
			parsed, err := uuid.Parse(*req.BookingID)
			if err != nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid booking ID format"))
				return
			}
			bookingID = &parsed
		}

		review, err := r.CreateReview(c.Request.Context(), actorID, listingID, bookingID, req.Rating, req.Comment)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(review, "review created successfully"))
	}
}

func ListListingReviews(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		offset, limit, ok := parsePagination(c)
		if !ok {
			return
		}
		listingID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		reviews, total, err := r.ListReviewsByListing(c.Request.Context(), listingID, offset, limit)
		if err != nil {
			respondError(c, err)
			return
		}

		page := (offset / limit) + 1
		c.JSON(http.StatusOK, models.PaginatedResponse(reviews, page, limit, total))
	}
}

func ListMyReviews(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		offset, limit, ok := parsePagination(c)
		if !ok {
			return
		}
		_, actorID, ok := currentActor(c)
		if !ok {
			return
		}

		reviews, total, err := r.ListReviewsByReviewer(c.Request.Context(), actorID, offset, limit)
		if err != nil {
			respondError(c, err)
			return
		}

		page := (offset / limit) + 1
		c.JSON(http.StatusOK, models.PaginatedResponse(reviews, page, limit, total))
	}
}

func UpdateReviewHandler(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		reviewID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		claims, actorID, ok := currentActor(c)
		if !ok {
			return
		}

		review, err := r.GetReview(c.Request.Context(), reviewID)
		if err != nil {
			respondError(c, err)
			return
		}
		if review.ReviewerID != actorID && !claims.IsAdmin() {
			c.JSON(http.StatusForbidden, models.ErrorResponse("you can only edit your own reviews"))
			return
		}

		var req UpdateReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		updated, err := r.UpdateReview(c.Request.Context(), reviewID, req.Rating, req.Comment)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(updated, "review updated successfully"))
	}
}

func DeleteReviewHandler(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		reviewID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		claims, actorID, ok := currentActor(c)
		if !ok {
			return
		}

		review, err := r.GetReview(c.Request.Context(), reviewID)
		if err != nil {
			respondError(c, err)
			return
		}
		if review.ReviewerID != actorID && !claims.IsAdmin() {
			c.JSON(http.StatusForbidden, models.ErrorResponse("you can only delete your own reviews"))
			return
		}

		if err := r.DeleteReview(c.Request.Context(), reviewID); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "review deleted successfully"))
	}
}
