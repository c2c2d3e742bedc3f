package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/staybay/internal/helpers"
	"github.com/joshua-takyi/staybay/internal/models"
)

// statusForKind maps every rejection kind to its HTTP status. Not-found kinds
// read as 404, the two uniqueness collisions as 409, ownership as 403, and
// state-machine refusals as 422. Anything unmapped is a server fault.
func statusForKind(kind models.ValidationKind) int {
	switch kind {
	case models.ErrInvalidDateRange,
		models.ErrPastCheckInDate,
		models.ErrListingUnavailable,
		models.ErrGuestCapacityExceeded,
		models.ErrInvalidRating,
		models.ErrInvalidInput:
		return http.StatusBadRequest
	case models.ErrListingNotFound,
		models.ErrBookingNotFound,
		models.ErrReviewNotFound:
		return http.StatusNotFound
	case models.ErrDateRangeConflict,
		models.ErrDuplicateReview:
		return http.StatusConflict
	case models.ErrNotBookingOwner:
		return http.StatusForbidden
	case models.ErrBookingNotCompleted,
		models.ErrInvalidTransition:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// respondError renders a service error: tagged rejections carry their kind
// and mapped status, everything else is a 500 with the bare message.
func respondError(c *gin.Context, err error) {
	if ve, ok := models.AsValidationError(err); ok {
		c.JSON(statusForKind(ve.Kind), models.RejectionResponse(ve))
		return
	}
	c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
}

// currentActor pulls the authenticated identity the middleware stored on the
// context. On failure it has already written the response.
func currentActor(c *gin.Context) (*helpers.ActorClaims, uuid.UUID, bool) {
	userClaims, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
		return nil, uuid.Nil, false
	}

	claims, ok := userClaims.(*helpers.ActorClaims)
	if !ok {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse("invalid user claims"))
		return nil, uuid.Nil, false
	}

	actorID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid user ID in token"))
		return nil, uuid.Nil, false
	}

	return claims, actorID, true
}

// parseIDParam reads a uuid path parameter. Incoming ids are trimmed of
// spaces and surrounding quotes, which show up when clients pass values
// straight out of JSON or templates.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	raw := strings.TrimSpace(c.Param(name))
	raw = strings.Trim(raw, "\"'")
	if raw == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(name+" is required"))
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid "+name+" format"))
		return uuid.Nil, false
	}

	return id, true
}

func parsePagination(c *gin.Context) (offset, limit int, ok bool) {
	limitStr := c.DefaultQuery("limit", "10")
	offsetStr := c.DefaultQuery("offset", "0")

	limitInt, err := strconv.Atoi(limitStr)
	if err != nil || limitInt <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid limit parameter"))
		return 0, 0, false
	}
	offsetInt, err := strconv.Atoi(offsetStr)
	if err != nil || offsetInt < 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid offset parameter"))
		return 0, 0, false
	}

	return offsetInt, limitInt, true
}
