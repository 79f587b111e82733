package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"clinicbook/internal/domain"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

type errorKind struct {
	target  error
	status  int
	code    string
	message string
}

// Order matters: the first matching kind wins.
var errorKinds = []errorKind{
	{domain.ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required"},
	{domain.ErrInvalidServiceSelection, http.StatusBadRequest, "INVALID_SERVICE_SELECTION", "Select at least one valid service offered by this venue"},
	{domain.ErrSlotUnavailable, http.StatusConflict, "SLOT_UNAVAILABLE", "The selected time slot is no longer available"},
	{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND", "Venue or service not found"},
	{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN", "You are not allowed to perform this action"},
	{domain.ErrServiceHasFutureBookings, http.StatusConflict, "SERVICE_HAS_FUTURE_BOOKINGS", "A service with future bookings cannot be deleted"},
	{domain.ErrAlreadyVenueAdmin, http.StatusConflict, "ALREADY_VENUE_ADMIN", "User already administers this venue"},
	{domain.ErrStorage, http.StatusInternalServerError, "STORAGE_FAILURE", "Storage failure, please try again later"},
}

// FromError writes the envelope for err and records it on the context
// so the request logger can report it.
func FromError(c *gin.Context, err error) {
	_ = c.Error(err)

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request", verr.Fields)
		return
	}
	if errors.Is(err, domain.ErrValidation) {
		Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request")
		return
	}

	for _, k := range errorKinds {
		if errors.Is(err, k.target) {
			Error(c, k.status, k.code, k.message)
			return
		}
	}

	Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
}
