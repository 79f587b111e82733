package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"clinicbook/internal/domain"
	"clinicbook/internal/pkg/response"
)

type AccessGate interface {
	CanAccessAdmin(ctx context.Context, userID string) (bool, error)
	IsAdminOfVenue(ctx context.Context, userID, venueID string) (bool, error)
	HasRole(ctx context.Context, userID string, role domain.UserRole) (bool, error)
}

// AdminArea admits VENUE_ADMIN and SUPER_ADMIN identities.
func AdminArea(gate AccessGate) gin.HandlerFunc {
	return guard(func(c *gin.Context, userID string) (bool, error) {
		return gate.CanAccessAdmin(c.Request.Context(), userID)
	})
}

// VenueAdmin admits identities linked to the venue named by the path param.
func VenueAdmin(gate AccessGate, param string) gin.HandlerFunc {
	return guard(func(c *gin.Context, userID string) (bool, error) {
		return gate.IsAdminOfVenue(c.Request.Context(), userID, c.Param(param))
	})
}

func RequireRole(gate AccessGate, role domain.UserRole) gin.HandlerFunc {
	return guard(func(c *gin.Context, userID string) (bool, error) {
		return gate.HasRole(c.Request.Context(), userID, role)
	})
}

func guard(allowed func(c *gin.Context, userID string) (bool, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFrom(c)
		if !actor.Authenticated() {
			response.FromError(c, domain.ErrUnauthenticated)
			c.Abort()
			return
		}

		ok, err := allowed(c, actor.UserID)
		if err != nil {
			response.FromError(c, err)
			c.Abort()
			return
		}
		if !ok {
			response.FromError(c, domain.ErrForbidden)
			c.Abort()
			return
		}

		c.Next()
	}
}
