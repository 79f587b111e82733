package booking

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clinicbook/internal/domain"
	"clinicbook/internal/middleware"
	"clinicbook/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the anonymous availability read.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/venues/:id/availability", h.GetAvailability)
}

// RegisterRoutes mounts the client routes. rg must resolve the caller
// (IdentifyUser) so an anonymous booking gets UNAUTHENTICATED.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, limit ...gin.HandlerFunc) {
	create := append(append([]gin.HandlerFunc{}, limit...), h.CreateBooking)
	rg.POST("/bookings", create...)
	rg.GET("/bookings/:bookingId", h.GetBooking)
	rg.GET("/users/me/bookings", h.ListMyBookings)
}

// RegisterVenueAdminRoutes mounts routes on a group already scoped to
// /admin/venues/:id and guarded by VenueAdmin.
func (h *Handler) RegisterVenueAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings", h.ListVenueAppointments)
}

func (h *Handler) GetAvailability(c *gin.Context) {
	out, err := h.service.GetAvailability(c.Request.Context(), c.Param("id"), c.Query("date"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if !actor.Authenticated() {
		response.FromError(c, domain.ErrUnauthenticated)
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), actor, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": NewBookingResponse(b)})
}

func (h *Handler) GetBooking(c *gin.Context) {
	b, err := h.service.GetBooking(c.Request.Context(), middleware.ActorFrom(c), c.Param("bookingId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": NewBookingResponse(b)})
}

func (h *Handler) ListMyBookings(c *gin.Context) {
	bookings, err := h.service.ListMyBookings(c.Request.Context(), middleware.ActorFrom(c), c.Query("scope"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": NewBookingResponses(bookings)})
}

func (h *Handler) ListVenueAppointments(c *gin.Context) {
	bookings, err := h.service.ListVenueAppointments(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": NewBookingResponses(bookings)})
}
