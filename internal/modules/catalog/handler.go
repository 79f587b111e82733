package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clinicbook/internal/middleware"
	"clinicbook/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/venues", h.ListVenues)
	rg.GET("/venues/:id", h.GetVenue)
}

// RegisterAdminRoutes mounts routes open to the whole admin area.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/venues", h.ListAdminVenues)
}

// RegisterSuperAdminRoutes mounts routes guarded by RequireRole(SUPER_ADMIN).
func (h *Handler) RegisterSuperAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/venues", h.CreateVenue)
	rg.POST("/venues/:id/admins", h.GrantVenueAdmin)
}

// RegisterVenueAdminRoutes mounts routes on a group scoped to
// /admin/venues/:id and guarded by VenueAdmin.
func (h *Handler) RegisterVenueAdminRoutes(rg *gin.RouterGroup) {
	rg.PUT("", h.UpdateVenue)
	rg.PATCH("/settings", h.UpdateSettings)
	rg.POST("/services", h.CreateService)
	rg.PUT("/services/:serviceId", h.UpdateService)
	rg.DELETE("/services/:serviceId", h.DeleteService)
}

/* ---------- VENUE HANDLERS ---------- */

func (h *Handler) ListVenues(c *gin.Context) {
	venues, err := h.service.ListVenues(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"venues": NewVenueResponses(venues)})
}

func (h *Handler) GetVenue(c *gin.Context) {
	venue, err := h.service.GetVenue(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"venue": NewVenueResponse(venue)})
}

func (h *Handler) ListAdminVenues(c *gin.Context) {
	venues, err := h.service.ListAdminVenues(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"venues": NewVenueResponses(venues)})
}

func (h *Handler) CreateVenue(c *gin.Context) {
	var req CreateVenueRequest
	if !bind(c, &req) {
		return
	}
	venue, err := h.service.CreateVenue(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"venue": NewVenueResponse(venue)})
}

func (h *Handler) UpdateVenue(c *gin.Context) {
	var req UpdateVenueRequest
	if !bind(c, &req) {
		return
	}
	venue, err := h.service.UpdateVenue(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"venue": NewVenueResponse(venue)})
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if !bind(c, &req) {
		return
	}
	venue, err := h.service.UpdateSettings(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"venue": NewVenueResponse(venue)})
}

func (h *Handler) GrantVenueAdmin(c *gin.Context) {
	var req GrantAdminRequest
	if !bind(c, &req) {
		return
	}
	link, err := h.service.GrantVenueAdmin(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"admin": link})
}

/* ---------- SERVICE HANDLERS ---------- */

func (h *Handler) CreateService(c *gin.Context) {
	var req ServiceRequest
	if !bind(c, &req) {
		return
	}
	svc, err := h.service.CreateService(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"service": NewServiceResponse(svc)})
}

func (h *Handler) UpdateService(c *gin.Context) {
	var req ServiceRequest
	if !bind(c, &req) {
		return
	}
	svc, err := h.service.UpdateService(c.Request.Context(), c.Param("id"), c.Param("serviceId"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"service": NewServiceResponse(svc)})
}

func (h *Handler) DeleteService(c *gin.Context) {
	if err := h.service.DeleteService(c.Request.Context(), c.Param("id"), c.Param("serviceId")); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return false
	}
	return true
}
