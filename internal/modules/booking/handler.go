package booking

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"servicemarket/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires user-facing routes; vendor and admin groups are
// registered separately so role middleware can differ.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/cart/checkout", h.Checkout)
	rg.GET("/bookings", h.MyBookings)
}

func (h *Handler) RegisterVendorRoutes(rg *gin.RouterGroup) {
	rg.GET("/vendor/bookings", h.VendorBookings)
	rg.PATCH("/vendor/bookings/:id/status", h.UpdateStatus)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.PATCH("/admin/bookings/:id/status", h.UpdateStatus)
}

func (h *Handler) Checkout(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	b, err := h.service.Checkout(c.Request.Context(), userID)
	if err != nil {
		switch err {
		case ErrNoCart:
			response.Error(c, http.StatusNotFound, "CART_NOT_FOUND", "No active cart to check out")
		case ErrCartNotSchedulable:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Cart must have a scheduled date and time")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Checkout failed")
		}
		return
	}

	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) MyBookings(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	limit, offset := pagination(c)
	list, err := h.service.GetMyBookings(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to load bookings")
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) VendorBookings(c *gin.Context) {
	vendorID := c.GetInt64("user_id")
	if vendorID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	limit, offset := pagination(c)
	list, err := h.service.GetVendorBookings(c.Request.Context(), vendorID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to load bookings")
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	actorID := c.GetInt64("user_id")
	role := c.GetString("role")
	if actorID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), bookingID, actorID, role, req.Status, req.Note)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown target status")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You cannot manage this booking")
		case ErrInvalidStatusTransition:
			response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Booking cannot move to the requested status")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to update booking")
		}
		return
	}

	response.Success(c, http.StatusOK, b)
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
