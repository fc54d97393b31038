package cart

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"servicemarket/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/cart", h.AddToCart)
	rg.GET("/cart", h.GetCart)
	rg.DELETE("/cart", h.Abandon)
}

func (h *Handler) AddToCart(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	cart, err := h.service.AddToCart(c.Request.Context(), userID, req)
	if err != nil {
		if err == ErrValidation {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Selection must include packages with identified, priced sub-items and a valid date/time")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to save cart")
		return
	}

	response.Success(c, http.StatusCreated, cart)
}

func (h *Handler) GetCart(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	cart, err := h.service.GetCart(c.Request.Context(), userID)
	if err != nil {
		if err == ErrNotFound {
			// An empty cart is a normal state, not an error.
			response.Success(c, http.StatusOK, gin.H{"empty": true, "cart": nil})
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to load cart")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"empty": false, "cart": cart})
}

func (h *Handler) Abandon(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	if err := h.service.Abandon(c.Request.Context(), userID); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to clear cart")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Cart cleared"})
}
