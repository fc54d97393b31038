package payout

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"servicemarket/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterVendorRoutes(rg *gin.RouterGroup) {
	rg.GET("/vendor/payouts/pending", h.Pending)
	rg.POST("/vendor/payouts", h.Apply)
	rg.GET("/vendor/payouts", h.MyPayouts)
	rg.GET("/vendor/payments", h.History)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/admin/payouts", h.PendingQueue)
	rg.PATCH("/admin/payouts", h.Decide)
}

func (h *Handler) Pending(c *gin.Context) {
	vendorID := c.GetInt64("user_id")
	if vendorID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	resp, err := h.service.GetPendingPayout(c.Request.Context(), vendorID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to compute pending payout")
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Apply(c *gin.Context) {
	vendorID := c.GetInt64("user_id")
	if vendorID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.Apply(c.Request.Context(), vendorID, req.Amount)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Amount must be positive")
		case ErrExceedsBalance:
			response.Error(c, http.StatusUnprocessableEntity, "EXCEEDS_BALANCE", "Requested amount cannot be greater than pending payout")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to request payout")
		}
		return
	}

	response.Success(c, http.StatusCreated, p)
}

func (h *Handler) MyPayouts(c *gin.Context) {
	vendorID := c.GetInt64("user_id")
	if vendorID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	limit, offset := pagination(c)
	from, to, err := dateRange(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Dates must use YYYY-MM-DD")
		return
	}

	list, err := h.service.ListMine(c.Request.Context(), vendorID, c.Query("status"), from, to, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to load payout requests")
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) History(c *gin.Context) {
	vendorID := c.GetInt64("user_id")
	if vendorID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	limit, offset := pagination(c)
	from, to, err := dateRange(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Dates must use YYYY-MM-DD")
		return
	}

	hist, err := h.service.History(c.Request.Context(), vendorID, c.Query("status"), from, to, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to load payment history")
		return
	}
	response.Success(c, http.StatusOK, hist)
}

func (h *Handler) PendingQueue(c *gin.Context) {
	limit, offset := pagination(c)
	list, err := h.service.PendingQueue(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to load payout queue")
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) Decide(c *gin.Context) {
	adminID := c.GetInt64("user_id")
	if adminID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	updated, err := h.service.Decide(c.Request.Context(), adminID, req.PayoutIDs, req.Status, req.AdminNote)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown target status or empty batch")
		case ErrNoteRequired:
			response.Error(c, http.StatusBadRequest, "NOTE_REQUIRED", "A note is required when deciding payout requests")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "One or more payout requests were not found")
		case ErrInvalidTransition:
			response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "One or more payout requests cannot move to the requested status")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to decide payout requests")
		}
		return
	}

	response.Success(c, http.StatusOK, updated)
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

func dateRange(c *gin.Context) (from, to *time.Time, err error) {
	if v := c.Query("from"); v != "" {
		t, perr := time.Parse("2006-01-02", v)
		if perr != nil {
			return nil, nil, perr
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, perr := time.Parse("2006-01-02", v)
		if perr != nil {
			return nil, nil, perr
		}
		// Inclusive end of day.
		t = t.Add(24*time.Hour - time.Nanosecond)
		to = &t
	}
	return from, to, nil
}
