package booking

import "servicemarket/internal/domain"

type UpdateStatusRequest struct {
	Status domain.BookingStatus `json:"status" binding:"required"`
	Note   string               `json:"note"`
}
