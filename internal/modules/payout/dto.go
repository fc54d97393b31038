package payout

import (
	"github.com/google/uuid"

	"servicemarket/internal/domain"
)

// Amount and AdminNote carry no binding tag: a zero amount or an empty note
// must reach the service so the response names the actual problem.
type ApplyRequest struct {
	Amount float64 `json:"amount"`
}

type DecideRequest struct {
	PayoutIDs []uuid.UUID `json:"payout_ids" binding:"required"`
	Status    string      `json:"status" binding:"required"`
	AdminNote string      `json:"admin_notes"`
}

type PendingResponse struct {
	VendorID       int64   `json:"vendor_id"`
	PendingBalance float64 `json:"pending_balance"`
}

// HistoryResponse is the vendor's money page: a running summary plus the
// payout requests and completed bookings behind it.
type HistoryResponse struct {
	PendingBalance float64                `json:"pending_balance"`
	TotalPaid      float64                `json:"total_paid"`
	Payouts        []domain.PayoutRequest `json:"payouts"`
	Bookings       []domain.Booking       `json:"bookings"`
}
