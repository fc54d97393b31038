package payout

import (
	"context"
	"time"

	"github.com/google/uuid"

	"servicemarket/internal/domain"
)

type PayoutRepository interface {
	PendingBalance(ctx context.Context, vendorID int64) (float64, error)
	Apply(ctx context.Context, vendorID int64, amount float64) (*domain.PayoutRequest, error)
	Decide(ctx context.Context, adminID int64, ids []uuid.UUID, status domain.PayoutStatus, note string) ([]domain.PayoutRequest, error)
	ListByVendor(ctx context.Context, vendorID int64, status domain.PayoutStatus, from, to *time.Time, limit, offset int) ([]domain.PayoutRequest, error)
	ListByStatus(ctx context.Context, status domain.PayoutStatus, limit, offset int) ([]domain.PayoutRequest, error)
	TotalPaid(ctx context.Context, vendorID int64) (float64, error)
}

// BookingReader supplies the completed bookings behind a vendor's history
// page.
type BookingReader interface {
	ListByVendorFiltered(ctx context.Context, vendorID int64, status domain.BookingStatus, from, to *time.Time, limit, offset int) ([]domain.Booking, error)
}

type NotificationSender interface {
	NotifyPayoutRequested(ctx context.Context, vendorID int64, payoutID uuid.UUID, amount float64) error
	NotifyPayoutDecided(ctx context.Context, vendorID int64, payoutID uuid.UUID, status string, note string) error
}
