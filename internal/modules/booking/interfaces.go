package booking

import (
	"context"

	"servicemarket/internal/domain"
)

// BookingRepository defines the interface for booking operations
type BookingRepository interface {
	ConvertCart(ctx context.Context, userID int64) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error)
	ListByVendor(ctx context.Context, vendorID int64, limit, offset int) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus, vendorNote, adminNote string) error
}

// NotificationSender is the best-effort fan-out; failures never surface to
// the booking flow.
type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, vendorID int64, b *domain.Booking) error
	NotifyBookingStatus(ctx context.Context, userID, bookingID int64, status domain.BookingStatus, note string) error
	NotifyAdmins(ctx context.Context, event domain.NotificationType, title, message string, data map[string]any) error
}
