package rating

import (
	"context"

	"servicemarket/internal/domain"
)

type RatingRepository interface {
	Create(ctx context.Context, rt *domain.Rating) error
	GetByID(ctx context.Context, id int64) (*domain.Rating, error)
	Delete(ctx context.Context, id int64) error
	ListByVendor(ctx context.Context, vendorID int64, limit, offset int) ([]domain.Rating, error)
}

// BookingChecker answers whether the rater actually bought from the vendor.
type BookingChecker interface {
	HasCompletedBooking(ctx context.Context, userID, vendorID int64, bookingID *int64) (bool, error)
}

type NotificationSender interface {
	NotifyNewRating(ctx context.Context, vendorID int64, ratingID int64, stars int) error
}
