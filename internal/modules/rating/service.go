package rating

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"servicemarket/internal/domain"
	"servicemarket/internal/pkg/validator"
	"servicemarket/internal/repository"
)

type Service struct {
	ratings  RatingRepository
	bookings BookingChecker
	notifs   NotificationSender
	loggerf  func(format string, args ...interface{})
}

func NewService(ratings RatingRepository, bookings BookingChecker, notifs NotificationSender, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{ratings: ratings, bookings: bookings, notifs: notifs, loggerf: loggerf}
}

// Create gates on a completed booking with the vendor, then relies on the
// database unique indexes to reject duplicates under concurrency.
func (s *Service) Create(ctx context.Context, userID int64, req CreateRatingRequest) (*domain.Rating, error) {
	if userID <= 0 || req.VendorID <= 0 {
		return nil, ErrValidation
	}
	// Without at least one of these the unique indexes cannot see the row and
	// the same user could rate the vendor without limit.
	if req.BookingID == nil && req.PackageID == nil {
		return nil, ErrValidation
	}

	rt := &domain.Rating{
		VendorID:  req.VendorID,
		UserID:    userID,
		BookingID: req.BookingID,
		PackageID: req.PackageID,
		Stars:     req.Stars,
		Comment:   req.Comment,
	}
	if details := validator.Validate(rt); details != nil {
		return nil, ErrValidation
	}

	ok, err := s.bookings.HasCompletedBooking(ctx, userID, req.VendorID, req.BookingID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}

	if err := s.ratings.Create(ctx, rt); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}

	s.loggerf("level=info msg=rating created rating_id=%d vendor_id=%d user_id=%d stars=%d", rt.ID, rt.VendorID, userID, rt.Stars)

	if s.notifs != nil {
		if err := s.notifs.NotifyNewRating(ctx, rt.VendorID, rt.ID, rt.Stars); err != nil {
			s.loggerf("level=error msg=rating notification failed rating_id=%d err=%v", rt.ID, err)
		}
	}
	return rt, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.ratings.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.loggerf("level=info msg=rating deleted rating_id=%d", id)
	return nil
}

func (s *Service) ListByVendor(ctx context.Context, vendorID int64, limit, offset int) ([]domain.Rating, error) {
	return s.ratings.ListByVendor(ctx, vendorID, limit, offset)
}
