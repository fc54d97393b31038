package booking

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"servicemarket/internal/domain"
	"servicemarket/internal/repository"
)

type Service struct {
	bookings BookingRepository
	notifs   NotificationSender
	loggerf  func(format string, args ...interface{})
}

func NewService(bookings BookingRepository, notifs NotificationSender, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{bookings: bookings, notifs: notifs, loggerf: loggerf}
}

// Checkout converts the user's active cart into a booking. The conversion is
// one transaction inside the repository; here we only map errors and fan out
// notifications after the commit.
func (s *Service) Checkout(ctx context.Context, userID int64) (*domain.Booking, error) {
	b, err := s.bookings.ConvertCart(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrNoCart
		case errors.Is(err, repository.ErrCartNotSchedulable):
			return nil, ErrCartNotSchedulable
		default:
			return nil, err
		}
	}

	if s.notifs != nil {
		if err := s.notifs.NotifyBookingCreated(ctx, b.VendorID, b); err != nil {
			s.loggerf("level=error msg=booking notification failed booking_id=%d err=%v", b.ID, err)
		}
		if err := s.notifs.NotifyAdmins(ctx, domain.NotifBookingCreated,
			"New booking",
			fmt.Sprintf("Booking #%d created for vendor %d", b.ID, b.VendorID),
			map[string]any{"booking_id": b.ID, "vendor_id": b.VendorID},
		); err != nil {
			s.loggerf("level=error msg=booking admin notification failed booking_id=%d err=%v", b.ID, err)
		}
	}

	return b, nil
}

func (s *Service) GetMyBookings(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) GetVendorBookings(ctx context.Context, vendorID int64, limit, offset int) ([]domain.Booking, error) {
	return s.bookings.ListByVendor(ctx, vendorID, limit, offset)
}

func (s *Service) GetByID(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// UpdateStatus moves a booking along the transition table. Vendors may only
// touch their own bookings; admins may override any booking.
func (s *Service) UpdateStatus(ctx context.Context, bookingID, actorID int64, actorRole string, newStatus domain.BookingStatus, note string) (*domain.Booking, error) {
	switch newStatus {
	case domain.BookingConfirmed, domain.BookingCancelled, domain.BookingCompleted:
	default:
		return nil, ErrValidation
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	isAdmin := actorRole == string(domain.RoleAdmin)
	if !isAdmin {
		if actorRole != string(domain.RoleVendor) || b.VendorID != actorID {
			return nil, ErrForbidden
		}
	}

	if !b.Status.CanTransitionTo(newStatus) {
		return nil, ErrInvalidStatusTransition
	}

	vendorNote, adminNote := note, ""
	if isAdmin {
		vendorNote, adminNote = "", note
	}
	if err := s.bookings.UpdateStatus(ctx, bookingID, newStatus, vendorNote, adminNote); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		if err := s.notifs.NotifyBookingStatus(ctx, b.UserID, b.ID, newStatus, note); err != nil {
			s.loggerf("level=error msg=booking status notification failed booking_id=%d err=%v", b.ID, err)
		}
	}

	return s.bookings.GetByID(ctx, bookingID)
}
