package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"servicemarket/internal/domain"
)

// Service persists notifications and pushes them to connected websocket
// clients. Persistence failures surface to callers; push failures never do.
type Service struct {
	repo    NotificationRepository
	admins  AdminDirectory
	hub     *Hub
	loggerf func(format string, args ...interface{})
}

func NewService(repo NotificationRepository, admins AdminDirectory, hub *Hub, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{repo: repo, admins: admins, hub: hub, loggerf: loggerf}
}

func (s *Service) notify(ctx context.Context, userID int64, typ domain.NotificationType, title, message string, data map[string]any) error {
	n := &domain.Notification{
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Message: message,
		Data:    data,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	if s.hub != nil {
		s.hub.SendToUser(userID, n)
	}
	return nil
}

func (s *Service) NotifyUser(ctx context.Context, userID int64, typ domain.NotificationType, title, message string, data map[string]any) error {
	return s.notify(ctx, userID, typ, title, message, data)
}

// NotifyAdmins fans out to every admin. One failed insert does not stop the
// rest; the first error is reported.
func (s *Service) NotifyAdmins(ctx context.Context, typ domain.NotificationType, title, message string, data map[string]any) error {
	ids, err := s.admins.AdminIDs(ctx)
	if err != nil {
		return err
	}

	var firstErr error
	for _, id := range ids {
		if err := s.notify(ctx, id, typ, title, message, data); err != nil {
			s.loggerf("level=error msg=admin notification failed admin_id=%d err=%v", id, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (s *Service) NotifyBookingCreated(ctx context.Context, vendorID int64, b *domain.Booking) error {
	return s.notify(ctx, vendorID, domain.NotifBookingCreated,
		"New booking",
		fmt.Sprintf("Booking #%d was created for %s", b.ID, b.ScheduledDate.Format("2006-01-02")),
		map[string]any{"booking_id": b.ID, "user_id": b.UserID})
}

func (s *Service) NotifyBookingStatus(ctx context.Context, userID, bookingID int64, status domain.BookingStatus, note string) error {
	return s.notify(ctx, userID, domain.NotifBookingStatus,
		"Booking updated",
		fmt.Sprintf("Booking #%d is now %s", bookingID, status),
		map[string]any{"booking_id": bookingID, "status": string(status), "note": note})
}

func (s *Service) NotifyPaymentCompleted(ctx context.Context, userID int64, intentID string, amount float64, currency string) error {
	return s.notify(ctx, userID, domain.NotifPaymentCompleted,
		"Payment received",
		fmt.Sprintf("Your payment of %.2f %s was confirmed", amount, currency),
		map[string]any{"intent_id": intentID, "amount": amount, "currency": currency})
}

func (s *Service) NotifyPayoutRequested(ctx context.Context, vendorID int64, payoutID uuid.UUID, amount float64) error {
	// The vendor gets a receipt; admins get the work item.
	if err := s.NotifyAdmins(ctx, domain.NotifPayoutRequested,
		"Payout requested",
		fmt.Sprintf("Vendor %d requested a payout of %.2f", vendorID, amount),
		map[string]any{"payout_id": payoutID.String(), "vendor_id": vendorID, "amount": amount}); err != nil {
		s.loggerf("level=error msg=payout admin fan-out failed payout_id=%s err=%v", payoutID, err)
	}

	return s.notify(ctx, vendorID, domain.NotifPayoutRequested,
		"Payout request received",
		fmt.Sprintf("Your payout request for %.2f is pending review", amount),
		map[string]any{"payout_id": payoutID.String(), "amount": amount})
}

func (s *Service) NotifyPayoutDecided(ctx context.Context, vendorID int64, payoutID uuid.UUID, status string, note string) error {
	return s.notify(ctx, vendorID, domain.NotifPayoutDecided,
		"Payout "+status,
		fmt.Sprintf("Your payout request was %s: %s", status, note),
		map[string]any{"payout_id": payoutID.String(), "status": status, "note": note})
}

func (s *Service) NotifyNewRating(ctx context.Context, vendorID int64, ratingID int64, stars int) error {
	return s.notify(ctx, vendorID, domain.NotifNewRating,
		"New rating",
		fmt.Sprintf("You received a %d-star rating", stars),
		map[string]any{"rating_id": ratingID, "stars": stars})
}

func (s *Service) GetUserNotifications(ctx context.Context, userID int64, limit, offset int) ([]domain.Notification, int64, error) {
	list, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return list, unread, nil
}

func (s *Service) MarkAsRead(ctx context.Context, id, userID int64) error {
	return s.repo.MarkAsRead(ctx, id, userID)
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}
