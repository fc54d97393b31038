package notification

import (
	"context"

	"servicemarket/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkAsRead(ctx context.Context, id, userID int64) error
	MarkAllAsRead(ctx context.Context, userID int64) error
}

// AdminDirectory resolves the recipients of admin-wide fan-out.
type AdminDirectory interface {
	AdminIDs(ctx context.Context) ([]int64, error)
}
