package payment

import (
	"context"
	"time"

	"servicemarket/internal/domain"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByIntentID(ctx context.Context, intentID string) (*domain.Payment, error)
	MarkCompletedIdempotent(ctx context.Context, intentID string, at time.Time) (bool, error)
	MarkFailedIdempotent(ctx context.Context, intentID string, at time.Time) (bool, error)
}

// IntentProvider opens a payment intent with the external processor. The
// charge itself is confirmed client-side against the processor.
type IntentProvider interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (intentID, clientSecret string, err error)
}

// EventVerifier authenticates an inbound webhook payload against the shared
// signing secret before any state is touched.
type EventVerifier interface {
	Verify(payload []byte, sigHeader string) (*ProcessorEvent, error)
}

type NotificationSender interface {
	NotifyPaymentCompleted(ctx context.Context, userID int64, intentID string, amount float64, currency string) error
}
