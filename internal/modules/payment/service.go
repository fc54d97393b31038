package payment

import (
	"context"
	"fmt"
	"math"
	"time"

	"servicemarket/internal/domain"
)

type Service struct {
	payments PaymentRepository
	provider IntentProvider
	verifier EventVerifier
	notifs   NotificationSender
	currency string
	loggerf  func(format string, args ...interface{})
}

func NewService(payments PaymentRepository, provider IntentProvider, verifier EventVerifier, notifs NotificationSender, defaultCurrency string, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		payments: payments,
		provider: provider,
		verifier: verifier,
		notifs:   notifs,
		currency: defaultCurrency,
		loggerf:  loggerf,
	}
}

// ComputeTotal sums sub-item price x quantity over all packages. A missing
// quantity means 1; non-positive quantities are skipped. All math stays in
// the natural currency unit until the minor-unit conversion at the processor
// boundary.
func (s *Service) ComputeTotal(packages []PackageLine) (float64, error) {
	var total float64
	for _, p := range packages {
		if p.PackageID <= 0 {
			return 0, ErrValidation
		}
		for _, item := range p.SubItems {
			if item.SubPackageID <= 0 || item.Price == nil {
				return 0, ErrValidation
			}
			qty := 1
			if item.Quantity != nil {
				qty = *item.Quantity
			}
			if qty <= 0 {
				continue
			}
			total += *item.Price * float64(qty)
		}
	}
	return total, nil
}

// CreateIntent opens a processor intent for the computed total and persists
// a pending payment row keyed by the intent id. No local row is written when
// the processor call fails.
func (s *Service) CreateIntent(ctx context.Context, userID int64, req CreateIntentRequest) (*CreateIntentResponse, error) {
	if userID <= 0 || len(req.Packages) == 0 {
		return nil, ErrValidation
	}

	total, err := s.ComputeTotal(req.Packages)
	if err != nil {
		return nil, err
	}
	if total <= 0 {
		return nil, ErrValidation
	}

	currency := req.Currency
	if currency == "" {
		currency = s.currency
	}
	if len(currency) != 3 {
		return nil, ErrValidation
	}

	// Half-up at the minor-unit boundary.
	amountMinor := int64(math.Round(total * 100))

	metadata := map[string]string{
		"user_id": fmt.Sprintf("%d", userID),
	}
	if req.BookingID != nil {
		metadata["booking_id"] = fmt.Sprintf("%d", *req.BookingID)
	}
	for _, p := range req.Packages {
		key := fmt.Sprintf("package_%d", p.PackageID)
		var desc string
		for _, item := range p.SubItems {
			qty := 1
			if item.Quantity != nil {
				qty = *item.Quantity
			}
			if qty <= 0 {
				continue
			}
			if desc != "" {
				desc += "; "
			}
			desc += fmt.Sprintf("sub %d x%d @%.2f", item.SubPackageID, qty, *item.Price)
		}
		metadata[key] = desc
	}

	intentID, clientSecret, err := s.provider.CreateIntent(ctx, amountMinor, currency, metadata)
	if err != nil {
		s.loggerf("level=error msg=payment intent creation failed user_id=%d amount=%.2f err=%v", userID, total, err)
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	p := &domain.Payment{
		UserID:    userID,
		BookingID: req.BookingID,
		IntentID:  intentID,
		Amount:    total,
		Currency:  currency,
		Status:    domain.PaymentPending,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("save payment: %w", err)
	}

	s.loggerf("level=info msg=payment intent created user_id=%d intent_id=%s amount=%.2f currency=%s", userID, intentID, total, currency)

	return &CreateIntentResponse{
		IntentID:     intentID,
		ClientSecret: clientSecret,
		Amount:       total,
		Currency:     currency,
	}, nil
}

// HandleWebhook verifies and applies one processor event. Replays are
// no-ops; unknown event types are acknowledged so the processor stops
// retrying them.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := s.verifier.Verify(payload, sigHeader)
	if err != nil {
		s.loggerf("level=error msg=webhook signature verification failed err=%v", err)
		return ErrInvalidSignature
	}

	switch event.Type {
	case EventPaymentSucceeded:
		changed, err := s.payments.MarkCompletedIdempotent(ctx, event.IntentID, time.Now().UTC())
		if err != nil {
			return err
		}
		if !changed {
			s.loggerf("level=info msg=idempotent webhook already applied intent_id=%s", event.IntentID)
			return nil
		}
		s.loggerf("level=info msg=payment completed intent_id=%s", event.IntentID)

		if s.notifs != nil {
			p, err := s.payments.GetByIntentID(ctx, event.IntentID)
			if err != nil {
				s.loggerf("level=error msg=failed to load payment for notification intent_id=%s err=%v", event.IntentID, err)
				return nil
			}
			if err := s.notifs.NotifyPaymentCompleted(ctx, p.UserID, p.IntentID, p.Amount, p.Currency); err != nil {
				s.loggerf("level=error msg=payment notification failed intent_id=%s err=%v", event.IntentID, err)
			}
		}
		return nil

	case EventPaymentFailed:
		changed, err := s.payments.MarkFailedIdempotent(ctx, event.IntentID, time.Now().UTC())
		if err != nil {
			return err
		}
		if changed {
			s.loggerf("level=info msg=payment failed intent_id=%s", event.IntentID)
		}
		return nil

	default:
		s.loggerf("level=info msg=ignoring webhook event type=%s", event.Type)
		return nil
	}
}
