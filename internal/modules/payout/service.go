package payout

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"servicemarket/internal/domain"
	"servicemarket/internal/repository"
)

type Service struct {
	payouts  PayoutRepository
	bookings BookingReader
	notifs   NotificationSender
	loggerf  func(format string, args ...interface{})
}

func NewService(payouts PayoutRepository, bookings BookingReader, notifs NotificationSender, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{payouts: payouts, bookings: bookings, notifs: notifs, loggerf: loggerf}
}

func (s *Service) GetPendingPayout(ctx context.Context, vendorID int64) (*PendingResponse, error) {
	balance, err := s.payouts.PendingBalance(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	return &PendingResponse{VendorID: vendorID, PendingBalance: balance}, nil
}

// Apply opens a payout request. The amount bound is enforced again inside the
// repository transaction; the check here only rejects the obvious garbage
// before a transaction is opened.
func (s *Service) Apply(ctx context.Context, vendorID int64, amount float64) (*domain.PayoutRequest, error) {
	if amount <= 0 {
		return nil, ErrValidation
	}

	req, err := s.payouts.Apply(ctx, vendorID, amount)
	if err != nil {
		if errors.Is(err, repository.ErrPayoutExceedsBalance) {
			return nil, ErrExceedsBalance
		}
		return nil, err
	}

	s.loggerf("level=info msg=payout requested vendor_id=%d payout_id=%s amount=%.2f", vendorID, req.ID, amount)

	if s.notifs != nil {
		if err := s.notifs.NotifyPayoutRequested(ctx, vendorID, req.ID, amount); err != nil {
			s.loggerf("level=error msg=payout notification failed payout_id=%s err=%v", req.ID, err)
		}
	}
	return req, nil
}

// Decide applies one admin decision to a batch of payout requests. The note
// is mandatory; whitespace does not count.
func (s *Service) Decide(ctx context.Context, adminID int64, ids []uuid.UUID, status, note string) ([]domain.PayoutRequest, error) {
	if len(ids) == 0 {
		return nil, ErrValidation
	}
	if strings.TrimSpace(note) == "" {
		return nil, ErrNoteRequired
	}

	target := domain.PayoutStatus(status)
	switch target {
	case domain.PayoutApproved, domain.PayoutRejected, domain.PayoutPaid:
	default:
		return nil, ErrValidation
	}

	updated, err := s.payouts.Decide(ctx, adminID, ids, target, note)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrPayoutNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrPayoutInvalidTransition):
			return nil, ErrInvalidTransition
		}
		return nil, err
	}

	s.loggerf("level=info msg=payouts decided admin_id=%d count=%d status=%s", adminID, len(updated), target)

	if s.notifs != nil {
		for _, p := range updated {
			if err := s.notifs.NotifyPayoutDecided(ctx, p.VendorID, p.ID, string(target), note); err != nil {
				s.loggerf("level=error msg=payout decision notification failed payout_id=%s err=%v", p.ID, err)
			}
		}
	}
	return updated, nil
}

func (s *Service) ListMine(ctx context.Context, vendorID int64, status string, from, to *time.Time, limit, offset int) ([]domain.PayoutRequest, error) {
	return s.payouts.ListByVendor(ctx, vendorID, domain.PayoutStatus(status), from, to, limit, offset)
}

func (s *Service) PendingQueue(ctx context.Context, limit, offset int) ([]domain.PayoutRequest, error) {
	return s.payouts.ListByStatus(ctx, domain.PayoutPending, limit, offset)
}

// History assembles the vendor's money page in one call.
func (s *Service) History(ctx context.Context, vendorID int64, status string, from, to *time.Time, limit, offset int) (*HistoryResponse, error) {
	balance, err := s.payouts.PendingBalance(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	totalPaid, err := s.payouts.TotalPaid(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	payouts, err := s.payouts.ListByVendor(ctx, vendorID, domain.PayoutStatus(status), from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookings.ListByVendorFiltered(ctx, vendorID, domain.BookingCompleted, from, to, limit, offset)
	if err != nil {
		return nil, err
	}

	return &HistoryResponse{
		PendingBalance: balance,
		TotalPaid:      totalPaid,
		Payouts:        payouts,
		Bookings:       bookings,
	}, nil
}
