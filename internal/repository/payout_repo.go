package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"servicemarket/internal/domain"
)

var (
	ErrPayoutExceedsBalance    = errors.New("requested amount cannot be greater than pending payout")
	ErrPayoutNotFound          = errors.New("payout request not found")
	ErrPayoutInvalidTransition = errors.New("invalid payout status transition")
)

type PayoutRepository struct {
	db *gorm.DB
}

func NewPayoutRepository(db *gorm.DB) *PayoutRepository {
	return &PayoutRepository{db: db}
}

// PendingBalance is computed, never stored: completed-booking earnings minus
// everything already reserved by non-rejected payout requests.
func (r *PayoutRepository) PendingBalance(ctx context.Context, vendorID int64) (float64, error) {
	return pendingBalance(r.db.WithContext(ctx), vendorID, false)
}

func pendingBalance(tx *gorm.DB, vendorID int64, lockRows bool) (float64, error) {
	var earned float64
	err := tx.Model(&domain.BookingSubPackage{}).
		Select("COALESCE(SUM(booking_sub_packages.price * booking_sub_packages.quantity), 0)").
		Joins("JOIN bookings ON bookings.id = booking_sub_packages.booking_id").
		Where("bookings.vendor_id = ? AND bookings.status = ?", vendorID, domain.BookingCompleted).
		Scan(&earned).Error
	if err != nil {
		return 0, err
	}

	// Aggregates cannot take FOR UPDATE, so reserved rows are locked
	// individually and summed here.
	q := tx.Where("vendor_id = ? AND status IN ?", vendorID,
		[]domain.PayoutStatus{domain.PayoutPending, domain.PayoutApproved, domain.PayoutPaid})
	if lockRows && tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var reserved []domain.PayoutRequest
	if err := q.Find(&reserved).Error; err != nil {
		return 0, err
	}

	balance := earned
	for _, p := range reserved {
		balance -= p.Amount
	}
	return balance, nil
}

// Apply inserts a pending payout request after re-validating the balance
// inside the same transaction. The row lock keeps two concurrent requests
// from both passing the bound check; sqlite has no row locks and serializes
// writers on its own.
func (r *PayoutRepository) Apply(ctx context.Context, vendorID int64, amount float64) (*domain.PayoutRequest, error) {
	var req *domain.PayoutRequest

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		balance, err := pendingBalance(tx, vendorID, true)
		if err != nil {
			return err
		}
		if amount > balance {
			return ErrPayoutExceedsBalance
		}

		row := domain.PayoutRequest{
			VendorID: vendorID,
			Amount:   amount,
			Status:   domain.PayoutPending,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		req = &row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Decide applies one status transition to a batch of payout requests. The
// batch is atomic: a missing id or an illegal transition on any row rolls
// everything back.
func (r *PayoutRepository) Decide(ctx context.Context, adminID int64, ids []uuid.UUID, status domain.PayoutStatus, note string) ([]domain.PayoutRequest, error) {
	var updated []domain.PayoutRequest

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where("id IN ?", ids)
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var rows []domain.PayoutRequest
		if err := q.Find(&rows).Error; err != nil {
			return err
		}
		if len(rows) != len(ids) {
			return ErrPayoutNotFound
		}

		now := time.Now().UTC()
		for i := range rows {
			if !rows[i].Status.CanTransitionTo(status) {
				return ErrPayoutInvalidTransition
			}
			rows[i].Status = status
			rows[i].AdminNote = note
			rows[i].DecidedBy = &adminID
			rows[i].DecidedAt = &now
			if err := tx.Model(&domain.PayoutRequest{}).
				Where("id = ?", rows[i].ID).
				Updates(map[string]any{
					"status":     status,
					"admin_note": note,
					"decided_by": adminID,
					"decided_at": now,
				}).Error; err != nil {
				return err
			}
		}

		updated = rows
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *PayoutRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PayoutRequest, error) {
	var p domain.PayoutRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PayoutRepository) ListByVendor(ctx context.Context, vendorID int64, status domain.PayoutStatus, from, to *time.Time, limit, offset int) ([]domain.PayoutRequest, error) {
	q := r.db.WithContext(ctx).Where("vendor_id = ?", vendorID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("created_at <= ?", *to)
	}

	var out []domain.PayoutRequest
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&out).Error
	return out, err
}

func (r *PayoutRepository) ListByStatus(ctx context.Context, status domain.PayoutStatus, limit, offset int) ([]domain.PayoutRequest, error) {
	var out []domain.PayoutRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, err
}

func (r *PayoutRepository) TotalPaid(ctx context.Context, vendorID int64) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&domain.PayoutRequest{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("vendor_id = ? AND status = ?", vendorID, domain.PayoutPaid).
		Scan(&total).Error
	return total, err
}
