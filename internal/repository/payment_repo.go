package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"servicemarket/internal/domain"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) GetByIntentID(ctx context.Context, intentID string) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).Where("intent_id = ?", intentID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// MarkCompletedIdempotent flips a pending payment to completed and reports
// whether this call did the flip. A replayed webhook finds no pending row and
// is a no-op; a completed payment never regresses.
func (r *PaymentRepository) MarkCompletedIdempotent(ctx context.Context, intentID string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("intent_id = ? AND status = ?", intentID, domain.PaymentPending).
		Updates(map[string]any{
			"status":       domain.PaymentCompleted,
			"completed_at": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// MarkFailedIdempotent flips a pending payment to failed. Completed payments
// are left alone.
func (r *PaymentRepository) MarkFailedIdempotent(ctx context.Context, intentID string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("intent_id = ? AND status = ?", intentID, domain.PaymentPending).
		Updates(map[string]any{
			"status":    domain.PaymentFailed,
			"failed_at": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Payment, error) {
	var out []domain.Payment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, err
}
