package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Payment is one row per payment-intent attempt, keyed by the processor's
// intent id. Status only ever moves pending -> completed or pending -> failed.
type Payment struct {
	ID          uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      int64         `json:"user_id" gorm:"not null;index"`
	BookingID   *int64        `json:"booking_id,omitempty" gorm:"index"`
	IntentID    string        `json:"intent_id" gorm:"not null;uniqueIndex"`
	Amount      float64       `json:"amount" gorm:"not null"`
	Currency    string        `json:"currency" gorm:"type:varchar(8);not null"`
	Status      PaymentStatus `json:"status" gorm:"type:varchar(16);not null;index"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
	FailedAt    *time.Time    `json:"failed_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Payment) TableName() string { return "payments" }

func (p *Payment) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
