package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PayoutStatus string

const (
	PayoutPending  PayoutStatus = "pending"
	PayoutApproved PayoutStatus = "approved"
	PayoutRejected PayoutStatus = "rejected"
	PayoutPaid     PayoutStatus = "paid"
)

// payoutTransitions: pending -> approved -> paid, or pending -> rejected.
// Rejected and paid are terminal.
var payoutTransitions = map[PayoutStatus][]PayoutStatus{
	PayoutPending:  {PayoutApproved, PayoutRejected},
	PayoutApproved: {PayoutPaid},
}

func (s PayoutStatus) CanTransitionTo(next PayoutStatus) bool {
	for _, allowed := range payoutTransitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

// PayoutRequest is a vendor's ask to withdraw accrued earnings. The amount is
// validated against the computed pending balance when the row is inserted.
// AdminNote is the audit trail and is required whenever status leaves pending.
type PayoutRequest struct {
	ID        uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	VendorID  int64        `json:"vendor_id" gorm:"not null;index"`
	Amount    float64      `json:"amount" gorm:"not null"`
	Status    PayoutStatus `json:"status" gorm:"type:varchar(16);not null;index"`
	AdminNote string       `json:"admin_note,omitempty" gorm:"type:text"`
	DecidedBy *int64       `json:"decided_by,omitempty"`
	DecidedAt *time.Time   `json:"decided_at,omitempty"`
	CreatedAt time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"autoUpdateTime"`
}

func (PayoutRequest) TableName() string { return "payout_requests" }

func (p *PayoutRequest) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
