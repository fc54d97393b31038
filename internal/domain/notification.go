package domain

import "time"

type NotificationType string

const (
	NotifBookingCreated   NotificationType = "booking_created"
	NotifBookingStatus    NotificationType = "booking_status"
	NotifPaymentCompleted NotificationType = "payment_completed"
	NotifPayoutRequested  NotificationType = "payout_requested"
	NotifPayoutDecided    NotificationType = "payout_decided"
	NotifNewRating        NotificationType = "new_rating"
)

type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id" gorm:"not null;index"`
	Type      NotificationType `json:"type" gorm:"type:varchar(32);not null"`
	Title     string           `json:"title" gorm:"not null"`
	Message   string           `json:"message,omitempty" gorm:"type:text"`
	IsRead    bool             `json:"is_read" gorm:"not null;default:false;index"`
	Data      any              `json:"data,omitempty" gorm:"serializer:json"`
	CreatedAt time.Time        `json:"created_at" gorm:"autoCreateTime"`
}
