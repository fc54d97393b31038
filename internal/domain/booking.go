package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// bookingTransitions is the only legal movement between booking states.
// Cancelled and completed are terminal.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

// Booking is created at checkout. Scheduling and price lines are frozen at
// creation; only status and notes mutate afterwards.
type Booking struct {
	ID            int64         `json:"id"`
	UserID        int64         `json:"user_id" gorm:"not null;index" validate:"required"`
	VendorID      int64         `json:"vendor_id" gorm:"not null;index" validate:"required"`
	CategoryID    int64         `json:"category_id" gorm:"not null"`
	ServiceID     int64         `json:"service_id" gorm:"not null"`
	ServiceTypeID int64         `json:"service_type_id" gorm:"not null"`
	ScheduledDate time.Time     `json:"scheduled_date" gorm:"not null"`
	ScheduledTime string        `json:"scheduled_time" gorm:"type:varchar(8);not null"`
	Notes         string        `json:"notes,omitempty" gorm:"type:text"`
	MediaURL      string        `json:"media_url,omitempty"`
	Status        BookingStatus `json:"status" gorm:"type:varchar(16);not null;index"`
	VendorNote    string        `json:"vendor_note,omitempty" gorm:"type:text"`
	AdminNote     string        `json:"admin_note,omitempty" gorm:"type:text"`
	CreatedAt     time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time     `json:"updated_at" gorm:"autoUpdateTime"`

	Packages    []BookingPackage    `json:"packages,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE"`
	SubPackages []BookingSubPackage `json:"sub_packages,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE"`
	Preferences []BookingPreference `json:"preferences,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE"`
}

// Total is the frozen line value of the booking.
func (b *Booking) Total() float64 {
	var sum float64
	for _, sp := range b.SubPackages {
		qty := sp.Quantity
		if qty <= 0 {
			qty = 1
		}
		sum += sp.Price * float64(qty)
	}
	return sum
}

type BookingPackage struct {
	ID        int64 `json:"id"`
	BookingID int64 `json:"booking_id" gorm:"not null;index"`
	PackageID int64 `json:"package_id" gorm:"not null"`
}

type BookingSubPackage struct {
	ID           int64   `json:"id"`
	BookingID    int64   `json:"booking_id" gorm:"not null;index"`
	PackageID    int64   `json:"package_id" gorm:"not null"`
	SubPackageID int64   `json:"sub_package_id" gorm:"not null"`
	Price        float64 `json:"price" gorm:"not null"`
	Quantity     int     `json:"quantity" gorm:"not null;default:1"`
}

type BookingPreference struct {
	ID         int64  `json:"id"`
	BookingID  int64  `json:"booking_id" gorm:"not null;index"`
	Preference string `json:"preference" gorm:"not null"`
}
