package domain

import "time"

type CartStatus string

const (
	CartActive    CartStatus = "active"
	CartAbandoned CartStatus = "abandoned"
)

// Cart is a user's in-progress, pre-payment service selection. One active
// cart per user; deleted wholesale on checkout.
type Cart struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"user_id" gorm:"not null;index" validate:"required"`
	VendorID      int64      `json:"vendor_id" gorm:"not null;index" validate:"required"`
	CategoryID    int64      `json:"category_id" gorm:"not null" validate:"required"`
	ServiceID     int64      `json:"service_id" gorm:"not null" validate:"required"`
	ServiceTypeID int64      `json:"service_type_id" gorm:"not null" validate:"required"`
	ScheduledDate time.Time  `json:"scheduled_date"`
	ScheduledTime string     `json:"scheduled_time" gorm:"type:varchar(8)"`
	Notes         string     `json:"notes,omitempty" gorm:"type:text"`
	MediaURL      string     `json:"media_url,omitempty"`
	Status        CartStatus `json:"status" gorm:"type:varchar(16);not null;default:'active'"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime"`

	Packages    []CartPackage    `json:"packages,omitempty" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	SubPackages []CartSubPackage `json:"sub_packages,omitempty" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	Preferences []CartPreference `json:"preferences,omitempty" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

type CartPackage struct {
	ID        int64 `json:"id"`
	CartID    int64 `json:"cart_id" gorm:"not null;index"`
	PackageID int64 `json:"package_id" gorm:"not null"`
}

// CartSubPackage carries the unit price agreed at selection time. The price
// is copied, never looked up again.
type CartSubPackage struct {
	ID           int64   `json:"id"`
	CartID       int64   `json:"cart_id" gorm:"not null;index"`
	PackageID    int64   `json:"package_id" gorm:"not null"`
	SubPackageID int64   `json:"sub_package_id" gorm:"not null"`
	Price        float64 `json:"price" gorm:"not null"`
	Quantity     int     `json:"quantity" gorm:"not null;default:1"`
}

type CartPreference struct {
	ID         int64  `json:"id"`
	CartID     int64  `json:"cart_id" gorm:"not null;index"`
	Preference string `json:"preference" gorm:"not null"`
}
