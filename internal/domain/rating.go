package domain

import "time"

// Rating is immutable once created except via explicit admin delete.
// Uniqueness: one per (booking, vendor) pair and one per (user, package) pair.
type Rating struct {
	ID        int64     `json:"id"`
	VendorID  int64     `json:"vendor_id" gorm:"not null;index;uniqueIndex:idx_rating_booking_vendor"`
	UserID    int64     `json:"user_id" gorm:"not null;uniqueIndex:idx_rating_user_package"`
	BookingID *int64    `json:"booking_id,omitempty" gorm:"uniqueIndex:idx_rating_booking_vendor"`
	PackageID *int64    `json:"package_id,omitempty" gorm:"uniqueIndex:idx_rating_user_package"`
	Stars     int       `json:"stars" gorm:"not null" validate:"required,gte=1,lte=5"`
	Comment   string    `json:"comment,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
