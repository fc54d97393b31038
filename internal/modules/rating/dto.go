package rating

type CreateRatingRequest struct {
	VendorID  int64  `json:"vendor_id" binding:"required"`
	BookingID *int64 `json:"booking_id,omitempty"`
	PackageID *int64 `json:"package_id,omitempty"`
	Stars     int    `json:"stars" binding:"required"`
	Comment   string `json:"comment"`
}
