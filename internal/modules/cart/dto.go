package cart

type AddToCartRequest struct {
	VendorID      int64              `json:"vendor_id" binding:"required"`
	CategoryID    int64              `json:"category_id" binding:"required"`
	ServiceID     int64              `json:"service_id" binding:"required"`
	ServiceTypeID int64              `json:"service_type_id" binding:"required"`
	Date          string             `json:"date" binding:"required"`
	Time          string             `json:"time" binding:"required"`
	Notes         string             `json:"notes"`
	MediaURL      string             `json:"media_url"`
	Packages      []PackageSelection `json:"packages" binding:"required"`
	Preferences   []string           `json:"preferences"`
}

type PackageSelection struct {
	PackageID   int64                 `json:"package_id"`
	SubPackages []SubPackageSelection `json:"sub_packages"`
}

// SubPackageSelection uses a pointer price so "price": 0 and a missing price
// can be told apart; a missing price is a validation error.
type SubPackageSelection struct {
	SubPackageID int64    `json:"sub_package_id"`
	Price        *float64 `json:"price"`
	Quantity     *int     `json:"quantity,omitempty"`
}
