package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"servicemarket/internal/domain"
)

// ErrCartNotSchedulable is returned when a cart has no scheduled date/time
// and therefore cannot become a booking.
var ErrCartNotSchedulable = errors.New("cart has no scheduled date or time")

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// ConvertCart materializes the user's active cart into an immutable booking:
// booking row, package rows, sub-package rows (prices copied verbatim),
// preference rows, then the cart is deleted. All of it commits together or
// not at all; the cart is re-read inside the transaction so a concurrent
// checkout cannot duplicate the booking.
func (r *BookingRepository) ConvertCart(ctx context.Context, userID int64) (*domain.Booking, error) {
	var booking *domain.Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart domain.Cart
		if err := tx.
			Preload("Packages").
			Preload("SubPackages").
			Preload("Preferences").
			Where("user_id = ? AND status = ?", userID, domain.CartActive).
			Order("created_at DESC").
			First(&cart).Error; err != nil {
			return err
		}

		if cart.ScheduledDate.IsZero() || cart.ScheduledTime == "" {
			return ErrCartNotSchedulable
		}

		b := domain.Booking{
			UserID:        cart.UserID,
			VendorID:      cart.VendorID,
			CategoryID:    cart.CategoryID,
			ServiceID:     cart.ServiceID,
			ServiceTypeID: cart.ServiceTypeID,
			ScheduledDate: cart.ScheduledDate,
			ScheduledTime: cart.ScheduledTime,
			Notes:         cart.Notes,
			MediaURL:      cart.MediaURL,
			Status:        domain.BookingPending,
		}
		if err := tx.Create(&b).Error; err != nil {
			return err
		}

		for _, p := range cart.Packages {
			row := domain.BookingPackage{BookingID: b.ID, PackageID: p.PackageID}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			b.Packages = append(b.Packages, row)
		}
		for _, sp := range cart.SubPackages {
			row := domain.BookingSubPackage{
				BookingID:    b.ID,
				PackageID:    sp.PackageID,
				SubPackageID: sp.SubPackageID,
				Price:        sp.Price,
				Quantity:     sp.Quantity,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			b.SubPackages = append(b.SubPackages, row)
		}
		for _, pref := range cart.Preferences {
			row := domain.BookingPreference{BookingID: b.ID, Preference: pref.Preference}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			b.Preferences = append(b.Preferences, row)
		}

		if err := deleteCartsForUser(tx, userID); err != nil {
			return err
		}

		booking = &b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Packages").
		Preload("SubPackages").
		Preload("Preferences").
		First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Preload("SubPackages").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, err
}

func (r *BookingRepository) ListByVendor(ctx context.Context, vendorID int64, limit, offset int) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Preload("SubPackages").
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, err
}

// ListByVendorFiltered backs the vendor payment-history view.
func (r *BookingRepository) ListByVendorFiltered(ctx context.Context, vendorID int64, status domain.BookingStatus, from, to *time.Time, limit, offset int) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).
		Preload("SubPackages").
		Where("vendor_id = ?", vendorID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("created_at <= ?", *to)
	}

	var out []domain.Booking
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&out).Error
	return out, err
}

// UpdateStatus writes the new status and, when given, the actor's note.
// Transition validity is the service's job.
func (r *BookingRepository) UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus, vendorNote, adminNote string) error {
	updates := map[string]any{"status": status}
	if vendorNote != "" {
		updates["vendor_note"] = vendorNote
	}
	if adminNote != "" {
		updates["admin_note"] = adminNote
	}
	return r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ?", bookingID).
		Updates(updates).Error
}

// HasCompletedBooking reports whether the user has a completed booking with
// this vendor, optionally pinned to one booking id. Gates rating creation.
func (r *BookingRepository) HasCompletedBooking(ctx context.Context, userID, vendorID int64, bookingID *int64) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("user_id = ? AND vendor_id = ? AND status = ?", userID, vendorID, domain.BookingCompleted)
	if bookingID != nil {
		q = q.Where("id = ?", *bookingID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
