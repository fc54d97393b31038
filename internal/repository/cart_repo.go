package repository

import (
	"context"

	"gorm.io/gorm"

	"servicemarket/internal/domain"
)

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// CreateWithItems inserts the cart and all of its children in one
// transaction. Any failure rolls the whole selection back.
func (r *CartRepository) CreateWithItems(ctx context.Context, cart *domain.Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		packages := cart.Packages
		subPackages := cart.SubPackages
		preferences := cart.Preferences
		cart.Packages, cart.SubPackages, cart.Preferences = nil, nil, nil

		if err := tx.Create(cart).Error; err != nil {
			return err
		}

		for i := range packages {
			packages[i].CartID = cart.ID
		}
		if len(packages) > 0 {
			if err := tx.Create(&packages).Error; err != nil {
				return err
			}
		}

		for i := range subPackages {
			subPackages[i].CartID = cart.ID
		}
		if len(subPackages) > 0 {
			if err := tx.Create(&subPackages).Error; err != nil {
				return err
			}
		}

		for i := range preferences {
			preferences[i].CartID = cart.ID
		}
		if len(preferences) > 0 {
			if err := tx.Create(&preferences).Error; err != nil {
				return err
			}
		}

		cart.Packages = packages
		cart.SubPackages = subPackages
		cart.Preferences = preferences
		return nil
	})
}

// GetLatestByUser returns the user's most recent active cart with all
// children loaded, or gorm.ErrRecordNotFound.
func (r *CartRepository) GetLatestByUser(ctx context.Context, userID int64) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.db.WithContext(ctx).
		Preload("Packages").
		Preload("SubPackages").
		Preload("Preferences").
		Where("user_id = ? AND status = ?", userID, domain.CartActive).
		Order("created_at DESC").
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// DeleteForUser removes every cart row for the user (explicit abandonment).
func (r *CartRepository) DeleteForUser(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteCartsForUser(tx, userID)
	})
}

// deleteCartsForUser removes cart rows children first, inside the caller's
// transaction. Shared with the checkout conversion.
func deleteCartsForUser(tx *gorm.DB, userID int64) error {
	var cartIDs []int64
	if err := tx.Model(&domain.Cart{}).Where("user_id = ?", userID).Pluck("id", &cartIDs).Error; err != nil {
		return err
	}
	if len(cartIDs) == 0 {
		return nil
	}

	if err := tx.Where("cart_id IN ?", cartIDs).Delete(&domain.CartSubPackage{}).Error; err != nil {
		return err
	}
	if err := tx.Where("cart_id IN ?", cartIDs).Delete(&domain.CartPackage{}).Error; err != nil {
		return err
	}
	if err := tx.Where("cart_id IN ?", cartIDs).Delete(&domain.CartPreference{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", cartIDs).Delete(&domain.Cart{}).Error
}
