package cart

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"servicemarket/internal/domain"
)

type Service struct {
	carts CartRepository
}

func NewService(carts CartRepository) *Service {
	return &Service{carts: carts}
}

// AddToCart validates the selection and inserts the cart with all of its
// line items atomically. Replaces nothing: a user may hold one active cart,
// and GetLatestByUser always resolves to the newest one.
func (s *Service) AddToCart(ctx context.Context, userID int64, req AddToCartRequest) (*domain.Cart, error) {
	if userID <= 0 {
		return nil, ErrValidation
	}
	if req.VendorID <= 0 || req.CategoryID <= 0 || req.ServiceID <= 0 || req.ServiceTypeID <= 0 {
		return nil, ErrValidation
	}
	if len(req.Packages) == 0 {
		return nil, ErrValidation
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrValidation
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		return nil, ErrValidation
	}

	c := &domain.Cart{
		UserID:        userID,
		VendorID:      req.VendorID,
		CategoryID:    req.CategoryID,
		ServiceID:     req.ServiceID,
		ServiceTypeID: req.ServiceTypeID,
		ScheduledDate: date,
		ScheduledTime: req.Time,
		Notes:         req.Notes,
		MediaURL:      req.MediaURL,
		Status:        domain.CartActive,
	}

	for _, p := range req.Packages {
		if p.PackageID <= 0 {
			return nil, ErrValidation
		}
		c.Packages = append(c.Packages, domain.CartPackage{PackageID: p.PackageID})

		for _, sp := range p.SubPackages {
			if sp.SubPackageID <= 0 || sp.Price == nil || *sp.Price < 0 {
				return nil, ErrValidation
			}
			qty := 1
			if sp.Quantity != nil {
				if *sp.Quantity <= 0 {
					return nil, ErrValidation
				}
				qty = *sp.Quantity
			}
			c.SubPackages = append(c.SubPackages, domain.CartSubPackage{
				PackageID:    p.PackageID,
				SubPackageID: sp.SubPackageID,
				Price:        *sp.Price,
				Quantity:     qty,
			})
		}
	}

	for _, pref := range req.Preferences {
		if pref == "" {
			continue
		}
		c.Preferences = append(c.Preferences, domain.CartPreference{Preference: pref})
	}

	if err := s.carts.CreateWithItems(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetCart returns the user's current cart, or ErrNotFound when there is none.
func (s *Service) GetCart(ctx context.Context, userID int64) (*domain.Cart, error) {
	c, err := s.carts.GetLatestByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// Abandon drops the user's cart and all its children.
func (s *Service) Abandon(ctx context.Context, userID int64) error {
	return s.carts.DeleteForUser(ctx, userID)
}
