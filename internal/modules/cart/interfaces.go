package cart

import (
	"context"

	"servicemarket/internal/domain"
)

// CartRepository defines the persistence surface the cart service needs.
type CartRepository interface {
	CreateWithItems(ctx context.Context, cart *domain.Cart) error
	GetLatestByUser(ctx context.Context, userID int64) (*domain.Cart, error)
	DeleteForUser(ctx context.Context, userID int64) error
}
