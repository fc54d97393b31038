package auth

import (
	"context"

	"servicemarket/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	MarkVerified(ctx context.Context, userID int64) error
}

// CodeStore issues and redeems short-lived verification codes.
type CodeStore interface {
	Issue(ctx context.Context, key string) (string, error)
	Redeem(ctx context.Context, key, code string) error
}

type tokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
}
