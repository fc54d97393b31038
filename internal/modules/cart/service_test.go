package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"servicemarket/internal/domain"
)

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) CreateWithItems(ctx context.Context, cart *domain.Cart) error {
	args := m.Called(ctx, cart)
	if cart != nil {
		cart.ID = 42
	}
	return args.Error(0)
}

func (m *MockCartRepository) GetLatestByUser(ctx context.Context, userID int64) (*domain.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *MockCartRepository) DeleteForUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func validRequest() AddToCartRequest {
	price := 25.0
	qty := 2
	return AddToCartRequest{
		VendorID:      7,
		CategoryID:    1,
		ServiceID:     2,
		ServiceTypeID: 3,
		Date:          "2026-09-15",
		Time:          "14:30",
		Packages: []PackageSelection{
			{
				PackageID: 10,
				SubPackages: []SubPackageSelection{
					{SubPackageID: 100, Price: &price, Quantity: &qty},
				},
			},
		},
		Preferences: []string{"outdoor"},
	}
}

func TestAddToCart_Success(t *testing.T) {
	repo := new(MockCartRepository)
	repo.On("CreateWithItems", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(repo)
	c, err := svc.AddToCart(context.Background(), 1, validRequest())

	assert.NoError(t, err)
	assert.Equal(t, int64(42), c.ID)
	assert.Equal(t, domain.CartActive, c.Status)
	assert.Len(t, c.Packages, 1)
	assert.Len(t, c.SubPackages, 1)
	assert.Equal(t, 25.0, c.SubPackages[0].Price)
	assert.Equal(t, 2, c.SubPackages[0].Quantity)
	assert.Len(t, c.Preferences, 1)
	repo.AssertExpectations(t)
}

func TestAddToCart_DefaultsQuantityToOne(t *testing.T) {
	repo := new(MockCartRepository)
	repo.On("CreateWithItems", mock.Anything, mock.Anything).Return(nil)

	req := validRequest()
	req.Packages[0].SubPackages[0].Quantity = nil

	svc := NewService(repo)
	c, err := svc.AddToCart(context.Background(), 1, req)

	assert.NoError(t, err)
	assert.Equal(t, 1, c.SubPackages[0].Quantity)
}

func TestAddToCart_RejectsMissingPrice(t *testing.T) {
	repo := new(MockCartRepository)

	req := validRequest()
	req.Packages[0].SubPackages[0].Price = nil

	svc := NewService(repo)
	_, err := svc.AddToCart(context.Background(), 1, req)

	assert.ErrorIs(t, err, ErrValidation)
	repo.AssertNotCalled(t, "CreateWithItems")
}

func TestAddToCart_RejectsZeroQuantity(t *testing.T) {
	repo := new(MockCartRepository)

	zero := 0
	req := validRequest()
	req.Packages[0].SubPackages[0].Quantity = &zero

	svc := NewService(repo)
	_, err := svc.AddToCart(context.Background(), 1, req)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestAddToCart_RejectsEmptyPackages(t *testing.T) {
	repo := new(MockCartRepository)

	req := validRequest()
	req.Packages = nil

	svc := NewService(repo)
	_, err := svc.AddToCart(context.Background(), 1, req)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestAddToCart_RejectsBadDate(t *testing.T) {
	repo := new(MockCartRepository)

	req := validRequest()
	req.Date = "15-09-2026"

	svc := NewService(repo)
	_, err := svc.AddToCart(context.Background(), 1, req)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetCart_MapsRecordNotFound(t *testing.T) {
	repo := new(MockCartRepository)
	repo.On("GetLatestByUser", mock.Anything, int64(1)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(repo)
	_, err := svc.GetCart(context.Background(), 1)

	assert.ErrorIs(t, err, ErrNotFound)
}
