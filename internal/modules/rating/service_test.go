package rating

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"servicemarket/internal/domain"
)

type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Create(ctx context.Context, rt *domain.Rating) error {
	args := m.Called(ctx, rt)
	if rt != nil {
		rt.ID = 5
	}
	return args.Error(0)
}

func (m *MockRatingRepository) GetByID(ctx context.Context, id int64) (*domain.Rating, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rating), args.Error(1)
}

func (m *MockRatingRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRatingRepository) ListByVendor(ctx context.Context, vendorID int64, limit, offset int) ([]domain.Rating, error) {
	args := m.Called(ctx, vendorID, limit, offset)
	return args.Get(0).([]domain.Rating), args.Error(1)
}

type MockBookingChecker struct {
	mock.Mock
}

func (m *MockBookingChecker) HasCompletedBooking(ctx context.Context, userID, vendorID int64, bookingID *int64) (bool, error) {
	args := m.Called(ctx, userID, vendorID, bookingID)
	return args.Bool(0), args.Error(1)
}

func TestCreate_RequiresCompletedBooking(t *testing.T) {
	repo := new(MockRatingRepository)
	checker := new(MockBookingChecker)
	checker.On("HasCompletedBooking", mock.Anything, int64(1), int64(7), (*int64)(nil)).Return(false, nil)

	pkgID := int64(11)
	svc := NewService(repo, checker, nil, nil)
	_, err := svc.Create(context.Background(), 1, CreateRatingRequest{VendorID: 7, PackageID: &pkgID, Stars: 4})

	assert.ErrorIs(t, err, ErrForbidden)
	repo.AssertNotCalled(t, "Create")
}

func TestCreate_RequiresBookingOrPackage(t *testing.T) {
	repo := new(MockRatingRepository)
	checker := new(MockBookingChecker)

	svc := NewService(repo, checker, nil, nil)
	_, err := svc.Create(context.Background(), 1, CreateRatingRequest{VendorID: 7, Stars: 4})

	assert.ErrorIs(t, err, ErrValidation)
	checker.AssertNotCalled(t, "HasCompletedBooking")
	repo.AssertNotCalled(t, "Create")
}

func TestCreate_Success(t *testing.T) {
	repo := new(MockRatingRepository)
	checker := new(MockBookingChecker)
	bookingID := int64(3)

	checker.On("HasCompletedBooking", mock.Anything, int64(1), int64(7), &bookingID).Return(true, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(rt *domain.Rating) bool {
		return rt.VendorID == 7 && rt.UserID == 1 && rt.Stars == 5
	})).Return(nil)

	svc := NewService(repo, checker, nil, nil)
	rt, err := svc.Create(context.Background(), 1, CreateRatingRequest{
		VendorID:  7,
		BookingID: &bookingID,
		Stars:     5,
		Comment:   "great work",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(5), rt.ID)
	repo.AssertExpectations(t)
}

func TestCreate_DuplicateMapsToConflict(t *testing.T) {
	repo := new(MockRatingRepository)
	checker := new(MockBookingChecker)

	checker.On("HasCompletedBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)

	pkgID := int64(11)
	svc := NewService(repo, checker, nil, nil)
	_, err := svc.Create(context.Background(), 1, CreateRatingRequest{VendorID: 7, PackageID: &pkgID, Stars: 3})

	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreate_RejectsOutOfRangeStars(t *testing.T) {
	pkgID := int64(11)
	svc := NewService(nil, nil, nil, nil)

	_, err := svc.Create(context.Background(), 1, CreateRatingRequest{VendorID: 7, PackageID: &pkgID, Stars: 0})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), 1, CreateRatingRequest{VendorID: 7, PackageID: &pkgID, Stars: 6})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDelete_MapsRecordNotFound(t *testing.T) {
	repo := new(MockRatingRepository)
	repo.On("Delete", mock.Anything, int64(99)).Return(gorm.ErrRecordNotFound)

	svc := NewService(repo, nil, nil, nil)
	err := svc.Delete(context.Background(), 99)

	assert.ErrorIs(t, err, ErrNotFound)
}
