package booking

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"servicemarket/internal/domain"
	"servicemarket/internal/repository"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) ConvertCart(ctx context.Context, userID int64) (*domain.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByVendor(ctx context.Context, vendorID int64, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, vendorID, limit, offset)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus, vendorNote, adminNote string) error {
	args := m.Called(ctx, bookingID, status, vendorNote, adminNote)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyBookingCreated(ctx context.Context, vendorID int64, b *domain.Booking) error {
	args := m.Called(ctx, vendorID, b)
	return args.Error(0)
}

func (m *MockNotifier) NotifyBookingStatus(ctx context.Context, userID, bookingID int64, status domain.BookingStatus, note string) error {
	args := m.Called(ctx, userID, bookingID, status, note)
	return args.Error(0)
}

func (m *MockNotifier) NotifyAdmins(ctx context.Context, event domain.NotificationType, title, message string, data map[string]any) error {
	args := m.Called(ctx, event, title, message, data)
	return args.Error(0)
}

func pendingBooking(vendorID int64) *domain.Booking {
	return &domain.Booking{
		ID:       1,
		UserID:   2,
		VendorID: vendorID,
		Status:   domain.BookingPending,
	}
}

func TestCheckout_MapsNoCart(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("ConvertCart", mock.Anything, int64(1)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(repo, nil, nil)
	_, err := svc.Checkout(context.Background(), 1)

	assert.ErrorIs(t, err, ErrNoCart)
}

func TestCheckout_MapsUnschedulableCart(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("ConvertCart", mock.Anything, int64(1)).Return(nil, repository.ErrCartNotSchedulable)

	svc := NewService(repo, nil, nil)
	_, err := svc.Checkout(context.Background(), 1)

	assert.ErrorIs(t, err, ErrCartNotSchedulable)
}

func TestCheckout_NotifiesVendorAndAdmins(t *testing.T) {
	repo := new(MockBookingRepository)
	notifs := new(MockNotifier)
	b := pendingBooking(7)

	repo.On("ConvertCart", mock.Anything, int64(2)).Return(b, nil)
	notifs.On("NotifyBookingCreated", mock.Anything, int64(7), b).Return(nil)
	notifs.On("NotifyAdmins", mock.Anything, domain.NotifBookingCreated, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := NewService(repo, notifs, nil)
	got, err := svc.Checkout(context.Background(), 2)

	assert.NoError(t, err)
	assert.Equal(t, b, got)
	notifs.AssertExpectations(t)
}

func TestCheckout_NotificationFailureIsLoggedNotReturned(t *testing.T) {
	repo := new(MockBookingRepository)
	notifs := new(MockNotifier)
	b := pendingBooking(7)

	repo.On("ConvertCart", mock.Anything, int64(2)).Return(b, nil)
	notifs.On("NotifyBookingCreated", mock.Anything, int64(7), b).Return(errors.New("push down"))
	notifs.On("NotifyAdmins", mock.Anything, domain.NotifBookingCreated, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("push down"))

	var logged []string
	svc := NewService(repo, notifs, func(format string, args ...interface{}) {
		logged = append(logged, fmt.Sprintf(format, args...))
	})
	got, err := svc.Checkout(context.Background(), 2)

	assert.NoError(t, err)
	assert.Equal(t, b, got)
	assert.Len(t, logged, 2)
	assert.Contains(t, logged[0], "notification failed")
}

func TestUpdateStatus_VendorOwnsBooking(t *testing.T) {
	repo := new(MockBookingRepository)
	notifs := new(MockNotifier)
	b := pendingBooking(7)

	repo.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	repo.On("UpdateStatus", mock.Anything, int64(1), domain.BookingConfirmed, "see you there", "").Return(nil)
	notifs.On("NotifyBookingStatus", mock.Anything, int64(2), int64(1), domain.BookingConfirmed, "see you there").Return(nil)

	svc := NewService(repo, notifs, nil)
	_, err := svc.UpdateStatus(context.Background(), 1, 7, "vendor", domain.BookingConfirmed, "see you there")

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateStatus_ForeignVendorForbidden(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("GetByID", mock.Anything, int64(1)).Return(pendingBooking(7), nil)

	svc := NewService(repo, nil, nil)
	_, err := svc.UpdateStatus(context.Background(), 1, 8, "vendor", domain.BookingConfirmed, "")

	assert.ErrorIs(t, err, ErrForbidden)
	repo.AssertNotCalled(t, "UpdateStatus")
}

func TestUpdateStatus_AdminOverrideUsesAdminNote(t *testing.T) {
	repo := new(MockBookingRepository)
	b := pendingBooking(7)

	repo.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	repo.On("UpdateStatus", mock.Anything, int64(1), domain.BookingCancelled, "", "policy violation").Return(nil)

	svc := NewService(repo, nil, nil)
	_, err := svc.UpdateStatus(context.Background(), 1, 99, "admin", domain.BookingCancelled, "policy violation")

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateStatus_IllegalTransition(t *testing.T) {
	repo := new(MockBookingRepository)
	b := pendingBooking(7)
	b.Status = domain.BookingCompleted

	repo.On("GetByID", mock.Anything, int64(1)).Return(b, nil)

	svc := NewService(repo, nil, nil)
	_, err := svc.UpdateStatus(context.Background(), 1, 7, "vendor", domain.BookingCancelled, "")

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	repo.AssertNotCalled(t, "UpdateStatus")
}

func TestUpdateStatus_PendingToCompletedRejected(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("GetByID", mock.Anything, int64(1)).Return(pendingBooking(7), nil)

	svc := NewService(repo, nil, nil)
	_, err := svc.UpdateStatus(context.Background(), 1, 7, "vendor", domain.BookingCompleted, "")

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}
