package payout

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"servicemarket/internal/domain"
	"servicemarket/internal/repository"
)

type MockPayoutRepository struct {
	mock.Mock
}

func (m *MockPayoutRepository) PendingBalance(ctx context.Context, vendorID int64) (float64, error) {
	args := m.Called(ctx, vendorID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockPayoutRepository) Apply(ctx context.Context, vendorID int64, amount float64) (*domain.PayoutRequest, error) {
	args := m.Called(ctx, vendorID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayoutRequest), args.Error(1)
}

func (m *MockPayoutRepository) Decide(ctx context.Context, adminID int64, ids []uuid.UUID, status domain.PayoutStatus, note string) ([]domain.PayoutRequest, error) {
	args := m.Called(ctx, adminID, ids, status, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PayoutRequest), args.Error(1)
}

func (m *MockPayoutRepository) ListByVendor(ctx context.Context, vendorID int64, status domain.PayoutStatus, from, to *time.Time, limit, offset int) ([]domain.PayoutRequest, error) {
	args := m.Called(ctx, vendorID, status, from, to, limit, offset)
	return args.Get(0).([]domain.PayoutRequest), args.Error(1)
}

func (m *MockPayoutRepository) ListByStatus(ctx context.Context, status domain.PayoutStatus, limit, offset int) ([]domain.PayoutRequest, error) {
	args := m.Called(ctx, status, limit, offset)
	return args.Get(0).([]domain.PayoutRequest), args.Error(1)
}

func (m *MockPayoutRepository) TotalPaid(ctx context.Context, vendorID int64) (float64, error) {
	args := m.Called(ctx, vendorID)
	return args.Get(0).(float64), args.Error(1)
}

type MockBookingReader struct {
	mock.Mock
}

func (m *MockBookingReader) ListByVendorFiltered(ctx context.Context, vendorID int64, status domain.BookingStatus, from, to *time.Time, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, vendorID, status, from, to, limit, offset)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func TestApply_RejectsNonPositiveAmount(t *testing.T) {
	repo := new(MockPayoutRepository)
	svc := NewService(repo, nil, nil, nil)

	_, err := svc.Apply(context.Background(), 7, 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Apply(context.Background(), 7, -5)
	assert.ErrorIs(t, err, ErrValidation)
	repo.AssertNotCalled(t, "Apply")
}

func TestApply_MapsExceedsBalance(t *testing.T) {
	repo := new(MockPayoutRepository)
	repo.On("Apply", mock.Anything, int64(7), 100.0).Return(nil, repository.ErrPayoutExceedsBalance)

	svc := NewService(repo, nil, nil, nil)
	_, err := svc.Apply(context.Background(), 7, 100)
	assert.ErrorIs(t, err, ErrExceedsBalance)
}

func TestDecide_RequiresNote(t *testing.T) {
	repo := new(MockPayoutRepository)
	svc := NewService(repo, nil, nil, nil)
	ids := []uuid.UUID{uuid.New()}

	_, err := svc.Decide(context.Background(), 1, ids, "approved", "")
	assert.ErrorIs(t, err, ErrNoteRequired)

	_, err = svc.Decide(context.Background(), 1, ids, "approved", "   \t")
	assert.ErrorIs(t, err, ErrNoteRequired)
	repo.AssertNotCalled(t, "Decide")
}

func TestDecide_RejectsUnknownStatus(t *testing.T) {
	repo := new(MockPayoutRepository)
	svc := NewService(repo, nil, nil, nil)

	_, err := svc.Decide(context.Background(), 1, []uuid.UUID{uuid.New()}, "pending", "note")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Decide(context.Background(), 1, nil, "approved", "note")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDecide_MapsRepositoryErrors(t *testing.T) {
	repo := new(MockPayoutRepository)
	ids := []uuid.UUID{uuid.New()}
	repo.On("Decide", mock.Anything, int64(1), ids, domain.PayoutApproved, "note").
		Return(nil, repository.ErrPayoutNotFound).Once()
	repo.On("Decide", mock.Anything, int64(1), ids, domain.PayoutApproved, "note").
		Return(nil, repository.ErrPayoutInvalidTransition).Once()

	svc := NewService(repo, nil, nil, nil)

	_, err := svc.Decide(context.Background(), 1, ids, "approved", "note")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Decide(context.Background(), 1, ids, "approved", "note")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestHistory_AssemblesSummary(t *testing.T) {
	repo := new(MockPayoutRepository)
	bookings := new(MockBookingReader)

	repo.On("PendingBalance", mock.Anything, int64(7)).Return(35.0, nil)
	repo.On("TotalPaid", mock.Anything, int64(7)).Return(120.0, nil)
	repo.On("ListByVendor", mock.Anything, int64(7), domain.PayoutStatus(""), (*time.Time)(nil), (*time.Time)(nil), 20, 0).
		Return([]domain.PayoutRequest{{VendorID: 7, Amount: 120, Status: domain.PayoutPaid}}, nil)
	bookings.On("ListByVendorFiltered", mock.Anything, int64(7), domain.BookingCompleted, (*time.Time)(nil), (*time.Time)(nil), 20, 0).
		Return([]domain.Booking{{VendorID: 7, Status: domain.BookingCompleted}}, nil)

	svc := NewService(repo, bookings, nil, nil)
	hist, err := svc.History(context.Background(), 7, "", nil, nil, 20, 0)

	assert.NoError(t, err)
	assert.Equal(t, 35.0, hist.PendingBalance)
	assert.Equal(t, 120.0, hist.TotalPaid)
	assert.Len(t, hist.Payouts, 1)
	assert.Len(t, hist.Bookings, 1)
}
