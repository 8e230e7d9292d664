package payments

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tdea-viajes/travelbooking/internal/domain"
)

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	payment.ID = 1
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) List(ctx context.Context) ([]domain.Payment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Payment, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) TotalPaidByBooking(ctx context.Context, bookingID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPaymentRepository) Filter(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Payment), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingRepository) Filter(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) MarkNoShowsBefore(ctx context.Context, deadline time.Time) ([]int64, error) {
	args := m.Called(ctx, deadline)
	return args.Get(0).([]int64), args.Error(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func payableBooking() *domain.Booking {
	return &domain.Booking{
		ID:        1,
		Reference: "ref-1",
		Status:    domain.BookingStatusConfirmed,
		User:      &domain.User{ID: 3, Email: "carla@example.com"},
		Travel:    &domain.Travel{ID: 7, Destination: "Cartagena", Price: decimal.NewFromInt(500000)},
	}
}

func TestPaymentService_Process_partial(t *testing.T) {
	paymentRepo := &MockPaymentRepository{}
	bookingRepo := &MockBookingRepository{}

	service := NewPaymentService(paymentRepo, bookingRepo, &MockProducer{}, "bookings")

	ctx := context.Background()
	bookingRepo.On("GetByID", ctx, int64(1)).Return(payableBooking(), nil)
	paymentRepo.On("TotalPaidByBooking", ctx, int64(1)).Return(decimal.Zero, nil)
	paymentRepo.On("Create", ctx, mock.AnythingOfType("*domain.Payment")).Return(nil)

	payment, err := service.Process(ctx, ProcessPaymentInput{
		BookingID:     1,
		Amount:        decimal.NewFromInt(200000),
		PaymentMethod: domain.PaymentMethodCreditCard,
	})

	assert.NoError(t, err)
	assert.True(t, payment.Amount.Equal(decimal.NewFromInt(200000)))
	assert.Equal(t, "carla@example.com", payment.UserEmail)
	// A partial payment must not touch the booking status.
	bookingRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentService_Process_fullPaymentFlipsToPaid(t *testing.T) {
	paymentRepo := &MockPaymentRepository{}
	bookingRepo := &MockBookingRepository{}
	producer := &MockProducer{}

	service := NewPaymentService(paymentRepo, bookingRepo, producer, "bookings")

	ctx := context.Background()
	booking := payableBooking()
	paid := payableBooking()
	paid.Status = domain.BookingStatusPaid

	bookingRepo.On("GetByID", ctx, int64(1)).Return(booking, nil)
	paymentRepo.On("TotalPaidByBooking", ctx, int64(1)).Return(decimal.NewFromInt(200000), nil)
	paymentRepo.On("Create", ctx, mock.AnythingOfType("*domain.Payment")).Return(nil)
	bookingRepo.On("UpdateStatus", ctx, int64(1), domain.BookingStatusPaid).Return(paid, nil)
	producer.On("Publish", ctx, "bookings", "ref-1", mock.Anything).Return(nil)

	_, err := service.Process(ctx, ProcessPaymentInput{
		BookingID:     1,
		Amount:        decimal.NewFromInt(300000),
		PaymentMethod: domain.PaymentMethodBankTransfer,
	})

	assert.NoError(t, err)
	bookingRepo.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestPaymentService_Process_overpayRejected(t *testing.T) {
	paymentRepo := &MockPaymentRepository{}
	bookingRepo := &MockBookingRepository{}

	service := NewPaymentService(paymentRepo, bookingRepo, &MockProducer{}, "bookings")

	ctx := context.Background()
	bookingRepo.On("GetByID", ctx, int64(1)).Return(payableBooking(), nil)
	paymentRepo.On("TotalPaidByBooking", ctx, int64(1)).Return(decimal.NewFromInt(400000), nil)

	_, err := service.Process(ctx, ProcessPaymentInput{
		BookingID:     1,
		Amount:        decimal.NewFromInt(200000),
		PaymentMethod: domain.PaymentMethodCreditCard,
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds remaining balance")
	assert.Contains(t, err.Error(), "Remaining: 100000")
}

func TestPaymentService_Process_terminalBookingRejected(t *testing.T) {
	bookingRepo := &MockBookingRepository{}

	service := NewPaymentService(&MockPaymentRepository{}, bookingRepo, &MockProducer{}, "bookings")

	ctx := context.Background()
	booking := payableBooking()
	booking.Status = domain.BookingStatusCancelled
	bookingRepo.On("GetByID", ctx, int64(1)).Return(booking, nil)

	_, err := service.Process(ctx, ProcessPaymentInput{
		BookingID:     1,
		Amount:        decimal.NewFromInt(100000),
		PaymentMethod: domain.PaymentMethodCreditCard,
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot process payment for booking with status: CANCELLED")
}

func TestPaymentService_Process_bookingMissing(t *testing.T) {
	bookingRepo := &MockBookingRepository{}

	service := NewPaymentService(&MockPaymentRepository{}, bookingRepo, &MockProducer{}, "bookings")

	ctx := context.Background()
	bookingRepo.On("GetByID", ctx, int64(42)).Return(nil, domain.ErrNotFound)

	_, err := service.Process(ctx, ProcessPaymentInput{
		BookingID:     42,
		Amount:        decimal.NewFromInt(100000),
		PaymentMethod: domain.PaymentMethodCreditCard,
	})

	assert.EqualError(t, err, "booking not found with id 42")
}

func TestPaymentService_Summary(t *testing.T) {
	paymentRepo := &MockPaymentRepository{}
	bookingRepo := &MockBookingRepository{}

	service := NewPaymentService(paymentRepo, bookingRepo, &MockProducer{}, "bookings")

	ctx := context.Background()
	payments := []domain.Payment{{ID: 1, Amount: decimal.NewFromInt(200000), BookingID: 1}}

	bookingRepo.On("GetByID", ctx, int64(1)).Return(payableBooking(), nil)
	paymentRepo.On("ListByBooking", ctx, int64(1)).Return(payments, nil)
	paymentRepo.On("TotalPaidByBooking", ctx, int64(1)).Return(decimal.NewFromInt(200000), nil)

	summary, err := service.Summary(ctx, 1)

	assert.NoError(t, err)
	assert.True(t, summary.TotalAmount.Equal(decimal.NewFromInt(500000)))
	assert.True(t, summary.PaidAmount.Equal(decimal.NewFromInt(200000)))
	assert.True(t, summary.RemainingAmount.Equal(decimal.NewFromInt(300000)))
	assert.Equal(t, domain.PaymentStatusPartial, summary.PaymentStatus)
}

func TestPaymentService_Cancel_sameDay(t *testing.T) {
	paymentRepo := &MockPaymentRepository{}
	bookingRepo := &MockBookingRepository{}
	producer := &MockProducer{}

	service := NewPaymentService(paymentRepo, bookingRepo, producer, "bookings")

	ctx := context.Background()
	payment := &domain.Payment{
		ID:          9,
		Amount:      decimal.NewFromInt(500000),
		PaymentDate: time.Now(),
		BookingID:   1,
	}
	booking := payableBooking()
	booking.Status = domain.BookingStatusPaid
	reverted := payableBooking()

	paymentRepo.On("GetByID", ctx, int64(9)).Return(payment, nil)
	bookingRepo.On("GetByID", ctx, int64(1)).Return(booking, nil)
	paymentRepo.On("TotalPaidByBooking", ctx, int64(1)).Return(decimal.NewFromInt(500000), nil)
	bookingRepo.On("UpdateStatus", ctx, int64(1), domain.BookingStatusConfirmed).Return(reverted, nil)
	producer.On("Publish", ctx, "bookings", "ref-1", mock.Anything).Return(nil)
	paymentRepo.On("Delete", ctx, int64(9)).Return(nil)

	err := service.Cancel(ctx, 9)

	assert.NoError(t, err)
	paymentRepo.AssertExpectations(t)
	bookingRepo.AssertExpectations(t)
}

func TestPaymentService_Cancel_oldPaymentRejected(t *testing.T) {
	paymentRepo := &MockPaymentRepository{}

	service := NewPaymentService(paymentRepo, &MockBookingRepository{}, &MockProducer{}, "bookings")

	ctx := context.Background()
	payment := &domain.Payment{
		ID:          9,
		Amount:      decimal.NewFromInt(100000),
		PaymentDate: time.Now().AddDate(0, 0, -2),
		BookingID:   1,
	}
	paymentRepo.On("GetByID", ctx, int64(9)).Return(payment, nil)

	err := service.Cancel(ctx, 9)

	assert.EqualError(t, err, "can only cancel payments made today")
	paymentRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
