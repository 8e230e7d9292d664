package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tdea-viajes/travelbooking/internal/domain"
	"github.com/tdea-viajes/travelbooking/internal/kafka"
	"github.com/tdea-viajes/travelbooking/internal/logging"
	"github.com/tdea-viajes/travelbooking/internal/repository"
)

type PaymentUseCase interface {
	Process(ctx context.Context, input ProcessPaymentInput) (*domain.Payment, error)
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	List(ctx context.Context) ([]domain.Payment, error)
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Payment, error)
	Summary(ctx context.Context, bookingID int64) (*domain.PaymentSummary, error)
	Filter(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error)
	Cancel(ctx context.Context, paymentID int64) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type ProcessPaymentInput struct {
	BookingID     int64
	Amount        decimal.Decimal
	PaymentMethod domain.PaymentMethod
}

type PaymentService struct {
	payments     repository.PaymentRepository
	bookings     repository.BookingRepository
	producer     Producer
	bookingTopic string
}

func NewPaymentService(payments repository.PaymentRepository, bookings repository.BookingRepository, producer Producer, bookingTopic string) *PaymentService {
	return &PaymentService{payments: payments, bookings: bookings, producer: producer, bookingTopic: bookingTopic}
}

func (s *PaymentService) Process(ctx context.Context, input ProcessPaymentInput) (*domain.Payment, error) {
	booking, err := s.bookings.GetByID(ctx, input.BookingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("booking not found with id %d", input.BookingID)
		}
		return nil, err
	}

	if !booking.Status.Payable() {
		return nil, fmt.Errorf("cannot process payment for booking with status: %s", booking.Status)
	}
	if !input.PaymentMethod.Valid() {
		return nil, fmt.Errorf("invalid payment method: %s", input.PaymentMethod)
	}
	if !input.Amount.IsPositive() {
		return nil, errors.New("payment amount must be positive")
	}

	total := booking.Travel.Price
	paid, err := s.payments.TotalPaidByBooking(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}

	newTotal := paid.Add(input.Amount)
	if newTotal.GreaterThan(total) {
		return nil, fmt.Errorf("payment amount exceeds remaining balance. Remaining: %s, Attempted: %s",
			total.Sub(paid), input.Amount)
	}

	payment := &domain.Payment{
		Amount:        input.Amount,
		PaymentDate:   time.Now(),
		PaymentMethod: input.PaymentMethod,
		BookingID:     booking.ID,
		UserID:        booking.User.ID,
		UserEmail:     booking.User.Email,
		Destination:   booking.Travel.Destination,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	// Fully paid bookings move to PAID.
	if newTotal.Equal(total) {
		if err := s.flipStatus(ctx, booking.ID, domain.BookingStatusPaid); err != nil {
			return nil, err
		}
	}
	return payment, nil
}

func (s *PaymentService) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	return s.payments.GetByID(ctx, id)
}

func (s *PaymentService) List(ctx context.Context) ([]domain.Payment, error) {
	return s.payments.List(ctx)
}

func (s *PaymentService) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	if _, err := s.bookings.GetByID(ctx, bookingID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("booking not found with id %d", bookingID)
		}
		return nil, err
	}
	return s.payments.ListByBooking(ctx, bookingID)
}

func (s *PaymentService) ListByUser(ctx context.Context, userID int64) ([]domain.Payment, error) {
	return s.payments.ListByUser(ctx, userID)
}

func (s *PaymentService) Summary(ctx context.Context, bookingID int64) (*domain.PaymentSummary, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("booking not found with id %d", bookingID)
		}
		return nil, err
	}

	payments, err := s.payments.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	paid, err := s.payments.TotalPaidByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	summary := domain.NewPaymentSummary(bookingID, booking.Travel.Price, paid, payments)
	return &summary, nil
}

func (s *PaymentService) Filter(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error) {
	return s.payments.Filter(ctx, filter)
}

// Cancel removes a payment made today, reverting the booking to CONFIRMED
// when it stops being fully paid.
func (s *PaymentService) Cancel(ctx context.Context, paymentID int64) error {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("payment not found with id %d", paymentID)
		}
		return err
	}

	now := time.Now()
	y1, m1, d1 := payment.PaymentDate.Date()
	y2, m2, d2 := now.Date()
	if y1 != y2 || m1 != m2 || d1 != d2 {
		return errors.New("can only cancel payments made today")
	}

	booking, err := s.bookings.GetByID(ctx, payment.BookingID)
	if err != nil {
		return err
	}

	total := booking.Travel.Price
	currentPaid, err := s.payments.TotalPaidByBooking(ctx, payment.BookingID)
	if err != nil {
		return err
	}
	newPaid := currentPaid.Sub(payment.Amount)

	if currentPaid.Equal(total) && newPaid.LessThan(total) {
		if err := s.flipStatus(ctx, booking.ID, domain.BookingStatusConfirmed); err != nil {
			return err
		}
	}

	return s.payments.Delete(ctx, paymentID)
}

func (s *PaymentService) flipStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) error {
	updated, err := s.bookings.UpdateStatus(ctx, bookingID, status)
	if err != nil {
		return err
	}
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:        "booking_status_changed",
		BookingID:   updated.ID,
		Reference:   updated.Reference,
		UserEmail:   updated.User.Email,
		Destination: updated.Travel.Destination,
		Status:      string(updated.Status),
		OccurredAt:  time.Now(),
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, updated.Reference, event); err != nil {
		logging.L().Warn("publish payment status event failed",
			zap.String("reference", updated.Reference), zap.Error(err))
	}
	return nil
}

var _ PaymentUseCase = (*PaymentService)(nil)
