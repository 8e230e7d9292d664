package bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tdea-viajes/travelbooking/internal/domain"
	"github.com/tdea-viajes/travelbooking/internal/kafka"
	"github.com/tdea-viajes/travelbooking/internal/logging"
	"github.com/tdea-viajes/travelbooking/internal/repository"
)

type BookingUseCase interface {
	Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
	Filter(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error)
	MarkNoShows(ctx context.Context) ([]domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateBookingInput struct {
	UserID   int64
	TravelID int64
	Status   domain.BookingStatus
}

type BookingService struct {
	bookings           repository.BookingRepository
	users              repository.UserRepository
	travels            repository.TravelRepository
	producer           Producer
	bookingTopic       string
	notificationsTopic string
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	users repository.UserRepository,
	travels repository.TravelRepository,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		users:        users,
		travels:      travels,
		producer:     producer,
		bookingTopic: bookingTopic,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if !input.Status.Valid() {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidStatus, input.Status)
	}

	user, err := s.users.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found with id %d: %w", input.UserID, err)
	}
	travel, err := s.travels.GetByID(ctx, input.TravelID)
	if err != nil {
		return nil, fmt.Errorf("travel not found with id %d: %w", input.TravelID, err)
	}

	booking := &domain.Booking{
		Reference: uuid.NewString(),
		Status:    input.Status,
		User:      user,
		Travel:    travel,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	created, err := s.bookings.GetByID(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, "booking_created", created)
	return created, nil
}

func (s *BookingService) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *BookingService) List(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.List(ctx)
}

func (s *BookingService) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

func (s *BookingService) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidStatus, status)
	}

	updated, err := s.bookings.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, "booking_status_changed", updated)
	return updated, nil
}

func (s *BookingService) Delete(ctx context.Context, id int64) error {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.bookings.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, "booking_deleted", booking)
	return nil
}

func (s *BookingService) Filter(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidStatus, filter.Status)
	}
	return s.bookings.Filter(ctx, filter)
}

// MarkNoShows flips bookings still payable after their travel departed to
// NO_SHOW and reports the affected bookings.
func (s *BookingService) MarkNoShows(ctx context.Context) ([]domain.Booking, error) {
	ids, err := s.bookings.MarkNoShowsBefore(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	marked := make([]domain.Booking, 0, len(ids))
	for _, id := range ids {
		booking, err := s.bookings.GetByID(ctx, id)
		if err != nil {
			return marked, err
		}
		marked = append(marked, *booking)
		s.publish(ctx, "booking_no_show", booking)
	}
	return marked, nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:        eventType,
		BookingID:   booking.ID,
		Reference:   booking.Reference,
		UserEmail:   booking.User.Email,
		Destination: booking.Travel.Destination,
		Status:      string(booking.Status),
		OccurredAt:  time.Now(),
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.Reference, event); err != nil {
		logging.L().Warn("publish booking event failed",
			zap.String("type", eventType), zap.String("reference", booking.Reference), zap.Error(err))
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.Reference, event); err != nil {
			logging.L().Warn("publish notification event failed",
				zap.String("type", eventType), zap.String("reference", booking.Reference), zap.Error(err))
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
