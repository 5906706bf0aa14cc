package booking

import (
	"context"
	"sync"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/idhash"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/observability"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/sirupsen/logrus"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) domain.BookingResult
}

// EventPublisher receives booking lifecycle events. kafka.BookingPublisher
// implements it.
type EventPublisher interface {
	PublishBooking(ctx context.Context, eventType string, booking domain.Booking) error
}

type CreateBookingInput struct {
	FlightID       string `json:"flight_id"`
	PassengerName  string `json:"passenger_name"`
	PassengerEmail string `json:"passenger_email"`
}

type BookingService struct {
	bookings repository.BookingRepository
	events   EventPublisher
	lock     sync.Locker
	now      func() time.Time
	log      logrus.FieldLogger
}

type BookingServiceOption func(*BookingService)

func WithEvents(events EventPublisher) BookingServiceOption {
	return func(s *BookingService) {
		s.events = events
	}
}

// WithLock shares the lock that serializes find-then-write sequences on the
// store with other services using the same repository.
func WithLock(lock sync.Locker) BookingServiceOption {
	return func(s *BookingService) {
		s.lock = lock
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(bookings repository.BookingRepository, log logrus.FieldLogger, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{
		bookings: bookings,
		lock:     &sync.Mutex{},
		now:      time.Now,
		log:      log.WithField("component", "booking_service"),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateBooking is idempotent per (passenger, flight): an existing booking is
// returned as is. Store failures are logged, never returned.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) domain.BookingResult {
	userID := idhash.UserID(input.PassengerName, input.PassengerEmail)
	log := s.log.WithFields(logrus.Fields{"user_id": userID, "flight_id": input.FlightID})

	booking, created := s.findOrInsert(ctx, userID, input, log)
	if created && s.events != nil {
		if err := s.events.PublishBooking(ctx, kafka.EventBookingCreated, booking); err != nil {
			log.WithError(err).Warn("failed to publish booking_created event")
		}
	}
	return domain.NewBookingResult(booking)
}

// findOrInsert holds the store lock only for the lookup and the insert.
// created reports a successful fresh insert.
func (s *BookingService) findOrInsert(ctx context.Context, userID string, input CreateBookingInput, log logrus.FieldLogger) (domain.Booking, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if existing, ok := s.bookings.Find(ctx, userID, input.FlightID); ok {
		log.WithField("status", existing.Status).Info("booking already exists")
		return *existing, false
	}

	booking := domain.Booking{
		UserID:         userID,
		FlightID:       input.FlightID,
		PassengerName:  input.PassengerName,
		PassengerEmail: input.PassengerEmail,
		Status:         domain.BookingStatusPending,
		Amount:         domain.PlaceholderAmount,
		CreatedAt:      s.now().Format(domain.CreatedAtLayout),
	}

	if err := s.bookings.Insert(ctx, booking); err != nil {
		log.WithError(err).Error("failed to store booking")
		return booking, false
	}
	observability.BookingsCreated.Inc()
	log.Info("booking created")
	return booking, true
}

var _ BookingUseCase = (*BookingService)(nil)
