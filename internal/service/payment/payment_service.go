package payment

import (
	"context"
	"sync"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/observability"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

type PaymentUseCase interface {
	ProcessPayment(ctx context.Context, input PaymentInput) (*domain.BookingResult, error)
}

type EventPublisher interface {
	PublishBooking(ctx context.Context, eventType string, booking domain.Booking) error
}

// PaymentInput carries the payment request. PaymentMethod and Amount are
// logged but not validated or stored.
type PaymentInput struct {
	UserID        string `json:"user_id"`
	FlightID      string `json:"flight_id"`
	PaymentMethod string `json:"payment_method"`
	Amount        string `json:"amount"`
}

type PaymentService struct {
	bookings repository.BookingRepository
	events   EventPublisher
	lock     sync.Locker
	log      logrus.FieldLogger
}

type PaymentServiceOption func(*PaymentService)

func WithEvents(events EventPublisher) PaymentServiceOption {
	return func(s *PaymentService) {
		s.events = events
	}
}

func WithLock(lock sync.Locker) PaymentServiceOption {
	return func(s *PaymentService) {
		s.lock = lock
	}
}

func NewPaymentService(bookings repository.BookingRepository, log logrus.FieldLogger, opts ...PaymentServiceOption) *PaymentService {
	service := &PaymentService{
		bookings: bookings,
		lock:     &sync.Mutex{},
		log:      log.WithField("component", "payment_service"),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// ProcessPayment confirms a PENDING booking. A missing booking or one in any
// other state yields domain.ErrPaymentNotApplicable and nothing is written.
func (s *PaymentService) ProcessPayment(ctx context.Context, input PaymentInput) (*domain.BookingResult, error) {
	log := s.log.WithFields(logrus.Fields{
		"user_id":        input.UserID,
		"flight_id":      input.FlightID,
		"payment_method": input.PaymentMethod,
		"amount":         input.Amount,
	})

	booking, err := s.confirm(ctx, input, log)
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		if err := s.events.PublishBooking(ctx, kafka.EventBookingConfirmed, booking); err != nil {
			log.WithError(err).Warn("failed to publish booking_confirmed event")
		}
	}

	result := domain.NewBookingResult(booking)
	return &result, nil
}

// confirm holds the store lock only for the lookup and the replace.
func (s *PaymentService) confirm(ctx context.Context, input PaymentInput, log logrus.FieldLogger) (domain.Booking, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	booking, ok := s.bookings.Find(ctx, input.UserID, input.FlightID)
	if !ok {
		observability.PaymentsTotal.WithLabelValues("not_found").Inc()
		log.Info("payment for unknown booking")
		return domain.Booking{}, errors.Wrap(domain.ErrPaymentNotApplicable, "booking not found")
	}
	if booking.Status != domain.BookingStatusPending {
		observability.PaymentsTotal.WithLabelValues("not_pending").Inc()
		log.WithField("status", booking.Status).Info("payment for booking that is not pending")
		return domain.Booking{}, errors.Wrapf(domain.ErrPaymentNotApplicable, "booking is %s", booking.Status)
	}

	booking.Status = domain.BookingStatusConfirmed
	if err := s.bookings.Replace(ctx, *booking); err != nil {
		log.WithError(err).Error("failed to store confirmed booking")
	}
	observability.PaymentsTotal.WithLabelValues("confirmed").Inc()
	log.Info("booking confirmed")
	return *booking, nil
}

var _ PaymentUseCase = (*PaymentService)(nil)
