package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/sirupsen/logrus"
)

// Sender delivers passenger notifications. Delivery is a log entry; there is
// no mail transport.
type Sender struct {
	log logrus.FieldLogger
}

func NewSender(log logrus.FieldLogger) *Sender {
	return &Sender{log: log.WithField("component", "email")}
}

func (s *Sender) Send(_ context.Context, event kafka.BookingEvent) error {
	if event.PassengerEmail == "" {
		return nil
	}
	s.log.WithFields(logrus.Fields{
		"to":       event.PassengerEmail,
		"event":    event.Type,
		"event_id": event.EventID,
	}).Info(Subject(event))
	return nil
}

// Subject renders the notification line for a booking event.
func Subject(event kafka.BookingEvent) string {
	switch event.Type {
	case kafka.EventBookingCreated:
		return fmt.Sprintf("Booking for flight %s received, awaiting payment", event.FlightID)
	case kafka.EventBookingConfirmed:
		return fmt.Sprintf("Booking for flight %s confirmed", event.FlightID)
	default:
		return fmt.Sprintf("Booking for flight %s updated: %s", event.FlightID, event.Status)
	}
}
