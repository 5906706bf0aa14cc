package kafka

import (
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/google/uuid"
)

const (
	EventBookingCreated   = "booking_created"
	EventBookingConfirmed = "booking_confirmed"
)

type BookingEvent struct {
	EventID        string    `json:"event_id"`
	Type           string    `json:"type"`
	UserID         string    `json:"user_id"`
	FlightID       string    `json:"flight_id"`
	PassengerName  string    `json:"passenger_name"`
	PassengerEmail string    `json:"passenger_email"`
	Status         string    `json:"status"`
	OccurredAt     time.Time `json:"occurred_at"`
}

func NewBookingEvent(eventType string, b domain.Booking) BookingEvent {
	return BookingEvent{
		EventID:        uuid.NewString(),
		Type:           eventType,
		UserID:         b.UserID,
		FlightID:       b.FlightID,
		PassengerName:  b.PassengerName,
		PassengerEmail: b.PassengerEmail,
		Status:         string(b.Status),
		OccurredAt:     time.Now().UTC(),
	}
}

// Key partitions events by booking so a booking's events stay ordered.
func (e BookingEvent) Key() string {
	return e.UserID + ":" + e.FlightID
}
