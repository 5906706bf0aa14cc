package kafka

import (
	"encoding/json"
	"testing"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBookingEvent(t *testing.T) {
	b := domain.Booking{
		UserID:         "u1",
		FlightID:       "f1",
		PassengerName:  "Alice",
		PassengerEmail: "a@x.com",
		Status:         domain.BookingStatusPending,
	}

	event := NewBookingEvent(EventBookingCreated, b)

	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, EventBookingCreated, event.Type)
	assert.Equal(t, "PENDING", event.Status)
	assert.Equal(t, "u1:f1", event.Key())
	assert.False(t, event.OccurredAt.IsZero())
	assert.NotEqual(t, event.EventID, NewBookingEvent(EventBookingCreated, b).EventID)
}

func TestDecodeEvent(t *testing.T) {
	event := NewBookingEvent(EventBookingConfirmed, domain.Booking{UserID: "u1", FlightID: "f1", Status: domain.BookingStatusConfirmed})
	data, err := json.Marshal(event)
	require.NoError(t, err)

	decoded, err := DecodeEvent(kafka.Message{Value: data})
	require.NoError(t, err)
	assert.Equal(t, event.EventID, decoded.EventID)
	assert.Equal(t, "CONFIRMED", decoded.Status)

	_, err = DecodeEvent(kafka.Message{Value: []byte("nope")})
	assert.Error(t, err)
}
