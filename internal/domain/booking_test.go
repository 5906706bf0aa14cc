package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBooking_Matches(t *testing.T) {
	b := Booking{UserID: "u1", FlightID: "F1"}

	assert.True(t, b.Matches("u1", "F1"))
	assert.False(t, b.Matches("u1", "F2"))
	assert.False(t, b.Matches("F1", "u1"))
}

func TestNewBookingResult(t *testing.T) {
	b := Booking{UserID: "u1", FlightID: "F1", Status: BookingStatusConfirmed, Amount: PlaceholderAmount}

	assert.Equal(t, BookingResult{
		UserID:   "u1",
		FlightID: "F1",
		Status:   BookingStatusConfirmed,
		Message:  "completed!",
	}, NewBookingResult(b))
}
