package repository

import (
	"context"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

// BookingRepository is the booking record set keyed by (user id, flight id).
// Reads are fail-open: an unavailable backing store reads as empty.
type BookingRepository interface {
	ReadAll(ctx context.Context) []domain.Booking
	WriteAll(ctx context.Context, bookings []domain.Booking) error
	Find(ctx context.Context, userID, flightID string) (*domain.Booking, bool)
	Insert(ctx context.Context, booking domain.Booking) error
	Replace(ctx context.Context, booking domain.Booking) error
}

func findIn(bookings []domain.Booking, userID, flightID string) (*domain.Booking, bool) {
	for i := range bookings {
		if bookings[i].Matches(userID, flightID) {
			b := bookings[i]
			return &b, true
		}
	}
	return nil, false
}
