package domain

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
)

const (
	// PlaceholderAmount is stored on new bookings; payment does not fill it in.
	PlaceholderAmount = "0.00"
	// CreatedAtLayout is the ISO local date-time layout used for Booking.CreatedAt.
	CreatedAtLayout = "2006-01-02T15:04:05"
	// CompletedMessage is returned by successful book and pay operations.
	CompletedMessage = "completed!"
)

// Booking is one persisted record. (UserID, FlightID) is unique within a store.
type Booking struct {
	UserID         string        `json:"user_id"`
	FlightID       string        `json:"flight_id"`
	PassengerName  string        `json:"passenger_name"`
	PassengerEmail string        `json:"passenger_email"`
	Status         BookingStatus `json:"status"`
	Amount         string        `json:"amount"`
	CreatedAt      string        `json:"created_at"`
}

// Matches reports whether b has the given (user id, flight id) key.
func (b Booking) Matches(userID, flightID string) bool {
	return b.UserID == userID && b.FlightID == flightID
}

// BookingResult is returned by the book and pay operations.
type BookingResult struct {
	UserID   string        `json:"user_id"`
	FlightID string        `json:"flight_id"`
	Status   BookingStatus `json:"status"`
	Message  string        `json:"message"`
}

// NewBookingResult reports b with the completed message.
func NewBookingResult(b Booking) BookingResult {
	return BookingResult{
		UserID:   b.UserID,
		FlightID: b.FlightID,
		Status:   b.Status,
		Message:  CompletedMessage,
	}
}
