package domain

// Flight is a search result. It is derived from a FlightRecord and never persisted.
type Flight struct {
	FlightID      string `json:"flight_id"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
	Airline       string `json:"airline"`
}

// FlightRecord is a single entry of a flight source (static dataset or external API).
type FlightRecord struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
	Price       int    `json:"price"`
	Airline     string `json:"airline"`
}

// FlightDetails holds pricing and itinerary data for a single flight offer.
// Itinerary fields are empty when the offer carries no segments.
type FlightDetails struct {
	FlightID      string `json:"flight_id"`
	Price         string `json:"price"`
	Currency      string `json:"currency"`
	Origin        string `json:"origin,omitempty"`
	Destination   string `json:"destination,omitempty"`
	DepartureTime string `json:"departure_time,omitempty"`
	ArrivalTime   string `json:"arrival_time,omitempty"`
}
