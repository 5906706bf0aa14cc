// Package flightdata provides the flight record sources behind search and
// flight details: a static JSON dataset and the external Aviationstack and
// Amadeus APIs.
package flightdata

import (
	"context"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

// Query is a validated search. Date is already normalized to DatasetLayout.
type Query struct {
	Origin      string
	Destination string
	Date        string
}

// Source returns candidate records for a query. Callers still filter the
// result by route and date, so a source may return a superset.
type Source interface {
	Records(ctx context.Context, q Query) ([]domain.FlightRecord, error)
}

// DetailsProvider resolves a flight id to pricing and itinerary details.
// It returns domain.ErrFlightNotFound when there is no offer and an error
// wrapping domain.ErrUpstream when the backing API fails.
type DetailsProvider interface {
	Details(ctx context.Context, flightID string) (*domain.FlightDetails, error)
}
