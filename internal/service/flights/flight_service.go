package flights

import (
	"context"
	"strings"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/flightdata"
	"github.com/Domenick1991/flightbooking/internal/idhash"
	"github.com/Domenick1991/flightbooking/internal/observability"
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

type FlightUseCase interface {
	Search(ctx context.Context, origin, destination, date string) []domain.Flight
	Details(ctx context.Context, flightID string) (*domain.FlightDetails, error)
}

// FlightCache is a read-through cache. A miss returns (nil, nil).
type FlightCache interface {
	GetSearch(ctx context.Context, origin, destination, date string) ([]domain.Flight, error)
	SetSearch(ctx context.Context, origin, destination, date string, flights []domain.Flight) error
	GetDetails(ctx context.Context, flightID string) (*domain.FlightDetails, error)
	SetDetails(ctx context.Context, details *domain.FlightDetails) error
}

type FlightService struct {
	source  flightdata.Source
	details flightdata.DetailsProvider
	cache   FlightCache
	log     logrus.FieldLogger
}

type FlightServiceOption func(*FlightService)

func WithCache(cache FlightCache) FlightServiceOption {
	return func(s *FlightService) {
		s.cache = cache
	}
}

func NewFlightService(source flightdata.Source, details flightdata.DetailsProvider, log logrus.FieldLogger, opts ...FlightServiceOption) *FlightService {
	service := &FlightService{
		source:  source,
		details: details,
		log:     log.WithField("component", "flight_service"),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Search never fails: bad input or an unavailable source yields an empty list.
func (s *FlightService) Search(ctx context.Context, origin, destination, date string) []domain.Flight {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" || strings.TrimSpace(date) == "" {
		return []domain.Flight{}
	}

	normalized, err := flightdata.NormalizeDate(date)
	if err != nil {
		s.log.WithError(err).Debug("search with unparseable date")
		return []domain.Flight{}
	}

	if s.cache != nil {
		if cached, err := s.cache.GetSearch(ctx, origin, destination, normalized); err == nil && cached != nil {
			return cached
		}
	}

	records, err := s.source.Records(ctx, flightdata.Query{Origin: origin, Destination: destination, Date: normalized})
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"origin":      origin,
			"destination": destination,
			"date":        normalized,
		}).Warn("flight source unavailable")
		return []domain.Flight{}
	}

	result := make([]domain.Flight, 0)
	for _, r := range records {
		if !strings.EqualFold(r.Origin, origin) || !strings.EqualFold(r.Destination, destination) {
			continue
		}
		if recordDate, err := flightdata.NormalizeDate(r.Date); err != nil || recordDate != normalized {
			continue
		}
		result = append(result, domain.Flight{
			FlightID:      idhash.FlightID(r.Origin, r.Destination, r.Airline),
			Origin:        r.Origin,
			Destination:   r.Destination,
			DepartureDate: r.Date,
			Airline:       r.Airline,
		})
	}

	observability.SearchResults.Observe(float64(len(result)))
	if s.cache != nil {
		_ = s.cache.SetSearch(ctx, origin, destination, normalized, result)
	}
	return result
}

func (s *FlightService) Details(ctx context.Context, flightID string) (*domain.FlightDetails, error) {
	if strings.TrimSpace(flightID) == "" {
		return nil, domain.ErrFlightNotFound
	}

	if s.cache != nil {
		if cached, err := s.cache.GetDetails(ctx, flightID); err == nil && cached != nil {
			return cached, nil
		}
	}

	details, err := s.details.Details(ctx, flightID)
	if err != nil {
		if !errors.Is(err, domain.ErrFlightNotFound) {
			s.log.WithError(err).WithField("flight_id", flightID).Error("flight details lookup failed")
		}
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetDetails(ctx, details)
	}
	return details, nil
}

var _ FlightUseCase = (*FlightService)(nil)
