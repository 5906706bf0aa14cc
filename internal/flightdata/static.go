package flightdata

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/idhash"
	"github.com/sirupsen/logrus"
)

const staticCurrency = "USD"

// StaticSource serves an immutable snapshot of a JSON dataset loaded once.
type StaticSource struct {
	records []domain.FlightRecord
}

// LoadStaticSource reads the dataset at path. A missing or malformed file
// yields an empty snapshot.
func LoadStaticSource(path string, log logrus.FieldLogger) *StaticSource {
	log = log.WithField("dataset", path)

	data, err := os.ReadFile(path)
	if err != nil {
		log.WithError(err).Warn("flight dataset unavailable")
		return NewStaticSource(nil)
	}

	var records []domain.FlightRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.WithError(err).Warn("flight dataset malformed")
		return NewStaticSource(nil)
	}

	log.WithField("records", len(records)).Info("flight dataset loaded")
	return NewStaticSource(records)
}

func NewStaticSource(records []domain.FlightRecord) *StaticSource {
	return &StaticSource{records: slices.Clone(records)}
}

func (s *StaticSource) Records(_ context.Context, _ Query) ([]domain.FlightRecord, error) {
	return slices.Clone(s.records), nil
}

func (s *StaticSource) Details(_ context.Context, flightID string) (*domain.FlightDetails, error) {
	for _, r := range s.records {
		if idhash.FlightID(r.Origin, r.Destination, r.Airline) != flightID {
			continue
		}
		details := &domain.FlightDetails{
			FlightID:    flightID,
			Price:       fmt.Sprintf("%d.00", r.Price),
			Currency:    staticCurrency,
			Origin:      r.Origin,
			Destination: r.Destination,
		}
		if t, err := ParseDate(r.Date); err == nil {
			details.DepartureTime = t.Format(ISOLayout)
		}
		return details, nil
	}
	return nil, domain.ErrFlightNotFound
}

var (
	_ Source          = (*StaticSource)(nil)
	_ DetailsProvider = (*StaticSource)(nil)
)
