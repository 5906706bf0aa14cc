package flightdata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/cockroachdb/errors"
)

const unknownAirline = "Unknown"

type routesResponse struct {
	Data []route `json:"data"`
}

type route struct {
	Departure struct {
		IATA    string `json:"iata"`
		Airport string `json:"airport"`
	} `json:"departure"`
	Arrival struct {
		IATA    string `json:"iata"`
		Airport string `json:"airport"`
	} `json:"arrival"`
	Airline struct {
		Name string `json:"name"`
		IATA string `json:"iata"`
	} `json:"airline"`
}

// AviationstackSource looks up scheduled routes. Routes carry no date, so
// every record is dated with the queried day.
type AviationstackSource struct {
	baseURL   string
	accessKey string
	client    *http.Client
}

func NewAviationstackSource(cfg config.AviationstackConfig) *AviationstackSource {
	return &AviationstackSource{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		accessKey: cfg.AccessKey,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *AviationstackSource) Records(ctx context.Context, q Query) ([]domain.FlightRecord, error) {
	params := url.Values{}
	params.Set("access_key", s.accessKey)
	params.Set("dep_iata", strings.ToUpper(q.Origin))
	params.Set("arr_iata", strings.ToUpper(q.Destination))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/routes?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "build routes request")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "routes request"), domain.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(domain.ErrUpstream, "routes: unexpected status %d", resp.StatusCode)
	}

	var body routesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decode routes"), domain.ErrUpstream)
	}

	records := make([]domain.FlightRecord, 0, len(body.Data))
	for _, r := range body.Data {
		airline := r.Airline.Name
		if airline == "" {
			airline = unknownAirline
		}
		records = append(records, domain.FlightRecord{
			Origin:      r.Departure.IATA,
			Destination: r.Arrival.IATA,
			Date:        q.Date,
			Airline:     airline,
		})
	}
	return records, nil
}

var _ Source = (*AviationstackSource)(nil)
