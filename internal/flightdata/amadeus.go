package flightdata

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/cockroachdb/errors"
)

// tokens are refreshed this long before the server-side expiry
const tokenSkew = 30 * time.Second

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type offersResponse struct {
	Data []json.RawMessage `json:"data"`
}

type pricingRequest struct {
	Data struct {
		Type         string            `json:"type"`
		FlightOffers []json.RawMessage `json:"flightOffers"`
	} `json:"data"`
}

type pricingResponse struct {
	Data struct {
		FlightOffers []pricedOffer `json:"flightOffers"`
	} `json:"data"`
}

type pricedOffer struct {
	Price struct {
		Total    string `json:"total"`
		Currency string `json:"currency"`
	} `json:"price"`
	Itineraries []struct {
		Segments []struct {
			Departure endpoint `json:"departure"`
			Arrival   endpoint `json:"arrival"`
		} `json:"segments"`
	} `json:"itineraries"`
}

type endpoint struct {
	IATACode string `json:"iataCode"`
	At       string `json:"at"`
}

// AmadeusProvider prices a flight offer through the Amadeus self-service API.
type AmadeusProvider struct {
	baseURL      string
	clientID     string
	clientSecret string
	client       *http.Client

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func NewAmadeusProvider(cfg config.AmadeusConfig) *AmadeusProvider {
	return &AmadeusProvider{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		client:       &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *AmadeusProvider) Details(ctx context.Context, flightID string) (*domain.FlightDetails, error) {
	token, err := p.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	var offers offersResponse
	if err := p.do(ctx, http.MethodGet, "/v2/shopping/flight-offers?"+url.Values{"id": {flightID}}.Encode(), token, nil, &offers); err != nil {
		return nil, err
	}
	if len(offers.Data) == 0 {
		return nil, domain.ErrFlightNotFound
	}

	var req pricingRequest
	req.Data.Type = "flight-offers-pricing"
	req.Data.FlightOffers = offers.Data[:1]

	var priced pricingResponse
	if err := p.do(ctx, http.MethodPost, "/v1/shopping/flight-offers/pricing", token, req, &priced); err != nil {
		return nil, err
	}
	if len(priced.Data.FlightOffers) == 0 {
		return nil, errors.Wrap(domain.ErrUpstream, "pricing returned no offers")
	}

	return toDetails(flightID, priced.Data.FlightOffers[0]), nil
}

func toDetails(flightID string, offer pricedOffer) *domain.FlightDetails {
	details := &domain.FlightDetails{
		FlightID: flightID,
		Price:    offer.Price.Total,
		Currency: offer.Price.Currency,
	}
	if len(offer.Itineraries) == 0 {
		return details
	}
	segments := offer.Itineraries[0].Segments
	if len(segments) == 0 {
		return details
	}
	first, last := segments[0], segments[len(segments)-1]
	details.Origin = first.Departure.IATACode
	details.DepartureTime = first.Departure.At
	details.Destination = last.Arrival.IATACode
	details.ArrivalTime = last.Arrival.At
	return details
}

func (p *AmadeusProvider) accessToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && time.Now().Before(p.expiresAt) {
		return p.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", p.clientID)
	form.Set("client_secret", p.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/security/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", errors.Wrap(err, "build token request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var tok tokenResponse
	if err := p.send(req, &tok); err != nil {
		return "", errors.Wrap(err, "amadeus token")
	}

	p.token = tok.AccessToken
	p.expiresAt = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - tokenSkew)
	return p.token, nil
}

func (p *AmadeusProvider) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return p.send(req, out)
}

func (p *AmadeusProvider) send(req *http.Request, out any) error {
	resp, err := p.client.Do(req)
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "%s %s", req.Method, req.URL.Path), domain.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Wrapf(domain.ErrUpstream, "%s %s: unexpected status %d", req.Method, req.URL.Path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Mark(errors.Wrapf(err, "decode %s", req.URL.Path), domain.ErrUpstream)
	}
	return nil
}

var _ DetailsProvider = (*AmadeusProvider)(nil)
