// Package places wraps the Google Places and Directions APIs the way the
// app uses them: autocomplete while typing, place details on selection, and
// one directions call per route view. The "OK" status convention applies
// throughout.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/securespot/securespot-go/internal/config"
)

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

type Prediction struct {
	PlaceID     string `json:"place_id"`
	Description string `json:"description"`
}

type autocompleteResponse struct {
	Status      string       `json:"status"`
	Predictions []Prediction `json:"predictions"`
}

// Autocomplete suggests places for a partial input. Inputs shorter than the
// minimum never reach the network, and any non-OK status degrades to an
// empty list rather than an error.
func (c *Client) Autocomplete(ctx context.Context, input string) ([]Prediction, error) {
	if len(input) < config.MinAutocompleteInput {
		return nil, nil
	}

	q := url.Values{}
	q.Set("input", input)
	q.Set("key", c.apiKey)

	var resp autocompleteResponse
	if err := c.getJSON(ctx, "/maps/api/place/autocomplete/json", q, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" {
		return nil, nil
	}
	return resp.Predictions, nil
}

type detailsResponse struct {
	Status string `json:"status"`
	Result struct {
		FormattedAddress string `json:"formatted_address"`
	} `json:"result"`
}

// PlaceDetails resolves a prediction to its formatted address.
func (c *Client) PlaceDetails(ctx context.Context, placeID string) (string, error) {
	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("key", c.apiKey)

	var resp detailsResponse
	if err := c.getJSON(ctx, "/maps/api/place/details/json", q, &resp); err != nil {
		return "", err
	}
	if resp.Status != "OK" {
		return "", fmt.Errorf("place details status %s", resp.Status)
	}
	return resp.Result.FormattedAddress, nil
}

// Route is the first-leg summary of a directions response plus the decoded
// overview polyline.
type Route struct {
	Points            []LatLng
	Distance          string
	Duration          string
	DurationInTraffic string // empty when the API omits traffic data
	End               LatLng
}

type directionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
		Legs []struct {
			Distance struct {
				Text string `json:"text"`
			} `json:"distance"`
			Duration struct {
				Text string `json:"text"`
			} `json:"duration"`
			DurationInTraffic *struct {
				Text string `json:"text"`
			} `json:"duration_in_traffic"`
			EndLocation struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"end_location"`
		} `json:"legs"`
	} `json:"routes"`
}

// Directions requests a live-traffic route between two addresses.
func (c *Client) Directions(ctx context.Context, origin, destination string) (*Route, error) {
	q := url.Values{}
	q.Set("origin", origin)
	q.Set("destination", destination)
	q.Set("departure_time", "now")
	q.Set("traffic_model", "best_guess")
	q.Set("key", c.apiKey)

	var resp directionsResponse
	if err := c.getJSON(ctx, "/maps/api/directions/json", q, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" || len(resp.Routes) == 0 || len(resp.Routes[0].Legs) == 0 {
		if resp.ErrorMessage != "" {
			return nil, fmt.Errorf("directions: %s", resp.ErrorMessage)
		}
		return nil, fmt.Errorf("directions status %s", resp.Status)
	}

	leg := resp.Routes[0].Legs[0]
	route := &Route{
		Points:   DecodePolyline(resp.Routes[0].OverviewPolyline.Points),
		Distance: leg.Distance.Text,
		Duration: leg.Duration.Text,
		End:      LatLng{Latitude: leg.EndLocation.Lat, Longitude: leg.EndLocation.Lng},
	}
	if leg.DurationInTraffic != nil {
		route.DurationInTraffic = leg.DurationInTraffic.Text
	}
	return route, nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn().Str("path", path).Err(err).Msg("places request failed")
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
