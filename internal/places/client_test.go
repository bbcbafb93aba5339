package places

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutocompleteShortInputSkipsNetwork(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", time.Second)
	predictions, err := client.Autocomplete(context.Background(), "Lo")
	require.NoError(t, err)
	assert.Empty(t, predictions)
	assert.Equal(t, int64(0), hits.Load())
}

func TestAutocompleteNonOKStatusYieldsEmptyList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ZERO_RESULTS","predictions":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", time.Second)
	predictions, err := client.Autocomplete(context.Background(), "Nowhere Special")
	require.NoError(t, err)
	assert.Empty(t, predictions)
}

func TestAutocompleteReturnsPredictions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/maps/api/place/autocomplete/json", r.URL.Path)
		assert.Equal(t, "London", r.URL.Query().Get("input"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Write([]byte(`{"status":"OK","predictions":[
			{"place_id":"p1","description":"London, UK"},
			{"place_id":"p2","description":"London, Ontario"}
		]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", time.Second)
	predictions, err := client.Autocomplete(context.Background(), "London")
	require.NoError(t, err)
	require.Len(t, predictions, 2)
	assert.Equal(t, "London, UK", predictions[0].Description)
}

func TestDirectionsDecodesRoute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "now", r.URL.Query().Get("departure_time"))
		assert.Equal(t, "best_guess", r.URL.Query().Get("traffic_model"))
		w.Write([]byte(`{"status":"OK","routes":[{
			"overview_polyline":{"points":"_p~iF~ps|U_ulLnnqC"},
			"legs":[{
				"distance":{"text":"225 km"},
				"duration":{"text":"3 hours 10 mins"},
				"duration_in_traffic":{"text":"3 hours 25 mins"},
				"end_location":{"lat":40.7,"lng":-120.95}
			}]
		}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", time.Second)
	route, err := client.Directions(context.Background(), "A", "B")
	require.NoError(t, err)
	assert.Equal(t, "225 km", route.Distance)
	assert.Equal(t, "3 hours 10 mins", route.Duration)
	assert.Equal(t, "3 hours 25 mins", route.DurationInTraffic)
	assert.Len(t, route.Points, 2)
	assert.InDelta(t, 40.7, route.End.Latitude, 1e-9)
}

func TestDirectionsErrorMessageSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"The provided API key is invalid"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad-key", time.Second)
	_, err := client.Directions(context.Background(), "A", "B")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "The provided API key is invalid")
}
