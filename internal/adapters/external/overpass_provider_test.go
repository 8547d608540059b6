package external

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weathermap.app/internal/core/geo"
	"weathermap.app/internal/ports"
	"weathermap.app/pkg/errors"
)

func TestBuildOverpassQuery(t *testing.T) {
	tests := []struct {
		name     string
		query    ports.PlaceQuery
		expected string
	}{
		{
			name: "RegularBox",
			query: ports.PlaceQuery{
				Bounds:  geo.Bounds{North: 41, South: 40, West: -4, East: -3},
				Classes: []string{"city", "town"},
			},
			expected: `[out:json][timeout:25];node["place"~"^(city|town)$"](40.000000,-4.000000,41.000000,-3.000000);out center;`,
		},
		{
			name: "AntimeridianBox",
			query: ports.PlaceQuery{
				Bounds:  geo.Bounds{North: 10, South: -10, West: 170, East: -170},
				Classes: []string{"city"},
			},
			expected: `[out:json][timeout:25];(node["place"~"^(city)$"](-10.000000,170.000000,10.000000,180.000000);` +
				`node["place"~"^(city)$"](-10.000000,-180.000000,10.000000,-170.000000););out center;`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildOverpassQuery(tt.query, 25*time.Second))
		})
	}
}

func TestOverpassProviderAdapter_QueryPlaces(t *testing.T) {
	var data string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data = r.URL.Query().Get("data")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"elements": [
			{"type": "node", "id": 1, "lat": 40.4168, "lon": -3.7038, "tags": {"name": "Madrid", "place": "city"}},
			{"type": "way", "id": 7, "center": {"lat": 41.65, "lon": -0.88}, "tags": {"name": "Zaragoza", "place": "city"}}
		]}`))
	}))
	defer server.Close()

	provider := NewOverpassProviderAdapter(OverpassProviderParams{
		Name:    "overpass-primary",
		BaseURL: server.URL,
		Timeout: 10 * time.Second,
	})

	query := ports.PlaceQuery{
		Bounds:  geo.Bounds{North: 44, South: 36, West: -10, East: 5},
		Classes: []string{"city"},
	}
	elements, err := provider.QueryPlaces(context.Background(), query)
	require.NoError(t, err)

	assert.Equal(t, BuildOverpassQuery(query, 10*time.Second), data)
	require.Len(t, elements, 2)
	assert.Equal(t, int64(1), elements[0].ID)
	assert.Equal(t, "Madrid", elements[0].Tags["name"])
	assert.Nil(t, elements[0].Center)
	require.NotNil(t, elements[1].Center)
	assert.Equal(t, 41.65, elements[1].Center.Lat)
	assert.Equal(t, "overpass-primary", provider.GetProviderName())
}

func TestOverpassProviderAdapter_Errors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider := NewOverpassProviderAdapter(OverpassProviderParams{BaseURL: server.URL})
	bounds := geo.Bounds{North: 44, South: 36, West: -10, East: 5}

	t.Run("NoClasses", func(t *testing.T) {
		_, err := provider.QueryPlaces(context.Background(), ports.PlaceQuery{Bounds: bounds})
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("RateLimited", func(t *testing.T) {
		_, err := provider.QueryPlaces(context.Background(), ports.PlaceQuery{Bounds: bounds, Classes: []string{"city"}})
		require.Error(t, err)
		assert.True(t, errors.IsExternalAPIError(err))
		assert.Contains(t, err.Error(), "status 429")
	})
}

func TestOverpassProviderAdapter_Defaults(t *testing.T) {
	provider := NewOverpassProviderAdapter(OverpassProviderParams{})

	assert.Equal(t, "overpass", provider.GetProviderName())
	assert.Equal(t, "https://overpass-api.de/api/interpreter", provider.baseURL)
	assert.Equal(t, 25*time.Second, provider.timeout)
}

func TestOverpassProviderAdapter_AbandonedQueriesKeepCircuitClosed(t *testing.T) {
	var slow atomic.Bool
	slow.Store(true)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if slow.Load() {
			select {
			case <-r.Context().Done():
				return
			case <-time.After(time.Second):
			}
		}
		_, _ = w.Write([]byte(`{"elements":[]}`))
	}))
	defer server.Close()

	provider := NewOverpassProviderAdapter(OverpassProviderParams{
		BaseURL: server.URL,
		Breaker: BreakerParams{Failures: 2, Timeout: time.Minute},
	})
	query := ports.PlaceQuery{
		Bounds:  geo.Bounds{North: 44, South: 36, West: -10, East: 5},
		Classes: []string{"city"},
	}

	for i := 0; i < 5; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		time.AfterFunc(10*time.Millisecond, cancel)
		_, err := provider.QueryPlaces(ctx, query)
		cancel()
		require.Error(t, err)
		assert.True(t, errors.IsExternalAPIError(err))
	}
	assert.Equal(t, "closed", provider.BreakerState())

	slow.Store(false)
	elements, err := provider.QueryPlaces(context.Background(), query)
	require.NoError(t, err)
	assert.Empty(t, elements)
}
