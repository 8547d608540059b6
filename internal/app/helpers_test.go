package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"weathermap.app/internal/config"
	"weathermap.app/internal/ports"
)

// upstream fakes Open-Meteo on /forecast and Overpass on /interpreter,
// answering with Madrid at 21°C under a clear sky
type upstream struct {
	server    *httptest.Server
	forecasts atomic.Int32
	queries   atomic.Int32
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()
	u := &upstream{}

	mux := http.NewServeMux()
	mux.HandleFunc("/forecast", func(w http.ResponseWriter, r *http.Request) {
		u.forecasts.Add(1)
		_ = json.NewEncoder(w).Encode(ports.ForecastResponse{
			Timezone: "UTC",
			CurrentWeather: ports.CurrentWeather{
				Temperature: 21,
				WindSpeed:   8,
				WeatherCode: 0,
				Time:        "2024-05-01T14:00",
			},
		})
	})
	mux.HandleFunc("/interpreter", func(w http.ResponseWriter, r *http.Request) {
		u.queries.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"elements": []ports.PlaceElement{{
				Type: "node",
				ID:   1,
				Lat:  40.4168,
				Lon:  -3.7038,
				Tags: map[string]string{"name": "Madrid", "name:en": "Madrid", "place": "city", "capital": "yes"},
			}},
		})
	})

	u.server = httptest.NewServer(mux)
	t.Cleanup(u.server.Close)
	return u
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, Mode: "test"},
		Map: config.MapConfig{
			DefaultLat:      40.4168,
			DefaultLng:      -3.7038,
			DefaultZoom:     6,
			Width:           1280,
			Height:          800,
			DebounceMS:      20,
			SettleMS:        0,
			InitAttempts:    1,
			InitBaseDelayMS: 1,
		},
		Loader: config.LoaderConfig{MaxAttempts: 1, BaseDelayMS: 1},
		Weather: config.WeatherConfig{
			BaseURL:               baseURL,
			Timezone:              "UTC",
			TimeoutSeconds:        2,
			EnableCache:           true,
			BreakerFailures:       5,
			BreakerTimeoutSeconds: 30,
		},
		Geodata: config.GeodataConfig{
			BaseURL:        baseURL + "/interpreter",
			TimeoutSeconds: 2,
			MaxAttempts:    1,
			BaseDelayMS:    1,
		},
		Cache:    config.CacheConfig{Type: config.CacheTypeMemory},
		Sessions: config.SessionsConfig{IdleTimeoutMinutes: 30, ReapIntervalMinutes: 5, MaxSessions: 10},
		LogLevel: "info",
	}
}

func newTestContainer(t *testing.T, cfg *config.Config, opts DependencyOptions) *DependencyContainer {
	t.Helper()
	require.NoError(t, cfg.Validate())

	if opts.Registerer == nil {
		opts.Registerer = prometheus.NewRegistry()
	}
	deps, err := NewDependencyContainer(cfg, opts)
	require.NoError(t, err)
	t.Cleanup(deps.Cleanup)
	return deps
}
