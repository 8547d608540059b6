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
	"weathermap.app/internal/ports"
	"weathermap.app/pkg/errors"
)

const openMeteoBody = `{
	"timezone": "Europe/Madrid",
	"current_weather": {"temperature": 21.5, "windspeed": 12.3, "weathercode": 2, "time": "2026-10-16T12:00"},
	"daily": {
		"time": ["2026-10-16", "2026-10-17"],
		"weathercode": [2, 61],
		"temperature_2m_max": [24.1, 19.0],
		"temperature_2m_min": [12.4, 11.2],
		"precipitation_sum": [0, 4.2],
		"precipitation_probability_max": [5, 80],
		"windspeed_10m_max": [14.0, 22.5]
	},
	"hourly": {
		"time": ["2026-10-16T00:00", "2026-10-16T01:00"],
		"relativehumidity_2m": [60, 62],
		"precipitation": [0, 0.1]
	}
}`

func TestOpenMeteoProviderAdapter_FetchForecast(t *testing.T) {
	var captured *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(openMeteoBody))
	}))
	defer server.Close()

	provider := NewOpenMeteoProviderAdapter(OpenMeteoProviderParams{BaseURL: server.URL + "/"})

	forecast, err := provider.FetchForecast(context.Background(), ports.ForecastRequest{
		Latitude:  40.4168,
		Longitude: -3.7038,
		Timezone:  "Europe/Madrid",
	})
	require.NoError(t, err)

	require.NotNil(t, captured)
	assert.Equal(t, "/forecast", captured.URL.Path)
	query := captured.URL.Query()
	assert.Equal(t, "40.4168", query.Get("latitude"))
	assert.Equal(t, "-3.7038", query.Get("longitude"))
	assert.Equal(t, "true", query.Get("current_weather"))
	assert.Equal(t, "Europe/Madrid", query.Get("timezone"))
	assert.Equal(t, "weathercode,temperature_2m_max,temperature_2m_min,precipitation_sum,precipitation_probability_max,windspeed_10m_max", query.Get("daily"))
	assert.Equal(t, "relativehumidity_2m,precipitation", query.Get("hourly"))

	assert.Equal(t, 21.5, forecast.CurrentWeather.Temperature)
	assert.Equal(t, 2, forecast.CurrentWeather.WeatherCode)
	assert.Equal(t, []int{2, 61}, forecast.Daily.WeatherCode)
	assert.Equal(t, []float64{5, 80}, forecast.Daily.PrecipitationProbabilityMax)
	assert.Equal(t, []float64{60, 62}, forecast.Hourly.RelativeHumidity2m)
	assert.Equal(t, "open-meteo", provider.GetProviderName())
}

func TestOpenMeteoProviderAdapter_Errors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		request   ports.ForecastRequest
		errorType errors.ErrorType
	}{
		{
			name:      "LatitudeOutOfRange",
			request:   ports.ForecastRequest{Latitude: 91, Longitude: 0},
			errorType: errors.ErrorTypeValidation,
		},
		{
			name:      "ServerError",
			status:    http.StatusInternalServerError,
			request:   ports.ForecastRequest{Latitude: 40, Longitude: -3},
			errorType: errors.ErrorTypeExternalAPI,
		},
		{
			name:      "MalformedBody",
			status:    http.StatusOK,
			body:      "{not json",
			request:   ports.ForecastRequest{Latitude: 40, Longitude: -3},
			errorType: errors.ErrorTypeExternalAPI,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			provider := NewOpenMeteoProviderAdapter(OpenMeteoProviderParams{BaseURL: server.URL})
			forecast, err := provider.FetchForecast(context.Background(), tt.request)

			require.Error(t, err)
			assert.Nil(t, forecast)
			var appErr *errors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.errorType, appErr.Type)
		})
	}
}

func TestOpenMeteoProviderAdapter_CircuitBreakerOpens(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	provider := NewOpenMeteoProviderAdapter(OpenMeteoProviderParams{
		BaseURL: server.URL,
		Breaker: BreakerParams{Failures: 2, Timeout: time.Minute},
	})
	request := ports.ForecastRequest{Latitude: 40, Longitude: -3}

	for i := 0; i < 2; i++ {
		_, err := provider.FetchForecast(context.Background(), request)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 502")
	}

	_, err := provider.FetchForecast(context.Background(), request)
	require.Error(t, err)
	assert.True(t, errors.IsExternalAPIError(err))
	assert.Contains(t, err.Error(), "circuit breaker is open")
	assert.Equal(t, int32(2), hits.Load())
}

func TestOpenMeteoProviderAdapter_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(openMeteoBody))
	}))
	defer server.Close()

	provider := NewOpenMeteoProviderAdapter(OpenMeteoProviderParams{BaseURL: server.URL})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := provider.FetchForecast(ctx, ports.ForecastRequest{Latitude: 40, Longitude: -3})
	require.Error(t, err)
	assert.True(t, errors.IsExternalAPIError(err))
}

func TestOpenMeteoProviderAdapter_BreakerState(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	provider := NewOpenMeteoProviderAdapter(OpenMeteoProviderParams{
		BaseURL: server.URL,
		Breaker: BreakerParams{Failures: 1, Timeout: time.Minute},
	})
	assert.Equal(t, "closed", provider.BreakerState())

	_, _ = provider.FetchForecast(context.Background(), ports.ForecastRequest{Latitude: 40, Longitude: -3})
	assert.Equal(t, "open", provider.BreakerState())
}

func TestOpenMeteoProviderAdapter_AbandonedRequestsKeepCircuitClosed(t *testing.T) {
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
		_, _ = w.Write([]byte(openMeteoBody))
	}))
	defer server.Close()

	provider := NewOpenMeteoProviderAdapter(OpenMeteoProviderParams{
		BaseURL: server.URL,
		Breaker: BreakerParams{Failures: 2, Timeout: time.Minute},
	})
	request := ports.ForecastRequest{Latitude: 40, Longitude: -3}

	for i := 0; i < 5; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		_, err := provider.FetchForecast(ctx, request)
		cancel()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "request cancelled")
	}
	assert.Equal(t, "closed", provider.BreakerState())

	slow.Store(false)
	forecast, err := provider.FetchForecast(context.Background(), request)
	require.NoError(t, err)
	assert.Equal(t, 21.5, forecast.CurrentWeather.Temperature)
}

func TestOpenMeteoProviderAdapter_ClientErrorsKeepCircuitClosed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	provider := NewOpenMeteoProviderAdapter(OpenMeteoProviderParams{
		BaseURL: server.URL,
		Breaker: BreakerParams{Failures: 1, Timeout: time.Minute},
	})

	for i := 0; i < 3; i++ {
		_, err := provider.FetchForecast(context.Background(), ports.ForecastRequest{Latitude: 40, Longitude: -3})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 400")
	}
	assert.Equal(t, "closed", provider.BreakerState())
}
