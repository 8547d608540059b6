package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"weathermap.app/internal/core/forecast"
	"weathermap.app/internal/core/geo"
	"weathermap.app/internal/core/weather"
	mocks "weathermap.app/internal/mocks"
	"weathermap.app/internal/ports"
	"weathermap.app/pkg/errors"
)

func newForecastGateway(t *testing.T, provider *mocks.WeatherProvider) *forecast.Gateway {
	t.Helper()

	config := mocks.NewConfigProvider(t)
	config.EXPECT().GetWeatherConfig().Return(ports.WeatherConfig{EnableCache: false, Timezone: "UTC"}).Maybe()
	provider.EXPECT().GetProviderName().Return("open-meteo").Maybe()
	metrics := mocks.NewMetricsCollector(t)
	metrics.EXPECT().RecordUpstreamCall(mock.Anything, "open-meteo", mock.Anything, mock.Anything).Maybe()

	gw, err := forecast.NewGateway(forecast.Dependencies{
		Provider: provider,
		Cache:    mocks.NewWeatherCache(t),
		Config:   config,
		Logger:   mocks.AllowLogging(mocks.NewLogger(t)),
		Metrics:  metrics,
		Now:      func() time.Time { return time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return gw
}

func TestGetWeather(t *testing.T) {
	provider := mocks.NewWeatherProvider(t)
	provider.EXPECT().FetchForecast(mock.Anything, ports.ForecastRequest{
		Latitude: 48.8566, Longitude: 2.3522, Timezone: "UTC",
	}).Return(&ports.ForecastResponse{
		Timezone: "UTC",
		CurrentWeather: ports.CurrentWeather{
			Temperature: 17.5,
			WindSpeed:   9,
			WeatherCode: 3,
			Time:        "2024-05-01T14:00",
		},
		Hourly: ports.HourlySeries{
			Time:               []string{"2024-05-01T14:00"},
			RelativeHumidity2m: []float64{62},
			Precipitation:      []float64{0},
		},
	}, nil).Once()

	f := newServerFixture(t, func(o *ServerOptions) { o.Weather = newForecastGateway(t, provider) })

	w := f.do(t, http.MethodGet, "/api/weather?lat=48.8566&lon=2.3522&name=Paris", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var snapshot weather.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	assert.Equal(t, "coord/48.8566,2.3522", snapshot.Place.ID)
	assert.Equal(t, "Paris", snapshot.Place.DisplayName)
	assert.InDelta(t, 17.5, snapshot.TemperatureC, 1e-9)
	assert.Equal(t, weather.ConditionCloudy, snapshot.Description)
	assert.Equal(t, 62, snapshot.HumidityPct)
}

func TestGetWeather_DefaultsNameToCoordinates(t *testing.T) {
	var got geo.Place
	f := newServerFixture(t, func(o *ServerOptions) {
		o.Weather = weatherLookupFunc(func(ctx context.Context, place geo.Place) *weather.Snapshot {
			got = place
			return &weather.Snapshot{Place: place, Description: weather.ConditionClear}
		})
	})

	w := f.do(t, http.MethodGet, "/api/weather?lat=-33.8688&lon=151.2093", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "-33.8688, 151.2093", got.DisplayName)
	assert.Equal(t, "coord/-33.8688,151.2093", got.ID)
}

func TestGetWeather_Validation(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		message string
	}{
		{"MissingLatitude", "lon=2", "lat failed required validation"},
		{"MissingLongitude", "lat=2", "lon failed required validation"},
		{"LatitudeOutOfRange", "lat=95&lon=2", "lat failed latitude validation"},
		{"LongitudeOutOfRange", "lat=45&lon=-200", "lon failed longitude validation"},
		{"NotANumber", "lat=north&lon=2", "invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServerFixture(t)

			w := f.do(t, http.MethodGet, "/api/weather?"+tt.query, nil)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.message, decodeError(t, w))
		})
	}
}

func TestGetWeather_UpstreamFailure(t *testing.T) {
	provider := mocks.NewWeatherProvider(t)
	provider.EXPECT().FetchForecast(mock.Anything, mock.Anything).
		Return(nil, errors.NewExternalAPIError("Open-Meteo returned status 502", nil)).Once()

	f := newServerFixture(t, func(o *ServerOptions) { o.Weather = newForecastGateway(t, provider) })

	w := f.do(t, http.MethodGet, "/api/weather?lat=10&lon=10", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "External service unavailable", decodeError(t, w))
}
