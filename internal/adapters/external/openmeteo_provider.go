package external

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"weathermap.app/internal/ports"
	"weathermap.app/pkg/errors"
)

const openMeteoName = "open-meteo"

var (
	openMeteoDaily = []string{
		"weathercode",
		"temperature_2m_max",
		"temperature_2m_min",
		"precipitation_sum",
		"precipitation_probability_max",
		"windspeed_10m_max",
	}
	openMeteoHourly = []string{
		"relativehumidity_2m",
		"precipitation",
	}
)

// OpenMeteoProviderAdapter implements WeatherProvider port for Open-Meteo
type OpenMeteoProviderAdapter struct {
	baseURL string
	client  HTTPClient
	breaker *gobreaker.CircuitBreaker
}

// OpenMeteoProviderParams holds parameters for creating the Open-Meteo provider
type OpenMeteoProviderParams struct {
	BaseURL string
	Timeout time.Duration
	Breaker BreakerParams
	// Client overrides the HTTP client built from Timeout
	Client HTTPClient
}

// NewOpenMeteoProviderAdapter creates a new Open-Meteo provider adapter
func NewOpenMeteoProviderAdapter(params OpenMeteoProviderParams) *OpenMeteoProviderAdapter {
	baseURL := strings.TrimSuffix(params.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.open-meteo.com/v1"
	}

	client := params.Client
	if client == nil {
		timeout := params.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	return &OpenMeteoProviderAdapter{
		baseURL: baseURL,
		client:  client,
		breaker: newBreaker(openMeteoName, params.Breaker),
	}
}

// ForecastURL builds the forecast request URL for request
func (p *OpenMeteoProviderAdapter) ForecastURL(request ports.ForecastRequest) string {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(request.Latitude, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(request.Longitude, 'f', -1, 64))
	values.Set("current_weather", "true")
	values.Set("timezone", request.Timezone)
	values.Set("daily", strings.Join(openMeteoDaily, ","))
	values.Set("hourly", strings.Join(openMeteoHourly, ","))
	return p.baseURL + "/forecast?" + values.Encode()
}

// FetchForecast retrieves current weather, hourly and daily series for a coordinate
func (p *OpenMeteoProviderAdapter) FetchForecast(ctx context.Context, request ports.ForecastRequest) (*ports.ForecastResponse, error) {
	if request.Latitude < -90 || request.Latitude > 90 || request.Longitude < -180 || request.Longitude > 180 {
		return nil, errors.NewValidationError("coordinates out of range")
	}

	body, err := getWithBreaker(ctx, p.client, p.breaker, "Open-Meteo", p.ForecastURL(request))
	if err != nil {
		return nil, err
	}

	var forecast ports.ForecastResponse
	if err := json.Unmarshal(body, &forecast); err != nil {
		return nil, errors.NewExternalAPIError("failed to decode Open-Meteo response", err)
	}
	return &forecast, nil
}

// GetProviderName returns the name of this weather provider
func (p *OpenMeteoProviderAdapter) GetProviderName() string {
	return openMeteoName
}

// BreakerState reports the circuit breaker state: closed, half-open or open
func (p *OpenMeteoProviderAdapter) BreakerState() string {
	return p.breaker.State().String()
}
