package ports

import (
	"context"
	"time"

	"weathermap.app/internal/core/weather"
)

// ForecastRequest identifies the coordinate a forecast is requested for
type ForecastRequest struct {
	Latitude  float64
	Longitude float64
	Timezone  string
}

// CurrentWeather is the "current_weather" block of a forecast response
type CurrentWeather struct {
	Temperature float64 `json:"temperature"`
	WindSpeed   float64 `json:"windspeed"`
	WeatherCode int     `json:"weathercode"`
	Time        string  `json:"time"`
}

// DailySeries holds the daily aggregates, index 0 being today
type DailySeries struct {
	Time                        []string  `json:"time"`
	WeatherCode                 []int     `json:"weathercode"`
	Temperature2mMax            []float64 `json:"temperature_2m_max"`
	Temperature2mMin            []float64 `json:"temperature_2m_min"`
	PrecipitationSum            []float64 `json:"precipitation_sum"`
	PrecipitationProbabilityMax []float64 `json:"precipitation_probability_max"`
	Windspeed10mMax             []float64 `json:"windspeed_10m_max"`
}

// HourlySeries holds the hourly aggregates
type HourlySeries struct {
	Time               []string  `json:"time"`
	RelativeHumidity2m []float64 `json:"relativehumidity_2m"`
	Precipitation      []float64 `json:"precipitation"`
}

// ForecastResponse is the decoded provider payload
type ForecastResponse struct {
	Timezone       string         `json:"timezone"`
	CurrentWeather CurrentWeather `json:"current_weather"`
	Daily          DailySeries    `json:"daily"`
	Hourly         HourlySeries   `json:"hourly"`
}

// WeatherProvider defines the contract for forecast providers
type WeatherProvider interface {
	FetchForecast(ctx context.Context, request ForecastRequest) (*ForecastResponse, error)
	GetProviderName() string
}

// WeatherCache defines the contract for caching weather snapshots by place id
type WeatherCache interface {
	Get(ctx context.Context, key string) (*weather.Snapshot, error)
	Set(ctx context.Context, key string, snapshot *weather.Snapshot, ttl time.Duration) error
}

// WeatherMetrics defines the contract for weather provider metrics
type WeatherMetrics interface {
	GetProviderInfo() map[string]interface{}
	GetCacheMetrics() (CacheStats, error)
}
