package external

import (
	"context"
	"time"

	"weathermap.app/internal/ports"
)

// WeatherProviderLoggingDecorator decorates weather providers with structured logging
type WeatherProviderLoggingDecorator struct {
	provider ports.WeatherProvider
	logger   ports.Logger
}

// NewWeatherProviderLoggingDecorator creates a new logging decorator for weather providers
func NewWeatherProviderLoggingDecorator(provider ports.WeatherProvider, logger ports.Logger) ports.WeatherProvider {
	return &WeatherProviderLoggingDecorator{
		provider: provider,
		logger:   logger,
	}
}

// FetchForecast wraps the provider call with structured logging
func (d *WeatherProviderLoggingDecorator) FetchForecast(ctx context.Context, request ports.ForecastRequest) (*ports.ForecastResponse, error) {
	providerName := d.provider.GetProviderName()

	d.logger.Info("Weather API request started",
		ports.F("provider", providerName),
		ports.F("latitude", request.Latitude),
		ports.F("longitude", request.Longitude),
		ports.F("event", "request"))

	startTime := time.Now()
	forecast, err := d.provider.FetchForecast(ctx, request)
	duration := time.Since(startTime)

	if err != nil {
		d.logger.Error("Weather API request failed",
			ports.F("provider", providerName),
			ports.F("latitude", request.Latitude),
			ports.F("longitude", request.Longitude),
			ports.F("event", "error"),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", err.Error()))
		return nil, err
	}

	d.logger.Info("Weather API request completed",
		ports.F("provider", providerName),
		ports.F("latitude", request.Latitude),
		ports.F("longitude", request.Longitude),
		ports.F("event", "response"),
		ports.F("duration_ms", duration.Milliseconds()),
		ports.F("temperature", forecast.CurrentWeather.Temperature),
		ports.F("weathercode", forecast.CurrentWeather.WeatherCode))

	return forecast, nil
}

// GetProviderName returns the name of the wrapped provider
func (d *WeatherProviderLoggingDecorator) GetProviderName() string {
	return d.provider.GetProviderName()
}

// PlaceProviderLoggingDecorator decorates geodata providers with structured logging
type PlaceProviderLoggingDecorator struct {
	provider ports.PlaceProvider
	logger   ports.Logger
}

// NewPlaceProviderLoggingDecorator creates a new logging decorator for geodata providers
func NewPlaceProviderLoggingDecorator(provider ports.PlaceProvider, logger ports.Logger) ports.PlaceProvider {
	return &PlaceProviderLoggingDecorator{
		provider: provider,
		logger:   logger,
	}
}

// QueryPlaces wraps the provider call with structured logging
func (d *PlaceProviderLoggingDecorator) QueryPlaces(ctx context.Context, query ports.PlaceQuery) ([]ports.PlaceElement, error) {
	providerName := d.provider.GetProviderName()

	d.logger.Info("Geodata API request started",
		ports.F("provider", providerName),
		ports.F("bounds", query.Bounds.String()),
		ports.F("classes", query.Classes),
		ports.F("event", "request"))

	startTime := time.Now()
	elements, err := d.provider.QueryPlaces(ctx, query)
	duration := time.Since(startTime)

	if err != nil {
		d.logger.Error("Geodata API request failed",
			ports.F("provider", providerName),
			ports.F("bounds", query.Bounds.String()),
			ports.F("event", "error"),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", err.Error()))
		return nil, err
	}

	d.logger.Info("Geodata API request completed",
		ports.F("provider", providerName),
		ports.F("bounds", query.Bounds.String()),
		ports.F("event", "response"),
		ports.F("duration_ms", duration.Milliseconds()),
		ports.F("elements", len(elements)))

	return elements, nil
}

// GetProviderName returns the name of the wrapped provider
func (d *PlaceProviderLoggingDecorator) GetProviderName() string {
	return d.provider.GetProviderName()
}
