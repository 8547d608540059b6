package external

import (
	"context"
	"fmt"

	"weathermap.app/internal/ports"
	"weathermap.app/pkg/errors"
)

// PlaceProviderChain implements Chain of Responsibility over geodata providers:
// each query goes to the first provider and falls through to the next on failure
type PlaceProviderChain struct {
	providers []ports.PlaceProvider
	logger    ports.Logger
}

// NewPlaceProviderChain creates a chain trying providers in the given order
func NewPlaceProviderChain(logger ports.Logger, providers ...ports.PlaceProvider) *PlaceProviderChain {
	return &PlaceProviderChain{
		providers: providers,
		logger:    logger,
	}
}

// QueryPlaces tries each provider until one succeeds
func (c *PlaceProviderChain) QueryPlaces(ctx context.Context, query ports.PlaceQuery) ([]ports.PlaceElement, error) {
	if len(c.providers) == 0 {
		return nil, errors.NewExternalAPIError("no geodata providers configured", nil)
	}

	var lastErr error
	for i, provider := range c.providers {
		elements, err := provider.QueryPlaces(ctx, query)
		if err == nil {
			if i > 0 {
				c.logger.Info("Geodata served by fallback provider",
					ports.F("provider", provider.GetProviderName()),
					ports.F("position", i+1))
			}
			return elements, nil
		}
		if errors.IsValidationError(err) || ctx.Err() != nil {
			return nil, err
		}

		lastErr = err
		c.logger.Warn("Geodata provider failed, trying next",
			ports.F("provider", provider.GetProviderName()),
			ports.F("error", err.Error()))
	}

	return nil, errors.NewExternalAPIError(
		fmt.Sprintf("all geodata providers failed (tried %d providers)", len(c.providers)), lastErr)
}

// GetProviderName returns the name of the primary provider
func (c *PlaceProviderChain) GetProviderName() string {
	if len(c.providers) == 0 {
		return "none"
	}
	return c.providers[0].GetProviderName()
}

// GetProviderInfo returns information about configured providers
func (c *PlaceProviderChain) GetProviderInfo() map[string]interface{} {
	names := make([]string, len(c.providers))
	for i, provider := range c.providers {
		names[i] = provider.GetProviderName()
	}

	return map[string]interface{}{
		"total_providers":  len(c.providers),
		"provider_order":   names,
		"fallback_enabled": len(c.providers) > 1,
	}
}

// BreakerState reports closed while any provider in the chain can still be tried
func (c *PlaceProviderChain) BreakerState() string {
	state := "open"
	for _, provider := range c.providers {
		reporter, ok := provider.(BreakerReporter)
		if !ok {
			return "closed"
		}
		switch reporter.BreakerState() {
		case "closed":
			return "closed"
		case "half-open":
			state = "half-open"
		}
	}
	return state
}
