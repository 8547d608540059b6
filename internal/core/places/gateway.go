// Package places implements the geodata gateway that discovers named places
// inside a viewport and orders them by administrative significance.
package places

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"weathermap.app/internal/core/geo"
	"weathermap.app/internal/ports"
	"weathermap.app/internal/retry"
	"weathermap.app/pkg/errors"
	"weathermap.app/pkg/validation"
)

const (
	// DefaultRankThreshold applies when the zoom level is unknown or low
	DefaultRankThreshold = 9

	capitalRank  = 2
	fallbackRank = 16
)

var classRanks = map[string]int{
	"city":    8,
	"town":    10,
	"island":  11,
	"village": 12,
	"suburb":  13,
	"hamlet":  14,
}

// ClassesForZoom returns the place classes worth showing at zoom
func ClassesForZoom(zoom int) []string {
	switch {
	case zoom > 11:
		return []string{"city", "town", "village", "hamlet", "suburb", "island"}
	case zoom > 8:
		return []string{"city", "town"}
	default:
		return []string{"city"}
	}
}

// RankThreshold is the highest rank kept at zoom
func RankThreshold(zoom int) int {
	if zoom > DefaultRankThreshold {
		return zoom
	}
	return DefaultRankThreshold
}

// DeriveRank computes the administrative rank from OSM tags.
// Lower is more significant.
func DeriveRank(tags map[string]string) int {
	if capital := strings.TrimSpace(tags["capital"]); capital != "" {
		if capital == "yes" {
			return capitalRank
		}
		if level, err := strconv.Atoi(capital); err == nil && level >= 0 {
			return level
		}
	}
	if rank, ok := classRanks[tags["place"]]; ok {
		return rank
	}
	return fallbackRank
}

// ToPlace converts a raw geodata element. It reports false when the element
// has no usable name or coordinate.
func ToPlace(element ports.PlaceElement) (geo.Place, bool) {
	lat, lon := element.Lat, element.Lon
	if (lat == 0 || lon == 0) && element.Center != nil {
		lat, lon = element.Center.Lat, element.Center.Lon
	}

	kind := element.Type
	if kind == "" {
		kind = "node"
	}

	name, _ := validation.TrimAndValidate(element.Tags["name"])

	place := geo.Place{
		ID:          fmt.Sprintf("%s/%d", kind, element.ID),
		DisplayName: name,
		Latitude:    lat,
		Longitude:   lon,
		PlaceRank:   DeriveRank(element.Tags),
	}

	for key, value := range element.Tags {
		suffix, ok := strings.CutPrefix(key, "name:")
		if !ok || !validation.IsNotEmpty(value) {
			continue
		}
		locale, ok := geo.NormalizeLocale(suffix)
		if !ok {
			continue
		}
		if place.LocalizedNames == nil {
			place.LocalizedNames = make(map[string]string)
		}
		place.LocalizedNames[locale] = value
	}

	return place, place.HasUsableLocation()
}

type Gateway struct {
	provider ports.PlaceProvider
	config   ports.ConfigProvider
	logger   ports.Logger
	metrics  ports.MetricsCollector
}

type Dependencies struct {
	Provider ports.PlaceProvider
	Config   ports.ConfigProvider
	Logger   ports.Logger
	Metrics  ports.MetricsCollector
}

func NewGateway(deps Dependencies) (*Gateway, error) {
	if deps.Provider == nil {
		return nil, errors.NewValidationError("place provider is required")
	}
	if deps.Config == nil {
		return nil, errors.NewValidationError("config is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}

	return &Gateway{
		provider: deps.Provider,
		config:   deps.Config,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
	}, nil
}

// FetchPlaces returns the places inside bounds that are significant enough for
// zoom, most significant first. Transport failures are returned, never swallowed.
func (g *Gateway) FetchPlaces(ctx context.Context, bounds geo.Bounds, zoom int) ([]geo.Place, error) {
	if err := bounds.IsValid(); err != nil {
		return nil, errors.NewValidationError("invalid bounds: " + err.Error())
	}

	query := ports.PlaceQuery{Bounds: bounds, Classes: ClassesForZoom(zoom)}
	cfg := g.config.GetGeodataConfig()

	policy := retry.Policy{
		MaxAttempts: cfg.MaxAttempts,
		Backoff:     retry.Linear(cfg.BaseDelay),
		OnRetry: func(attempt int, err error, wait time.Duration) {
			g.logger.Warn("Geodata query failed, retrying",
				ports.F("attempt", attempt),
				ports.F("wait", wait.String()),
				ports.F("error", err))
		},
	}

	elements, err := retry.Do(ctx, policy, func(ctx context.Context, attempt int) ([]ports.PlaceElement, error) {
		start := time.Now()
		elements, err := g.provider.QueryPlaces(ctx, query)
		g.metrics.RecordUpstreamCall(ctx, g.provider.GetProviderName(), err == nil, time.Since(start))
		if err != nil && !errors.IsExternalAPIError(err) {
			return nil, retry.Permanent(err)
		}
		return elements, err
	})
	if err != nil {
		g.logger.Error("Geodata query failed",
			ports.F("bounds", bounds.String()),
			ports.F("zoom", zoom),
			ports.F("error", err))
		if errors.IsValidationError(err) || errors.IsExternalAPIError(err) {
			return nil, err
		}
		return nil, errors.NewExternalAPIError("geodata query failed", err)
	}

	places := Select(elements, zoom)
	g.logger.Debug("Places fetched",
		ports.F("bounds", bounds.String()),
		ports.F("zoom", zoom),
		ports.F("received", len(elements)),
		ports.F("kept", len(places)))
	return places, nil
}

// Select converts elements into places, drops unusable or insignificant ones
// and orders the rest by ascending rank
func Select(elements []ports.PlaceElement, zoom int) []geo.Place {
	threshold := RankThreshold(zoom)
	seen := make(map[string]struct{}, len(elements))
	places := make([]geo.Place, 0, len(elements))

	for _, element := range elements {
		place, ok := ToPlace(element)
		if !ok || place.PlaceRank > threshold {
			continue
		}
		if _, dup := seen[place.ID]; dup {
			continue
		}
		seen[place.ID] = struct{}{}
		places = append(places, place)
	}

	sort.SliceStable(places, func(i, j int) bool {
		return places[i].PlaceRank < places[j].PlaceRank
	})
	return places
}
