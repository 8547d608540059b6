package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"weathermap.app/internal/core/geo"
	"weathermap.app/internal/ports"
	"weathermap.app/pkg/errors"
)

// OverpassProviderAdapter implements PlaceProvider port for an Overpass endpoint
type OverpassProviderAdapter struct {
	name    string
	baseURL string
	timeout time.Duration
	client  HTTPClient
	breaker *gobreaker.CircuitBreaker
}

// OverpassProviderParams holds parameters for creating an Overpass provider
type OverpassProviderParams struct {
	// Name distinguishes mirrors in logs and metrics
	Name    string
	BaseURL string
	Timeout time.Duration
	Breaker BreakerParams
	Client  HTTPClient
}

type overpassResponse struct {
	Elements []ports.PlaceElement `json:"elements"`
}

// NewOverpassProviderAdapter creates a new Overpass provider adapter
func NewOverpassProviderAdapter(params OverpassProviderParams) *OverpassProviderAdapter {
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = "https://overpass-api.de/api/interpreter"
	}
	name := params.Name
	if name == "" {
		name = "overpass"
	}
	timeout := params.Timeout
	if timeout <= 0 {
		timeout = 25 * time.Second
	}

	client := params.Client
	if client == nil {
		// the server-side timeout is announced in the query; allow the response some slack
		client = &http.Client{Timeout: timeout + 5*time.Second}
	}

	return &OverpassProviderAdapter{
		name:    name,
		baseURL: baseURL,
		timeout: timeout,
		client:  client,
		breaker: newBreaker(name, params.Breaker),
	}
}

// BuildOverpassQuery renders query in Overpass QL. A box crossing the
// antimeridian is split in two.
func BuildOverpassQuery(query ports.PlaceQuery, timeout time.Duration) string {
	filter := fmt.Sprintf(`node["place"~"^(%s)$"]`, strings.Join(query.Classes, "|"))
	b := query.Bounds

	var selection string
	if b.West <= b.East {
		selection = fmt.Sprintf("%s(%s);", filter, b.String())
	} else {
		east := geo.Bounds{North: b.North, South: b.South, West: b.West, East: 180}
		west := geo.Bounds{North: b.North, South: b.South, West: -180, East: b.East}
		selection = fmt.Sprintf("(%s(%s);%s(%s););", filter, east.String(), filter, west.String())
	}

	return fmt.Sprintf("[out:json][timeout:%d];%sout center;", int(timeout.Seconds()), selection)
}

// QueryPlaces retrieves raw place elements inside the query bounds
func (p *OverpassProviderAdapter) QueryPlaces(ctx context.Context, query ports.PlaceQuery) ([]ports.PlaceElement, error) {
	if len(query.Classes) == 0 {
		return nil, errors.NewValidationError("at least one place class is required")
	}

	endpoint := p.baseURL + "?" + url.Values{"data": {BuildOverpassQuery(query, p.timeout)}}.Encode()
	body, err := getWithBreaker(ctx, p.client, p.breaker, "Overpass", endpoint)
	if err != nil {
		return nil, err
	}

	var resp overpassResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.NewExternalAPIError("failed to decode Overpass response", err)
	}
	return resp.Elements, nil
}

// GetProviderName returns the name of this geodata provider
func (p *OverpassProviderAdapter) GetProviderName() string {
	return p.name
}

// BreakerState reports the circuit breaker state: closed, half-open or open
func (p *OverpassProviderAdapter) BreakerState() string {
	return p.breaker.State().String()
}
