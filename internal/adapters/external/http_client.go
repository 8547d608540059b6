// Package external provides adapters for external services: the forecast and
// geodata HTTP providers, cache backends and the logging decorators around them.
package external

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"weathermap.app/pkg/errors"
)

// maxResponseBytes caps how much of an upstream body is read
const maxResponseBytes = 8 << 20

// HTTPClient interface for HTTP requests (for testing)
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// BreakerParams configures the circuit breaker in front of an upstream
type BreakerParams struct {
	// Failures is the number of consecutive failures that opens the circuit
	Failures int
	// Timeout is how long the circuit stays open before probing again
	Timeout time.Duration
}

func newBreaker(name string, params BreakerParams) *gobreaker.CircuitBreaker {
	failures := params.Failures
	if failures < 1 {
		failures = 5
	}
	timeout := params.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(failures)
		},
		IsSuccessful: upstreamHealthy,
	})
}

// upstreamHealthy reports whether err leaves the upstream's health untouched.
// Requests the caller abandoned and client errors other than 429 do not
// count towards opening the circuit.
func upstreamHealthy(err error) bool {
	if err == nil {
		return true
	}
	var abandoned *abandonedError
	if stderrors.As(err, &abandoned) {
		return true
	}
	var status *statusError
	if stderrors.As(err, &status) {
		return !status.upstreamFault()
	}
	return false
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status code %d", e.code)
}

func (e *statusError) upstreamFault() bool {
	return e.code == http.StatusTooManyRequests || e.code >= 500
}

// abandonedError marks a request whose caller went away before it completed
type abandonedError struct {
	cause error
}

func (e *abandonedError) Error() string {
	return "request abandoned: " + e.cause.Error()
}

func (e *abandonedError) Unwrap() error {
	return e.cause
}

// getWithBreaker performs a GET through the circuit breaker and returns the
// body of a 2xx response. Every failure is an ExternalAPIError.
func getWithBreaker(ctx context.Context, client HTTPClient, cb *gobreaker.CircuitBreaker, provider, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewExternalAPIError("failed to build "+provider+" request", err)
	}
	req.Header.Set("Accept", "application/json")

	result, err := cb.Execute(func() (interface{}, error) {
		resp, err := client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, &abandonedError{cause: ctx.Err()}
			}
			return nil, err
		}
		defer func() {
			_ = resp.Body.Close()
		}()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &statusError{code: resp.StatusCode}
		}
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil && ctx.Err() != nil {
			return nil, &abandonedError{cause: ctx.Err()}
		}
		return body, err
	})
	if err != nil {
		if stderrors.Is(err, gobreaker.ErrOpenState) || stderrors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, errors.NewExternalAPIError(provider+" circuit breaker is open", err)
		}
		var abandoned *abandonedError
		if stderrors.As(err, &abandoned) {
			return nil, errors.NewExternalAPIError(provider+" request cancelled", abandoned.cause)
		}
		var status *statusError
		if stderrors.As(err, &status) {
			return nil, errors.NewExternalAPIError(fmt.Sprintf("%s returned status %d", provider, status.code), nil)
		}
		return nil, errors.NewExternalAPIError("failed to call "+provider, err)
	}

	body, _ := result.([]byte)
	return body, nil
}

// BreakerReporter is implemented by providers guarded by a circuit breaker
type BreakerReporter interface {
	BreakerState() string
}
