// Package maploader resolves the mapping library at runtime with bounded retries
// and shares the resolved handle through an explicitly injected slot.
package maploader

import (
	"context"
	"fmt"
	"sync"
	"time"

	"weathermap.app/internal/ports"
	"weathermap.app/internal/retry"
	"weathermap.app/pkg/errors"
)

// Capability is the marker rendering mode a library supports
type Capability int

const (
	CapabilityFlat Capability = iota
	CapabilityClustered
)

func (c Capability) String() string {
	if c == CapabilityClustered {
		return "clustered"
	}
	return "flat"
}

// DetectCapability inspects a library once
func DetectCapability(lib ports.MapLibrary) Capability {
	if lib != nil && lib.ClusterConstructor() != nil {
		return CapabilityClustered
	}
	return CapabilityFlat
}

// Handle is a resolved library together with its detected capability.
// The zero Handle means the library is unavailable in this environment.
type Handle struct {
	Library    ports.MapLibrary
	Capability Capability
}

// Available reports whether the handle carries a usable library
func (h Handle) Available() bool {
	return h.Library != nil
}

// Slot holds a handle shared by every loader it is injected into
type Slot struct {
	mu     sync.RWMutex
	handle Handle
}

func NewSlot() *Slot {
	return &Slot{}
}

// Get returns the published handle, if any
func (s *Slot) Get() (Handle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.handle, s.handle.Available()
}

func (s *Slot) Publish(h Handle) {
	s.mu.Lock()
	s.handle = h
	s.mu.Unlock()
}

func (s *Slot) Clear() {
	s.mu.Lock()
	s.handle = Handle{}
	s.mu.Unlock()
}

// Loader outcomes reported to metrics
const (
	OutcomeReused      = "reused"
	OutcomeLoaded      = "loaded"
	OutcomeFailed      = "failed"
	OutcomePartial     = "partial"
	OutcomeUnavailable = "unavailable"
)

type Loader struct {
	importer    ports.LibraryImporter
	environment ports.Environment
	slot        *Slot
	config      ports.ConfigProvider
	logger      ports.Logger
	metrics     ports.MetricsCollector

	// one import cycle at a time
	mu sync.Mutex
}

type Dependencies struct {
	Importer    ports.LibraryImporter
	Environment ports.Environment
	Slot        *Slot
	Config      ports.ConfigProvider
	Logger      ports.Logger
	Metrics     ports.MetricsCollector
}

func NewLoader(deps Dependencies) (*Loader, error) {
	if deps.Importer == nil {
		return nil, errors.NewValidationError("library importer is required")
	}
	if deps.Environment == nil {
		return nil, errors.NewValidationError("environment is required")
	}
	if deps.Slot == nil {
		return nil, errors.NewValidationError("library slot is required")
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

	return &Loader{
		importer:    deps.Importer,
		environment: deps.Environment,
		slot:        deps.Slot,
		config:      deps.Config,
		logger:      deps.Logger,
		metrics:     deps.Metrics,
	}, nil
}

// Load returns the mapping library. Outside an interactive environment it
// returns the zero Handle and no error. forceReload discards the shared
// handle and runs the full attempt cycle again. The returned error is a
// terminal LibraryLoadError once every attempt failed.
func (l *Loader) Load(ctx context.Context, forceReload bool) (Handle, error) {
	if !l.environment.Interactive() {
		l.metrics.RecordLoaderAttempt(OutcomeUnavailable)
		l.logger.Debug("Map library skipped: environment is not interactive")
		return Handle{}, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if forceReload {
		l.slot.Clear()
	} else if h, ok := l.slot.Get(); ok {
		l.metrics.RecordLoaderAttempt(OutcomeReused)
		return h, nil
	}

	cfg := l.config.GetLoaderConfig()
	policy := retry.Policy{
		MaxAttempts: cfg.MaxAttempts,
		Backoff:     retry.Linear(cfg.BaseDelay),
		OnRetry: func(attempt int, err error, wait time.Duration) {
			l.logger.Warn("Map library load failed, retrying",
				ports.F("attempt", attempt),
				ports.F("wait", wait.String()),
				ports.F("error", err))
		},
	}

	lib, err := retry.Do(ctx, policy, func(ctx context.Context, attempt int) (ports.MapLibrary, error) {
		lib, err := l.importer.Import(ctx)
		if err != nil {
			l.metrics.RecordLoaderAttempt(OutcomeFailed)
			return nil, err
		}
		if lib == nil || lib.MapConstructor() == nil {
			l.metrics.RecordLoaderAttempt(OutcomePartial)
			return nil, errors.NewLibraryLoadError("map library is missing its map constructor", nil)
		}
		l.metrics.RecordLoaderAttempt(OutcomeLoaded)
		return lib, nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Handle{}, errors.NewLibraryLoadError("map library load cancelled", ctxErr)
		}
		l.logger.Error("Map library failed to load",
			ports.F("attempts", max(cfg.MaxAttempts, 1)),
			ports.F("error", err))
		return Handle{}, errors.NewLibraryLoadError(
			fmt.Sprintf("map library failed to load after %d attempts", max(cfg.MaxAttempts, 1)), err)
	}

	h := Handle{Library: lib, Capability: DetectCapability(lib)}
	l.slot.Publish(h)
	l.logger.Info("Map library loaded",
		ports.F("library", lib.Name()),
		ports.F("version", lib.Version()),
		ports.F("capability", h.Capability.String()))
	return h, nil
}

// StaticEnvironment is an Environment with a fixed answer
type StaticEnvironment bool

func (e StaticEnvironment) Interactive() bool {
	return bool(e)
}
