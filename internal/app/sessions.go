package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	"weathermap.app/internal/adapters/api"
	"weathermap.app/internal/core/mapview"
	"weathermap.app/internal/ports"
	"weathermap.app/pkg/errors"
)

// ControllerFactory builds an unstarted map controller for a new session
type ControllerFactory func(id string, opts mapview.Options) (*mapview.Controller, error)

// sessionForgetter drops per-session metric series
type sessionForgetter interface {
	ForgetSession(session string)
}

// SessionRegistry owns every open map session and closes the idle ones
type SessionRegistry struct {
	newController ControllerFactory
	config        ports.ConfigProvider
	logger        ports.Logger
	metrics       ports.MetricsCollector
	now           func() time.Time

	mu       sync.RWMutex
	sessions map[string]*mapview.Controller
	pending  int

	scheduler *gocron.Scheduler
}

// SessionRegistryDependencies holds the collaborators of a SessionRegistry
type SessionRegistryDependencies struct {
	NewController ControllerFactory
	Config        ports.ConfigProvider
	Logger        ports.Logger
	Metrics       ports.MetricsCollector
	// Now overrides the clock used to judge idleness
	Now func() time.Time
}

func NewSessionRegistry(deps SessionRegistryDependencies) (*SessionRegistry, error) {
	if deps.NewController == nil {
		return nil, errors.NewValidationError("controller factory is required")
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

	now := deps.Now
	if now == nil {
		now = time.Now
	}

	return &SessionRegistry{
		newController: deps.NewController,
		config:        deps.Config,
		logger:        deps.Logger,
		metrics:       deps.Metrics,
		now:           now,
		sessions:      make(map[string]*mapview.Controller),
	}, nil
}

// Create opens and starts a new map session. A session whose map fails to
// initialise is closed and not registered.
func (r *SessionRegistry) Create(ctx context.Context, opts mapview.Options) (*mapview.Controller, error) {
	limit := r.config.GetSessionConfig().MaxSessions

	r.mu.Lock()
	if limit > 0 && len(r.sessions)+r.pending >= limit {
		r.mu.Unlock()
		r.logger.Warn("Session limit reached", ports.F("limit", limit))
		return nil, errors.NewUnavailableError(fmt.Sprintf("session limit of %d reached", limit))
	}
	// the slot stays reserved while the map boots outside the lock
	r.pending++
	r.mu.Unlock()

	release := func() {
		r.mu.Lock()
		r.pending--
		r.mu.Unlock()
	}

	id := uuid.NewString()
	controller, err := r.newController(id, opts)
	if err != nil {
		release()
		return nil, err
	}

	if err := controller.Start(ctx); err != nil {
		release()
		controller.Close()
		r.forget(id)
		return nil, err
	}

	r.mu.Lock()
	r.pending--
	r.sessions[id] = controller
	count := len(r.sessions)
	r.mu.Unlock()

	r.metrics.SetActiveSessions(count)
	r.logger.Info("Map session opened",
		ports.F("session", id),
		ports.F("container", opts.Container),
		ports.F("status", string(controller.Status())))
	return controller, nil
}

// Get returns the open session with id
func (r *SessionRegistry) Get(id string) (*mapview.Controller, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	controller, ok := r.sessions[id]
	if !ok {
		return nil, errors.NewNotFoundError("map session not found")
	}
	return controller, nil
}

// Close tears down the session with id
func (r *SessionRegistry) Close(id string) error {
	r.mu.Lock()
	controller, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	count := len(r.sessions)
	r.mu.Unlock()

	if !ok {
		return errors.NewNotFoundError("map session not found")
	}

	controller.Close()
	r.forget(id)
	r.metrics.SetActiveSessions(count)
	r.logger.Info("Map session closed", ports.F("session", id))
	return nil
}

func (r *SessionRegistry) forget(id string) {
	if f, ok := r.metrics.(sessionForgetter); ok {
		f.ForgetSession(id)
	}
}

// Len returns the number of open sessions
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// ReapIdle closes every session without activity for the configured idle
// timeout and returns how many were closed
func (r *SessionRegistry) ReapIdle() int {
	idle := r.config.GetSessionConfig().IdleTimeout
	cutoff := r.now().Add(-idle)

	r.mu.RLock()
	var expired []string
	for id, controller := range r.sessions {
		if controller.LastActivity().Before(cutoff) {
			expired = append(expired, id)
		}
	}
	r.mu.RUnlock()

	reaped := 0
	for _, id := range expired {
		// a concurrent DELETE may have won
		if err := r.Close(id); err == nil {
			reaped++
		}
	}
	if reaped > 0 {
		r.logger.Info("Idle map sessions reaped",
			ports.F("count", reaped),
			ports.F("idle_timeout", idle.String()))
	}
	return reaped
}

// StartReaper schedules ReapIdle at the configured interval
func (r *SessionRegistry) StartReaper() error {
	interval := r.config.GetSessionConfig().ReapInterval
	if interval <= 0 {
		return errors.NewConfigurationError("session reap interval must be positive", nil)
	}

	s := gocron.NewScheduler(time.UTC)
	if _, err := s.Every(interval).Do(func() { r.ReapIdle() }); err != nil {
		return errors.NewConfigurationError("failed to schedule session reaper", err)
	}
	s.StartAsync()

	r.mu.Lock()
	r.scheduler = s
	r.mu.Unlock()

	r.logger.Info("Session reaper started", ports.F("interval", interval.String()))
	return nil
}

// Shutdown stops the reaper and closes every open session
func (r *SessionRegistry) Shutdown() {
	r.mu.Lock()
	s := r.scheduler
	r.scheduler = nil
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	r.mu.Unlock()

	if s != nil {
		s.Stop()
	}
	for _, id := range ids {
		_ = r.Close(id)
	}
}

// apiSessions exposes the registry through the HTTP adapter's SessionManager
type apiSessions struct {
	registry *SessionRegistry
}

func (a apiSessions) Create(ctx context.Context, opts mapview.Options) (api.MapSession, error) {
	controller, err := a.registry.Create(ctx, opts)
	if err != nil {
		return nil, err
	}
	return controller, nil
}

func (a apiSessions) Get(id string) (api.MapSession, error) {
	controller, err := a.registry.Get(id)
	if err != nil {
		return nil, err
	}
	return controller, nil
}

func (a apiSessions) Close(id string) error {
	return a.registry.Close(id)
}
