package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"weathermap.app/internal/adapters/api"
	"weathermap.app/internal/adapters/infrastructure"
	"weathermap.app/internal/config"
)

type Application struct {
	config *config.Config

	deps     *DependencyContainer
	sessions *SessionRegistry

	// Adapters
	httpServer *http.Server
	router     *gin.Engine
}

func NewApplication() (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	deps, err := NewDependencyContainer(cfg, DependencyOptions{})
	if err != nil {
		return nil, fmt.Errorf("create dependency container: %w", err)
	}

	return NewApplicationWithDependencies(cfg, deps)
}

// NewApplicationWithDependencies creates an application over an existing container
func NewApplicationWithDependencies(cfg *config.Config, deps *DependencyContainer) (*Application, error) {
	app := &Application{
		config: cfg,
		deps:   deps,
	}

	if err := app.initializeSessions(); err != nil {
		return nil, fmt.Errorf("initialize sessions: %w", err)
	}

	if err := app.initializeAdapters(); err != nil {
		return nil, fmt.Errorf("initialize adapters: %w", err)
	}

	return app, nil
}

func (a *Application) initializeSessions() error {
	p := a.deps.ApplicationPorts()

	registry, err := NewSessionRegistry(SessionRegistryDependencies{
		NewController: a.deps.NewController,
		Config:        p.ConfigProvider,
		Logger:        p.Logger,
		Metrics:       p.Metrics,
	})
	if err != nil {
		return fmt.Errorf("create session registry: %w", err)
	}
	a.sessions = registry
	return nil
}

func (a *Application) initializeAdapters() error {
	slog.Info("Initializing adapters...")

	gin.SetMode(a.config.Server.Mode)

	httpAdapter, err := api.NewHTTPServerAdapter(api.ServerOptions{
		Sessions:            apiSessions{registry: a.sessions},
		Weather:             a.deps.Forecast(),
		MetricsCollector:    a.deps.MetricsCollector(),
		SystemHealthChecker: a.deps.HealthChecker(),
	})
	if err != nil {
		return fmt.Errorf("create HTTP adapter: %w", err)
	}

	a.router = httpAdapter.GetRouter()

	// no WriteTimeout: the sheet stream is long-lived
	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", a.config.Server.Port),
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	// closing the sessions ends their sheet streams so Shutdown can drain
	a.httpServer.RegisterOnShutdown(a.sessions.Shutdown)

	slog.Info("Adapters initialized successfully")
	return nil
}

// Start runs the session reaper and serves HTTP until Shutdown
func (a *Application) Start(ctx context.Context) error {
	slog.Info("Starting application...")

	if results := a.deps.HealthChecker().CheckAll(ctx); !infrastructure.Healthy(results) {
		slog.Warn("Starting with unhealthy components", "components", results)
	}

	if err := a.sessions.StartReaper(); err != nil {
		return fmt.Errorf("start session reaper: %w", err)
	}

	slog.Info("Starting HTTP server", "port", a.config.Server.Port)
	if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}

func (a *Application) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down application...")

	var shutdownErr error
	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.Error("Error shutting down HTTP server", "error", err)
		shutdownErr = fmt.Errorf("shutdown HTTP server: %w", err)
	}

	a.sessions.Shutdown()
	a.deps.Cleanup()

	slog.Info("Application shutdown complete")
	return shutdownErr
}

// Config returns the application configuration
func (a *Application) Config() *config.Config {
	return a.config
}

// GetRouter returns the Gin router for testing
func (a *Application) GetRouter() *gin.Engine {
	return a.router
}

// Sessions returns the map session registry
func (a *Application) Sessions() *SessionRegistry {
	return a.sessions
}
