// Package app wires the gateway's components together.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/upb/llm-dispatch/config"
	"github.com/upb/llm-dispatch/handlers"
	"github.com/upb/llm-dispatch/internal/observability"
	"github.com/upb/llm-dispatch/middleware"
	"github.com/upb/llm-dispatch/providers"
	"github.com/upb/llm-dispatch/providers/openai"
	"github.com/upb/llm-dispatch/providers/synthetic"
	"github.com/upb/llm-dispatch/services/completion"
	"github.com/upb/llm-dispatch/transport"
)

// Dependencies holds all gateway dependencies. This is the central wiring
// point for dependency injection.
type Dependencies struct {
	Config   *config.Config
	Logger   *zap.Logger
	Registry *providers.Registry

	Dispatcher *providers.Dispatcher
	Transport  *transport.Client
	Completion *completion.Service

	ChatHandler   *handlers.ChatHandler
	HealthHandler *handlers.HealthHandler
	Auth          *middleware.Auth
}

// NewDependencies creates and wires up all gateway dependencies.
func NewDependencies(cfg *config.Config) (*Dependencies, error) {
	logger, err := observability.NewLogger(cfg.Observability.LogLevel, cfg.Observability.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initProviders(); err != nil {
		return nil, fmt.Errorf("failed to initialize providers: %w", err)
	}
	deps.initServices()
	deps.initHandlers()

	logger.Info("all dependencies initialized",
		zap.Strings("providers", deps.Registry.Prefixes()),
		zap.Bool("strict_dispatch", cfg.Dispatch.StrictProviders),
		zap.Bool("auth_enabled", deps.Auth.Enabled()))
	return deps, nil
}

// initProviders builds the adapter registry and the dispatcher.
func (d *Dependencies) initProviders() error {
	registry := providers.NewRegistry()

	for _, adapter := range []providers.Adapter{synthetic.New(), openai.New()} {
		if err := registry.Register(adapter); err != nil {
			return fmt.Errorf("failed to register %s: %w", adapter.Profile().Name, err)
		}
		d.Logger.Info("provider registered",
			zap.String("provider", adapter.Profile().Name),
			zap.String("prefix", adapter.Profile().Prefix))
	}

	d.Registry = registry
	d.Dispatcher = providers.NewDispatcher(registry, openai.New(),
		providers.Strict(d.Config.Dispatch.StrictProviders))
	return nil
}

// initServices builds the outbound transport and the completion service.
func (d *Dependencies) initServices() {
	d.Transport = transport.NewClient(transport.Config{
		Timeout:    d.Config.Transport.Timeout,
		MaxRetries: d.Config.Transport.MaxRetries,
		RetryDelay: d.Config.Transport.RetryDelay,
	}, d.Logger)

	d.Completion = completion.NewService(d.Dispatcher, d.Transport, d.Logger,
		d.Config.Dispatch.DropParams)
}

// initHandlers builds HTTP handlers and inbound auth.
func (d *Dependencies) initHandlers() {
	d.ChatHandler = handlers.NewChatHandler(d.Completion, d.Logger)
	d.HealthHandler = handlers.NewHealthHandler(d.Registry)
	d.Auth = middleware.NewAuth(d.Config.Gateway.MasterKey, d.Config.Gateway.JWTSecret, d.Logger)
}

// Close flushes buffered log entries.
func (d *Dependencies) Close() {
	if d.Logger != nil {
		_ = d.Logger.Sync()
	}
}
