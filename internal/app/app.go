// Package app provides the application initialization and lifecycle management
package app

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/bugfix/internal/analyze"
	"github.com/tildaslashalef/bugfix/internal/config"
	"github.com/tildaslashalef/bugfix/internal/llm"
	"github.com/tildaslashalef/bugfix/internal/loggy"
)

// App represents the application instance with its dependencies
type App struct {
	Config  *config.Config
	Factory *llm.Factory
	Analyze *analyze.Service
	LLMType llm.ClientType
}

// New initializes a new application instance with all its dependencies
func New() (*App, error) {
	cfg, err := initConfig()
	if err != nil {
		return nil, err
	}

	if err := initLogger(cfg); err != nil {
		return nil, err
	}

	logger := loggy.GetGlobalLogger()
	loggy.Info("Application initializing", "log_level", cfg.Logging.Level)

	factory := llm.NewFactory(cfg, logger)

	client, clientType, err := factory.GetDefaultClient()
	if err != nil {
		return nil, fmt.Errorf("no usable LLM provider: %w", err)
	}

	return &App{
		Config:  cfg,
		Factory: factory,
		Analyze: analyze.NewService(client, clientType, cfg, logger),
		LLMType: clientType,
	}, nil
}

// WithProvider rebuilds the analysis service against an explicitly
// requested provider instead of the configured default.
func (a *App) WithProvider(provider string) error {
	clientType := llm.ClientType(provider)
	client, err := a.Factory.GetClient(clientType)
	if err != nil {
		return err
	}

	a.Analyze = analyze.NewService(client, clientType, a.Config, loggy.GetGlobalLogger())
	a.LLMType = clientType
	return nil
}

// Shutdown gracefully shuts down the application
func (a *App) Shutdown() error {
	loggy.Debug("Application shutting down")
	return nil
}

// FromContext retrieves the App instance from the CLI context
func FromContext(c *cli.Context) (*App, error) {
	if c.App.Metadata == nil {
		return nil, fmt.Errorf("app metadata not found in context")
	}

	app, ok := c.App.Metadata["app"].(*App)
	if !ok {
		return nil, fmt.Errorf("app instance not found in context")
	}

	return app, nil
}

// initConfig loads and sets up the application configuration
func initConfig() (*config.Config, error) {
	cfg, err := config.LoadFromEnv("", "")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	config.Set(cfg)
	return cfg, nil
}

// initLogger initializes the logging system
func initLogger(cfg *config.Config) error {
	err := loggy.Init(loggy.Config{
		Level:      config.ParseLogLevel(cfg.Logging.Level),
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		AddSource:  cfg.Logging.AddSource,
		TimeFormat: cfg.Logging.TimeFormat,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}
