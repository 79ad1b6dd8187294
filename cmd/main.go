package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/desertthunder/bingeverse/internal/services"
	"github.com/desertthunder/bingeverse/internal/shared"
	"github.com/urfave/cli/v3"
)

const defaultConfigPath = "config.toml"

func main() {
	logger := shared.NewLogger(nil)

	configPath := defaultConfigPath
	if p := os.Getenv("BINGEVERSE_CONFIG"); p != "" {
		configPath = p
	}

	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config, using defaults", "path", configPath, "error", err)
		}
	}
	shared.SetLogLevel(logger, shared.ParseLogLevel(config.Logging.Level))

	client := &http.Client{Timeout: config.Gateway.TimeoutDuration()}

	gateway, err := services.NewGateway(config, client, logger)
	if err != nil {
		logger.Warn("catalog gateway unavailable", "error", err)
	}

	creds := config.Credentials.TMDb
	apiService := services.NewAPIService(creds.BaseURL, creds.APIKey, services.BearerClient(client, creds.AccessToken))

	runner := NewRunner(RunnerOpts{
		Config:     config,
		Gateway:    gateway,
		API:        apiService,
		HTTPClient: client,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "bingeverse",
		Usage:    "Browse trending, top rated, and popular movies from the terminal",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		switch {
		case errors.Is(err, shared.ErrMissingCredentials), errors.Is(err, shared.ErrInvalidConfig):
			logger.Error("configuration problem, run 'bingeverse setup init' to create a config file", "error", err)
			os.Exit(2)
		case errors.Is(err, shared.ErrNotImplemented):
			logger.Warn("not implemented")
			os.Exit(0)
		default:
			logger.Fatalf("application error: %v", err)
		}
	}
}
