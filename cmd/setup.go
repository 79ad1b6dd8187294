package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/desertthunder/bingeverse/internal/services"
	"github.com/desertthunder/bingeverse/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupInit writes the default configuration file.
func (r *Runner) SetupInit(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err == nil {
		r.logger.Info("config file already exists", "path", configPath)
		r.writePlain("Config already exists at %s\n", configPath)
		return nil
	}

	if err := shared.CreateConfigFile(configPath); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	r.logger.Info("config file created", "path", configPath)

	r.writePlain("✓ Config written to %s\n", configPath)
	r.writePlainln("Next steps:")
	r.writePlain("1. Set credentials.tmdb.api_key or credentials.tmdb.access_token in %s\n", configPath)
	r.writePlain("2. Run 'bingeverse setup check' to verify the catalog is reachable\n")
	r.writePlain("Without credentials the bundled catalog is used.\n")
	return nil
}

// SetupCheck loads the configuration, builds the gateway it selects, and fetches the genre list.
func (r *Runner) SetupCheck(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	config, err := shared.LoadConfig(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s not found", shared.ErrMissingConfig, configPath)
		}
		return err
	}

	gateway, err := services.NewGateway(config, r.httpClient, r.logger)
	if err != nil {
		return err
	}

	r.writePlain("Config:  %s\n", configPath)
	r.writePlain("Mode:    %s\n", config.Gateway.Mode)
	r.writePlain("Gateway: %s\n", gateway.Name())

	genres, err := gateway.ListGenres(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}

	r.writePlain("✓ Catalog reachable (%d genres)\n", len(genres))
	return nil
}
