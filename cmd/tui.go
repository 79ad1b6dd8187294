package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/bingeverse/internal/nav"
	"github.com/desertthunder/bingeverse/internal/services"
	"github.com/desertthunder/bingeverse/internal/session"
	"github.com/desertthunder/bingeverse/internal/shared"
	"github.com/desertthunder/bingeverse/internal/tasks"
	"github.com/desertthunder/bingeverse/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive movie browser.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	logPath := r.config.Logging.File
	if logPath == "" {
		logPath = "./tmp/bingeverse-tui.log"
	}
	fileLogger, err := shared.NewFileLogger(logPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, shared.ParseLogLevel(r.config.Logging.Level))
	r.SetLogger(fileLogger)

	gateway, err := services.NewGateway(r.config, r.httpClient, fileLogger)
	if err != nil {
		return err
	}
	r.gateway = gateway
	r.catalog = tasks.NewCatalog(gateway, fileLogger)

	controller := nav.NewController(session.New(session.Permissive{}, fileLogger), fileLogger)
	model := ui.NewModel(ctx, r.catalog, controller, fileLogger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
