package main

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/snapfeed/internal/adapter"
	"github.com/mmcdole/snapfeed/internal/adapter/unsplash"
	"github.com/mmcdole/snapfeed/internal/feed"
	"github.com/mmcdole/snapfeed/internal/tui"
)

// Run executes the browse command.
func (c *BrowseCmd) Run(deps *Dependencies) error {
	cfg := deps.Config
	logger := deps.Logger

	if !stdinIsTerminal() {
		return errors.New("browse needs an interactive terminal; try 'snapfeed cache ls'")
	}

	client := unsplash.NewClient(cfg.API.BaseURL, logger,
		unsplash.WithTimeout(cfg.API.Timeout),
		unsplash.WithRateLimit(cfg.API.RequestsPerSecond),
	)

	if !cfg.IsConfigured() {
		key, err := runSetupFlow(deps, client)
		if err != nil {
			return err
		}
		cfg.API.AccessKey = key
	}

	pipeline := feed.NewPipeline(client, deps.Store, cfg.API.PerPage, logger)
	controller := feed.NewController(pipeline, adapter.KeySourceFromConfig(cfg), logger)
	defer controller.Close()

	columns := cfg.UI.GridColumns
	if c.Columns > 0 {
		columns = c.Columns
	}

	model := tui.NewModel(controller, tui.Options{
		Columns:       columns,
		BannerTimeout: cfg.UI.BannerTimeout,
		Logger:        logger,
	})

	// First page; later pages follow the scroll position
	controller.TriggerNextPage()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(deps.Ctx))

	logger.Info("starting TUI", "columns", columns, "per_page", cfg.API.PerPage)

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down", "pages_requested", controller.Cursor()-1, "images", len(controller.State().ImageList))
	return nil
}
