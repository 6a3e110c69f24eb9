package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/mmcdole/snapfeed/internal/adapter"
	"github.com/mmcdole/snapfeed/internal/domain"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Config *adapter.Config
	Logger *slog.Logger
	Store  domain.ImageStore

	// PromptKey asks the user for an access key on first run.
	PromptKey func() (string, error)
	// SaveKey persists a key entered at the prompt.
	SaveKey func(string) error
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config string `short:"c" type:"path" help:"Config file (default: ~/.config/snapfeed/config.yaml)"`

	Browse  BrowseCmd  `cmd:"" default:"1" help:"Browse the photo feed (default)"`
	Cache   CacheCmd   `cmd:"" help:"Inspect or clear the local image cache"`
	Version VersionCmd `cmd:"" help:"Print version"`
}

// BrowseCmd is the "browse" subcommand.
type BrowseCmd struct {
	Columns int `help:"Grid columns (overrides ui.grid_columns)"`
}

// CacheCmd groups the cache subcommands.
type CacheCmd struct {
	Ls    CacheLsCmd    `cmd:"" help:"List cached images"`
	Clear CacheClearCmd `cmd:"" help:"Remove cached images"`
}

// CacheLsCmd is the "cache ls" subcommand.
type CacheLsCmd struct {
	Page  int    `short:"p" help:"Only list this page"`
	Match string `short:"m" help:"Only list images whose URL fuzzy-matches this text"`
}

// CacheClearCmd is the "cache clear" subcommand.
type CacheClearCmd struct {
	All bool `help:"Remove the cache directory for every API endpoint"`
}

// VersionCmd is the "version" subcommand.
type VersionCmd struct{}
