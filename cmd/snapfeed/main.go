package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mmcdole/snapfeed/internal/adapter"
	"github.com/mmcdole/snapfeed/internal/store"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	ctx := context.Background()

	m := NewMain()
	defer m.Close()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		m.Close()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Store opened for commands that read or write the image cache.
	Store *store.ImageStore

	logCloser io.Closer
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close releases the store and log file.
func (m *Main) Close() error {
	var err error
	if m.Store != nil {
		err = m.Store.Close()
		m.Store = nil
	}
	if m.logCloser != nil {
		_ = m.logCloser.Close()
		m.logCloser = nil
	}
	return err
}

// Run parses args and executes the selected command.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:       ctx,
		Stdout:    stdout,
		Stderr:    stderr,
		PromptKey: promptAccessKey,
		SaveKey:   adapter.SaveAccessKey,
	}

	cli := &CLI{}
	exited := false
	parser, err := kong.New(cli,
		kong.Name("snapfeed"),
		kong.Description("Browse an endless photo feed in the terminal."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) { exited = true }), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	kongCtx, err := parser.Parse(args)
	// Help output calls Exit; Parse may still report the missing command after it
	if exited {
		return nil
	}
	if err != nil {
		return err
	}

	cfg, err := adapter.LoadConfig(cli.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	deps.Config = cfg

	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	} else {
		m.logCloser = closer
	}
	slog.SetDefault(logger)
	deps.Logger = logger

	logger.Info("starting snapfeed", "version", Version, "command", kongCtx.Command())

	if needsStore(kongCtx.Command(), cli) {
		s, err := store.NewImageStore(cfg.CachePath(), cfg.API.BaseURL)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Set cache.memory_only or SNAPFEED_CACHE_MEMORY_ONLY=true to run without a cache file")
			return fmt.Errorf("failed to open image cache: %w", err)
		}
		m.Store = s
		deps.Store = s
	}

	return kongCtx.Run(deps)
}

func needsStore(command string, cli *CLI) bool {
	switch command {
	case "browse", "cache ls":
		return true
	case "cache clear":
		return !cli.Cache.Clear.All
	default:
		return false
	}
}
