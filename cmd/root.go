package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/lepinkainen/bookfinder/internal/cache"
	"github.com/lepinkainen/bookfinder/internal/config"
)

const (
	appName        = "bookfinder"
	appDescription = "Search Google Books, filter the results and collect favorites."
)

// CLI represents the complete command structure for the bookfinder application
type CLI struct {
	// Global flags
	APIKey    string `help:"Google Books API key (overrides GOOGLE_BOOKS_API_KEY and config)"`
	ExportDir string `help:"Directory favorites are exported to when the search UI exits"`
	Debug     bool   `help:"Enable debug logging"`
	LogFile   string `help:"Log file used while the interactive UI owns the terminal" default:"bookfinder.log"`

	// Cache flags
	CacheDB  string `help:"Path to cache SQLite database file"`
	CacheTTL string `help:"Cache time-to-live duration (e.g., 168h for a week)"`
	NoCache  bool   `help:"Disable the search response cache"`

	Search SearchCmd `cmd:"" help:"Search books (interactive unless --no-interactive)"`
	Ping   PingCmd   `cmd:"" help:"Verify the Google Books API connection"`
	Cache  CacheCmd  `cmd:"" help:"Manage the search response cache"`
}

// CacheCmd groups the cache maintenance subcommands
type CacheCmd struct {
	Invalidate cache.InvalidateCacheCmd `cmd:"" help:"Delete every cached search response"`
	Prune      cache.PruneCacheCmd      `cmd:"" help:"Delete expired cached search responses"`
}

// Execute runs the Kong-based CLI
func Execute() {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name(appName),
		kong.Description(appDescription),
		kong.UsageOnError(),
		kong.BindTo(runCtx, (*context.Context)(nil)),
	)

	closeLog, err := initLogging(&cli, ctx.Command())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	if err := initConfig("."); err != nil {
		slog.Error("Fatal error config file", "error", err)
		closeLog()
		os.Exit(1)
	}

	updateGlobalConfig(&cli)

	err = ctx.Run()
	closeCache()
	closeLog()
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig(dir string) error {
	config.SetDefaults()

	created, err := config.ReadOrCreate(dir)
	if err != nil {
		return err
	}
	if created {
		slog.Info("Config file not found, wrote default config file", "dir", dir)
	}

	// Environment variables take priority over the file
	return config.BindEnv()
}

// updateGlobalConfig applies flags that were given on top of the config file.
func updateGlobalConfig(cli *CLI) {
	if cli.APIKey != "" {
		viper.Set(config.KeyAPIKey, cli.APIKey)
	}
	if cli.ExportDir != "" {
		viper.Set(config.KeyExportDir, cli.ExportDir)
	}

	if cli.CacheDB != "" {
		viper.Set(config.KeyCacheDBFile, cli.CacheDB)
	}
	if cli.CacheTTL != "" {
		viper.Set(config.KeyCacheTTL, cli.CacheTTL)
	}
	if cli.NoCache {
		viper.Set(config.KeyCacheEnabled, false)
	}
}

// interactive reports whether the selected command takes over the terminal.
func interactive(cli *CLI, command string) bool {
	return strings.HasPrefix(command, "search") && !cli.Search.NoInteractive
}

// initLogging installs the humanlog handler. While the TUI runs, logs go to
// the log file so they do not corrupt the screen.
func initLogging(cli *CLI, command string) (func(), error) {
	level := slog.LevelInfo
	if cli.Debug {
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stderr
	closer := func() {}
	if interactive(cli, command) {
		f, err := os.OpenFile(cli.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", cli.LogFile, err)
		}
		out = f
		closer = func() { _ = f.Close() }
	}

	handler := humanlog.NewHandler(out, &humanlog.Options{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))

	return closer, nil
}

func closeCache() {
	if err := cache.ResetGlobalCache(); err != nil {
		slog.Warn("Failed to close cache database", "error", err)
	}
}
