// Package main implements the snapdex command, a terminal driver for the
// SnapDex card collection. Every change it makes goes through the
// application state store.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/phrazzld/snapdex/internal/config"
	"github.com/phrazzld/snapdex/internal/platform/logger"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		printHelp(out)
		return nil
	}

	var cmd command
	switch args[0] {
	case "version", "--version", "-v":
		fmt.Fprintln(out, "snapdex "+version)
		return nil
	case "help", "--help", "-h":
		printHelp(out)
		return nil
	case "list":
		cmd = runList
	case "show":
		cmd = runShow
	case "capture":
		cmd = runCapture
	case "remove":
		cmd = runRemove
	case "search":
		cmd = runSearch
	default:
		printHelp(out)
		return fmt.Errorf("unknown command %q", args[0])
	}

	cfg, log, err := initializeApp()
	if err != nil {
		return err
	}

	app, err := newApplication(logger.WithLogger(ctx, log), cfg)
	if err != nil {
		return err
	}
	defer app.cleanup()

	if err := cmd(ctx, app, args[1:], out); err != nil {
		return err
	}
	reportFailure(out, app.store.Snapshot().Error)
	return nil
}

// initializeApp loads the environment and configuration and sets up logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	// A missing .env file is normal; anything else is worth reporting.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Debug("configuration loaded",
		"storage_driver", cfg.Storage.Driver,
		"llm_provider", cfg.LLM.Provider,
		"log_level", cfg.Log.Level)

	return cfg, log, nil
}

func printHelp(out io.Writer) {
	fmt.Fprint(out, `snapdex - turn photos into collectible cards

Usage:
  snapdex <command> [arguments]

Commands:
  list                          list the collection
  show <id|#number>             show one card
  capture [-accept] <image>     generate a card from a photo
  remove <id|#number>           remove a card from the collection
  search [-type T] <query>      fuzzy search card titles
  version                       print the version
  help                          print this help

Configuration is read from snapdex.yaml, a .env file and SNAPDEX_* environment
variables (for example SNAPDEX_STORAGE_DRIVER=memory, SNAPDEX_LLM_PROVIDER=gemini).
`)
}
