package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/nocturnedev/lantern/internal/api"
	"github.com/nocturnedev/lantern/internal/shared"
	"github.com/nocturnedev/lantern/internal/store"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var tokenStore api.TokenStore
	var jobs *store.VideoJobRepository
	if db, err := shared.NewDatabase(config.Database.Path); err == nil {
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		tokenStore = store.NewSessionStore(db)
		jobs = store.NewVideoJobRepository(db)
	} else {
		logger.Warn("database unavailable, session will not persist", "error", err)
	}

	session, err := api.NewSession(tokenStore)
	if err != nil {
		// Likely an uninitialized database. Fall back to an in-memory
		// session so read-only commands still work.
		logger.Warn("failed to load session, using in-memory session", "error", err)
		session, _ = api.NewSession(nil)
		jobs = nil
	}

	client := api.New(api.Opts{
		BaseURL:           config.Server.BaseURL,
		Session:           session,
		RequestsPerSecond: config.Server.RateLimit,
	})

	runner := NewRunner(RunnerOpts{
		Config: config,
		Client: client,
		Jobs:   jobs,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "lantern",
		Usage:    "Command line client for the Lantern AI dashboard",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
