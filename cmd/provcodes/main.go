package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/provcodes/internal/cli"
	"github.com/JonMunkholm/provcodes/internal/config"
	"github.com/JonMunkholm/provcodes/internal/logging"
	"github.com/JonMunkholm/provcodes/internal/usererr"
)

func main() {
	// A .env file is optional; variables already set in the environment win.
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "provcodes: %s\n  cause: %v\n", usererr.FormatUserError(err), err)
		os.Exit(cli.ExitUsage)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	if envErr == nil {
		slog.Debug("loaded .env file")
	}
	slog.Debug("configuration loaded", "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx = logging.WithRunID(ctx)

	app := &cli.App{
		Config: cfg,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	code := app.Run(ctx, os.Args[1:])

	stop()
	os.Exit(code)
}
