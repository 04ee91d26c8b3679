package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/msomdec/family-events/internal/config"
	"github.com/msomdec/family-events/internal/console"
	"github.com/msomdec/family-events/internal/fixtures"
	"github.com/msomdec/family-events/internal/repository/sqlite"
	"github.com/msomdec/family-events/internal/service"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logOpts := &slog.HandlerOptions{Level: cfg.LogLevel}
	jsonOut := io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			slog.Error("failed to open log file", "path", cfg.LogFile, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		jsonOut = f
	}
	// stdout belongs to the console, so human-readable logs go to stderr.
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stderr, logOpts),
		slog.NewJSONHandler(jsonOut, logOpts),
	))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return err
	}

	if cfg.Seed {
		set, err := fixtures.Default(time.Local)
		if err != nil {
			return err
		}
		if err := set.Apply(ctx, db.Users(), db.Events(), db.Guests()); err != nil {
			return err
		}
		slog.Info("demo data seeded", "users", len(set.Users), "events", len(set.Events), "guests", len(set.Guests))
	}

	registry := prometheus.NewRegistry()
	metrics := service.NewMetrics(registry)
	notices := &service.Recorder{}
	notifier := service.Multi{notices, service.SlogNotifier{Logger: logger}}

	session := service.NewSession()
	identity := service.NewIdentityService(db.Users(), session, cfg.SessionSecret, cfg.SessionTTL, notifier, metrics)
	identity.SetThrottle(service.NewThrottle(1.0/12, 5, nil)) // 5 attempts, then one every 12s
	events := service.NewEventService(db.Events(), db.Guests(), db.Users(), session, service.Options{
		Notifier: notifier,
		Metrics:  metrics,
		Location: time.Local,
	})

	if cfg.DefaultUser != "" {
		if _, err := identity.Authenticate(ctx, cfg.DefaultUser, ""); err != nil {
			slog.Warn("default user not signed in", "email", cfg.DefaultUser, "error", err)
		}
		notices.Drain()
	}

	shell := console.New(identity, events, notices, os.Stdout)
	done := make(chan error, 1)
	go func() {
		done <- shell.Run(ctx, os.Stdin)
	}()

	select {
	case err = <-done:
	case <-ctx.Done():
		slog.Info("interrupted")
	}

	if cfg.MetricsFile != "" {
		if werr := prometheus.WriteToTextfile(cfg.MetricsFile, registry); werr != nil {
			slog.Error("failed to write metrics", "path", cfg.MetricsFile, "error", werr)
		} else {
			slog.Info("metrics written", "path", cfg.MetricsFile)
		}
	}
	return err
}
