package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/domain/homework"
	"homework_status_bot/internal/infra/config"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/metrics"
	"homework_status_bot/internal/infra/practicum"
	"homework_status_bot/internal/infra/scheduler"
	"homework_status_bot/internal/infra/systemd"
	"homework_status_bot/internal/infra/telegram"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("Could not load application configuration: %v", err)
	}
	logger.Init(cfg)
	mainLogger := logger.Named("main")

	mainLogger.Infof("Homework status bot starting. LogLevel: %s, Environment: %s, Chat ID: %d", cfg.LogLevel, cfg.Environment, cfg.ChatID)
	if missing := cfg.Missing(); len(missing) > 0 {
		mainLogger.Warnf("Not configured: %v. Requests that need them will fail.", missing)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Telegram
	bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramAPIURL, cfg.RequestTimeout)
	if err != nil {
		mainLogger.Fatalf("Could not create Telegram bot: %v", err)
	}
	botClient := telegram.NewTelebotAdapter(bot)
	notifier := app.NewNotificationService(
		botClient,
		cfg.ChatID,
		rate.NewLimiter(rate.Limit(cfg.SendRate), 1),
		logger.Named("notifier"),
	)

	// Homework API
	fetcher := practicum.NewClient(practicum.ClientConfig{
		Endpoint: cfg.PracticumEndpoint,
		Token:    cfg.PracticumToken,
		Timeout:  cfg.RequestTimeout,
	}, logger.Named("fetcher"))

	pollScheduler, err := scheduler.NewPollScheduler(cfg.PollSchedule, cfg.RetryTime, logger.Named("scheduler"))
	if err != nil {
		mainLogger.Fatalf("Could not create poll scheduler: %v", err)
	}

	watchdog := systemd.NewWatchdog(logger.Named("systemd"))
	observers := []app.Observer{watchdog}

	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		observers = append(observers, metrics.New(reg))
		go func() {
			if err := metrics.Serve(ctx, cfg.MetricsAddr, reg, logger.Named("metrics")); err != nil {
				mainLogger.Errorf("Metrics server stopped: %v", err)
			}
		}()
	}

	mode := homework.FirstRecord
	if cfg.StrictValidate {
		mode = homework.AllRecords
	}

	poller := app.NewPoller(
		fetcher,
		notifier,
		botClient,
		cfg.ChatID,
		pollScheduler,
		mode,
		logger.Named("poller"),
		observers...,
	)

	watchdog.Ready()
	err = poller.Run(ctx)
	watchdog.Stopping()

	if err != nil && !errors.Is(err, context.Canceled) {
		mainLogger.Errorf("Poller exited: %v", err)
		os.Exit(1)
	}
	mainLogger.Info("Application shut down gracefully.")
}
