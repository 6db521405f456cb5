// Package main contains the entrypoint for the homework status bot.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/afanasev-ilia/check-status-homework-bot/internal/bot"
	"github.com/afanasev-ilia/check-status-homework-bot/internal/config"
	"github.com/afanasev-ilia/check-status-homework-bot/internal/httpapi"
	"github.com/afanasev-ilia/check-status-homework-bot/internal/journal"
	"github.com/afanasev-ilia/check-status-homework-bot/internal/logger"
	"github.com/afanasev-ilia/check-status-homework-bot/internal/poller"
	"github.com/afanasev-ilia/check-status-homework-bot/internal/practicum"
	"github.com/afanasev-ilia/check-status-homework-bot/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes and starts all application components (config, logger,
// journal, API client, notifier, poller, status server), handles graceful
// shutdown, and returns an exit code (0 for success, 1 for failure).
//
// Missing credentials are the only unrecoverable error path: the process
// refuses to start. Everything after startup self-heals cycle by cycle.
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.LogLevel, cfg.LogJSON)
	log.Info("Logger initialized", "level", cfg.LogLevel, "json", cfg.LogJSON)

	db, err := journal.NewDB(cfg.JournalPath)
	if err != nil {
		log.Error("Failed to open journal database", "path", cfg.JournalPath, "error", err)
		return 1
	}
	defer journal.CloseDB(db)
	store := journal.NewStore(db, log)

	client := practicum.NewClient(cfg.Endpoint, cfg.PracticumToken, cfg.RequestTimeout, log)

	notifier, err := telegram.NewNotifier(cfg.TelegramToken, cfg.TelegramChatID, log)
	if err != nil {
		log.Error("Failed to create Telegram notifier", "error", err)
		return 1
	}

	p := poller.New(client, notifier, store, cfg.PollInterval, log)

	var server bot.Component
	if cfg.StatusAddr != "" {
		server = httpapi.NewServer(cfg.StatusAddr, store, log)
	}

	app := bot.New(log, p, server)

	log.Info("Starting homework status bot...")
	runErr := app.Run(ctx)
	log.Info("Bot run loop finished. Initiating shutdown...")

	if runErr != nil {
		log.Error("Bot stopped due to error", "error", runErr)
		// Allow logs to flush before exiting on error
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	return 0
}
