// Package bot wires the application components together and manages their
// lifecycle: the poller and, when configured, the status HTTP server.
package bot

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Component is a long-running part of the application that stops when its
// context is cancelled.
type Component interface {
	Run(ctx context.Context) error
}

// Bot runs the application components and handles graceful shutdown.
type Bot struct {
	logger *slog.Logger
	poller Component
	server Component // nil when the status endpoint is disabled
}

// New creates the orchestrator. server may be nil.
func New(logger *slog.Logger, poller, server Component) *Bot {
	if logger == nil {
		logger = slog.Default()
	}

	return &Bot{
		logger: logger.With("component", "orchestrator"),
		poller: poller,
		server: server,
	}
}

// Run starts all components and blocks until ctx is cancelled or one of
// them fails. Context cancellation is a clean shutdown, not an error.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting bot...")

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		b.logger.Info("Starting poller...")
		if err := b.poller.Run(gCtx); err != nil {
			b.logger.Error("Poller stopped with error", "error", err)
			return err
		}
		b.logger.Info("Poller stopped.")
		return nil
	})

	if b.server != nil {
		g.Go(func() error {
			b.logger.Info("Starting status server...")
			if err := b.server.Run(gCtx); err != nil {
				b.logger.Error("Status server stopped with error", "error", err)
				return err
			}
			b.logger.Info("Status server stopped.")
			return nil
		})
	}

	b.logger.Info("Bot running. Waiting for shutdown signal or error...")
	err := g.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Bot stopped due to error", "error", err)
		return err
	}

	b.logger.Info("Bot stopped gracefully.")
	return nil
}
