// Package telegram implements the notification side of the bot: sending
// text messages to a fixed chat using the go-telegram/bot library.
package telegram

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"

	apperrors "github.com/afanasev-ilia/check-status-homework-bot/internal/errors"
)

// Notifier sends text messages to a single destination chat.
type Notifier struct {
	bot    *bot.Bot
	chatID string
	logger *slog.Logger
}

// NewNotifier creates a Telegram bot instance bound to the destination chat.
func NewNotifier(token, chatID string, logger *slog.Logger, opts ...bot.Option) (*Notifier, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token cannot be empty")
	}
	if chatID == "" {
		return nil, fmt.Errorf("telegram chat id cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "telegram_notifier")

	b, err := bot.New(token, opts...)
	if err != nil {
		log.Error("Failed to create Telegram bot instance", "error", err)
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	log.Info("Telegram bot instance created successfully", "chat_id", chatID)

	return &Notifier{
		bot:    b,
		chatID: chatID,
		logger: log,
	}, nil
}

// Send delivers one text message to the destination chat. There is no
// internal retry; a failed send surfaces as a DeliveryError and retrying is
// the caller's decision on its next cycle.
func (n *Notifier) Send(ctx context.Context, text string) error {
	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: n.chatID,
		Text:   text,
	})
	if err != nil {
		return apperrors.NewDeliveryError("failed to send telegram message", err)
	}

	n.logger.Debug("Sent telegram message", "chat_id", n.chatID, "length", len(text))
	return nil
}
