package journal

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

// Store defines the interface for journal operations.
// Methods accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// RecordCycle inserts a record of one completed poll cycle.
	RecordCycle(ctx context.Context, cycle *Cycle) error

	// RecordNotification inserts a record of one accepted notification.
	RecordNotification(ctx context.Context, notification *Notification) error

	// RecentCycles retrieves the most recent 'limit' cycles, newest first.
	RecentCycles(ctx context.Context, limit int) ([]Cycle, error)

	// RecentNotifications retrieves the most recent 'limit' notifications, newest first.
	RecentNotifications(ctx context.Context, limit int) ([]Notification, error)
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
// It requires a connected sqlx.DB instance and a logger.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "journal_store"),
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("journal ping failed: %w", err)
	}
	return nil
}

// RecordCycle inserts a record of one completed poll cycle.
func (s *sqlxStore) RecordCycle(ctx context.Context, cycle *Cycle) error {
	if cycle == nil {
		return fmt.Errorf("cannot record nil cycle")
	}

	const query = `
		INSERT INTO cycles (from_date, homeworks_seen, notified, error_code, error_text)
		VALUES (:from_date, :homeworks_seen, :notified, :error_code, :error_text)`

	if _, err := s.db.NamedExecContext(ctx, query, cycle); err != nil {
		s.logger.Error("Failed to record cycle", "error", err)
		return fmt.Errorf("failed to record cycle: %w", err)
	}

	return nil
}

// RecordNotification inserts a record of one accepted notification.
func (s *sqlxStore) RecordNotification(ctx context.Context, notification *Notification) error {
	if notification == nil {
		return fmt.Errorf("cannot record nil notification")
	}

	const query = `
		INSERT INTO notifications (kind, text)
		VALUES (:kind, :text)`

	if _, err := s.db.NamedExecContext(ctx, query, notification); err != nil {
		s.logger.Error("Failed to record notification", "error", err)
		return fmt.Errorf("failed to record notification: %w", err)
	}

	return nil
}

// RecentCycles retrieves the most recent 'limit' cycles, newest first.
func (s *sqlxStore) RecentCycles(ctx context.Context, limit int) ([]Cycle, error) {
	const query = `
		SELECT id, created_at, from_date, homeworks_seen, notified, error_code, error_text
		FROM cycles
		ORDER BY id DESC
		LIMIT ?`

	cycles := []Cycle{}
	if err := s.db.SelectContext(ctx, &cycles, query, limit); err != nil {
		return nil, fmt.Errorf("failed to query recent cycles: %w", err)
	}

	return cycles, nil
}

// RecentNotifications retrieves the most recent 'limit' notifications, newest first.
func (s *sqlxStore) RecentNotifications(ctx context.Context, limit int) ([]Notification, error) {
	const query = `
		SELECT id, created_at, kind, text
		FROM notifications
		ORDER BY id DESC
		LIMIT ?`

	notifications := []Notification{}
	if err := s.db.SelectContext(ctx, &notifications, query, limit); err != nil {
		return nil, fmt.Errorf("failed to query recent notifications: %w", err)
	}

	return notifications, nil
}
