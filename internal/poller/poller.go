// Package poller implements the polling loop of the bot: fetch homework
// statuses, validate the response, format the first record, notify, sleep,
// repeat. The loop owns the only mutable state in the system: the time
// cursor and the text of the last reported error.
package poller

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	apperrors "github.com/afanasev-ilia/check-status-homework-bot/internal/errors"
	"github.com/afanasev-ilia/check-status-homework-bot/internal/journal"
	"github.com/afanasev-ilia/check-status-homework-bot/internal/practicum"
)

// failureTemplate renders a caught cycle error into the chat report.
const failureTemplate = "Сбой в работе программы: %v"

// Fetcher queries the homework statuses endpoint. Implemented by
// practicum.Client.
type Fetcher interface {
	GetStatuses(ctx context.Context, fromDate int64) (*practicum.StatusesResponse, error)
}

// Notifier delivers one text message to the destination chat. Implemented
// by telegram.Notifier.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Poller runs the fetch-validate-format-notify cycle on a fixed interval.
type Poller struct {
	fetcher  Fetcher
	notifier Notifier
	store    journal.Store
	logger   *slog.Logger
	interval time.Duration
	now      func() time.Time

	mu        sync.Mutex
	running   bool
	scheduler gocron.Scheduler

	// Loop state, touched only by the single scheduled job.
	cursor        int64
	lastErrorText string
}

// Option configures a Poller.
type Option func(*Poller)

// WithClock overrides the wall clock used to initialize the cursor.
func WithClock(now func() time.Time) Option {
	return func(p *Poller) {
		p.now = now
	}
}

// New creates a poller. The journal store may be nil, in which case cycles
// are not recorded.
func New(fetcher Fetcher, notifier Notifier, store journal.Store, interval time.Duration, logger *slog.Logger, opts ...Option) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = 600 * time.Second
	}

	p := &Poller{
		fetcher:  fetcher,
		notifier: notifier,
		store:    store,
		logger:   logger.With("component", "poller"),
		interval: interval,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	// The cursor starts at "now": nothing before process start is ever
	// reported, and it is never restored from a previous run.
	p.cursor = p.now().Unix()

	return p
}

// Cursor returns the current lower bound of the next query window.
func (p *Poller) Cursor() int64 {
	return p.cursor
}

// Run schedules the poll cycle at the fixed interval with an immediate
// first run and blocks until ctx is cancelled. The interval applies after
// both successful and failed cycles; there is no fast-retry path.
func (p *Poller) Run(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return fmt.Errorf("poller is already running")
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		p.mu.Unlock()
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	p.scheduler = scheduler

	_, err = scheduler.NewJob(
		gocron.DurationJob(p.interval),
		gocron.NewTask(
			func(taskCtx context.Context) {
				startTime := time.Now()
				p.RunCycle(taskCtx)
				p.logger.Debug("Finished poll cycle", "duration", time.Since(startTime))
			},
			ctx,
		),
		gocron.WithName("homework_status_poll"),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		p.mu.Unlock()
		if shutdownErr := scheduler.Shutdown(); shutdownErr != nil {
			p.logger.Error("Error shutting down scheduler", "error", shutdownErr)
		}
		return fmt.Errorf("failed to schedule poll cycle: %w", err)
	}

	scheduler.Start()
	p.running = true
	p.mu.Unlock()

	p.logger.Info("Poller started", "interval", p.interval, "from_date", p.cursor)

	<-ctx.Done()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.running = false

	p.logger.Debug("Stopping poller (waiting for running cycle)...")
	if err := p.scheduler.Shutdown(); err != nil {
		p.logger.Error("Error during poller shutdown", "error", err)
		return err
	}

	p.logger.Info("Poller stopped gracefully.")
	return nil
}

// RunCycle performs one POLLING step. Every error is caught here at the
// loop boundary, reported through the notifier with consecutive-repeat
// suppression, and never crashes the process.
func (p *Poller) RunCycle(ctx context.Context) {
	fromDate := p.cursor
	cycle := &journal.Cycle{FromDate: fromDate}

	err := p.pollOnce(ctx, cycle)
	if err != nil {
		cycle.ErrorCode = sql.NullString{String: apperrors.Code(err), Valid: true}
		cycle.ErrorText = sql.NullString{String: err.Error(), Valid: true}
		p.reportFailure(ctx, err)
	} else {
		// A healthy cycle resets the dedup memory, so an error that
		// recurs after a recovery is reported again.
		p.lastErrorText = ""
	}

	p.recordCycle(ctx, cycle)
}

// pollOnce runs fetch, validate, format and notify for one window. The
// cursor advances to the server's current_date only when everything before
// it succeeded; on any failure the old cursor is kept so the window is
// re-queried next cycle.
func (p *Poller) pollOnce(ctx context.Context, cycle *journal.Cycle) error {
	resp, err := p.fetcher.GetStatuses(ctx, p.cursor)
	if err != nil {
		return err
	}

	homeworks, err := practicum.CheckResponse(resp)
	if err != nil {
		return err
	}
	cycle.HomeworksSeen = len(homeworks)

	if len(homeworks) == 0 {
		p.logger.Debug("No homework status changes", "from_date", p.cursor)
		p.cursor = *resp.CurrentDate
		return nil
	}

	// Only the first record is consumed; later records become first on a
	// subsequent poll.
	text, err := practicum.ParseStatus(homeworks[0])
	if err != nil {
		return err
	}

	if err := p.notifier.Send(ctx, text); err != nil {
		return err
	}
	cycle.Notified = true
	p.recordNotification(ctx, journal.KindStatusChange, text)

	p.logger.Info("Sent status change notification",
		"homework", homeworks[0].HomeworkName,
		"status", homeworks[0].Status)

	p.cursor = *resp.CurrentDate
	return nil
}

// reportFailure forwards a caught cycle error to the chat, suppressing a
// repeat of the immediately preceding report. Delivery failures are only
// logged: a failed report must never produce a report about itself.
func (p *Poller) reportFailure(ctx context.Context, err error) {
	code := apperrors.Code(err)
	p.logger.Error("Poll cycle failed", "code", code, "error", err)

	if code == apperrors.CodeDelivery {
		return
	}

	message := fmt.Sprintf(failureTemplate, err)
	if message == p.lastErrorText {
		p.logger.Debug("Suppressing repeated error notification")
		return
	}

	if sendErr := p.notifier.Send(ctx, message); sendErr != nil {
		// Not remembered: the next cycle retries the report.
		p.logger.Error("Failed to report error to chat", "error", sendErr)
		return
	}

	p.lastErrorText = message
	p.recordNotification(ctx, journal.KindFailure, message)
}

func (p *Poller) recordCycle(ctx context.Context, cycle *journal.Cycle) {
	if p.store == nil {
		return
	}
	if err := p.store.RecordCycle(ctx, cycle); err != nil {
		p.logger.Error("Failed to journal cycle", "error", err)
	}
}

func (p *Poller) recordNotification(ctx context.Context, kind, text string) {
	if p.store == nil {
		return
	}
	notification := &journal.Notification{Kind: kind, Text: text}
	if err := p.store.RecordNotification(ctx, notification); err != nil {
		p.logger.Error("Failed to journal notification", "error", err)
	}
}
