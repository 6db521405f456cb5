package bot

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeComponent struct {
	err     error
	started chan struct{}
}

func newFakeComponent(err error) *fakeComponent {
	return &fakeComponent{err: err, started: make(chan struct{})}
}

func (c *fakeComponent) Run(ctx context.Context) error {
	close(c.started)
	if c.err != nil {
		return c.err
	}
	<-ctx.Done()
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunStopsCleanlyOnCancel(t *testing.T) {
	t.Parallel()

	poller := newFakeComponent(nil)
	server := newFakeComponent(nil)
	b := New(testLogger(), poller, server)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- b.Run(ctx)
	}()

	<-poller.started
	<-server.started
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("bot did not stop after context cancellation")
	}
}

func TestRunWithoutServer(t *testing.T) {
	t.Parallel()

	poller := newFakeComponent(nil)
	b := New(testLogger(), poller, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- b.Run(ctx)
	}()

	<-poller.started
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("bot did not stop after context cancellation")
	}
}

func TestComponentFailureStopsTheBot(t *testing.T) {
	t.Parallel()

	bootErr := errors.New("listen failed")
	poller := newFakeComponent(nil)
	server := newFakeComponent(bootErr)
	b := New(testLogger(), poller, server)

	err := b.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, bootErr)
}
