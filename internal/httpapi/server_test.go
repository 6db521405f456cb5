package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afanasev-ilia/check-status-homework-bot/internal/journal"
)

type fakeStore struct {
	pingErr       error
	cycles        []journal.Cycle
	notifications []journal.Notification
	listErr       error
}

func (s *fakeStore) Ping(context.Context) error { return s.pingErr }

func (s *fakeStore) RecordCycle(context.Context, *journal.Cycle) error { return nil }

func (s *fakeStore) RecordNotification(context.Context, *journal.Notification) error { return nil }

func (s *fakeStore) RecentCycles(context.Context, int) ([]journal.Cycle, error) {
	return s.cycles, s.listErr
}

func (s *fakeStore) RecentNotifications(context.Context, int) ([]journal.Notification, error) {
	return s.notifications, s.listErr
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func serve(t *testing.T, store journal.Store, method, target string) *httptest.ResponseRecorder {
	t.Helper()

	server := NewServer("127.0.0.1:0", store, testLogger())
	recorder := httptest.NewRecorder()
	server.httpServer.Handler.ServeHTTP(recorder, httptest.NewRequest(method, target, nil))
	return recorder
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	t.Run("healthy", func(t *testing.T) {
		t.Parallel()

		recorder := serve(t, &fakeStore{}, http.MethodGet, "/healthz")
		assert.Equal(t, http.StatusOK, recorder.Code)

		var body healthResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, "ok", body.Status)
	})

	t.Run("unhealthy", func(t *testing.T) {
		t.Parallel()

		recorder := serve(t, &fakeStore{pingErr: errors.New("database is gone")}, http.MethodGet, "/healthz")
		assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)

		var body healthResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, "unhealthy", body.Status)
		assert.Contains(t, body.Error, "database is gone")
	})
}

func TestCyclesEndpoint(t *testing.T) {
	t.Parallel()

	store := &fakeStore{cycles: []journal.Cycle{
		{ID: 2, FromDate: 1700000600, HomeworksSeen: 0},
		{ID: 1, FromDate: 1700000000, HomeworksSeen: 1, Notified: true},
	}}

	recorder := serve(t, store, http.MethodGet, "/api/v1/cycles")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body cyclesResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Cycles, 2)
	assert.Equal(t, int64(1700000600), body.Cycles[0].FromDate)
}

func TestNotificationsEndpoint(t *testing.T) {
	t.Parallel()

	store := &fakeStore{notifications: []journal.Notification{
		{ID: 1, Kind: journal.KindStatusChange, Text: "status changed"},
	}}

	recorder := serve(t, store, http.MethodGet, "/api/v1/notifications")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body notificationsResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Notifications, 1)
	assert.Equal(t, journal.KindStatusChange, body.Notifications[0].Kind)
}

func TestListFailureIsServerError(t *testing.T) {
	t.Parallel()

	recorder := serve(t, &fakeStore{listErr: errors.New("query failed")}, http.MethodGet, "/api/v1/cycles")
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}
