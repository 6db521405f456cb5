package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/afanasev-ilia/check-status-homework-bot/internal/errors"
)

func setCredentials(t *testing.T) {
	t.Helper()
	t.Setenv("PRACTICUM_TOKEN", "practicum-secret")
	t.Setenv("TELEGRAM_TOKEN", "telegram-secret")
	t.Setenv("TELEGRAM_CHAT_ID", "123456789")
}

func TestLoadFromEnvironment(t *testing.T) {
	setCredentials(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "no-such-config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "practicum-secret", cfg.PracticumToken)
	assert.Equal(t, "telegram-secret", cfg.TelegramToken)
	assert.Equal(t, "123456789", cfg.TelegramChatID)

	// Defaults for everything else.
	assert.Equal(t, DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, 600*time.Second, cfg.PollInterval)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "journal.db", cfg.JournalPath)
	assert.Empty(t, cfg.StatusAddr)
}

func TestLoadFromFile(t *testing.T) {
	setCredentials(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
poll_interval: 1m
log_level: debug
status_addr: ":8080"
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, time.Minute, cfg.PollInterval)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.StatusAddr)
}

func TestLoadMissingCredentialIsFatal(t *testing.T) {
	tests := []struct {
		name string
		omit string
	}{
		{name: "missing practicum token", omit: "PRACTICUM_TOKEN"},
		{name: "missing telegram token", omit: "TELEGRAM_TOKEN"},
		{name: "missing chat id", omit: "TELEGRAM_CHAT_ID"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			setCredentials(t)
			t.Setenv(tc.omit, "")

			cfg, err := Load(filepath.Join(t.TempDir(), "no-such-config.yaml"))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Equal(t, apperrors.CodeConfig, apperrors.Code(err))
		})
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	setCredentials(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
log_level: loud
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConfig, apperrors.Code(err))
}
