// Package config provides configuration loading and validation for the
// homework status bot. Values come from defaults, an optional config.yaml,
// and environment variables; the three credentials are required and their
// absence is fatal at startup.
package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	apperrors "github.com/afanasev-ilia/check-status-homework-bot/internal/errors"
)

// DefaultEndpoint is the homework statuses endpoint of the Practicum API.
const DefaultEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"

// Config defines the application configuration parameters.
type Config struct {
	// Credentials. All three are required; the process refuses to start
	// without them.
	PracticumToken string `mapstructure:"practicum_token"  validate:"required"`
	TelegramToken  string `mapstructure:"telegram_token"   validate:"required"`
	TelegramChatID string `mapstructure:"telegram_chat_id" validate:"required"`

	// Polling.
	Endpoint       string        `mapstructure:"endpoint"        validate:"url"`
	PollInterval   time.Duration `mapstructure:"poll_interval"   validate:"min=1s"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"min=1s,max=5m"`

	// Logging.
	LogLevel string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogJSON  bool   `mapstructure:"log_json"`

	// Journal database path. The journal is write-only observability;
	// no loop state is ever read back from it.
	JournalPath string `mapstructure:"journal_path"`

	// Listen address for the status HTTP endpoint. Empty disables it.
	StatusAddr string `mapstructure:"status_addr"`
}

// Load loads and validates configuration from:
// 1. Default values
// 2. config.yaml file (optional)
// 3. Environment variables (PRACTICUM_TOKEN, TELEGRAM_TOKEN, TELEGRAM_CHAT_ID, ...)
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Env-only keys are invisible to Unmarshal unless bound explicitly.
	for _, key := range []string{
		"practicum_token",
		"telegram_token",
		"telegram_chat_id",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, apperrors.NewConfigError("failed to bind environment variable", err)
		}
	}

	// Allow missing config file; env and defaults may be enough.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, apperrors.NewConfigError("failed to read config file", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to parse config", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, apperrors.NewConfigError("configuration validation failed", err)
	}

	return cfg, nil
}

// setDefaults sets default values for the optional configuration parameters.
func setDefaults(v *viper.Viper) {
	v.SetDefault("endpoint", DefaultEndpoint)
	v.SetDefault("poll_interval", 600*time.Second)
	v.SetDefault("request_timeout", 30*time.Second)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)

	v.SetDefault("journal_path", "journal.db")
	v.SetDefault("status_addr", "")
}
