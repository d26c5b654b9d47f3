// Package config reads settings from an optional .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

// Store drivers
const (
	DriverCSV      = "csv"
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Config holds all runtime settings
type Config struct {
	Store     StoreConfig
	Telegram  TelegramConfig
	Scheduler SchedulerConfig
	HTTP      HTTPConfig
	Log       LogConfig
	// Timezone names the location used to decide what "today" is.
	Timezone string `validate:"required"`
}

// StoreConfig selects where the progress table lives
type StoreConfig struct {
	Driver      string `validate:"oneof=csv sqlite3 postgres"`
	File        string `validate:"required_if=Driver csv"`
	DatabaseURL string `validate:"required_unless=Driver csv"`
}

// TelegramConfig configures the bot
type TelegramConfig struct {
	Token       string
	OwnerChatID int64
}

// SchedulerConfig configures the daily reminder
type SchedulerConfig struct {
	Enabled      bool
	ReminderTime string `validate:"required,datetime=15:04"`
}

// HTTPConfig configures the JSON API; an empty Addr disables it
type HTTPConfig struct {
	Addr string
}

// LogConfig configures zap
type LogConfig struct {
	Level  string `validate:"oneof=debug info warn error"`
	Format string `validate:"oneof=json console"`
}

// Load reads envFile (if present) into the environment and builds the config
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	ownerChatID, err := getInt64("OWNER_CHAT_ID", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Store: StoreConfig{
			Driver:      Get("STORE_DRIVER", DriverCSV),
			File:        Get("PROGRESS_FILE", "progress.csv"),
			DatabaseURL: Get("DATABASE_URL", "data/growthbot.db"),
		},
		Telegram: TelegramConfig{
			Token:       Get("TELEGRAM_BOT_TOKEN", ""),
			OwnerChatID: ownerChatID,
		},
		Scheduler: SchedulerConfig{
			Enabled:      Get("ENABLE_SCHEDULER", "true") != "false",
			ReminderTime: Get("REMINDER_TIME", "20:00"),
		},
		HTTP: HTTPConfig{
			Addr: Get("HTTP_ADDR", ""),
		},
		Log: LogConfig{
			Level:  Get("LOG_LEVEL", "info"),
			Format: Get("LOG_FORMAT", "console"),
		},
		Timezone: Get("TIMEZONE", "Local"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks struct tags and the timezone name
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Location resolves Timezone
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Get returns the value of the environment variable or fallback when empty.
func Get(name, fallback string) string {
	if value, ok := os.LookupEnv(name); ok && value != "" {
		return value
	}
	return fallback
}

func getInt64(name string, fallback int64) (int64, error) {
	value := Get(name, "")
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return n, nil
}
