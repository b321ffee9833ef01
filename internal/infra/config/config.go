package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the scheduler.
type AppConfig struct {
	TelegramToken string
	DatabaseURL   string

	// AdminChatID receives run summaries and, in test mode, every partner
	// notification instead of the partner channels.
	AdminChatID int64

	// Per-partner notification channels, keyed by service bank name.
	PartnerChatIDs map[string]int64

	LogLevel    string
	Environment string // "live" or "test"

	// CronSpecDailyRun triggers the scheduling run for all partners.
	CronSpecDailyRun string
	// CronSpecReset triggers the expired-remark reset step.
	CronSpecReset string

	// Timezone is the location all calendar arithmetic runs in.
	Timezone *time.Location
}

// IsLive reports whether side effects should reach the partners.
func (c *AppConfig) IsLive() bool {
	return c.Environment == "live"
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables; a missing .env
	// file is not an error.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	cfg.AdminChatID, err = requiredChatID("ADMIN_CHAT_ID")
	if err != nil {
		return nil, err
	}

	// Partner channels map env keys to service bank names. A partner without
	// a configured channel falls back to the admin chat.
	cfg.PartnerChatIDs = make(map[string]int64)
	for envKey, serviceBank := range map[string]string{
		"ETAP_CHAT_ID":         "eTap",
		"BRINKS_CHAT_ID":       "Brinks via BPI",
		"BPI_INTERNAL_CHAT_ID": "BPI Internal",
		"APEIROS_CHAT_ID":      "Apeiros",
	} {
		raw := os.Getenv(envKey)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", envKey, err)
		}
		cfg.PartnerChatIDs[serviceBank] = id
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "test"
	}
	if cfg.Environment != "live" && cfg.Environment != "test" {
		return nil, fmt.Errorf("ENVIRONMENT must be 'live' or 'test', got %q", cfg.Environment)
	}

	cfg.CronSpecDailyRun = os.Getenv("CRON_SPEC_DAILY_RUN")
	if cfg.CronSpecDailyRun == "" {
		cfg.CronSpecDailyRun = "0 16 * * *" // 4:00 PM, ahead of next-day pickups
	}
	cfg.CronSpecReset = os.Getenv("CRON_SPEC_RESET")
	if cfg.CronSpecReset == "" {
		cfg.CronSpecReset = "0 6 * * *" // 6:00 AM daily
	}

	tzName := os.Getenv("TIMEZONE")
	if tzName == "" {
		tzName = "Asia/Manila"
	}
	cfg.Timezone, err = time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tzName, err)
	}

	return cfg, nil
}

func requiredChatID(key string) (int64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, fmt.Errorf("%s is not set", key)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return id, nil
}
