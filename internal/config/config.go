package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yanxingzhi/event-form-multi/internal/util"
)

const (
	ProviderLine     = "line"
	ProviderTelegram = "telegram"
	ProviderNone     = "none"

	DefaultLinePushURL = "https://api.line.me/v2/bot/message/push"
)

// Config is read once at startup and never changes afterwards. Credential
// fields must never be logged.
type Config struct {
	GoogleClientEmail string
	GooglePrivateKey  string
	SpreadsheetID     string

	SheetRange        string
	RegistrationRange string
	LookupKeyColumn   int
	LookupMatchColumn int

	GoogleTokenURL string
	SheetsEndpoint string

	EventsURL        string
	NotifyProvider   string
	LineChannelToken string
	LinePushURL      string
	TelegramToken    string

	HTTPAddr        string
	UpstreamTimeout time.Duration
	NotifyTimeout   time.Duration

	LogLevel  string
	LogPretty bool
}

func FromEnv() (Config, error) {
	var c Config
	c.GoogleClientEmail = strings.TrimSpace(os.Getenv("GOOGLE_CLIENT_EMAIL"))
	c.GooglePrivateKey = strings.TrimSpace(os.Getenv("GOOGLE_PRIVATE_KEY"))
	c.SpreadsheetID = strings.TrimSpace(os.Getenv("SHEET_ID"))

	c.SheetRange = envOr("SHEET_RANGE", "A:E")
	c.RegistrationRange = envOr("REGISTRATION_RANGE", "A:I")

	var err error
	if c.LookupKeyColumn, err = envInt("LOOKUP_KEY_COLUMN", 0); err != nil {
		return c, err
	}
	if c.LookupMatchColumn, err = envInt("LOOKUP_MATCH_COLUMN", 4); err != nil {
		return c, err
	}

	c.GoogleTokenURL = strings.TrimSpace(os.Getenv("GOOGLE_TOKEN_URL"))
	c.SheetsEndpoint = strings.TrimSpace(os.Getenv("SHEETS_ENDPOINT"))

	c.EventsURL = strings.TrimSpace(os.Getenv("EVENTS_URL"))
	c.LineChannelToken = strings.TrimSpace(os.Getenv("LINE_CHANNEL_TOKEN"))
	c.LinePushURL = envOr("LINE_PUSH_URL", DefaultLinePushURL)
	c.TelegramToken = strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN"))

	c.NotifyProvider = strings.ToLower(strings.TrimSpace(os.Getenv("NOTIFY_PROVIDER")))
	if c.NotifyProvider == "" {
		c.NotifyProvider = ProviderNone
		if c.LineChannelToken != "" {
			c.NotifyProvider = ProviderLine
		}
	}

	c.HTTPAddr = envOr("HTTP_ADDR", ":8080")
	if c.UpstreamTimeout, err = envDuration("UPSTREAM_TIMEOUT", 15*time.Second); err != nil {
		return c, err
	}
	if c.NotifyTimeout, err = envDuration("NOTIFY_TIMEOUT", 10*time.Second); err != nil {
		return c, err
	}

	c.LogLevel = envOr("LOG_LEVEL", "info")
	c.LogPretty = util.NormalizeBool(os.Getenv("LOG_PRETTY"))

	return c, c.Validate()
}

func (c Config) Validate() error {
	if c.GoogleClientEmail == "" {
		return fmt.Errorf("GOOGLE_CLIENT_EMAIL is empty")
	}
	if c.GooglePrivateKey == "" {
		return fmt.Errorf("GOOGLE_PRIVATE_KEY is empty")
	}
	if c.SpreadsheetID == "" {
		return fmt.Errorf("SHEET_ID is empty")
	}
	if c.LookupKeyColumn < 0 || c.LookupMatchColumn < 0 {
		return fmt.Errorf("lookup columns must not be negative")
	}

	switch c.NotifyProvider {
	case ProviderNone:
	case ProviderLine:
		if c.LineChannelToken == "" {
			return fmt.Errorf("LINE_CHANNEL_TOKEN is empty")
		}
	case ProviderTelegram:
		if c.TelegramToken == "" {
			return fmt.Errorf("TELEGRAM_BOT_TOKEN is empty")
		}
	default:
		return fmt.Errorf("unknown notify provider: %s", c.NotifyProvider)
	}
	return nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return v, nil
}
