package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultEndpoint       = "https://practicum.yandex.ru/api/user_api/homework_statuses/"
	DefaultRetryTime      = 300 * time.Second
	DefaultRequestTimeout = 10 * time.Second
	DefaultSendRate       = 1.0
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	PracticumToken    string
	PracticumEndpoint string
	TelegramToken     string
	TelegramAPIURL    string // Empty means the public Bot API
	ChatID            int64

	RetryTime      time.Duration
	PollSchedule   string // Cron spec, overrides RetryTime when set
	RequestTimeout time.Duration
	SendRate       float64 // Telegram messages per second
	StrictValidate bool

	MetricsAddr string
	LogLevel    string
	Environment string
}

// Load reads configuration from environment variables and .env file (if present).
// Missing tokens are not an error: they surface on the first call that needs them.
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{
		PracticumToken:    os.Getenv("PRACTICUM_TOKEN"),
		PracticumEndpoint: getEnv("PRACTICUM_ENDPOINT", DefaultEndpoint),
		TelegramToken:     os.Getenv("TELEGRAM_TOKEN"),
		TelegramAPIURL:    os.Getenv("TELEGRAM_API_URL"),
		PollSchedule:      strings.TrimSpace(os.Getenv("POLL_SCHEDULE")),
		MetricsAddr:       os.Getenv("METRICS_ADDR"),
	}
	var err error

	chatIDStr := os.Getenv("CHAT_ID")
	if chatIDStr == "" {
		chatIDStr = os.Getenv("TELEGRAM_CHAT_ID")
	}
	if chatIDStr != "" {
		cfg.ChatID, err = strconv.ParseInt(strings.TrimSpace(chatIDStr), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid CHAT_ID: %w", err)
		}
	}

	if cfg.RetryTime, err = getDuration("RETRY_TIME", DefaultRetryTime); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", DefaultRequestTimeout); err != nil {
		return nil, err
	}

	cfg.SendRate = DefaultSendRate
	if v := os.Getenv("TELEGRAM_RATE_PER_SECOND"); v != "" {
		cfg.SendRate, err = strconv.ParseFloat(v, 64)
		if err != nil || cfg.SendRate <= 0 {
			return nil, fmt.Errorf("invalid TELEGRAM_RATE_PER_SECOND %q", v)
		}
	}

	if v := os.Getenv("STRICT_VALIDATION"); v != "" {
		cfg.StrictValidate, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid STRICT_VALIDATION: %w", err)
		}
	}

	cfg.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", "info"))
	cfg.Environment = strings.ToLower(getEnv("ENVIRONMENT", "development"))

	return cfg, nil
}

// Missing returns the names of secrets that are not set.
func (c *AppConfig) Missing() []string {
	var missing []string
	if c.PracticumToken == "" {
		missing = append(missing, "PRACTICUM_TOKEN")
	}
	if c.TelegramToken == "" {
		missing = append(missing, "TELEGRAM_TOKEN")
	}
	if c.ChatID == 0 {
		missing = append(missing, "CHAT_ID")
	}
	return missing
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// getDuration accepts Go durations ("5m") and bare seconds ("300").
func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultVal, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs <= 0 {
			return 0, fmt.Errorf("invalid %s: must be positive", key)
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}
