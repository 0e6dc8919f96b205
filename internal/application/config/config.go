package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultFetchTimeout = 15 * time.Second

type AppConfig struct {
	LogLevel        string
	DebugMode       bool
	MetricsHost     string
	FetchTimeout    time.Duration
	AnthropicAPIKey string
	APISecret       string
}

func NewAppConfig() (*AppConfig, error) {
	err := godotenv.Load(`config.env`)
	if err != nil {
		return nil, err
	}

	cfg := AppConfig{}
	cfg.LogLevel = os.Getenv("APP_LOG_LEVEL")
	cfg.DebugMode = os.Getenv("APP_ENABLE_DEBUG") == "true"
	cfg.MetricsHost = os.Getenv("HTTP_APP_METRICS_HOST")
	cfg.AnthropicAPIKey = os.Getenv("ANTHROPIC_API_KEY")
	cfg.APISecret = os.Getenv("API_SECRET_KEY")

	cfg.FetchTimeout = defaultFetchTimeout
	if raw := os.Getenv("FETCH_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf(`invalid fetch timeout: %w`, err)
		}
		cfg.FetchTimeout = timeout
	}

	err = validate(&cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *AppConfig) error {
	var errMsg []string
	if cfg.LogLevel == "" {
		errMsg = append(errMsg, `log level is empty`)
	}

	if cfg.MetricsHost == "" {
		errMsg = append(errMsg, `metrics host is empty`)
	}

	if len(errMsg) != 0 {
		return fmt.Errorf(`validation failed: %s`, strings.Join(errMsg, "\n"))
	}
	return nil
}
