// Package appconfig loads and validates all service configuration in one
// place. Every env var is read here, once, at startup; clients receive their
// settings by injection and never touch the environment.
package appconfig

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Commerce Commerce
	Tracking Tracking
	WhatsApp WhatsApp
	Redis    Redis
	Summary  Summary
	HTTP     HTTP
	Debug    bool
}

type Commerce struct {
	BaseURL     string `validate:"required,url"`
	StoreID     string `validate:"required"`
	AccessToken string `validate:"required"`
	UserAgent   string `validate:"required"`
	Timeout     time.Duration
}

type Tracking struct {
	BaseURL string `validate:"required,url"`
	APIKey  string `validate:"required"`
	Timeout time.Duration
}

type WhatsApp struct {
	BaseURL       string `validate:"required,url"`
	Token         string `validate:"required"`
	ConnectionKey string `validate:"required"`
	Timeout       time.Duration
	MessageDelay  time.Duration
}

type Redis struct {
	Addr     string `validate:"required"`
	Password string
	DB       int
}

type Summary struct {
	Recipient string `validate:"required"`
	CronSpec  string `validate:"required"`
	Timezone  string `validate:"required"`
}

type HTTP struct {
	Addr string `validate:"required"`
}

// Load reads an optional .env file, then the environment, and validates the
// result. A missing .env is fine; missing required values are not.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Commerce: Commerce{
			BaseURL:     getenv("NUVEMSHOP_API_URL", "https://api.nuvemshop.com.br/v1"),
			StoreID:     os.Getenv("NUVEMSHOP_STORE_ID"),
			AccessToken: os.Getenv("NUVEMSHOP_ACCESS_TOKEN"),
			UserAgent:   getenv("NUVEMSHOP_USER_AGENT", "chatbridge (suporte@example.com)"),
			Timeout:     getduration("NUVEMSHOP_TIMEOUT", 30*time.Second),
		},
		Tracking: Tracking{
			BaseURL: getenv("TRACK17_API_URL", "https://api.17track.net"),
			APIKey:  os.Getenv("TRACK17_API_KEY"),
			Timeout: getduration("TRACK17_TIMEOUT", 30*time.Second),
		},
		WhatsApp: WhatsApp{
			BaseURL:       os.Getenv("WAPI_URL"),
			Token:         os.Getenv("WAPI_TOKEN"),
			ConnectionKey: os.Getenv("WAPI_CONNECTION_KEY"),
			Timeout:       getduration("WAPI_TIMEOUT", 15*time.Second),
			MessageDelay:  getduration("WAPI_MESSAGE_DELAY", 3*time.Second),
		},
		Redis: Redis{
			Addr:     getenv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getint("REDIS_DB", 0),
		},
		Summary: Summary{
			Recipient: os.Getenv("TECHNICAL_DEPT_NUMBER"),
			CronSpec:  getenv("SUMMARY_CRON", "0 20 * * *"),
			Timezone:  getenv("SUMMARY_TIMEZONE", "America/Sao_Paulo"),
		},
		HTTP: HTTP{
			Addr: getenv("HTTP_ADDR", ":8080"),
		},
		Debug: getbool("DEBUG", false),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getenv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func getint(name string, fallback int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getbool(name string, fallback bool) bool {
	if v := os.Getenv(name); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getduration(name string, fallback time.Duration) time.Duration {
	if v := os.Getenv(name); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
