package config

import (
	"strings"

	"github.com/caarlos0/env/v11"
	appenv "github.com/donut/jw-webhooks/internal/env"
	xredis "github.com/donut/jw-webhooks/internal/redis"
)

type Config struct {
	Port         string             `env:"PORT" envDefault:"8080"`
	Env          appenv.Environment `env:"ENV" envDefault:"development"`
	BaseURL      string             `env:"BASE_URL,required"`
	ReceivePath  string             `env:"RECEIVE_PATH" envDefault:"/webhooks/jw/receive"`
	AdminAPIKey  string             `env:"ADMIN_API_KEY"`
	MaxBodyBytes int64              `env:"MAX_BODY_BYTES" envDefault:"1048576"`
	JW           JW                 `envPrefix:"JW_"`
	Database     Database           `envPrefix:"DB_"`
	Redis        xredis.Config      `envPrefix:"REDIS_"`
	RateLimit    RateLimit          `envPrefix:"RATE_"`
}

type JW struct {
	APISecret   string   `env:"API_SECRET,required"`
	SiteID      string   `env:"SITE_ID,required"`
	WebhookName string   `env:"WEBHOOK_NAME" envDefault:"jw-webhooks"`
	Events      []string `env:"EVENTS" envDefault:"media_available,media_updated,media_deleted"`
	SyncOnStart bool     `env:"SYNC_ON_START" envDefault:"true"`
}

type Database struct {
	// Driver selects the hook store backend: sqlite, postgres or memory.
	Driver string `env:"DRIVER" envDefault:"sqlite"`
	URL    string `env:"URL"`
	Path   string `env:"PATH" envDefault:"jw_webhooks.db"`
}

type RateLimit struct {
	Limit float64 `env:"LIMIT" envDefault:"10"`
	Burst int     `env:"BURST" envDefault:"20"`
}

// ReceiveURL is the absolute URL the platform publishes webhook requests to.
func (c Config) ReceiveURL() string {
	return strings.TrimSuffix(c.BaseURL, "/") + c.ReceivePath
}

func Read() (Config, error) {
	return env.ParseAs[Config]()
}
