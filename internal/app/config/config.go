package config

import (
	"log/slog"
	"time"
)

type LogLeveler string

func (l LogLeveler) Level() slog.Level {
	var level slog.Level

	_ = level.UnmarshalText([]byte(l))

	return level
}

// Config holds the server configuration.
type Config struct {
	LogLevel  LogLeveler `mapstructure:"LOG_LEVEL"`
	HTTP      HTTP       `mapstructure:",squash"`
	Mongo     Mongo      `mapstructure:",squash"`
	Redis     Redis      `mapstructure:",squash"`
	Providers Provider   `mapstructure:",squash"`
	Rates     Rates      `mapstructure:",squash"`
}

type HTTP struct {
	Port    int           `mapstructure:"HTTP_PORT"`
	Timeout time.Duration `mapstructure:"HTTP_TIMEOUT"`
}

type Mongo struct {
	URI      string `mapstructure:"MONGO_URI"`
	Database string `mapstructure:"MONGO_DATABASE"`
}

type Redis struct {
	Addr     string `mapstructure:"REDIS_ADDR"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

type SiteCityProvider struct {
	SearchAPIURL string        `mapstructure:"SITECITY_PROVIDER_SEARCH_API_URL"`
	Timeout      time.Duration `mapstructure:"SITECITY_PROVIDER_TIMEOUT"`
	RateLimitRPS int           `mapstructure:"SITECITY_PROVIDER_RATE_LIMIT"`
}

type SabreProvider struct {
	SearchAPIURL string        `mapstructure:"SABRE_PROVIDER_SEARCH_API_URL"`
	Timeout      time.Duration `mapstructure:"SABRE_PROVIDER_TIMEOUT"`
	RateLimitRPS int           `mapstructure:"SABRE_PROVIDER_RATE_LIMIT"`
}

// Provider holds the per-upstream transport configuration. Search
// criteria are fixed by contract, so each provider needs only its
// endpoint and limits.
type Provider struct {
	SiteCityProvider SiteCityProvider `mapstructure:",squash"`
	SabreProvider    SabreProvider    `mapstructure:",squash"`
	ResultCacheTTL   time.Duration    `mapstructure:"RESULT_CACHE_TTL"`
}

// Rates configures the exchange rate feed refresher.
type Rates struct {
	FeedURL         string        `mapstructure:"RATES_FEED_URL"`
	RefreshInterval time.Duration `mapstructure:"RATES_REFRESH_INTERVAL"`
}
