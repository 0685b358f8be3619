// Package config loads the carpool service settings from the environment.
//
// Every field is bound to one variable through `env` tags; unset or empty
// variables take the envDefault value. Load then normalizes case-insensitive
// values and rejects combinations the service cannot run with, such as the
// postgres driver without a DSN.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// CORSConfig lists the browser origins allowed to call the API. Empty means
// any origin.
type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// SecurityConfig controls the Strict-Transport-Security header.
type SecurityConfig struct {
	EnableHSTS bool          `env:"ENABLE_HSTS" envDefault:"false"`
	HSTSMaxAge time.Duration `env:"HSTS_MAX_AGE" envDefault:"4320h"`
}

// OTELConfig configures trace export over OTLP/gRPC.
type OTELConfig struct {
	Enabled     bool    `env:"OTEL_ENABLED" envDefault:"false"`
	Endpoint    string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4317"`
	Insecure    bool    `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"true"`
	ServiceName string  `env:"OTEL_SERVICE_NAME" envDefault:"carpool-bot"`
	SampleRatio float64 `env:"OTEL_TRACES_SAMPLER_ARG" envDefault:"1.0"`
}

// Config holds every setting of the carpool server.
type Config struct {
	Port              string        `env:"PORT" envDefault:"8080"`
	ReadTimeout       time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"10s"`
	WriteTimeout      time.Duration `env:"WRITE_TIMEOUT" envDefault:"20s"`
	IdleTimeout       time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	MaxHeaderBytes    int           `env:"MAX_HEADER_BYTES" envDefault:"1048576"`
	GinMode           string        `env:"GIN_MODE" envDefault:"release"`

	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty      bool   `env:"LOG_PRETTY" envDefault:"false"`
	SwaggerEnabled bool   `env:"SWAGGER_ENABLED" envDefault:"false"`
	APIBasePath    string `env:"API_BASE_PATH" envDefault:"/api/v1"`

	// DBDriver selects the store: "sqlite" opens DBPath, "postgres" dials DBDSN.
	DBDriver string `env:"DB_DRIVER" envDefault:"sqlite"`
	DBPath   string `env:"DB_PATH" envDefault:"carpool.db"`
	DBDSN    string `env:"DB_DSN"`

	// SummaryStyle picks the trip text markup: "markdown" or "plain".
	SummaryStyle string `env:"SUMMARY_STYLE" envDefault:"markdown"`

	// Per chat and user token bucket.
	RateRPS   float64 `env:"RATE_RPS" envDefault:"5"`
	RateBurst int     `env:"RATE_BURST" envDefault:"10"`

	// IdempotencyTTL is how long a trip-creation Idempotency-Key replays.
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`

	CORS     CORSConfig
	Security SecurityConfig
	OTEL     OTELConfig
}

// MustLoad is Load for process start-up: it panics on invalid settings.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load parses the environment into a Config, normalizes it and validates it.
// A variable that does not parse as its field type is an error.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	cfg.normalize()
	return cfg, cfg.validate()
}

func (c *Config) normalize() {
	c.GinMode = strings.ToLower(strings.TrimSpace(c.GinMode))
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		c.GinMode = "release"
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "warning" {
		c.LogLevel = "warn"
	}
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	c.SummaryStyle = strings.ToLower(strings.TrimSpace(c.SummaryStyle))
	c.APIBasePath = normalizeBasePath(c.APIBasePath)

	origins := c.CORS.AllowedOrigins[:0]
	for _, o := range c.CORS.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = nil
	}
	c.CORS.AllowedOrigins = origins
}

func (c Config) validate() error {
	switch c.DBDriver {
	case "sqlite":
		if strings.TrimSpace(c.DBPath) == "" {
			return errors.New("DB_PATH must not be empty")
		}
	case "postgres":
		if strings.TrimSpace(c.DBDSN) == "" {
			return errors.New("DB_DSN must be set when DB_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("DB_DRIVER %q is not one of: sqlite, postgres", c.DBDriver)
	}
	switch c.SummaryStyle {
	case "markdown", "plain":
	default:
		return fmt.Errorf("SUMMARY_STYLE %q is not one of: markdown, plain", c.SummaryStyle)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not one of: debug, info, warn, error, fatal, panic", c.LogLevel)
	}

	switch {
	case strings.TrimSpace(c.Port) == "":
		return errors.New("PORT must not be empty")
	case c.ReadTimeout <= 0 || c.ReadHeaderTimeout <= 0 || c.WriteTimeout <= 0 || c.IdleTimeout <= 0:
		return errors.New("server timeouts must be positive")
	case c.MaxHeaderBytes <= 0:
		return errors.New("MAX_HEADER_BYTES must be > 0")
	case c.RateRPS < 0:
		return errors.New("RATE_RPS must be >= 0")
	case c.RateBurst < 1:
		return errors.New("RATE_BURST must be >= 1")
	case c.IdempotencyTTL <= 0:
		return errors.New("IDEMPOTENCY_TTL must be > 0")
	case c.Security.HSTSMaxAge < 0:
		return errors.New("HSTS_MAX_AGE must be >= 0")
	case c.OTEL.SampleRatio < 0 || c.OTEL.SampleRatio > 1:
		return errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}
	return nil
}

// normalizeBasePath returns p with one leading slash and no trailing slash;
// an empty path becomes "/".
func normalizeBasePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	return "/" + p
}
