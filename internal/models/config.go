// Package models - service configuration.
//
// Hierarchical configuration with logical grouping (server, storage,
// security, notify, logging, metrics). Defaults work out of the box for a
// single-instance deployment; everything can be overridden from a YAML file
// or the environment. Secrets are only ever logged as presence flags.
package models

import (
	"errors"
	"fmt"
	"time"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypePostgres = "postgres"
	StorageTypeSQLite   = "sqlite"
)

// Config is the root configuration structure containing all service settings.
type Config struct {
	Server        ServerConfig        `yaml:"server" json:"server"`
	Storage       StorageConfig       `yaml:"storage" json:"storage"`
	Security      SecurityConfig      `yaml:"security" json:"security"`
	Notify        NotifyConfig        `yaml:"notify" json:"notify"`
	Logging       LoggingConfig       `yaml:"logging" json:"logging"`
	Metrics       MetricsConfig       `yaml:"metrics" json:"metrics"`
	Observability ObservabilityConfig `yaml:"observability" json:"observability"`
}

type ServerConfig struct {
	Port         int           `yaml:"port" json:"port"`
	Host         string        `yaml:"host" json:"host"`
	ReadTimeout  time.Duration `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" json:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" json:"idle_timeout"`
	// SiteURL is the public origin of the landing page; it is the only
	// origin allowed by CORS and the link target in notification emails.
	SiteURL string     `yaml:"site_url" json:"site_url"`
	CORS    CORSConfig `yaml:"cors" json:"cors"`
}

type CORSConfig struct {
	Enabled        bool     `yaml:"enabled" json:"enabled"`
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods" json:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers" json:"allowed_headers"`
	MaxAge         int      `yaml:"max_age" json:"max_age"`
}

type StorageConfig struct {
	Type     string         `yaml:"type" json:"type"`
	Database DatabaseConfig `yaml:"database" json:"database"`
}

type DatabaseConfig struct {
	DSN          string `yaml:"dsn" json:"dsn"`
	MaxOpenConns int    `yaml:"max_open_conns" json:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns" json:"max_idle_conns"`
}

type SecurityConfig struct {
	// AdminExportSecret gates GET /api/v1/waitlist/export. Empty means the
	// export endpoint is unusable (500, never an open door).
	AdminExportSecret string `yaml:"admin_export_secret" json:"admin_export_secret"`

	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`

	// ExportCooldown is the single-slot interval between exports, shared
	// process-wide and independent of the per-client limiter.
	ExportCooldown time.Duration `yaml:"export_cooldown" json:"export_cooldown"`
}

type RateLimitConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
	// Window and MaxHits define the fixed counting window applied per
	// client key by the API middleware.
	Window          time.Duration `yaml:"window" json:"window"`
	MaxHits         int           `yaml:"max_hits" json:"max_hits"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" json:"cleanup_interval"`
}

type NotifyConfig struct {
	SMTPHost string `yaml:"smtp_host" json:"smtp_host"`
	SMTPPort int    `yaml:"smtp_port" json:"smtp_port"`
	SMTPUser string `yaml:"smtp_user" json:"smtp_user"`
	SMTPPass string `yaml:"smtp_pass" json:"smtp_pass"`
	From     string `yaml:"from" json:"from"`
	// QueueSize bounds the in-process dispatch queue; enqueue never blocks
	// the submission path, overflow is dropped and logged.
	QueueSize int `yaml:"queue_size" json:"queue_size"`
	// MinFillTime is the minimum believable form dwell time; faster
	// submissions are treated as automated.
	MinFillTime time.Duration `yaml:"min_fill_time" json:"min_fill_time"`
}

// Configured reports whether every SMTP setting needed to send is present.
func (n NotifyConfig) Configured() bool {
	return n.SMTPHost != "" && n.SMTPPort != 0 && n.SMTPUser != "" && n.SMTPPass != "" && n.From != ""
}

type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
	Output string `yaml:"output" json:"output"` // stdout or stderr
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Path    string `yaml:"path" json:"path"`
	Port    int    `yaml:"port" json:"port"`
}

type ObservabilityConfig struct {
	ServiceName string        `yaml:"service_name" json:"service_name"`
	Tracing     TracingConfig `yaml:"tracing" json:"tracing"`
}

type TracingConfig struct {
	Enabled      bool    `yaml:"enabled" json:"enabled"`
	Exporter     string  `yaml:"exporter" json:"exporter"` // stdout or otlp
	OTLPEndpoint string  `yaml:"otlp_endpoint" json:"otlp_endpoint"`
	SampleRate   float64 `yaml:"sample_rate" json:"sample_rate"`
}

// NewDefaultConfig creates a configuration with single-instance defaults:
// in-memory storage, rate limiting on (20 hits per 10s window, matching the
// public form's traffic profile), metrics on a side port, JSON logs.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         8080,
			Host:         "0.0.0.0",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
			CORS: CORSConfig{
				Enabled:        true,
				AllowedOrigins: []string{"*"},
				AllowedMethods: []string{"GET", "POST", "OPTIONS"},
				AllowedHeaders: []string{"Content-Type", "X-Admin-Token"},
				MaxAge:         86400,
			},
		},
		Storage: StorageConfig{
			Type: StorageTypeMemory,
			Database: DatabaseConfig{
				MaxOpenConns: 10,
				MaxIdleConns: 2,
			},
		},
		Security: SecurityConfig{
			RateLimit: RateLimitConfig{
				Enabled:         true,
				Window:          10 * time.Second,
				MaxHits:         20,
				CleanupInterval: 5 * time.Minute,
			},
			ExportCooldown: 5 * time.Second,
		},
		Notify: NotifyConfig{
			SMTPPort:    587,
			QueueSize:   128,
			MinFillTime: 1500 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
			Port:    9090,
		},
		Observability: ObservabilityConfig{
			ServiceName: "waitlist",
			Tracing: TracingConfig{
				Enabled:    false,
				Exporter:   "stdout",
				SampleRate: 1.0,
			},
		},
	}
}

// Validate checks the final configuration for contradictions that would only
// surface at request time otherwise.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Storage.Type {
	case StorageTypeMemory:
	case StorageTypePostgres, StorageTypeSQLite:
		if c.Storage.Database.DSN == "" {
			return fmt.Errorf("database DSN is required for %s storage", c.Storage.Type)
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", c.Storage.Type)
	}

	if c.Security.RateLimit.Enabled {
		if c.Security.RateLimit.Window <= 0 {
			return errors.New("rate limit window must be positive")
		}
		if c.Security.RateLimit.MaxHits < 1 {
			return errors.New("rate limit max_hits must be at least 1")
		}
	}

	if c.Security.ExportCooldown < 0 {
		return errors.New("export cooldown cannot be negative")
	}

	if c.Notify.MinFillTime < 0 {
		return errors.New("min fill time cannot be negative")
	}

	if c.Metrics.Enabled && c.Metrics.Port == c.Server.Port {
		return errors.New("metrics port must differ from server port")
	}

	return nil
}
