package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"waitlist/internal/models"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from an optional YAML file and environment
// variables. Precedence: defaults < file < environment.
func Load(configPath string) (*models.Config, error) {
	config := models.NewDefaultConfig()

	if configPath != "" {
		if err := loadFromFile(config, configPath); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	loadFromEnvironment(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(config *models.Config, filePath string) error {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return fmt.Errorf("config file not found: %s", filePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}
	return nil
}

// loadFromEnvironment loads configuration from environment variables.
//
// The domain variables (DATABASE_URL, SMTP_*, EMAIL_FROM, ADMIN_EXPORT_SECRET,
// SITE_URL, RATE_LIMIT_WINDOW_MS, RATE_LIMIT_MAX) keep the names the deployed
// infrastructure already provides; do not rename them. Service-level knobs use
// the WAITLIST_ prefix.
func loadFromEnvironment(config *models.Config) {
	// Server configuration
	if port := os.Getenv("WAITLIST_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if host := os.Getenv("WAITLIST_HOST"); host != "" {
		config.Server.Host = host
	}

	if timeout := os.Getenv("WAITLIST_READ_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			config.Server.ReadTimeout = d
		}
	}

	if timeout := os.Getenv("WAITLIST_WRITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			config.Server.WriteTimeout = d
		}
	}

	if timeout := os.Getenv("WAITLIST_IDLE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			config.Server.IdleTimeout = d
		}
	}

	if origin := os.Getenv("SITE_URL"); origin != "" {
		config.Server.SiteURL = origin
		// The public site is the only browser client; scope CORS to it.
		config.Server.CORS.AllowedOrigins = []string{origin}
	}

	// Storage configuration
	if storageType := os.Getenv("WAITLIST_STORAGE_TYPE"); storageType != "" {
		config.Storage.Type = storageType
	}

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		config.Storage.Database.DSN = dsn
		// A DSN from the environment implies a real database; only switch
		// the backend if the operator hasn't picked one explicitly.
		if os.Getenv("WAITLIST_STORAGE_TYPE") == "" && config.Storage.Type == models.StorageTypeMemory {
			config.Storage.Type = models.StorageTypePostgres
		}
	}

	if maxOpen := os.Getenv("WAITLIST_DATABASE_MAX_OPEN_CONNS"); maxOpen != "" {
		if conns, err := strconv.Atoi(maxOpen); err == nil {
			config.Storage.Database.MaxOpenConns = conns
		}
	}

	if maxIdle := os.Getenv("WAITLIST_DATABASE_MAX_IDLE_CONNS"); maxIdle != "" {
		if conns, err := strconv.Atoi(maxIdle); err == nil {
			config.Storage.Database.MaxIdleConns = conns
		}
	}

	// Security configuration
	if secret := os.Getenv("ADMIN_EXPORT_SECRET"); secret != "" {
		config.Security.AdminExportSecret = secret
	}

	if window := os.Getenv("RATE_LIMIT_WINDOW_MS"); window != "" {
		if ms, err := strconv.Atoi(window); err == nil && ms > 0 {
			config.Security.RateLimit.Window = time.Duration(ms) * time.Millisecond
		}
	}

	if max := os.Getenv("RATE_LIMIT_MAX"); max != "" {
		if n, err := strconv.Atoi(max); err == nil && n > 0 {
			config.Security.RateLimit.MaxHits = n
		}
	}

	if enabled := os.Getenv("WAITLIST_RATE_LIMIT_ENABLED"); enabled != "" {
		config.Security.RateLimit.Enabled = strings.ToLower(enabled) == "true"
	}

	if cooldown := os.Getenv("WAITLIST_EXPORT_COOLDOWN"); cooldown != "" {
		if d, err := time.ParseDuration(cooldown); err == nil {
			config.Security.ExportCooldown = d
		}
	}

	// Notification configuration
	if host := os.Getenv("SMTP_HOST"); host != "" {
		config.Notify.SMTPHost = host
	}

	if port := os.Getenv("SMTP_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Notify.SMTPPort = p
		}
	}

	if user := os.Getenv("SMTP_USER"); user != "" {
		config.Notify.SMTPUser = user
	}

	if pass := os.Getenv("SMTP_PASS"); pass != "" {
		config.Notify.SMTPPass = pass
	}

	if from := os.Getenv("EMAIL_FROM"); from != "" {
		config.Notify.From = from
	}

	if minFill := os.Getenv("WAITLIST_MIN_FILL_MS"); minFill != "" {
		if ms, err := strconv.Atoi(minFill); err == nil && ms >= 0 {
			config.Notify.MinFillTime = time.Duration(ms) * time.Millisecond
		}
	}

	// Logging configuration
	if level := os.Getenv("WAITLIST_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if format := os.Getenv("WAITLIST_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}

	if output := os.Getenv("WAITLIST_LOG_OUTPUT"); output != "" {
		config.Logging.Output = output
	}

	// Metrics configuration
	if metrics := os.Getenv("WAITLIST_METRICS_ENABLED"); metrics != "" {
		config.Metrics.Enabled = strings.ToLower(metrics) == "true"
	}

	if path := os.Getenv("WAITLIST_METRICS_PATH"); path != "" {
		config.Metrics.Path = path
	}

	if port := os.Getenv("WAITLIST_METRICS_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Metrics.Port = p
		}
	}

	// Tracing configuration
	if tracing := os.Getenv("WAITLIST_TRACING_ENABLED"); tracing != "" {
		config.Observability.Tracing.Enabled = strings.ToLower(tracing) == "true"
	}

	if exporter := os.Getenv("WAITLIST_TRACING_EXPORTER"); exporter != "" {
		config.Observability.Tracing.Exporter = exporter
	}

	if endpoint := os.Getenv("WAITLIST_OTLP_ENDPOINT"); endpoint != "" {
		config.Observability.Tracing.OTLPEndpoint = endpoint
	}
}
