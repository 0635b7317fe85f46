package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	"waitlist/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WithValidConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "test_config.yaml")

	configContent := `
server:
  port: 8081
  host: "localhost"
  read_timeout: 10s
  write_timeout: 10s
  idle_timeout: 90s
  site_url: "https://example.com"

storage:
  type: "sqlite"
  database:
    dsn: "./data/waitlist.db"

security:
  admin_export_secret: "file-secret"
  export_cooldown: 3s
  rate_limit:
    enabled: true
    window: 10s
    max_hits: 20
    cleanup_interval: 300s

notify:
  smtp_host: "smtp.example.com"
  smtp_port: 587
  smtp_user: "mailer"
  smtp_pass: "hunter2"
  from: "Waitlist <no-reply@example.com>"
  min_fill_time: 1500ms

logging:
  level: "debug"
  format: "json"
  output: "stdout"

metrics:
  enabled: true
  path: "/metrics"
  port: 9091
`

	err := os.WriteFile(configFile, []byte(configContent), 0644)
	require.NoError(t, err)

	config, err := Load(configFile)
	require.NoError(t, err)

	assert.Equal(t, 8081, config.Server.Port)
	assert.Equal(t, "localhost", config.Server.Host)
	assert.Equal(t, 10*time.Second, config.Server.ReadTimeout)
	assert.Equal(t, "https://example.com", config.Server.SiteURL)

	assert.Equal(t, models.StorageTypeSQLite, config.Storage.Type)
	assert.Equal(t, "./data/waitlist.db", config.Storage.Database.DSN)

	assert.Equal(t, "file-secret", config.Security.AdminExportSecret)
	assert.Equal(t, 3*time.Second, config.Security.ExportCooldown)
	assert.True(t, config.Security.RateLimit.Enabled)
	assert.Equal(t, 10*time.Second, config.Security.RateLimit.Window)
	assert.Equal(t, 20, config.Security.RateLimit.MaxHits)

	assert.True(t, config.Notify.Configured())
	assert.Equal(t, 1500*time.Millisecond, config.Notify.MinFillTime)

	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, 9091, config.Metrics.Port)
}

func TestLoad_WithMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	config, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, models.StorageTypeMemory, config.Storage.Type)
	assert.True(t, config.Security.RateLimit.Enabled)
	assert.Equal(t, 10*time.Second, config.Security.RateLimit.Window)
	assert.Equal(t, 20, config.Security.RateLimit.MaxHits)
	assert.Equal(t, 5*time.Second, config.Security.ExportCooldown)
	assert.Equal(t, 1500*time.Millisecond, config.Notify.MinFillTime)
	assert.False(t, config.Notify.Configured())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("WAITLIST_PORT", "9000")
	t.Setenv("RATE_LIMIT_WINDOW_MS", "10000")
	t.Setenv("RATE_LIMIT_MAX", "8")
	t.Setenv("ADMIN_EXPORT_SECRET", "env-secret")
	t.Setenv("SMTP_HOST", "mail.internal")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SMTP_USER", "robot")
	t.Setenv("SMTP_PASS", "pw")
	t.Setenv("EMAIL_FROM", "no-reply@internal")
	t.Setenv("SITE_URL", "https://landing.example.com")

	config, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9000, config.Server.Port)
	assert.Equal(t, 10*time.Second, config.Security.RateLimit.Window)
	assert.Equal(t, 8, config.Security.RateLimit.MaxHits)
	assert.Equal(t, "env-secret", config.Security.AdminExportSecret)
	assert.True(t, config.Notify.Configured())
	assert.Equal(t, 2525, config.Notify.SMTPPort)
	assert.Equal(t, "https://landing.example.com", config.Server.SiteURL)
	assert.Equal(t, []string{"https://landing.example.com"}, config.Server.CORS.AllowedOrigins)
}

func TestLoad_DatabaseURLSwitchesBackend(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://waitlist:pw@db:5432/waitlist")

	config, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, models.StorageTypePostgres, config.Storage.Type)
	assert.Equal(t, "postgres://waitlist:pw@db:5432/waitlist", config.Storage.Database.DSN)
}

func TestLoad_InvalidConfiguration(t *testing.T) {
	t.Setenv("WAITLIST_STORAGE_TYPE", "postgres")
	// No DATABASE_URL: postgres without a DSN must be rejected at load time.
	_, err := Load("")
	assert.Error(t, err)
}

func TestValidate_RateLimitBounds(t *testing.T) {
	config := models.NewDefaultConfig()
	config.Security.RateLimit.MaxHits = 0
	assert.Error(t, config.Validate())

	config = models.NewDefaultConfig()
	config.Security.RateLimit.Window = 0
	assert.Error(t, config.Validate())

	config = models.NewDefaultConfig()
	config.Security.RateLimit.Enabled = false
	config.Security.RateLimit.Window = 0
	assert.NoError(t, config.Validate())
}
