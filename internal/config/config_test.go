package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[app]
env = "production"

[server]
http_port = 9090

[database]
host = "db"
port = 5433
user = "rides"
password = "secret"
dbname = "rides"

[auth]
jwt_secret = "file-secret"

[booking]
restore_seats_on_cancel = false
notification_timeout = 3

[rate_limit]
enabled = true
requests = 4
window_seconds = 30
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	// .env ищется в рабочей директории
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	return path
}

func TestLoadFileOverDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.False(t, cfg.Booking.RestoreSeatsOnCancel)
	assert.Equal(t, 3, cfg.Booking.NotificationTimeout)
	assert.Equal(t, 4, cfg.RateLimit.Requests)
	assert.Equal(t, NotificationModeInline, cfg.Notification.Mode)
	assert.Equal(t, "host=db port=5433 user=rides password=secret dbname=rides sslmode=disable", cfg.Database.DSN())
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, sampleConfig)

	t.Setenv("RIDESHARE_DATABASE_HOST", "pg.internal")
	t.Setenv("RIDESHARE_AUTH_JWT_SECRET", "env-secret")
	t.Setenv("RIDESHARE_SERVER_HTTP_PORT", "7070")
	t.Setenv("RIDESHARE_RATE_LIMIT_REQUESTS", "12")
	t.Setenv("RIDESHARE_BOOKING_RESTORE_SEATS_ON_CANCEL", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "pg.internal", cfg.Database.Host)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 7070, cfg.Server.HTTPPort)
	assert.Equal(t, 12, cfg.RateLimit.Requests)
	assert.True(t, cfg.Booking.RestoreSeatsOnCancel)
}

func TestLoadDotEnv(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	require.NoError(t, os.WriteFile(".env", []byte("RIDESHARE_LOGS_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("RIDESHARE_LOGS_LEVEL") })

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logs.Level)
}

func TestLoadMissingFile(t *testing.T) {
	writeConfig(t, sampleConfig)

	_, err := Load("does-not-exist.toml")
	assert.ErrorIs(t, err, ErrReadConfig)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Database.DBName = "rides"
		cfg.Auth.JWTSecret = "secret"
		return cfg
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "no secret", mutate: func(c *Config) { c.Auth.JWTSecret = "" }},
		{name: "bad port", mutate: func(c *Config) { c.Server.HTTPPort = 70000 }},
		{name: "async without redis", mutate: func(c *Config) { c.Notification.Mode = NotificationModeAsync }},
		{name: "unknown mode", mutate: func(c *Config) { c.Notification.Mode = "carrier-pigeon" }},
		{name: "lock without redis", mutate: func(c *Config) { c.Lock.Enabled = true }},
		{name: "zero rate limit", mutate: func(c *Config) { c.RateLimit.Enabled = true; c.RateLimit.Requests = 0 }},
		{name: "smtp without host", mutate: func(c *Config) { c.SMTP.Enabled = true }},
		{name: "zero notification timeout", mutate: func(c *Config) { c.Booking.NotificationTimeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
