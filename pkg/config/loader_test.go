package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "smtp", cfg.Mail.Mailer)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.False(t, cfg.Mail.ImplicitTLS())
	assert.Equal(t, "sync", cfg.Queue.Connection)
	assert.Equal(t, 1, cfg.Queue.MaxTries)
	assert.Zero(t, cfg.Mail.Timeout)
}

func TestLoad_Environment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("SMTP_USER", "shop@example.com")
	t.Setenv("SMTP_PASS", "secret")
	t.Setenv("SMTP_FROM_EMAIL", "shop@example.com")
	t.Setenv("SMTP_FROM_NAME", "Femi9outfit")
	t.Setenv("SMTP_TIMEOUT", "30s")
	t.Setenv("MEMCACHED_SERVERS", "10.0.0.1:11211,10.0.0.2:11211")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com", cfg.Mail.Host)
	assert.Equal(t, 465, cfg.Mail.Port)
	assert.True(t, cfg.Mail.ImplicitTLS())
	assert.Equal(t, "Femi9outfit", cfg.Mail.FromName)
	assert.Equal(t, 30*time.Second, cfg.Mail.Timeout)
	assert.Equal(t, []string{"10.0.0.1:11211", "10.0.0.2:11211"}, cfg.Cache.MemcachedServers)
}

func TestLoad_SecureFlag(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SMTP_SECURE", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Mail.ImplicitTLS())
	assert.Equal(t, 587, cfg.Mail.Port)
}

func TestLoadFile_EnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.yaml")
	yaml := `
mail:
  mailer: log
  host: file.example.com
  from_address: file@example.com
queue:
  connection: redis
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("SMTP_HOST", "env.example.com")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "log", cfg.Mail.Mailer)
	assert.Equal(t, "env.example.com", cfg.Mail.Host)
	assert.Equal(t, "file@example.com", cfg.Mail.FromAddress)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.Equal(t, "redis", cfg.Queue.Connection)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
