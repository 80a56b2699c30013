package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/api", cfg.Gateway.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Equal(t, "admin", cfg.Admin.Password)
	assert.False(t, cfg.IsProduction())
}

func TestLoadYAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "config.yaml")
	yml := `
env: production
gateway:
  base_url: http://api.internal:3000/api
  timeout: 1500ms
admin:
  username: sekretariat
oauth:
  allowed_emails: [a@pbvsi-sulut.id]
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GEMINI_MODEL=from-dotenv\n"), 0o600))

	t.Setenv("API_TIMEOUT", "750ms")
	t.Setenv("ADMIN_EMAILS", "x@pbvsi-sulut.id, y@pbvsi-sulut.id")
	// godotenv does not override variables that are already set.
	t.Setenv("GEMINI_MODEL", "")
	os.Unsetenv("GEMINI_MODEL")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "http://api.internal:3000/api", cfg.Gateway.BaseURL)
	assert.Equal(t, 750*time.Millisecond, cfg.Gateway.Timeout)
	assert.Equal(t, "sekretariat", cfg.Admin.Username)
	assert.Equal(t, "admin", cfg.Admin.Password, "unset keys keep their defaults")
	assert.Equal(t, []string{"x@pbvsi-sulut.id", "y@pbvsi-sulut.id"}, cfg.OAuth.AllowedEmails)
	assert.Equal(t, "from-dotenv", cfg.Assistant.Model)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("API_TIMEOUT", "soon")

	_, err := Load("")
	assert.ErrorContains(t, err, "API_TIMEOUT")
}

func TestLoadRejectsBadYAML(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gateway: [unclosed"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoggerFormatFollowsEnv(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	cfg := Default()
	cfg.Env = "production"
	cfg.newLogger(&buf).Info("hello", "k", "v")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])

	buf.Reset()
	cfg.Env = "development"
	cfg.newLogger(&buf).Debug("dev")
	assert.Contains(t, buf.String(), "msg=dev")
}
