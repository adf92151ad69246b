package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.True(t, strings.HasSuffix(c.DatabasePath, "wordbook.db"))
	assert.Equal(t, "info", c.LogLevel)
	assert.True(t, strings.HasSuffix(c.BackupDir, "backups"))
	assert.Equal(t, "gemini-2.0-flash", c.GeminiModel)
	assert.Equal(t, 10, c.EnrichMaxRequests)
	assert.Equal(t, time.Minute, c.EnrichWindow)
	assert.Equal(t, 2, c.EnrichConcurrency)
	assert.Equal(t, "us-east-1", c.S3.Region)
	assert.NoError(t, c.Validate())
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	assert.Equal(t, want.EnrichWindow, cfg.EnrichWindow)
	assert.Equal(t, want.EnrichMaxRequests, cfg.EnrichMaxRequests)
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeFile(t, "wordbook.json", `{
  "database_path": "/tmp/wb.db",
  "log_level": "debug",
  "enrich_window": "90s",
  "enrich_max_requests": 5,
  "s3": {"bucket": "backups", "endpoint": "http://127.0.0.1:9000"}
}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/wb.db", cfg.DatabasePath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 90*time.Second, cfg.EnrichWindow)
	assert.Equal(t, 5, cfg.EnrichMaxRequests)
	assert.Equal(t, "backups", cfg.S3.Bucket)
	assert.Equal(t, "http://127.0.0.1:9000", cfg.S3.Endpoint)
	assert.Equal(t, "us-east-1", cfg.S3.Region, "keys missing from the file keep their defaults")
	assert.Equal(t, 2, cfg.EnrichConcurrency)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeFile(t, "wordbook.yaml", `
database_path: /data/wb.db
enrich_window: 2m
enrich_concurrency: 4
gemini_model: gemini-2.5-flash
s3:
  bucket: vocab
  prefix: team
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/wb.db", cfg.DatabasePath)
	assert.Equal(t, 2*time.Minute, cfg.EnrichWindow)
	assert.Equal(t, 4, cfg.EnrichConcurrency)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, "vocab", cfg.S3.Bucket)
	assert.Equal(t, "team", cfg.S3.Prefix)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "wordbook.yml", "database_path: /from/file.db\nlog_level: warn\n")
	t.Setenv("WORDBOOK_DB", "/from/env.db")
	t.Setenv("GEMINI_API_KEY", "key-123")
	t.Setenv("WORDBOOK_ENRICH_WINDOW", "30s")
	t.Setenv("WORDBOOK_S3_BUCKET", "env-bucket")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env.db", cfg.DatabasePath)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "key-123", cfg.GeminiAPIKey)
	assert.Equal(t, 30*time.Second, cfg.EnrichWindow)
	assert.Equal(t, "env-bucket", cfg.S3.Bucket)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{"unknown extension", "wordbook.toml", "x = 1"},
		{"bad json", "wordbook.json", "{"},
		{"bad yaml duration", "wordbook.yaml", "enrich_window: soon"},
		{"invalid value", "wordbook.json", `{"enrich_concurrency": 0}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.body))
			require.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	var c Config
	c.LoadDefaults()

	bad := c
	bad.DatabasePath = ""
	assert.Error(t, bad.Validate())

	bad = c
	bad.EnrichMaxRequests = 0
	assert.Error(t, bad.Validate())

	bad = c
	bad.EnrichWindow = 0
	assert.Error(t, bad.Validate())
}
