package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const appDir = "wordbook"

// S3Config locates the bucket used by "export --s3" and "import --s3".
type S3Config struct {
	Bucket    string `env:"WORDBOOK_S3_BUCKET"`
	Region    string `env:"WORDBOOK_S3_REGION"`
	Endpoint  string `env:"WORDBOOK_S3_ENDPOINT"`
	AccessKey string `env:"WORDBOOK_S3_ACCESS_KEY"`
	SecretKey string `env:"WORDBOOK_S3_SECRET_KEY"`
	Prefix    string `env:"WORDBOOK_S3_PREFIX"`
}

// Config holds runtime settings for the wordbook CLI.
//
// Fields:
//   - DatabasePath: SQLite file holding the vault slot.
//   - LogLevel: debug, info, warn or error.
//   - BackupDir: where local backups are written and read.
//   - GeminiAPIKey / GeminiModel: AI enrichment credentials and model.
//   - EnrichMaxRequests / EnrichWindow: enrichment rate limit.
//   - EnrichConcurrency: parallel requests when enriching a whole set.
type Config struct {
	DatabasePath string `env:"WORDBOOK_DB"`
	LogLevel     string `env:"WORDBOOK_LOG_LEVEL"`
	BackupDir    string `env:"WORDBOOK_BACKUP_DIR"`

	GeminiAPIKey      string        `env:"GEMINI_API_KEY"`
	GeminiModel       string        `env:"WORDBOOK_GEMINI_MODEL"`
	EnrichMaxRequests int           `env:"WORDBOOK_ENRICH_MAX_REQUESTS"`
	EnrichWindow      time.Duration `env:"WORDBOOK_ENRICH_WINDOW"`
	EnrichConcurrency int           `env:"WORDBOOK_ENRICH_CONCURRENCY"`

	S3 S3Config
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	dir := dataDir()
	c.DatabasePath = filepath.Join(dir, "wordbook.db")
	c.LogLevel = "info"
	c.BackupDir = filepath.Join(dir, "backups")
	c.GeminiModel = "gemini-2.0-flash"
	c.EnrichMaxRequests = 10
	c.EnrichWindow = time.Minute
	c.EnrichConcurrency = 2
	c.S3.Region = "us-east-1"
	c.S3.Prefix = "wordbook"
}

// Validate rejects settings the application cannot run with.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("database path is empty")
	}
	if c.EnrichMaxRequests < 1 {
		return fmt.Errorf("enrich max requests must be positive, got %d", c.EnrichMaxRequests)
	}
	if c.EnrichWindow <= 0 {
		return fmt.Errorf("enrich window must be positive, got %s", c.EnrichWindow)
	}
	if c.EnrichConcurrency < 1 {
		return fmt.Errorf("enrich concurrency must be positive, got %d", c.EnrichConcurrency)
	}
	return nil
}

// Load builds a Config from defaults, the file at path (skipped when path
// is empty) and the environment.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path != "" {
		if err := parseFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func dataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appDir)
	}
	return "." + appDir
}
