package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/wordbook/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for file unmarshalling. It relies on
// timex.Duration so the enrichment window can be written as "90s" or as
// integer nanoseconds. Only keys present in the file override the Config.
type FileConfig struct {
	DatabasePath *string `json:"database_path" yaml:"database_path"`
	LogLevel     *string `json:"log_level" yaml:"log_level"`
	BackupDir    *string `json:"backup_dir" yaml:"backup_dir"`

	GeminiAPIKey      *string         `json:"gemini_api_key" yaml:"gemini_api_key"`
	GeminiModel       *string         `json:"gemini_model" yaml:"gemini_model"`
	EnrichMaxRequests *int            `json:"enrich_max_requests" yaml:"enrich_max_requests"`
	EnrichWindow      *timex.Duration `json:"enrich_window" yaml:"enrich_window"`
	EnrichConcurrency *int            `json:"enrich_concurrency" yaml:"enrich_concurrency"`

	S3 *FileS3Config `json:"s3" yaml:"s3"`
}

type FileS3Config struct {
	Bucket    *string `json:"bucket" yaml:"bucket"`
	Region    *string `json:"region" yaml:"region"`
	Endpoint  *string `json:"endpoint" yaml:"endpoint"`
	AccessKey *string `json:"access_key" yaml:"access_key"`
	SecretKey *string `json:"secret_key" yaml:"secret_key"`
	Prefix    *string `json:"prefix" yaml:"prefix"`
}

// parseFile overlays cfg with the file at path. The format is chosen by the
// file extension.
func parseFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc FileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &fc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		return fmt.Errorf("unsupported config file type %q", ext)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	set(&cfg.DatabasePath, fc.DatabasePath)
	set(&cfg.LogLevel, fc.LogLevel)
	set(&cfg.BackupDir, fc.BackupDir)
	set(&cfg.GeminiAPIKey, fc.GeminiAPIKey)
	set(&cfg.GeminiModel, fc.GeminiModel)
	set(&cfg.EnrichMaxRequests, fc.EnrichMaxRequests)
	set(&cfg.EnrichConcurrency, fc.EnrichConcurrency)
	if fc.EnrichWindow != nil {
		cfg.EnrichWindow = fc.EnrichWindow.Duration
	}

	if s3 := fc.S3; s3 != nil {
		set(&cfg.S3.Bucket, s3.Bucket)
		set(&cfg.S3.Region, s3.Region)
		set(&cfg.S3.Endpoint, s3.Endpoint)
		set(&cfg.S3.AccessKey, s3.AccessKey)
		set(&cfg.S3.SecretKey, s3.SecretKey)
		set(&cfg.S3.Prefix, s3.Prefix)
	}
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
