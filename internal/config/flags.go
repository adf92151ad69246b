package config

import (
	"github.com/spf13/pflag"
)

// Flags are the command-line overrides shared by every command.
type Flags struct {
	ConfigPath   string
	DatabasePath string
	LogLevel     string
	BackupDir    string
}

// Register adds the flags to fs.
//
//	--config string     config file (.json, .yaml)
//	--db string         SQLite database file
//	--log-level string  debug, info, warn or error
//	--backup-dir string directory for local backups
func (f *Flags) Register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.ConfigPath, "config", "c", "", "config file (.json, .yaml)")
	fs.StringVar(&f.DatabasePath, "db", "", "SQLite database file")
	fs.StringVar(&f.LogLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&f.BackupDir, "backup-dir", "", "directory for local backups")
}

// Apply copies the flags that were set explicitly into cfg.
func (f *Flags) Apply(cfg *Config, fs *pflag.FlagSet) {
	if fs.Changed("db") {
		cfg.DatabasePath = f.DatabasePath
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = f.LogLevel
	}
	if fs.Changed("backup-dir") {
		cfg.BackupDir = f.BackupDir
	}
}

// Load runs the full chain: defaults, file, environment, then flags.
func (f *Flags) Load(fs *pflag.FlagSet) (*Config, error) {
	cfg, err := Load(f.ConfigPath)
	if err != nil {
		return nil, err
	}
	f.Apply(cfg, fs)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
