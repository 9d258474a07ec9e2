package config

import (
	"fmt"
	"os"

	"github.com/cybercongress/cyber-wallet/internal/wallet"
)

// Flags holds the global command-line flags. The CLI binds its flag set to
// these fields and records which bool flags were explicitly set.
type Flags struct {
	// Core
	DataDir string
	Config  string

	// Address encoding
	HRP string

	// Logging
	LogLevel string
	LogFile  string
	LogJSON  bool

	// Explicitly-set bool flags (for true/false overrides).
	SetLogJSON bool
}

// ApplyFlags applies command-line flags to a Config struct.
func ApplyFlags(cfg *Config, f *Flags) {
	if f.DataDir != "" {
		cfg.DataDir = f.DataDir
	}
	if f.HRP != "" {
		cfg.HRP = f.HRP
	}

	// Logging
	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}
	if f.LogFile != "" {
		cfg.Log.File = f.LogFile
	}
	if f.SetLogJSON {
		cfg.Log.JSON = f.LogJSON
	}
}

// Load loads configuration with the following precedence:
// 1. Default values
// 2. Config file (--config, else <datadir>/cyber-wallet.conf; missing is fine)
// 3. Command-line flags
func Load(flags *Flags) (*Config, error) {
	cfg := Default()

	if flags.DataDir != "" {
		cfg.DataDir = flags.DataDir
	}

	configPath := flags.Config
	if configPath == "" {
		configPath = cfg.ConfigFile()
	} else if _, err := os.Stat(configPath); err != nil {
		// An explicit config path must exist.
		return nil, fmt.Errorf("loading config file: %w", err)
	}

	fileValues, err := LoadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config file: %w", err)
	}
	if err := ApplyFileConfig(cfg, fileValues); err != nil {
		return nil, fmt.Errorf("applying config file: %w", err)
	}

	// Flags have the highest precedence
	ApplyFlags(cfg, flags)
	if cfg.DefaultPath == "" {
		cfg.DefaultPath = wallet.DefaultPathText
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// EnsureDataDir creates the data directory and a default config file if they
// don't already exist. It is idempotent.
func EnsureDataDir(cfg *Config) (string, error) {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", cfg.DataDir, err)
	}

	configPath := cfg.ConfigFile()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := WriteDefaultConfig(configPath); err != nil {
			return "", fmt.Errorf("writing config file: %w", err)
		}
	}
	return configPath, nil
}
