// Package config handles cyber-cli configuration.
//
// Settings come from three layers, lowest precedence first: built-in
// defaults, the key = value config file, then command-line flags.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// ConfigFileName is the config file name inside the data directory.
const ConfigFileName = "cyber-wallet.conf"

// Config holds cyber-cli runtime configuration.
type Config struct {
	// Core
	DataDir string `conf:"datadir"`

	// Prefix used when the CLI prints addresses. The wallet package itself
	// always encodes under types.CyberHRP.
	HRP string `conf:"address.hrp"`

	// Derivation
	DefaultPath  string `conf:"wallet.path"`
	AccountCount uint32 `conf:"wallet.accounts"` // Addresses listed by `accounts` when --count is unset

	// Logging
	Log LogConfig
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	File  string `conf:"log.file"`
	JSON  bool   `conf:"log.json"`
}

// =============================================================================
// Directory helpers
// =============================================================================

// DefaultDataDir returns the platform-specific default data directory.
//
//	Linux:   ~/.cyber-wallet
//	macOS:   ~/Library/Application Support/CyberWallet
//	Windows: %APPDATA%\CyberWallet
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cyber-wallet"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "CyberWallet")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, "CyberWallet")
		}
		return filepath.Join(home, "AppData", "Roaming", "CyberWallet")
	default:
		return filepath.Join(home, ".cyber-wallet")
	}
}

// ConfigFile returns the config file path.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, ConfigFileName)
}
