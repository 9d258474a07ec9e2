package config

import (
	"github.com/cybercongress/cyber-wallet/internal/wallet"
	"github.com/cybercongress/cyber-wallet/pkg/types"
)

// DefaultAccountCount is how many addresses `accounts` lists by default.
const DefaultAccountCount = 5

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DataDir:      DefaultDataDir(),
		HRP:          types.CyberHRP,
		DefaultPath:  wallet.DefaultPathText,
		AccountCount: DefaultAccountCount,
		Log: LogConfig{
			Level: "warn",
			JSON:  false,
		},
	}
}
