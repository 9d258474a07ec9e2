package config

import (
	"fmt"

	"github.com/cybercongress/cyber-wallet/internal/log"
	"github.com/cybercongress/cyber-wallet/internal/wallet"
	"github.com/cybercongress/cyber-wallet/pkg/types"
)

// Validate checks the config for obvious operator mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if err := types.ValidateHRP(cfg.HRP); err != nil {
		return fmt.Errorf("address.hrp: %w", err)
	}
	if _, err := wallet.ParsePath(cfg.DefaultPath); err != nil {
		return fmt.Errorf("wallet.path: %w", err)
	}
	if cfg.AccountCount == 0 || cfg.AccountCount > wallet.MaxAccountRange {
		return fmt.Errorf("wallet.accounts must be in range [1, %d]", wallet.MaxAccountRange)
	}
	if cfg.Log.Level != "" && !log.ValidLevel(cfg.Log.Level) {
		return fmt.Errorf("log.level %q must be trace, debug, info, warn, error or off", cfg.Log.Level)
	}
	return nil
}
