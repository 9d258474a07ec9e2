// cyber-cli derives cyber account keys and addresses from BIP-39 mnemonics.
package main

import (
	"fmt"
	"os"

	"github.com/cybercongress/cyber-wallet/config"
	"github.com/cybercongress/cyber-wallet/internal/log"
	"github.com/spf13/cobra"
)

// app carries the global flags and the loaded config through the commands.
type app struct {
	flags config.Flags
	cfg   *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "cyber-cli",
		Short: "Derive cyber keys and addresses from a mnemonic phrase",
		Long: `Derive cyber keys and addresses from a BIP-39 mnemonic phrase.

Keys follow BIP-32 along the BIP-44 path m/44'/118'/account'/change/index and
addresses are bech32 with the "cyber" prefix.

A phrase can be given as arguments, piped on stdin, or typed at a hidden
prompt. Passing it as arguments leaves it in your shell history.`,
		Example: `  cyber-cli generate --address
  cyber-cli derive
  echo "soap weird dutch ..." | cyber-cli derive --path "m/44'/118'/0'/0/1"
  cyber-cli accounts --count 10
  cyber-cli validate cyber1gw824ephm676c93ur3zgefctj3frvupc4tmn3v`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.flags.SetLogJSON = cmd.Flags().Changed("log-json")
			cfg, err := config.Load(&a.flags)
			if err != nil {
				return err
			}
			if err := log.Init(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File); err != nil {
				return fmt.Errorf("init logging: %w", err)
			}
			log.CLI.Debug().
				Str("command", cmd.Name()).
				Str("hrp", cfg.HRP).
				Str("path", cfg.DefaultPath).
				Msg("config loaded")
			a.cfg = cfg
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.Config, "config", "", "config file (default <datadir>/"+config.ConfigFileName+")")
	pf.StringVar(&a.flags.DataDir, "datadir", "", "data directory (default "+config.DefaultDataDir()+")")
	pf.StringVar(&a.flags.HRP, "hrp", "", "bech32 prefix for printed addresses (default cyber)")
	pf.StringVar(&a.flags.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error, off")
	pf.StringVar(&a.flags.LogFile, "log-file", "", "also write JSON logs to this file")
	pf.BoolVar(&a.flags.LogJSON, "log-json", false, "write logs as JSON")

	root.AddCommand(
		a.generateCmd(),
		a.deriveCmd(),
		a.accountsCmd(),
		a.xpubCmd(),
		a.validateCmd(),
		a.encodeCmd(),
		a.configCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
