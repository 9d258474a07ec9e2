package main

import (
	"fmt"

	"github.com/cybercongress/cyber-wallet/config"
	"github.com/cybercongress/cyber-wallet/internal/log"
	"github.com/cybercongress/cyber-wallet/internal/wallet"
	"github.com/cybercongress/cyber-wallet/pkg/types"
	"github.com/spf13/cobra"
)

// defaultXpubPath is the account-level path exported by `xpub`.
const defaultXpubPath = "m/44'/118'/0'"

func (a *app) generateCmd() *cobra.Command {
	var showAddress bool
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new 12-word mnemonic phrase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			phrase, err := wallet.GeneratePhrase()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, phrase)
			if !showAddress {
				return nil
			}

			w, err := wallet.WalletFromSeed(phrase, a.cfg.DefaultPath)
			if err != nil {
				return err
			}
			defer w.Zero()
			addr, err := a.encode(wallet.PublicFromPrivate(w).Address())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s\n", a.cfg.DefaultPath, addr)
			return nil
		},
	}
	cmd.Flags().BoolVar(&showAddress, "address", false, "also print the address at the default path")
	return cmd
}

func (a *app) deriveCmd() *cobra.Command {
	var (
		path        string
		askPass     bool
		showPrivate bool
	)
	cmd := &cobra.Command{
		Use:   "derive [phrase words...]",
		Short: "Derive the public key and address at a path",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = a.cfg.DefaultPath
			}
			p, err := wallet.ParsePath(path)
			if err != nil {
				return err
			}
			in := newSecretReader(cmd)
			phrase, err := readPhrase(in, args)
			if err != nil {
				return err
			}
			pass, err := readPassphrase(in, askPass)
			if err != nil {
				return err
			}

			w, err := wallet.WalletFromSeedWithPassphrase(phrase, pass, p.String())
			if err != nil {
				return err
			}
			defer w.Zero()
			pub := wallet.PublicFromPrivate(w)
			addr, err := a.encode(pub.Address())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Path:        %s\n", p)
			fmt.Fprintf(out, "Public key:  %s\n", pub)
			fmt.Fprintf(out, "Address:     %s\n", addr)
			if showPrivate {
				fmt.Fprintf(out, "Private key: %x\n", w.Bytes())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "derivation path (default from config, m/44'/118'/0'/0/0)")
	cmd.Flags().BoolVar(&askPass, "passphrase", false, "read a BIP-39 passphrase after the phrase")
	cmd.Flags().BoolVar(&showPrivate, "private", false, "also print the private key")
	return cmd
}

func (a *app) accountsCmd() *cobra.Command {
	var (
		account, change, start, count uint32
		askPass                       bool
	)
	cmd := &cobra.Command{
		Use:   "accounts [phrase words...]",
		Short: "List a range of addresses under one account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("count") {
				count = a.cfg.AccountCount
			}
			in := newSecretReader(cmd)
			phrase, err := readPhrase(in, args)
			if err != nil {
				return err
			}
			pass, err := readPassphrase(in, askPass)
			if err != nil {
				return err
			}

			seed, err := wallet.SeedFromMnemonic(phrase, pass)
			if err != nil {
				return err
			}
			defer seed.Zero()

			accounts, err := wallet.DeriveAccounts(seed, account, change, start, count)
			if err != nil {
				return err
			}
			log.CLI.Debug().Int("count", len(accounts)).Msg("accounts derived")

			out := cmd.OutOrStdout()
			for _, acc := range accounts {
				addr, err := a.encode(acc.Address)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-22s %s %s\n", acc.Path, addr, acc.PublicKey)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.Uint32Var(&account, "account", 0, "account index (hardened)")
	f.Uint32Var(&change, "change", wallet.ChangeExternal, "0 for receive addresses, 1 for change")
	f.Uint32Var(&start, "start", 0, "first address index")
	f.Uint32Var(&count, "count", config.DefaultAccountCount, "number of addresses")
	f.BoolVar(&askPass, "passphrase", false, "read a BIP-39 passphrase after the phrase")
	return cmd
}

func (a *app) xpubCmd() *cobra.Command {
	var (
		path    string
		askPass bool
	)
	cmd := &cobra.Command{
		Use:   "xpub [phrase words...]",
		Short: "Print the extended public key at a path",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := wallet.ParsePath(path)
			if err != nil {
				return err
			}
			in := newSecretReader(cmd)
			phrase, err := readPhrase(in, args)
			if err != nil {
				return err
			}
			pass, err := readPassphrase(in, askPass)
			if err != nil {
				return err
			}

			seed, err := wallet.SeedFromMnemonic(phrase, pass)
			if err != nil {
				return err
			}
			defer seed.Zero()

			key, err := wallet.DeriveFromSeed(seed, p.String())
			if err != nil {
				return err
			}
			defer key.Zero()

			fmt.Fprintln(cmd.OutOrStdout(), key.Neuter().String())
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", defaultXpubPath, "derivation path")
	cmd.Flags().BoolVar(&askPass, "passphrase", false, "read a BIP-39 passphrase after the phrase")
	return cmd
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <address>",
		Short: "Check an address and print its 20-byte payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := types.ParseAddressWithHRP(args[0], a.cfg.HRP)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "valid %s address, payload %s\n", a.cfg.HRP, addr.Hex())
			return nil
		},
	}
}

func (a *app) encodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <hex-payload>",
		Short: "Encode a 20-byte hex payload as an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := types.HexToAddress(args[0])
			if err != nil {
				return err
			}
			s, err := a.encode(addr)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}
}

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the data directory and a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.EnsureDataDir(a.cfg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})
	return cmd
}

func (a *app) encode(addr types.Address) (string, error) {
	return addr.Encode(a.cfg.HRP)
}
