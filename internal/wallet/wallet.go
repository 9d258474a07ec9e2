package wallet

import (
	"github.com/cybercongress/cyber-wallet/pkg/crypto"
	"github.com/cybercongress/cyber-wallet/pkg/types"
)

// PrivateKeyWallet holds the private key at the end of a derivation path.
type PrivateKeyWallet struct {
	key *crypto.PrivateKey
}

// Bytes returns the 32-byte big-endian private scalar.
func (w *PrivateKeyWallet) Bytes() []byte {
	return w.key.Serialize()
}

// PrivateKey returns the wrapped key. It shares memory with the wallet.
func (w *PrivateKeyWallet) PrivateKey() *crypto.PrivateKey {
	return w.key
}

// Zero overwrites the private scalar. The wallet must not be used afterwards.
func (w *PrivateKeyWallet) Zero() {
	w.key.Zero()
}

// PublicKeyWallet holds a validated compressed public key.
type PublicKeyWallet struct {
	key *crypto.PublicKey
}

// PublicKeyWalletFromBytes validates a 33-byte compressed public key.
func PublicKeyWalletFromBytes(b []byte) (*PublicKeyWallet, error) {
	pub, err := crypto.ParsePublicKey(b)
	if err != nil {
		return nil, err
	}
	return &PublicKeyWallet{key: pub}, nil
}

// Bytes returns the compressed 33-byte public key.
func (w *PublicKeyWallet) Bytes() []byte {
	return w.key.Bytes()
}

// String returns the lower-case hex of the compressed public key.
func (w *PublicKeyWallet) String() string {
	return w.key.String()
}

// PublicKey returns the wrapped key.
func (w *PublicKeyWallet) PublicKey() *crypto.PublicKey {
	return w.key
}

// Address returns the 20-byte account address of the key.
func (w *PublicKeyWallet) Address() types.Address {
	return w.key.Address()
}

// WalletFromSeed runs phrase through BIP-39 with an empty passphrase and
// derives the private key at path (DefaultPathText when empty).
func WalletFromSeed(phrase, path string) (*PrivateKeyWallet, error) {
	return WalletFromSeedWithPassphrase(phrase, "", path)
}

// WalletFromSeedWithPassphrase is WalletFromSeed with a BIP-39 passphrase.
// The path is checked before the seed is stretched.
func WalletFromSeedWithPassphrase(phrase, passphrase, path string) (*PrivateKeyWallet, error) {
	if path != "" {
		if _, err := ParsePath(path); err != nil {
			return nil, err
		}
	}

	seed, err := SeedFromMnemonic(phrase, passphrase)
	if err != nil {
		return nil, err
	}
	defer seed.Zero()

	key, err := DeriveFromSeed(seed, path)
	if err != nil {
		return nil, err
	}
	defer key.Zero()

	priv, err := key.PrivateKey()
	if err != nil {
		return nil, err
	}
	return &PrivateKeyWallet{key: priv}, nil
}

// PublicFromPrivate computes the public key of a private wallet.
func PublicFromPrivate(w *PrivateKeyWallet) *PublicKeyWallet {
	return &PublicKeyWallet{key: w.key.PublicKey()}
}

// AddressFromPublic returns the bech32 cyber address of a public wallet.
func AddressFromPublic(w *PublicKeyWallet) string {
	return w.Address().String()
}
