package wallet

import (
	"fmt"

	"github.com/tyler-smith/go-bip39"
)

// SeedSize is the length of a derived seed in bytes (512 bits).
const SeedSize = 64

// Seed is BIP-39 key material. The owner should call Zero once the master
// key has been derived.
type Seed []byte

// Zero overwrites the seed bytes.
func (s Seed) Zero() {
	zeroBytes(s)
}

// SeedFromMnemonic validates phrase and derives the 512-bit seed with
// PBKDF2-HMAC-SHA512 as specified in BIP-39. The words are re-joined with
// single spaces before stretching.
func SeedFromMnemonic(phrase, passphrase string) (Seed, error) {
	m, err := ParseMnemonic(phrase)
	if err != nil {
		return nil, err
	}
	defer m.Zero()

	seed, err := bip39.NewSeedWithErrorChecking(m.Phrase(), passphrase)
	if err != nil {
		return nil, fmt.Errorf("%w: derive seed: %v", ErrInvalidMnemonic, err)
	}
	return seed, nil
}
