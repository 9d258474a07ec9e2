package wallet

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMnemonic covers a wrong word count, an unknown word or a
	// checksum mismatch.
	ErrInvalidMnemonic = errors.New("invalid mnemonic")

	// ErrInvalidDerivationPath covers malformed path text and out-of-range
	// segment indices.
	ErrInvalidDerivationPath = errors.New("invalid derivation path")

	// ErrKeyDerivation is returned when a derived scalar or point is invalid
	// (IL >= n, zero child key, point at infinity). Derivation is not retried.
	ErrKeyDerivation = errors.New("key derivation failure")

	// ErrHardenedFromPublic is returned when a hardened child is requested
	// from a public-only extended key.
	ErrHardenedFromPublic = fmt.Errorf("%w: hardened child from public key", ErrKeyDerivation)
)
