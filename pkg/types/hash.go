package types

import "encoding/hex"

// FingerprintSize is the length of a BIP-32 key fingerprint.
const FingerprintSize = 4

// Fingerprint is the first four bytes of the Hash160 of a public key.
type Fingerprint [FingerprintSize]byte

// String returns the hex-encoded fingerprint.
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}
