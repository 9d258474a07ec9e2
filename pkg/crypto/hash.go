// Package crypto provides the hashing and secp256k1 key primitives used to
// turn a private scalar into a cyber address.
package crypto

import (
	"crypto/sha256"

	"github.com/cybercongress/cyber-wallet/pkg/types"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // RIPEMD-160 is fixed by the address format.
)

// SHA256 computes the SHA-256 digest of data.
func SHA256(data []byte) [sha256.Size]byte {
	return sha256.Sum256(data)
}

// Hash160 computes RIPEMD160(SHA256(data)).
func Hash160(data []byte) types.Address {
	first := SHA256(data)
	h := ripemd160.New()
	h.Write(first[:])
	var out types.Address
	copy(out[:], h.Sum(nil))
	return out
}

// AddressFromPubKey derives an address from a compressed public key.
// Address = RIPEMD160(SHA256(compressed_pubkey)).
func AddressFromPubKey(pubKey []byte) types.Address {
	return Hash160(pubKey)
}

// FingerprintOf returns the BIP-32 fingerprint of a compressed public key.
func FingerprintOf(pubKey []byte) types.Fingerprint {
	h := Hash160(pubKey)
	var fp types.Fingerprint
	copy(fp[:], h[:types.FingerprintSize])
	return fp
}
