package crypto

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/cybercongress/cyber-wallet/pkg/types"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const (
	// PrivateKeySize is the length of a serialized private scalar.
	PrivateKeySize = 32

	// PublicKeySize is the length of a compressed public key.
	PublicKeySize = 33
)

var (
	// ErrInvalidPrivateKey is returned for scalars outside [1, n-1].
	ErrInvalidPrivateKey = errors.New("invalid private key")

	// ErrInvalidPublicKey is returned when bytes do not decode to a curve point.
	ErrInvalidPublicKey = errors.New("invalid public key")
)

// PrivateKey wraps a secp256k1 private scalar. The holder owns the secret and
// is expected to call Zero when done with it.
type PrivateKey struct {
	key *secp256k1.PrivateKey
}

// PrivateKeyFromBytes creates a PrivateKey from a 32-byte big-endian scalar.
// The scalar must lie in [1, n-1].
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != PrivateKeySize {
		return nil, fmt.Errorf("%w: must be %d bytes, got %d", ErrInvalidPrivateKey, PrivateKeySize, len(b))
	}
	var k secp256k1.ModNScalar
	if overflow := k.SetByteSlice(b); overflow {
		k.Zero()
		return nil, fmt.Errorf("%w: scalar not below curve order", ErrInvalidPrivateKey)
	}
	if k.IsZero() {
		return nil, fmt.Errorf("%w: zero scalar", ErrInvalidPrivateKey)
	}
	return PrivateKeyFromScalar(&k), nil
}

// PrivateKeyFromScalar wraps an already-reduced, non-zero scalar. The scalar
// is copied.
func PrivateKeyFromScalar(k *secp256k1.ModNScalar) *PrivateKey {
	return &PrivateKey{key: secp256k1.NewPrivateKey(k)}
}

// Scalar returns a copy of the private scalar.
func (pk *PrivateKey) Scalar() secp256k1.ModNScalar {
	return pk.key.Key
}

// Serialize returns the 32-byte private key scalar.
func (pk *PrivateKey) Serialize() []byte {
	return pk.key.Serialize()
}

// PublicKey returns the public point scalar·G.
func (pk *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{key: pk.key.PubKey()}
}

// Zero overwrites the private scalar.
func (pk *PrivateKey) Zero() {
	pk.key.Zero()
}

// PublicKey is a validated point on secp256k1.
type PublicKey struct {
	key *secp256k1.PublicKey
}

// PublicKeyFromPrivate computes scalar·G for the given private key.
func PublicKeyFromPrivate(pk *PrivateKey) *PublicKey {
	return pk.PublicKey()
}

// ParsePublicKey decodes a 33-byte compressed public key. The prefix must be
// 0x02 or 0x03 and the x-coordinate must lie on the curve. secp256k1 has
// cofactor 1, so any point on the curve is in the prime-order group.
func ParsePublicKey(b []byte) (*PublicKey, error) {
	if len(b) != PublicKeySize {
		return nil, fmt.Errorf("%w: must be %d bytes, got %d", ErrInvalidPublicKey, PublicKeySize, len(b))
	}
	if b[0] != 0x02 && b[0] != 0x03 {
		return nil, fmt.Errorf("%w: unknown prefix 0x%02x", ErrInvalidPublicKey, b[0])
	}
	key, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return &PublicKey{key: key}, nil
}

// NewPublicKey wraps a library public key.
func NewPublicKey(key *secp256k1.PublicKey) *PublicKey {
	return &PublicKey{key: key}
}

// Point returns the underlying curve point.
func (p *PublicKey) Point() *secp256k1.PublicKey {
	return p.key
}

// Bytes returns the compressed 33-byte serialization: 0x02 for even y or 0x03
// for odd y, then the big-endian x-coordinate.
func (p *PublicKey) Bytes() []byte {
	return p.key.SerializeCompressed()
}

// String returns the lower-case hex of the compressed serialization.
func (p *PublicKey) String() string {
	return hex.EncodeToString(p.Bytes())
}

// IsEqual reports whether two public keys are the same point.
func (p *PublicKey) IsEqual(other *PublicKey) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.key.IsEqual(other.key)
}

// Address returns RIPEMD160(SHA256(compressed)).
func (p *PublicKey) Address() types.Address {
	return AddressFromPubKey(p.Bytes())
}
