package wallet

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"fmt"

	"github.com/cybercongress/cyber-wallet/internal/log"
	"github.com/cybercongress/cyber-wallet/pkg/crypto"
	"github.com/cybercongress/cyber-wallet/pkg/types"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/tyler-smith/go-bip32"
)

const (
	// ChainCodeSize is the length of a BIP-32 chain code.
	ChainCodeSize = 32

	// MinSeedSize and MaxSeedSize bound the master seed (128 to 512 bits).
	MinSeedSize = 16
	MaxSeedSize = 64
)

// masterKeySalt is the HMAC key used to split a seed into the master key.
var masterKeySalt = []byte("Bitcoin seed")

// ExtendedKey is a BIP-32 key: a private scalar (or only its public point)
// together with a chain code and its position in the tree.
type ExtendedKey struct {
	priv      *crypto.PrivateKey // nil for public-only keys
	pub       *crypto.PublicKey
	chainCode [ChainCodeSize]byte
	depth     uint8
	parentFP  types.Fingerprint
	childNum  uint32
}

// NewMasterKey creates the master extended key from a 16 to 64 byte seed:
// HMAC-SHA512("Bitcoin seed", seed) split into scalar and chain code. A
// scalar of zero or not below the curve order fails with ErrKeyDerivation.
func NewMasterKey(seed []byte) (*ExtendedKey, error) {
	if len(seed) < MinSeedSize || len(seed) > MaxSeedSize {
		return nil, fmt.Errorf("%w: seed must be %d-%d bytes, got %d", ErrKeyDerivation, MinSeedSize, MaxSeedSize, len(seed))
	}

	mac := hmac.New(sha512.New, masterKeySalt)
	mac.Write(seed)
	sum := mac.Sum(nil)
	defer zeroBytes(sum)

	var k secp256k1.ModNScalar
	defer k.Zero()
	if overflow := k.SetByteSlice(sum[:32]); overflow {
		return nil, fmt.Errorf("%w: master scalar not below curve order", ErrKeyDerivation)
	}
	if k.IsZero() {
		return nil, fmt.Errorf("%w: master scalar is zero", ErrKeyDerivation)
	}
	return newPrivateExtendedKey(&k, sum[32:], 0, types.Fingerprint{}, 0), nil
}

func newPrivateExtendedKey(k *secp256k1.ModNScalar, chainCode []byte, depth uint8, parentFP types.Fingerprint, childNum uint32) *ExtendedKey {
	priv := crypto.PrivateKeyFromScalar(k)
	key := &ExtendedKey{
		priv:     priv,
		pub:      priv.PublicKey(),
		depth:    depth,
		parentFP: parentFP,
		childNum: childNum,
	}
	copy(key.chainCode[:], chainCode)
	return key
}

// DeriveChild derives the child at the raw BIP-32 index. Indices at or above
// 2^31 are hardened and hash the parent private key:
//
//	HMAC-SHA512(chainCode, 0x00 || k || ser32(i))
//
// Normal children hash the compressed parent public key instead:
//
//	HMAC-SHA512(chainCode, serP(K) || ser32(i))
//
// The left half is added to the parent scalar mod n (or, for a public-only
// parent, IL·G is added to the parent point). IL >= n, a zero child scalar or
// the point at infinity fail with ErrKeyDerivation; the caller is not offered
// a retry with the next index.
func (k *ExtendedKey) DeriveChild(child uint32) (*ExtendedKey, error) {
	if k.depth == MaxPathDepth {
		return nil, fmt.Errorf("%w: depth limit %d reached", ErrKeyDerivation, MaxPathDepth)
	}

	data := make([]byte, crypto.PublicKeySize+4)
	defer zeroBytes(data)
	if child >= bip32.FirstHardenedChild {
		if k.priv == nil {
			return nil, fmt.Errorf("derive child %s: %w", SegmentFromChild(child), ErrHardenedFromPublic)
		}
		scalar := k.priv.Scalar()
		b := scalar.Bytes()
		copy(data[1:], b[:])
		scalar.Zero()
		zeroBytes(b[:])
	} else {
		copy(data, k.pub.Bytes())
	}
	binary.BigEndian.PutUint32(data[crypto.PublicKeySize:], child)

	mac := hmac.New(sha512.New, k.chainCode[:])
	mac.Write(data)
	sum := mac.Sum(nil)
	defer zeroBytes(sum)

	var il secp256k1.ModNScalar
	defer il.Zero()
	if overflow := il.SetByteSlice(sum[:32]); overflow {
		return nil, fmt.Errorf("%w: child %s: IL not below curve order", ErrKeyDerivation, SegmentFromChild(child))
	}

	parentFP := k.Fingerprint()

	if k.priv != nil {
		childScalar := k.priv.Scalar()
		defer childScalar.Zero()
		childScalar.Add(&il)
		if childScalar.IsZero() {
			return nil, fmt.Errorf("%w: child %s: zero scalar", ErrKeyDerivation, SegmentFromChild(child))
		}
		return newPrivateExtendedKey(&childScalar, sum[32:], k.depth+1, parentFP, child), nil
	}

	var ilG, parent, point secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&il, &ilG)
	k.pub.Point().AsJacobian(&parent)
	secp256k1.AddNonConst(&ilG, &parent, &point)
	if (point.X.IsZero() && point.Y.IsZero()) || point.Z.IsZero() {
		return nil, fmt.Errorf("%w: child %s: point at infinity", ErrKeyDerivation, SegmentFromChild(child))
	}
	point.ToAffine()

	key := &ExtendedKey{
		pub:      crypto.NewPublicKey(secp256k1.NewPublicKey(&point.X, &point.Y)),
		depth:    k.depth + 1,
		parentFP: parentFP,
		childNum: child,
	}
	copy(key.chainCode[:], sum[32:])
	return key, nil
}

// DerivePath folds DeriveChild over the path from left to right. Intermediate
// keys are zeroed as soon as their child exists. The receiver is left intact
// and the result is always a new key.
func (k *ExtendedKey) DerivePath(path DerivationPath) (*ExtendedKey, error) {
	current := k.clone()
	for _, idx := range path.Children() {
		child, err := current.DeriveChild(idx)
		current.Zero()
		if err != nil {
			return nil, err
		}
		current = child
	}
	return current, nil
}

// DeriveFromSeed derives the extended key at pathText (DefaultPathText when
// empty) from a BIP-39 seed.
func DeriveFromSeed(seed []byte, pathText string) (*ExtendedKey, error) {
	path := DefaultPath()
	if pathText != "" {
		var err error
		if path, err = ParsePath(pathText); err != nil {
			return nil, err
		}
	}

	master, err := NewMasterKey(seed)
	if err != nil {
		return nil, err
	}
	defer master.Zero()

	done := log.Benchmark("derive " + path.String())
	defer done()
	return master.DerivePath(path)
}

// IsPrivate returns true if this key contains a private key.
func (k *ExtendedKey) IsPrivate() bool {
	return k.priv != nil
}

// Depth returns the derivation depth (0 for master).
func (k *ExtendedKey) Depth() uint8 {
	return k.depth
}

// ChildNumber returns the raw BIP-32 index this key was derived at.
func (k *ExtendedKey) ChildNumber() uint32 {
	return k.childNum
}

// ParentFingerprint returns the fingerprint of the parent key (zero for master).
func (k *ExtendedKey) ParentFingerprint() types.Fingerprint {
	return k.parentFP
}

// Fingerprint returns the first four bytes of Hash160 of the public key.
func (k *ExtendedKey) Fingerprint() types.Fingerprint {
	return crypto.FingerprintOf(k.pub.Bytes())
}

// ChainCode returns a copy of the chain code.
func (k *ExtendedKey) ChainCode() []byte {
	cc := make([]byte, ChainCodeSize)
	copy(cc, k.chainCode[:])
	return cc
}

// PrivateKey returns a copy of the private key, owned by the caller.
func (k *ExtendedKey) PrivateKey() (*crypto.PrivateKey, error) {
	if k.priv == nil {
		return nil, fmt.Errorf("extended key is public-only")
	}
	s := k.priv.Scalar()
	defer s.Zero()
	return crypto.PrivateKeyFromScalar(&s), nil
}

// PrivateKeyBytes returns the raw 32-byte private key.
// Returns nil if this is a public-only key.
func (k *ExtendedKey) PrivateKeyBytes() []byte {
	if k.priv == nil {
		return nil
	}
	return k.priv.Serialize()
}

// PublicKey returns the public point.
func (k *ExtendedKey) PublicKey() *crypto.PublicKey {
	return k.pub
}

// PublicKeyBytes returns the compressed 33-byte public key.
func (k *ExtendedKey) PublicKeyBytes() []byte {
	return k.pub.Bytes()
}

// Address derives the cyber address of this key's public key.
func (k *ExtendedKey) Address() types.Address {
	return k.pub.Address()
}

// Neuter returns a public-key-only copy (for watch-only wallets).
func (k *ExtendedKey) Neuter() *ExtendedKey {
	n := k.clone()
	if n.priv != nil {
		n.priv.Zero()
		n.priv = nil
	}
	return n
}

// Zero overwrites the private scalar and chain code.
func (k *ExtendedKey) Zero() {
	if k.priv != nil {
		k.priv.Zero()
	}
	zeroBytes(k.chainCode[:])
}

func (k *ExtendedKey) clone() *ExtendedKey {
	c := *k
	if k.priv != nil {
		s := k.priv.Scalar()
		c.priv = crypto.PrivateKeyFromScalar(&s)
		s.Zero()
	}
	return &c
}

// String returns the Base58Check xprv (private) or xpub (public-only)
// serialization.
func (k *ExtendedKey) String() string {
	bk := k.toBIP32()
	defer zeroBytes(bk.Key)
	return bk.B58Serialize()
}

func (k *ExtendedKey) toBIP32() *bip32.Key {
	childNum := make([]byte, 4)
	binary.BigEndian.PutUint32(childNum, k.childNum)
	fp := make([]byte, types.FingerprintSize)
	copy(fp, k.parentFP[:])

	bk := &bip32.Key{
		Version:     bip32.PublicWalletVersion,
		Depth:       k.depth,
		ChildNumber: childNum,
		FingerPrint: fp,
		ChainCode:   k.ChainCode(),
		Key:         k.pub.Bytes(),
		IsPrivate:   false,
	}
	if k.priv != nil {
		bk.Version = bip32.PrivateWalletVersion
		bk.Key = k.priv.Serialize()
		bk.IsPrivate = true
	}
	return bk
}

// ParseExtendedKey decodes a Base58Check xprv or xpub string. The embedded
// key is validated as a curve scalar or point.
func ParseExtendedKey(s string) (*ExtendedKey, error) {
	bk, err := bip32.B58Deserialize(s)
	if err != nil {
		return nil, fmt.Errorf("%w: decode extended key: %v", ErrKeyDerivation, err)
	}
	if len(bk.ChainCode) != ChainCodeSize || len(bk.FingerPrint) != types.FingerprintSize || len(bk.ChildNumber) != 4 {
		return nil, fmt.Errorf("%w: malformed extended key", ErrKeyDerivation)
	}

	key := &ExtendedKey{
		depth:    bk.Depth,
		childNum: binary.BigEndian.Uint32(bk.ChildNumber),
	}
	copy(key.parentFP[:], bk.FingerPrint)
	copy(key.chainCode[:], bk.ChainCode)

	switch {
	case bytes.Equal(bk.Version, bip32.PrivateWalletVersion):
		raw := bk.Key
		if len(raw) == crypto.PrivateKeySize+1 && raw[0] == 0 {
			raw = raw[1:]
		}
		priv, err := crypto.PrivateKeyFromBytes(raw)
		zeroBytes(bk.Key)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrKeyDerivation, err)
		}
		key.priv = priv
		key.pub = priv.PublicKey()
	case bytes.Equal(bk.Version, bip32.PublicWalletVersion):
		pub, err := crypto.ParsePublicKey(bk.Key)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrKeyDerivation, err)
		}
		key.pub = pub
	default:
		return nil, fmt.Errorf("%w: unknown version %x", ErrKeyDerivation, bk.Version)
	}

	if key.depth == 0 && (key.parentFP != (types.Fingerprint{}) || key.childNum != 0) {
		return nil, fmt.Errorf("%w: master key with parent data", ErrKeyDerivation)
	}
	return key, nil
}
