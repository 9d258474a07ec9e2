package wallet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tyler-smith/go-bip32"
)

// BIP-44 derivation path constants.
// Full path: m/44'/118'/account'/change/index
const (
	// PurposeBIP44 is the BIP-44 purpose field (hardened).
	PurposeBIP44 = bip32.FirstHardenedChild + 44

	// CoinTypeCosmos is the SLIP-44 coin type shared by Cosmos SDK chains,
	// cyber included (hardened).
	CoinTypeCosmos = bip32.FirstHardenedChild + 118

	// ChangeExternal is for receiving addresses.
	ChangeExternal = 0

	// ChangeInternal is for change addresses.
	ChangeInternal = 1

	// MaxPathDepth is the deepest path an extended key can record.
	MaxPathDepth = 255
)

// DefaultPathText is used whenever the caller supplies no path.
const DefaultPathText = "m/44'/118'/0'/0/0"

// PathSegment is one level of a derivation path.
type PathSegment struct {
	Index    uint32 // below 2^31
	Hardened bool
}

// Child returns the BIP-32 child number: Index, plus 2^31 when hardened.
func (s PathSegment) Child() uint32 {
	if s.Hardened {
		return s.Index + bip32.FirstHardenedChild
	}
	return s.Index
}

// String formats the segment with an apostrophe for hardened indices.
func (s PathSegment) String() string {
	if s.Hardened {
		return strconv.FormatUint(uint64(s.Index), 10) + "'"
	}
	return strconv.FormatUint(uint64(s.Index), 10)
}

// SegmentFromChild splits a raw BIP-32 child number into a segment.
func SegmentFromChild(child uint32) PathSegment {
	if child >= bip32.FirstHardenedChild {
		return PathSegment{Index: child - bip32.FirstHardenedChild, Hardened: true}
	}
	return PathSegment{Index: child}
}

// DerivationPath is an ordered list of segments below the master key.
type DerivationPath []PathSegment

// DefaultPath returns m/44'/118'/0'/0/0.
func DefaultPath() DerivationPath {
	return AccountPath(0, ChangeExternal, 0)
}

// AccountPath returns m/44'/118'/account'/change/index.
func AccountPath(account, change, index uint32) DerivationPath {
	return DerivationPath{
		SegmentFromChild(PurposeBIP44),
		SegmentFromChild(CoinTypeCosmos),
		{Index: account, Hardened: true},
		{Index: change},
		{Index: index},
	}
}

// ParsePath parses text such as "m/44'/118'/0'/0/0". The leading "m" is
// optional; "m" alone is the master key itself. Each segment is a decimal index below 2^31, optionally
// followed by ', h or H to mark it hardened. All failures wrap
// ErrInvalidDerivationPath.
func ParsePath(text string) (DerivationPath, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidDerivationPath)
	}

	parts := strings.Split(text, "/")
	if parts[0] == "m" || parts[0] == "M" {
		parts = parts[1:]
	}
	if len(parts) > MaxPathDepth {
		return nil, fmt.Errorf("%w: depth %d exceeds %d", ErrInvalidDerivationPath, len(parts), MaxPathDepth)
	}

	path := make(DerivationPath, 0, len(parts))
	for i, part := range parts {
		seg, err := parseSegment(part)
		if err != nil {
			return nil, fmt.Errorf("%w: segment %d %q: %v", ErrInvalidDerivationPath, i+1, part, err)
		}
		path = append(path, seg)
	}
	return path, nil
}

func parseSegment(part string) (PathSegment, error) {
	var seg PathSegment
	if n := len(part); n > 0 {
		switch part[n-1] {
		case '\'', 'h', 'H':
			seg.Hardened = true
			part = part[:n-1]
		}
	}
	if part == "" {
		return seg, fmt.Errorf("missing index")
	}
	for i := 0; i < len(part); i++ {
		if part[i] < '0' || part[i] > '9' {
			return seg, fmt.Errorf("non-numeric index")
		}
	}
	v, err := strconv.ParseUint(part, 10, 32)
	if err != nil || v >= uint64(bip32.FirstHardenedChild) {
		return seg, fmt.Errorf("index out of range [0, 2^31)")
	}
	seg.Index = uint32(v)
	return seg, nil
}

// String renders the path in canonical form, e.g. "m/44'/118'/0'/0/0".
func (p DerivationPath) String() string {
	var sb strings.Builder
	sb.WriteString("m")
	for _, seg := range p {
		sb.WriteByte('/')
		sb.WriteString(seg.String())
	}
	return sb.String()
}

// Children returns the raw BIP-32 child numbers.
func (p DerivationPath) Children() []uint32 {
	out := make([]uint32, len(p))
	for i, seg := range p {
		out[i] = seg.Child()
	}
	return out
}
