package types

import (
	"errors"
	"fmt"
	"strings"
)

// Bech32Charset is the 32-symbol alphabet used for encoding (BIP-173).
const Bech32Charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

// Bech32MaxLength is the longest string BIP-173 allows.
const Bech32MaxLength = 90

// bech32ChecksumLen is the number of 5-bit checksum symbols.
const bech32ChecksumLen = 6

// ErrInvalidBech32 is returned for any malformed bech32 input.
var ErrInvalidBech32 = errors.New("invalid bech32")

// bech32CharsetRev maps bech32 characters to their 5-bit values. -1 = invalid.
var bech32CharsetRev [128]int8

// bech32Generator holds the BCH generator coefficients over GF(32).
var bech32Generator = [5]uint32{0x3b6a57b2, 0x26508e6d, 0x1ea119fa, 0x3d4233dd, 0x2a1462b3}

func init() {
	for i := range bech32CharsetRev {
		bech32CharsetRev[i] = -1
	}
	for i, c := range Bech32Charset {
		bech32CharsetRev[c] = int8(i)
	}
}

// ValidateHRP checks that hrp is a non-empty, lower-case, printable
// human-readable part.
func ValidateHRP(hrp string) error {
	if len(hrp) == 0 {
		return fmt.Errorf("%w: empty HRP", ErrInvalidBech32)
	}
	if len(hrp) > Bech32MaxLength-1-bech32ChecksumLen {
		return fmt.Errorf("%w: HRP too long", ErrInvalidBech32)
	}
	for _, c := range hrp {
		if c < 33 || c > 126 {
			return fmt.Errorf("%w: invalid HRP character %q", ErrInvalidBech32, c)
		}
		if c >= 'A' && c <= 'Z' {
			return fmt.Errorf("%w: upper-case HRP %q", ErrInvalidBech32, hrp)
		}
	}
	return nil
}

// Bech32Encode regroups data from 8-bit bytes into 5-bit symbols and encodes
// it with hrp into a checksummed bech32 string.
func Bech32Encode(hrp string, data []byte) (string, error) {
	conv, err := ConvertBits(data, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("bech32: convert bits: %w", err)
	}
	return Bech32EncodeGroups(hrp, conv)
}

// Bech32EncodeGroups encodes already-regrouped 5-bit symbols.
func Bech32EncodeGroups(hrp string, groups []byte) (string, error) {
	if err := ValidateHRP(hrp); err != nil {
		return "", err
	}
	if len(hrp)+1+len(groups)+bech32ChecksumLen > Bech32MaxLength {
		return "", fmt.Errorf("%w: encoded length exceeds %d", ErrInvalidBech32, Bech32MaxLength)
	}
	for _, g := range groups {
		if g > 31 {
			return "", fmt.Errorf("%w: symbol %d out of range", ErrInvalidBech32, g)
		}
	}

	chk := bech32CreateChecksum(hrp, groups)

	// hrp + "1" + data + checksum
	var sb strings.Builder
	sb.Grow(len(hrp) + 1 + len(groups) + bech32ChecksumLen)
	sb.WriteString(hrp)
	sb.WriteByte('1')
	for _, b := range groups {
		sb.WriteByte(Bech32Charset[b])
	}
	for _, b := range chk {
		sb.WriteByte(Bech32Charset[b])
	}
	return sb.String(), nil
}

// Bech32Decode decodes a bech32 string into the human-readable part and the
// 8-bit payload. Padding bits left over from the 5-to-8 regrouping must be zero.
func Bech32Decode(s string) (string, []byte, error) {
	hrp, groups, err := Bech32DecodeGroups(s)
	if err != nil {
		return "", nil, err
	}
	data, err := ConvertBits(groups, 5, 8, false)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidBech32, err)
	}
	return hrp, data, nil
}

// Bech32DecodeGroups decodes a bech32 string and returns the raw 5-bit
// symbols with the checksum stripped.
func Bech32DecodeGroups(s string) (string, []byte, error) {
	if len(s) == 0 {
		return "", nil, fmt.Errorf("%w: empty string", ErrInvalidBech32)
	}
	if len(s) > Bech32MaxLength {
		return "", nil, fmt.Errorf("%w: length %d exceeds %d", ErrInvalidBech32, len(s), Bech32MaxLength)
	}

	// Reject mixed case.
	hasUpper, hasLower := false, false
	for _, c := range s {
		if c < 33 || c > 126 {
			return "", nil, fmt.Errorf("%w: invalid character %q", ErrInvalidBech32, c)
		}
		if c >= 'A' && c <= 'Z' {
			hasUpper = true
		}
		if c >= 'a' && c <= 'z' {
			hasLower = true
		}
	}
	if hasUpper && hasLower {
		return "", nil, fmt.Errorf("%w: mixed case", ErrInvalidBech32)
	}
	s = strings.ToLower(s)

	// The separator is the last '1'; the HRP may itself contain '1'.
	sepIdx := strings.LastIndexByte(s, '1')
	if sepIdx < 1 {
		return "", nil, fmt.Errorf("%w: missing separator", ErrInvalidBech32)
	}
	if sepIdx+1+bech32ChecksumLen > len(s) {
		return "", nil, fmt.Errorf("%w: too short", ErrInvalidBech32)
	}

	hrp := s[:sepIdx]
	dataStr := s[sepIdx+1:]

	groups := make([]byte, len(dataStr))
	for i := 0; i < len(dataStr); i++ {
		val := bech32CharsetRev[dataStr[i]]
		if val < 0 {
			return "", nil, fmt.Errorf("%w: invalid character %q", ErrInvalidBech32, dataStr[i])
		}
		groups[i] = byte(val)
	}

	if !bech32VerifyChecksum(hrp, groups) {
		return "", nil, fmt.Errorf("%w: checksum mismatch", ErrInvalidBech32)
	}
	return hrp, groups[:len(groups)-bech32ChecksumLen], nil
}

// bech32Polymod computes the BCH checksum polynomial modulus over GF(32).
func bech32Polymod(values []byte) uint32 {
	chk := uint32(1)
	for _, v := range values {
		top := chk >> 25
		chk = (chk&0x1ffffff)<<5 ^ uint32(v)
		for i := 0; i < 5; i++ {
			if (top>>uint(i))&1 == 1 {
				chk ^= bech32Generator[i]
			}
		}
	}
	return chk
}

// bech32HRPExpand returns the high bits of each HRP character, a zero, then
// the low bits.
func bech32HRPExpand(hrp string) []byte {
	ret := make([]byte, 0, len(hrp)*2+1)
	for i := 0; i < len(hrp); i++ {
		ret = append(ret, hrp[i]>>5)
	}
	ret = append(ret, 0)
	for i := 0; i < len(hrp); i++ {
		ret = append(ret, hrp[i]&31)
	}
	return ret
}

func bech32CreateChecksum(hrp string, groups []byte) []byte {
	values := bech32HRPExpand(hrp)
	values = append(values, groups...)
	values = append(values, make([]byte, bech32ChecksumLen)...)
	polymod := bech32Polymod(values) ^ 1
	ret := make([]byte, bech32ChecksumLen)
	for i := 0; i < bech32ChecksumLen; i++ {
		ret[i] = byte((polymod >> uint(5*(5-i))) & 31)
	}
	return ret
}

func bech32VerifyChecksum(hrp string, groups []byte) bool {
	values := bech32HRPExpand(hrp)
	values = append(values, groups...)
	return bech32Polymod(values) == 1
}

// ConvertBits regroups data from fromBits-wide groups into toBits-wide groups.
// With pad set, a trailing partial group is filled with zero bits. Without it,
// leftover bits must be fewer than fromBits and all zero.
func ConvertBits(data []byte, fromBits, toBits uint, pad bool) ([]byte, error) {
	if fromBits < 1 || fromBits > 8 || toBits < 1 || toBits > 8 {
		return nil, fmt.Errorf("group sizes must be in [1, 8]")
	}
	acc := uint32(0)
	bits := uint(0)
	maxv := uint32((1 << toBits) - 1)
	ret := make([]byte, 0, len(data)*int(fromBits)/int(toBits)+1)

	for _, b := range data {
		if uint32(b)>>fromBits != 0 {
			return nil, fmt.Errorf("invalid data byte: %d", b)
		}
		acc = acc<<fromBits | uint32(b)
		bits += fromBits
		for bits >= toBits {
			bits -= toBits
			ret = append(ret, byte((acc>>bits)&maxv))
		}
	}

	if pad {
		if bits > 0 {
			ret = append(ret, byte((acc<<(toBits-bits))&maxv))
		}
	} else {
		if bits >= fromBits {
			return nil, fmt.Errorf("excess padding")
		}
		if (acc<<(toBits-bits))&maxv != 0 {
			return nil, fmt.Errorf("non-zero padding")
		}
	}

	return ret, nil
}
