// Package types holds the value types shared across the wallet: the
// 20-byte account address and its bech32 text form.
package types

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

// AddressSize is the length of an address in bytes (RIPEMD-160 digest).
const AddressSize = 20

// CyberHRP is the human-readable part of cyber account addresses.
const CyberHRP = "cyber"

// ErrInvalidAddress is returned when text does not decode to a cyber address.
var ErrInvalidAddress = errors.New("invalid address")

// Address is the 160-bit hash of a compressed public key.
type Address [AddressSize]byte

// IsZero returns true if the address is all zeros.
func (a Address) IsZero() bool {
	return a == Address{}
}

// String returns the bech32 address under the cyber HRP (e.g. "cyber1...").
func (a Address) String() string {
	s, err := a.Encode(CyberHRP)
	if err != nil {
		// CyberHRP is a valid constant HRP and 20 bytes always fit.
		return CyberHRP + ":" + hex.EncodeToString(a[:])
	}
	return s
}

// Encode returns the bech32 form of the address under an arbitrary HRP.
func (a Address) Encode(hrp string) (string, error) {
	return Bech32Encode(hrp, a[:])
}

// Hex returns the raw hex-encoded address without prefix.
func (a Address) Hex() string {
	return hex.EncodeToString(a[:])
}

// Bytes returns a copy of the address as a byte slice.
func (a Address) Bytes() []byte {
	b := make([]byte, AddressSize)
	copy(b, a[:])
	return b
}

// MarshalJSON encodes the address as a bech32 string.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes a cyber bech32 string into an address.
func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*a = Address{}
		return nil
	}
	parsed, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAddress decodes a cyber bech32 address.
func ParseAddress(s string) (Address, error) {
	return ParseAddressWithHRP(s, CyberHRP)
}

// ParseAddressWithHRP decodes a bech32 address and checks its HRP and
// payload length.
func ParseAddressWithHRP(s, hrp string) (Address, error) {
	if s == "" {
		return Address{}, fmt.Errorf("%w: empty", ErrInvalidAddress)
	}
	got, data, err := Bech32Decode(s)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if got != hrp {
		return Address{}, fmt.Errorf("%w: prefix %q, want %q", ErrInvalidAddress, got, hrp)
	}
	if len(data) != AddressSize {
		return Address{}, fmt.Errorf("%w: payload must be %d bytes, got %d", ErrInvalidAddress, AddressSize, len(data))
	}
	var a Address
	copy(a[:], data)
	return a, nil
}

// ValidateAddress reports whether s is a well-formed cyber address.
func ValidateAddress(s string) bool {
	_, err := ParseAddress(s)
	return err == nil
}

// HexToAddress converts a raw 40-character hex string to an Address.
func HexToAddress(s string) (Address, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if len(b) != AddressSize {
		return Address{}, fmt.Errorf("%w: must be %d bytes, got %d", ErrInvalidAddress, AddressSize, len(b))
	}
	var a Address
	copy(a[:], b)
	return a, nil
}
