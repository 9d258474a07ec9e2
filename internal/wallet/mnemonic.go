// Package wallet implements the cyber HD wallet: BIP-39 mnemonics, BIP-32
// key derivation along BIP-44 paths, and the wallet values handed to callers.
package wallet

import (
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

const (
	// MnemonicEntropyBits is the entropy size for 12-word mnemonics.
	MnemonicEntropyBits = 128

	// MnemonicWords is the number of words in a phrase.
	MnemonicWords = 12
)

// Mnemonic is a parsed and checksum-verified phrase.
type Mnemonic struct {
	Words   []string
	Entropy []byte
}

// Phrase returns the words joined by single spaces.
func (m *Mnemonic) Phrase() string {
	return strings.Join(m.Words, " ")
}

// Zero overwrites the entropy.
func (m *Mnemonic) Zero() {
	for i := range m.Entropy {
		m.Entropy[i] = 0
	}
}

// GeneratePhrase creates a new 12-word BIP-39 mnemonic from 128 bits of
// crypto/rand entropy.
func GeneratePhrase() (string, error) {
	entropy, err := bip39.NewEntropy(MnemonicEntropyBits)
	if err != nil {
		return "", fmt.Errorf("generate entropy: %w", err)
	}
	defer zeroBytes(entropy)
	return PhraseFromEntropy(entropy)
}

// PhraseFromEntropy encodes 16 bytes of entropy plus its 4-bit checksum as
// 12 words.
func PhraseFromEntropy(entropy []byte) (string, error) {
	if len(entropy)*8 != MnemonicEntropyBits {
		return "", fmt.Errorf("%w: entropy must be %d bits, got %d", ErrInvalidMnemonic, MnemonicEntropyBits, len(entropy)*8)
	}
	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("generate mnemonic: %w", err)
	}
	return phrase, nil
}

// ParseMnemonic splits phrase on whitespace, checks every word against the
// English list and verifies the checksum. All failures wrap
// ErrInvalidMnemonic.
func ParseMnemonic(phrase string) (*Mnemonic, error) {
	words := strings.Fields(phrase)
	if len(words) != MnemonicWords {
		return nil, fmt.Errorf("%w: got %d words, want %d", ErrInvalidMnemonic, len(words), MnemonicWords)
	}
	for i, w := range words {
		if _, ok := bip39.GetWordIndex(w); !ok {
			return nil, fmt.Errorf("%w: word %d %q is not in the wordlist", ErrInvalidMnemonic, i+1, w)
		}
	}

	entropy, err := bip39.EntropyFromMnemonic(strings.Join(words, " "))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMnemonic, err)
	}
	return &Mnemonic{Words: words, Entropy: entropy}, nil
}

// ValidateMnemonic reports whether phrase is a valid 12-word mnemonic
// (correct word count, valid words, valid checksum).
func ValidateMnemonic(phrase string) bool {
	m, err := ParseMnemonic(phrase)
	if err != nil {
		return false
	}
	m.Zero()
	return true
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
