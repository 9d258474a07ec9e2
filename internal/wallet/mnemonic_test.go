package wallet

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/tyler-smith/go-bip39"
	"github.com/tyler-smith/go-bip39/wordlists"
)

const abandonAbout = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestGeneratePhrase(t *testing.T) {
	phrase, err := GeneratePhrase()
	if err != nil {
		t.Fatalf("GeneratePhrase() error: %v", err)
	}

	words := strings.Fields(phrase)
	if len(words) != MnemonicWords {
		t.Errorf("word count = %d, want %d", len(words), MnemonicWords)
	}
}

func TestGeneratePhrase_Unique(t *testing.T) {
	p1, err := GeneratePhrase()
	if err != nil {
		t.Fatalf("GeneratePhrase() error: %v", err)
	}
	p2, err := GeneratePhrase()
	if err != nil {
		t.Fatalf("GeneratePhrase() error: %v", err)
	}

	if p1 == p2 {
		t.Error("two generated phrases should not be identical")
	}
}

func TestGeneratePhrase_AlwaysParses(t *testing.T) {
	for i := 0; i < 64; i++ {
		phrase, err := GeneratePhrase()
		if err != nil {
			t.Fatalf("GeneratePhrase() error: %v", err)
		}
		if _, err := ParseMnemonic(phrase); err != nil {
			t.Fatalf("ParseMnemonic(%q) error: %v", phrase, err)
		}
	}
}

func TestPhraseFromEntropy_KnownVectors(t *testing.T) {
	tests := []struct {
		entropy string
		phrase  string
	}{
		{"00000000000000000000000000000000", abandonAbout},
		{"7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f", "legal winner thank year wave sausage worth useful legal winner thank yellow"},
		{"80808080808080808080808080808080", "letter advice cage absurd amount doctor acoustic avoid letter advice cage above"},
		{"ffffffffffffffffffffffffffffffff", "zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.entropy, func(t *testing.T) {
			entropy, _ := hex.DecodeString(tt.entropy)
			phrase, err := PhraseFromEntropy(entropy)
			if err != nil {
				t.Fatalf("PhraseFromEntropy() error: %v", err)
			}
			if phrase != tt.phrase {
				t.Errorf("phrase = %q, want %q", phrase, tt.phrase)
			}

			m, err := ParseMnemonic(tt.phrase)
			if err != nil {
				t.Fatalf("ParseMnemonic() error: %v", err)
			}
			if !bytes.Equal(m.Entropy, entropy) {
				t.Errorf("entropy = %x, want %x", m.Entropy, entropy)
			}
		})
	}
}

func TestPhraseFromEntropy_WrongSize(t *testing.T) {
	_, err := PhraseFromEntropy(make([]byte, 32))
	if !errors.Is(err, ErrInvalidMnemonic) {
		t.Errorf("error = %v, want ErrInvalidMnemonic", err)
	}
}

func TestParseMnemonic_MatchesBIP39Library(t *testing.T) {
	for i := 0; i < 32; i++ {
		phrase, err := GeneratePhrase()
		if err != nil {
			t.Fatalf("GeneratePhrase() error: %v", err)
		}
		m, err := ParseMnemonic(phrase)
		if err != nil {
			t.Fatalf("ParseMnemonic() error: %v", err)
		}
		want, err := bip39.EntropyFromMnemonic(phrase)
		if err != nil {
			t.Fatalf("bip39.EntropyFromMnemonic() error: %v", err)
		}
		if !bytes.Equal(m.Entropy, want) {
			t.Errorf("entropy = %x, want %x", m.Entropy, want)
		}
	}
}

func TestParseMnemonic_Whitespace(t *testing.T) {
	m, err := ParseMnemonic("  abandon abandon\tabandon abandon abandon abandon\nabandon abandon abandon abandon abandon   about ")
	if err != nil {
		t.Fatalf("ParseMnemonic() error: %v", err)
	}
	if m.Phrase() != abandonAbout {
		t.Errorf("Phrase() = %q, want %q", m.Phrase(), abandonAbout)
	}
}

func TestParseMnemonic_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		phrase string
	}{
		{"empty", ""},
		{"single word", "abandon"},
		{"eleven words", "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"},
		{"twenty four words", abandonAbout + " " + abandonAbout},
		{"unknown word", "abandon abandon abandon abandon abandon xyzzy abandon abandon abandon abandon abandon about"},
		{"upper case word", "Abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"},
		{"bad checksum", "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon"},
		{"random words", "not a valid mnemonic phrase at all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMnemonic(tt.phrase)
			if !errors.Is(err, ErrInvalidMnemonic) {
				t.Errorf("ParseMnemonic() error = %v, want ErrInvalidMnemonic", err)
			}
		})
	}
}

func TestParseMnemonic_ErrorNamesWord(t *testing.T) {
	_, err := ParseMnemonic("abandon abandon abandon abandon abandon xyzzy abandon abandon abandon abandon abandon about")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "word 6") || !strings.Contains(err.Error(), "xyzzy") {
		t.Errorf("error = %q, want position and word", err)
	}
}

// Flipping one entropy bit while keeping the old checksum bits must be caught
// unless the 4-bit checksum happens to collide.
func TestParseMnemonic_EntropyBitFlips(t *testing.T) {
	const wordBits = 11
	words := strings.Fields(abandonAbout)

	rejected := 0
	for bit := 0; bit < MnemonicEntropyBits; bit++ {
		mutated := append([]string(nil), words...)
		w := bit / wordBits
		idx, _ := bip39.GetWordIndex(mutated[w])
		mutated[w] = wordlists.English[idx^1<<(wordBits-1-bit%wordBits)]
		phrase := strings.Join(mutated, " ")

		var flipped [16]byte
		flipped[bit/8] ^= 0x80 >> (bit % 8)
		canonical, err := bip39.NewMnemonic(flipped[:])
		if err != nil {
			t.Fatalf("bip39.NewMnemonic() error: %v", err)
		}
		collides := canonical == phrase

		_, err = ParseMnemonic(phrase)
		switch {
		case collides && err != nil:
			t.Errorf("bit %d: checksum collides but ParseMnemonic() error: %v", bit, err)
		case !collides && !errors.Is(err, ErrInvalidMnemonic):
			t.Errorf("bit %d: ParseMnemonic() error = %v, want ErrInvalidMnemonic", bit, err)
		}
		if err != nil {
			rejected++
		}
	}

	if rejected < MnemonicEntropyBits*7/8 {
		t.Errorf("rejected %d of %d flips, want at least %d", rejected, MnemonicEntropyBits, MnemonicEntropyBits*7/8)
	}
}

// Swapping two words of a valid phrase must be judged exactly as go-bip39
// judges it, and accepted phrases must stretch to the library's seed.
func TestParseMnemonic_SwappedWordsAgreeWithBIP39(t *testing.T) {
	for i := 0; i < 200; i++ {
		phrase, err := GeneratePhrase()
		if err != nil {
			t.Fatalf("GeneratePhrase() error: %v", err)
		}
		words := strings.Fields(phrase)
		a, b := i%MnemonicWords, (i*7+3)%MnemonicWords
		words[a], words[b] = words[b], words[a]
		swapped := strings.Join(words, " ")

		m, err := ParseMnemonic(swapped)
		want, wantErr := bip39.EntropyFromMnemonic(swapped)
		if (err == nil) != (wantErr == nil) {
			t.Fatalf("ParseMnemonic(%q) error = %v, bip39 error = %v", swapped, err, wantErr)
		}
		if err != nil {
			if !errors.Is(err, ErrInvalidMnemonic) {
				t.Errorf("error = %v, want ErrInvalidMnemonic", err)
			}
			continue
		}
		if !bytes.Equal(m.Entropy, want) {
			t.Errorf("entropy = %x, want %x", m.Entropy, want)
		}

		seed, err := SeedFromMnemonic(swapped, "")
		if err != nil {
			t.Fatalf("SeedFromMnemonic() error: %v", err)
		}
		if !bytes.Equal(seed, bip39.NewSeed(swapped, "")) {
			t.Errorf("seed for %q differs from bip39.NewSeed", swapped)
		}
	}
}

func TestValidateMnemonic(t *testing.T) {
	tests := []struct {
		name   string
		phrase string
		valid  bool
	}{
		{"valid 12-word BIP-39", abandonAbout, true},
		{"vector 1", "soap weird dutch gap region blossom antique economy legend loan ugly boring", true},
		{"vector 2", "tomorrow few flag walnut dwarf kiwi close stick sniff satoshi chest vacuum", true},
		{"24 words not supported", "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon art", false},
		{"empty string", "", false},
		{"wrong checksum", "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateMnemonic(tt.phrase); got != tt.valid {
				t.Errorf("ValidateMnemonic() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestMnemonic_Zero(t *testing.T) {
	m, err := ParseMnemonic("legal winner thank year wave sausage worth useful legal winner thank yellow")
	if err != nil {
		t.Fatalf("ParseMnemonic() error: %v", err)
	}
	m.Zero()
	if !bytes.Equal(m.Entropy, make([]byte, 16)) {
		t.Errorf("entropy after Zero() = %x, want zeros", m.Entropy)
	}
}
