// derive_key.go prints the public key and address for a hex-encoded private
// key file.
// Usage: go run scripts/derive_key.go <keyfile> [hrp]
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/cybercongress/cyber-wallet/pkg/crypto"
	"github.com/cybercongress/cyber-wallet/pkg/types"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: derive_key <keyfile> [hrp]")
		os.Exit(1)
	}
	hrp := types.CyberHRP
	if len(os.Args) > 2 {
		hrp = os.Args[2]
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fatal(err)
	}
	keyBytes, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		fatal(err)
	}
	key, err := crypto.PrivateKeyFromBytes(keyBytes)
	if err != nil {
		fatal(err)
	}
	defer key.Zero()

	pub := key.PublicKey()
	addr, err := pub.Address().Encode(hrp)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("pubkey=%s\n", pub)
	fmt.Printf("address=%s\n", addr)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
