package wallet

import (
	"fmt"
	"runtime"

	"github.com/cybercongress/cyber-wallet/internal/log"
	"github.com/cybercongress/cyber-wallet/pkg/crypto"
	"github.com/cybercongress/cyber-wallet/pkg/types"
	"github.com/tyler-smith/go-bip32"
	"golang.org/x/sync/errgroup"
)

// MaxAccountRange caps how many addresses one DeriveAccounts call returns.
const MaxAccountRange = 10000

// Account is one receive (or change) address of a BIP-44 account.
type Account struct {
	Index     uint32
	Path      DerivationPath
	PublicKey *crypto.PublicKey
	Address   types.Address
}

// DeriveAccounts derives addresses start..start+count-1 under
// m/44'/118'/account'/change. The hardened prefix is derived once; the
// non-hardened leaves are derived from its public key in parallel. Results
// are in index order.
func DeriveAccounts(seed []byte, account, change, start, count uint32) ([]Account, error) {
	if count == 0 {
		return nil, nil
	}
	if count > MaxAccountRange {
		return nil, fmt.Errorf("%w: count %d exceeds %d", ErrInvalidDerivationPath, count, MaxAccountRange)
	}
	if account >= bip32.FirstHardenedChild || change >= bip32.FirstHardenedChild {
		return nil, fmt.Errorf("%w: account and change must be below 2^31", ErrInvalidDerivationPath)
	}
	if uint64(start)+uint64(count) > uint64(bip32.FirstHardenedChild) {
		return nil, fmt.Errorf("%w: index range [%d, %d) leaves [0, 2^31)", ErrInvalidDerivationPath, start, uint64(start)+uint64(count))
	}

	master, err := NewMasterKey(seed)
	if err != nil {
		return nil, err
	}
	defer master.Zero()

	prefix := AccountPath(account, change, 0)
	prefix = prefix[:len(prefix)-1]
	branch, err := master.DerivePath(prefix)
	if err != nil {
		return nil, err
	}
	parent := branch.Neuter()
	branch.Zero()

	done := log.Benchmark(fmt.Sprintf("accounts %s/[%d..%d]", prefix, start, uint64(start)+uint64(count)-1))
	defer done()

	accounts := make([]Account, count)
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := uint32(0); i < count; i++ {
		index := start + i
		g.Go(func() error {
			child, err := parent.DeriveChild(index)
			if err != nil {
				return fmt.Errorf("account %d index %d: %w", account, index, err)
			}
			accounts[i] = Account{
				Index:     index,
				Path:      AccountPath(account, change, index),
				PublicKey: child.PublicKey(),
				Address:   child.Address(),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return accounts, nil
}
