package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/accountchain/ledger/block"
	"github.com/accountchain/ledger/crypto"
	"github.com/accountchain/ledger/keyvaluedb/memorydb"
	"github.com/accountchain/ledger/store"
	"github.com/accountchain/ledger/types"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(memorydb.New())
}

func newKeyPair(t *testing.T) *crypto.KeyPair {
	t.Helper()
	kp, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	return kp
}

func accountOf(t *testing.T, kp *crypto.KeyPair) types.Account {
	t.Helper()
	a, err := types.AccountFromBytes(kp.Public)
	require.NoError(t, err)
	return a
}

// sign computes a block's hash and attaches a valid signature over it,
// standing in for the external wallet/PoW collaborator spec.md places out
// of scope.
func sign(t *testing.T, kp *crypto.KeyPair, blk block.Block) {
	t.Helper()
	h := blk.Hash()
	sig, err := types.SignatureFromBytes(kp.Sign(h[:]))
	require.NoError(t, err)
	blk.SetSignature(sig)
}

// seedPending plants a pending credit directly into the store, standing in
// for a send block an external genesis/bootstrap process would otherwise
// have produced, so tests can open a first account the same way every
// later account does: by receiving a pending credit (spec.md §1 places
// chain bootstrap out of scope for this core). A placeholder block is
// stored at the source hash too, since Open's ladder requires the source
// to already exist.
func seedPending(t *testing.T, tx *store.Tx, to types.Account, source types.Account, amount types.Amount) types.Hash {
	t.Helper()
	sourceHash := types.Hash(source)
	placeholder := &block.Send{Destination: to, Balance: amount}
	require.NoError(t, tx.PutBlock(sourceHash, placeholder, types.ZeroHash))
	require.NoError(t, tx.PutFrontier(sourceHash, source))
	require.NoError(t, tx.PutPending(to, sourceHash, store.PendingInfo{
		Source: source, Amount: amount, TokenType: types.ChainToken,
	}))
	return sourceHash
}

// openAccount builds, signs, and processes an Open block claiming the
// pending credit left at source, returning the account and its open hash.
func openAccount(t *testing.T, l *Ledger, tx *store.Tx, kp *crypto.KeyPair, source types.Hash) (types.Account, types.Hash) {
	t.Helper()
	account := accountOf(t, kp)
	o := &block.Open{Source: source, Representative: account, Account: account}
	sign(t, kp, o)
	res := l.Process(tx, o)
	require.Equal(t, Progress, res.Code)
	return account, o.Hash()
}
