package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/accountchain/ledger/block"
	"github.com/accountchain/ledger/keyvaluedb/boltdb"
	"github.com/accountchain/ledger/keyvaluedb/memorydb"
	"github.com/accountchain/ledger/types"
)

func openBoltStore(t *testing.T) *Store {
	t.Helper()
	db, err := boltdb.Open(filepath.Join(t.TempDir(), "ledger.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, db.Close()) })
	return New(db)
}

func TestStore_BlocksRoundTrip(t *testing.T) {
	for _, s := range []*Store{New(memorydb.New()), openBoltStore(t)} {
		tx, err := s.BeginWrite()
		require.NoError(t, err)

		send := &block.Send{Destination: types.Account{1}, Balance: types.NewAmount(5)}
		send.SetSignature(types.Signature{9})
		send.SetWork(types.Work(1))
		hash := send.Hash()

		require.NoError(t, tx.PutBlock(hash, send, types.ZeroHash))
		got, successor, found, err := tx.GetBlock(hash)
		require.NoError(t, err)
		require.True(t, found)
		require.True(t, successor.IsZero())
		require.Equal(t, hash, got.Hash())

		other := types.Hash{7}
		require.NoError(t, tx.SetSuccessor(hash, other))
		_, successor, _, err = tx.GetBlock(hash)
		require.NoError(t, err)
		require.Equal(t, other, successor)

		require.NoError(t, tx.DeleteBlock(hash))
		_, _, found, err = tx.GetBlock(hash)
		require.NoError(t, err)
		require.False(t, found)

		require.NoError(t, tx.Commit())
	}
}

func TestStore_AccountsPendingFrontier(t *testing.T) {
	s := New(memorydb.New())
	tx, err := s.BeginWrite()
	require.NoError(t, err)

	acct := types.Account{1}
	info := AccountInfo{Head: types.Hash{1}, Balance: types.NewAmount(10), BlockCount: 1}
	require.NoError(t, tx.PutAccountInfo(acct, types.ChainToken, info))
	got, found, err := tx.GetAccountInfo(acct, types.ChainToken)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, info, got)

	dest := types.Account{2}
	send := types.Hash{3}
	require.NoError(t, tx.PutPending(dest, send, PendingInfo{Source: acct, Amount: types.NewAmount(4)}))
	p, found, err := tx.GetPending(dest, send)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, types.NewAmount(4), p.Amount)
	require.NoError(t, tx.DeletePending(dest, send))
	_, found, err = tx.GetPending(dest, send)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, tx.PutFrontier(types.Hash{5}, acct))
	fa, found, err := tx.GetFrontier(types.Hash{5})
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, acct, fa)

	require.NoError(t, tx.Commit())
}

func TestStore_RepresentationWeights(t *testing.T) {
	s := New(memorydb.New())
	tx, err := s.BeginWrite()
	require.NoError(t, err)

	rep := types.Hash{1}
	require.NoError(t, tx.AddWeight(rep, types.NewAmount(100)))
	w, err := tx.GetWeight(rep)
	require.NoError(t, err)
	require.Equal(t, types.NewAmount(100), w)

	require.NoError(t, tx.AddWeight(rep, types.NewAmount(50)))
	w, err = tx.GetWeight(rep)
	require.NoError(t, err)
	require.Equal(t, types.NewAmount(150), w)

	require.NoError(t, tx.SubWeight(rep, types.NewAmount(150)))
	w, err = tx.GetWeight(rep)
	require.NoError(t, err)
	require.True(t, w.IsZero())

	require.NoError(t, tx.Commit())
}

func TestStore_ChecksumXorIsSymmetric(t *testing.T) {
	s := New(memorydb.New())
	tx, err := s.BeginWrite()
	require.NoError(t, err)

	before, err := tx.GetChecksum()
	require.NoError(t, err)

	h := types.Hash{42}
	require.NoError(t, tx.XorChecksum(h))
	mid, err := tx.GetChecksum()
	require.NoError(t, err)
	require.NotEqual(t, before, mid)

	require.NoError(t, tx.XorChecksum(h))
	after, err := tx.GetChecksum()
	require.NoError(t, err)
	require.Equal(t, before, after, "xoring the same hash twice must restore the prior checksum")

	require.NoError(t, tx.Commit())
}

func TestStore_Abi(t *testing.T) {
	s := New(memorydb.New())
	tx, err := s.BeginWrite()
	require.NoError(t, err)

	h := types.Hash{1}
	require.NoError(t, tx.PutAbi(h, []byte("abi-bytes")))
	got, found, err := tx.GetAbi(h)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte("abi-bytes"), got)

	require.NoError(t, tx.Commit())
}

func TestStore_WriteThenAbort(t *testing.T) {
	s := openBoltStore(t)
	tx, err := s.BeginWrite()
	require.NoError(t, err)
	require.NoError(t, tx.PutFrontier(types.Hash{1}, types.Account{1}))
	require.NoError(t, tx.Abort())

	readTx, err := s.BeginRead()
	require.NoError(t, err)
	_, found, err := readTx.GetFrontier(types.Hash{1})
	require.NoError(t, err)
	require.False(t, found, "aborted write must not be visible")
	require.NoError(t, readTx.Commit())
}
