package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/accountchain/ledger/block"
	"github.com/accountchain/ledger/types"
)

func TestTallyOrdersByDescendingWeightStableOnTies(t *testing.T) {
	s := newTestStore(t)
	tx, err := s.BeginWrite()
	require.NoError(t, err)

	l := New(Options{})
	voters := make([]types.Account, 4)
	weights := []types.Amount{types.NewAmount(10), types.NewAmount(50), types.NewAmount(10), types.NewAmount(30)}
	for i := range voters {
		kp := newKeyPair(t)
		src := seedPending(t, tx, accountOf(t, kp), types.Account{byte(0xD0 + i)}, weights[i])
		voters[i], _ = openAccount(t, l, tx, kp, src)
	}

	blockA := types.Hash{1}
	blockB := types.Hash{2}
	votes := []Vote{
		{Voter: voters[0], Block: blockA},
		{Voter: voters[1], Block: blockB},
		{Voter: voters[2], Block: blockA},
		{Voter: voters[3], Block: blockA},
	}
	entries, err := l.Tally(tx, votes)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// blockA: voters[0]+voters[2]+voters[3] = 10+10+30 = 50, ties voters[1]'s 50 for blockB.
	require.Equal(t, blockA, entries[0].Block, "first-seen candidate wins a weight tie")
	require.Equal(t, types.NewAmount(50), entries[0].Weight)
	require.Equal(t, blockB, entries[1].Block)

	winner, found, err := l.Winner(tx, votes)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, blockA, winner.Block)

	require.NoError(t, tx.Commit())
}

func TestWinnerNoVotes(t *testing.T) {
	s := newTestStore(t)
	tx, err := s.BeginWrite()
	require.NoError(t, err)
	l := New(Options{})
	_, found, err := l.Winner(tx, nil)
	require.NoError(t, err)
	require.False(t, found)
	require.NoError(t, tx.Commit())
}

func TestBootstrapWeightOverride(t *testing.T) {
	s := newTestStore(t)
	tx, err := s.BeginWrite()
	require.NoError(t, err)

	l := New(Options{})
	kp := newKeyPair(t)
	total := types.NewAmount(5)
	src := seedPending(t, tx, accountOf(t, kp), types.Account{0xFF}, total)
	account, _ := openAccount(t, l, tx, kp, src)

	real, err := l.Weight(tx, account)
	require.NoError(t, err)
	require.Equal(t, total, real)

	override := types.NewAmount(999_999)
	l.SetBootstrapWeights(map[types.Account]types.Amount{account: override})
	require.True(t, l.CheckBootstrapWeights())

	overridden, err := l.Weight(tx, account)
	require.NoError(t, err)
	require.Equal(t, override, overridden, "while the bootstrap override is active it must win over the real table")

	l.SetBootstrapWeights(nil)
	require.False(t, l.CheckBootstrapWeights())

	back, err := l.Weight(tx, account)
	require.NoError(t, err)
	require.Equal(t, real, back)

	require.NoError(t, tx.Commit())
}

func TestSuccessorAndForkedBlock(t *testing.T) {
	s := newTestStore(t)
	tx, err := s.BeginWrite()
	require.NoError(t, err)

	l := New(Options{})
	kp := newKeyPair(t)
	total := types.NewAmount(700)
	src := seedPending(t, tx, accountOf(t, kp), types.Account{0xFF}, total)
	_, openHash := openAccount(t, l, tx, kp, src)

	send := &block.Send{Previous: openHash, Destination: types.Account{9}, Balance: types.NewAmount(100)}
	sign(t, kp, send)
	require.Equal(t, Progress, l.Process(tx, send).Code)

	successor, err := Successor(tx, openHash)
	require.NoError(t, err)
	require.Equal(t, send.Hash(), successor.Hash())

	forked := &block.Send{Previous: openHash, Destination: types.Account{8}, Balance: types.NewAmount(1)}
	sign(t, kp, forked)
	winner, err := ForkedBlock(tx, forked)
	require.NoError(t, err)
	require.Equal(t, send.Hash(), winner.Hash(), "forked_block must resolve to whichever block actually occupies the contested root")

	require.NoError(t, tx.Commit())
}

func TestTokenAccount(t *testing.T) {
	s := newTestStore(t)
	tx, err := s.BeginWrite()
	require.NoError(t, err)

	l := New(Options{})
	kp := newKeyPair(t)
	total := types.NewAmount(42)
	src := seedPending(t, tx, accountOf(t, kp), types.Account{0xFF}, total)
	_, openHash := openAccount(t, l, tx, kp, src)

	tokenAccount, err := TokenAccount(tx, openHash)
	require.NoError(t, err)
	require.Equal(t, openHash, tokenAccount)

	require.NoError(t, tx.Commit())
}
