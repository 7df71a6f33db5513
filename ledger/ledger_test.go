package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/accountchain/ledger/block"
	"github.com/accountchain/ledger/crypto"
	"github.com/accountchain/ledger/types"
)

// TestGenesisQuery covers spec.md §8 scenario (a): opening the first
// account against a seeded pending credit and querying it back.
func TestGenesisQuery(t *testing.T) {
	s := newTestStore(t)
	tx, err := s.BeginWrite()
	require.NoError(t, err)

	l := New(Options{})
	kp := newKeyPair(t)
	genesisAmount := types.NewAmount(1_000_000)
	src := seedPending(t, tx, accountOf(t, kp), types.Account{0xFF}, genesisAmount)
	account, openHash := openAccount(t, l, tx, kp, src)

	bal, err := Balance(tx, openHash)
	require.NoError(t, err)
	require.Equal(t, genesisAmount, bal)

	latest, err := Latest(tx, account, types.ChainToken)
	require.NoError(t, err)
	require.Equal(t, openHash, latest)

	weight, err := l.Weight(tx, account)
	require.NoError(t, err)
	require.Equal(t, genesisAmount, weight)

	gotAccount, token, err := Account(tx, openHash)
	require.NoError(t, err)
	require.Equal(t, account, gotAccount)
	require.Equal(t, types.ChainToken, token)

	require.NoError(t, tx.Commit())
}

// TestSendReceiveThenFullRollback covers spec.md §8 scenario (b): a
// send/receive round trip, then rolling the whole thing back to an empty
// ledger with the checksum restored to its pre-genesis value.
func TestSendReceiveThenFullRollback(t *testing.T) {
	s := newTestStore(t)
	tx, err := s.BeginWrite()
	require.NoError(t, err)

	l := New(Options{})
	kpA := newKeyPair(t)
	kpB := newKeyPair(t)
	total := types.NewAmount(500)
	src := seedPending(t, tx, accountOf(t, kpA), types.Account{0xFF}, total)
	accountA, openA := openAccount(t, l, tx, kpA, src)

	sendAmount := types.NewAmount(200)
	accountB := accountOf(t, kpB)
	send := &block.Send{Previous: openA, Destination: accountB, Balance: total.Sub(sendAmount)}
	sign(t, kpA, send)
	res := l.Process(tx, send)
	require.Equal(t, Progress, res.Code)
	sendHash := send.Hash()

	openB := &block.Open{Source: sendHash, Representative: accountB, Account: accountB}
	sign(t, kpB, openB)
	res = l.Process(tx, openB)
	require.Equal(t, Progress, res.Code)

	weightB, err := l.Weight(tx, accountB)
	require.NoError(t, err)
	require.Equal(t, sendAmount, weightB)

	require.NoError(t, l.Rollback(tx, sendHash))
	require.NoError(t, l.Rollback(tx, openA))

	_, foundA, err := tx.GetAccountInfo(accountA, types.ChainToken)
	require.NoError(t, err)
	require.False(t, foundA)
	_, foundB, err := tx.GetAccountInfo(accountB, types.ChainToken)
	require.NoError(t, err)
	require.False(t, foundB)

	checksum, err := Checksum(tx)
	require.NoError(t, err)
	require.Equal(t, types.ZeroHash, checksum, "fully rolled back ledger must restore the pre-genesis checksum")

	require.NoError(t, tx.Commit())
}

// TestDoubleSpendForks covers spec.md §8 scenario (c): two blocks racing to
// extend the same head must not both apply.
func TestDoubleSpendForks(t *testing.T) {
	s := newTestStore(t)
	tx, err := s.BeginWrite()
	require.NoError(t, err)

	l := New(Options{})
	kp := newKeyPair(t)
	total := types.NewAmount(100)
	src := seedPending(t, tx, accountOf(t, kp), types.Account{0xFF}, total)
	_, openHash := openAccount(t, l, tx, kp, src)

	destA := types.Account{1}
	destB := types.Account{2}
	sendA := &block.Send{Previous: openHash, Destination: destA, Balance: types.NewAmount(50)}
	sign(t, kp, sendA)
	require.Equal(t, Progress, l.Process(tx, sendA).Code)

	sendB := &block.Send{Previous: openHash, Destination: destB, Balance: types.NewAmount(10)}
	sign(t, kp, sendB)
	require.Equal(t, Fork, l.Process(tx, sendB).Code)

	require.NoError(t, tx.Commit())
}

// TestNegativeSpendRejected covers spec.md §8 scenario (d).
func TestNegativeSpendRejected(t *testing.T) {
	s := newTestStore(t)
	tx, err := s.BeginWrite()
	require.NoError(t, err)

	l := New(Options{})
	kp := newKeyPair(t)
	total := types.NewAmount(100)
	src := seedPending(t, tx, accountOf(t, kp), types.Account{0xFF}, total)
	_, openHash := openAccount(t, l, tx, kp, src)

	send := &block.Send{Previous: openHash, Destination: types.Account{1}, Balance: types.NewAmount(150)}
	sign(t, kp, send)
	require.Equal(t, NegativeSpend, l.Process(tx, send).Code)

	require.NoError(t, tx.Commit())
}

// TestStateSendReceiveAndBalanceMismatch covers spec.md §8 scenario (e).
func TestStateSendReceiveAndBalanceMismatch(t *testing.T) {
	s := newTestStore(t)
	tx, err := s.BeginWrite()
	require.NoError(t, err)

	l := New(Options{})
	kpA := newKeyPair(t)
	kpB := newKeyPair(t)
	total := types.NewAmount(1_000)
	src := seedPending(t, tx, accountOf(t, kpA), types.Account{0xFF}, total)
	accountA, openA := openAccount(t, l, tx, kpA, src)

	accountB := accountOf(t, kpB)
	sendAmount := types.NewAmount(300)
	stSend := &block.State{
		Account: accountA, Previous: openA, Representative: accountA,
		Balance: total.Sub(sendAmount), Link: types.Hash(accountB),
	}
	sign(t, kpA, stSend)
	res := l.Process(tx, stSend)
	require.Equal(t, Progress, res.Code)
	require.True(t, res.StateIsSend)

	badReceive := &block.State{
		Account: accountB, Representative: accountB,
		Balance: sendAmount.Add(types.NewAmount(1)), Link: stSend.Hash(),
	}
	sign(t, kpB, badReceive)
	require.Equal(t, BalanceMismatch, l.Process(tx, badReceive).Code)

	stOpen := &block.State{
		Account: accountB, Representative: accountB,
		Balance: sendAmount, Link: stSend.Hash(),
	}
	sign(t, kpB, stOpen)
	res = l.Process(tx, stOpen)
	require.Equal(t, Progress, res.Code)
	require.False(t, res.StateIsSend)

	bal, err := Balance(tx, stOpen.Hash())
	require.NoError(t, err)
	require.Equal(t, sendAmount, bal)

	require.NoError(t, tx.Commit())
}

// TestSmartContractRegistrationLifecycle covers spec.md §8 scenario (f).
func TestSmartContractRegistrationLifecycle(t *testing.T) {
	s := newTestStore(t)
	tx, err := s.BeginWrite()
	require.NoError(t, err)

	l := New(Options{})
	owner := newKeyPair(t)
	scKey := newKeyPair(t)
	abi := []byte(`{"name":"token"}`)
	abiHash := types.Hash(crypto.Hash256(abi))

	sc := &block.SmartContract{
		ScAccount: accountOf(t, scKey), ScOwnerAccount: accountOf(t, owner),
		AbiHash: abiHash, AbiBytes: abi,
	}
	sign(t, scKey, sc)
	require.Equal(t, Progress, l.Process(tx, sc).Code)

	require.Equal(t, Old, l.Process(tx, sc).Code)

	dupKey := newKeyPair(t)
	dup := &block.SmartContract{
		ScAccount: accountOf(t, dupKey), ScOwnerAccount: accountOf(t, owner),
		AbiHash: abiHash, AbiBytes: abi,
	}
	sign(t, dupKey, dup)
	require.Equal(t, AbiAlreadyExist, l.Process(tx, dup).Code)

	storedAbi, found, err := tx.GetAbi(abiHash)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, abi, storedAbi)

	require.NoError(t, tx.Commit())
}
