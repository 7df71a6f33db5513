package block

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/accountchain/ledger/types"
)

func mustAccount(b byte) types.Account {
	var a types.Account
	a[0] = b
	return a
}

func mustHash(b byte) types.Hash {
	var h types.Hash
	h[0] = b
	return h
}

func TestValidPredecessor(t *testing.T) {
	require.True(t, ValidPredecessor(TypeSend, TypeOpen))
	require.True(t, ValidPredecessor(TypeChange, TypeSend))
	require.False(t, ValidPredecessor(TypeSend, TypeState))
	require.True(t, ValidPredecessor(TypeState, TypeState))
	require.True(t, ValidPredecessor(TypeState, TypeSend))
	require.True(t, ValidPredecessor(TypeSmartContract, TypeState))
}

func TestHashDeterministicAndDistinct(t *testing.T) {
	s := &Send{Previous: mustHash(1), Destination: mustAccount(2), Balance: types.NewAmount(100)}
	h1 := s.Hash()
	h2 := s.Hash()
	require.Equal(t, h1, h2)

	s2 := &Send{Previous: mustHash(1), Destination: mustAccount(2), Balance: types.NewAmount(101)}
	require.NotEqual(t, h1, s2.Hash())

	st := &State{Account: mustAccount(3), Previous: mustHash(1), Representative: mustAccount(3), Balance: types.NewAmount(100)}
	require.NotEqual(t, h1, st.Hash(), "legacy and state hashes of similar content must not collide")
}

func TestRoot(t *testing.T) {
	o := &Open{Source: mustHash(1), Representative: mustAccount(2), Account: mustAccount(3)}
	require.Equal(t, types.Hash(o.Account), o.Root())

	s := &Send{Previous: mustHash(9)}
	require.Equal(t, mustHash(9), s.Root())

	stOpen := &State{Account: mustAccount(4)}
	require.Equal(t, types.Hash(stOpen.Account), stOpen.Root())

	stNormal := &State{Account: mustAccount(4), Previous: mustHash(5)}
	require.Equal(t, mustHash(5), stNormal.Root())
}

func TestWireRoundTrip(t *testing.T) {
	cases := []Block{
		&Send{Previous: mustHash(1), Destination: mustAccount(2), Balance: types.NewAmount(5)},
		&Receive{Previous: mustHash(1), Source: mustHash(2)},
		&Open{Source: mustHash(1), Representative: mustAccount(2), Account: mustAccount(3)},
		&Change{Previous: mustHash(1), Representative: mustAccount(2)},
		&State{Account: mustAccount(1), Previous: mustHash(2), Representative: mustAccount(3), Balance: types.NewAmount(7), Link: mustHash(4), TokenHash: mustHash(5)},
		&SmartContract{ScAccount: mustAccount(1), ScOwnerAccount: mustAccount(2), AbiHash: mustHash(3), AbiBytes: []byte("abi-payload")},
	}
	for _, b := range cases {
		b.SetSignature(types.Signature{9, 9, 9})
		b.SetWork(types.Work(42))
		encoded, err := Encode(b)
		require.NoError(t, err)
		decoded, err := Decode(b.Type(), encoded)
		require.NoError(t, err)
		require.Equal(t, b.Hash(), decoded.Hash())
		require.Equal(t, b.Signature(), decoded.Signature())
		require.Equal(t, b.Work(), decoded.Work())
	}
}

func TestStateJSONRoundTrip(t *testing.T) {
	st := &State{
		Account:        mustAccount(1),
		Previous:       mustHash(2),
		Representative: mustAccount(3),
		Balance:        types.NewAmount(123),
		Link:           mustHash(4),
		TokenHash:      types.ChainToken,
	}
	st.SetSignature(types.Signature{1, 2, 3})
	st.SetWork(types.Work(7))

	data, err := st.MarshalJSON()
	require.NoError(t, err)

	var decoded State
	require.NoError(t, decoded.UnmarshalJSON(data))
	require.Equal(t, st.Hash(), decoded.Hash())

	// link_as_account-only payload must decode identically.
	linkAccount := types.Account(st.Link)
	altJSON := `{"type":"state","account":"` + st.Account.String() + `","previous":"` + st.Previous.String() +
		`","representative":"` + st.Representative.String() + `","balance":"123","link_as_account":"` + linkAccount.String() +
		`","token":"` + st.TokenHash.String() + `","signature":"` + st.Signature().String() + `","work":"` + st.Work().String() + `"}`
	var decoded2 State
	require.NoError(t, decoded2.UnmarshalJSON([]byte(altJSON)))
	require.Equal(t, st.Link, decoded2.Link)
}
