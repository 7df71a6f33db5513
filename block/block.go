package block

import "github.com/accountchain/ledger/types"

// Block is the common surface every block variant implements. The set of
// variants is closed and consensus-critical (spec.md §9: "Do not use open
// polymorphism"); Block exists only to let the store and the rollup layer
// hold a value of any variant, never to let callers add new ones.
type Block interface {
	Type() Type
	// Hash returns the block's canonical BLAKE2b-256 hash (§4.1).
	Hash() types.Hash
	Signature() types.Signature
	Work() types.Work
	// Root returns the value the work predicate is evaluated over:
	// previous if nonzero, else the owning account (§4.4).
	Root() types.Hash
	// SetSignature and SetWork let a signer attach its output after the
	// unsigned block is constructed; both are excluded from Hash().
	SetSignature(types.Signature)
	SetWork(types.Work)
}

type base struct {
	sig  types.Signature
	work types.Work
}

func (b *base) Signature() types.Signature    { return b.sig }
func (b *base) Work() types.Work              { return b.work }
func (b *base) SetSignature(s types.Signature) { b.sig = s }
func (b *base) SetWork(w types.Work)           { b.work = w }

// Send decreases the sender's balance to Balance; the delta becomes a
// pending credit for Destination (spec.md §3).
type Send struct {
	base
	Previous    types.Hash
	Destination types.Account
	Balance     types.Amount
}

func (b *Send) Type() Type      { return TypeSend }
func (b *Send) Hash() types.Hash { return hashSend(b) }
func (b *Send) Root() types.Hash { return b.Previous }

// Receive claims the pending credit produced by the send whose hash is
// Source.
type Receive struct {
	base
	Previous types.Hash
	Source   types.Hash
}

func (b *Receive) Type() Type      { return TypeReceive }
func (b *Receive) Hash() types.Hash { return hashReceive(b) }
func (b *Receive) Root() types.Hash { return b.Previous }

// Open is the first block of an account chain; it claims a pending
// credit.
type Open struct {
	base
	Source         types.Hash
	Representative types.Account
	Account        types.Account
}

func (b *Open) Type() Type      { return TypeOpen }
func (b *Open) Hash() types.Hash { return hashOpen(b) }
func (b *Open) Root() types.Hash {
	var h types.Hash
	copy(h[:], b.Account[:])
	return h
}

// Change alters vote-delegation representative; balance is unchanged.
type Change struct {
	base
	Previous       types.Hash
	Representative types.Account
}

func (b *Change) Type() Type      { return TypeChange }
func (b *Change) Hash() types.Hash { return hashChange(b) }
func (b *Change) Root() types.Hash { return b.Previous }

// State is the universal block form: it is a send when Balance decreases
// relative to the account's previous balance, a receive/open when Link is
// nonzero and Balance increases, and a change when Link is zero.
// TokenHash zero means the native token.
type State struct {
	base
	Account        types.Account
	Previous       types.Hash
	Representative types.Account
	Balance        types.Amount
	Link           types.Hash
	TokenHash      types.TokenType
}

func (b *State) Type() Type      { return TypeState }
func (b *State) Hash() types.Hash { return hashState(b) }
func (b *State) Root() types.Hash {
	if !b.Previous.IsZero() {
		return b.Previous
	}
	var h types.Hash
	copy(h[:], b.Account[:])
	return h
}

// SmartContract registers a new token identity. It has no predecessor.
type SmartContract struct {
	base
	ScAccount      types.Account
	ScOwnerAccount types.Account
	AbiHash        types.Hash
	AbiBytes       []byte
}

func (b *SmartContract) Type() Type      { return TypeSmartContract }
func (b *SmartContract) Hash() types.Hash { return hashSmartContract(b) }
func (b *SmartContract) Root() types.Hash {
	var h types.Hash
	copy(h[:], b.ScAccount[:])
	return h
}
