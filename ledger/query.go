package ledger

import (
	"fmt"
	"sort"

	"github.com/accountchain/ledger/block"
	"github.com/accountchain/ledger/store"
	"github.com/accountchain/ledger/types"
)

// Balance implements spec.md §4.4 "balance": a per-block visitor, not an
// accounts-table lookup, so it still answers for a block that is no longer
// any chain's head (e.g. while a rollback is unwinding forward from it).
func Balance(tx *store.Tx, hash types.Hash) (types.Amount, error) {
	blk, _, found, err := tx.GetBlock(hash)
	if err != nil {
		return types.ZeroAmount, err
	}
	if !found {
		return types.ZeroAmount, fmt.Errorf("ledger: balance: block %s not found", hash)
	}
	switch b := blk.(type) {
	case *block.Send:
		return b.Balance, nil
	case *block.Receive:
		prev, err := Balance(tx, b.Previous)
		if err != nil {
			return types.ZeroAmount, err
		}
		received, err := Amount(tx, b.Source)
		if err != nil {
			return types.ZeroAmount, err
		}
		return prev.Add(received), nil
	case *block.Change:
		return Balance(tx, b.Previous)
	case *block.Open:
		// The pending row b.Source created is consumed the moment this Open
		// applies, so it cannot be read back afterward — derive the amount
		// from the source block's own delta instead, which stays available
		// for as long as the source block does.
		return Amount(tx, b.Source)
	case *block.State:
		return b.Balance, nil
	case *block.SmartContract:
		return types.ZeroAmount, nil
	default:
		return types.ZeroAmount, fmt.Errorf("ledger: balance: unrecognized block at %s", hash)
	}
}

// Amount implements spec.md §4.4 "amount": the unsigned delta a block
// moved, derived from Balance rather than stored redundantly.
func Amount(tx *store.Tx, hash types.Hash) (types.Amount, error) {
	blk, _, found, err := tx.GetBlock(hash)
	if err != nil {
		return types.ZeroAmount, err
	}
	if !found {
		return types.ZeroAmount, fmt.Errorf("ledger: amount: block %s not found", hash)
	}
	switch b := blk.(type) {
	case *block.Open:
		return Balance(tx, hash)
	case *block.SmartContract:
		return types.ZeroAmount, nil
	default:
		cur, err := Balance(tx, hash)
		if err != nil {
			return types.ZeroAmount, err
		}
		prev := previousOf(b)
		if prev.IsZero() {
			return cur, nil
		}
		old, err := Balance(tx, prev)
		if err != nil {
			return types.ZeroAmount, err
		}
		return types.AbsDiff(cur, old), nil
	}
}

func previousOf(blk block.Block) types.Hash {
	switch b := blk.(type) {
	case *block.Send:
		return b.Previous
	case *block.Receive:
		return b.Previous
	case *block.Change:
		return b.Previous
	case *block.State:
		return b.Previous
	default:
		return types.ZeroHash
	}
}

// Account implements spec.md §4.4 "account": resolve the owning account of
// hash by walking forward through successors until a state block, a
// frontier entry, or a block_info checkpoint is hit (§9, "account(hash)
// latency": bounded by block_info_max for non-state chains, O(1) for
// state blocks).
func Account(tx *store.Tx, hash types.Hash) (types.Account, types.TokenType, error) {
	current := hash
	for {
		blk, successor, found, err := tx.GetBlock(current)
		if err != nil {
			return types.Account{}, types.Hash{}, err
		}
		if !found {
			return types.Account{}, types.Hash{}, fmt.Errorf("ledger: account: block %s not found", current)
		}
		if st, ok := blk.(*block.State); ok {
			return st.Account, st.TokenHash, nil
		}
		if account, found, err := tx.GetFrontier(current); err != nil {
			return types.Account{}, types.Hash{}, err
		} else if found {
			return account, types.ChainToken, nil
		}
		if info, found, err := tx.GetBlockInfo(current); err != nil {
			return types.Account{}, types.Hash{}, err
		} else if found {
			return info.Account, types.ChainToken, nil
		}
		if successor.IsZero() {
			return types.Account{}, types.Hash{}, fmt.Errorf("ledger: account: chain containing %s has no recorded head", hash)
		}
		current = successor
	}
}

// TokenAccount implements spec.md §4.4 "token_account": the open_block of
// the (account, token) pair containing hash.
func TokenAccount(tx *store.Tx, hash types.Hash) (types.Hash, error) {
	account, token, err := Account(tx, hash)
	if err != nil {
		return types.ZeroHash, err
	}
	info, found, err := tx.GetAccountInfo(account, token)
	if err != nil {
		return types.ZeroHash, err
	}
	if !found {
		return types.ZeroHash, fmt.Errorf("ledger: token_account: no account row for %s", account)
	}
	return info.OpenBlock, nil
}

// Latest implements spec.md §4.4 "latest".
func Latest(tx *store.Tx, account types.Account, token types.TokenType) (types.Hash, error) {
	info, found, err := tx.GetAccountInfo(account, token)
	if err != nil || !found {
		return types.ZeroHash, err
	}
	return info.Head, nil
}

// representativeOf walks backward from hash through send/receive blocks
// (which never change delegation) until it reaches the open/change/state
// block that set the currently-effective rep_block, following the same
// rule Process uses when it sets rep_block (spec.md glossary, "rep_block
// is the hash of the block that currently pins that delegation").
func representativeOf(tx *store.Tx, hash types.Hash) (types.Hash, error) {
	for {
		if hash.IsZero() {
			return types.ZeroHash, nil
		}
		blk, _, found, err := tx.GetBlock(hash)
		if err != nil {
			return types.ZeroHash, err
		}
		if !found {
			return types.ZeroHash, nil
		}
		switch b := blk.(type) {
		case *block.Open, *block.Change, *block.State:
			return hash, nil
		case *block.Send:
			hash = b.Previous
		case *block.Receive:
			hash = b.Previous
		default:
			return types.ZeroHash, nil
		}
	}
}

// Weight implements spec.md §4.4 "weight", resolved against the
// representation table's real key (rep_block) rather than the account
// directly — see DESIGN.md for why the two differ in this spec — unless
// check_bootstrap_weights (§9) is set and the override map has an entry.
func (l *Ledger) Weight(tx *store.Tx, account types.Account) (types.Amount, error) {
	if l.checkBootstrapWeights.Load() {
		if weights := l.bootstrapWeights.Load(); weights != nil {
			if w, ok := (*weights)[account]; ok {
				return w, nil
			}
		}
	}
	info, found, err := tx.GetAccountInfo(account, types.ChainToken)
	if err != nil {
		return types.ZeroAmount, err
	}
	if !found {
		return types.ZeroAmount, nil
	}
	return tx.GetWeight(info.RepBlock)
}

// Successor implements spec.md §4.4 "successor": the block whose
// previous==root, or, when root names an account rather than a stored
// block, that account's open_block.
func Successor(tx *store.Tx, root types.Hash) (block.Block, error) {
	if has, err := tx.HasBlock(root); err != nil {
		return nil, err
	} else if has {
		_, successor, _, err := tx.GetBlock(root)
		if err != nil {
			return nil, err
		}
		if successor.IsZero() {
			return nil, nil
		}
		blk, _, _, err := tx.GetBlock(successor)
		return blk, err
	}
	var account types.Account
	copy(account[:], root[:])
	info, found, err := tx.GetAccountInfo(account, types.ChainToken)
	if err != nil || !found {
		return nil, err
	}
	if info.OpenBlock.IsZero() {
		return nil, nil
	}
	blk, _, _, err := tx.GetBlock(info.OpenBlock)
	return blk, err
}

// ForkedBlock implements spec.md §4.4 "forked_block": the alternate block
// currently occupying the root position blk claims, used once Process has
// returned Fork and the caller needs to decide a winner via Tally.
func ForkedBlock(tx *store.Tx, blk block.Block) (block.Block, error) {
	return Successor(tx, blk.Root())
}

// Checksum implements spec.md §4.4 "checksum".
func Checksum(tx *store.Tx) (types.Hash, error) {
	return tx.GetChecksum()
}

// Vote is one representative's ballot for a block at some root, the input
// to Tally/Winner (spec.md §4.4).
type Vote struct {
	Voter types.Account
	Block types.Hash
}

// TallyEntry is one row of a Tally result: a candidate block and the
// cumulative voting weight behind it.
type TallyEntry struct {
	Block  types.Hash
	Weight types.Amount
}

// Tally implements spec.md §4.4 "tally": sums voter weight per candidate
// block and orders the result by descending weight, ties broken by order
// of first appearance (not observable externally, per spec).
func (l *Ledger) Tally(tx *store.Tx, votes []Vote) ([]TallyEntry, error) {
	totals := make(map[types.Hash]types.Amount)
	order := make([]types.Hash, 0, len(votes))
	for _, v := range votes {
		w, err := l.Weight(tx, v.Voter)
		if err != nil {
			return nil, err
		}
		if w.IsZero() {
			continue
		}
		if _, seen := totals[v.Block]; !seen {
			totals[v.Block] = types.ZeroAmount
			order = append(order, v.Block)
		}
		totals[v.Block] = totals[v.Block].Add(w)
	}
	entries := make([]TallyEntry, len(order))
	for i, h := range order {
		entries[i] = TallyEntry{Block: h, Weight: totals[h]}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Weight.GreaterThan(entries[j].Weight)
	})
	return entries, nil
}

// Winner implements spec.md §4.4 "winner": the single highest-weight
// candidate from Tally.
func (l *Ledger) Winner(tx *store.Tx, votes []Vote) (TallyEntry, bool, error) {
	entries, err := l.Tally(tx, votes)
	if err != nil || len(entries) == 0 {
		return TallyEntry{}, false, err
	}
	return entries[0], true, nil
}
