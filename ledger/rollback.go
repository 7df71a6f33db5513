package ledger

import (
	"fmt"

	"github.com/accountchain/ledger/block"
	"github.com/accountchain/ledger/store"
	"github.com/accountchain/ledger/types"
)

// rollbackOne resolves the (account, token) chain owning hash and inverts
// the effect of that chain's *current head* — never hash itself unless
// hash happens to already be the head — mirroring the original source's
// rollback_visitor (spec.md §4.5: "look up the head of the owning
// (account, token); dispatch the head through the rollback visitor").
// A smart-contract block belongs to no chain, so it is rolled back itself.
func (l *Ledger) rollbackOne(tx *store.Tx, hash types.Hash) error {
	if blk, _, found, err := tx.GetBlock(hash); err != nil {
		return err
	} else if sc, ok := blk.(*block.SmartContract); found && ok {
		return l.rollbackSmartContract(tx, sc, hash)
	}
	account, token, err := Account(tx, hash)
	if err != nil {
		return err
	}
	info, found, err := tx.GetAccountInfo(account, token)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("ledger: rollback: no account row for %s", account)
	}
	head := info.Head
	blk, _, found, err := tx.GetBlock(head)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("ledger: rollback: head block %s missing", head)
	}

	switch b := blk.(type) {
	case *block.Send:
		return l.rollbackSend(tx, b, head, account, info)
	case *block.Receive:
		return l.rollbackReceive(tx, b, head, account, info)
	case *block.Open:
		return l.rollbackOpen(tx, b, head, account, info)
	case *block.Change:
		return l.rollbackChange(tx, b, head, account, info)
	case *block.State:
		return l.rollbackState(tx, b, head, account, info)
	case *block.SmartContract:
		return l.rollbackSmartContract(tx, b, head)
	default:
		return fmt.Errorf("ledger: rollback: unrecognized block type at %s", head)
	}
}

// rollbackUntilPending cascades a send/state-send rollback: a send whose
// credit has already been received left no pending row behind, so the
// receiving chain's head must itself be rolled back first (spec.md §4.5,
// "undoing a send whose destination already received must first roll
// back that receive").
func (l *Ledger) rollbackUntilPending(tx *store.Tx, destination types.Account, token types.TokenType, source types.Hash) error {
	for {
		_, found, err := tx.GetPending(destination, source)
		if err != nil {
			return err
		}
		if found {
			return nil
		}
		info, found, err := tx.GetAccountInfo(destination, token)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("ledger: rollback: pending for %s vanished without a receiving chain", source)
		}
		if err := l.rollbackOne(tx, info.Head); err != nil {
			return err
		}
	}
}

func (l *Ledger) rollbackSend(tx *store.Tx, b *block.Send, hash types.Hash, account types.Account, info store.AccountInfo) error {
	if err := l.rollbackUntilPending(tx, b.Destination, types.ChainToken, hash); err != nil {
		return err
	}
	pending, found, err := tx.GetPending(b.Destination, hash)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("ledger: rollback: pending for send %s not found after cascade", hash)
	}

	prevBalance, err := Balance(tx, b.Previous)
	if err != nil {
		return err
	}
	origCount := info.BlockCount

	if err := tx.DeletePending(b.Destination, hash); err != nil {
		return err
	}
	if err := tx.AddWeight(info.RepBlock, pending.Amount); err != nil {
		return err
	}
	if err := tx.SetSuccessor(b.Previous, types.ZeroHash); err != nil {
		return err
	}
	info.Head = b.Previous
	info.Balance = prevBalance
	info.BlockCount--
	if err := tx.PutAccountInfo(account, types.ChainToken, info); err != nil {
		return err
	}
	if err := tx.DeleteFrontier(hash); err != nil {
		return err
	}
	if err := tx.PutFrontier(b.Previous, account); err != nil {
		return err
	}
	if err := tx.DeleteBlock(hash); err != nil {
		return err
	}
	if err := tx.XorChecksum(hash); err != nil {
		return err
	}
	if origCount%uint64(l.opts.blockInfoMax()) == 0 {
		if err := tx.DeleteBlockInfo(hash); err != nil {
			return err
		}
	}
	return nil
}

func (l *Ledger) rollbackReceive(tx *store.Tx, b *block.Receive, hash types.Hash, account types.Account, info store.AccountInfo) error {
	amount, err := Amount(tx, b.Source)
	if err != nil {
		return err
	}
	sourceAccount, _, err := Account(tx, b.Source)
	if err != nil {
		return err
	}
	prevBalance, err := Balance(tx, b.Previous)
	if err != nil {
		return err
	}
	origCount := info.BlockCount

	if err := tx.SubWeight(info.RepBlock, amount); err != nil {
		return err
	}
	if err := tx.PutPending(account, b.Source, store.PendingInfo{
		Source: sourceAccount, Amount: amount, TokenType: types.ChainToken,
	}); err != nil {
		return err
	}
	if err := tx.SetSuccessor(b.Previous, types.ZeroHash); err != nil {
		return err
	}
	info.Head = b.Previous
	info.Balance = prevBalance
	info.BlockCount--
	if err := tx.PutAccountInfo(account, types.ChainToken, info); err != nil {
		return err
	}
	if err := tx.DeleteFrontier(hash); err != nil {
		return err
	}
	if err := tx.PutFrontier(b.Previous, account); err != nil {
		return err
	}
	if err := tx.DeleteBlock(hash); err != nil {
		return err
	}
	if err := tx.XorChecksum(hash); err != nil {
		return err
	}
	if origCount%uint64(l.opts.blockInfoMax()) == 0 {
		if err := tx.DeleteBlockInfo(hash); err != nil {
			return err
		}
	}
	return nil
}

func (l *Ledger) rollbackOpen(tx *store.Tx, b *block.Open, hash types.Hash, account types.Account, info store.AccountInfo) error {
	sourceAccount, _, err := Account(tx, b.Source)
	if err != nil {
		return err
	}

	if err := tx.SubWeight(hash, info.Balance); err != nil {
		return err
	}
	if err := tx.PutPending(account, b.Source, store.PendingInfo{
		Source: sourceAccount, Amount: info.Balance, TokenType: types.ChainToken,
	}); err != nil {
		return err
	}
	if err := tx.DeleteAccountInfo(account, types.ChainToken); err != nil {
		return err
	}
	if err := tx.DeleteFrontier(hash); err != nil {
		return err
	}
	if err := tx.DeleteBlock(hash); err != nil {
		return err
	}
	return tx.XorChecksum(hash)
}

func (l *Ledger) rollbackChange(tx *store.Tx, b *block.Change, hash types.Hash, account types.Account, info store.AccountInfo) error {
	prevRep, err := representativeOf(tx, b.Previous)
	if err != nil {
		return err
	}
	prevBalance, err := Balance(tx, b.Previous)
	if err != nil {
		return err
	}
	origCount := info.BlockCount

	if err := tx.SubWeight(hash, prevBalance); err != nil {
		return err
	}
	if err := tx.AddWeight(prevRep, prevBalance); err != nil {
		return err
	}
	if err := tx.SetSuccessor(b.Previous, types.ZeroHash); err != nil {
		return err
	}
	info.Head = b.Previous
	info.RepBlock = prevRep
	info.BlockCount--
	if err := tx.PutAccountInfo(account, types.ChainToken, info); err != nil {
		return err
	}
	if err := tx.DeleteFrontier(hash); err != nil {
		return err
	}
	if err := tx.PutFrontier(b.Previous, account); err != nil {
		return err
	}
	if err := tx.DeleteBlock(hash); err != nil {
		return err
	}
	if err := tx.XorChecksum(hash); err != nil {
		return err
	}
	if origCount%uint64(l.opts.blockInfoMax()) == 0 {
		if err := tx.DeleteBlockInfo(hash); err != nil {
			return err
		}
	}
	return nil
}

// rollbackState inverts a State block's Process, per spec.md §4.5 and the
// original source's state_block rollback: it must also reverse whichever of
// the three classifications (send, receive/open, change) the block was
// given when applied.
func (l *Ledger) rollbackState(tx *store.Tx, b *block.State, hash types.Hash, account types.Account, info store.AccountInfo) error {
	var prevBalance types.Amount
	var prevRep types.Hash
	var err error
	if !b.Previous.IsZero() {
		prevBalance, err = Balance(tx, b.Previous)
		if err != nil {
			return err
		}
		prevRep, err = representativeOf(tx, b.Previous)
		if err != nil {
			return err
		}
	}
	isSend := !b.Previous.IsZero() && b.Balance.LessThan(prevBalance)

	if isSend {
		if err := l.rollbackUntilPending(tx, types.Account(b.Link), b.TokenHash, hash); err != nil {
			return err
		}
		if err := tx.DeletePending(types.Account(b.Link), hash); err != nil {
			return err
		}
	} else if !b.Link.IsZero() {
		sourceAccount, _, err := Account(tx, b.Link)
		if err != nil {
			return err
		}
		amount := types.AbsDiff(b.Balance, prevBalance)
		if err := tx.PutPending(b.Account, b.Link, store.PendingInfo{
			Source: sourceAccount, Amount: amount, TokenType: b.TokenHash,
		}); err != nil {
			return err
		}
	}

	if err := tx.SubWeight(hash, b.Balance); err != nil {
		return err
	}
	if !prevRep.IsZero() {
		if err := tx.AddWeight(prevRep, prevBalance); err != nil {
			return err
		}
	}

	if b.Previous.IsZero() {
		if err := tx.DeleteAccountInfo(account, b.TokenHash); err != nil {
			return err
		}
	} else {
		info.Head = b.Previous
		info.RepBlock = prevRep
		info.Balance = prevBalance
		info.BlockCount--
		if err := tx.PutAccountInfo(account, b.TokenHash, info); err != nil {
			return err
		}
		prevBlk, _, found, err := tx.GetBlock(b.Previous)
		if err != nil {
			return err
		}
		if found {
			if err := tx.SetSuccessor(b.Previous, types.ZeroHash); err != nil {
				return err
			}
			if prevBlk.Type() != block.TypeState {
				if err := tx.PutFrontier(b.Previous, account); err != nil {
					return err
				}
			}
		}
	}

	if err := tx.DeleteBlock(hash); err != nil {
		return err
	}
	return tx.XorChecksum(hash)
}

// rollbackSmartContract implements the symmetric policy spec.md §9 calls
// out as option (b) for the source's commented-out smart-contract
// rollback: delete the block and its registered abi outright, since a
// registration block touches no account/pending/representation state for
// Process to have to invert.
func (l *Ledger) rollbackSmartContract(tx *store.Tx, b *block.SmartContract, hash types.Hash) error {
	if err := tx.DeleteAbi(b.AbiHash); err != nil {
		return err
	}
	if err := tx.DeleteBlock(hash); err != nil {
		return err
	}
	return tx.XorChecksum(hash)
}
