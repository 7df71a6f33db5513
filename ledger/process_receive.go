package ledger

import (
	"github.com/accountchain/ledger/block"
	"github.com/accountchain/ledger/crypto"
	"github.com/accountchain/ledger/store"
	"github.com/accountchain/ledger/types"
)

// processReceive implements spec.md §4.3 "Receive".
func (l *Ledger) processReceive(tx *store.Tx, b *block.Receive) ProcessResult {
	hash := b.Hash()

	if has, err := tx.HasBlock(hash); err != nil || has {
		return failResult(Old, err)
	}

	prev, _, found, err := tx.GetBlock(b.Previous)
	if err != nil {
		return failResult(GapPrevious, err)
	}
	if !found {
		return ProcessResult{Code: GapPrevious}
	}
	if !block.ValidPredecessor(b.Type(), prev.Type()) {
		return ProcessResult{Code: BlockPosition}
	}

	if has, err := tx.HasBlock(b.Source); err != nil {
		return failResult(GapSource, err)
	} else if !has {
		return ProcessResult{Code: GapSource}
	}

	account, frontierFound, err := tx.GetFrontier(b.Previous)
	if err != nil {
		return failResult(GapPrevious, err)
	}
	if !frontierFound || account.IsZero() {
		prevExists, err := tx.HasBlock(b.Previous)
		if err != nil {
			return failResult(GapPrevious, err)
		}
		if prevExists {
			return ProcessResult{Code: Fork}
		}
		return ProcessResult{Code: GapPrevious}
	}

	if !crypto.Verify(account[:], hash[:], b.Signature().Bytes()) {
		return ProcessResult{Code: BadSignature}
	}

	info, found, err := tx.GetAccountInfo(account, types.ChainToken)
	if err != nil {
		return failResult(GapPrevious, err)
	}
	if !found || info.Head != b.Previous {
		return ProcessResult{Code: GapPrevious}
	}

	pending, found, err := tx.GetPending(account, b.Source)
	if err != nil {
		return failResult(Unreceivable, err)
	}
	if !found {
		return ProcessResult{Code: Unreceivable}
	}

	if err := tx.AddWeight(info.RepBlock, pending.Amount); err != nil {
		return failResult(Progress, err)
	}
	if err := tx.DeletePending(account, b.Source); err != nil {
		return failResult(Progress, err)
	}
	if err := tx.PutBlock(hash, b, types.ZeroHash); err != nil {
		return failResult(Progress, err)
	}
	if err := tx.SetSuccessor(b.Previous, hash); err != nil {
		return failResult(Progress, err)
	}
	info.Head = hash
	info.Balance = info.Balance.Add(pending.Amount)
	info.BlockCount++
	if err := tx.PutAccountInfo(account, types.ChainToken, info); err != nil {
		return failResult(Progress, err)
	}
	if err := tx.DeleteFrontier(b.Previous); err != nil {
		return failResult(Progress, err)
	}
	if err := tx.PutFrontier(hash, account); err != nil {
		return failResult(Progress, err)
	}
	if err := tx.XorChecksum(hash); err != nil {
		return failResult(Progress, err)
	}
	if err := maybeCheckpoint(tx, info.BlockCount, hash, account, info.Balance, l.opts.blockInfoMax()); err != nil {
		return failResult(Progress, err)
	}
	l.observeBlockCount(info.BlockCount)

	return ProcessResult{Code: Progress, Amount: pending.Amount, Account: account}
}
