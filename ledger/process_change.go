package ledger

import (
	"github.com/accountchain/ledger/block"
	"github.com/accountchain/ledger/crypto"
	"github.com/accountchain/ledger/store"
	"github.com/accountchain/ledger/types"
)

// processChange implements spec.md §4.3 "Change".
func (l *Ledger) processChange(tx *store.Tx, b *block.Change) ProcessResult {
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

	account, found, err := tx.GetFrontier(b.Previous)
	if err != nil {
		return failResult(Fork, err)
	}
	if !found || account.IsZero() {
		return ProcessResult{Code: Fork}
	}

	if !crypto.Verify(account[:], hash[:], b.Signature().Bytes()) {
		return ProcessResult{Code: BadSignature}
	}

	info, found, err := tx.GetAccountInfo(account, types.ChainToken)
	if err != nil {
		return failResult(Fork, err)
	}
	if !found || info.Head != b.Previous {
		return ProcessResult{Code: Fork}
	}

	if err := tx.SubWeight(info.RepBlock, info.Balance); err != nil {
		return failResult(Progress, err)
	}
	if err := tx.AddWeight(hash, info.Balance); err != nil {
		return failResult(Progress, err)
	}
	if err := tx.PutBlock(hash, b, types.ZeroHash); err != nil {
		return failResult(Progress, err)
	}
	if err := tx.SetSuccessor(b.Previous, hash); err != nil {
		return failResult(Progress, err)
	}
	info.Head = hash
	info.RepBlock = hash
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

	return ProcessResult{Code: Progress, Account: account}
}
