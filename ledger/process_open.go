package ledger

import (
	"github.com/accountchain/ledger/block"
	"github.com/accountchain/ledger/crypto"
	"github.com/accountchain/ledger/store"
	"github.com/accountchain/ledger/types"
)

// processOpen implements spec.md §4.3 "Open".
func (l *Ledger) processOpen(tx *store.Tx, b *block.Open) ProcessResult {
	hash := b.Hash()

	if has, err := tx.HasBlock(hash); err != nil || has {
		return failResult(Old, err)
	}

	if has, err := tx.HasBlock(b.Source); err != nil {
		return failResult(GapSource, err)
	} else if !has {
		return ProcessResult{Code: GapSource}
	}

	if !crypto.Verify(b.Account[:], hash[:], b.Signature().Bytes()) {
		return ProcessResult{Code: BadSignature}
	}

	if _, found, err := tx.GetAccountInfo(b.Account, types.ChainToken); err != nil {
		return failResult(Fork, err)
	} else if found {
		return ProcessResult{Code: Fork}
	}

	pending, found, err := tx.GetPending(b.Account, b.Source)
	if err != nil {
		return failResult(Unreceivable, err)
	}
	if !found {
		return ProcessResult{Code: Unreceivable}
	}

	if b.Account.IsZero() {
		return ProcessResult{Code: OpenedBurnAccount}
	}

	if err := tx.DeletePending(b.Account, b.Source); err != nil {
		return failResult(Progress, err)
	}
	if err := tx.PutBlock(hash, b, types.ZeroHash); err != nil {
		return failResult(Progress, err)
	}
	info := store.AccountInfo{
		Head:       hash,
		OpenBlock:  hash,
		RepBlock:   hash,
		Balance:    pending.Amount,
		BlockCount: 1,
	}
	if err := tx.PutAccountInfo(b.Account, types.ChainToken, info); err != nil {
		return failResult(Progress, err)
	}
	if err := tx.AddWeight(hash, pending.Amount); err != nil {
		return failResult(Progress, err)
	}
	if err := tx.PutFrontier(hash, b.Account); err != nil {
		return failResult(Progress, err)
	}
	if err := tx.XorChecksum(hash); err != nil {
		return failResult(Progress, err)
	}
	if err := maybeCheckpoint(tx, 1, hash, b.Account, pending.Amount, l.opts.blockInfoMax()); err != nil {
		return failResult(Progress, err)
	}
	l.observeBlockCount(1)

	return ProcessResult{Code: Progress, Amount: pending.Amount, Account: b.Account}
}
