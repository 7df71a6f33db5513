package ledger

import (
	"github.com/accountchain/ledger/block"
	"github.com/accountchain/ledger/crypto"
	"github.com/accountchain/ledger/store"
	"github.com/accountchain/ledger/types"
)

// processState implements spec.md §4.3 "State": the universal block form.
// Unlike the legacy ladders it never adds a frontier entry (state heads are
// resolved by their own hash, not a reverse index); it only removes the
// entry of a legacy head it supersedes. It is classified as
// send/receive/open/change purely from the relationship between its
// declared balance and the account's prior balance.
func (l *Ledger) processState(tx *store.Tx, b *block.State) ProcessResult {
	hash := b.Hash()

	if has, err := tx.HasBlock(hash); err != nil || has {
		return failResult(Old, err)
	}

	if !crypto.Verify(b.Account[:], hash[:], b.Signature().Bytes()) {
		return ProcessResult{Code: BadSignature}
	}
	if b.Account.IsZero() {
		return ProcessResult{Code: OpenedBurnAccount}
	}

	info, hasInfo, err := tx.GetAccountInfo(b.Account, b.TokenHash)
	if err != nil {
		return failResult(Fork, err)
	}

	var isSend bool
	var amount types.Amount
	var oldHead types.Hash
	var oldRepBlock types.Hash
	var oldBalance types.Amount

	if hasInfo {
		if b.Previous.IsZero() {
			return ProcessResult{Code: Fork}
		}
		if has, err := tx.HasBlock(b.Previous); err != nil {
			return failResult(GapPrevious, err)
		} else if !has {
			return ProcessResult{Code: GapPrevious}
		}
		if !b.TokenHash.IsZero() {
			if has, err := tx.HasBlock(b.TokenHash); err != nil {
				return failResult(GapSmartContract, err)
			} else if !has {
				return ProcessResult{Code: GapSmartContract}
			}
		}
		isSend = b.Balance.LessThan(info.Balance)
		amount = types.AbsDiff(info.Balance, b.Balance)
		if b.Previous != info.Head {
			return ProcessResult{Code: Fork}
		}
		oldHead, oldRepBlock, oldBalance = info.Head, info.RepBlock, info.Balance
	} else {
		if !b.Previous.IsZero() {
			return ProcessResult{Code: GapPrevious}
		}
		if !b.TokenHash.IsZero() {
			if has, err := tx.HasBlock(b.TokenHash); err != nil {
				return failResult(GapSmartContract, err)
			} else if !has {
				return ProcessResult{Code: GapSmartContract}
			}
		}
		if b.Link.IsZero() {
			return ProcessResult{Code: GapSource}
		}
		isSend = false
		amount = b.Balance
	}

	var pending store.PendingInfo
	var hasPending bool
	if !isSend {
		if b.Link.IsZero() {
			if !amount.IsZero() {
				return ProcessResult{Code: BalanceMismatch}
			}
		} else {
			if has, err := tx.HasBlock(b.Link); err != nil {
				return failResult(GapSource, err)
			} else if !has {
				return ProcessResult{Code: GapSource}
			}
			pending, hasPending, err = tx.GetPending(b.Account, b.Link)
			if err != nil {
				return failResult(Unreceivable, err)
			}
			if !hasPending {
				return ProcessResult{Code: Unreceivable}
			}
			if pending.TokenType != b.TokenHash {
				return ProcessResult{Code: Unreceivable}
			}
			if amount.Cmp(pending.Amount) != 0 {
				return ProcessResult{Code: BalanceMismatch}
			}
		}
	}

	if err := tx.PutBlock(hash, b, types.ZeroHash); err != nil {
		return failResult(Progress, err)
	}
	if hasInfo {
		if err := tx.SetSuccessor(oldHead, hash); err != nil {
			return failResult(Progress, err)
		}
		if !oldRepBlock.IsZero() {
			if err := tx.SubWeight(oldRepBlock, oldBalance); err != nil {
				return failResult(Progress, err)
			}
		}
	}
	if err := tx.AddWeight(hash, b.Balance); err != nil {
		return failResult(Progress, err)
	}

	var pendingAccount types.Account
	if isSend {
		if err := tx.PutPending(types.Account(b.Link), hash, store.PendingInfo{
			Source: b.Account, Amount: amount, TokenType: b.TokenHash,
		}); err != nil {
			return failResult(Progress, err)
		}
		pendingAccount = types.Account(b.Link)
	} else if !b.Link.IsZero() {
		if err := tx.DeletePending(b.Account, b.Link); err != nil {
			return failResult(Progress, err)
		}
	}

	newInfo := store.AccountInfo{
		Head:       hash,
		OpenBlock:  info.OpenBlock,
		RepBlock:   hash,
		Balance:    b.Balance,
		BlockCount: info.BlockCount + 1,
	}
	if !hasInfo {
		newInfo.OpenBlock = hash
	}
	if err := tx.PutAccountInfo(b.Account, b.TokenHash, newInfo); err != nil {
		return failResult(Progress, err)
	}

	if hasInfo {
		if _, found, err := tx.GetFrontier(oldHead); err != nil {
			return failResult(Progress, err)
		} else if found {
			if err := tx.DeleteFrontier(oldHead); err != nil {
				return failResult(Progress, err)
			}
		}
	}

	if err := tx.XorChecksum(hash); err != nil {
		return failResult(Progress, err)
	}
	l.observeBlockCount(newInfo.BlockCount)

	return ProcessResult{
		Code:           Progress,
		Amount:         amount,
		Account:        b.Account,
		PendingAccount: pendingAccount,
		StateIsSend:    isSend,
	}
}
