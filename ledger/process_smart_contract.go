package ledger

import (
	"github.com/accountchain/ledger/block"
	"github.com/accountchain/ledger/crypto"
	"github.com/accountchain/ledger/store"
	"github.com/accountchain/ledger/types"
)

// processSmartContract implements spec.md §4.3 "SmartContract": token
// registration only. It never touches accounts, pending, or representation.
func (l *Ledger) processSmartContract(tx *store.Tx, b *block.SmartContract) ProcessResult {
	hash := b.Hash()

	if has, err := tx.HasBlock(hash); err != nil || has {
		return failResult(Old, err)
	}
	if b.ScAccount.IsZero() || b.ScOwnerAccount.IsZero() {
		return ProcessResult{Code: ScAccountMismatch}
	}
	if !crypto.Verify(b.ScAccount[:], hash[:], b.Signature().Bytes()) {
		return ProcessResult{Code: BadSignature}
	}
	if types.Hash(crypto.Hash256(b.AbiBytes)) != b.AbiHash {
		return ProcessResult{Code: AbiMismatch}
	}
	if _, found, err := tx.GetAbi(b.AbiHash); err != nil {
		return failResult(AbiAlreadyExist, err)
	} else if found {
		return ProcessResult{Code: AbiAlreadyExist}
	}

	if err := tx.PutBlock(hash, b, types.ZeroHash); err != nil {
		return failResult(Progress, err)
	}
	if err := tx.PutAbi(b.AbiHash, b.AbiBytes); err != nil {
		return failResult(Progress, err)
	}
	if err := tx.XorChecksum(hash); err != nil {
		return failResult(Progress, err)
	}

	return ProcessResult{Code: Progress, Account: b.ScAccount}
}
