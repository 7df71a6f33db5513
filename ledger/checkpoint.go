package ledger

import (
	"github.com/accountchain/ledger/store"
	"github.com/accountchain/ledger/types"
)

// maybeCheckpoint implements spec.md §4.3 "Block-info checkpointing": a
// legacy (non-state) chain only exposes itself to forward-walking account()
// lookups via frontier at its head, so every block_info_max'th block also
// gets a direct {account, balance} checkpoint. State blocks never call
// this — their own hash already resolves in O(1).
func maybeCheckpoint(tx *store.Tx, blockCount uint64, hash types.Hash, account types.Account, balance types.Amount, blockInfoMax int) error {
	if blockInfoMax <= 0 || blockCount%uint64(blockInfoMax) != 0 {
		return nil
	}
	return tx.PutBlockInfo(hash, store.BlockInfo{Account: account, Balance: balance})
}
