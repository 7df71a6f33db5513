package ledger

import (
	"sync/atomic"

	"github.com/accountchain/ledger/block"
	"github.com/accountchain/ledger/store"
	"github.com/accountchain/ledger/types"
)

// DefaultBlockInfoMax is the checkpoint interval spec.md §4.3/§9 names
// ("block_info_max"): the account() walk-forward scheme is guaranteed to
// terminate within this many steps for any non-state block.
const DefaultBlockInfoMax = 8192

// Options configures a Ledger. The zero value is valid and uses
// DefaultBlockInfoMax with no bootstrap weight override.
type Options struct {
	BlockInfoMax int
	// BootstrapWeights is an immutable map loaded at startup, consulted
	// by Weight while CheckBootstrapWeights is true (spec.md §9).
	BootstrapWeights map[types.Account]types.Amount
	// BootstrapWeightMaxBlocks is the block-count threshold past which
	// Process clears CheckBootstrapWeights (spec.md §5); a later
	// SetBootstrapWeights call can set it again.
	BootstrapWeightMaxBlocks uint64
}

func (o Options) blockInfoMax() int {
	if o.BlockInfoMax <= 0 {
		return DefaultBlockInfoMax
	}
	return o.BlockInfoMax
}

// Ledger is the rollup the external caller drives: Process dispatches to
// the block-type processor, Rollback dispatches to the inverse, both
// against a caller-provided store.Tx (spec.md §2, "Rollup").
type Ledger struct {
	opts Options
	// checkBootstrapWeights is set by New and SetBootstrapWeights to
	// whether the override map is non-empty, and cleared by
	// observeBlockCount. It tolerates torn reads per spec.md §5 — it only
	// ever gates an optional override, never a correctness-relevant table
	// write.
	checkBootstrapWeights atomic.Bool
	bootstrapWeights      atomic.Pointer[map[types.Account]types.Amount]
	stats                 Stats
}

func New(opts Options) *Ledger {
	l := &Ledger{opts: opts}
	l.checkBootstrapWeights.Store(len(opts.BootstrapWeights) > 0)
	weights := opts.BootstrapWeights
	l.bootstrapWeights.Store(&weights)
	return l
}

// Stats returns a snapshot of the outcome counters maintained across
// every Process call (spec.md "ledger_processor statistics counters" in
// SPEC_FULL.md), keyed by ProcessCode with zero counts omitted.
func (l *Ledger) Stats() map[ProcessCode]uint64 {
	return l.stats.snapshot()
}

// observeBlockCount flips CheckBootstrapWeights off once a processed block
// leaves its (account, token) chain with more than BootstrapWeightMaxBlocks
// blocks. count is that one chain's block count; no ledger-wide total is
// kept or compared.
func (l *Ledger) observeBlockCount(count uint64) {
	if l.opts.BootstrapWeightMaxBlocks != 0 && count > l.opts.BootstrapWeightMaxBlocks {
		l.checkBootstrapWeights.Store(false)
	}
}

// Process validates and applies a single block within tx, following the
// per-variant ladder of spec.md §4.3. No table is written unless every
// check in the ladder passes.
func (l *Ledger) Process(tx *store.Tx, blk block.Block) ProcessResult {
	var res ProcessResult
	switch b := blk.(type) {
	case *block.Send:
		res = l.processSend(tx, b)
	case *block.Receive:
		res = l.processReceive(tx, b)
	case *block.Open:
		res = l.processOpen(tx, b)
	case *block.Change:
		res = l.processChange(tx, b)
	case *block.State:
		res = l.processState(tx, b)
	case *block.SmartContract:
		res = l.processSmartContract(tx, b)
	default:
		res = ProcessResult{Code: BlockPosition}
	}
	l.stats.observe(res.Code)
	return res
}

// Rollback unwinds the account chain containing hash until hash is no
// longer stored (spec.md §4.5). It may cascade: undoing a send whose
// destination already received must first roll back that receive.
func (l *Ledger) Rollback(tx *store.Tx, hash types.Hash) error {
	for {
		still, err := tx.HasBlock(hash)
		if err != nil {
			return err
		}
		if !still {
			return nil
		}
		if err := l.rollbackOne(tx, hash); err != nil {
			return err
		}
	}
}
