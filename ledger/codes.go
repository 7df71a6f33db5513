// Package ledger implements the block-processing pipeline (Process), its
// inverse (Rollback), and the read-only query surface, against the
// tables package store defines. It is the consensus-critical core
// spec.md §1 describes: "any deviation corrupts the ledger."
package ledger

import "github.com/accountchain/ledger/types"

// ProcessCode is the outcome of a single Process call (spec.md §7).
type ProcessCode int

const (
	Progress ProcessCode = iota
	BadSignature
	Old
	Fork
	NegativeSpend
	GapPrevious
	GapSource
	GapSmartContract
	Unreceivable
	NotReceiveFromSend
	AccountMismatch
	OpenedBurnAccount
	BalanceMismatch
	BlockPosition
	AbiMismatch
	AbiAlreadyExist
	ScAccountMismatch
)

func (c ProcessCode) String() string {
	switch c {
	case Progress:
		return "progress"
	case BadSignature:
		return "bad_signature"
	case Old:
		return "old"
	case Fork:
		return "fork"
	case NegativeSpend:
		return "negative_spend"
	case GapPrevious:
		return "gap_previous"
	case GapSource:
		return "gap_source"
	case GapSmartContract:
		return "gap_smart_contract"
	case Unreceivable:
		return "unreceivable"
	case NotReceiveFromSend:
		return "not_receive_from_send"
	case AccountMismatch:
		return "account_mismatch"
	case OpenedBurnAccount:
		return "opened_burn_account"
	case BalanceMismatch:
		return "balance_mismatch"
	case BlockPosition:
		return "block_position"
	case AbiMismatch:
		return "abi_mismatch"
	case AbiAlreadyExist:
		return "abi_already_exist"
	case ScAccountMismatch:
		return "sc_account_mismatch"
	default:
		return "unknown"
	}
}

// Retriable reports whether a caller should buffer the block and retry
// once its dependency might have arrived (spec.md §7, "Harmless/
// retriable").
func (c ProcessCode) Retriable() bool {
	switch c {
	case Old, GapPrevious, GapSource, GapSmartContract:
		return true
	default:
		return false
	}
}

// Rejected reports whether the block is permanently malformed and must
// never be retried (spec.md §7, "Malformed/reject forever").
func (c ProcessCode) Rejected() bool {
	switch c {
	case BadSignature, Unreceivable, BalanceMismatch, BlockPosition, AbiMismatch, ScAccountMismatch, NegativeSpend:
		return true
	default:
		return false
	}
}

// NeedsForkResolution reports the ambiguous case spec.md §7 calls out:
// the caller must pick a winner (via Tally) and Rollback the loser before
// retrying Process.
func (c ProcessCode) NeedsForkResolution() bool {
	return c == Fork
}

// ProcessResult is the sole error surface of Process (spec.md §7).
type ProcessResult struct {
	Code ProcessCode
	// Amount is the value that moved: a send's or receive's delta,
	// zero for change/smart_contract.
	Amount types.Amount
	// Account is the chain the applied block belongs to.
	Account types.Account
	// PendingAccount is the destination of a newly created pending
	// credit (send / state-send), zero otherwise.
	PendingAccount types.Account
	// StateIsSend reports, for a State block that reached Progress,
	// whether it was classified as a send.
	StateIsSend bool
}
