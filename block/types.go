// Package block defines the six wire block variants, their canonical
// hashing rules, and their big-endian byte encoding (spec.md §3, §4.1,
// §6). It has no knowledge of the store or the processing ladders in
// package ledger — those consume Block values produced here.
package block

// Type is the block-type discriminant. Its ordinal values match the
// original implementation's wire enumeration, with state fixed at 6 per
// spec.md §6 ("Hash preamble... state=6").
type Type uint8

const (
	TypeInvalid Type = iota
	TypeNotABlock
	TypeSend
	TypeReceive
	TypeOpen
	TypeChange
	TypeState
	TypeSmartContract
)

func (t Type) String() string {
	switch t {
	case TypeSend:
		return "send"
	case TypeReceive:
		return "receive"
	case TypeOpen:
		return "open"
	case TypeChange:
		return "change"
	case TypeState:
		return "state"
	case TypeSmartContract:
		return "smart_contract"
	case TypeNotABlock:
		return "not_a_block"
	default:
		return "invalid"
	}
}

// ValidPredecessor implements spec.md §4.1: legacy blocks (send, receive,
// open, change) only ever follow one of the four classic predecessor
// types; state and smart_contract blocks accept any predecessor,
// including a state block, because the universal State form is meant to
// supersede the legacy ladder without breaking existing chains.
func ValidPredecessor(self Type, prev Type) bool {
	switch self {
	case TypeSend, TypeReceive, TypeOpen, TypeChange:
		switch prev {
		case TypeSend, TypeReceive, TypeOpen, TypeChange:
			return true
		default:
			return false
		}
	case TypeState, TypeSmartContract:
		return true
	default:
		return false
	}
}
