package crypto

import "encoding/binary"

// WorkThresholdDefault is the default proof-of-work difficulty threshold,
// matching the original implementation's production network constant.
const WorkThresholdDefault uint64 = 0xffffffc000000000

// ValidateWork implements the work-validator predicate spec.md §4.2/§4.4
// describes but deliberately keeps external to the core: a block's PoW
// nonce is valid against its root when the BLAKE2b-64 digest of
// (work || root), read as a little-endian uint64, is >= threshold. The
// ledger core never generates work; it only ever calls this predicate (or
// one a caller substitutes) with a value "supplied by an external work
// oracle".
func ValidateWork(root [32]byte, work uint64, threshold uint64) bool {
	return WorkValue(root, work) >= threshold
}

// WorkValue computes the raw difficulty value of a (root, work) pair.
func WorkValue(root [32]byte, work uint64) uint64 {
	var workBytes [8]byte
	binary.LittleEndian.PutUint64(workBytes[:], work)
	sum, err := HashN(8, workBytes[:], root[:])
	if err != nil {
		panic(err)
	}
	return binary.LittleEndian.Uint64(sum)
}
