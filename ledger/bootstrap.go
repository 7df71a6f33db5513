package ledger

import "github.com/accountchain/ledger/types"

// SetBootstrapWeights replaces the bootstrap-weight override map consulted
// by Weight while CheckBootstrapWeights is true (spec.md §9, "Global
// state"). Safe to call concurrently with Process/Rollback/Weight: the map
// is swapped atomically, never mutated in place.
func (l *Ledger) SetBootstrapWeights(weights map[types.Account]types.Amount) {
	copied := make(map[types.Account]types.Amount, len(weights))
	for k, v := range weights {
		copied[k] = v
	}
	l.bootstrapWeights.Store(&copied)
	l.checkBootstrapWeights.Store(len(copied) > 0)
}

// CheckBootstrapWeights reports whether Weight currently consults the
// bootstrap override map.
func (l *Ledger) CheckBootstrapWeights() bool {
	return l.checkBootstrapWeights.Load()
}
