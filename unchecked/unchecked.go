// Package unchecked buffers blocks whose dependency has not yet arrived so
// a caller can retry them once it has, instead of discarding them. It is
// not part of the consensus-critical core: spec.md §7 only classifies
// Old/GapPrevious/GapSource/GapSmartContract as "harmless/retriable",
// it does not mandate where the retry buffer lives.
package unchecked

import (
	"sync"

	"github.com/accountchain/ledger/block"
	"github.com/accountchain/ledger/types"
)

// Cache holds blocks keyed by the dependency hash they are waiting on.
// Safe for concurrent use.
type Cache struct {
	mu        sync.Mutex
	byDep     map[types.Hash][]block.Block
	maxPerDep int
}

// DefaultMaxPerDependency bounds how many blocks may queue behind a single
// missing dependency before Put starts dropping the oldest entry, so a
// flood of blocks referencing one never-arriving hash can't grow unbounded.
const DefaultMaxPerDependency = 64

func New() *Cache {
	return &Cache{byDep: make(map[types.Hash][]block.Block), maxPerDep: DefaultMaxPerDependency}
}

// Put buffers blk behind dependency (the hash a GapPrevious/GapSource/
// GapSmartContract result named).
func (c *Cache) Put(dependency types.Hash, blk block.Block) {
	c.mu.Lock()
	defer c.mu.Unlock()
	queue := c.byDep[dependency]
	if len(queue) >= c.maxPerDep {
		queue = queue[1:]
	}
	c.byDep[dependency] = append(queue, blk)
}

// Take removes and returns every block waiting on dependency, for the
// caller to re-submit to Process now that dependency exists.
func (c *Cache) Take(dependency types.Hash) []block.Block {
	c.mu.Lock()
	defer c.mu.Unlock()
	queue := c.byDep[dependency]
	delete(c.byDep, dependency)
	return queue
}

// Len reports how many blocks are currently buffered behind dependency.
func (c *Cache) Len(dependency types.Hash) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.byDep[dependency])
}
