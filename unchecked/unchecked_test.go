package unchecked

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/accountchain/ledger/block"
	"github.com/accountchain/ledger/types"
)

func TestCachePutTakeRoundTrip(t *testing.T) {
	c := New()
	dep := types.Hash{1}
	blk := &block.Send{Previous: dep, Balance: types.NewAmount(1)}

	require.Equal(t, 0, c.Len(dep))
	c.Put(dep, blk)
	require.Equal(t, 1, c.Len(dep))

	got := c.Take(dep)
	require.Len(t, got, 1)
	require.Equal(t, blk, got[0])
	require.Equal(t, 0, c.Len(dep), "Take must drain the dependency's queue")
}

func TestCacheBoundsPerDependency(t *testing.T) {
	c := &Cache{byDep: make(map[types.Hash][]block.Block), maxPerDep: 2}
	dep := types.Hash{1}
	first := &block.Send{Balance: types.NewAmount(1)}
	second := &block.Send{Balance: types.NewAmount(2)}
	third := &block.Send{Balance: types.NewAmount(3)}

	c.Put(dep, first)
	c.Put(dep, second)
	c.Put(dep, third)

	queue := c.Take(dep)
	require.Len(t, queue, 2, "queue must stay bounded at maxPerDep")
	require.Equal(t, second, queue[0], "the oldest entry is dropped, not the newest")
	require.Equal(t, third, queue[1])
}
