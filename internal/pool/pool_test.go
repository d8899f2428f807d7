package pool

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scigolib/hashdag/internal/layout"
)

func TestTranslateRoundTrips(t *testing.T) {
	cfg := layout.DefaultConfig()
	p := New(cfg, 4)

	require.False(t, p.IsAllocated(5))
	require.NoError(t, p.AllocatePage(5))
	require.True(t, p.IsAllocated(5))

	addr := VPtr(5*cfg.PageSize + 3)
	words := p.Translate(addr)
	words[0] = 0xDEADBEEF
	require.Equal(t, uint32(0xDEADBEEF), p.Translate(addr)[0])
}

func TestAllocatePageExhaustion(t *testing.T) {
	cfg := layout.DefaultConfig()
	p := New(cfg, 2)

	require.NoError(t, p.AllocatePage(0))
	require.NoError(t, p.AllocatePage(1))
	err := p.AllocatePage(2)
	require.Error(t, err)
}

func TestAllocatePageAdvancesPoolTopByOne(t *testing.T) {
	cfg := layout.DefaultConfig()
	p := New(cfg, 4)
	require.NoError(t, p.AllocatePage(0))
	top := p.PoolTop()
	require.NoError(t, p.AllocatePage(1))
	require.Equal(t, top+1, p.PoolTop())
}

func TestPageZeroReservedAsUnallocatedSentinel(t *testing.T) {
	cfg := layout.DefaultConfig()
	p := New(cfg, 4)
	require.False(t, p.IsAllocated(0))
	require.Equal(t, uint32(1), p.PoolTop())
}
