package netlist

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestObjectPoolAllocateReusesFreedSlots(t *testing.T) {
	p := newObjectPool[int]()

	a := p.Allocate()
	b := p.Allocate()
	require.True(t, p.IsValid(a))
	require.True(t, p.IsValid(b))

	p.Deallocate(a)
	require.False(t, p.IsValid(a))

	c := p.Allocate()
	require.Equal(t, a, c, "freed slot should be reused before growing")
	require.True(t, p.IsValid(c))
}

func TestObjectPoolAllValues(t *testing.T) {
	p := newObjectPool[int]()
	i0 := p.Allocate()
	i1 := p.Allocate()
	i2 := p.Allocate()
	*p.Get(i0) = 10
	*p.Get(i1) = 11
	*p.Get(i2) = 12

	p.Deallocate(i1)

	require.Equal(t, []uint32{i0, i2}, p.All())
	require.Equal(t, 10, *p.Get(i0))
	require.Equal(t, 12, *p.Get(i2))
}

func TestObjectPoolDeallocateZeroesValue(t *testing.T) {
	p := newObjectPool[int]()
	i := p.Allocate()
	*p.Get(i) = 42
	p.Deallocate(i)

	j := p.Allocate()
	require.Equal(t, i, j)
	require.Equal(t, 0, *p.Get(j), "reused slot should start from the zero value")
}
