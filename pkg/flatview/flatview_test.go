package flatview

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vic/netlist/pkg/ids"
	"github.com/vic/netlist/pkg/netlist"
)

// buildChain mirrors internal/genrandom.Chain without importing it (this
// package must not depend on internal/), giving each level fanOut
// instances of the next, sharing a single module definition per level
// (spec.md §8 scenario 4).
func buildChain(t *testing.T, depth, fanOut int) netlist.Module {
	t.Helper()
	mods := make([]netlist.Module, depth)
	mods[depth-1] = netlist.CreateLeaf(ids.ID(100 + depth - 1))
	for i := depth - 2; i >= 0; i-- {
		m := netlist.CreateHier(ids.ID(100 + i))
		for k := 0; k < fanOut; k++ {
			m.CreateInstance(mods[i+1])
		}
		mods[i+1].Release()
		mods[i] = m
	}
	return mods[0]
}

func TestBuildSingleModule(t *testing.T) {
	top := netlist.CreateLeaf(ids.ID(1))
	v, err := Build(top)
	require.NoError(t, err)
	require.Equal(t, uint64(1), v.TotalModules())
	require.True(t, v.Top().IsTop())
	n, ok := v.NumFlatInstantiations(top)
	require.True(t, ok)
	require.Equal(t, uint64(1), n)
}

func TestBuildChainFlatSizesAreFanOutPowers(t *testing.T) {
	const depth, fanOut = 4, 2
	top := buildChain(t, depth, fanOut)
	v, err := Build(top)
	require.NoError(t, err)

	for i, m := range v.mods {
		want := uint64(1)
		for k := 0; k < i; k++ {
			want *= uint64(fanOut)
		}
		require.Equal(t, want, v.flatSize[i], "flatSize[%d]", i)
	}
}

func TestBuildChainTopInstanceIndices(t *testing.T) {
	// scenario 4: top has 2 instances; their down-module flat indices are
	// 1 and 2; their children's are 2j+i+3 for i,j in {0,1}.
	top := buildChain(t, 3, 2)
	v, err := Build(top)
	require.NoError(t, err)

	topFlat := v.Top()
	insts := topFlat.Instances()
	require.Len(t, insts, 2)

	seen := map[uint64]bool{}
	for _, inst := range insts {
		seen[inst.GlobalIndex()] = true
	}
	require.Equal(t, map[uint64]bool{1: true, 2: true}, seen)

	for i, inst := range insts {
		down := inst.DownModule()
		grandInsts := down.Instances()
		require.Len(t, grandInsts, 2)
		for j, gi := range grandInsts {
			require.Equal(t, uint64(2*j+i+3), gi.GlobalIndex())
		}
	}
}

func TestUpInstanceInvertsDownModule(t *testing.T) {
	top := buildChain(t, 3, 2)
	v, err := Build(top)
	require.NoError(t, err)

	for _, inst := range v.Top().Instances() {
		down := inst.DownModule()
		up, ok := down.UpInstance()
		require.True(t, ok)
		require.Equal(t, down, up.DownModule(), "getUpInstance().getDownModule() should invert getDownModule()")
	}
}

func TestTopHasNoUpInstance(t *testing.T) {
	top := buildChain(t, 2, 2)
	v, err := Build(top)
	require.NoError(t, err)

	_, ok := v.Top().UpInstance()
	require.False(t, ok)
}

func TestPortUpDownRoundtrips(t *testing.T) {
	leaf := netlist.CreateLeaf(ids.ID(2))
	leaf.CreatePort()

	top := netlist.CreateHier(ids.ID(1))
	top.CreateInstance(leaf)
	top.CreateInstance(leaf)

	v, err := Build(top)
	require.NoError(t, err)

	for _, inst := range v.Top().Instances() {
		down := inst.DownModule()
		for _, port := range down.Ports() {
			up, ok := port.UpPort()
			require.True(t, ok, "non-top port should have an up port")
			require.Equal(t, port, up.DownPort())
		}
	}
}

func TestDecodeModuleRoundtrips(t *testing.T) {
	top := buildChain(t, 4, 3)
	v, err := Build(top)
	require.NoError(t, err)

	total := v.TotalModules()
	for g := uint64(0); g < total; g++ {
		fm := v.DecodeModule(g)
		require.Equal(t, g, fm.GlobalIndex())
	}
}

func TestDecodeWireAndPortRoundtrip(t *testing.T) {
	leaf := netlist.CreateLeaf(ids.ID(2))
	leaf.CreatePort()
	leaf.CreatePort()

	top := netlist.CreateHier(ids.ID(1))
	top.CreateInstance(leaf)
	top.CreateInstance(leaf)
	top.CreateWire()
	top.CreateWire()

	v, err := Build(top)
	require.NoError(t, err)

	for g := uint64(0); g < v.TotalWires(); g++ {
		fw := v.DecodeWire(g)
		require.Equal(t, g, fw.GlobalIndex())
	}
	for g := uint64(0); g < v.TotalPorts(); g++ {
		fp := v.DecodePort(g)
		require.Equal(t, g, fp.GlobalIndex())
	}
}

func TestBuildDetectsCycle(t *testing.T) {
	a := netlist.CreateHier(ids.ID(1))
	b := netlist.CreateHier(ids.ID(2))
	a.CreateInstance(b)
	b.CreateInstance(a) // a now (indirectly) instantiates itself

	_, err := Build(a)
	require.ErrorIs(t, err, ErrCycle)
}
